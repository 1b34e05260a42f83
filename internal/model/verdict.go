package model

// ExemptionType is the closed set of legal exemption tracks an exemption
// reason can map onto.
type ExemptionType string

const (
	ExemptionCostCap     ExemptionType = "cost-cap"
	ExemptionHeritage    ExemptionType = "heritage"
	ExemptionConsent     ExemptionType = "consent"
	ExemptionDevaluation ExemptionType = "devaluation"
)

// ExemptionReason is the closed set of reasons a landlord can declare.
type ExemptionReason string

const (
	ReasonCostCapReached    ExemptionReason = "cost-cap-reached"
	ReasonWallUnsuitable    ExemptionReason = "wall-unsuitable"
	ReasonListedBuilding    ExemptionReason = "listed-building"
	ReasonConservationArea  ExemptionReason = "conservation-area"
	ReasonFreeholderRefused ExemptionReason = "freeholder-refused"
	ReasonPlanningRefused   ExemptionReason = "planning-refused"
	ReasonDevaluation       ExemptionReason = "devaluation"
)

// VerdictLevel is the tiered eligibility rating.
type VerdictLevel string

const (
	VerdictStrong      VerdictLevel = "strong"
	VerdictConditional VerdictLevel = "conditional"
	VerdictUnlikely    VerdictLevel = "unlikely"
)

// rank orders verdict levels for comparisons (unlikely < conditional < strong).
func (l VerdictLevel) rank() int {
	switch l {
	case VerdictStrong:
		return 2
	case VerdictConditional:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether l is at least as favourable as other.
func (l VerdictLevel) AtLeast(other VerdictLevel) bool {
	return l.rank() >= other.rank()
}

// Verdict is the eligibility outcome for one exemption type. It is derived
// from the current AnswerSet on every request and never stored.
type Verdict struct {
	Level       VerdictLevel `json:"level"`
	Headline    string       `json:"headline"`
	Explanation string       `json:"explanation"`
}

// EvidenceSummary lists the documents the classifier expects for the
// chosen exemption type, split by necessity, plus the required ones the
// landlord has not declared.
type EvidenceSummary struct {
	Required        []EvidenceRequirement `json:"required"`
	Recommended     []EvidenceRequirement `json:"recommended"`
	MissingRequired []DocumentID          `json:"missing_required"`
}

// Assessment is the classification output contract handed to presentation.
type Assessment struct {
	ExemptionType ExemptionType   `json:"exemption_type"`
	Verdict       Verdict         `json:"verdict"`
	Evidence      EvidenceSummary `json:"evidence"`
}
