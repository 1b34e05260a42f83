package schema

import "github.com/meescheck/meescheck/internal/model"

// DomainKind describes the shape of a field's allowed value set.
type DomainKind int

const (
	DomainEnum     DomainKind = iota // Exactly one of a closed literal set
	DomainInt                        // Bounded integer
	DomainBool                       // "true" or "false"
	DomainEnumList                   // Zero or more of a closed literal set
)

// Field is one typed input definition. Fields are declared once in the
// wizard tables below and never mutated.
type Field struct {
	Name    string
	Label   string
	Kind    DomainKind
	Allowed []string // DomainEnum / DomainEnumList
	Min     int      // DomainInt
	Max     int      // DomainInt
}

// Step is one wizard step: an ordered list of required fields plus any
// optional ones it collects.
type Step struct {
	Name     string
	Intro    bool // Intro/upload steps never gate Next on validation
	Required []string
	Optional []string
}

// Wizard is the ordered step list for one flow. The certificate analysis
// and exemption checker flows are two instances of the same shape.
type Wizard struct {
	Name  string
	Steps []Step
}

// Field names shared across both wizards.
const (
	FieldCurrentRating   = "currentRating"
	FieldCurrentScore    = "currentScore"
	FieldPropertyType    = "propertyType"
	FieldPropertyAge     = "propertyAge"
	FieldHeatingType     = "heatingType"
	FieldWallType        = "wallType"
	FieldPotentialRating = "potentialRating"
	FieldPotentialScore  = "potentialScore"
	FieldFundingInterest = "fundingInterest"

	FieldIsListed           = "isListed"
	FieldInConservationArea = "inConservationArea"
	FieldSpendToDate        = "spendToDate"
	FieldInstalledMeasures  = "installedMeasures"
	FieldExemptionReason    = "exemptionReason"
	FieldEvidenceAvailable  = "evidenceAvailable"
)

// RatingLetters is the fixed 7-letter EPC rating domain.
var RatingLetters = []string{"A", "B", "C", "D", "E", "F", "G"}

// SpendBrackets orders the declared spend-to-date brackets from lowest to
// highest; index position is the bracket rank used by the rule engine.
var SpendBrackets = []string{"none", "under-3500", "3500-10000", "over-10000"}

// Fields is the global field registry, keyed by name.
var Fields = map[string]Field{
	FieldCurrentRating: {
		Name: FieldCurrentRating, Label: "Current EPC rating",
		Kind: DomainEnum, Allowed: RatingLetters,
	},
	FieldCurrentScore: {
		Name: FieldCurrentScore, Label: "Current EPC score",
		Kind: DomainInt, Min: 1, Max: 100,
	},
	FieldPropertyType: {
		Name: FieldPropertyType, Label: "Property type",
		Kind: DomainEnum,
		Allowed: []string{"house", "flat", "bungalow", "maisonette", "park-home"},
	},
	FieldPropertyAge: {
		Name: FieldPropertyAge, Label: "Construction age band",
		Kind: DomainEnum,
		Allowed: []string{
			"pre-1900", "1900-1929", "1930-1949", "1950-1966",
			"1967-1982", "1983-1995", "post-1995",
		},
	},
	FieldHeatingType: {
		Name: FieldHeatingType, Label: "Main heating system",
		Kind: DomainEnum,
		Allowed: []string{
			"gas-boiler", "electric-storage", "electric-panel",
			"heat-pump", "oil-boiler", "solid-fuel",
		},
	},
	FieldWallType: {
		Name: FieldWallType, Label: "Wall construction",
		Kind: DomainEnum,
		Allowed: []string{
			"solid-brick", "cavity", "cavity-filled", "stone",
			"timber-frame", "system-built",
		},
	},
	FieldPotentialRating: {
		Name: FieldPotentialRating, Label: "Potential EPC rating",
		Kind: DomainEnum, Allowed: RatingLetters,
	},
	FieldPotentialScore: {
		Name: FieldPotentialScore, Label: "Potential EPC score",
		Kind: DomainInt, Min: 1, Max: 100,
	},
	FieldFundingInterest: {
		Name: FieldFundingInterest, Label: "Interested in funding schemes",
		Kind: DomainEnum, Allowed: []string{"yes", "no", "unsure"},
	},
	FieldIsListed: {
		Name: FieldIsListed, Label: "Listed building",
		Kind: DomainBool,
	},
	FieldInConservationArea: {
		Name: FieldInConservationArea, Label: "In a conservation area",
		Kind: DomainBool,
	},
	FieldSpendToDate: {
		Name: FieldSpendToDate, Label: "Spend on improvements to date",
		Kind: DomainEnum, Allowed: SpendBrackets,
	},
	FieldInstalledMeasures: {
		Name: FieldInstalledMeasures, Label: "Improvements already installed",
		Kind: DomainEnumList,
		Allowed: []string{
			"loft-insulation", "cavity-wall-insulation", "solid-wall-insulation",
			"heating-upgrade", "glazing", "none",
		},
	},
	FieldExemptionReason: {
		Name: FieldExemptionReason, Label: "Reason for seeking an exemption",
		Kind: DomainEnum,
		Allowed: []string{
			string(model.ReasonCostCapReached),
			string(model.ReasonWallUnsuitable),
			string(model.ReasonListedBuilding),
			string(model.ReasonConservationArea),
			string(model.ReasonFreeholderRefused),
			string(model.ReasonPlanningRefused),
			string(model.ReasonDevaluation),
		},
	},
	FieldEvidenceAvailable: {
		Name: FieldEvidenceAvailable, Label: "Evidence documents available",
		Kind: DomainEnumList, Allowed: knownDocumentIDs(),
	},
}

func knownDocumentIDs() []string {
	ids := make([]string, 0, len(model.KnownDocuments))
	for id := range model.KnownDocuments {
		ids = append(ids, string(id))
	}
	return ids
}

// AnalysisWizard is the certificate analysis flow.
var AnalysisWizard = Wizard{
	Name: "analysis",
	Steps: []Step{
		{Name: "upload", Intro: true},
		{Name: "basics", Required: []string{FieldCurrentRating, FieldCurrentScore, FieldPropertyType}},
		{Name: "details", Required: []string{FieldPropertyAge, FieldHeatingType, FieldWallType},
			Optional: []string{FieldPotentialRating, FieldPotentialScore}},
		{Name: "recommendations", Required: []string{FieldFundingInterest}},
	},
}

// ExemptionWizard is the exemption checker flow.
var ExemptionWizard = Wizard{
	Name: "exemption",
	Steps: []Step{
		{Name: "situation", Required: []string{FieldCurrentRating, FieldIsListed, FieldInConservationArea}},
		{Name: "improvements", Required: []string{FieldSpendToDate, FieldInstalledMeasures}},
		{Name: "reason", Required: []string{FieldExemptionReason}},
		{Name: "evidence", Optional: []string{FieldEvidenceAvailable}},
	},
}

// ExtractableFields lists the fields the extraction adapter may populate,
// split by how they drive the confidence tier. Primary fields are the
// basics-step requirements; secondary fields are the details-step ones.
var (
	PrimaryExtractionFields   = []string{FieldCurrentRating, FieldCurrentScore, FieldPropertyType}
	SecondaryExtractionFields = []string{FieldPropertyAge, FieldHeatingType, FieldWallType}
	BonusExtractionFields     = []string{FieldPotentialRating, FieldPotentialScore}
)

// SpendBracketRank returns the rank of a declared spend bracket, or -1 if
// the value is outside the domain.
func SpendBracketRank(value string) int {
	for i, b := range SpendBrackets {
		if b == value {
			return i
		}
	}
	return -1
}
