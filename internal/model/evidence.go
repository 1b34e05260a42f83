package model

// DocumentID identifies an evidence document in the global enumeration.
// Every EvidenceRequirement references one of these; the rule tables are
// checked against this set at init so an undeclared id cannot ship.
type DocumentID string

const (
	DocCurrentEPC                DocumentID = "current-epc"
	DocInstallerQuotes           DocumentID = "installer-quotes"
	DocPaymentReceipts           DocumentID = "payment-receipts"
	DocCostCapCalculation        DocumentID = "cost-cap-calculation"
	DocListedOfficerAdvice       DocumentID = "listed-officer-advice"
	DocConservationOfficerAdvice DocumentID = "conservation-officer-advice"
	DocFreeholderRefusalLetter   DocumentID = "freeholder-refusal-letter"
	DocPlanningRefusalLetter     DocumentID = "planning-refusal-letter"
	DocValuationReport           DocumentID = "valuation-report"
	DocImprovementQuotes         DocumentID = "improvement-quotes"
	DocSurveyorCorrespondence    DocumentID = "surveyor-correspondence"
)

// KnownDocuments is the complete evidence-document enumeration with
// user-facing labels.
var KnownDocuments = map[DocumentID]string{
	DocCurrentEPC:                "Current EPC certificate",
	DocInstallerQuotes:           "Quotes from qualified installers",
	DocPaymentReceipts:           "Receipts for improvement work paid to date",
	DocCostCapCalculation:        "Cost cap spend calculation",
	DocListedOfficerAdvice:       "Written advice from the listed buildings officer",
	DocConservationOfficerAdvice: "Written advice from the conservation officer",
	DocFreeholderRefusalLetter:   "Freeholder consent refusal letter",
	DocPlanningRefusalLetter:     "Planning permission refusal letter",
	DocValuationReport:           "Independent valuation report",
	DocImprovementQuotes:         "Quotes for the devaluing improvements",
	DocSurveyorCorrespondence:    "Correspondence with the surveyor",
}

// IsKnownDocument reports whether id belongs to the global enumeration.
func IsKnownDocument(id DocumentID) bool {
	_, ok := KnownDocuments[id]
	return ok
}

// EvidenceRequirement is one document an exemption type expects.
type EvidenceRequirement struct {
	DocumentID DocumentID `json:"document_id"`
	Label      string     `json:"label"`
	Required   bool       `json:"required"`
}
