package rules

import (
	"fmt"

	"github.com/meescheck/meescheck/internal/model"
)

// evidenceByType is the static evidence-requirement table, keyed by
// exemption type. Requirements are never computed per request.
var evidenceByType = map[model.ExemptionType][]model.EvidenceRequirement{
	model.ExemptionCostCap: {
		req(model.DocCurrentEPC),
		req(model.DocInstallerQuotes),
		rec(model.DocPaymentReceipts),
		rec(model.DocCostCapCalculation),
	},
	model.ExemptionHeritage: {
		req(model.DocCurrentEPC),
		req(model.DocListedOfficerAdvice),
		rec(model.DocConservationOfficerAdvice),
	},
	model.ExemptionConsent: {
		req(model.DocCurrentEPC),
		rec(model.DocFreeholderRefusalLetter),
		rec(model.DocPlanningRefusalLetter),
	},
	model.ExemptionDevaluation: {
		req(model.DocCurrentEPC),
		req(model.DocValuationReport),
		req(model.DocImprovementQuotes),
		rec(model.DocSurveyorCorrespondence),
	},
}

func req(id model.DocumentID) model.EvidenceRequirement {
	return model.EvidenceRequirement{DocumentID: id, Label: model.KnownDocuments[id], Required: true}
}

func rec(id model.DocumentID) model.EvidenceRequirement {
	return model.EvidenceRequirement{DocumentID: id, Label: model.KnownDocuments[id], Required: false}
}

// RequirementsFor returns the evidence requirements for an exemption type.
func RequirementsFor(t model.ExemptionType) []model.EvidenceRequirement {
	return evidenceByType[t]
}

func init() {
	// Every requirement must reference a declared evidence document.
	for t, reqs := range evidenceByType {
		for _, r := range reqs {
			if !model.IsKnownDocument(r.DocumentID) {
				panic(fmt.Sprintf("rules: exemption type %s references undeclared document %q", t, r.DocumentID))
			}
		}
	}
}
