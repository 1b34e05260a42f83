package rules

import (
	"github.com/meescheck/meescheck/internal/model"
	"github.com/meescheck/meescheck/internal/schema"
)

// Classify maps a completed exemption answer set to an exemption type,
// its evidence checklist, and a tiered eligibility verdict. It is a pure
// function: the same answers always yield the same assessment, with no
// hidden state between calls. The verdict is recomputed on every call and
// never cached, so it cannot go stale against edited answers.
func Classify(answers model.AnswerSet) model.Assessment {
	declared, _ := answers.Get(schema.FieldExemptionReason)
	exType, ok := TypeForReason(model.ExemptionReason(declared))
	if !ok {
		// Validation keeps unmapped reasons out of completed answer sets,
		// but classification still has no fatal outcomes: treat the raw
		// value as its own type and let the generic fallback rule decide.
		exType = model.ExemptionType(declared)
	}

	requirements := RequirementsFor(exType)

	evidence := make(map[model.DocumentID]bool)
	for _, id := range answers.GetList(schema.FieldEvidenceAvailable) {
		evidence[model.DocumentID(id)] = true
	}

	var required, recommended []model.EvidenceRequirement
	var requiredIDs, missing []model.DocumentID
	for _, r := range requirements {
		if r.Required {
			required = append(required, r)
			requiredIDs = append(requiredIDs, r.DocumentID)
			if !evidence[r.DocumentID] {
				missing = append(missing, r.DocumentID)
			}
		} else {
			recommended = append(recommended, r)
		}
	}

	ctx := ruleContext{
		answers:  answers,
		evidence: evidence,
		required: requiredIDs,
	}

	return model.Assessment{
		ExemptionType: exType,
		Verdict:       verdictFor(exType, ctx),
		Evidence: model.EvidenceSummary{
			Required:        required,
			Recommended:     recommended,
			MissingRequired: missing,
		},
	}
}
