package rules

import (
	"github.com/meescheck/meescheck/internal/model"
	"github.com/meescheck/meescheck/internal/schema"
)

// ruleContext is the evaluated situation a verdict rule predicates over.
type ruleContext struct {
	answers  model.AnswerSet
	evidence map[model.DocumentID]bool
	required []model.DocumentID
}

func (c ruleContext) has(id model.DocumentID) bool {
	return c.evidence[id]
}

func (c ruleContext) hasAllRequired() bool {
	for _, id := range c.required {
		if !c.evidence[id] {
			return false
		}
	}
	return true
}

func (c ruleContext) spendRankAtLeast(bracket string) bool {
	declared, _ := c.answers.Get(schema.FieldSpendToDate)
	rank := schema.SpendBracketRank(declared)
	return rank >= 0 && rank >= schema.SpendBracketRank(bracket)
}

func (c ruleContext) flag(name string) bool {
	v, _ := c.answers.Get(name)
	return v == "true"
}

// verdictRule is one row of a per-type decision table: the first rule
// whose predicate holds decides the verdict.
type verdictRule struct {
	when        func(ruleContext) bool
	level       model.VerdictLevel
	headline    string
	explanation string
}

// verdictRules holds the per-type decision tables. Each type has distinct
// deciding evidence, so the tables differ rather than sharing a generic
// threshold. Adding an exemption type is a data change here, not new
// control flow.
var verdictRules = map[model.ExemptionType][]verdictRule{
	model.ExemptionCostCap: {
		{
			when: func(c ruleContext) bool {
				return c.spendRankAtLeast("over-10000") && c.hasAllRequired()
			},
			level:       model.VerdictStrong,
			headline:    "Strong case for a cost cap exemption",
			explanation: "You have spent above the cost cap and hold the core evidence. Register the exemption with your spend records attached.",
		},
		{
			when: func(c ruleContext) bool {
				return c.spendRankAtLeast("3500-10000") && c.has(model.DocCurrentEPC)
			},
			level:       model.VerdictConditional,
			headline:    "Possible cost cap exemption with more evidence",
			explanation: "Your declared spend is in the qualifying range but the evidence file is incomplete. Gather installer quotes and payment records before registering.",
		},
		{
			when:        func(ruleContext) bool { return true },
			level:       model.VerdictUnlikely,
			headline:    "A cost cap exemption is unlikely",
			explanation: "The cost cap route requires demonstrated spend on improvements. Without qualifying spend, no amount of paperwork establishes the legal basis.",
		},
	},
	model.ExemptionHeritage: {
		{
			when: func(c ruleContext) bool {
				return (c.flag(schema.FieldIsListed) || c.flag(schema.FieldInConservationArea)) &&
					(c.has(model.DocListedOfficerAdvice) || c.has(model.DocConservationOfficerAdvice))
			},
			level:       model.VerdictStrong,
			headline:    "Strong case for a heritage exemption",
			explanation: "The property has protected status and you hold written officer advice confirming the improvements would unacceptably alter it.",
		},
		{
			when: func(c ruleContext) bool {
				return c.flag(schema.FieldIsListed) || c.flag(schema.FieldInConservationArea)
			},
			level:       model.VerdictConditional,
			headline:    "Heritage exemption needs officer advice",
			explanation: "Protected status alone is not enough: obtain written advice from the listed buildings or conservation officer before registering.",
		},
		{
			when:        func(ruleContext) bool { return true },
			level:       model.VerdictUnlikely,
			headline:    "A heritage exemption is unlikely",
			explanation: "The property is neither listed nor in a conservation area, so the heritage ground does not apply regardless of evidence.",
		},
	},
	model.ExemptionConsent: {
		{
			when: func(c ruleContext) bool {
				return c.has(model.DocFreeholderRefusalLetter) || c.has(model.DocPlanningRefusalLetter)
			},
			level:       model.VerdictStrong,
			headline:    "Strong case for a consent exemption",
			explanation: "A written refusal from the freeholder or planning authority is the deciding evidence for this ground.",
		},
		{
			when:        func(ruleContext) bool { return true },
			level:       model.VerdictConditional,
			headline:    "Consent exemption needs the refusal in writing",
			explanation: "You will need the refusal letter itself; a verbal refusal cannot be registered.",
		},
	},
	model.ExemptionDevaluation: {
		{
			when: func(c ruleContext) bool {
				return c.has(model.DocValuationReport) && c.has(model.DocImprovementQuotes)
			},
			level:       model.VerdictStrong,
			headline:    "Strong case for a devaluation exemption",
			explanation: "An independent valuation alongside quotes for the works is the evidence pairing the register expects.",
		},
		{
			when:        func(ruleContext) bool { return true },
			level:       model.VerdictConditional,
			headline:    "Devaluation exemption needs a surveyor's report",
			explanation: "Commission an independent RICS valuation showing the works would reduce the property's value by more than 5%, plus quotes for those works.",
		},
	},
}

// fallbackVerdict covers any exemption type added without a bespoke table:
// the engine degrades to a generic evidence check instead of producing an
// undefined verdict.
func fallbackVerdict(c ruleContext) model.Verdict {
	if c.hasAllRequired() {
		return model.Verdict{
			Level:       model.VerdictStrong,
			Headline:    "Required evidence in place",
			Explanation: "You hold every required document for this exemption type.",
		}
	}
	return model.Verdict{
		Level:       model.VerdictConditional,
		Headline:    "More evidence needed",
		Explanation: "Gather the required documents listed below before registering.",
	}
}

// verdictFor evaluates the decision table for an exemption type.
func verdictFor(t model.ExemptionType, c ruleContext) model.Verdict {
	rules, ok := verdictRules[t]
	if !ok {
		return fallbackVerdict(c)
	}
	for _, r := range rules {
		if r.when(c) {
			return model.Verdict{Level: r.level, Headline: r.headline, Explanation: r.explanation}
		}
	}
	return fallbackVerdict(c)
}
