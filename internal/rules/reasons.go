package rules

import "github.com/meescheck/meescheck/internal/model"

// reasonToType maps every declared exemption reason to exactly one
// exemption type. A static table rather than branching keeps the mapping
// total and mechanically checkable.
//
// "wall-unsuitable" deliberately lands on the cost-cap track: both grounds
// are adjudicated on cost evidence under the current guidance.
var reasonToType = map[model.ExemptionReason]model.ExemptionType{
	model.ReasonCostCapReached:    model.ExemptionCostCap,
	model.ReasonWallUnsuitable:    model.ExemptionCostCap,
	model.ReasonListedBuilding:    model.ExemptionHeritage,
	model.ReasonConservationArea:  model.ExemptionHeritage,
	model.ReasonFreeholderRefused: model.ExemptionConsent,
	model.ReasonPlanningRefused:   model.ExemptionConsent,
	model.ReasonDevaluation:       model.ExemptionDevaluation,
}

// TypeForReason resolves a declared reason to its exemption type and
// whether the reason is recognised.
func TypeForReason(reason model.ExemptionReason) (model.ExemptionType, bool) {
	t, ok := reasonToType[reason]
	return t, ok
}

// AllReasons returns the declared-reason enumeration the mapping covers.
func AllReasons() []model.ExemptionReason {
	reasons := make([]model.ExemptionReason, 0, len(reasonToType))
	for r := range reasonToType {
		reasons = append(reasons, r)
	}
	return reasons
}
