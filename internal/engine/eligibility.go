package engine

import "questdeck/internal/model"

// CalculateEligibility evaluates every cataloged type's requirements against
// the attribute record and returns the resulting eligibility map. Requirements
// for a type are ANDed; a type with none is unconditionally eligible. Pure
// function: identical inputs always produce identical output.
func CalculateEligibility(catalog []model.QuestionType, reqsByType map[string][]model.Requirement, record model.AttributeRecord, strict bool) map[string]bool {
	eligibility := make(map[string]bool, len(catalog))

	for _, qt := range catalog {
		eligible := true
		for _, req := range reqsByType[qt.TypeID] {
			attrValue, present := record[req.Feature]
			if !present || attrValue == nil {
				// Missing attribute fails the condition regardless of operator.
				eligible = false
				break
			}
			if !EvaluateCondition(attrValue, req.Operator, req.Value, strict) {
				eligible = false
				break
			}
		}
		eligibility[qt.TypeID] = eligible
	}

	return eligibility
}
