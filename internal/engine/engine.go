package engine

import (
	"time"

	"questdeck/internal/model"
)

// Params tunes one decision run. Zero value means default capacity and the
// permissive unknown-operator behavior.
type Params struct {
	Capacity        int
	StrictOperators bool
}

// DetermineQuestionTypes runs both passes over the catalog and attaches the
// full catalog record for each selected id, or an id-only stub when the id is
// not cataloged. No I/O; the decision is recomputed on every call.
func DetermineQuestionTypes(catalog []model.QuestionType, reqsByType map[string][]model.Requirement, record model.AttributeRecord, params Params) *model.Decision {
	capacity := params.Capacity
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	eligibility := CalculateEligibility(catalog, reqsByType, record, params.StrictOperators)
	finalTypes := DecideFinalTypes(catalog, record, eligibility, capacity)

	byID := make(map[string]model.QuestionType, len(catalog))
	for _, qt := range catalog {
		byID[qt.TypeID] = qt
	}

	details := make([]model.QuestionType, 0, len(finalTypes))
	for _, id := range finalTypes {
		if qt, ok := byID[id]; ok {
			details = append(details, qt)
		} else {
			details = append(details, model.QuestionType{TypeID: id})
		}
	}

	return &model.Decision{
		Eligibility: eligibility,
		FinalTypes:  finalTypes,
		TypeDetails: details,
		Capacity:    capacity,
		DecidedAt:   time.Now(),
	}
}
