package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"questdeck/internal/model"
)

func testCatalog() []model.QuestionType {
	return []model.QuestionType{
		{TypeID: "main_idea", Priority: 1, Category: model.CategoryMain},
		{TypeID: "x", Priority: 4, Category: model.CategoryVocab},
	}
}

func TestCalculateEligibility_NoRequirementsAlwaysEligible(t *testing.T) {
	catalog := testCatalog()
	reqs := map[string][]model.Requirement{}

	for _, record := range []model.AttributeRecord{nil, {}, {"score": 0, "tone": "neutral"}} {
		elig := CalculateEligibility(catalog, reqs, record, false)
		assert.True(t, elig["main_idea"])
		assert.True(t, elig["x"])
	}
}

func TestCalculateEligibility_ScoreThreshold(t *testing.T) {
	catalog := testCatalog()
	reqs := map[string][]model.Requirement{
		"x": {{TypeID: "x", Feature: "score", Operator: ">=", Value: 3}},
	}

	elig := CalculateEligibility(catalog, reqs, model.AttributeRecord{"score": 5}, false)
	assert.True(t, elig["x"])

	elig = CalculateEligibility(catalog, reqs, model.AttributeRecord{"score": 2}, false)
	assert.False(t, elig["x"])

	// Missing feature fails closed.
	elig = CalculateEligibility(catalog, reqs, model.AttributeRecord{}, false)
	assert.False(t, elig["x"])
}

func TestCalculateEligibility_RequirementsAreConjunctive(t *testing.T) {
	catalog := testCatalog()
	reqs := map[string][]model.Requirement{
		"x": {
			{TypeID: "x", Feature: "score", Operator: ">=", Value: 3},
			{TypeID: "x", Feature: "tone", Operator: "=", Value: "evaluative"},
		},
	}

	elig := CalculateEligibility(catalog, reqs, model.AttributeRecord{"score": 5, "tone": "evaluative"}, false)
	assert.True(t, elig["x"])

	elig = CalculateEligibility(catalog, reqs, model.AttributeRecord{"score": 5, "tone": "neutral"}, false)
	assert.False(t, elig["x"])
}

func TestCalculateEligibility_AddingRequirementNeverGainsEligibility(t *testing.T) {
	catalog := testCatalog()
	record := model.AttributeRecord{"score": 5, "tone": "neutral"}

	base := map[string][]model.Requirement{
		"x": {{TypeID: "x", Feature: "score", Operator: ">=", Value: 3}},
	}
	extended := map[string][]model.Requirement{
		"x": append(append([]model.Requirement{}, base["x"]...),
			model.Requirement{TypeID: "x", Feature: "tone", Operator: "=", Value: "evaluative"}),
	}

	before := CalculateEligibility(catalog, base, record, false)["x"]
	after := CalculateEligibility(catalog, extended, record, false)["x"]
	if !before {
		assert.False(t, after, "adding a requirement must not make an ineligible type eligible")
	}
}

func TestCalculateEligibility_NilFeatureValueFailsClosed(t *testing.T) {
	catalog := testCatalog()
	reqs := map[string][]model.Requirement{
		"x": {{TypeID: "x", Feature: "score", Operator: ">=", Value: 3}},
	}

	elig := CalculateEligibility(catalog, reqs, model.AttributeRecord{"score": nil}, false)
	assert.False(t, elig["x"])
}

func TestCalculateEligibility_Deterministic(t *testing.T) {
	catalog := testCatalog()
	reqs := map[string][]model.Requirement{
		"x": {{TypeID: "x", Feature: "score", Operator: ">=", Value: 3}},
	}
	record := model.AttributeRecord{"score": 4}

	first := CalculateEligibility(catalog, reqs, record, false)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, CalculateEligibility(catalog, reqs, record, false))
	}
}
