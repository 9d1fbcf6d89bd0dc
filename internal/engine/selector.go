package engine

import (
	"sort"
	"strings"

	"questdeck/internal/model"
)

const (
	// DefaultCapacity bounds the final type list when the caller does not
	// supply a positive capacity.
	DefaultCapacity = 5

	// TypeMainIdea and TypeDetail are the mandatory core types: whenever they
	// are eligible they are included in the final list, even when the tone
	// policy would otherwise exclude them and even under capacity pressure.
	TypeMainIdea = "main_idea"
	TypeDetail   = "detail"

	// missingPriority sorts ids that are absent from the catalog last.
	missingPriority = 99

	toneFeature    = "tone"
	toneEvaluative = "evaluative"

	flowPrefix      = "flow_"
	inferencePrefix = "inference_"
)

var mandatoryTypes = []string{TypeMainIdea, TypeDetail}

// DecideFinalTypes applies the selection policy to the eligible set and
// returns the final priority-ordered type id list:
//
//  1. keep only eligible types;
//  2. when tone is "evaluative", drop flow types and keep at most one
//     inference type (smallest priority; ties break on type id);
//  3. force in the eligible mandatory core types, overriding step 2;
//  4. fill remaining slots by ascending priority up to capacity;
//  5. sort the result ascending by priority, unknown ids last.
//
// Mandatory types are never truncated: when capacity is smaller than the
// number of eligible mandatory types, all of them still appear and no other
// type does.
func DecideFinalTypes(catalog []model.QuestionType, record model.AttributeRecord, eligibility map[string]bool, capacity int) []string {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	byID := make(map[string]model.QuestionType, len(catalog))
	for _, qt := range catalog {
		byID[qt.TypeID] = qt
	}

	eligible := make([]string, 0, len(catalog))
	for _, qt := range catalog {
		if eligibility[qt.TypeID] {
			eligible = append(eligible, qt.TypeID)
		}
	}

	candidates := applyTonePolicy(eligible, record, byID)

	included := make(map[string]bool)
	result := make([]string, 0, capacity)
	for _, id := range mandatoryTypes {
		if eligibility[id] {
			included[id] = true
			result = append(result, id)
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		pi, pj := priorityOf(byID, candidates[i]), priorityOf(byID, candidates[j])
		if pi != pj {
			return pi < pj
		}
		return candidates[i] < candidates[j]
	})
	for _, id := range candidates {
		if len(result) >= capacity {
			break
		}
		if included[id] {
			continue
		}
		included[id] = true
		result = append(result, id)
	}

	sort.Slice(result, func(i, j int) bool {
		pi, pj := priorityOf(byID, result[i]), priorityOf(byID, result[j])
		if pi != pj {
			return pi < pj
		}
		return result[i] < result[j]
	})

	return result
}

// applyTonePolicy filters the eligible ids for evaluative passages: flow types
// are dropped entirely, and only the single best inference type survives.
func applyTonePolicy(eligible []string, record model.AttributeRecord, byID map[string]model.QuestionType) []string {
	tone, ok := normalize(record[toneFeature]).(string)
	if !ok || tone != toneEvaluative {
		out := make([]string, len(eligible))
		copy(out, eligible)
		return out
	}

	out := make([]string, 0, len(eligible))
	bestInference := ""
	for _, id := range eligible {
		if strings.HasPrefix(id, flowPrefix) {
			continue
		}
		if strings.HasPrefix(id, inferencePrefix) {
			if bestInference == "" || inferenceLess(byID, id, bestInference) {
				bestInference = id
			}
			continue
		}
		out = append(out, id)
	}
	if bestInference != "" {
		out = append(out, bestInference)
	}
	return out
}

// inferenceLess orders inference candidates by priority, then type id, so the
// kept one is deterministic even when priorities collide.
func inferenceLess(byID map[string]model.QuestionType, a, b string) bool {
	pa, pb := priorityOf(byID, a), priorityOf(byID, b)
	if pa != pb {
		return pa < pb
	}
	return a < b
}

func priorityOf(byID map[string]model.QuestionType, id string) int {
	if qt, ok := byID[id]; ok {
		return qt.Priority
	}
	return missingPriority
}
