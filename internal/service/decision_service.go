package service

import (
	"context"
	"errors"
	"log"

	"questdeck/internal/cache"
	"questdeck/internal/engine"
	"questdeck/internal/model"
	"questdeck/internal/repository"
)

var ErrPassageNotFound = errors.New("passage not found and no attributes supplied")

// DecisionService composes the attribute provider with the selection engine:
// passage features come from cache or store, caller overrides are merged on
// top, and the engine decides the final type list. Nothing computed here is
// persisted or cached; the decision is recomputed per request.
type DecisionService struct {
	catalogSvc   *CatalogService
	passageRepo  repository.PassageRepo
	featureCache cache.FeatureCache
	broadcaster  Broadcaster
	strict       bool
}

// NewDecisionService creates a new decision service
func NewDecisionService(catalogSvc *CatalogService, passageRepo repository.PassageRepo, featureCache cache.FeatureCache, strict bool) *DecisionService {
	return &DecisionService{
		catalogSvc:   catalogSvc,
		passageRepo:  passageRepo,
		featureCache: featureCache,
		strict:       strict,
	}
}

// SetBroadcaster injects the WebSocket broadcaster (optional)
func (s *DecisionService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Decide resolves the attribute record for textID (empty textID means the
// caller supplies all attributes inline), merges overrides on top, and runs
// the engine against the current catalog snapshot.
func (s *DecisionService) Decide(ctx context.Context, textID string, overrides model.AttributeRecord, capacity int) (*model.Decision, error) {
	record, err := s.resolveFeatures(ctx, textID)
	if err != nil {
		return nil, err
	}
	if record == nil && len(overrides) == 0 {
		return nil, ErrPassageNotFound
	}

	merged := make(model.AttributeRecord, len(record)+len(overrides))
	for k, v := range record {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}

	snap := s.catalogSvc.Snapshot()
	decision := engine.DetermineQuestionTypes(snap.Types(), snap.Requirements(), merged, engine.Params{
		Capacity:        capacity,
		StrictOperators: s.strict,
	})

	if s.broadcaster != nil {
		s.broadcaster.BroadcastEvent("decision_made", map[string]interface{}{
			"textId":     textID,
			"finalTypes": decision.FinalTypes,
			"capacity":   decision.Capacity,
		})
	}

	return decision, nil
}

// resolveFeatures reads the passage feature record, cache first. A missing
// passage yields nil, nil; callers decide whether that is an error.
func (s *DecisionService) resolveFeatures(ctx context.Context, textID string) (model.AttributeRecord, error) {
	if textID == "" {
		return nil, nil
	}

	if s.featureCache != nil {
		features, err := s.featureCache.GetFeatures(ctx, textID)
		if err != nil {
			log.Printf("Warning: feature cache read failed for %s: %v", textID, err)
		} else if features != nil {
			return features, nil
		}
	}

	passage, err := s.passageRepo.GetByTextID(ctx, textID)
	if err != nil {
		return nil, err
	}
	if passage == nil {
		return nil, nil
	}

	if s.featureCache != nil && passage.Features != nil {
		if err := s.featureCache.SetFeatures(ctx, textID, passage.Features); err != nil {
			log.Printf("Warning: feature cache write failed for %s: %v", textID, err)
		}
	}

	return passage.Features, nil
}
