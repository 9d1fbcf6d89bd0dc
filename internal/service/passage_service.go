package service

import (
	"context"
	"log"

	"questdeck/internal/cache"
	"questdeck/internal/model"
	"questdeck/internal/repository"
)

// PassageService handles passage CRUD operations
type PassageService struct {
	passageRepo  repository.PassageRepo
	featureCache cache.FeatureCache
}

// NewPassageService creates a new passage service
func NewPassageService(passageRepo repository.PassageRepo, featureCache cache.FeatureCache) *PassageService {
	return &PassageService{
		passageRepo:  passageRepo,
		featureCache: featureCache,
	}
}

// Upsert stores a passage and invalidates its cached feature record
func (s *PassageService) Upsert(ctx context.Context, passage *model.Passage) error {
	if err := s.passageRepo.Upsert(ctx, passage); err != nil {
		return err
	}
	if s.featureCache != nil {
		if err := s.featureCache.DeleteFeatures(ctx, passage.TextID); err != nil {
			log.Printf("Warning: feature cache invalidation failed for %s: %v", passage.TextID, err)
		}
	}
	return nil
}

// GetByTextID retrieves a passage, or nil when not found
func (s *PassageService) GetByTextID(ctx context.Context, textID string) (*model.Passage, error) {
	return s.passageRepo.GetByTextID(ctx, textID)
}

// List retrieves all passages
func (s *PassageService) List(ctx context.Context) ([]*model.Passage, error) {
	return s.passageRepo.List(ctx)
}
