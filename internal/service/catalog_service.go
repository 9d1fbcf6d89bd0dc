package service

import (
	"context"
	"log"
	"sync/atomic"

	"questdeck/internal/catalog"
	"questdeck/internal/repository"
)

// CatalogService owns the in-memory policy catalog. The catalog is loaded from
// Mongo once at startup and on explicit reloads; each load builds a fresh
// immutable snapshot that is swapped in atomically, so in-flight decisions
// keep reading the snapshot they started with.
type CatalogService struct {
	repo     repository.CatalogRepo
	snapshot atomic.Pointer[catalog.Snapshot]
}

// NewCatalogService creates a new catalog service. The initial snapshot is the
// built-in default tables until Load succeeds.
func NewCatalogService(repo repository.CatalogRepo) *CatalogService {
	s := &CatalogService{repo: repo}
	s.snapshot.Store(catalog.Defaults())
	return s
}

// Load reads the catalog from the store and swaps in a new snapshot. When the
// store is empty or unavailable the built-in defaults are used instead; the
// decision path is never left without a catalog.
func (s *CatalogService) Load(ctx context.Context) error {
	types, err := s.repo.ListTypes(ctx)
	if err != nil {
		log.Printf("Warning: catalog load failed (%v), using built-in defaults", err)
		s.snapshot.Store(catalog.Defaults())
		return nil
	}
	if len(types) == 0 {
		log.Println("Catalog store is empty, using built-in defaults")
		s.snapshot.Store(catalog.Defaults())
		return nil
	}

	reqs, err := s.repo.ListRequirements(ctx)
	if err != nil {
		log.Printf("Warning: requirement load failed (%v), using built-in defaults", err)
		s.snapshot.Store(catalog.Defaults())
		return nil
	}

	s.snapshot.Store(catalog.NewSnapshot(types, reqs, catalog.SourceStore))
	log.Printf("Catalog loaded: %d types, %d requirements", len(types), len(reqs))
	return nil
}

// Reload is Load under its request-facing name.
func (s *CatalogService) Reload(ctx context.Context) error {
	return s.Load(ctx)
}

// Snapshot returns the current immutable catalog snapshot. Never nil.
func (s *CatalogService) Snapshot() *catalog.Snapshot {
	return s.snapshot.Load()
}
