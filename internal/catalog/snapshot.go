package catalog

import (
	"time"

	"questdeck/internal/model"
)

// Snapshot is an immutable view of the policy catalog. A snapshot is built
// once and then only read; reloads swap in a whole new snapshot so concurrent
// requests never observe a half-updated catalog.
type Snapshot struct {
	types     []model.QuestionType
	typesByID map[string]model.QuestionType
	reqs      map[string][]model.Requirement
	source    string
	loadedAt  time.Time
}

// Snapshot sources
const (
	SourceStore    = "store"
	SourceDefaults = "defaults"
)

// NewSnapshot builds a snapshot from type and requirement rows.
func NewSnapshot(types []model.QuestionType, reqs []model.Requirement, source string) *Snapshot {
	byID := make(map[string]model.QuestionType, len(types))
	for _, qt := range types {
		byID[qt.TypeID] = qt
	}

	byType := make(map[string][]model.Requirement)
	for _, r := range reqs {
		byType[r.TypeID] = append(byType[r.TypeID], r)
	}

	return &Snapshot{
		types:     types,
		typesByID: byID,
		reqs:      byType,
		source:    source,
		loadedAt:  time.Now(),
	}
}

// Defaults builds a snapshot from the built-in tables.
func Defaults() *Snapshot {
	return NewSnapshot(DefaultTypes(), DefaultRequirements(), SourceDefaults)
}

// Types returns the cataloged question types. Callers must not mutate.
func (s *Snapshot) Types() []model.QuestionType { return s.types }

// Requirements returns the rule table grouped by type id. Callers must not mutate.
func (s *Snapshot) Requirements() map[string][]model.Requirement { return s.reqs }

// TypeByID resolves one catalog entry.
func (s *Snapshot) TypeByID(id string) (model.QuestionType, bool) {
	qt, ok := s.typesByID[id]
	return qt, ok
}

// Source reports where this snapshot came from (store or defaults).
func (s *Snapshot) Source() string { return s.source }

// LoadedAt reports when this snapshot was built.
func (s *Snapshot) LoadedAt() time.Time { return s.loadedAt }
