package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"questdeck/internal/model"
)

// fakeCatalogRepo serves canned catalog rows or a canned error.
type fakeCatalogRepo struct {
	types []model.QuestionType
	reqs  []model.Requirement
	err   error
}

func (f *fakeCatalogRepo) ListTypes(ctx context.Context) ([]model.QuestionType, error) {
	return f.types, f.err
}

func (f *fakeCatalogRepo) ListRequirements(ctx context.Context) ([]model.Requirement, error) {
	return f.reqs, f.err
}

func (f *fakeCatalogRepo) ReplaceTypes(ctx context.Context, types []model.QuestionType) error {
	f.types = types
	return f.err
}

func (f *fakeCatalogRepo) ReplaceRequirements(ctx context.Context, reqs []model.Requirement) error {
	f.reqs = reqs
	return f.err
}

type fakePassageRepo struct {
	passages map[string]*model.Passage
	reads    int
}

func (f *fakePassageRepo) Upsert(ctx context.Context, passage *model.Passage) error {
	if f.passages == nil {
		f.passages = make(map[string]*model.Passage)
	}
	f.passages[passage.TextID] = passage
	return nil
}

func (f *fakePassageRepo) GetByTextID(ctx context.Context, textID string) (*model.Passage, error) {
	f.reads++
	return f.passages[textID], nil
}

func (f *fakePassageRepo) List(ctx context.Context) ([]*model.Passage, error) {
	out := make([]*model.Passage, 0, len(f.passages))
	for _, p := range f.passages {
		out = append(out, p)
	}
	return out, nil
}

type fakeFeatureCache struct {
	features map[string]model.AttributeRecord
	getErr   error
}

func (f *fakeFeatureCache) SetFeatures(ctx context.Context, textID string, features model.AttributeRecord) error {
	if f.features == nil {
		f.features = make(map[string]model.AttributeRecord)
	}
	f.features[textID] = features
	return nil
}

func (f *fakeFeatureCache) GetFeatures(ctx context.Context, textID string) (model.AttributeRecord, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.features[textID], nil
}

func (f *fakeFeatureCache) DeleteFeatures(ctx context.Context, textID string) error {
	delete(f.features, textID)
	return nil
}

type recordedEvent struct {
	eventType string
	payload   interface{}
}

type fakeBroadcaster struct {
	events []recordedEvent
}

func (f *fakeBroadcaster) BroadcastEvent(eventType string, payload interface{}) {
	f.events = append(f.events, recordedEvent{eventType: eventType, payload: payload})
}

func newDecisionFixture() (*DecisionService, *fakePassageRepo, *fakeFeatureCache) {
	catalogSvc := NewCatalogService(&fakeCatalogRepo{})
	repo := &fakePassageRepo{}
	featureCache := &fakeFeatureCache{}
	return NewDecisionService(catalogSvc, repo, featureCache, false), repo, featureCache
}

func TestDecide_UnknownPassageWithoutAttributes(t *testing.T) {
	svc, _, _ := newDecisionFixture()

	_, err := svc.Decide(context.Background(), "missing", nil, 0)
	assert.True(t, errors.Is(err, ErrPassageNotFound))
}

func TestDecide_InlineAttributesOnly(t *testing.T) {
	svc, repo, _ := newDecisionFixture()

	decision, err := svc.Decide(context.Background(), "", model.AttributeRecord{
		"tone":                 "evaluative",
		"paragraph_count":      3,
		"difficult_word_count": 5,
		"blank_suitability":    4,
		"sentence_count":       6,
	}, 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"main_idea", "detail", "title", "vocab_in_context", "inference_blank"}, decision.FinalTypes)
	assert.Zero(t, repo.reads, "inline decisions must not touch the store")
}

func TestDecide_OverridesWinOverStoredFeatures(t *testing.T) {
	svc, repo, _ := newDecisionFixture()
	require.NoError(t, repo.Upsert(context.Background(), &model.Passage{
		TextID: "T010",
		Features: model.AttributeRecord{
			"tone":            "neutral",
			"paragraph_count": 4,
			"sentence_count":  8,
		},
	}))

	neutral, err := svc.Decide(context.Background(), "T010", nil, 0)
	require.NoError(t, err)
	assert.Contains(t, neutral.FinalTypes, "flow_order")

	evaluative, err := svc.Decide(context.Background(), "T010", model.AttributeRecord{"tone": "evaluative"}, 0)
	require.NoError(t, err)
	assert.NotContains(t, evaluative.FinalTypes, "flow_order")
	assert.NotContains(t, evaluative.FinalTypes, "flow_insertion")
}

func TestDecide_FeatureCacheIsReadThrough(t *testing.T) {
	svc, repo, featureCache := newDecisionFixture()
	require.NoError(t, repo.Upsert(context.Background(), &model.Passage{
		TextID:   "T011",
		Features: model.AttributeRecord{"paragraph_count": 2},
	}))

	_, err := svc.Decide(context.Background(), "T011", nil, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.reads)
	assert.NotNil(t, featureCache.features["T011"], "store read should populate the cache")

	_, err = svc.Decide(context.Background(), "T011", nil, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.reads, "second decision should be served from cache")
}

func TestDecide_CacheFailureFallsBackToStore(t *testing.T) {
	catalogSvc := NewCatalogService(&fakeCatalogRepo{})
	repo := &fakePassageRepo{}
	featureCache := &fakeFeatureCache{getErr: errors.New("redis down")}
	svc := NewDecisionService(catalogSvc, repo, featureCache, false)

	require.NoError(t, repo.Upsert(context.Background(), &model.Passage{
		TextID:   "T012",
		Features: model.AttributeRecord{"paragraph_count": 1},
	}))

	decision, err := svc.Decide(context.Background(), "T012", nil, 0)
	require.NoError(t, err)
	assert.Contains(t, decision.FinalTypes, "title")
}

func TestDecide_BroadcastsDecisionMade(t *testing.T) {
	svc, _, _ := newDecisionFixture()
	broadcaster := &fakeBroadcaster{}
	svc.SetBroadcaster(broadcaster)

	decision, err := svc.Decide(context.Background(), "", model.AttributeRecord{"tone": "neutral"}, 0)
	require.NoError(t, err)

	require.Len(t, broadcaster.events, 1)
	assert.Equal(t, "decision_made", broadcaster.events[0].eventType)
	payload, ok := broadcaster.events[0].payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, decision.FinalTypes, payload["finalTypes"])
}
