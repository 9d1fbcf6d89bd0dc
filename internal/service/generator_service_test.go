package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"questdeck/internal/model"
)

type fakeGenerationRepo struct {
	questions map[string][]model.GeneratedQuestion
	deletes   int
}

func (f *fakeGenerationRepo) SaveAll(ctx context.Context, questions []model.GeneratedQuestion) error {
	if f.questions == nil {
		f.questions = make(map[string][]model.GeneratedQuestion)
	}
	for _, q := range questions {
		f.questions[q.TextID] = append(f.questions[q.TextID], q)
	}
	return nil
}

func (f *fakeGenerationRepo) GetByTextID(ctx context.Context, textID string) ([]model.GeneratedQuestion, error) {
	return f.questions[textID], nil
}

func (f *fakeGenerationRepo) DeleteByTextID(ctx context.Context, textID string) error {
	f.deletes++
	delete(f.questions, textID)
	return nil
}

type fakeGenerationCache struct {
	results map[string]*model.GenerationResult
}

func (f *fakeGenerationCache) SetResult(ctx context.Context, textID string, result *model.GenerationResult) error {
	if f.results == nil {
		f.results = make(map[string]*model.GenerationResult)
	}
	f.results[textID] = result
	return nil
}

func (f *fakeGenerationCache) GetResult(ctx context.Context, textID string) (*model.GenerationResult, error) {
	return f.results[textID], nil
}

func (f *fakeGenerationCache) DeleteResult(ctx context.Context, textID string) error {
	delete(f.results, textID)
	return nil
}

func newGeneratorFixture() (*GeneratorService, *fakeGenerationRepo, *fakeGenerationCache) {
	repo := &fakeGenerationRepo{}
	genCache := &fakeGenerationCache{}
	svc := NewGeneratorService(repo, genCache)
	svc.config.APIKey = ""
	return svc, repo, genCache
}

func testDecision() *model.Decision {
	return &model.Decision{
		FinalTypes: []string{"main_idea", "detail"},
		TypeDetails: []model.QuestionType{
			{TypeID: "main_idea", Name: "Main Idea", Priority: 1, Category: model.CategoryMain},
			{TypeID: "detail", Name: "Detail", Priority: 2, Category: model.CategoryDetail},
		},
		Capacity: 5,
	}
}

func TestGenerateQuestions_MockFallbackWithoutAPIKey(t *testing.T) {
	svc, repo, genCache := newGeneratorFixture()
	broadcaster := &fakeBroadcaster{}
	svc.SetBroadcaster(broadcaster)

	passage := &model.Passage{TextID: "T020", Title: "Honeybees", Body: "..."}
	result, err := svc.GenerateQuestions(context.Background(), passage, testDecision())
	require.NoError(t, err)

	assert.True(t, result.Mocked)
	assert.Equal(t, "T020", result.TextID)
	require.Len(t, result.Questions, 2)
	for i, q := range result.Questions {
		assert.NotEmpty(t, q.ID)
		assert.Equal(t, "T020", q.TextID)
		assert.Equal(t, testDecision().TypeDetails[i].TypeID, q.TypeID)
		assert.Len(t, q.Options, 4)
		assert.Contains(t, q.Options, q.Answer)
	}

	assert.Len(t, repo.questions["T020"], 2)
	assert.NotNil(t, genCache.results["T020"])

	require.Len(t, broadcaster.events, 1)
	assert.Equal(t, "generation_completed", broadcaster.events[0].eventType)
}

func TestGenerateQuestions_ReplacesPreviousQuestions(t *testing.T) {
	svc, repo, _ := newGeneratorFixture()
	passage := &model.Passage{TextID: "T021", Title: "Attention", Body: "..."}

	_, err := svc.GenerateQuestions(context.Background(), passage, testDecision())
	require.NoError(t, err)
	_, err = svc.GenerateQuestions(context.Background(), passage, testDecision())
	require.NoError(t, err)

	assert.Equal(t, 2, repo.deletes)
	assert.Len(t, repo.questions["T021"], 2, "regeneration must replace, not append")
}

func TestGetQuestions_PrefersCache(t *testing.T) {
	svc, repo, genCache := newGeneratorFixture()

	repo.questions = map[string][]model.GeneratedQuestion{
		"T022": {{ID: "stale", TextID: "T022", TypeID: "detail"}},
	}
	genCache.results = map[string]*model.GenerationResult{
		"T022": {TextID: "T022", Questions: []model.GeneratedQuestion{{ID: "fresh", TextID: "T022", TypeID: "detail"}}},
	}

	questions, err := svc.GetQuestions(context.Background(), "T022")
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "fresh", questions[0].ID)
}

func TestGetQuestions_FallsBackToStore(t *testing.T) {
	svc, repo, _ := newGeneratorFixture()
	repo.questions = map[string][]model.GeneratedQuestion{
		"T023": {{ID: "stored", TextID: "T023", TypeID: "main_idea"}},
	}

	questions, err := svc.GetQuestions(context.Background(), "T023")
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "stored", questions[0].ID)
}

func TestRepairResponse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"clean json", `{"questions":[]}`, `{"questions":[]}`},
		{"json fence", "```json\n{\"questions\":[]}\n```", `{"questions":[]}`},
		{"bare fence", "```\n{\"questions\":[]}\n```", `{"questions":[]}`},
		{"surrounding prose", `Here you go: {"questions":[]} hope that helps`, `{"questions":[]}`},
		{"no object at all", "sorry, cannot comply", "sorry, cannot comply"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, repairResponse(tt.in))
		})
	}
}
