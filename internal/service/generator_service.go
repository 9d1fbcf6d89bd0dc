package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"questdeck/internal/cache"
	"questdeck/internal/config"
	"questdeck/internal/model"
	"questdeck/internal/repository"
)

// GeneratorService produces questions for a passage via the Gemini API, one
// request covering every selected type. Without an API key it falls back to a
// mock generator so the rest of the pipeline stays exercisable.
type GeneratorService struct {
	config      *config.AIConfig
	client      *http.Client
	genRepo     repository.GenerationRepo
	genCache    cache.GenerationCache
	broadcaster Broadcaster
}

// NewGeneratorService creates a new generator service
func NewGeneratorService(genRepo repository.GenerationRepo, genCache cache.GenerationCache) *GeneratorService {
	cfg := config.DefaultAIConfig()
	return &GeneratorService{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
		genRepo:  genRepo,
		genCache: genCache,
	}
}

// SetBroadcaster injects the WebSocket broadcaster (optional)
func (s *GeneratorService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// GenerateQuestions generates one question per selected type, replaces the
// passage's persisted questions, and caches the bundled result.
func (s *GeneratorService) GenerateQuestions(ctx context.Context, passage *model.Passage, decision *model.Decision) (*model.GenerationResult, error) {
	var questions []model.GeneratedQuestion
	mocked := false

	if s.config.IsEnabled() {
		generated, err := s.generateViaGemini(ctx, passage, decision)
		if err != nil {
			log.Printf("Warning: generation failed for %s (%v), using mock generator", passage.TextID, err)
			questions = s.mockQuestions(passage, decision)
			mocked = true
		} else {
			questions = generated
		}
	} else {
		questions = s.mockQuestions(passage, decision)
		mocked = true
	}

	now := time.Now()
	for i := range questions {
		questions[i].ID = uuid.New().String()
		questions[i].TextID = passage.TextID
		questions[i].CreatedAt = now
	}

	result := &model.GenerationResult{
		TextID:    passage.TextID,
		TypeIDs:   decision.FinalTypes,
		Questions: questions,
		Mocked:    mocked,
		CreatedAt: now,
	}

	if s.genRepo != nil {
		if err := s.genRepo.DeleteByTextID(ctx, passage.TextID); err != nil {
			return nil, err
		}
		if err := s.genRepo.SaveAll(ctx, questions); err != nil {
			return nil, err
		}
	}
	if s.genCache != nil {
		if err := s.genCache.SetResult(ctx, passage.TextID, result); err != nil {
			log.Printf("Warning: generation cache write failed for %s: %v", passage.TextID, err)
		}
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastEvent("generation_completed", map[string]interface{}{
			"textId":    passage.TextID,
			"typeIds":   decision.FinalTypes,
			"questions": len(questions),
			"mocked":    mocked,
		})
	}

	return result, nil
}

// GetQuestions returns the persisted questions for a passage, cache first.
func (s *GeneratorService) GetQuestions(ctx context.Context, textID string) ([]model.GeneratedQuestion, error) {
	if s.genCache != nil {
		result, err := s.genCache.GetResult(ctx, textID)
		if err != nil {
			log.Printf("Warning: generation cache read failed for %s: %v", textID, err)
		} else if result != nil {
			return result.Questions, nil
		}
	}
	if s.genRepo == nil {
		return nil, nil
	}
	return s.genRepo.GetByTextID(ctx, textID)
}

func (s *GeneratorService) generateViaGemini(ctx context.Context, passage *model.Passage, decision *model.Decision) ([]model.GeneratedQuestion, error) {
	prompt := s.buildGenerationPrompt(passage, decision)

	// Larger type sets go to the bulk-quality model.
	modelName := s.config.Models.Generate
	if len(decision.FinalTypes) > 3 {
		modelName = s.config.Models.Batch
	}

	response, err := s.callGemini(ctx, modelName, prompt)
	if err != nil {
		return nil, err
	}

	var gen model.GeminiGeneration
	if err := json.Unmarshal([]byte(repairResponse(response)), &gen); err != nil {
		return nil, fmt.Errorf("unparseable generation response: %w", err)
	}
	if len(gen.Questions) == 0 {
		return nil, fmt.Errorf("empty generation response")
	}
	return gen.Questions, nil
}

// callGemini makes a request to the Gemini API
func (s *GeneratorService) callGemini(ctx context.Context, modelName, prompt string) (string, error) {
	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"responseMimeType": "application/json",
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?key=%s", s.config.ModelEndpoint(modelName), s.config.APIKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", err
	}

	if len(geminiResp.Candidates) > 0 && len(geminiResp.Candidates[0].Content.Parts) > 0 {
		return geminiResp.Candidates[0].Content.Parts[0].Text, nil
	}

	return "", fmt.Errorf("empty response from Gemini")
}

// repairResponse salvages near-JSON model output: code fences are stripped and
// the outermost object is extracted.
func repairResponse(response string) string {
	s := strings.TrimSpace(response)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}

func (s *GeneratorService) buildGenerationPrompt(passage *model.Passage, decision *model.Decision) string {
	var typeLines strings.Builder
	for _, qt := range decision.TypeDetails {
		name := qt.Name
		if name == "" {
			name = qt.TypeID
		}
		typeLines.WriteString(fmt.Sprintf("- %s (%s): %s\n", qt.TypeID, name, qt.Description))
	}

	return fmt.Sprintf(`You are an assessment item writer. Generate exactly one multiple-choice question per requested type. Return ONLY valid JSON:
{
  "questions": [{
    "typeId": "type id from the list",
    "prompt": "question text",
    "options": ["option 1", "option 2", "option 3", "option 4"],
    "answer": "the correct option",
    "explanation": "why the answer is correct"
  }]
}

Passage title: %s
Passage:
%s

Requested question types:
%s
Write each question so it can be answered from the passage alone. Distractors must be plausible but clearly wrong on a close reading.`,
		passage.Title, passage.Body, typeLines.String())
}

// Mock implementation
func (s *GeneratorService) mockQuestions(passage *model.Passage, decision *model.Decision) []model.GeneratedQuestion {
	questions := make([]model.GeneratedQuestion, 0, len(decision.FinalTypes))
	for _, qt := range decision.TypeDetails {
		name := qt.Name
		if name == "" {
			name = qt.TypeID
		}
		questions = append(questions, model.GeneratedQuestion{
			TypeID: qt.TypeID,
			Prompt: fmt.Sprintf("[%s] Placeholder question for \"%s\" - enable Gemini for real items.", name, passage.Title),
			Options: []string{
				"Option A", "Option B", "Option C", "Option D",
			},
			Answer:      "Option A",
			Explanation: "Mock question generated without an AI backend.",
		})
	}
	return questions
}
