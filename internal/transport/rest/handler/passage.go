package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"questdeck/internal/model"
	"questdeck/internal/service"
)

// Generator abstracts the question generation backend so tests can substitute
// a fake.
type Generator interface {
	GenerateQuestions(ctx context.Context, passage *model.Passage, decision *model.Decision) (*model.GenerationResult, error)
	GetQuestions(ctx context.Context, textID string) ([]model.GeneratedQuestion, error)
}

// PassageHandler handles passage and generation endpoints
type PassageHandler struct {
	passageSvc  *service.PassageService
	decisionSvc *service.DecisionService
	generator   Generator
}

// NewPassageHandler creates a new passage handler
func NewPassageHandler(passageSvc *service.PassageService, decisionSvc *service.DecisionService, generator Generator) *PassageHandler {
	return &PassageHandler{
		passageSvc:  passageSvc,
		decisionSvc: decisionSvc,
		generator:   generator,
	}
}

// UpsertPassageRequest is the request body for creating or replacing a passage
type UpsertPassageRequest struct {
	TextID   string                `json:"textId"`
	Title    string                `json:"title"`
	Body     string                `json:"body"`
	Features model.AttributeRecord `json:"features"`
}

// Upsert handles POST /v1/passages
func (h *PassageHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req UpsertPassageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.TextID == "" {
		writeError(w, http.StatusBadRequest, "textId is required")
		return
	}

	passage := &model.Passage{
		TextID:   req.TextID,
		Title:    req.Title,
		Body:     req.Body,
		Features: req.Features,
	}
	if err := h.passageSvc.Upsert(r.Context(), passage); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, passage)
}

// Get handles GET /v1/passages/{textId}
func (h *PassageHandler) Get(w http.ResponseWriter, r *http.Request) {
	textID := mux.Vars(r)["textId"]

	passage, err := h.passageSvc.GetByTextID(r.Context(), textID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if passage == nil {
		writeError(w, http.StatusNotFound, "passage not found")
		return
	}

	writeJSON(w, http.StatusOK, passage)
}

// List handles GET /v1/passages
func (h *PassageHandler) List(w http.ResponseWriter, r *http.Request) {
	passages, err := h.passageSvc.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"passages": passages})
}

// GenerateRequest is the request body for question generation
type GenerateRequest struct {
	Attributes model.AttributeRecord `json:"attributes,omitempty"`
	Capacity   int                   `json:"capacity,omitempty"`
}

// Generate handles POST /v1/passages/{textId}/questions: decide, then invoke
// the generation backend for the final type list.
func (h *PassageHandler) Generate(w http.ResponseWriter, r *http.Request) {
	textID := mux.Vars(r)["textId"]

	var req GenerateRequest
	if r.Body != nil {
		// Body is optional; ignore decode errors on empty bodies.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	passage, err := h.passageSvc.GetByTextID(r.Context(), textID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if passage == nil {
		writeError(w, http.StatusNotFound, "passage not found")
		return
	}

	decision, err := h.decisionSvc.Decide(r.Context(), textID, req.Attributes, req.Capacity)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	result, err := h.generator.GenerateQuestions(r.Context(), passage, decision)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"decision": decision,
		"result":   result,
	})
}

// GetQuestions handles GET /v1/passages/{textId}/questions
func (h *PassageHandler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	textID := mux.Vars(r)["textId"]

	questions, err := h.generator.GetQuestions(r.Context(), textID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"questions": questions})
}
