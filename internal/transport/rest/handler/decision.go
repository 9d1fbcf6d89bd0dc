package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"questdeck/internal/model"
	"questdeck/internal/service"
)

// DecisionHandler handles question-type decision endpoints
type DecisionHandler struct {
	decisionSvc *service.DecisionService
}

// NewDecisionHandler creates a new decision handler
func NewDecisionHandler(decisionSvc *service.DecisionService) *DecisionHandler {
	return &DecisionHandler{decisionSvc: decisionSvc}
}

// DecideRequest is the request body for a type decision. TextID is optional
// when Attributes carries the full record; Attributes override stored
// features; Capacity falls back to the engine default when non-positive.
type DecideRequest struct {
	TextID     string                `json:"textId,omitempty"`
	Attributes model.AttributeRecord `json:"attributes,omitempty"`
	Capacity   int                   `json:"capacity,omitempty"`
}

// Decide handles POST /v1/decisions
func (h *DecisionHandler) Decide(w http.ResponseWriter, r *http.Request) {
	var req DecideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.TextID == "" && len(req.Attributes) == 0 {
		writeError(w, http.StatusBadRequest, "textId or attributes required")
		return
	}

	decision, err := h.decisionSvc.Decide(r.Context(), req.TextID, req.Attributes, req.Capacity)
	if err != nil {
		if errors.Is(err, service.ErrPassageNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, decision)
}
