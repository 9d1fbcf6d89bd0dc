package handler

import (
	"net/http"

	"questdeck/internal/service"
)

// CatalogHandler exposes the current policy catalog snapshot
type CatalogHandler struct {
	catalogSvc  *service.CatalogService
	broadcaster service.Broadcaster
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogSvc *service.CatalogService, broadcaster service.Broadcaster) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc, broadcaster: broadcaster}
}

// ListTypes handles GET /v1/catalog/types
func (h *CatalogHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
	snap := h.catalogSvc.Snapshot()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"types":    snap.Types(),
		"source":   snap.Source(),
		"loadedAt": snap.LoadedAt(),
	})
}

// ListRequirements handles GET /v1/catalog/requirements
func (h *CatalogHandler) ListRequirements(w http.ResponseWriter, r *http.Request) {
	snap := h.catalogSvc.Snapshot()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"requirements": snap.Requirements(),
		"source":       snap.Source(),
		"loadedAt":     snap.LoadedAt(),
	})
}

// Reload handles POST /v1/catalog/reload
func (h *CatalogHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.catalogSvc.Reload(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	snap := h.catalogSvc.Snapshot()
	if h.broadcaster != nil {
		h.broadcaster.BroadcastEvent("catalog_reloaded", map[string]interface{}{
			"types":    len(snap.Types()),
			"source":   snap.Source(),
			"loadedAt": snap.LoadedAt(),
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"types":    len(snap.Types()),
		"source":   snap.Source(),
		"loadedAt": snap.LoadedAt(),
	})
}
