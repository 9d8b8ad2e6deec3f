package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"dconn.dev/undercroft/internal/services"
)

// LevelHandler serves the pre-generated levels
type LevelHandler struct {
	levels *services.LevelService
}

// NewLevelHandler creates a new LevelHandler
func NewLevelHandler(ls *services.LevelService) *LevelHandler {
	return &LevelHandler{levels: ls}
}

// ListLevels handles GET /api/levels - returns the level manifest
func (h *LevelHandler) ListLevels(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.levels.Index())
}

// GetLevel handles GET /api/levels/{name}
func (h *LevelHandler) GetLevel(w http.ResponseWriter, r *http.Request) {
	level, err := h.levels.Get(chi.URLParam(r, "name"))
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, level)
}
