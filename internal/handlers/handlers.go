package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"dconn.dev/undercroft/internal/config"
	"dconn.dev/undercroft/internal/generation"
	"dconn.dev/undercroft/internal/layout"
	"dconn.dev/undercroft/internal/middleware"
	"dconn.dev/undercroft/internal/services"
)

// SetupRoutes configures all routes and returns the router
func SetupRoutes(cfg *config.Config, dungeons *services.DungeonService, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(chimw.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))

	// Pre-generated levels are optional
	levels, err := services.NewLevelService(filepath.Join(cfg.DataPath, "levels"))
	if err != nil {
		logger.Warn("pre-generated levels unavailable", zap.Error(err))
	}

	// Initialize handlers
	dungeonHandler := NewDungeonHandler(dungeons)
	wsHandler := NewWSHandler(dungeons, logger)
	var levelHandler *LevelHandler
	if levels != nil {
		levelHandler = NewLevelHandler(levels)
	}

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/themes", dungeonHandler.ListThemes)
		r.Get("/dungeon", dungeonHandler.GetDungeon)
		r.Post("/dungeon", dungeonHandler.PostDungeon)
		r.Get("/dungeon/last", dungeonHandler.LastDungeon)
		r.Get("/dungeon/last.txt", dungeonHandler.LastDungeonText)

		if levelHandler != nil {
			r.Get("/levels", levelHandler.ListLevels)
			r.Get("/levels/{name}", levelHandler.GetLevel)
		}

		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	r.Get("/ws", wsHandler.ServeWS)

	return r
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Error("encoding JSON", zap.Error(err))
	}
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// statusFor maps service errors onto HTTP statuses
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidRequest),
		errors.Is(err, generation.ErrInvalidSize),
		errors.Is(err, layout.ErrUnknownLayout):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNoDungeon),
		errors.Is(err, services.ErrLevelNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// parseIntParam parses an integer query parameter with a default value
func parseIntParam(r *http.Request, name string, defaultVal int) (int, error) {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal, nil
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return 0, errors.New("invalid " + name)
	}
	return intVal, nil
}

// parseOptionalInt returns nil when the query parameter is absent
func parseOptionalInt(r *http.Request, name string) (*int, error) {
	if !r.URL.Query().Has(name) {
		return nil, nil
	}
	v, err := parseIntParam(r, name, 0)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
