package handlers

import (
	"encoding/json"
	"net/http"

	"dconn.dev/undercroft/internal/models"
	"dconn.dev/undercroft/internal/services"
)

// DungeonHandler handles dungeon generation endpoints
type DungeonHandler struct {
	dungeons *services.DungeonService
}

// NewDungeonHandler creates a new DungeonHandler
func NewDungeonHandler(ds *services.DungeonService) *DungeonHandler {
	return &DungeonHandler{dungeons: ds}
}

// ListThemes handles GET /api/themes
func (h *DungeonHandler) ListThemes(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.dungeons.Themes())
}

// GetDungeon handles GET /api/dungeon, reading the request from the query
func (h *DungeonHandler) GetDungeon(w http.ResponseWriter, r *http.Request) {
	req, err := parseGenerateQuery(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.generate(w, req)
}

// PostDungeon handles POST /api/dungeon with a JSON GenerateRequest
func (h *DungeonHandler) PostDungeon(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	h.generate(w, req)
}

func (h *DungeonHandler) generate(w http.ResponseWriter, req models.GenerateRequest) {
	resp, err := h.dungeons.Generate(req)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// LastDungeon handles GET /api/dungeon/last
func (h *DungeonHandler) LastDungeon(w http.ResponseWriter, r *http.Request) {
	last, err := h.dungeons.Last()
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, last)
}

// LastDungeonText handles GET /api/dungeon/last.txt
func (h *DungeonHandler) LastDungeonText(w http.ResponseWriter, r *http.Request) {
	text, err := h.dungeons.LastText()
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(text))
}

// parseGenerateQuery builds a GenerateRequest from query parameters
func parseGenerateQuery(r *http.Request) (models.GenerateRequest, error) {
	q := r.URL.Query()
	req := models.GenerateRequest{
		Theme:  q.Get("theme"),
		Layout: q.Get("layout"),
		Seed:   q.Get("seed"),
	}

	var err error
	if req.Width, err = parseIntParam(r, "width", 0); err != nil {
		return req, err
	}
	if req.Height, err = parseIntParam(r, "height", 0); err != nil {
		return req, err
	}

	o := &req.Overrides
	params := []struct {
		name string
		dst  **int
	}{
		{"water", &o.Water},
		{"islands", &o.Islands},
		{"grass", &o.Grass},
		{"boulders", &o.Boulders},
		{"doors", &o.Doors},
		{"traps", &o.Traps},
	}
	for _, p := range params {
		if *p.dst, err = parseOptionalInt(r, p.name); err != nil {
			return req, err
		}
	}

	if q.Has("wide") {
		wide := q.Get("wide") == "true" || q.Get("wide") == "1"
		o.WideDoors = &wide
	}
	return req, nil
}
