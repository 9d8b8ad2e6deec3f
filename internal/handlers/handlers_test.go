package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"dconn.dev/undercroft/internal/config"
	"dconn.dev/undercroft/internal/generation"
	"dconn.dev/undercroft/internal/models"
	"dconn.dev/undercroft/internal/services"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := config.Default()
	cfg.DataPath = t.TempDir()

	levelsDir := filepath.Join(cfg.DataPath, "levels")
	if err := os.MkdirAll(levelsDir, 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(levelsDir, "crypt.json"),
		models.DungeonResponse{Width: 3, Height: 1, Tiles: []string{"#>#"}})
	writeFile(t, filepath.Join(levelsDir, services.IndexFile), models.LevelIndex{
		Levels: []models.LevelRef{{Name: "crypt", Theme: "dungeon", File: "crypt.json"}},
	})

	svc := services.NewDungeonService(cfg.Generator, 1, zap.NewNop())
	return SetupRoutes(cfg, svc, zap.NewNop())
}

func writeFile(t *testing.T, path string, v interface{}) {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
}

func do(t *testing.T, h http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeDungeon(t *testing.T, rec *httptest.ResponseRecorder) models.DungeonResponse {
	t.Helper()
	var resp models.DungeonResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Decoding response failed: %v", err)
	}
	return resp
}

func TestHealthAndThemes(t *testing.T) {
	h := newTestRouter(t)

	if rec := do(t, h, http.MethodGet, "/api/health", nil); rec.Code != http.StatusOK {
		t.Errorf("Expected 200 from health, got %d", rec.Code)
	}

	rec := do(t, h, http.MethodGet, "/api/themes", nil)
	var themes []generation.Theme
	if err := json.NewDecoder(rec.Body).Decode(&themes); err != nil {
		t.Fatalf("Decoding themes failed: %v", err)
	}
	if len(themes) != len(generation.Themes()) {
		t.Errorf("Expected %d themes, got %d", len(generation.Themes()), len(themes))
	}
}

func TestGetDungeon(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/dungeon?width=30&height=20&theme=flooded&doors=0&traps=5", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeDungeon(t, rec)
	if resp.Width != 30 || resp.Height != 20 || len(resp.Tiles) != 20 {
		t.Errorf("Expected 30x20, got %dx%d", resp.Width, resp.Height)
	}
	if resp.Theme != generation.ThemeFlooded || resp.Features.Doors != 0 || resp.Features.Traps != 5 {
		t.Errorf("Expected flooded theme with overrides, got %s %+v", resp.Theme, resp.Features)
	}

	again := decodeDungeon(t, do(t, h, http.MethodGet,
		"/api/dungeon?width=30&height=20&theme=flooded&doors=0&traps=5&seed="+resp.RebuildSeed, nil))
	if strings.Join(again.Tiles, "") != strings.Join(resp.Tiles, "") {
		t.Error("Expected the seed to reproduce the dungeon")
	}
}

func TestGetDungeonBadRequests(t *testing.T) {
	h := newTestRouter(t)
	for _, target := range []string{
		"/api/dungeon?width=abc",
		"/api/dungeon?width=999",
		"/api/dungeon?layout=maze",
		"/api/dungeon?water=lots",
		"/api/dungeon?seed=-1",
	} {
		rec := do(t, h, http.MethodGet, target, nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "error") {
			t.Errorf("%s: expected an error body, got %s", target, rec.Body.String())
		}
	}
}

func TestPostDungeonAndLast(t *testing.T) {
	h := newTestRouter(t)

	if rec := do(t, h, http.MethodGet, "/api/dungeon/last", nil); rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 before any run, got %d", rec.Code)
	}

	if rec := do(t, h, http.MethodPost, "/api/dungeon", []byte("{")); rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for a broken body, got %d", rec.Code)
	}

	body, _ := json.Marshal(models.GenerateRequest{Width: 40, Height: 25, Theme: generation.ThemeCavern})
	rec := do(t, h, http.MethodPost, "/api/dungeon", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	posted := decodeDungeon(t, rec)
	if posted.Layout != "caverns" {
		t.Errorf("Expected cavern theme to use the caverns layout, got %q", posted.Layout)
	}

	last := decodeDungeon(t, do(t, h, http.MethodGet, "/api/dungeon/last", nil))
	if last.RebuildSeed != posted.RebuildSeed {
		t.Error("Expected last to return the posted dungeon")
	}

	rec = do(t, h, http.MethodGet, "/api/dungeon/last.txt", nil)
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Expected plain text, got %q", ct)
	}
	if rec.Body.String() != strings.Join(posted.Tiles, "\n")+"\n" {
		t.Error("Expected the text rows of the last dungeon")
	}
}

func TestLevels(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/levels", nil)
	var index models.LevelIndex
	if err := json.NewDecoder(rec.Body).Decode(&index); err != nil || len(index.Levels) != 1 {
		t.Fatalf("Expected one level in the index, got %v (%v)", index, err)
	}

	level := decodeDungeon(t, do(t, h, http.MethodGet, "/api/levels/crypt", nil))
	if level.Tiles[0] != "#>#" {
		t.Errorf("Unexpected level %+v", level)
	}

	if rec := do(t, h, http.MethodGet, "/api/levels/attic", nil); rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}

func TestWebsocketPreview(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(t))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer ws.Close()

	exchange := func(msg models.BaseMessage) (models.MessageType, json.RawMessage) {
		t.Helper()
		if err := ws.WriteJSON(msg); err != nil {
			t.Fatalf("WriteJSON failed: %v", err)
		}
		var reply struct {
			Type    models.MessageType `json:"type"`
			Payload json.RawMessage    `json:"payload"`
		}
		if err := ws.ReadJSON(&reply); err != nil {
			t.Fatalf("ReadJSON failed: %v", err)
		}
		return reply.Type, reply.Payload
	}

	typ, payload := exchange(models.BaseMessage{
		Type:    models.MessageTypeGenerate,
		Payload: models.GenerateRequest{Width: 32, Height: 24, Theme: generation.ThemeOvergrown},
	})
	if typ != models.MessageTypeDungeon {
		t.Fatalf("Expected a dungeon reply, got %q: %s", typ, payload)
	}
	var resp models.DungeonResponse
	if err := json.Unmarshal(payload, &resp); err != nil || resp.Width != 32 || resp.Height != 24 {
		t.Errorf("Unexpected dungeon payload (%v): %dx%d", err, resp.Width, resp.Height)
	}

	typ, payload = exchange(models.BaseMessage{
		Type:    models.MessageTypeGenerate,
		Payload: models.GenerateRequest{Width: 5000},
	})
	var failure models.ErrorMessage
	json.Unmarshal(payload, &failure)
	if typ != models.MessageTypeError || failure.Code != "GENERATE_FAILED" {
		t.Errorf("Expected GENERATE_FAILED, got %q %+v", typ, failure)
	}

	typ, _ = exchange(models.BaseMessage{Type: models.MessageTypeThemes})
	if typ != models.MessageTypeThemes {
		t.Errorf("Expected themes reply, got %q", typ)
	}

	typ, payload = exchange(models.BaseMessage{Type: "dance"})
	json.Unmarshal(payload, &failure)
	if typ != models.MessageTypeError || failure.Code != "UNKNOWN_MESSAGE_TYPE" {
		t.Errorf("Expected UNKNOWN_MESSAGE_TYPE, got %q %+v", typ, failure)
	}
}
