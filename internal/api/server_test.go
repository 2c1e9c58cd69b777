package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/springlab/osmu/internal/artifact"
	"github.com/springlab/osmu/internal/studio"
)

// slowGateway implements studio.Gateway with canned output. The
// optional gate channel blocks GenerateArticle until closed, which
// lets tests observe the in-flight state deterministically.
type slowGateway struct {
	mu   sync.Mutex
	gate chan struct{}
}

func (g *slowGateway) GenerateArticle(ctx context.Context, topic string) (string, error) {
	g.mu.Lock()
	gate := g.gate
	g.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return "article about " + topic, nil
}

func (g *slowGateway) GenerateSummary(ctx context.Context, text string) (string, error) {
	return "summary", nil
}

func (g *slowGateway) GenerateImage(ctx context.Context, visualPrompt string) (string, error) {
	return "data:image/png;base64,aW1n", nil
}

func (g *slowGateway) GenerateWebCode(ctx context.Context, text string) (string, error) {
	return "<section>web</section>", nil
}

func (g *slowGateway) RefineContent(ctx context.Context, original, instruction string, kind artifact.RefineKind) (string, error) {
	return original + " (edited)", nil
}

func (g *slowGateway) GenerateScenePlan(ctx context.Context, topic string) ([]artifact.Scene, error) {
	return []artifact.Scene{
		{VisualPrompt: "scene one", Caption: "장면 1"},
		{VisualPrompt: "scene two", Caption: "장면 2"},
		{VisualPrompt: "scene three", Caption: "장면 3"},
	}, nil
}

func testServer(t *testing.T, gw studio.Gateway) *Server {
	t.Helper()

	if gw == nil {
		gw = &slowGateway{}
	}
	st := studio.New(gw, slog.New(slog.DiscardHandler))

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	srv, err := NewServer(ctx, ServerConfig{
		Logger:      slog.New(slog.DiscardHandler),
		Studio:      st,
		CORSOrigins: []string{"http://localhost:5173"},
	})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return srv
}

// waitIdle polls the state endpoint until no generation is in flight
// and the history holds want entries.
func waitIdle(t *testing.T, h http.Handler, want int) map[string]any {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/state", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("GET /api/v1/state status = %d", w.Code)
		}

		var snap map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
			t.Fatalf("decode state: %v", err)
		}
		generating, _ := snap["isGenerating"].(bool)
		history, _ := snap["history"].([]any)
		if !generating && len(history) == want {
			return snap
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("timed out waiting for generation to settle")
	return nil
}

func TestNewServer(t *testing.T) {
	srv := testServer(t, nil)
	if srv.Handler() == nil {
		t.Fatal("NewServer().Handler() returned nil")
	}
}

func TestNewServer_MissingStudio(t *testing.T) {
	_, err := NewServer(context.Background(), ServerConfig{})
	if err == nil {
		t.Fatal("NewServer(nil studio) expected error, got nil")
	}
}

func TestHealthEndpoints(t *testing.T) {
	h := testServer(t, nil).Handler()

	for _, path := range []string{"/healthz", "/readyz"} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, w.Code)
		}
	}
}

func TestGetState_InitialGreeting(t *testing.T) {
	h := testServer(t, nil).Handler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/state", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var snap map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	messages, _ := snap["messages"].([]any)
	if len(messages) != 1 {
		t.Fatalf("messages = %d, want greeting only", len(messages))
	}
}

func TestSubmit_GeneratesContent(t *testing.T) {
	h := testServer(t, nil).Handler()

	body := bytes.NewBufferString(`{"text":"봄꽃"}`)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/messages", body))

	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202: %s", w.Code, w.Body.String())
	}

	snap := waitIdle(t, h, 1)
	current, ok := snap["currentResult"].(map[string]any)
	if !ok {
		t.Fatal("no open content after generation")
	}
	if current["originalText"] != "article about 봄꽃" {
		t.Errorf("originalText = %v", current["originalText"])
	}
	board, _ := current["videoStoryboard"].([]any)
	if len(board) != 3 {
		t.Errorf("storyboard scenes = %d, want 3", len(board))
	}
}

func TestSubmit_EmptyInput(t *testing.T) {
	h := testServer(t, nil).Handler()

	body := bytes.NewBufferString(`{"text":"   "}`)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/messages", body))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestSubmit_InvalidJSON(t *testing.T) {
	h := testServer(t, nil).Handler()

	body := bytes.NewBufferString(`{"text":`)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/messages", body))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestSubmit_ConflictWhileGenerating(t *testing.T) {
	gw := &slowGateway{gate: make(chan struct{})}
	h := testServer(t, gw).Handler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/messages",
		bytes.NewBufferString(`{"text":"first"}`)))
	if w.Code != http.StatusAccepted {
		t.Fatalf("first submit status = %d, want 202", w.Code)
	}

	// Wait until the detached run claims the guard.
	deadline := time.Now().Add(time.Second)
	for {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/state", nil))
		var snap map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if generating, _ := snap["isGenerating"].(bool); generating {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("generation never started")
		}
		time.Sleep(time.Millisecond)
	}

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/messages",
		bytes.NewBufferString(`{"text":"second"}`)))
	if w.Code != http.StatusConflict {
		t.Fatalf("second submit status = %d, want 409", w.Code)
	}

	close(gw.gate)
	waitIdle(t, h, 1)
}

func TestNewProject_ClosesContent(t *testing.T) {
	h := testServer(t, nil).Handler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/messages",
		bytes.NewBufferString(`{"text":"topic"}`)))
	if w.Code != http.StatusAccepted {
		t.Fatalf("submit status = %d", w.Code)
	}
	waitIdle(t, h, 1)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/project", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("new project status = %d, want 200", w.Code)
	}

	snap := waitIdle(t, h, 1)
	if snap["currentResult"] != nil {
		t.Error("current content survived new project")
	}
	history, _ := snap["history"].([]any)
	if len(history) != 1 {
		t.Errorf("history = %d, want 1 (retained)", len(history))
	}
}

func TestOpenHistory(t *testing.T) {
	h := testServer(t, nil).Handler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/messages",
		bytes.NewBufferString(`{"text":"topic"}`)))
	if w.Code != http.StatusAccepted {
		t.Fatalf("submit status = %d", w.Code)
	}
	snap := waitIdle(t, h, 1)

	history, _ := snap["history"].([]any)
	entry, _ := history[0].(map[string]any)
	id, _ := entry["id"].(string)
	if id == "" {
		t.Fatal("history entry has no id")
	}

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/project", nil))

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/history/"+id+"/open", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("open status = %d, want 200: %s", w.Code, w.Body.String())
	}

	snap = waitIdle(t, h, 1)
	current, _ := snap["currentResult"].(map[string]any)
	if current == nil || current["id"] != id {
		t.Errorf("open did not restore content %s", id)
	}
}

func TestOpenHistory_BadID(t *testing.T) {
	h := testServer(t, nil).Handler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/history/not-a-uuid/open", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost,
		"/api/v1/history/3f6f1c0a-62a1-4d51-9c43-000000000000/open", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestGetHistory(t *testing.T) {
	h := testServer(t, nil).Handler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/history", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != "[]" && got != "null" {
		t.Errorf("empty history body = %q", got)
	}
}

func TestRequestIDHeader(t *testing.T) {
	h := testServer(t, nil).Handler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/state", nil))
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
}

func TestCORSPreflight(t *testing.T) {
	h := testServer(t, nil).Handler()

	r := httptest.NewRequest(http.MethodOptions, "/api/v1/messages", nil)
	r.Header.Set("Origin", "http://localhost:5173")
	r.Header.Set("Access-Control-Request-Method", http.MethodPost)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Allow-Origin = %q", got)
	}
}
