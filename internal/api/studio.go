package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/springlab/osmu/internal/studio"
)

// studioHandler translates HTTP requests into studio calls.
type studioHandler struct {
	studio *studio.Studio
	logger *slog.Logger

	// baseCtx bounds detached orchestration runs. It outlives any
	// single request and is canceled on server shutdown.
	baseCtx context.Context
}

// getState returns a full state snapshot.
func (h *studioHandler) getState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.studio.Snapshot())
}

// getHistory returns only the artifact history.
func (h *studioHandler) getHistory(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.studio.Snapshot().History)
}

type submitRequest struct {
	Text string `json:"text"`
}

// submit accepts one user message. The orchestration runs detached from
// the request; clients observe progress via the state stream.
//
// Status codes: 202 accepted, 400 empty input, 409 while another run is
// in flight. The in-flight check here is advisory — the studio's own
// guard is authoritative, so a raced second submission still has zero
// effect even if it slips past the 409.
func (h *studioHandler) submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be JSON")
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		writeError(w, http.StatusBadRequest, "empty_input", "text is required")
		return
	}
	if h.studio.Busy() {
		writeError(w, http.StatusConflict, "busy", "a generation is already in progress")
		return
	}

	requestID := requestIDFromContext(r.Context())
	go func() {
		err := h.studio.Submit(h.baseCtx, text)
		switch {
		case err == nil:
		case errors.Is(err, studio.ErrBusy), errors.Is(err, studio.ErrEmptyInput):
			// Lost the race against another submission; the studio
			// rejected it with zero effect.
			h.logger.Debug("submission rejected by guard", "request_id", requestID, "error", err)
		default:
			// Pipeline failures are already reported to the user via
			// the transcript; log for the operator.
			h.logger.Error("orchestration failed", "request_id", requestID, "error", err)
		}
	}()

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

// newProject closes the open content; history is retained.
func (h *studioHandler) newProject(w http.ResponseWriter, _ *http.Request) {
	h.studio.NewProject()
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// openHistory makes a history entry the open content.
func (h *studioHandler) openHistory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "id must be a uuid")
		return
	}
	if err := h.studio.Open(id); err != nil {
		writeError(w, http.StatusNotFound, "not_found", "no content with that id")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
