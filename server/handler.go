package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/querypod/querypod"
)

// Query is the request envelope for POST /agent.
type Query struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id"`
}

type agentHandler struct {
	store      querypod.SessionStore
	streamer   *querypod.Streamer
	buildAgent func() querypod.Runner
	logger     *slog.Logger
}

// serveAgent resolves the session, appends the user turn and relays the
// frame stream. Anything that fails before streaming begins is a plain
// HTTP 500 with detail; once the stream is open, failures travel as error
// frames instead.
func (h *agentHandler) serveAgent(w http.ResponseWriter, r *http.Request) {
	var query Query
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		http.Error(w, fmt.Sprintf("Error: %s", err), http.StatusInternalServerError)
		return
	}

	sessionID, history := h.store.GetOrCreate(query.SessionID)
	history = append(history, querypod.UserTurn(query.Query))

	agent := h.buildAgent()

	sse, err := newSSEWriter(w)
	if err != nil {
		http.Error(w, fmt.Sprintf("Error: %s", err), http.StatusInternalServerError)
		return
	}

	for frame := range h.streamer.Stream(r.Context(), agent, history, sessionID) {
		if err := sse.WriteFrame(frame); err != nil {
			// Client is gone; keep draining so the stream goroutine exits.
			h.logger.Debug("frame write failed", "sessionID", sessionID, "error", err)
		}
	}
}

// serveHealth reports liveness.
func serveHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
}
