// Package server exposes the HTTP surface: query submission over SSE and a
// liveness check.
package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/querypod/querypod"
)

// Config wires the server's collaborators. BuildAgent is called once per
// request so every stream gets a fresh agent with current tool bindings.
type Config struct {
	Store      querypod.SessionStore
	Streamer   *querypod.Streamer
	BuildAgent func() querypod.Runner
	Logger     *slog.Logger

	// FrontendOrigin is the single origin allowed by CORS.
	FrontendOrigin string
}

// New assembles the routed and middleware-wrapped handler.
func New(cfg Config) (http.Handler, error) {
	if cfg.Store == nil {
		return nil, errors.New("session store is required")
	}
	if cfg.Streamer == nil {
		return nil, errors.New("streamer is required")
	}
	if cfg.BuildAgent == nil {
		return nil, errors.New("agent builder is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ah := &agentHandler{
		store:      cfg.Store,
		streamer:   cfg.Streamer,
		buildAgent: cfg.BuildAgent,
		logger:     logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /agent", ah.serveAgent)
	mux.HandleFunc("GET /api/health", serveHealth)

	// Outermost first: recovery, logging, CORS, routes.
	var handler http.Handler = mux
	handler = corsMiddleware(cfg.FrontendOrigin)(handler)
	handler = loggingMiddleware(logger)(handler)
	handler = recoveryMiddleware(logger)(handler)

	return handler, nil
}
