package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/querypod/querypod"
)

// sseWriter wraps an http.ResponseWriter for Server-Sent Events streaming.
type sseWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// newSSEWriter creates an SSE writer and sets the stream headers. It fails
// before any byte is written when the connection cannot stream, so the
// handler can still answer with a plain HTTP error.
func newSSEWriter(w http.ResponseWriter) (*sseWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("response writer does not support flushing")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // disable nginx buffering

	return &sseWriter{w: w, flusher: flusher}, nil
}

// WriteFrame serializes one frame as a single SSE event: the "data: "
// prefix, the JSON payload, and a blank line. This exact framing is the
// wire contract the frontend parses.
func (s *sseWriter) WriteFrame(frame querypod.Frame) error {
	payload, err := json.Marshal(frame)
	if err != nil {
		return fmt.Errorf("marshal frame: %w", err)
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", payload); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	s.flusher.Flush()
	return nil
}
