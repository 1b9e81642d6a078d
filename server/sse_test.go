package server

import (
	"net/http/httptest"
	"testing"

	"github.com/querypod/querypod"
)

func TestWriteFrameFraming(t *testing.T) {
	rec := httptest.NewRecorder()
	sse, err := newSSEWriter(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := sse.WriteFrame(querypod.SessionFrame("abc")); err != nil {
		t.Fatalf("write frame: %v", err)
	}
	if err := sse.WriteFrame(querypod.DeltaFrame("Paris")); err != nil {
		t.Fatalf("write frame: %v", err)
	}

	want := "data: {\"type\":\"session\",\"session_id\":\"abc\"}\n\n" +
		"data: {\"type\":\"delta\",\"content\":\"Paris\"}\n\n"
	if got := rec.Body.String(); got != want {
		t.Fatalf("framing mismatch:\n got %q\nwant %q", got, want)
	}
	if !rec.Flushed {
		t.Fatal("expected the writer to flush after each frame")
	}
}

func TestWriteFrameSetsHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	if _, err := newSSEWriter(rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	headers := rec.Header()
	for key, want := range map[string]string{
		"Content-Type":  "text/event-stream",
		"Cache-Control": "no-cache",
		"Connection":    "keep-alive",
	} {
		if got := headers.Get(key); got != want {
			t.Fatalf("header %s: expected %q, got %q", key, want, got)
		}
	}
}
