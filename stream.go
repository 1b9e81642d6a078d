package querypod

import (
	"context"
	"log/slog"
	"strings"
)

// Streamer turns an agent run into the frame sequence a client consumes:
// one session frame, a delta frame per non-empty text fragment, then either
// a completion frame (after committing the new turns to the session store)
// or a single error frame (leaving the session untouched).
type Streamer struct {
	store   SessionStore
	archive *Archive // optional, nil disables archival
	logger  *slog.Logger
}

func NewStreamer(store SessionStore, archive *Archive, logger *slog.Logger) *Streamer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Streamer{store: store, archive: archive, logger: logger}
}

// historyWindow is how many trailing turns the completion frame echoes back.
const historyWindow = 4

// Stream runs the agent against history (prior turns plus the new user
// turn, already appended by the caller) and emits frames on the returned
// channel, closing it when the stream ends. Single pass, not restartable.
// The commit to the session store happens at most once, and only on
// success; a failure at any point leaves the stored history at its
// pre-request state.
func (s *Streamer) Stream(ctx context.Context, runner Runner, history []Turn, sessionID string) <-chan Frame {
	frames := make(chan Frame)

	go func() {
		defer close(frames)

		// The client learns a server-generated id before any model output.
		if !s.emit(ctx, frames, SessionFrame(sessionID)) {
			return
		}

		events := runner.Run(ctx, history)
		var response strings.Builder

		for {
			select {
			case <-ctx.Done():
				// Dropped connection or shutdown: no commit. The error
				// frame only lands if anyone is still reading.
				s.logger.Info("stream canceled", "sessionID", sessionID)
				select {
				case frames <- ErrorFrame(ErrStreamCanceled.Error()):
				default:
				}
				return

			case ev, ok := <-events:
				if !ok {
					s.complete(ctx, frames, history, response.String(), sessionID)
					return
				}
				switch ev.Type {
				case EventTypeDelta:
					if ev.Content == "" {
						continue
					}
					response.WriteString(ev.Content)
					if !s.emit(ctx, frames, DeltaFrame(ev.Content)) {
						return
					}
				case EventTypeError:
					s.logger.Error("agent run failed", "sessionID", sessionID, "error", ev.Err)
					s.emit(ctx, frames, ErrorFrame(ev.Err.Error()))
					return
				default:
					// Tool-call and other non-text events stay server-side.
				}
			}
		}
	}()

	return frames
}

func (s *Streamer) complete(ctx context.Context, frames chan<- Frame, history []Turn, response, sessionID string) {
	updated := append(history, AssistantTurn(response))
	s.store.Commit(sessionID, updated)

	if s.archive != nil {
		if err := s.archive.SaveTurns(ctx, sessionID, TailTurns(updated, 2)); err != nil {
			s.logger.Error("archive write failed", "sessionID", sessionID, "error", err)
		}
	}

	s.emit(ctx, frames, CompleteFrame(response, TailTurns(updated, historyWindow)))
}

func (s *Streamer) emit(ctx context.Context, frames chan<- Frame, f Frame) bool {
	select {
	case frames <- f:
		return true
	case <-ctx.Done():
		return false
	}
}
