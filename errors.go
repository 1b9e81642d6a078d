// Package querypod implements a streaming chat backend: a session store, a
// web-search tool, and an agent run loop whose token deltas are relayed to
// clients as Server-Sent Events.
package querypod

import "errors"

var (
	// ErrStreamCanceled is reported when the caller's context ends before
	// the agent run finishes.
	ErrStreamCanceled = errors.New("stream canceled")

	// ErrEmptyCompletion is reported when the model returns a completion
	// with no choices.
	ErrEmptyCompletion = errors.New("model returned no choices")
)
