package querypod

import "context"

// EventType identifies one kind of event produced by an agent run.
type EventType string

const (
	// EventTypeDelta carries an incremental fragment of generated text.
	EventTypeDelta EventType = "delta"
	// EventTypeToolCall reports a tool invocation. Not forwarded to clients.
	EventTypeToolCall EventType = "tool_call"
	// EventTypeError is terminal; Err carries the failure.
	EventTypeError EventType = "error"
)

// Event is one unit of output from an agent's streamed execution.
type Event struct {
	Type    EventType
	Content string
	Err     error
}

// Runner is the streamed execution primitive of an agent: a single-pass run
// over the given history, delivering events in generation order. The
// channel closes when the run ends; an error event, if any, is the last
// event delivered.
type Runner interface {
	Run(ctx context.Context, history []Turn) <-chan Event
}
