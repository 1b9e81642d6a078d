package querypod

import "encoding/json"

// FrameType identifies one kind of SSE frame emitted to the client.
type FrameType string

const (
	FrameTypeSession  FrameType = "session"
	FrameTypeDelta    FrameType = "delta"
	FrameTypeComplete FrameType = "complete"
	FrameTypeError    FrameType = "error"
)

// Frame is one discrete event on the response stream. The JSON shape is a
// wire contract consumed by the frontend: each frame type carries exactly
// the keys the client expects, nothing else.
type Frame struct {
	Type      FrameType
	SessionID string
	Content   string
	History   []Turn
}

func SessionFrame(sessionID string) Frame {
	return Frame{Type: FrameTypeSession, SessionID: sessionID}
}

func DeltaFrame(content string) Frame {
	return Frame{Type: FrameTypeDelta, Content: content}
}

func CompleteFrame(content string, history []Turn) Frame {
	return Frame{Type: FrameTypeComplete, Content: content, History: history}
}

func ErrorFrame(content string) Frame {
	return Frame{Type: FrameTypeError, Content: content}
}

// MarshalJSON emits the per-type key set. A blank content on a complete
// frame still serializes, so the client always finds the key.
func (f Frame) MarshalJSON() ([]byte, error) {
	switch f.Type {
	case FrameTypeSession:
		return json.Marshal(struct {
			Type      FrameType `json:"type"`
			SessionID string    `json:"session_id"`
		}{f.Type, f.SessionID})
	case FrameTypeComplete:
		history := f.History
		if history == nil {
			history = []Turn{}
		}
		return json.Marshal(struct {
			Type    FrameType `json:"type"`
			Content string    `json:"content"`
			History []Turn    `json:"history"`
		}{f.Type, f.Content, history})
	default: // delta and error share the shape
		return json.Marshal(struct {
			Type    FrameType `json:"type"`
			Content string    `json:"content"`
		}{f.Type, f.Content})
	}
}
