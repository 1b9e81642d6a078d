package querypod

import (
	"slices"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/packages/param"
)

// Roles a committed conversation turn can carry. Tool and developer
// messages exist only inside a single agent run and are never committed.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one message in a session's conversation history.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// UserTurn builds a user turn.
func UserTurn(content string) Turn {
	return Turn{Role: RoleUser, Content: content}
}

// AssistantTurn builds an assistant turn.
func AssistantTurn(content string) Turn {
	return Turn{Role: RoleAssistant, Content: content}
}

// TailTurns returns the last n turns of history, or all of them if the
// history is shorter. The returned slice is a copy.
func TailTurns(history []Turn, n int) []Turn {
	if len(history) > n {
		history = history[len(history)-n:]
	}
	return slices.Clone(history)
}

// MessageList holds an ordered collection of chat messages as they are sent
// to the model. It is the working representation inside an agent run; the
// committed session history stays []Turn.
type MessageList struct {
	Messages []openai.ChatCompletionMessageParamUnion
}

func NewMessageList() *MessageList {
	return &MessageList{
		Messages: []openai.ChatCompletionMessageParamUnion{},
	}
}

// MessagesFromTurns converts a committed history into model messages.
func MessagesFromTurns(turns []Turn) *MessageList {
	ml := NewMessageList()
	for _, t := range turns {
		switch t.Role {
		case RoleAssistant:
			ml.Add(openai.AssistantMessage(t.Content))
		default:
			ml.Add(openai.UserMessage(t.Content))
		}
	}
	return ml
}

func (ml *MessageList) Len() int {
	return len(ml.Messages)
}

// Add appends one or more messages in FIFO order.
func (ml *MessageList) Add(msgs ...openai.ChatCompletionMessageParamUnion) {
	ml.Messages = append(ml.Messages, msgs...)
}

// AddFirstDeveloperMessage prepends a developer message to the message list.
// It panics if the provided message is not a developer message.
func (ml *MessageList) AddFirstDeveloperMessage(msg openai.ChatCompletionMessageParamUnion) {
	if msg.OfDeveloper == nil {
		panic("AddFirstDeveloperMessage expects a DeveloperMessage")
	}
	ml.Messages = append([]openai.ChatCompletionMessageParamUnion{msg}, ml.Messages...)
}

func (ml *MessageList) All() []openai.ChatCompletionMessageParamUnion {
	return ml.Messages
}

// Clone returns a shallow copy that can be appended to independently.
func (ml *MessageList) Clone() *MessageList {
	return &MessageList{Messages: slices.Clone(ml.Messages)}
}

// ContentOf extracts the plain-text content of a message, if any.
func ContentOf(msg openai.ChatCompletionMessageParamUnion) string {
	switch {
	case msg.OfUser != nil:
		if !param.IsOmitted(msg.OfUser.Content.OfString) {
			return msg.OfUser.Content.OfString.Value
		}
	case msg.OfAssistant != nil:
		if !param.IsOmitted(msg.OfAssistant.Content.OfString) {
			return msg.OfAssistant.Content.OfString.Value
		}
	case msg.OfDeveloper != nil:
		if !param.IsOmitted(msg.OfDeveloper.Content.OfString) {
			return msg.OfDeveloper.Content.OfString.Value
		}
	case msg.OfTool != nil:
		if !param.IsOmitted(msg.OfTool.Content.OfString) {
			return msg.OfTool.Content.OfString.Value
		}
	}
	return ""
}
