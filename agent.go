package querypod

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/openai/openai-go"
)

// AgentName is the display name the assistant introduces itself with.
const AgentName = "Bob"

// AgentInstructions steer the model toward the web_search tool and the
// accumulated conversation history.
const AgentInstructions = "You are a helpful assistant tasked with web searching. " +
	"Use the 'web_search' tool if external info is needed. " +
	"Consider the chat history to maintain context."

// Agent drives one streamed model run, dispatching tool calls as the model
// requests them. It is an immutable per-request value: cheap to construct,
// nothing cached between requests.
type Agent struct {
	name         string
	instructions string
	model        string
	tools        []Tool
	llm          LLM
	logger       *slog.Logger
}

// NewSearchAgent builds the web-search assistant. Pure construction, no I/O.
func NewSearchAgent(llm LLM, model string, tools ...Tool) *Agent {
	return &Agent{
		name:         AgentName,
		instructions: AgentInstructions,
		model:        model,
		tools:        tools,
		llm:          llm,
		logger:       slog.Default(),
	}
}

func (a *Agent) Name() string { return a.name }

func (a *Agent) SetLogger(logger *slog.Logger) {
	a.logger = logger
}

func (a *Agent) getTool(name string) (Tool, error) {
	for _, tool := range a.tools {
		if tool.Name() == name {
			return tool, nil
		}
	}
	return nil, fmt.Errorf("tool %s not found", name)
}

func (a *Agent) toolParams() []openai.ChatCompletionToolParam {
	params := make([]openai.ChatCompletionToolParam, 0, len(a.tools))
	for _, tool := range a.tools {
		params = append(params, tool.OpenAI())
	}
	return params
}

// Run executes the agent against the given history, streaming events on the
// returned channel. The channel closes when the run ends; on failure the
// last event is an error event. Sends respect ctx so an abandoned consumer
// does not leak the goroutine.
func (a *Agent) Run(ctx context.Context, history []Turn) <-chan Event {
	events := make(chan Event)

	messages := MessagesFromTurns(history)
	messages.AddFirstDeveloperMessage(openai.DeveloperMessage(a.instructions))

	go func() {
		defer close(events)

		for {
			params := openai.ChatCompletionNewParams{
				Messages: messages.All(),
				Model:    openai.ChatModel(a.model),
				StreamOptions: openai.ChatCompletionStreamOptionsParam{
					IncludeUsage: openai.Bool(true),
				},
			}
			if len(a.tools) > 0 {
				params.Tools = a.toolParams()
			}

			stream := a.llm.NewStreaming(ctx, params)
			acc := openai.ChatCompletionAccumulator{}
			for stream.Next() {
				chunk := stream.Current()
				acc.AddChunk(chunk)
				if len(chunk.Choices) == 0 {
					continue
				}
				if delta := chunk.Choices[0].Delta.Content; delta != "" {
					if !a.send(ctx, events, Event{Type: EventTypeDelta, Content: delta}) {
						stream.Close()
						return
					}
				}
			}
			if err := stream.Err(); err != nil {
				stream.Close()
				a.send(ctx, events, Event{Type: EventTypeError, Err: err})
				return
			}
			stream.Close()

			if len(acc.Choices) == 0 {
				a.send(ctx, events, Event{Type: EventTypeError, Err: ErrEmptyCompletion})
				return
			}
			message := acc.Choices[0].Message
			a.logUsage(acc.Usage)

			if len(message.ToolCalls) == 0 {
				return
			}

			messages.Add(message.ToParam())
			for _, call := range message.ToolCalls {
				if !a.send(ctx, events, Event{Type: EventTypeToolCall, Content: call.Function.Name}) {
					return
				}
				messages.Add(a.runTool(ctx, call))
			}
		}
	}()

	return events
}

// runTool resolves and executes one tool call, mapping every failure mode
// into a tool-role message so the run loop can continue.
func (a *Agent) runTool(ctx context.Context, call openai.ChatCompletionMessageToolCall) openai.ChatCompletionMessageParamUnion {
	tool, err := a.getTool(call.Function.Name)
	if err != nil {
		a.logger.Error("unknown tool requested", "tool", call.Function.Name)
		return openai.ToolMessage("Error occurred while running. Do not retry.", call.ID)
	}

	args := map[string]any{}
	if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
		a.logger.Error("invalid tool arguments", "tool", tool.Name(), "error", err)
		return openai.ToolMessage(fmt.Sprintf("Error: %s.\nRetry", err), call.ID)
	}

	a.logger.Info("running tool", "tool", tool.Name(), "arguments", call.Function.Arguments)
	output, err := tool.Execute(ctx, args)
	if err != nil {
		a.logger.Error("tool execution failed", "tool", tool.Name(), "error", err)
		return openai.ToolMessage("Error occurred while running. Do not retry.", call.ID)
	}
	return openai.ToolMessage(output, call.ID)
}

func (a *Agent) logUsage(usage openai.CompletionUsage) {
	if usage.TotalTokens == 0 {
		return
	}
	attrs := []any{
		"model", a.model,
		"input_tokens", usage.PromptTokens,
		"output_tokens", usage.CompletionTokens,
	}
	if details, ok := EstimateCost(a.model, usage); ok {
		attrs = append(attrs, "estimated_cost_usd", details.TotalCost)
	}
	a.logger.Info("completion usage", attrs...)
}

func (a *Agent) send(ctx context.Context, events chan<- Event, ev Event) bool {
	select {
	case events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
