package querypod

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/ssestream"
)

// LLM is the minimal contract the agent runtime needs from a language-model
// provider. Implementations may add helper methods but only the operations
// below are relied upon by the rest of the codebase.
type LLM interface {
	// New issues a non-streaming chat completion request.
	New(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)

	// NewStreaming issues a streaming chat completion request, returning an
	// ssestream.Stream to consume the chunks.
	NewStreaming(ctx context.Context, params openai.ChatCompletionNewParams) *ssestream.Stream[openai.ChatCompletionChunk]
}

// OpenAIClient is the production LLM backed by an OpenAI-compatible
// endpoint. The base URL selects the hosted provider.
type OpenAIClient struct {
	client openai.Client
}

// NewOpenAIClient builds a client for the given endpoint. An empty baseURL
// falls back to the SDK default.
func NewOpenAIClient(apiKey, baseURL string) *OpenAIClient {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAIClient{client: openai.NewClient(opts...)}
}

func (c *OpenAIClient) New(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	return c.client.Chat.Completions.New(ctx, params)
}

func (c *OpenAIClient) NewStreaming(ctx context.Context, params openai.ChatCompletionNewParams) *ssestream.Stream[openai.ChatCompletionChunk] {
	return c.client.Chat.Completions.NewStreaming(ctx, params)
}
