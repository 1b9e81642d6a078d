package querypod

import (
	"context"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
)

// Tool is an external capability the agent may invoke mid-generation.
// Execute receives the arguments the model produced and returns the text
// handed back to the model as the tool result.
type Tool interface {
	Name() string
	Description() string
	OpenAI() openai.ChatCompletionToolParam
	Execute(ctx context.Context, args map[string]any) (string, error)
}

// GenerateSchema reflects a parameter struct into the JSON schema shape the
// chat completions API expects for a function tool.
func GenerateSchema[T any]() openai.FunctionParameters {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)

	params := openai.FunctionParameters{
		"type":       "object",
		"properties": schema.Properties,
	}
	if len(schema.Required) > 0 {
		params["required"] = schema.Required
	}
	return params
}
