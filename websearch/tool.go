package websearch

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/packages/param"

	"github.com/querypod/querypod"
)

// ToolName is the function name the model calls.
const ToolName = "web_search"

const toolDescription = "Perform a web search for up-to-date or external information. " +
	"Returns the most relevant results for the query."

// NoResults is the literal the tool returns when the provider finds nothing.
const NoResults = "No results found."

type searchArgs struct {
	Query string `json:"query" jsonschema:"required" jsonschema_description:"Search query"`
}

// Tool exposes the search client as an agent tool.
type Tool struct {
	client *Client
}

var _ querypod.Tool = (*Tool)(nil)

func NewTool(client *Client) *Tool {
	return &Tool{client: client}
}

func (t *Tool) Name() string        { return ToolName }
func (t *Tool) Description() string { return toolDescription }

func (t *Tool) OpenAI() openai.ChatCompletionToolParam {
	return openai.ChatCompletionToolParam{
		Function: openai.FunctionDefinitionParam{
			Name:        ToolName,
			Description: param.Opt[string]{Value: toolDescription},
			Parameters:  querypod.GenerateSchema[searchArgs](),
		},
	}
}

// Execute runs one search. It never returns a non-nil error: the agent's
// tool-calling loop treats whatever string comes back as the tool output,
// so provider failures are rendered into the result text instead.
func (t *Tool) Execute(ctx context.Context, args map[string]any) (string, error) {
	query, _ := args["query"].(string)

	resp, err := t.client.Search(ctx, query)
	if err != nil {
		return "Error in web search: " + err.Error(), nil
	}
	return renderResponse(resp), nil
}

// renderResponse is the explicit stringify step between the typed provider
// result and the text handed to the model.
func renderResponse(resp *Response) string {
	if resp == nil || len(resp.Results) == 0 {
		return NoResults
	}

	var b strings.Builder
	if resp.Answer != "" {
		fmt.Fprintf(&b, "Answer: %s\n\n", resp.Answer)
	}
	for i, r := range resp.Results {
		fmt.Fprintf(&b, "%d. %s (%s)\n%s\n", i+1, r.Title, r.URL, r.Content)
	}
	return strings.TrimRight(b.String(), "\n")
}
