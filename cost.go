package querypod

import "github.com/openai/openai-go"

// TokenRates holds per-model pricing in dollars per million tokens.
type TokenRates struct {
	Input  float64
	Output float64
}

// ModelPricings maps model names to their pricing. Models missing here
// simply skip cost estimation.
var ModelPricings = map[string]TokenRates{
	"gpt-4o":            {Input: 2.5, Output: 10.0},
	"gpt-4o-mini":       {Input: 0.15, Output: 0.60},
	"o3-mini":           {Input: 1.10, Output: 4.40},
	"gemini-2.0-flash":  {Input: 0.10, Output: 0.40},
	"gemini-2.5-flash":  {Input: 0.30, Output: 2.50},
	"azure/gpt-4o":      {Input: 2.5, Output: 10.0},
	"azure/gpt-4o-mini": {Input: 0.15, Output: 0.60},
}

// CostDetails is the token usage of one agent run with its estimated cost.
type CostDetails struct {
	InputTokens  int64
	OutputTokens int64
	TotalCost    float64
}

// EstimateCost prices the given usage for a model. The second return value
// is false when the model has no pricing entry.
func EstimateCost(model string, usage openai.CompletionUsage) (*CostDetails, bool) {
	pricing, ok := ModelPricings[model]
	if !ok {
		return nil, false
	}

	inputCost := float64(usage.PromptTokens) * pricing.Input / 1e6
	outputCost := float64(usage.CompletionTokens) * pricing.Output / 1e6

	return &CostDetails{
		InputTokens:  usage.PromptTokens,
		OutputTokens: usage.CompletionTokens,
		TotalCost:    inputCost + outputCost,
	}, true
}
