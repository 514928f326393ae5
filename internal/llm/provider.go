package llm

import (
	"context"
	"fmt"
)

// CompletionRequest is a single-turn prompt against a bot-configured model.
// ForceJSON asks the provider for a JSON-object response where the API
// supports it; callers still parse the returned text.
type CompletionRequest struct {
	Model       string
	System      string
	Prompt      string
	Temperature float64
	ForceJSON   bool
}

// Provider abstracts an LLM provider (OpenAI, Anthropic).
type Provider interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	Embed(ctx context.Context, model string, inputs []string) ([][]float32, error)
	Name() string
}

// ForConfig builds a provider client from a bot's stored config.
func ForConfig(provider, apiKey string) (Provider, error) {
	switch provider {
	case "openai":
		return NewOpenAIProvider(apiKey), nil
	case "anthropic":
		return NewAnthropicProvider(apiKey), nil
	default:
		return nil, fmt.Errorf("unsupported model provider %q", provider)
	}
}
