// Package ai provides the LLM provider boundary for AI-assisted scoring
// and review. Whether AI is available is decided once, at construction
// time: callers hold a nil Client in "AI unavailable" mode and every
// consumer has a deterministic non-AI path.
package ai

import (
	"context"
	"fmt"
)

// Client sends a prompt to a text-completion service and returns the raw
// response text. Implementations do not retry; a single failure is the
// caller's signal to fall back.
type Client interface {
	// Name returns the provider identifier.
	Name() string

	// Complete sends a prompt and returns the response text.
	Complete(ctx context.Context, prompt string) (string, error)
}

// New creates a client for the named provider. An unknown provider or a
// missing key is a construction-time error; callers treat that as "AI
// unavailable" rather than failing the pipeline.
func New(provider, model, apiKey string) (Client, error) {
	switch provider {
	case "anthropic":
		return NewAnthropicClient(apiKey, model)
	case "openai":
		return NewOpenAIClient(apiKey, model)
	case "google":
		return NewGoogleClient(apiKey, model)
	case "mock":
		return NewMockClient(), nil
	default:
		return nil, fmt.Errorf("unknown AI provider: %q", provider)
	}
}
