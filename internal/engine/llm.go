package engine

import (
	"context"
	"errors"

	"github.com/anatolykoptev/go-kit/llm"
)

// ErrNoLLMClient is returned when Generate runs before Init installed a client.
var ErrNoLLMClient = errors.New("llm client not configured")

// NewLLMClient builds the OpenAI-compatible client described by c.
func NewLLMClient(c Config) *llm.Client {
	return llm.NewClient(c.LLMAPIBase, c.LLMAPIKey, c.LLMModel,
		llm.WithFallbackKeys(c.LLMAPIKeyFallbacks),
		llm.WithMaxTokens(c.LLMMaxTokens),
		llm.WithTemperature(c.LLMTemperature),
		llm.WithHTTPClient(newLLMHTTPClient(c.LLMTimeout)),
	)
}

// Generate sends one prompt and returns the completion text unchanged.
func Generate(ctx context.Context, prompt string) (string, error) {
	if cfg.LLMClient == nil {
		return "", ErrNoLLMClient
	}
	metrics.LLMCalls.Add(1)
	resp, err := cfg.LLMClient.Complete(ctx, "", prompt)
	if err != nil {
		metrics.LLMErrors.Add(1)
		return "", err
	}
	return resp, nil
}

// LLM adapts the package-level client to blog.Generator.
type LLM struct{}

// Generate implements blog.Generator.
func (LLM) Generate(ctx context.Context, prompt string) (string, error) {
	return Generate(ctx, prompt)
}
