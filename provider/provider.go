package provider

import (
	"context"
	"fmt"
)

// Client represents different LLM providers
type Client string

const (
	OpenAI    Client = "openai"
	Anthropic Client = "anthropic"
	Gemini    Client = "gemini"
)

// Provider is the interface that all LLM implementations must satisfy
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GenerationError classifies a failed completion call. Retryable covers
// timeouts, rate limits and provider 5xx; auth and invalid-request failures
// are not retryable and are fatal for the current request.
type GenerationError struct {
	Retryable  bool
	StatusCode int
	Cause      error
}

func (e *GenerationError) Error() string {
	kind := "non-retryable"
	if e.Retryable {
		kind = "retryable"
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("generation failed (%s, status %d): %v", kind, e.StatusCode, e.Cause)
	}
	return fmt.Sprintf("generation failed (%s): %v", kind, e.Cause)
}

func (e *GenerationError) Unwrap() error { return e.Cause }
