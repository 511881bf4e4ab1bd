package openai_provider

import (
	"context"
	"errors"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/mohammad-safakhou/grounded/provider"
)

// client implements provider.Provider using OpenAI's chat completions API
type client struct {
	api         *openai.Client
	model       string
	temperature float64
	maxTokens   int
}

// NewOpenAIClient creates a new OpenAI client. baseURL overrides the API
// endpoint when non-empty (used by tests).
func NewOpenAIClient(apiKey, model string, temperature float64, maxTokens int, timeout time.Duration, baseURL string) provider.Provider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	return &client{
		api:         openai.NewClientWithConfig(cfg),
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

// Generate sends the prompt as a single user message and returns the raw
// completion text.
func (c *client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleUser, Content: prompt}},
		Temperature: float32(c.temperature),
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Choices) == 0 {
		return "", &provider.GenerationError{Retryable: true, Cause: errors.New("no choices in response")}
	}
	return resp.Choices[0].Message.Content, nil
}

// classify maps API and transport failures onto provider.GenerationError.
func classify(err error) *provider.GenerationError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &provider.GenerationError{
			Retryable:  retryableStatus(apiErr.HTTPStatusCode),
			StatusCode: apiErr.HTTPStatusCode,
			Cause:      err,
		}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &provider.GenerationError{
			Retryable:  retryableStatus(reqErr.HTTPStatusCode),
			StatusCode: reqErr.HTTPStatusCode,
			Cause:      err,
		}
	}
	if errors.Is(err, context.Canceled) {
		return &provider.GenerationError{Retryable: false, Cause: err}
	}
	// Transport-level failures (DNS, connection reset, client timeout) are
	// worth another attempt.
	return &provider.GenerationError{Retryable: true, Cause: err}
}

func retryableStatus(status int) bool {
	switch {
	case status == http.StatusRequestTimeout, status == http.StatusTooManyRequests:
		return true
	case status >= 500:
		return true
	default:
		return false
	}
}
