package answer

import (
	"errors"
	"fmt"

	"github.com/mohammad-safakhou/grounded/config"
	"github.com/mohammad-safakhou/grounded/internal/creds"
	"github.com/mohammad-safakhou/grounded/provider"
	openai_provider "github.com/mohammad-safakhou/grounded/provider/openai"
	"github.com/mohammad-safakhou/grounded/tools/web_search"
)

// NewLLMProvider creates the completion client for the configured provider.
func NewLLMProvider(cfg config.LLMConfig, c creds.Credentials) (provider.Provider, error) {
	switch provider.Client(cfg.Provider) {
	case provider.OpenAI:
		return openai_provider.NewOpenAIClient(c.OpenAIKey, cfg.Model, cfg.Temperature, cfg.MaxTokens, cfg.Timeout, ""), nil
	case provider.Anthropic:
		return nil, errors.New("anthropic client not implemented yet")
	case provider.Gemini:
		return nil, errors.New("gemini client not implemented yet")
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %q", cfg.Provider)
	}
}

// NewSearcher creates the search client for the configured provider. Tavily
// uses the resolved credential; Serper and Brave take their keys from config.
func NewSearcher(cfg config.SearchConfig, c creds.Credentials) (web_search.WebSearcher, error) {
	p := web_search.Provider(cfg.Provider)
	var apiKey string
	switch p {
	case web_search.TavilyProvider:
		apiKey = c.TavilyKey
	case web_search.SerperProvider:
		apiKey = cfg.SerperAPIKey
	case web_search.BraveProvider:
		apiKey = cfg.BraveAPIKey
	}
	if p != web_search.TavilyProvider && apiKey == "" {
		return nil, fmt.Errorf("search.%s_api_key is required for provider %q", cfg.Provider, cfg.Provider)
	}
	return web_search.NewWebSearcher(p, apiKey, cfg.Timeout)
}
