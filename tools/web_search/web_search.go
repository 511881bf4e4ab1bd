package web_search

import (
	"context"
	"fmt"
	"time"

	"github.com/mohammad-safakhou/grounded/tools/web_search/brave"
	"github.com/mohammad-safakhou/grounded/tools/web_search/models"
	"github.com/mohammad-safakhou/grounded/tools/web_search/serper"
	"github.com/mohammad-safakhou/grounded/tools/web_search/tavily"
)

// WebSearcher performs one outbound search call per invocation. Implementations
// must not retry on their own; retry policy belongs to the caller.
type WebSearcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]models.Result, error)
}

type Provider string

const (
	TavilyProvider Provider = "tavily"
	SerperProvider Provider = "serper"
	BraveProvider  Provider = "brave"
)

var ErrUnsupportedProvider = fmt.Errorf("unsupported search provider")

func NewWebSearcher(provider Provider, apiKey string, timeout time.Duration) (WebSearcher, error) {
	switch provider {
	case TavilyProvider:
		return classified{string(provider), tavily.New(apiKey, timeout)}, nil
	case SerperProvider:
		return classified{string(provider), serper.New(apiKey, timeout)}, nil
	case BraveProvider:
		return classified{string(provider), brave.New(apiKey, timeout)}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProvider, provider)
	}
}

// classified turns any failure of the underlying client into an
// *UnavailableError so callers can tell "provider down" from "no matches".
type classified struct {
	name  string
	inner WebSearcher
}

func (c classified) Search(ctx context.Context, query string, maxResults int) ([]models.Result, error) {
	results, err := c.inner.Search(ctx, query, maxResults)
	if err != nil {
		return nil, &UnavailableError{Provider: c.name, Cause: err}
	}
	return results, nil
}

// UnavailableError signals that the search provider could not be reached or
// answered with a non-success status. It is distinct from a successful call
// that matched nothing (which is an empty slice, not an error).
type UnavailableError struct {
	Provider string
	Cause    error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("web search unavailable (%s): %v", e.Provider, e.Cause)
}

func (e *UnavailableError) Unwrap() error { return e.Cause }
