package brave

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mohammad-safakhou/grounded/tools/web_search/models"
)

const apiURL = "https://api.search.brave.com/res/v1/web/search"

// Search calls the Brave web search API.
type Search struct {
	ApiKey  string
	BaseURL string
	client  *http.Client
}

func New(apiKey string, timeout time.Duration) *Search {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Search{ApiKey: apiKey, BaseURL: apiURL, client: &http.Client{Timeout: timeout}}
}

func (s *Search) Search(ctx context.Context, query string, maxResults int) ([]models.Result, error) {
	// https://api.search.brave.com/app/documentation/web-search
	endpoint := fmt.Sprintf("%s?q=%s&count=%d", s.BaseURL, url.QueryEscape(query), maxResults)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", s.ApiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(b))
	}

	var raw struct {
		Web struct {
			Results []struct {
				Title   string `json:"title"`
				URL     string `json:"url"`
				Snippet string `json:"description"`
			} `json:"results"`
		} `json:"web"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	var out []models.Result
	for i, r := range raw.Web.Results {
		if i >= maxResults {
			break
		}
		out = append(out, models.Result{Index: i + 1, Title: r.Title, URL: r.URL, Snippet: r.Snippet})
	}
	return out, nil
}
