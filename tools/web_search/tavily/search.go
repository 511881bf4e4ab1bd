package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mohammad-safakhou/grounded/tools/web_search/models"
)

const apiURL = "https://api.tavily.com/search"

// Search calls the Tavily search API.
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
	// https://docs.tavily.com/ search endpoint
	payload := map[string]any{"query": query, "max_results": maxResults}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.ApiKey)

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
		Results []struct {
			Title   string `json:"title"`
			URL     string `json:"url"`
			Content string `json:"content"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	var out []models.Result
	for i, r := range raw.Results {
		if i >= maxResults {
			break
		}
		out = append(out, models.Result{Index: i + 1, Title: r.Title, URL: r.URL, Snippet: r.Content})
	}
	return out, nil
}
