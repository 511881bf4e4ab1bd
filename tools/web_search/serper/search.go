package serper

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

const apiURL = "https://google.serper.dev/search"

// Search calls the Serper search API.
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
	// https://serper.dev/ docs
	payload := map[string]any{"q": query, "num": maxResults}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-API-KEY", s.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(b))
	}

	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	var out []models.Result
	if items, ok := raw["organic"].([]any); ok {
		for i, it := range items {
			if i >= maxResults {
				break
			}
			m, ok := it.(map[string]any)
			if !ok {
				continue
			}
			out = append(out, models.Result{
				Index: len(out) + 1,
				Title: str(m["title"]), URL: str(m["link"]), Snippet: str(m["snippet"]),
			})
		}
	}
	return out, nil
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
