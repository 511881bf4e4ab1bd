package openai_provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mohammad-safakhou/grounded/provider"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) provider.Provider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewOpenAIClient("test-key", "gpt-4o-mini", 0.2, 256, time.Second, srv.URL+"/v1")
}

func completionBody(text string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{{"message": map[string]any{"role": "assistant", "content": text}}},
	})
	return string(b)
}

func TestGenerateSuccess(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Fatalf("auth header = %q", got)
		}
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req["model"] != "gpt-4o-mini" {
			t.Fatalf("model = %v", req["model"])
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody("The capital is Brasília [Source 1].")))
	})

	text, err := p.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if text != "The capital is Brasília [Source 1]." {
		t.Fatalf("text = %q", text)
	}
}

func TestGenerateRateLimitIsRetryable(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limit exceeded","type":"requests"}}`))
	})

	_, err := p.Generate(context.Background(), "prompt")
	var genErr *provider.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	if !genErr.Retryable {
		t.Fatal("429 must be retryable")
	}
	if genErr.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("status = %d", genErr.StatusCode)
	}
}

func TestGenerateServerErrorIsRetryable(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"server error","type":"server_error"}}`))
	})

	_, err := p.Generate(context.Background(), "prompt")
	var genErr *provider.GenerationError
	if !errors.As(err, &genErr) || !genErr.Retryable {
		t.Fatalf("5xx must be a retryable GenerationError, got %v", err)
	}
}

func TestGenerateAuthFailureIsNotRetryable(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid api key","type":"invalid_request_error"}}`))
	})

	_, err := p.Generate(context.Background(), "prompt")
	var genErr *provider.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	if genErr.Retryable {
		t.Fatal("auth failures must not be retryable")
	}
}

func TestGenerateTransportFailureIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	p := NewOpenAIClient("test-key", "gpt-4o-mini", 0.2, 256, time.Second, srv.URL+"/v1")
	srv.Close()

	_, err := p.Generate(context.Background(), "prompt")
	var genErr *provider.GenerationError
	if !errors.As(err, &genErr) || !genErr.Retryable {
		t.Fatalf("transport failures must be retryable GenerationErrors, got %v", err)
	}
}

func TestGenerateEmptyChoices(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})

	_, err := p.Generate(context.Background(), "prompt")
	var genErr *provider.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
}
