package answer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mohammad-safakhou/grounded/config"
	"github.com/mohammad-safakhou/grounded/internal/telemetry"
	"github.com/mohammad-safakhou/grounded/provider"
	"github.com/mohammad-safakhou/grounded/tools/web_search"
	"github.com/mohammad-safakhou/grounded/tools/web_search/models"
)

const (
	warnSearchUnavailable = "web search is currently unavailable; this answer is not grounded in current web results"
	warnNoResults         = "no current web results were found; this answer relies on model knowledge alone"

	declineText = "No current web information was found for this question, so no answer was generated."
)

// Orchestrator runs the answer pipeline: search, prompt, generate, parse.
// It holds no mutable state, so a single instance serves concurrent calls.
type Orchestrator struct {
	cfg       *config.Config
	logger    *log.Logger
	telemetry *telemetry.Telemetry
	searcher  web_search.WebSearcher
	llm       provider.Provider
}

// NewOrchestrator wires the pipeline from already-constructed collaborators.
// Clients are injected by whoever composes the process at startup; the
// orchestrator never builds its own.
func NewOrchestrator(cfg *config.Config, logger *log.Logger, tele *telemetry.Telemetry, searcher web_search.WebSearcher, llm provider.Provider) (*Orchestrator, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if llm == nil {
		return nil, errors.New("llm provider is required")
	}
	if searcher == nil {
		return nil, errors.New("web searcher is required")
	}
	if logger == nil {
		logger = log.New(log.Writer(), "[ORCH] ", log.LstdFlags)
	}
	return &Orchestrator{cfg: cfg, logger: logger, telemetry: tele, searcher: searcher, llm: llm}, nil
}

// Answer runs one pipeline pass for the question. With webSearch enabled the
// searcher provides grounding; a search failure degrades to an ungrounded
// answer with a warning instead of failing the request. Generation failures
// are retried only when retryable, within the configured attempt budget.
func (o *Orchestrator) Answer(ctx context.Context, question string, webSearch bool) (Result, error) {
	start := time.Now()
	question = strings.TrimSpace(question)
	if question == "" {
		return Result{}, errors.New("question must not be empty")
	}
	id := uuid.NewString()

	var results []models.Result
	var warning string
	if webSearch {
		var err error
		results, err = o.searcher.Search(ctx, question, o.cfg.Search.MaxResults)
		if err != nil {
			var unavailable *web_search.UnavailableError
			if !errors.As(err, &unavailable) {
				// Searcher implementations classify everything, but keep the
				// degradation path for foreign implementations too.
				o.logger.Printf("[%s] unexpected search error: %v", id, err)
			} else {
				o.logger.Printf("[%s] search unavailable: %v", id, err)
			}
			o.telemetry.RecordSearch("failure")
			results = nil
			warning = warnSearchUnavailable
		} else {
			o.telemetry.RecordSearch("success")
			if len(results) == 0 {
				if o.cfg.Pipeline.OnEmptyResults == config.OnEmptyDecline {
					o.telemetry.RecordRequest("declined", time.Since(start))
					return Result{
						ID:       id,
						Question: question,
						Text:     declineText,
						Warning:  warnNoResults,
						Elapsed:  time.Since(start),
					}, nil
				}
				warning = warnNoResults
			}
		}
	}

	prompt := BuildPrompt(question, results)

	completion, err := o.generateWithRetry(ctx, id, prompt)
	if err != nil {
		o.telemetry.RecordRequest("failure", time.Since(start))
		return Result{}, err
	}

	text, sources := ParseCitations(completion, results)
	if !webSearch {
		// Even if the model cites on its own, sources are only surfaced when
		// the caller asked for grounding.
		sources = nil
	}

	o.telemetry.RecordRequest("success", time.Since(start))
	return Result{
		ID:       id,
		Question: question,
		Text:     text,
		Sources:  sources,
		Grounded: webSearch && len(results) > 0,
		Warning:  warning,
		Elapsed:  time.Since(start),
	}, nil
}

// generateWithRetry calls the model up to cfg.LLM.MaxAttempts times, backing
// off linearly between attempts. Only retryable GenerationErrors are retried.
func (o *Orchestrator) generateWithRetry(ctx context.Context, id, prompt string) (string, error) {
	attempts := o.cfg.LLM.MaxAttempts
	backoff := o.cfg.LLM.RetryBackoff

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		completion, err := o.llm.Generate(ctx, prompt)
		if err == nil {
			o.telemetry.RecordGeneration("success")
			return completion, nil
		}
		o.telemetry.RecordGeneration("failure")
		lastErr = err

		var genErr *provider.GenerationError
		if !errors.As(err, &genErr) || !genErr.Retryable {
			return "", fmt.Errorf("generation failed: %w", err)
		}
		if attempt == attempts {
			break
		}

		wait := backoff * time.Duration(attempt)
		o.logger.Printf("[%s] generation attempt %d/%d failed (retrying in %s): %v", id, attempt, attempts, wait, err)
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return "", fmt.Errorf("generation failed after %d attempts: %w", attempts, lastErr)
}
