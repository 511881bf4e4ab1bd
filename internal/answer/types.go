package answer

import (
	"time"

	"github.com/mohammad-safakhou/grounded/tools/web_search/models"
)

// Result is the final product of one pipeline run: the completion text with
// its citation markers intact, plus the cited sources in first-appearance
// order, deduplicated by URL.
type Result struct {
	ID       string          `json:"id"`
	Question string          `json:"question"`
	Text     string          `json:"text"`
	Sources  []models.Result `json:"sources"`
	// Grounded reports whether the answer was produced from live web results.
	Grounded bool `json:"grounded"`
	// Warning carries a non-fatal degradation note (search down, no results).
	Warning string        `json:"warning,omitempty"`
	Elapsed time.Duration `json:"elapsed"`
}
