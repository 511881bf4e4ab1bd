package answer

import (
	"regexp"
	"strconv"

	"github.com/mohammad-safakhou/grounded/tools/web_search/models"
)

// citationRe matches the literal marker form the prompt instructs the model
// to use. The model's citation discipline is not perfectly reliable, so the
// scan is deliberately permissive: markers that do not resolve to a known
// source are left in the text untouched.
var citationRe = regexp.MustCompile(`\[Source ([0-9]+)\]`)

// ParseCitations scans text left to right for "[Source N]" markers and maps
// each in-range N to its search result. Sources come back deduplicated by
// URL in first-appearance order; out-of-range markers stay verbatim in the
// text and contribute nothing. The text is never modified, which also makes
// the scan idempotent.
func ParseCitations(text string, results []models.Result) (string, []models.Result) {
	matches := citationRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return text, nil
	}

	seen := make(map[string]struct{}, len(results))
	var sources []models.Result
	for _, m := range matches {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 || n > len(results) {
			continue
		}
		r := results[n-1]
		if _, ok := seen[r.URL]; ok {
			continue
		}
		seen[r.URL] = struct{}{}
		sources = append(sources, r)
	}
	return text, sources
}
