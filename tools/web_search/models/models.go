package models

// Result is a single web search hit. Index is the 1-based position in the
// provider's ordering and matches the citation numbering used in prompts.
type Result struct {
	Index   int    `json:"index"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}
