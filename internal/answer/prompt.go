package answer

import (
	"fmt"
	"strings"

	"github.com/mohammad-safakhou/grounded/tools/web_search/models"
)

// BuildPrompt assembles the single prompt sent to the model. It is pure and
// deterministic: same question and results, same prompt.
//
// Each result becomes a numbered block and the instruction demands the exact
// inline marker form "[Source N]" so the citation parser can match it back.
func BuildPrompt(question string, results []models.Result) string {
	var b strings.Builder

	b.WriteString("You are a highly knowledgeable assistant. Answer the user's question clearly, concisely, and with factual accuracy.\n\n")
	b.WriteString("Please follow these guidelines:\n")
	b.WriteString("1. Answer in a factual and neutral tone.\n")
	b.WriteString("2. Prefer concise sentences (2-3 lines max). Use bullet points or short paragraphs if multiple points are needed.\n")

	if len(results) == 0 {
		b.WriteString("3. No current web information was found for this question. Say so explicitly, then answer from your own knowledge if you can.\n")
		b.WriteString("4. Do NOT invent sources and do NOT include any citation markers in your answer.\n\n")
		fmt.Fprintf(&b, "User question: %s\n", question)
		return b.String()
	}

	b.WriteString("3. Answer ONLY from the numbered sources below; do not make up information the sources do not support.\n")
	b.WriteString("4. Cite every claim inline using the exact marker form [Source N], where N is the number of the source that supports it.\n")
	b.WriteString("5. If the sources are insufficient to answer, say so instead of guessing.\n\n")

	b.WriteString("Sources:\n")
	for _, r := range results {
		fmt.Fprintf(&b, "Source %d: %s — %s\nURL: %s\n\n", r.Index, r.Title, r.Snippet, r.URL)
	}

	fmt.Fprintf(&b, "User question: %s\n", question)
	return b.String()
}
