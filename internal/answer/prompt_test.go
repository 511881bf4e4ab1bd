package answer

import (
	"strings"
	"testing"

	"github.com/mohammad-safakhou/grounded/tools/web_search/models"
)

func TestBuildPromptNumbersSources(t *testing.T) {
	results := []models.Result{
		{Index: 1, Title: "Brazil", URL: "https://example.com/brazil", Snippet: "Brasília is the capital..."},
		{Index: 2, Title: "Geography", URL: "https://example.com/geo", Snippet: "South America facts"},
	}
	prompt := BuildPrompt("What is the capital of Brazil?", results)

	for _, want := range []string{
		"Source 1: Brazil — Brasília is the capital...",
		"Source 2: Geography — South America facts",
		"https://example.com/brazil",
		"[Source N]",
		"User question: What is the capital of Brazil?",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildPromptEmptyResults(t *testing.T) {
	prompt := BuildPrompt("What happened today?", nil)

	if !strings.Contains(prompt, "No current web information was found") {
		t.Fatalf("empty-results prompt must tell the model no web information was found:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Do NOT invent sources") {
		t.Fatalf("empty-results prompt must forbid fabricated sources:\n%s", prompt)
	}
	if strings.Contains(prompt, "Sources:") {
		t.Fatalf("empty-results prompt must not contain a source block:\n%s", prompt)
	}
}

func TestBuildPromptDeterministic(t *testing.T) {
	results := []models.Result{{Index: 1, Title: "T", URL: "https://example.com", Snippet: "s"}}
	a := BuildPrompt("q", results)
	b := BuildPrompt("q", results)
	if a != b {
		t.Fatal("prompt builder must be deterministic")
	}
}
