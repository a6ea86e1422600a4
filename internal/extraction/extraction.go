// Package extraction wraps named-entity recognition services behind a
// single adapter interface. Extraction output is a mapping from category
// to word list; a failed call surfaces as an error which the crawler
// records, never as a panic or a partial result.
package extraction

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/daily-almanac/internal/wordbank"
)

// Extractor extracts categorized named entities from plain text.
// Categorization is not required to be deterministic run to run; any
// returned mapping is a valid contribution to the word bank.
type Extractor interface {
	Extract(ctx context.Context, text string) (map[string][]string, error)
}

// Provider selects the extraction backend.
type Provider string

// Supported extraction providers.
const (
	ProviderGemini Provider = "gemini"
	ProviderRemote Provider = "remote"
)

// ExtractionError represents a failed extraction call.
type ExtractionError struct {
	Provider Provider
	Message  string
	Cause    error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction error (%s): %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction error (%s): %s", e.Provider, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// buildPrompt constructs the NER prompt listing the fixed category set.
func buildPrompt(text string) string {
	var sb strings.Builder
	sb.WriteString("You are a named-entity recognition engine. ")
	sb.WriteString("Extract proper nouns and named entities from the input text and categorize each occurrence into exactly one of these categories:\n")
	for _, category := range wordbank.Categories() {
		sb.WriteString("  - ")
		sb.WriteString(category)
		sb.WriteByte('\n')
	}
	sb.WriteString("\nReturn ONLY a valid JSON object mapping category name to an array of entity strings. ")
	sb.WriteString("Omit categories with no entities. Copy entities verbatim from the text; do not invent, translate or normalize them. ")
	sb.WriteString("No markdown, no explanation, no code blocks.\n\n")
	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(text)
	sb.WriteString("\n\"\"\"\n")
	return sb.String()
}

// sanitize keeps only fixed categories and drops words too short to be
// meaningful entities (single characters are usually tokenizer noise).
func sanitize(raw map[string][]string) map[string][]string {
	out := make(map[string][]string, len(raw))
	for category, words := range raw {
		if !wordbank.IsKnownCategory(category) {
			continue
		}
		var kept []string
		for _, word := range words {
			word = strings.TrimSpace(word)
			if utf8.RuneCountInString(word) > 1 {
				kept = append(kept, word)
			}
		}
		if len(kept) > 0 {
			out[category] = kept
		}
	}
	return out
}
