package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/daily-almanac/internal/entrylog"
	"github.com/jonathan/daily-almanac/internal/snapshot"
)

func TestPrintSnapshot(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSnapshot(&snapshot.Snapshot{
		Version:   strings.Repeat("ab", 32),
		WordBank:  []snapshot.CategoryWords{{Name: "location", Words: []string{"Paris", "Tokyo"}}},
		Noref:     []string{"dog"},
		Templates: []string{"Visit <location>."},
	})

	out := buf.String()
	assert.Contains(t, out, "Merged Snapshot")
	assert.Contains(t, out, "abababababab")
	assert.Contains(t, out, "location")
	assert.Contains(t, out, "2 words")
	assert.Contains(t, out, "Templates: 1")
}

func TestPrintSnapshotNil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintSnapshot(nil)
	assert.Empty(t, buf.String())
}

func TestPrintCrawlSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCrawlSummary([]entrylog.Entry{
		{Link: "https://example.com/a", Entities: map[string][]string{}},
		{Link: "https://example.com/b", Error: "timeout"},
	})

	out := buf.String()
	assert.Contains(t, out, "New entries: 2 (1 extracted, 1 failed)")
	assert.Contains(t, out, "✓")
	assert.Contains(t, out, "✗")
}

func TestPrintCrawlSummaryTruncatesLongLists(t *testing.T) {
	entries := make([]entrylog.Entry, 9)
	for i := range entries {
		entries[i] = entrylog.Entry{Link: "https://example.com/x", Entities: map[string][]string{}}
	}

	var buf bytes.Buffer
	NewPrinter(&buf).PrintCrawlSummary(entries)

	assert.Contains(t, buf.String(), "and 4 more")
}
