// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/daily-almanac/internal/entrylog"
	"github.com/jonathan/daily-almanac/internal/snapshot"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintSnapshot outputs a human-readable summary of a merged snapshot.
func (p *Printer) PrintSnapshot(s *snapshot.Snapshot) {
	if s == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Version:   %.12s…\n", s.Version))
	sb.WriteString(fmt.Sprintf("Templates: %d\n", len(s.Templates)))
	sb.WriteString(fmt.Sprintf("Noref:     %d words\n", len(s.Noref)))
	sb.WriteString("\nCategories:\n")
	for _, cat := range s.WordBank {
		sb.WriteString(fmt.Sprintf("  %-14s %d words\n", cat.Name, len(cat.Words)))
	}

	p.printBox("Merged Snapshot", sb.String())
}

// PrintCrawlSummary outputs a summary of newly crawled entries.
func (p *Printer) PrintCrawlSummary(entries []entrylog.Entry) {
	var sb strings.Builder

	succeeded, failed := 0, 0
	for _, entry := range entries {
		if entry.Succeeded() {
			succeeded++
		} else {
			failed++
		}
	}
	sb.WriteString(fmt.Sprintf("New entries: %d (%d extracted, %d failed)\n", len(entries), succeeded, failed))

	if len(entries) > 0 {
		sb.WriteString("\nLinks:\n")
		count := min(len(entries), maxItemsToShow)
		for i := 0; i < count; i++ {
			marker := "✓"
			if !entries[i].Succeeded() {
				marker = "✗"
			}
			sb.WriteString(fmt.Sprintf("  %s %s\n", marker, entries[i].Link))
		}
		if len(entries) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  … and %d more\n", len(entries)-maxItemsToShow))
		}
	}

	p.printBox("Crawl Summary", sb.String())
}
