// Package entrylog reads and appends the append-only crawl entry log.
// The log is the source of truth for which links have already been
// crawled: a link counts as seen if it appears in any entry, whether or
// not extraction succeeded for it.
package entrylog

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Entry records one crawled link and its extraction outcome.
// A nil Entities map means extraction was attempted and failed (the
// failure reason is kept in Error); an empty non-nil map means the page
// was processed but contributed no entities.
type Entry struct {
	Link     string              `json:"link"`
	Entities map[string][]string `json:"entities"`
	Error    string              `json:"error,omitempty"`
}

// Succeeded reports whether extraction produced a result for this entry.
func (e Entry) Succeeded() bool {
	return e.Entities != nil
}

// ParseError indicates a malformed entry log line. The log is never
// repaired in place; a corrupt file must be fixed by hand.
type ParseError struct {
	Path  string
	Line  int
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("entry log %s: line %d: %v", e.Path, e.Line, e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Load reads all entries from the log at path. A missing file is treated
// as an empty log; a malformed line is fatal.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read entry log %s: %w", path, err)
	}

	var entries []Entry
	for i, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		dec := json.NewDecoder(bytes.NewReader([]byte(line)))
		dec.DisallowUnknownFields()
		var entry Entry
		if err := dec.Decode(&entry); err != nil {
			return nil, &ParseError{Path: path, Line: i + 1, Cause: err}
		}
		if entry.Link == "" {
			return nil, &ParseError{Path: path, Line: i + 1, Cause: fmt.Errorf("missing link")}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Append writes entries to the end of the log at path, one JSON object
// per line, creating the file if needed. Entries are never mutated or
// deleted once written.
func Append(path string, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open entry log %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	w := bufio.NewWriter(f)
	for _, entry := range entries {
		line, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("encode entry for %s: %w", entry.Link, err)
		}
		if _, err := w.Write(append(line, '\n')); err != nil {
			return fmt.Errorf("append to entry log %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush entry log %s: %w", path, err)
	}
	return nil
}

// Links returns the set of links present in entries.
func Links(entries []Entry) map[string]struct{} {
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		seen[entry.Link] = struct{}{}
	}
	return seen
}
