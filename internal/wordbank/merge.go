package wordbank

import (
	"fmt"

	"github.com/jonathan/daily-almanac/internal/entrylog"
)

// Rebuild reconstructs the word bank and no-reference set from the full
// entry log plus manual overrides. It always starts from an empty bank,
// so running it twice on the same inputs yields identical results.
//
// Entries are folded in log order; within a category, first-seen word
// order is preserved. Failed entries (nil entities) contribute nothing
// but still count as seen for dedup purposes upstream. Categories in
// extraction results that are not part of the fixed set are skipped —
// the extraction adapter only emits fixed categories, so anything else
// is a stale or foreign log line.
//
// Override words are appended after the log fold, creating novel
// categories in override file order, and every override word is also
// added to the no-reference set: curated vocabulary is treated as
// link-free.
func Rebuild(entries []entrylog.Entry, overrides []Override) (*Bank, *OrderedSet, error) {
	bank := NewBank()
	noref := NewOrderedSet()

	for _, entry := range entries {
		if !entry.Succeeded() {
			continue
		}
		for _, category := range Categories() {
			for _, word := range entry.Entities[category] {
				if word == "" {
					return nil, nil, &MergeError{
						Message: fmt.Sprintf("entry %s has an empty word under %q", entry.Link, category),
					}
				}
				bank.Add(category, word)
			}
		}
	}

	for _, ov := range overrides {
		if ov.Category == "" {
			return nil, nil, &MergeError{Message: "override with empty category name"}
		}
		for _, word := range ov.Words {
			if word == "" {
				return nil, nil, &MergeError{
					Message: fmt.Sprintf("override category %q has an empty word", ov.Category),
				}
			}
			bank.Add(ov.Category, word)
			noref.Add(word)
		}
	}

	return bank, noref, nil
}

// MergeError indicates a rebuild input that cannot be folded. The merge
// is rejected wholesale; no partial bank is produced.
type MergeError struct {
	Message string
	Cause   error
}

func (e *MergeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("merge error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("merge error: %s", e.Message)
}

func (e *MergeError) Unwrap() error {
	return e.Cause
}
