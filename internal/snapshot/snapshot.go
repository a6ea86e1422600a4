// Package snapshot builds, persists and loads the merged artifact
// bundling the word bank, no-reference set and template catalog. The
// generator reads one snapshot file instead of three separate ones.
package snapshot

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jonathan/daily-almanac/internal/schemas"
	"github.com/jonathan/daily-almanac/internal/wordbank"
)

// CategoryWords holds one category and its insertion-ordered word list.
// An explicit array (not an object keyed by name) keeps category order
// stable across serialization round trips.
type CategoryWords struct {
	Name  string   `json:"name"`
	Words []string `json:"words"`
}

// Snapshot is the versioned, atomically-replaceable aggregate consumed
// by the generator.
type Snapshot struct {
	Version   string          `json:"version"`
	WordBank  []CategoryWords `json:"word_bank"`
	Noref     []string        `json:"noref"`
	Templates []string        `json:"templates"`
}

// content is the canonical form hashed to produce Version.
type content struct {
	WordBank  []CategoryWords `json:"word_bank"`
	Noref     []string        `json:"noref"`
	Templates []string        `json:"templates"`
}

// Build assembles a Snapshot from rebuild outputs. The no-reference set
// is serialized sorted so identical inputs always produce byte-identical
// snapshots; the version is a content hash, so idempotent rebuilds keep
// the same version string.
func Build(bank *wordbank.Bank, noref *wordbank.OrderedSet, tmpls []string) *Snapshot {
	s := &Snapshot{Templates: append([]string(nil), tmpls...)}
	for _, name := range bank.CategoryNames() {
		words, _ := bank.Words(name)
		if words == nil {
			words = []string{}
		}
		s.WordBank = append(s.WordBank, CategoryWords{Name: name, Words: words})
	}
	if noref != nil {
		s.Noref = noref.Items()
		sort.Strings(s.Noref)
	} else {
		s.Noref = []string{}
	}
	if s.Templates == nil {
		s.Templates = []string{}
	}
	s.Version = computeVersion(s)
	return s
}

func computeVersion(s *Snapshot) string {
	data, err := json.Marshal(content{WordBank: s.WordBank, Noref: s.Noref, Templates: s.Templates})
	if err != nil {
		// content holds only strings and slices; Marshal cannot fail
		panic(err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Materialize converts the snapshot back into the structures the
// generator consumes. A duplicate word within a category means the file
// was produced by something other than the merge engine and is rejected.
func (s *Snapshot) Materialize() (*wordbank.Bank, *wordbank.OrderedSet, []string, error) {
	bank := wordbank.NewBank()
	for _, cat := range s.WordBank {
		bank.Declare(cat.Name)
		for _, word := range cat.Words {
			if !bank.Add(cat.Name, word) {
				return nil, nil, nil, &FormatError{
					Message: fmt.Sprintf("duplicate word %q in category %q", word, cat.Name),
				}
			}
		}
	}
	return bank, wordbank.NewOrderedSet(s.Noref...), s.Templates, nil
}

// Save validates the snapshot against its schema and writes it
// atomically (temp file + rename) so readers never observe a partial
// snapshot.
func Save(path string, s *Snapshot) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	data = append(data, '\n')

	if schemaPath := schemas.ResolveSchemaPath(schemas.SnapshotSchema); schemaPath != "" {
		if err := schemas.ValidateBytes(schemaPath, data); err != nil {
			return fmt.Errorf("snapshot failed schema validation before save: %w", err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".snapshot-*.json")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace snapshot %s: %w", path, err)
	}
	return nil
}

// Load reads and strictly parses the snapshot at path. Schema
// violations, unknown fields and version mismatches are all fatal; the
// system refuses to operate on a corrupt snapshot rather than guess.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}

	if schemaPath := schemas.ResolveSchemaPath(schemas.SnapshotSchema); schemaPath != "" {
		if err := schemas.ValidateBytes(schemaPath, data); err != nil {
			return nil, &FormatError{Path: path, Message: "schema validation failed", Cause: err}
		}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var s Snapshot
	if err := dec.Decode(&s); err != nil {
		return nil, &FormatError{Path: path, Message: "malformed JSON", Cause: err}
	}

	if want := computeVersion(&s); s.Version != want {
		return nil, &FormatError{
			Path:    path,
			Message: fmt.Sprintf("version %s does not match content hash %s", s.Version, want),
		}
	}
	return &s, nil
}

// FormatError indicates a persisted snapshot that cannot be trusted.
type FormatError struct {
	Path    string
	Message string
	Cause   error
}

func (e *FormatError) Error() string {
	msg := "snapshot error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	msg += ": " + e.Message
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *FormatError) Unwrap() error {
	return e.Cause
}
