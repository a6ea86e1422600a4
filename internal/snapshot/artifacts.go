package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/jonathan/daily-almanac/internal/schemas"
	"github.com/jonathan/daily-almanac/internal/wordbank"
)

// wordBankFile is the standalone word bank artifact written alongside
// the merged snapshot for consumers that only need the vocabulary.
type wordBankFile struct {
	Categories []CategoryWords `json:"categories"`
}

// SaveWordBank writes the word bank as its own schema-validated artifact.
func SaveWordBank(path string, bank *wordbank.Bank) error {
	out := wordBankFile{Categories: []CategoryWords{}}
	for _, name := range bank.CategoryNames() {
		words, _ := bank.Words(name)
		if words == nil {
			words = []string{}
		}
		out.Categories = append(out.Categories, CategoryWords{Name: name, Words: words})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode word bank: %w", err)
	}
	data = append(data, '\n')

	if schemaPath := schemas.ResolveSchemaPath(schemas.WordBankSchema); schemaPath != "" {
		if err := schemas.ValidateBytes(schemaPath, data); err != nil {
			return fmt.Errorf("word bank failed schema validation before save: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write word bank %s: %w", path, err)
	}
	return nil
}

// SaveNoref writes the no-reference set as a sorted JSON array.
func SaveNoref(path string, noref *wordbank.OrderedSet) error {
	words := []string{}
	if noref != nil {
		words = noref.Items()
		sort.Strings(words)
	}
	data, err := json.MarshalIndent(words, "", "  ")
	if err != nil {
		return fmt.Errorf("encode noref set: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write noref set %s: %w", path, err)
	}
	return nil
}
