package wordbank

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Override is one manually curated category with its word list.
type Override struct {
	Category string
	Words    []string
}

// LoadOverrides reads a YAML mapping from category name to word list.
// Document order is preserved so that rebuilds stay deterministic, which
// is why this decodes through yaml.Node instead of a map.
func LoadOverrides(path string) ([]Override, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read overrides %s: %w", path, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse overrides %s: %w", path, err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("overrides %s: top level must be a mapping of category to word list", path)
	}

	overrides := make([]Override, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i]
		val := root.Content[i+1]

		var words []string
		if err := val.Decode(&words); err != nil {
			return nil, fmt.Errorf("overrides %s: category %q: %w", path, key.Value, err)
		}
		overrides = append(overrides, Override{Category: key.Value, Words: words})
	}
	return overrides, nil
}
