// Package templates loads the line-based fortune template catalog and
// resolves the <category,...> placeholder syntax.
package templates

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// placeholderRe matches placeholders of the form <cat> or <cat1,cat2,...>.
var placeholderRe = regexp.MustCompile(`<\w+(,\w+)*>`)

// Load reads the template catalog at path, one template per line.
// Blank lines and lines starting with '#' are ignored.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read templates %s: %w", path, err)
	}
	return Parse(string(data)), nil
}

// Parse extracts templates from raw catalog text.
func Parse(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}

// PlaceholderCategories returns the category lists of each placeholder
// in tmpl, in left-to-right order.
func PlaceholderCategories(tmpl string) [][]string {
	var out [][]string
	for _, m := range placeholderRe.FindAllString(tmpl, -1) {
		out = append(out, strings.Split(m[1:len(m)-1], ","))
	}
	return out
}

// ReplacePlaceholders substitutes every placeholder in tmpl left to
// right using resolve. The first resolution error aborts the whole
// substitution; resolve is not called again after it fails.
func ReplacePlaceholders(tmpl string, resolve func(categories []string) (string, error)) (string, error) {
	var firstErr error
	out := placeholderRe.ReplaceAllStringFunc(tmpl, func(m string) string {
		if firstErr != nil {
			return m
		}
		replacement, err := resolve(strings.Split(m[1:len(m)-1], ","))
		if err != nil {
			firstErr = err
			return m
		}
		return replacement
	})
	if firstErr != nil {
		return "", firstErr
	}
	return out, nil
}
