// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Default artifact paths, relative to the working directory.
const (
	DefaultEntryLog  = "data/news.jsonl"
	DefaultSources   = "data/sources.yaml"
	DefaultOverrides = "data/overrides.yaml"
	DefaultTemplates = "data/templates.txt"
	DefaultSnapshot  = "data/merged.json"
	DefaultWordBank  = "data/wordbank.json"
	DefaultNoref     = "data/noref.json"
)

// Config represents the CLI configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or come
// from CLI flags.
type Config struct {
	// Artifact paths
	EntryLog  string `json:"entry_log,omitempty"`  // Append-only crawl entry log (JSONL)
	Sources   string `json:"sources,omitempty"`    // Source list YAML
	Overrides string `json:"overrides,omitempty"`  // Manual override vocabulary YAML
	Templates string `json:"templates,omitempty"`  // Template catalog (one per line)
	Snapshot  string `json:"snapshot,omitempty"`   // Merged snapshot JSON
	WordBank  string `json:"wordbank,omitempty"`   // Standalone word bank artifact
	Noref     string `json:"noref,omitempty"`      // Standalone no-reference artifact

	// Extraction
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	Provider    string `json:"provider,omitempty"`     // Extraction provider: gemini or remote
	NEREndpoint string `json:"ner_endpoint,omitempty"` // Endpoint for the remote provider

	// Behavior
	Workers     int    `json:"workers,omitempty"`      // Concurrent fetch+extract tasks
	UseBrowser  bool   `json:"use_browser,omitempty"`  // Headless browser fallback for SPA pages
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
	SearchSite  string `json:"search_site,omitempty"`  // Site filter for reference links
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL URL for crawl-run history
}

// LoadConfig loads configuration from a JSON file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("config error: 'workers' must be non-negative")
	}
	switch c.Provider {
	case "", "gemini", "remote":
	default:
		return fmt.Errorf("config error: 'provider' must be gemini or remote, got %q", c.Provider)
	}
	if c.Provider == "remote" && c.NEREndpoint == "" {
		return fmt.Errorf("config error: 'ner_endpoint' is required when provider is remote")
	}
	return nil
}

// ApplyDefaults fills empty path fields with the standard layout.
func (c *Config) ApplyDefaults() {
	if c.EntryLog == "" {
		c.EntryLog = DefaultEntryLog
	}
	if c.Sources == "" {
		c.Sources = DefaultSources
	}
	if c.Overrides == "" {
		c.Overrides = DefaultOverrides
	}
	if c.Templates == "" {
		c.Templates = DefaultTemplates
	}
	if c.Snapshot == "" {
		c.Snapshot = DefaultSnapshot
	}
	if c.WordBank == "" {
		c.WordBank = DefaultWordBank
	}
	if c.Noref == "" {
		c.Noref = DefaultNoref
	}
}
