package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"entry_log": "custom/news.jsonl",
		"provider": "remote",
		"ner_endpoint": "https://ner.example.com/extract",
		"workers": 4,
		"use_browser": true
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "custom/news.jsonl", cfg.EntryLog)
	assert.Equal(t, "remote", cfg.Provider)
	assert.Equal(t, 4, cfg.Workers)
	assert.True(t, cfg.UseBrowser)
	assert.Empty(t, cfg.Sources, "unset fields stay empty until defaults apply")
}

func TestLoadConfigEmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadConfigMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{bad"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"empty config is valid", Config{}, false},
		{"gemini provider", Config{Provider: "gemini"}, false},
		{"remote with endpoint", Config{Provider: "remote", NEREndpoint: "https://x/extract"}, false},
		{"remote without endpoint", Config{Provider: "remote"}, true},
		{"unknown provider", Config{Provider: "spacy"}, true},
		{"negative workers", Config{Workers: -1}, true},
		{"positive workers", Config{Workers: 16}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{EntryLog: "custom/news.jsonl"}
	cfg.ApplyDefaults()

	assert.Equal(t, "custom/news.jsonl", cfg.EntryLog, "explicit values survive")
	assert.Equal(t, DefaultSources, cfg.Sources)
	assert.Equal(t, DefaultOverrides, cfg.Overrides)
	assert.Equal(t, DefaultTemplates, cfg.Templates)
	assert.Equal(t, DefaultSnapshot, cfg.Snapshot)
	assert.Equal(t, DefaultWordBank, cfg.WordBank)
	assert.Equal(t, DefaultNoref, cfg.Noref)
}
