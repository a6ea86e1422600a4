package entrylog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "news.jsonl")

	first := []Entry{
		{Link: "https://example.com/a", Entities: map[string][]string{"location": {"Paris"}}},
		{Link: "https://example.com/b", Error: "fetch failed"},
	}
	require.NoError(t, Append(path, first))

	second := []Entry{
		{Link: "https://example.com/c", Entities: map[string][]string{}},
	}
	require.NoError(t, Append(path, second))

	entries, err := Load(path)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "https://example.com/a", entries[0].Link)
	assert.True(t, entries[0].Succeeded())
	assert.Equal(t, []string{"Paris"}, entries[0].Entities["location"])

	assert.False(t, entries[1].Succeeded())
	assert.Equal(t, "fetch failed", entries[1].Error)

	// An empty non-nil map still counts as a success.
	assert.True(t, entries[2].Succeeded())
	assert.Empty(t, entries[2].Entities)
}

func TestLoadMissingFileIsEmptyLog(t *testing.T) {
	entries, err := Load(filepath.Join(t.TempDir(), "absent.jsonl"))
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestLoadSkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "news.jsonl")
	content := `{"link":"https://example.com/a","entities":null}

{"link":"https://example.com/b","entities":{"time":["Monday"]}}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	entries, err := Load(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.False(t, entries[0].Succeeded())
	assert.True(t, entries[1].Succeeded())
}

func TestLoadMalformedLineIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "news.jsonl")
	content := `{"link":"https://example.com/a","entities":{}}
not json at all
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := Load(path)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 2, parseErr.Line)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "news.jsonl")
	content := `{"link":"https://example.com/a","entities":{},"extra":true}` + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := Load(path)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestLoadRejectsMissingLink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "news.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(`{"entities":{}}`+"\n"), 0644))

	_, err := Load(path)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Error(), "missing link")
}

func TestAppendWritesOneObjectPerLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "news.jsonl")
	entries := []Entry{
		{Link: "a", Entities: map[string][]string{}},
		{Link: "b", Error: "x"},
	}
	require.NoError(t, Append(path, entries))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	assert.Len(t, lines, 2)
}

func TestAppendNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "news.jsonl")
	require.NoError(t, Append(path, nil))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "empty append should not create the file")
}

func TestLinks(t *testing.T) {
	entries := []Entry{
		{Link: "a"},
		{Link: "b"},
		{Link: "a"},
	}

	seen := Links(entries)
	assert.Len(t, seen, 2)
	_, ok := seen["a"]
	assert.True(t, ok)
	_, ok = seen["b"]
	assert.True(t, ok)
}
