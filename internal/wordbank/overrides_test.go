package wordbank

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeOverridesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "overrides.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadOverridesPreservesDocumentOrder(t *testing.T) {
	path := writeOverridesFile(t, `zebra:
  - stripe
animal:
  - dog
  - cat
color:
  - red
`)

	overrides, err := LoadOverrides(path)
	require.NoError(t, err)

	require.Len(t, overrides, 3)
	assert.Equal(t, "zebra", overrides[0].Category)
	assert.Equal(t, []string{"stripe"}, overrides[0].Words)
	assert.Equal(t, "animal", overrides[1].Category)
	assert.Equal(t, []string{"dog", "cat"}, overrides[1].Words)
	assert.Equal(t, "color", overrides[2].Category)
}

func TestLoadOverridesMissingFile(t *testing.T) {
	overrides, err := LoadOverrides(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Nil(t, overrides)
}

func TestLoadOverridesEmptyFile(t *testing.T) {
	path := writeOverridesFile(t, "")

	overrides, err := LoadOverrides(path)
	require.NoError(t, err)
	assert.Empty(t, overrides)
}

func TestLoadOverridesRejectsNonMapping(t *testing.T) {
	path := writeOverridesFile(t, "- dog\n- cat\n")

	_, err := LoadOverrides(path)
	assert.Error(t, err)
}

func TestLoadOverridesRejectsScalarValue(t *testing.T) {
	path := writeOverridesFile(t, "animal: dog\n")

	_, err := LoadOverrides(path)
	assert.Error(t, err)
}
