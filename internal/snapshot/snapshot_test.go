package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/daily-almanac/internal/wordbank"
)

func sampleBank(t *testing.T) (*wordbank.Bank, *wordbank.OrderedSet) {
	t.Helper()
	bank := wordbank.NewBank()
	bank.Add("location", "Paris")
	bank.Add("location", "Tokyo")
	bank.Add("animal", "dog")
	noref := wordbank.NewOrderedSet("dog")
	return bank, noref
}

func TestBuildVersionIsContentHash(t *testing.T) {
	bank, noref := sampleBank(t)
	tmpls := []string{"Visit <location>."}

	s1 := Build(bank, noref, tmpls)
	s2 := Build(bank, noref, tmpls)

	assert.Len(t, s1.Version, 64)
	assert.Equal(t, s1.Version, s2.Version, "identical inputs should share a version")

	bank.Add("location", "Lima")
	s3 := Build(bank, noref, tmpls)
	assert.NotEqual(t, s1.Version, s3.Version, "changed content should change the version")
}

func TestBuildNorefIsSorted(t *testing.T) {
	bank := wordbank.NewBank()
	bank.Add("animal", "zebra")
	bank.Add("animal", "ant")
	noref := wordbank.NewOrderedSet("zebra", "ant")

	s := Build(bank, noref, nil)
	assert.Equal(t, []string{"ant", "zebra"}, s.Noref)
}

func TestBuildEmptyInputs(t *testing.T) {
	s := Build(wordbank.NewBank(), nil, nil)

	assert.NotNil(t, s.Noref)
	assert.NotNil(t, s.Templates)
	require.Len(t, s.WordBank, len(wordbank.Categories()))
	for _, cat := range s.WordBank {
		assert.NotNil(t, cat.Words, "empty category %q should serialize as [], not null", cat.Name)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	bank, noref := sampleBank(t)
	s := Build(bank, noref, []string{"Walk the <animal>."})

	path := filepath.Join(t.TempDir(), "merged.json")
	require.NoError(t, Save(path, s))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}

func TestSaveIsByteIdenticalAcrossRebuilds(t *testing.T) {
	bank, noref := sampleBank(t)
	tmpls := []string{"Walk the <animal>."}
	dir := t.TempDir()

	path1 := filepath.Join(dir, "a.json")
	path2 := filepath.Join(dir, "b.json")
	require.NoError(t, Save(path1, Build(bank, noref, tmpls)))
	require.NoError(t, Save(path2, Build(bank, noref, tmpls)))

	data1, err := os.ReadFile(path1)
	require.NoError(t, err)
	data2, err := os.ReadFile(path2)
	require.NoError(t, err)
	assert.Equal(t, data1, data2)
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	bank, noref := sampleBank(t)
	dir := t.TempDir()

	require.NoError(t, Save(filepath.Join(dir, "merged.json"), Build(bank, noref, nil)))

	names, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, names, 1)
	assert.Equal(t, "merged.json", names[0].Name())
}

func TestLoadRejectsVersionMismatch(t *testing.T) {
	bank, noref := sampleBank(t)
	s := Build(bank, noref, []string{"t"})
	s.Version = strings.Repeat("0", 64)

	path := filepath.Join(t.TempDir(), "merged.json")
	// Write directly; Save would not produce a mismatched version.
	data, err := json.MarshalIndent(s, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))

	_, err = Load(path)
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Contains(t, formatErr.Message, "does not match content hash")
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "merged.json")
	content := `{"version":"` + strings.Repeat("a", 64) + `","word_bank":[],"noref":[],"templates":[],"extra":1}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := Load(path)
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "merged.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Load(path)
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestMaterializeRoundTrip(t *testing.T) {
	bank, noref := sampleBank(t)
	tmpls := []string{"Walk the <animal>."}
	s := Build(bank, noref, tmpls)

	gotBank, gotNoref, gotTmpls, err := s.Materialize()
	require.NoError(t, err)

	assert.Equal(t, bank.CategoryNames(), gotBank.CategoryNames())
	for _, c := range bank.CategoryNames() {
		want, _ := bank.Words(c)
		got, _ := gotBank.Words(c)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, noref.Items(), gotNoref.Items())
	assert.Equal(t, tmpls, gotTmpls)
}

func TestMaterializeRejectsDuplicateWords(t *testing.T) {
	s := &Snapshot{
		WordBank: []CategoryWords{{Name: "animal", Words: []string{"dog", "dog"}}},
	}

	_, _, _, err := s.Materialize()
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
}
