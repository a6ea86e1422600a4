package generator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/daily-almanac/internal/wordbank"
)

func singleWordBank(category, word string) *wordbank.Bank {
	b := wordbank.NewBank()
	b.Add(category, word)
	return b
}

func TestGenerateDeterministicPerKey(t *testing.T) {
	b := wordbank.NewBank()
	b.Add("location", "Paris")
	b.Add("location", "Tokyo")
	b.Add("person_name", "Ada")
	b.Add("person_name", "Bo")
	g := New(b, wordbank.NewOrderedSet(), []string{
		"Visit <location> with <person_name>.",
		"Avoid <location> today.",
	})

	first, err := g.Generate("user12026-01-01do")
	require.NoError(t, err)
	second, err := g.Generate("user12026-01-01do")
	require.NoError(t, err)

	assert.Equal(t, first, second, "same seed key should always yield the same text")
}

func TestGenerateNorefWordStaysVerbatim(t *testing.T) {
	g := New(singleWordBank("animal", "dog"), wordbank.NewOrderedSet("dog"),
		[]string{"Today bring your <animal>."})

	out, err := g.Generate("any-key")
	require.NoError(t, err)
	assert.Equal(t, "Today bring your dog.", out)
}

func TestGenerateLinkifiesUnlistedWord(t *testing.T) {
	g := New(singleWordBank("animal", "cat"), wordbank.NewOrderedSet(),
		[]string{"Feed the <animal>."})

	out, err := g.Generate("any-key")
	require.NoError(t, err)
	assert.Equal(t, "Feed the [cat](https://www.google.com/search?q=%22cat%22+site%3Acuhk.edu.cn).", out)
}

func TestGenerateCustomSearchSite(t *testing.T) {
	g := New(singleWordBank("animal", "cat"), wordbank.NewOrderedSet(),
		[]string{"<animal>"})
	g.SearchSite = "example.org"

	out, err := g.Generate("any-key")
	require.NoError(t, err)
	assert.Equal(t, "[cat](https://www.google.com/search?q=%22cat%22+site%3Aexample.org)", out)
}

func TestGenerateMultiCategoryPlaceholder(t *testing.T) {
	b := wordbank.NewBank()
	b.Add("animal", "dog")
	b.Add("color", "red")
	g := New(b, wordbank.NewOrderedSet("dog", "red"), []string{"Pick <animal,color>."})

	out, err := g.Generate("some-key")
	require.NoError(t, err)
	assert.Contains(t, []string{"Pick dog.", "Pick red."}, out)

	// The category pick is part of the seeded stream, so it is stable too.
	again, err := g.Generate("some-key")
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestGenerateNoTemplates(t *testing.T) {
	g := New(wordbank.NewBank(), wordbank.NewOrderedSet(), nil)

	_, err := g.Generate("key")
	var noTmpl *NoTemplatesError
	require.ErrorAs(t, err, &noTmpl)
}

func TestGenerateUnknownCategory(t *testing.T) {
	g := New(wordbank.NewBank(), wordbank.NewOrderedSet(), []string{"A <animal> appears."})

	_, err := g.Generate("key")
	var unknown *UnknownCategoryError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "animal", unknown.Category)
}

func TestGenerateEmptyCategory(t *testing.T) {
	// Fixed categories exist from the start but may hold no words yet.
	g := New(wordbank.NewBank(), wordbank.NewOrderedSet(), []string{"Go to <location>."})

	_, err := g.Generate("key")
	var empty *EmptyCategoryError
	require.ErrorAs(t, err, &empty)
	assert.Equal(t, "location", empty.Category)
}

func TestDailyPairStableWithinDay(t *testing.T) {
	b := wordbank.NewBank()
	b.Add("location", "Paris")
	b.Add("location", "Tokyo")
	g := New(b, wordbank.NewOrderedSet(), []string{"Visit <location>.", "Skip <location>."})

	// 15:00 UTC and 10:00 UTC fall on the same UTC+8 calendar day.
	early := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	late := time.Date(2026, 1, 1, 15, 0, 0, 0, time.UTC)

	do1, dont1, err := g.DailyPair("user1", early)
	require.NoError(t, err)
	do2, dont2, err := g.DailyPair("user1", late)
	require.NoError(t, err)

	assert.Equal(t, do1, do2)
	assert.Equal(t, dont1, dont2)
}

func TestDailyPairRollsOverAtFixedZoneMidnight(t *testing.T) {
	g := New(singleWordBank("animal", "dog"), wordbank.NewOrderedSet("dog"),
		[]string{"Walk the <animal>."})

	// 16:30 UTC on Jan 1 is already Jan 2 in UTC+8.
	beforeMidnight := time.Date(2026, 1, 1, 15, 30, 0, 0, time.UTC)
	afterMidnight := time.Date(2026, 1, 1, 16, 30, 0, 0, time.UTC)

	assert.Equal(t, "2026-01-01", beforeMidnight.In(FortuneZone()).Format("2006-01-02"))
	assert.Equal(t, "2026-01-02", afterMidnight.In(FortuneZone()).Format("2006-01-02"))

	// With a single template and word the text itself cannot vary, but
	// both calls must still succeed across the boundary.
	_, _, err := g.DailyPair("user1", beforeMidnight)
	require.NoError(t, err)
	_, _, err = g.DailyPair("user1", afterMidnight)
	require.NoError(t, err)
}

func TestFortuneZoneOffset(t *testing.T) {
	_, offset := time.Date(2026, 1, 1, 0, 0, 0, 0, FortuneZone()).Zone()
	assert.Equal(t, 8*60*60, offset)
}

func TestNewSeededRandIsStable(t *testing.T) {
	a := newSeededRand("stable-key")
	b := newSeededRand("stable-key")

	for i := 0; i < 16; i++ {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
}
