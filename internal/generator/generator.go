// Package generator produces deterministic fortune text by filling
// template placeholders with words from the merged word bank.
package generator

import (
	"crypto/md5"
	"encoding/binary"
	"math/rand/v2"
	"net/url"
	"time"

	"github.com/jonathan/daily-almanac/internal/templates"
	"github.com/jonathan/daily-almanac/internal/wordbank"
)

// DefaultSearchSite is the site filter baked into reference links when
// no override is configured.
const DefaultSearchSite = "cuhk.edu.cn"

// fortuneZoneOffset pins "today" to UTC+8 so daily fortunes roll over at
// local midnight regardless of where the process runs.
const fortuneZoneOffset = 8 * 60 * 60

// FortuneZone returns the fixed zone that defines the daily rollover.
func FortuneZone() *time.Location {
	return time.FixedZone("UTC+8", fortuneZoneOffset)
}

// Generator fills templates from a word bank. It holds no mutable state;
// every call derives all randomness from its seed key, so the same key
// against the same inputs always yields the same text.
type Generator struct {
	Bank      *wordbank.Bank
	Noref     *wordbank.OrderedSet
	Templates []string

	// SearchSite overrides the site filter in reference links.
	SearchSite string
}

// New creates a Generator over the given word bank, no-reference set and
// template catalog.
func New(bank *wordbank.Bank, noref *wordbank.OrderedSet, tmpls []string) *Generator {
	return &Generator{Bank: bank, Noref: noref, Templates: tmpls}
}

// Generate produces the fortune text for seedKey. The seed key is hashed
// to initialize a PRNG which drives the template pick, then one category
// pick and one word pick per placeholder in left-to-right order. Words
// outside the no-reference set are rendered as markdown search links.
func (g *Generator) Generate(seedKey string) (string, error) {
	if len(g.Templates) == 0 {
		return "", &NoTemplatesError{}
	}

	rng := newSeededRand(seedKey)
	tmpl := g.Templates[rng.IntN(len(g.Templates))]

	return templates.ReplacePlaceholders(tmpl, func(categories []string) (string, error) {
		category := categories[rng.IntN(len(categories))]
		words, ok := g.Bank.Words(category)
		if !ok {
			return "", &UnknownCategoryError{Category: category}
		}
		if len(words) == 0 {
			return "", &EmptyCategoryError{Category: category}
		}
		word := words[rng.IntN(len(words))]
		if g.Noref != nil && g.Noref.Contains(word) {
			return word, nil
		}
		return g.linkify(word), nil
	})
}

// DailyPair returns the do / do-not fortune pair for a user on the day
// containing now. The seed keys concatenate user, date and suffix, so a
// user's pair is stable for a whole day and changes at midnight UTC+8.
func (g *Generator) DailyPair(userID string, now time.Time) (string, string, error) {
	day := now.In(FortuneZone()).Format("2006-01-02")
	do, err := g.Generate(userID + day + "do")
	if err != nil {
		return "", "", err
	}
	dont, err := g.Generate(userID + day + "do_not")
	if err != nil {
		return "", "", err
	}
	return do, dont, nil
}

// linkify renders word as a markdown link to a quoted search query
// restricted to the configured site.
func (g *Generator) linkify(word string) string {
	site := g.SearchSite
	if site == "" {
		site = DefaultSearchSite
	}
	q := url.Values{}
	q.Set("q", `"`+word+`" site:`+site)
	return "[" + word + "](https://www.google.com/search?" + q.Encode() + ")"
}

// newSeededRand derives a platform-independent PRNG from the MD5 digest
// of the seed key. MD5 is used as a stable 128-bit mixer here, not for
// any security property.
func newSeededRand(seedKey string) *rand.Rand {
	sum := md5.Sum([]byte(seedKey))
	hi := binary.BigEndian.Uint64(sum[0:8])
	lo := binary.BigEndian.Uint64(sum[8:16])
	return rand.New(rand.NewPCG(hi, lo))
}
