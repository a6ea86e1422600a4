package wordbank

// The closed category set produced by the entity extraction service.
// Every bank declares these up front so a category with zero words is
// still present as an empty sequence, never absent.
var fixedCategories = []string{
	"time",
	"location",
	"person_name",
	"org_name",
	"company_name",
	"product_name",
	"job_title",
	"other_proper",
}

// Categories returns the fixed category set in declaration order.
func Categories() []string {
	out := make([]string, len(fixedCategories))
	copy(out, fixedCategories)
	return out
}

// IsKnownCategory reports whether name belongs to the fixed category set.
func IsKnownCategory(name string) bool {
	for _, c := range fixedCategories {
		if c == name {
			return true
		}
	}
	return false
}

// Bank maps category names to insertion-ordered word sets. Category
// iteration order is stable: the fixed set first, then any categories
// added later in order of first appearance.
type Bank struct {
	order []string
	cats  map[string]*OrderedSet
}

// NewBank creates a Bank with the fixed category set pre-declared as
// empty sequences.
func NewBank() *Bank {
	b := &Bank{cats: make(map[string]*OrderedSet, len(fixedCategories))}
	for _, c := range fixedCategories {
		b.order = append(b.order, c)
		b.cats[c] = NewOrderedSet()
	}
	return b
}

// Add appends word to category, creating the category if novel, and
// reports whether the word was new to it.
func (b *Bank) Add(category, word string) bool {
	set, ok := b.cats[category]
	if !ok {
		set = NewOrderedSet()
		b.cats[category] = set
		b.order = append(b.order, category)
	}
	return set.Add(word)
}

// Declare ensures category exists, creating it as an empty sequence if
// novel.
func (b *Bank) Declare(category string) {
	if _, ok := b.cats[category]; !ok {
		b.cats[category] = NewOrderedSet()
		b.order = append(b.order, category)
	}
}

// Has reports whether category exists in the bank.
func (b *Bank) Has(category string) bool {
	_, ok := b.cats[category]
	return ok
}

// Words returns the ordered word list for category and whether the
// category exists. The returned slice is a copy.
func (b *Bank) Words(category string) ([]string, bool) {
	set, ok := b.cats[category]
	if !ok {
		return nil, false
	}
	return set.Items(), true
}

// CategoryNames returns all category names in stable iteration order.
func (b *Bank) CategoryNames() []string {
	out := make([]string, len(b.order))
	copy(out, b.order)
	return out
}

// WordCount returns the total number of words across all categories.
func (b *Bank) WordCount() int {
	n := 0
	for _, set := range b.cats {
		n += set.Len()
	}
	return n
}
