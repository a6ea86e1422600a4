// Package wordbank maintains the categorized vocabulary consumed by the generator.
package wordbank

// OrderedSet is a string set with O(1) membership and stable,
// insertion-ordered iteration.
type OrderedSet struct {
	index map[string]struct{}
	items []string
}

// NewOrderedSet creates an OrderedSet seeded with the given items.
// Duplicates are dropped, first occurrence wins.
func NewOrderedSet(items ...string) *OrderedSet {
	s := &OrderedSet{index: make(map[string]struct{}, len(items))}
	for _, item := range items {
		s.Add(item)
	}
	return s
}

// Add appends item if not already present and reports whether it was new.
func (s *OrderedSet) Add(item string) bool {
	if _, ok := s.index[item]; ok {
		return false
	}
	s.index[item] = struct{}{}
	s.items = append(s.items, item)
	return true
}

// Contains reports whether item is in the set.
func (s *OrderedSet) Contains(item string) bool {
	_, ok := s.index[item]
	return ok
}

// Len returns the number of items in the set.
func (s *OrderedSet) Len() int {
	return len(s.items)
}

// Items returns the set contents in insertion order. The returned slice is a copy.
func (s *OrderedSet) Items() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}
