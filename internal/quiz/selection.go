package quiz

import "sort"

// Selection is a set of answer ids.
type Selection map[string]bool

// Has reports membership.
func (s Selection) Has(id string) bool {
	return s[id]
}

// Toggle flips membership of id.
func (s Selection) Toggle(id string) {
	if s[id] {
		delete(s, id)
	} else {
		s[id] = true
	}
}

// Equal reports exact set equality: same cardinality, same members.
// A nil selection equals an empty one.
func (s Selection) Equal(other Selection) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if !other[id] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (s Selection) Clone() Selection {
	cp := make(Selection, len(s))
	for id := range s {
		cp[id] = true
	}
	return cp
}

// IDs returns the members in sorted order, for stable serialization.
func (s Selection) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SelectionOf builds a selection from answer ids.
func SelectionOf(ids ...string) Selection {
	sel := make(Selection, len(ids))
	for _, id := range ids {
		sel[id] = true
	}
	return sel
}
