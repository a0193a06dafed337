package catalog

import "strings"

// Category represents a filterable product category
// Count is derived from the catalog at load time, not stored
type Category struct {
	ID    string
	Name  string
	Count int
}

// Selection is a set of active category filters
// It is order-insensitive and duplicate-free; the zero value is usable
type Selection map[string]struct{}

// NewSelection builds a selection from the given category IDs
func NewSelection(ids ...string) Selection {
	s := make(Selection, len(ids))
	for _, id := range ids {
		if id != "" {
			s[id] = struct{}{}
		}
	}
	return s
}

// Toggle adds the category when absent and removes it when present,
// returning a new selection
func (s Selection) Toggle(id string) Selection {
	next := make(Selection, len(s)+1)
	for k := range s {
		next[k] = struct{}{}
	}
	if _, ok := next[id]; ok {
		delete(next, id)
	} else if id != "" {
		next[id] = struct{}{}
	}
	return next
}

// Contains reports whether the category is selected
func (s Selection) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// IsEmpty reports whether no category is selected
func (s Selection) IsEmpty() bool {
	return len(s) == 0
}

// Values returns the selected category IDs in unspecified order
func (s Selection) Values() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	return ids
}

// matchesLabel reports whether any selected category is a case-insensitive
// substring of the product's category label. Loose containment is deliberate:
// selecting "frut" matches the "Frutados" label.
func (s Selection) matchesLabel(label string) bool {
	if s.IsEmpty() {
		return true
	}
	lower := strings.ToLower(label)
	for id := range s {
		if strings.Contains(lower, strings.ToLower(id)) {
			return true
		}
	}
	return false
}
