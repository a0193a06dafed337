package catalog

import "strings"

// Filter returns the products matching both the free-text query and the
// category selection. It is pure: the input slice is never mutated and the
// result preserves catalog order. An empty query and an empty selection each
// pass every product.
func Filter(products []*Product, query string, categories Selection) []*Product {
	matched := make([]*Product, 0, len(products))
	q := strings.ToLower(strings.TrimSpace(query))
	for _, p := range products {
		if matchesQuery(p, q) && categories.matchesLabel(p.Category) {
			matched = append(matched, p)
		}
	}
	return matched
}

// matchesQuery reports whether the lowercased query is a substring of the
// product name or of any flavor name
func matchesQuery(p *Product, q string) bool {
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Name), q) {
		return true
	}
	for _, f := range p.Flavors {
		if strings.Contains(strings.ToLower(f.Name), q) {
			return true
		}
	}
	return false
}
