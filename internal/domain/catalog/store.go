package catalog

import (
	"strings"

	"github.com/vapeshop/storefront/internal/domain/shared"
)

// Store holds the immutable product catalog and exposes read-only queries
// Products are owned exclusively by the store once loaded
type Store struct {
	products   []*Product
	byID       map[string]*Product
	categories []Category
}

// NewStore builds a catalog store from the given products and categories
// Category counts are derived from the catalog using the same loose
// containment rule the filter applies
func NewStore(products []*Product, categories []Category) (*Store, error) {
	byID := make(map[string]*Product, len(products))
	for _, p := range products {
		if _, dup := byID[p.ID]; dup {
			return nil, shared.NewDomainError("DUPLICATE_PRODUCT", "Product ID "+p.ID+" appears more than once")
		}
		byID[p.ID] = p
	}

	derived := make([]Category, len(categories))
	for i, c := range categories {
		c.Count = 0
		for _, p := range products {
			if strings.Contains(strings.ToLower(p.Category), strings.ToLower(c.Name)) {
				c.Count++
			}
		}
		derived[i] = c
	}

	return &Store{
		products:   products,
		byID:       byID,
		categories: derived,
	}, nil
}

// Products returns the catalog in its original order
// The returned slice is a copy; the underlying products are shared and
// must be treated as read-only
func (s *Store) Products() []*Product {
	out := make([]*Product, len(s.products))
	copy(out, s.products)
	return out
}

// FindProduct returns the product with the given ID
func (s *Store) FindProduct(id string) (*Product, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// FindFlavor resolves a (productID, flavorID) pair against the catalog
func (s *Store) FindFlavor(productID, flavorID string) (*Product, Flavor, bool) {
	p, ok := s.byID[productID]
	if !ok {
		return nil, Flavor{}, false
	}
	f, ok := p.FindFlavor(flavorID)
	if !ok {
		return nil, Flavor{}, false
	}
	return p, f, true
}

// Categories returns the filterable categories with derived product counts
func (s *Store) Categories() []Category {
	out := make([]Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// Len returns the number of catalog products
func (s *Store) Len() int {
	return len(s.products)
}
