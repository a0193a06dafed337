package persistence

import (
	"context"

	"github.com/vapeshop/storefront/internal/domain/cart"
)

// InMemoryCartRepository implements cart.Repository with a plain map
// Used for tests and ephemeral sessions with no local storage
type InMemoryCartRepository struct {
	snapshots map[string][]cart.Line
}

// NewInMemoryCartRepository creates an empty in-memory repository
func NewInMemoryCartRepository() *InMemoryCartRepository {
	return &InMemoryCartRepository{
		snapshots: make(map[string][]cart.Line),
	}
}

// Load returns the stored cart for the key, or an empty cart
func (r *InMemoryCartRepository) Load(_ context.Context, key string) (cart.Cart, error) {
	lines, ok := r.snapshots[key]
	if !ok {
		return cart.New(), nil
	}
	return cart.NewFromLines(lines), nil
}

// Save stores the cart lines for the key
func (r *InMemoryCartRepository) Save(_ context.Context, key string, c cart.Cart) error {
	r.snapshots[key] = c.Lines()
	return nil
}
