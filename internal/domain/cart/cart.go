package cart

import (
	"github.com/vapeshop/storefront/internal/domain/catalog"
	"github.com/vapeshop/storefront/internal/domain/shared"
)

// Key identifies a cart line by its (product, flavor) pair
type Key struct {
	ProductID string `json:"product_id"`
	FlavorID  string `json:"flavor_id"`
}

// Line is one (product, flavor, quantity) entry in the cart
// A line with quantity 0 must not exist; it is removed instead
type Line struct {
	ProductID string `json:"product_id"`
	FlavorID  string `json:"flavor_id"`
	Quantity  int    `json:"quantity"`
}

// Key returns the line's identity key
func (l Line) Key() Key {
	return Key{ProductID: l.ProductID, FlavorID: l.FlavorID}
}

// Cart is an ordered collection of lines with at most one line per
// (product, flavor) pair. Cart is a value: every transition returns a new
// Cart and never mutates the receiver.
type Cart struct {
	lines []Line
}

// New returns an empty cart
func New() Cart {
	return Cart{}
}

// NewFromLines rebuilds a cart from persisted lines
// Non-positive quantities and duplicate keys are dropped so a corrupted
// snapshot can never violate the cart invariants
func NewFromLines(lines []Line) Cart {
	c := Cart{lines: make([]Line, 0, len(lines))}
	seen := make(map[Key]struct{}, len(lines))
	for _, l := range lines {
		if l.Quantity <= 0 || l.ProductID == "" || l.FlavorID == "" {
			continue
		}
		if _, dup := seen[l.Key()]; dup {
			continue
		}
		seen[l.Key()] = struct{}{}
		c.lines = append(c.lines, l)
	}
	return c
}

// Lines returns the cart lines in insertion order
func (c Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of lines
func (c Cart) Len() int {
	return len(c.lines)
}

// IsEmpty reports whether the cart has no lines
func (c Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Find returns the line for the given pair
func (c Cart) Find(productID, flavorID string) (Line, bool) {
	for _, l := range c.lines {
		if l.ProductID == productID && l.FlavorID == flavorID {
			return l, true
		}
	}
	return Line{}, false
}

// AddOrUpdate sets the quantity for the (product, flavor) pair
// Quantity 0 removes any existing line. An existing line has its quantity
// replaced, not incremented; a new line is appended at the end. The flavor
// must belong to the product and the quantity must be non-negative;
// violations reject the operation without touching cart state.
func (c Cart) AddOrUpdate(product *catalog.Product, flavor catalog.Flavor, quantity int) (Cart, error) {
	if quantity < 0 {
		return c, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	if _, ok := product.FindFlavor(flavor.ID); !ok {
		return c, shared.ErrFlavorMismatch
	}

	if quantity == 0 {
		return c.Remove(product.ID, flavor.ID), nil
	}

	next := Cart{lines: make([]Line, len(c.lines))}
	copy(next.lines, c.lines)

	for i, l := range next.lines {
		if l.ProductID == product.ID && l.FlavorID == flavor.ID {
			next.lines[i].Quantity = quantity
			return next, nil
		}
	}

	next.lines = append(next.lines, Line{
		ProductID: product.ID,
		FlavorID:  flavor.ID,
		Quantity:  quantity,
	})
	return next, nil
}

// UpdateQuantity sets the quantity of an existing line
// Quantity 0 removes the line. Unlike AddOrUpdate, a missing pair is a
// no-op: the call never creates a line.
func (c Cart) UpdateQuantity(productID, flavorID string, quantity int) (Cart, error) {
	if quantity < 0 {
		return c, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	if _, ok := c.Find(productID, flavorID); !ok {
		return c, nil
	}
	if quantity == 0 {
		return c.Remove(productID, flavorID), nil
	}

	next := Cart{lines: make([]Line, len(c.lines))}
	copy(next.lines, c.lines)
	for i, l := range next.lines {
		if l.ProductID == productID && l.FlavorID == flavorID {
			next.lines[i].Quantity = quantity
			break
		}
	}
	return next, nil
}

// Remove deletes the line for the given pair, preserving the relative
// order of the remaining lines. Removing a missing line is a no-op.
func (c Cart) Remove(productID, flavorID string) Cart {
	next := Cart{lines: make([]Line, 0, len(c.lines))}
	for _, l := range c.lines {
		if l.ProductID == productID && l.FlavorID == flavorID {
			continue
		}
		next.lines = append(next.lines, l)
	}
	return next
}

// Clear returns an empty cart
func (c Cart) Clear() Cart {
	return New()
}
