package cart

import (
	"github.com/vapeshop/storefront/internal/domain/catalog"
	"github.com/vapeshop/storefront/internal/domain/shared/valueobject"
)

// ProductResolver resolves product identifiers against the live catalog
// *catalog.Store satisfies it
type ProductResolver interface {
	FindProduct(id string) (*catalog.Product, bool)
}

// Totals are the derived cart aggregates
// The subtotal always reads live catalog prices; no price snapshot is kept,
// so catalog price changes propagate to unpurchased lines immediately.
type Totals struct {
	ItemCount int
	Subtotal  valueobject.Money
	// Orphaned lists lines whose product or flavor no longer resolves
	// against the catalog. They contribute zero to the subtotal and the
	// caller is expected to prune them.
	Orphaned []Key
}

// Totals computes item count and subtotal against the given catalog
func (c Cart) Totals(resolver ProductResolver) Totals {
	t := Totals{Subtotal: valueobject.ZeroBRL()}
	for _, l := range c.lines {
		t.ItemCount += l.Quantity
		p, ok := resolver.FindProduct(l.ProductID)
		if !ok {
			t.Orphaned = append(t.Orphaned, l.Key())
			continue
		}
		if _, ok := p.FindFlavor(l.FlavorID); !ok {
			t.Orphaned = append(t.Orphaned, l.Key())
			continue
		}
		t.Subtotal = t.Subtotal.MustAdd(p.BasePriceMoney().MultiplyByInt(int64(l.Quantity)))
	}
	return t
}

// CheckoutEligible reports whether the subtotal meets the minimum order
func (c Cart) CheckoutEligible(resolver ProductResolver, minimumOrder valueobject.Money) bool {
	eligible, err := c.Totals(resolver).Subtotal.GreaterThanOrEqual(minimumOrder)
	if err != nil {
		return false
	}
	return eligible
}

// RemainingForMinimum returns how much is still missing to reach the
// minimum order, never below zero
func (c Cart) RemainingForMinimum(resolver ProductResolver, minimumOrder valueobject.Money) valueobject.Money {
	remaining := minimumOrder.MustSubtract(c.Totals(resolver).Subtotal)
	if remaining.IsNegative() {
		return valueobject.Zero(minimumOrder.Currency())
	}
	return remaining
}
