package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/vapeshop/storefront/internal/domain/shared"
	"github.com/vapeshop/storefront/internal/domain/shared/valueobject"
)

// Flavor represents a flavor variant (SKU option) of a product
// Each flavor carries its own stock status
type Flavor struct {
	ID      string
	Name    string
	InStock bool
}

// Product represents an immutable catalog entry with its flavor variants
type Product struct {
	ID            string
	Name          string
	Category      string
	BasePrice     decimal.Decimal
	OriginalPrice *decimal.Decimal // pre-discount price, nil when not discounted
	Image         string
	Description   string
	Rating        *float64 // 0-5, nil when unrated
	ReviewCount   *int
	IsPromo       bool
	Flavors       []Flavor
}

// NewProduct creates a validated product
func NewProduct(id, name, category string, basePrice decimal.Decimal, flavors []Flavor) (*Product, error) {
	if id == "" {
		return nil, shared.NewDomainError("INVALID_ID", "Product ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if basePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Base price cannot be negative")
	}
	if err := validateFlavors(flavors); err != nil {
		return nil, err
	}

	return &Product{
		ID:        id,
		Name:      name,
		Category:  category,
		BasePrice: basePrice,
		Flavors:   flavors,
	}, nil
}

// SetOriginalPrice records the pre-discount price for discount display
func (p *Product) SetOriginalPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Original price cannot be negative")
	}
	p.OriginalPrice = &price
	return nil
}

// SetRating records the product rating and review count
func (p *Product) SetRating(rating float64, reviewCount int) error {
	if rating < 0 || rating > 5 {
		return shared.NewDomainError("INVALID_RATING", "Rating must be between 0 and 5")
	}
	if reviewCount < 0 {
		return shared.NewDomainError("INVALID_REVIEW_COUNT", "Review count cannot be negative")
	}
	p.Rating = &rating
	p.ReviewCount = &reviewCount
	return nil
}

// FindFlavor returns the flavor with the given ID
func (p *Product) FindFlavor(flavorID string) (Flavor, bool) {
	for _, f := range p.Flavors {
		if f.ID == flavorID {
			return f, true
		}
	}
	return Flavor{}, false
}

// AvailableFlavors returns the flavors currently in stock
func (p *Product) AvailableFlavors() []Flavor {
	available := make([]Flavor, 0, len(p.Flavors))
	for _, f := range p.Flavors {
		if f.InStock {
			available = append(available, f)
		}
	}
	return available
}

// HasStock returns true if any flavor is in stock
func (p *Product) HasStock() bool {
	for _, f := range p.Flavors {
		if f.InStock {
			return true
		}
	}
	return false
}

// HasDiscount returns true if the product carries a pre-discount price
func (p *Product) HasDiscount() bool {
	return p.OriginalPrice != nil && p.OriginalPrice.IsPositive()
}

// DiscountPercent returns the rounded discount percentage against the
// original price, or 0 when the product is not discounted
func (p *Product) DiscountPercent() int {
	if !p.HasDiscount() {
		return 0
	}
	diff := p.OriginalPrice.Sub(p.BasePrice)
	percent := diff.Div(*p.OriginalPrice).Mul(decimal.NewFromInt(100))
	return int(percent.Round(0).IntPart())
}

// BasePriceMoney returns the base price as a Money value object
func (p *Product) BasePriceMoney() valueobject.Money {
	return valueobject.NewMoneyBRL(p.BasePrice)
}

func validateFlavors(flavors []Flavor) error {
	if len(flavors) == 0 {
		return shared.NewDomainError("INVALID_FLAVORS", "Product must have at least one flavor")
	}
	seen := make(map[string]struct{}, len(flavors))
	for _, f := range flavors {
		if f.ID == "" {
			return shared.NewDomainError("INVALID_FLAVORS", "Flavor ID cannot be empty")
		}
		if f.Name == "" {
			return shared.NewDomainError("INVALID_FLAVORS", "Flavor name cannot be empty")
		}
		if _, dup := seen[f.ID]; dup {
			return shared.NewDomainError("INVALID_FLAVORS", "Flavor IDs must be unique within a product")
		}
		seen[f.ID] = struct{}{}
	}
	return nil
}
