package storefront

import (
	"github.com/google/uuid"

	"github.com/vapeshop/storefront/internal/domain/catalog"
)

// FlavorResponse represents a flavor variant of a product
type FlavorResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	InStock bool   `json:"in_stock"`
}

// ProductResponse represents a catalog product
type ProductResponse struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Category        string           `json:"category"`
	BasePrice       string           `json:"base_price"`
	OriginalPrice   *string          `json:"original_price,omitempty"`
	DiscountPercent int              `json:"discount_percent,omitempty"`
	Image           string           `json:"image,omitempty"`
	Description     string           `json:"description,omitempty"`
	Rating          *float64         `json:"rating,omitempty"`
	ReviewCount     *int             `json:"review_count,omitempty"`
	IsPromo         bool             `json:"is_promo"`
	InStock         bool             `json:"in_stock"`
	Flavors         []FlavorResponse `json:"flavors"`
}

// CategoryResponse represents a filterable category with its product count
type CategoryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CartLineResponse represents a cart line with resolved product details
type CartLineResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	FlavorID    string `json:"flavor_id"`
	FlavorName  string `json:"flavor_name"`
	UnitPrice   string `json:"unit_price"`
	Quantity    int    `json:"quantity"`
	LineTotal   string `json:"line_total"`
	Image       string `json:"image,omitempty"`
}

// CartSummaryResponse represents the full cart state for rendering
type CartSummaryResponse struct {
	Lines               []CartLineResponse `json:"lines"`
	ItemCount           int                `json:"item_count"`
	Subtotal            string             `json:"subtotal"`
	Currency            string             `json:"currency"`
	MinimumOrder        string             `json:"minimum_order"`
	CheckoutEligible    bool               `json:"checkout_eligible"`
	RemainingForMinimum string             `json:"remaining_for_minimum"`
}

// OrderResponse is the terminal checkout notification
type OrderResponse struct {
	Reference uuid.UUID           `json:"reference"`
	Summary   CartSummaryResponse `json:"summary"`
}

// ToProductResponse maps a catalog product to its response form
func ToProductResponse(p *catalog.Product) ProductResponse {
	flavors := make([]FlavorResponse, len(p.Flavors))
	for i, f := range p.Flavors {
		flavors[i] = FlavorResponse{ID: f.ID, Name: f.Name, InStock: f.InStock}
	}

	resp := ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Category:        p.Category,
		BasePrice:       p.BasePrice.StringFixed(2),
		DiscountPercent: p.DiscountPercent(),
		Image:           p.Image,
		Description:     p.Description,
		Rating:          p.Rating,
		ReviewCount:     p.ReviewCount,
		IsPromo:         p.IsPromo,
		InStock:         p.HasStock(),
		Flavors:         flavors,
	}
	if p.OriginalPrice != nil {
		original := p.OriginalPrice.StringFixed(2)
		resp.OriginalPrice = &original
	}
	return resp
}

// ToProductResponses maps a product list, preserving order
func ToProductResponses(products []*catalog.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = ToProductResponse(p)
	}
	return out
}

// ToCategoryResponses maps the catalog categories
func ToCategoryResponses(categories []catalog.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		out[i] = CategoryResponse{ID: c.ID, Name: c.Name, Count: c.Count}
	}
	return out
}
