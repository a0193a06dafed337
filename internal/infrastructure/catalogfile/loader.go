package catalogfile

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/vapeshop/storefront/internal/domain/catalog"
)

// fileFlavor is the on-disk form of a flavor variant
type fileFlavor struct {
	ID      string `json:"id" validate:"required"`
	Name    string `json:"name" validate:"required"`
	InStock bool   `json:"in_stock"`
}

// fileProduct is the on-disk form of a catalog product
// Prices are decimal strings so values like "25.90" survive exactly
type fileProduct struct {
	ID            string       `json:"id" validate:"required"`
	Name          string       `json:"name" validate:"required"`
	Category      string       `json:"category" validate:"required"`
	BasePrice     string       `json:"base_price" validate:"required"`
	OriginalPrice string       `json:"original_price,omitempty"`
	Image         string       `json:"image,omitempty"`
	Description   string       `json:"description,omitempty"`
	Rating        *float64     `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	ReviewCount   *int         `json:"review_count,omitempty" validate:"omitempty,gte=0"`
	IsPromo       bool         `json:"is_promo"`
	Flavors       []fileFlavor `json:"flavors" validate:"required,min=1,dive"`
}

// fileCategory is the on-disk form of a filterable category
type fileCategory struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
}

// fileCatalog is the root of the catalog file
type fileCatalog struct {
	Products   []fileProduct  `json:"products" validate:"required,min=1,dive"`
	Categories []fileCategory `json:"categories" validate:"dive"`
}

// Load reads, validates and converts the catalog JSON file into an
// immutable catalog store. Any decode or validation failure is returned;
// the catalog is startup data and must be correct.
func Load(path string) (*catalog.Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	var file fileCatalog
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to decode catalog file %s: %w", path, err)
	}

	if err := validator.New().Struct(&file); err != nil {
		return nil, fmt.Errorf("catalog file %s is invalid: %w", path, err)
	}

	products := make([]*catalog.Product, 0, len(file.Products))
	for _, fp := range file.Products {
		product, err := toProduct(fp)
		if err != nil {
			return nil, fmt.Errorf("catalog product %s: %w", fp.ID, err)
		}
		products = append(products, product)
	}

	categories := make([]catalog.Category, 0, len(file.Categories))
	for _, fc := range file.Categories {
		categories = append(categories, catalog.Category{ID: fc.ID, Name: fc.Name})
	}

	return catalog.NewStore(products, categories)
}

// toProduct converts a file product into a validated domain product
func toProduct(fp fileProduct) (*catalog.Product, error) {
	basePrice, err := decimal.NewFromString(fp.BasePrice)
	if err != nil {
		return nil, fmt.Errorf("invalid base_price %q: %w", fp.BasePrice, err)
	}

	flavors := make([]catalog.Flavor, len(fp.Flavors))
	for i, ff := range fp.Flavors {
		flavors[i] = catalog.Flavor{ID: ff.ID, Name: ff.Name, InStock: ff.InStock}
	}

	product, err := catalog.NewProduct(fp.ID, fp.Name, fp.Category, basePrice, flavors)
	if err != nil {
		return nil, err
	}

	product.Image = fp.Image
	product.Description = fp.Description
	product.IsPromo = fp.IsPromo

	if fp.OriginalPrice != "" {
		original, err := decimal.NewFromString(fp.OriginalPrice)
		if err != nil {
			return nil, fmt.Errorf("invalid original_price %q: %w", fp.OriginalPrice, err)
		}
		if err := product.SetOriginalPrice(original); err != nil {
			return nil, err
		}
	}

	if fp.Rating != nil {
		reviewCount := 0
		if fp.ReviewCount != nil {
			reviewCount = *fp.ReviewCount
		}
		if err := product.SetRating(*fp.Rating, reviewCount); err != nil {
			return nil, err
		}
	}

	return product, nil
}
