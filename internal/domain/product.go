package domain

import (
	"github.com/shopspring/decimal"
)

// Product is a catalog entry as served by the catalog API. The client never
// mutates it.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Category    Category        `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
	// Stock is nil when unknown, which is different from zero.
	Stock *int `json:"stock,omitempty"`
	// AverageRating is nil until the product has at least one rating. It is
	// kept unrounded; rounding happens only when rendering.
	AverageRating *float64 `json:"average_rating,omitempty"`
}

// HasRating reports whether the product has an average rating.
func (p *Product) HasRating() bool {
	return p.AverageRating != nil
}

// InStock reports whether stock is known and positive.
func (p *Product) InStock() bool {
	return p.Stock != nil && *p.Stock > 0
}

// ProductFilter narrows a product listing. An empty Category means no filter.
type ProductFilter struct {
	Category Category
}

// CreateProductInput is a product creation request that already passed the
// form rules: trimmed name, known category, positive price, stock >= 0.
type CreateProductInput struct {
	Name        string          `json:"name" validate:"required"`
	Category    Category        `json:"category" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Stock       int             `json:"stock" validate:"gte=0"`
}
