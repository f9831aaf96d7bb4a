package view

import (
	"context"
	"strconv"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// MsgUnknownCategory is shown when the filter is not one of the categories.
const MsgUnknownCategory = "Unknown category."

// ProductLister lists catalog products. service.CatalogService satisfies this.
type ProductLister interface {
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
}

// CatalogPage is the state of one catalog page visit: the current filter and
// the last list result. A page is created on entry and dropped on exit.
type CatalogPage struct {
	lister ProductLister
	err    error

	Category   domain.Category   `json:"category"`
	Categories []domain.Category `json:"categories"`
	State      State             `json:"state"`
	Products   []ProductCard     `json:"products"`
	CountLabel string            `json:"count_label"`
	Alert      string            `json:"alert,omitempty"`
}

// NewCatalogPage creates a page in the loading state with no filter.
func NewCatalogPage(lister ProductLister) *CatalogPage {
	return &CatalogPage{
		lister:     lister,
		Categories: domain.Categories(),
		State:      StateLoading,
		Products:   []ProductCard{},
	}
}

// SetCategory changes the filter and reloads. "" clears the filter. An
// unknown category is rejected and the page is left as it was.
func (p *CatalogPage) SetCategory(ctx context.Context, category string) error {
	if category != "" && !domain.IsValidCategory(category) {
		return apperrors.Validation(MsgUnknownCategory)
	}
	p.Category = domain.Category(category)
	return p.Load(ctx)
}

// Refresh re-runs the list with the current filter.
func (p *CatalogPage) Refresh(ctx context.Context) error {
	return p.Load(ctx)
}

// Load fetches the product list. A successful load with no match ends in
// StateEmpty, which is distinct from both loading and failure.
func (p *CatalogPage) Load(ctx context.Context) error {
	p.State = StateLoading
	p.Alert = ""
	p.err = nil

	products, err := p.lister.ListProducts(ctx, domain.ProductFilter{Category: p.Category})
	if err != nil {
		p.State = StateFailed
		p.Alert = apperrors.UserMessage(err)
		p.err = err
		p.Products = []ProductCard{}
		p.CountLabel = countLabel(0)
		return err
	}

	cards := make([]ProductCard, 0, len(products))
	for _, prod := range products {
		cards = append(cards, NewProductCard(prod))
	}
	p.Products = cards
	p.CountLabel = countLabel(len(cards))
	if len(cards) == 0 {
		p.State = StateEmpty
	} else {
		p.State = StateReady
	}
	return nil
}

// Err returns the error of the last failed load, or nil.
func (p *CatalogPage) Err() error {
	return p.err
}

func countLabel(n int) string {
	if n == 1 {
		return "1 product"
	}
	return strconv.Itoa(n) + " products"
}
