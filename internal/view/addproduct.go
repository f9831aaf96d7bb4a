package view

import (
	"context"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/form"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// ProductCreator submits new products. service.CatalogService satisfies this.
type ProductCreator interface {
	CreateProduct(ctx context.Context, input domain.CreateProductInput) (*domain.Product, error)
}

// AddProductPage is the state of the add-product form.
type AddProductPage struct {
	creator ProductCreator

	Form       form.ProductForm  `json:"form"`
	Categories []domain.Category `json:"categories"`
	Alert      string            `json:"alert,omitempty"`
	RedirectTo string            `json:"redirect_to,omitempty"`
	Created    *domain.Product   `json:"created,omitempty"`
}

// NewAddProductPage creates an empty add-product page.
func NewAddProductPage(creator ProductCreator) *AddProductPage {
	return &AddProductPage{
		creator:    creator,
		Categories: domain.Categories(),
	}
}

// Submit validates the form and creates the product. On success RedirectTo
// points at the new product's page, or "/" when the API returned no id. On
// failure the form is kept and Alert holds the reason.
func (p *AddProductPage) Submit(ctx context.Context) error {
	p.Alert = ""
	p.RedirectTo = ""

	input, err := p.Form.Validate()
	if err != nil {
		p.Alert = apperrors.UserMessage(err)
		return err
	}

	product, err := p.creator.CreateProduct(ctx, input)
	if err != nil {
		p.Alert = apperrors.UserMessage(err)
		return err
	}

	p.Created = product
	if product.ID > 0 {
		p.RedirectTo = ProductPath(product.ID)
	} else {
		p.RedirectTo = "/"
	}
	return nil
}
