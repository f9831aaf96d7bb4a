package form

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// Product form messages, in the order the rules are checked.
const (
	MsgProductRequired  = "Name, category and price are required."
	MsgPricePositive    = "Price must be greater than 0."
	MsgCategoryUnknown  = "Category must be one of the listed categories."
	MsgStockNonNegative = "Stock must be a whole number of at least 0."
)

// ProductForm holds the raw add-product form fields as typed by the user.
type ProductForm struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Price       string `json:"price"`
	Description string `json:"description"`
	Stock       string `json:"stock"`
}

// Validate checks the form and builds the creation payload. It stops at the
// first violated rule and returns a validation error carrying a single
// user-facing message. It never touches the network.
func (f ProductForm) Validate() (domain.CreateProductInput, error) {
	name := strings.TrimSpace(f.Name)
	category := strings.TrimSpace(f.Category)
	rawPrice := strings.TrimSpace(f.Price)

	if name == "" || category == "" || rawPrice == "" {
		return domain.CreateProductInput{}, apperrors.Validation(MsgProductRequired)
	}

	price, err := decimal.NewFromString(rawPrice)
	if err != nil || !price.IsPositive() {
		return domain.CreateProductInput{}, apperrors.Validation(MsgPricePositive)
	}

	if !domain.IsValidCategory(category) {
		return domain.CreateProductInput{}, apperrors.Validation(MsgCategoryUnknown)
	}

	stock := 0
	if raw := strings.TrimSpace(f.Stock); raw != "" {
		stock, err = strconv.Atoi(raw)
		if err != nil || stock < 0 {
			return domain.CreateProductInput{}, apperrors.Validation(MsgStockNonNegative)
		}
	}

	return domain.CreateProductInput{
		Name:        name,
		Category:    domain.Category(category),
		Price:       price,
		Description: strings.TrimSpace(f.Description),
		Stock:       stock,
	}, nil
}
