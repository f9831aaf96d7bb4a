package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/transport"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/validator"
)

// Default failure messages, used when the catalog API gives no reason.
const (
	MsgLoadProductsFailed  = "failed to load products"
	MsgProductNotFound     = "product not found"
	MsgCreateProductFailed = "failed to create product"
	MsgLoadReviewsFailed   = "failed to load reviews"
	MsgAddReviewFailed     = "failed to add review"
	MsgAddRatingFailed     = "failed to add rating"
)

// Transport is the catalog API client the services call through.
type Transport interface {
	Do(ctx context.Context, r transport.Request) (json.RawMessage, error)
}

// CatalogService implements the product queries and product creation.
type CatalogService struct {
	client Transport
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(client Transport, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		client: client,
		logger: logger,
	}
}

// ListProducts returns the products in server order. The category parameter
// is only sent when the filter has one; filtering happens server-side.
func (s *CatalogService) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	var query url.Values
	if filter.Category != "" {
		query = url.Values{"category": {string(filter.Category)}}
	}

	raw, err := s.client.Do(ctx, transport.Request{
		Operation:      "list_products",
		Method:         http.MethodGet,
		Path:           "/products",
		Query:          query,
		FailureMessage: MsgLoadProductsFailed,
	})
	if err != nil {
		return nil, err
	}

	products, err := transport.Unwrap[[]domain.Product](raw, "products")
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("list products: %w", err))
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

// GetProduct fetches one product. A missing product yields a NOT_FOUND error.
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	if id <= 0 {
		return nil, apperrors.Validation("product id must be a positive number")
	}

	raw, err := s.client.Do(ctx, transport.Request{
		Operation:      "get_product",
		Method:         http.MethodGet,
		Path:           "/products/" + strconv.FormatInt(id, 10),
		FailureMessage: MsgProductNotFound,
	})
	if err != nil {
		return nil, err
	}

	product, err := transport.Unwrap[domain.Product](raw, "product")
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("get product %d: %w", id, err))
	}
	return &product, nil
}

// createProductRequest is the wire form of POST /products. The price goes
// out as a JSON number.
type createProductRequest struct {
	Name        string      `json:"name"`
	Category    string      `json:"category"`
	Price       json.Number `json:"price"`
	Description string      `json:"description"`
	Stock       int         `json:"stock"`
}

// CreateProduct submits a new product. The returned product has ID 0 when the
// catalog API did not echo one back.
func (s *CatalogService) CreateProduct(ctx context.Context, input domain.CreateProductInput) (*domain.Product, error) {
	if err := validator.Validate(input); err != nil {
		return nil, validationError(err)
	}
	if !input.Price.IsPositive() {
		return nil, apperrors.Validation("price must be greater than 0")
	}
	if !domain.IsValidCategory(string(input.Category)) {
		return nil, apperrors.Validation("category is not a known category")
	}

	raw, err := s.client.Do(ctx, transport.Request{
		Operation: "create_product",
		Method:    http.MethodPost,
		Path:      "/products",
		Body: createProductRequest{
			Name:        input.Name,
			Category:    string(input.Category),
			Price:       json.Number(input.Price.String()),
			Description: input.Description,
			Stock:       input.Stock,
		},
		FailureMessage: MsgCreateProductFailed,
	})
	if err != nil {
		return nil, err
	}

	product, err := transport.Unwrap[domain.Product](raw, "product")
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("create product: %w", err))
	}

	s.logger.InfoContext(ctx, "product created",
		slog.Int64("product_id", product.ID),
		slog.String("category", string(input.Category)),
	)

	return &product, nil
}

// validationError turns a struct validation failure into a local VALIDATION_ERROR.
func validationError(err error) error {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		return apperrors.Validation(valErr.First())
	}
	return apperrors.Validation(err.Error())
}
