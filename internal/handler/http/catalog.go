package http

import (
	"log/slog"
	"net/http"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/view"
	"github.com/utafrali/storefront/pkg/httputil"
)

// ProductStore is what the catalog pages need from the catalog service.
type ProductStore interface {
	view.ProductLister
	view.ProductCreator
}

// CatalogHandler serves the catalog list and the add-product form.
type CatalogHandler struct {
	products ProductStore
	logger   *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(products ProductStore, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		products: products,
		logger:   logger,
	}
}

// ListCategories handles GET /api/v1/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: domain.Categories()})
}

// ListProducts handles GET /api/v1/catalog?category=
//
// An unknown category is rejected with 422 before any catalog call. A failed
// load still renders the page in its failed state alongside the error.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page := view.NewCatalogPage(h.products)

	err := page.SetCategory(r.Context(), r.URL.Query().Get("category"))
	if err != nil && page.State == view.StateLoading {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	writePage(w, r, http.StatusOK, page, err, h.logger)
}

// CreateProduct handles POST /api/v1/catalog
//
// The body is the add-product form as typed by the user. On success the
// response is 201 with a Location header pointing at the new product page.
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	page := view.NewAddProductPage(h.products)
	if err := httputil.DecodeJSON(r, &page.Form); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if err := page.Submit(r.Context()); err != nil {
		writePage(w, r, http.StatusOK, page, err, h.logger)
		return
	}

	w.Header().Set("Location", page.RedirectTo)
	writePage(w, r, http.StatusCreated, page, nil, h.logger)
}
