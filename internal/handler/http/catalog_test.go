package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/form"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

func TestListCategories(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(http.MethodGet, "/api/v1/categories", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Cache-Control"), "public")
	var resp struct {
		Data []string `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, []string{"Électronique", "Vêtements", "Alimentation", "Maison", "Sport", "Jouets"}, resp.Data)
}

func TestListProducts_WithCategory(t *testing.T) {
	env := newTestEnv(t, nil)
	env.products.On("ListProducts", mock.Anything, domain.ProductFilter{Category: domain.CategoryToys}).
		Return([]domain.Product{{ID: 3, Name: "Kite", Category: domain.CategoryToys, Price: decimal.NewFromInt(12)}}, nil)

	rec := env.do(http.MethodGet, "/api/v1/catalog?category=Jouets", "")

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.Nil(t, resp.Error)
	assert.Equal(t, "ready", resp.Data["state"])
	assert.Equal(t, "1 product", resp.Data["count_label"])
	assert.Equal(t, "Jouets", resp.Data["category"])
	env.products.AssertExpectations(t)
}

func TestListProducts_AccentedCategory(t *testing.T) {
	env := newTestEnv(t, nil)
	env.products.On("ListProducts", mock.Anything, domain.ProductFilter{Category: domain.CategoryElectronics}).
		Return([]domain.Product{}, nil)

	rec := env.do(http.MethodGet, "/api/v1/catalog?category=%C3%89lectronique", "")

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.Equal(t, "Électronique", resp.Data["category"])
	env.products.AssertExpectations(t)
}

func TestListProducts_Empty(t *testing.T) {
	env := newTestEnv(t, nil)
	env.products.On("ListProducts", mock.Anything, domain.ProductFilter{}).Return([]domain.Product{}, nil)

	rec := env.do(http.MethodGet, "/api/v1/catalog", "")

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.Equal(t, "empty", resp.Data["state"])
	assert.Equal(t, "0 products", resp.Data["count_label"])
}

func TestListProducts_UnknownCategory(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(http.MethodGet, "/api/v1/catalog?category=Garden", "")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	env.products.AssertNotCalled(t, "ListProducts", mock.Anything, mock.Anything)
}

func TestListProducts_UpstreamFailure(t *testing.T) {
	env := newTestEnv(t, nil)
	env.products.On("ListProducts", mock.Anything, domain.ProductFilter{}).
		Return(nil, apperrors.HTTP(http.StatusInternalServerError, "failed to load products"))

	rec := env.do(http.MethodGet, "/api/v1/catalog", "")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.Equal(t, "failed", resp.Data["state"])
	assert.Equal(t, "failed to load products", resp.Data["alert"])
	require.NotNil(t, resp.Error)
	assert.Equal(t, "HTTP_ERROR", resp.Error.Code)
}

func TestListProducts_NetworkFailure(t *testing.T) {
	env := newTestEnv(t, nil)
	env.products.On("ListProducts", mock.Anything, domain.ProductFilter{}).
		Return(nil, apperrors.Network("failed to load products", errors.New("connection refused")))

	rec := env.do(http.MethodGet, "/api/v1/catalog", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "NETWORK_ERROR", decodeEnvelope(t, rec).Error.Code)
}

func TestCreateProduct_Success(t *testing.T) {
	env := newTestEnv(t, nil)
	env.products.On("CreateProduct", mock.Anything, mock.MatchedBy(func(in domain.CreateProductInput) bool {
		return in.Name == "Desk Lamp" &&
			in.Category == domain.CategoryHome &&
			in.Price.Equal(decimal.RequireFromString("24.50")) &&
			in.Stock == 4
	})).Return(&domain.Product{ID: 9, Name: "Desk Lamp", Category: domain.CategoryHome}, nil)

	rec := env.do(http.MethodPost, "/api/v1/catalog",
		`{"name":"Desk Lamp","category":"Maison","price":"24.50","stock":"4"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/products/9", rec.Header().Get("Location"))
	resp := decodeEnvelope(t, rec)
	assert.Equal(t, "/products/9", resp.Data["redirect_to"])
	env.products.AssertExpectations(t)
}

func TestCreateProduct_LeavesSuccessLogToService(t *testing.T) {
	var buf bytes.Buffer
	store := new(mockProductStore)
	store.On("CreateProduct", mock.Anything, mock.Anything).
		Return(&domain.Product{ID: 9, Name: "Desk Lamp", Category: domain.CategoryHome}, nil)
	h := NewCatalogHandler(store, slog.New(slog.NewJSONHandler(&buf, nil)))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog",
		strings.NewReader(`{"name":"Desk Lamp","category":"Maison","price":"24.50"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.CreateProduct(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, buf.String(), "product created")
}

func TestCreateProduct_FormRejected(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(http.MethodPost, "/api/v1/catalog", `{"name":"Desk Lamp","category":"Maison","price":"0"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.Equal(t, form.MsgPricePositive, resp.Data["alert"])
	fields := resp.Data["form"].(map[string]any)
	assert.Equal(t, "Desk Lamp", fields["name"], "form is kept for correction")
	env.products.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
}

func TestCreateProduct_RejectedByCatalog(t *testing.T) {
	env := newTestEnv(t, nil)
	env.products.On("CreateProduct", mock.Anything, mock.Anything).
		Return(nil, apperrors.Rejected(http.StatusBadRequest, "name already taken"))

	rec := env.do(http.MethodPost, "/api/v1/catalog", `{"name":"Desk Lamp","category":"Maison","price":"5"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "name already taken", decodeEnvelope(t, rec).Data["alert"])
}

func TestCreateProduct_MalformedBody(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(http.MethodPost, "/api/v1/catalog", `{"name":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_INPUT", decodeEnvelope(t, rec).Error.Code)
}

func TestCreateProduct_WrongContentType(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(http.MethodPost, "/api/v1/catalog", `name=Lamp`, "Content-Type", "application/x-www-form-urlencoded")

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}
