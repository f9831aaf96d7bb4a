package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/pkg/health"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/middleware"
)

type mockProductStore struct {
	mock.Mock
}

func (m *mockProductStore) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockProductStore) CreateProduct(ctx context.Context, input domain.CreateProductInput) (*domain.Product, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

type mockDetailLoader struct {
	mock.Mock
}

func (m *mockDetailLoader) LoadDetail(ctx context.Context, productID int64) (*domain.ProductDetail, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductDetail), args.Error(1)
}

type mockSubmitter struct {
	mock.Mock
}

func (m *mockSubmitter) Submit(ctx context.Context, input domain.SubmitFeedbackInput) (*domain.FeedbackSubmission, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeedbackSubmission), args.Error(1)
}

// testEnv is a router wired to mocks.
type testEnv struct {
	products  *mockProductStore
	loader    *mockDetailLoader
	submitter *mockSubmitter
	router    http.Handler
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEnv(t *testing.T, limiter *middleware.RateLimiter) *testEnv {
	t.Helper()
	logger := testLogger()
	env := &testEnv{
		products:  new(mockProductStore),
		loader:    new(mockDetailLoader),
		submitter: new(mockSubmitter),
	}
	env.router = NewRouter(RouterConfig{
		Catalog:      NewCatalogHandler(env.products, logger),
		Detail:       NewDetailHandler(env.loader, env.submitter, logger),
		Health:       health.NewHandler(),
		Logger:       logger,
		CORS:         middleware.DefaultCORSConfig(),
		WriteLimiter: limiter,
	})
	return env
}

func (e *testEnv) do(method, target, body string, headers ...string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// envelope mirrors httputil.Response with the page left as a generic map.
type envelope struct {
	Data  map[string]any          `json:"data"`
	Error *httputil.ErrorResponse `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

func ptr[T any](v T) *T { return &v }
