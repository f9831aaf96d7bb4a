package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func corsServe(cfg CORSConfig, method, origin string, preflight bool) (*httptest.ResponseRecorder, bool) {
	reached := false
	h := CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(method, "/api/v1/catalog", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	if preflight {
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec, reached
}

func TestCORS_Wildcard(t *testing.T) {
	rec, reached := corsServe(DefaultCORSConfig(), http.MethodGet, "https://shop.example", false)

	assert.True(t, reached)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, CorrelationIDHeader, rec.Header().Get("Access-Control-Expose-Headers"))
	assert.Empty(t, rec.Header().Get("Vary"))
}

func TestCORS_NoOriginHeader(t *testing.T) {
	rec, reached := corsServe(DefaultCORSConfig(), http.MethodGet, "", false)

	assert.True(t, reached)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Preflight(t *testing.T) {
	rec, reached := corsServe(DefaultCORSConfig(), http.MethodOptions, "https://shop.example", true)

	assert.False(t, reached)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "GET, POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Accept, Content-Type, X-Correlation-ID, X-User-ID", rec.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "3600", rec.Header().Get("Access-Control-Max-Age"))
}

func TestCORS_PlainOptionsIsNotPreflight(t *testing.T) {
	_, reached := corsServe(DefaultCORSConfig(), http.MethodOptions, "https://shop.example", false)

	assert.True(t, reached)
}

func TestCORS_ExplicitOrigins(t *testing.T) {
	cfg := CORSConfig{
		AllowedOrigins:   []string{"https://shop.example", "https://admin.shop.example"},
		AllowCredentials: true,
		MaxAge:           10 * time.Minute,
	}

	tests := []struct {
		name       string
		origin     string
		wantOrigin string
		wantCreds  string
	}{
		{"listed", "https://shop.example", "https://shop.example", "true"},
		{"second listed", "https://admin.shop.example", "https://admin.shop.example", "true"},
		{"unlisted", "https://evil.example", "", ""},
		{"prefix is not a match", "https://shop.example.evil", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, reached := corsServe(cfg, http.MethodGet, tt.origin, false)

			assert.True(t, reached)
			assert.Equal(t, tt.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.wantCreds, rec.Header().Get("Access-Control-Allow-Credentials"))
			assert.Equal(t, "Origin", rec.Header().Get("Vary"))
		})
	}
}

func TestCORS_PreflightFromUnlistedOrigin(t *testing.T) {
	cfg := CORSConfig{AllowedOrigins: []string{"https://shop.example"}}

	rec, reached := corsServe(cfg, http.MethodOptions, "https://evil.example", true)

	assert.False(t, reached)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_WildcardNeverAllowsCredentials(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowCredentials = true

	rec, _ := corsServe(cfg, http.MethodGet, "https://shop.example", false)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_CustomMaxAge(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.MaxAge = 90 * time.Second

	rec, _ := corsServe(cfg, http.MethodOptions, "https://shop.example", true)

	assert.Equal(t, "90", rec.Header().Get("Access-Control-Max-Age"))
}
