package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestRateLimiter(t *testing.T, rps float64, burst int) *RateLimiter {
	t.Helper()
	rl := NewRateLimiter(rps, burst, slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(rl.Close)
	return rl
}

func TestRateLimiter_RejectsOverBurst(t *testing.T) {
	rl := newTestRateLimiter(t, 0.001, 2)
	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	codes := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/1/feedback", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusCreated, http.StatusCreated, http.StatusTooManyRequests}, codes)
}

func TestRateLimiter_SeparateBucketsPerClient(t *testing.T) {
	rl := newTestRateLimiter(t, 0.001, 1)
	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	for _, addr := range []string{"10.0.0.1:1", "10.0.0.2:1"} {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, 2, rl.size())
}

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	rl := newTestRateLimiter(t, 1, 1)
	start := time.Now()
	rl.now = func() time.Time { return start }
	rl.limiterFor("10.0.0.1")
	rl.limiterFor("10.0.0.2")

	rl.now = func() time.Time { return start.Add(visitorTTL / 2) }
	rl.limiterFor("10.0.0.2")

	rl.now = func() time.Time { return start.Add(visitorTTL + time.Second) }
	rl.evictIdle()

	assert.Equal(t, 1, rl.size())
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name   string
		xff    string
		realIP string
		remote string
		want   string
	}{
		{"remote addr", "", "", "192.168.1.9:4000", "192.168.1.9"},
		{"forwarded chain", "203.0.113.5, 10.0.0.1", "", "10.0.0.1:80", "203.0.113.5"},
		{"forwarded garbage then ip", "unknown, 198.51.100.7", "", "10.0.0.1:80", "198.51.100.7"},
		{"real ip", "", "198.51.100.8", "10.0.0.1:80", "198.51.100.8"},
		{"remote without port", "", "", "192.168.1.10", "192.168.1.10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}
			assert.Equal(t, tt.want, clientIP(req))
		})
	}
}
