package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
)

type contextKeyType string

const userIDKey contextKeyType = "user_id"

// UserIDHeader identifies the shopper on requests from the storefront
// frontend. There is no authentication: the id is taken as-is.
const UserIDHeader = "X-User-ID"

// UserIdentity stores a numeric X-User-ID header value in the request context.
// Non-numeric values are ignored.
func UserIdentity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get(UserIDHeader))
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
				r = r.WithContext(context.WithValue(r.Context(), userIDKey, raw))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserIDFromContext extracts the user ID from the request context.
func UserIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey).(string); ok {
		return id
	}
	return ""
}
