package http

import (
	"log/slog"
	"net/http"

	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/logger"
)

// writePage renders a page view. When err is set the page still goes out as
// data, so the client can show the page's own alert, and the error envelope
// carries the machine-readable code.
func writePage(w http.ResponseWriter, r *http.Request, status int, page any, err error, fallback *slog.Logger) {
	if err == nil {
		httputil.WriteJSON(w, status, httputil.Response{Data: page})
		return
	}

	status = apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		l := logger.FromContext(r.Context())
		if l == slog.Default() {
			l = fallback
		}
		l.ErrorContext(r.Context(), "page request failed",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
	}
	httputil.WriteJSON(w, status, httputil.Response{
		Data: page,
		Error: &httputil.ErrorResponse{
			Code:      apperrors.Code(err),
			Message:   apperrors.UserMessage(err),
			RequestID: logger.CorrelationIDFromContext(r.Context()),
		},
	})
}
