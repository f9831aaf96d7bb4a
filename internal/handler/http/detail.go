package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/storefront/internal/view"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/middleware"
)

// DetailHandler serves the product page and its review form.
type DetailHandler struct {
	loader    view.DetailLoader
	submitter view.FeedbackSubmitter
	logger    *slog.Logger
}

// NewDetailHandler creates a new product page HTTP handler.
func NewDetailHandler(loader view.DetailLoader, submitter view.FeedbackSubmitter, logger *slog.Logger) *DetailHandler {
	return &DetailHandler{
		loader:    loader,
		submitter: submitter,
		logger:    logger,
	}
}

// GetProduct handles GET /api/v1/catalog/{id}
func (h *DetailHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	page := view.NewDetailPage(h.loader, h.submitter, id)
	err := page.Load(r.Context())
	writePage(w, r, http.StatusOK, page, err, h.logger)
}

// SubmitFeedback handles POST /api/v1/catalog/{id}/feedback
//
// The body is the review form. A missing score keeps the form default and a
// missing user id falls back to the X-User-ID header. On success the response
// is the reloaded product page with the form reset.
func (h *DetailHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	page := view.NewDetailPage(h.loader, h.submitter, id)
	if err := httputil.DecodeJSON(r, &page.Form); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}
	if page.Form.UserID == "" {
		page.Form.UserID = middleware.UserIDFromContext(r.Context())
	}
	page.Form.SetContent(page.Form.Content)

	if err := page.Submit(r.Context()); err != nil {
		writePage(w, r, http.StatusOK, page, err, h.logger)
		return
	}
	writePage(w, r, http.StatusCreated, page, nil, h.logger)
}
