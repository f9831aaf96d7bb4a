package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/storefront/pkg/health"
	"github.com/utafrali/storefront/pkg/middleware"
)

// serviceName labels metrics and spans of the view API.
const serviceName = "storefront"

// RouterConfig carries the router's collaborators and tunables.
type RouterConfig struct {
	Catalog *CatalogHandler
	Detail  *DetailHandler
	Health  *health.Handler
	Logger  *slog.Logger

	CORS middleware.CORSConfig
	// WriteLimiter guards the POST routes. Nil disables rate limiting.
	WriteLimiter *middleware.RateLimiter
	// RequestTimeout bounds a whole request, including the catalog calls it fans out to.
	RequestTimeout time.Duration
	// CategoriesMaxAge is the Cache-Control max-age of the category list.
	CategoriesMaxAge time.Duration
	// PprofCIDRs enables /debug/pprof for these networks when non-empty.
	PprofCIDRs []string
}

// NewRouter creates a chi router with all storefront view routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(chimw.Compress(5))
	if cfg.RequestTimeout > 0 {
		r.Use(chimw.Timeout(cfg.RequestTimeout))
	}
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.PrometheusMetrics(serviceName))
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.UserIdentity())
	r.Use(middleware.RequestLogger(cfg.Logger))

	r.Get("/health/live", cfg.Health.LivenessHandler())
	r.Get("/health/ready", cfg.Health.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	if len(cfg.PprofCIDRs) > 0 {
		middleware.RegisterPprof(r, cfg.PprofCIDRs, cfg.Logger)
	}

	limitWrites := func(next http.Handler) http.Handler { return next }
	if cfg.WriteLimiter != nil {
		limitWrites = cfg.WriteLimiter.Middleware
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.With(middleware.CacheControl(cfg.CategoriesMaxAge)).
			Get("/categories", cfg.Catalog.ListCategories)

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", cfg.Catalog.ListProducts)
			r.With(limitWrites).Post("/", cfg.Catalog.CreateProduct)

			r.Get("/{id}", cfg.Detail.GetProduct)
			r.With(limitWrites).Post("/{id}/feedback", cfg.Detail.SubmitFeedback)
		})
	})

	return r
}
