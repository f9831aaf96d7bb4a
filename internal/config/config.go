package config

import (
	"fmt"
	"net/url"
	"time"

	pkgconfig "github.com/utafrali/storefront/pkg/config"
)

// Config holds all configuration for the storefront.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"json"`

	// HTTP server
	HTTPPort              int `env:"STOREFRONT_HTTP_PORT" envDefault:"8080"`
	RequestTimeoutSeconds int `env:"STOREFRONT_REQUEST_TIMEOUT_SECONDS" envDefault:"30"`

	// Catalog API
	CatalogAPIURL         string `env:"CATALOG_API_URL" envDefault:"http://localhost:5000/api"`
	CatalogTimeoutSeconds int    `env:"CATALOG_TIMEOUT_SECONDS" envDefault:"10"`
	CatalogMaxRetries     int    `env:"CATALOG_MAX_RETRIES" envDefault:"2"`
	CatalogRetryWaitMinMs int    `env:"CATALOG_RETRY_WAIT_MIN_MS" envDefault:"200"`
	CatalogRetryWaitMaxMs int    `env:"CATALOG_RETRY_WAIT_MAX_MS" envDefault:"2000"`
	CatalogMaxConns       int    `env:"CATALOG_MAX_CONNS_PER_HOST" envDefault:"50"`

	// Circuit breaker settings for catalog API calls
	CBMaxRequests  uint32  `env:"CB_MAX_REQUESTS" envDefault:"1"`
	CBInterval     int     `env:"CB_INTERVAL_SECONDS" envDefault:"60"`
	CBTimeout      int     `env:"CB_TIMEOUT_SECONDS" envDefault:"30"`
	CBFailureRatio float64 `env:"CB_FAILURE_RATIO" envDefault:"0.5"`
	CBMinRequests  uint32  `env:"CB_MIN_REQUESTS" envDefault:"5"`

	// Product page load budget (product + reviews fetched together).
	DetailTimeoutSeconds int `env:"DETAIL_TIMEOUT_SECONDS" envDefault:"10"`

	// Feedback events
	FeedbackEventsEnabled bool     `env:"FEEDBACK_EVENTS_ENABLED" envDefault:"false"`
	KafkaBrokers          []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Write route rate limiting, per client IP
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"5"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"10"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// Cache-Control max-age of the category list
	CategoriesMaxAgeSeconds int `env:"CATEGORIES_MAX_AGE_SECONDS" envDefault:"300"`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`

	// Pprof debug endpoints (IP allowlist in CIDR notation); disabled unless set
	PprofAllowedCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envSeparator:","`
}

// Load reads configuration from the environment, after an optional .env file.
func Load(dotenvFiles ...string) (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg, dotenvFiles...); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	u, err := url.ParseRequestURI(c.CatalogAPIURL)
	if err != nil {
		return fmt.Errorf("invalid CATALOG_API_URL %q: %w", c.CatalogAPIURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("CATALOG_API_URL must be http or https, got %q", u.Scheme)
	}
	if c.CatalogTimeoutSeconds <= 0 {
		return fmt.Errorf("CATALOG_TIMEOUT_SECONDS must be positive, got %d", c.CatalogTimeoutSeconds)
	}
	if c.CatalogMaxRetries < 0 {
		return fmt.Errorf("CATALOG_MAX_RETRIES must not be negative, got %d", c.CatalogMaxRetries)
	}
	if c.CatalogRetryWaitMinMs > c.CatalogRetryWaitMaxMs {
		return fmt.Errorf("CATALOG_RETRY_WAIT_MIN_MS (%d) exceeds CATALOG_RETRY_WAIT_MAX_MS (%d)",
			c.CatalogRetryWaitMinMs, c.CatalogRetryWaitMaxMs)
	}
	if c.CBFailureRatio <= 0 || c.CBFailureRatio > 1.0 {
		return fmt.Errorf("CB_FAILURE_RATIO must be in (0, 1], got %f", c.CBFailureRatio)
	}
	if c.FeedbackEventsEnabled && len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required when FEEDBACK_EVENTS_ENABLED is set")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst < 1 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1.0 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %f", c.OTELSampleRate)
	}
	return nil
}

// CatalogTimeout is the per-attempt timeout of a catalog API call.
func (c *Config) CatalogTimeout() time.Duration {
	return time.Duration(c.CatalogTimeoutSeconds) * time.Second
}

// DetailTimeout bounds loading a product page.
func (c *Config) DetailTimeout() time.Duration {
	return time.Duration(c.DetailTimeoutSeconds) * time.Second
}

// IsDevelopment reports whether the storefront runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
