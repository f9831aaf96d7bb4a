package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/httpclient"
	"github.com/utafrali/storefront/pkg/logger"
)

// CorrelationIDHeader carries the request correlation id to the catalog API.
const CorrelationIDHeader = "X-Correlation-ID"

// maxResponseSize bounds how much of a success body is read.
const maxResponseSize = 10 << 20

// HTTPDoer is the interface for executing HTTP requests.
// Both httpclient.Client and httpclient.CircuitBreakerClient satisfy this.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Request describes one call to the catalog API.
type Request struct {
	// Operation names the call in logs, metrics and spans, e.g. "list_products".
	Operation string
	Method    string
	// Path is relative to the client's base URL, e.g. "/products/42".
	Path  string
	Query url.Values
	// Body, when non-nil, is sent as JSON.
	Body any
	// FailureMessage is used when a failed response carries no message.
	FailureMessage string
}

// Client issues JSON requests to the catalog API and turns every failure
// into an apperrors.AppError: network failures become NETWORK_ERROR or
// SERVICE_UNAVAILABLE, non-2xx responses go through
// httpclient.ParseResponseError.
type Client struct {
	doer    HTTPDoer
	baseURL string
	logger  *slog.Logger
	tracer  trace.Tracer
}

// New creates a transport client for the API rooted at baseURL.
func New(doer HTTPDoer, baseURL string, logger *slog.Logger) *Client {
	return &Client{
		doer:    doer,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
		tracer:  otel.Tracer("github.com/utafrali/storefront/internal/transport"),
	}
}

// Do executes r and returns the raw success body. An empty success body is
// returned as JSON null.
func (c *Client) Do(ctx context.Context, r Request) (json.RawMessage, error) {
	start := time.Now()

	ctx, span := c.tracer.Start(ctx, "catalog."+r.Operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			semconv.HTTPMethod(r.Method),
			attribute.String("catalog.path", r.Path),
		),
	)
	defer span.End()

	body, status, err := c.do(ctx, r)
	duration := time.Since(start)

	statusLabel := "error"
	if status > 0 {
		statusLabel = strconv.Itoa(status)
		span.SetAttributes(semconv.HTTPStatusCode(status))
	}
	catalogRequestsTotal.WithLabelValues(r.Operation, statusLabel).Inc()
	catalogRequestDuration.WithLabelValues(r.Operation).Observe(duration.Seconds())

	log := logger.WithContext(ctx, c.logger)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, apperrors.UserMessage(err))
		// 4xx is a rejection, not an outage.
		level := slog.LevelError
		if httpclient.IsClientError(status) {
			level = slog.LevelWarn
		}
		log.Log(ctx, level, "catalog request failed",
			slog.String("operation", r.Operation),
			slog.String("method", r.Method),
			slog.String("path", r.Path),
			slog.Int("status", status),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	log.DebugContext(ctx, "catalog request",
		slog.String("operation", r.Operation),
		slog.String("method", r.Method),
		slog.String("path", r.Path),
		slog.Int("status", status),
		slog.Duration("duration", duration),
	)
	return body, nil
}

func (c *Client) do(ctx context.Context, r Request) (json.RawMessage, int, error) {
	target := c.baseURL + r.Path
	if len(r.Query) > 0 {
		target += "?" + r.Query.Encode()
	}

	var reader io.Reader
	if r.Body != nil {
		payload, err := json.Marshal(r.Body)
		if err != nil {
			return nil, 0, apperrors.Internal(fmt.Errorf("marshal %s request: %w", r.Operation, err))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, target, reader)
	if err != nil {
		return nil, 0, apperrors.Internal(fmt.Errorf("create %s request: %w", r.Operation, err))
	}
	req.Header.Set("Accept", "application/json")
	if r.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		req.Header.Set(CorrelationIDHeader, id)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.doer.Do(ctx, req)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, 0, appErr
		}
		return nil, 0, apperrors.Network(r.FailureMessage, err)
	}

	if !httpclient.IsSuccess(resp.StatusCode) {
		return nil, resp.StatusCode, httpclient.ParseResponseError(resp, r.FailureMessage)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, resp.StatusCode, apperrors.Network(r.FailureMessage, fmt.Errorf("read %s response: %w", r.Operation, err))
	}
	if len(bytes.TrimSpace(payload)) == 0 {
		return json.RawMessage("null"), resp.StatusCode, nil
	}
	return json.RawMessage(payload), resp.StatusCode, nil
}
