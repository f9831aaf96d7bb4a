package transport

import (
	"context"
	"net/http"

	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// MsgCatalogUnavailable is shown while the circuit breaker rejects calls.
const MsgCatalogUnavailable = "catalog service is temporarily unavailable, please retry shortly"

// CircuitOpenFallback is the httpclient.FallbackFunc used while the breaker
// in front of the catalog API is open. It fails fast with a
// SERVICE_UNAVAILABLE error, which Client.Do passes through unchanged.
func CircuitOpenFallback(_ context.Context, _ error) (*http.Response, error) {
	return nil, apperrors.ServiceUnavailable(MsgCatalogUnavailable)
}
