package httpclient

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// DownstreamErrorResponse is the error body returned by the catalog API on
// failure. The API sends {"error": "message"}; the structured form
// {"error": {"code": "...", "message": "..."}} is accepted too.
type DownstreamErrorResponse struct {
	Error json.RawMessage `json:"error"`
}

// Message extracts the machine-readable error message, or "" when absent.
func (d DownstreamErrorResponse) Message() string {
	if len(d.Error) == 0 {
		return ""
	}

	var msg string
	if json.Unmarshal(d.Error, &msg) == nil {
		return strings.TrimSpace(msg)
	}

	var structured struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if json.Unmarshal(d.Error, &structured) == nil {
		return strings.TrimSpace(structured.Message)
	}
	return ""
}

// ParseResponseError reads the body of a non-2xx HTTP response and translates
// it into an AppError. When the body carries an error message it becomes the
// error's message; otherwise fallbackMessage is used.
//
// The caller should only invoke this when resp.StatusCode indicates an error
// (i.e., not 2xx). The response body is fully consumed and closed.
func ParseResponseError(resp *http.Response, fallbackMessage string) error {
	defer func() { _ = resp.Body.Close() }()

	message := fallbackMessage
	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB limit
	if err == nil {
		var downstream DownstreamErrorResponse
		if json.Unmarshal(bodyBytes, &downstream) == nil {
			if m := downstream.Message(); m != "" {
				message = m
			}
		}
	}

	return mapDownstreamError(resp.StatusCode, message)
}

// mapDownstreamError translates a catalog API status code into the client
// error taxonomy.
func mapDownstreamError(status int, message string) error {
	switch {
	case status == http.StatusNotFound:
		return apperrors.NotFound(message)
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return apperrors.Rejected(status, message)
	default:
		return apperrors.HTTP(status, message)
	}
}

// IsClientError returns true if the HTTP status code is a 4xx client error.
func IsClientError(status int) bool {
	return status >= 400 && status < 500
}

// IsSuccess returns true for 2xx status codes.
func IsSuccess(status int) bool {
	return status >= 200 && status < 300
}
