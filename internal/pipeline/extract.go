package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/iss-position-etl/internal/domain"
)

// PositionSource is the port for fetching one raw API response body.
type PositionSource interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// AuditWriter is the port for persisting the raw response.
type AuditWriter interface {
	WriteAudit(ctx context.Context, body []byte) error
}

// FailureReason classifies why an extraction produced no data.
type FailureReason string

const (
	ReasonTransport     FailureReason = "transport"
	ReasonHTTPStatus    FailureReason = "http_status"
	ReasonMalformedBody FailureReason = "malformed_body"
	ReasonAuditWrite    FailureReason = "audit_write"
)

// ExtractError is the failure side of an ExtractResult.
type ExtractError struct {
	Reason FailureReason
	Err    error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("extract failed (%s): %v", e.Reason, e.Err)
}

func (e *ExtractError) Unwrap() error {
	return e.Err
}

// ExtractResult holds either a parsed response or the reason there is none.
// The response is only reachable through Value, which also yields the failure.
type ExtractResult struct {
	raw     domain.RawResponse
	failure *ExtractError
}

// Extracted wraps a successful extraction.
func Extracted(raw domain.RawResponse) ExtractResult {
	return ExtractResult{raw: raw}
}

// ExtractFailed wraps a failed extraction.
func ExtractFailed(reason FailureReason, err error) ExtractResult {
	return ExtractResult{failure: &ExtractError{Reason: reason, Err: err}}
}

// Value returns the parsed response, or an *ExtractError when extraction failed.
func (r ExtractResult) Value() (domain.RawResponse, error) {
	if r.failure != nil {
		return domain.RawResponse{}, r.failure
	}
	return r.raw, nil
}

// Failure returns nil on success.
func (r ExtractResult) Failure() *ExtractError {
	return r.failure
}

// HTTPExtractor implements Extractor by fetching from a PositionSource and
// writing an audit copy of every valid response.
type HTTPExtractor struct {
	source PositionSource
	audit  AuditWriter
	logger *slog.Logger
}

// NewExtractor creates an HTTPExtractor.
func NewExtractor(source PositionSource, audit AuditWriter, logger *slog.Logger) *HTTPExtractor {
	return &HTTPExtractor{source: source, audit: audit, logger: logger}
}

// Extract performs exactly one fetch. The audit file is written only when
// the body is valid JSON.
func (e *HTTPExtractor) Extract(ctx context.Context) ExtractResult {
	body, err := e.source.Fetch(ctx)
	if err != nil {
		var statusErr *domain.HTTPStatusError
		if errors.As(err, &statusErr) {
			e.logger.Error("http error occurred", "status", statusErr.StatusCode, "url", statusErr.URL, "error", err)
			return ExtractFailed(ReasonHTTPStatus, err)
		}
		e.logger.Error("request error occurred", "error", err)
		return ExtractFailed(ReasonTransport, err)
	}

	raw, err := domain.ParseRawResponse(body)
	if err != nil {
		e.logger.Error("response body is not valid JSON", "error", err)
		return ExtractFailed(ReasonMalformedBody, err)
	}

	if err := e.audit.WriteAudit(ctx, raw.Body); err != nil {
		e.logger.Error("audit copy failed", "error", err)
		return ExtractFailed(ReasonAuditWrite, err)
	}

	return Extracted(raw)
}
