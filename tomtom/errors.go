package tomtom

import (
	"errors"
	"fmt"
)

// Common errors returned by the client.
var (
	// ErrMissingAPIKey indicates no API key was supplied via options or the
	// TOMTOM_API_KEY environment variable.
	ErrMissingAPIKey = errors.New("tomtom API key is required")

	// ErrRateLimited indicates the upstream returned HTTP 429. It is mostly an
	// internal control signal; callers only see it when the delayed retry wave
	// itself is rate limited again.
	ErrRateLimited = errors.New("rate limited by tomtom API")

	// ErrClientClosed indicates the client was closed while the lookup was
	// queued, or before it was submitted.
	ErrClientClosed = errors.New("tomtom client is closed")
)

// TransportError represents a non-429 transport-level failure: a network
// error, or an unexpected HTTP status. It is never retried.
type TransportError struct {
	StatusCode int
	Body       string
	Err        error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tomtom request failed: %v", e.Err)
	}
	return fmt.Sprintf("tomtom API returned status %d: %s", e.StatusCode, e.Body)
}

// Unwrap returns the underlying fault, if any
func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsServerError checks if the failure was a 5xx response
func (e *TransportError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

// IsUnauthorized checks if the failure indicates a rejected API key
func (e *TransportError) IsUnauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

// ValidationError indicates the response body did not match the documented
// search response shape. This points at a malformed payload rather than a
// transient condition, so it is never retried.
type ValidationError struct {
	Err error
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid search response: %v", e.Err)
}

// Unwrap returns the underlying decode or validation failure
func (e *ValidationError) Unwrap() error {
	return e.Err
}
