package estimator

import (
	"errors"
	"fmt"
)

// Estimation errors define the failure conditions of the estimation layer.
// These errors communicate specific conditions from the provider adapter to
// the fallback policy; none of them ever reaches an API caller as a failure.
var (
	// ErrEmptyPrompt is returned when a batch item is empty or not a string.
	ErrEmptyPrompt = errors.New("product description must be a non-empty string")

	// ErrProviderUnavailable is returned when the AI provider cannot be
	// reached at all (DNS, connect, timeout).
	ErrProviderUnavailable = errors.New("estimation provider unreachable")

	// ErrMalformedResponse is returned when the provider responds with a
	// payload that is not the expected strict-JSON estimate object.
	ErrMalformedResponse = errors.New("estimation provider returned malformed response")
)

// ProviderError wraps any failure of the external AI estimation call:
// network errors, non-2xx statuses, and malformed payloads. The fallback
// estimator retries these and then switches to the rule-based strategy.
type ProviderError struct {
	// StatusCode is the HTTP status, or 0 for transport-level failures.
	StatusCode int

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("provider call failed with status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("provider call failed: %v", e.Err)
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError wraps err as a ProviderError.
func NewProviderError(statusCode int, err error) *ProviderError {
	return &ProviderError{StatusCode: statusCode, Err: err}
}

// IsProviderError checks if the error originated in the AI provider call.
// The fallback policy uses this to decide whether the rule-based strategy
// should take over.
func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}
