package github

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/custodia-labs/reposearch/internal/core/domain"
)

// RateLimitError reports a spent search quota. errors.Is(err,
// domain.ErrLimitExceeded) holds for it.
type RateLimitError struct {
	ResetAt   time.Time // zero when GitHub did not say
	Remaining int
	Limit     int
}

func (e *RateLimitError) Error() string {
	msg := "github: rate limit exceeded"
	if !e.ResetAt.IsZero() {
		msg += ", resets at " + e.ResetAt.Format(time.RFC3339)
	}
	return msg
}

func (e *RateLimitError) Unwrap() error { return domain.ErrLimitExceeded }

// RetryAfter is how long until the quota resets, measured from now.
// It is zero when the reset time is unknown or already past.
func (e *RateLimitError) RetryAfter(now time.Time) time.Duration {
	if e.ResetAt.IsZero() {
		return 0
	}
	return max(e.ResetAt.Sub(now), 0)
}

// APIError is any other non-2xx answer from the search endpoint.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// Unwrap exposes domain.ErrAuthInvalid for rejected tokens.
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return domain.ErrAuthInvalid
	}
	return nil
}

// IsRateLimited reports whether err carries a *RateLimitError.
func IsRateLimited(err error) bool {
	var rl *RateLimitError
	return errors.As(err, &rl)
}

// IsUnauthorized reports a 401, usually a revoked or mistyped token.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsValidationFailed reports a 422, GitHub's answer to a malformed query.
func IsValidationFailed(err error) bool {
	return hasStatus(err, http.StatusUnprocessableEntity)
}

func hasStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}
