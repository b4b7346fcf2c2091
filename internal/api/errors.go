package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/juanbermudez/linear-cli/internal/auth"
)

// DefaultRetryAfter is used when a 429 response carries no usable Retry-After header
const DefaultRetryAfter = 60

// Exit codes returned by the CLI
const (
	ExitOK          = 0
	ExitError       = 1
	ExitAuth        = 2
	ExitNotFound    = 3
	ExitRateLimited = 4
)

// ErrUnauthorized is returned when Linear rejects the API key
var ErrUnauthorized = errors.New("authentication failed: invalid API key")

// NotFoundError is returned when a lookup resolves to no entity
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Resource, e.ID)
}

// RateLimitError is returned on HTTP 429. The request is not retried.
type RateLimitError struct {
	RetryAfter int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited, retry after %d seconds", e.RetryAfter)
}

// GraphQLError carries the messages reported by the API
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	return strings.Join(e.Messages, ", ")
}

func newGraphQLError(format string, args ...interface{}) *GraphQLError {
	return &GraphQLError{Messages: []string{fmt.Sprintf(format, args...)}}
}

// NetworkError wraps transport-level failures (DNS, TLS, timeouts, bad responses)
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error to the process exit code
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var (
		notFound  *NotFoundError
		rateLimit *RateLimitError
	)

	switch {
	case errors.Is(err, auth.ErrNotAuthenticated), errors.Is(err, ErrUnauthorized):
		return ExitAuth
	case errors.As(err, &notFound):
		return ExitNotFound
	case errors.As(err, &rateLimit):
		return ExitRateLimited
	default:
		return ExitError
	}
}

// ErrorLabel returns the short label printed in front of an error message
func ErrorLabel(err error) string {
	var (
		notFound  *NotFoundError
		rateLimit *RateLimitError
		gqlErr    *GraphQLError
		netErr    *NetworkError
	)

	switch {
	case errors.Is(err, auth.ErrNotAuthenticated):
		return "Missing credentials"
	case errors.Is(err, ErrUnauthorized):
		return "Authentication error"
	case errors.As(err, &notFound):
		return "Not found"
	case errors.As(err, &rateLimit):
		return "Rate limited"
	case errors.As(err, &gqlErr):
		return "GraphQL error"
	case errors.As(err, &netErr):
		return "Network error"
	default:
		return "Error"
	}
}

// ErrorCode returns the machine-readable code used in JSON error output
func ErrorCode(err error) string {
	switch ExitCode(err) {
	case ExitAuth:
		return "AUTH_ERROR"
	case ExitNotFound:
		return "NOT_FOUND"
	case ExitRateLimited:
		return "RATE_LIMITED"
	}

	var (
		gqlErr *GraphQLError
		netErr *NetworkError
	)
	switch {
	case errors.As(err, &gqlErr):
		return "API_ERROR"
	case errors.As(err, &netErr):
		return "NETWORK_ERROR"
	default:
		return "ERROR"
	}
}
