package gate

import (
	"context"
	"errors"

	"github.com/farmily/farmily/internal/racex"
)

var (
	ErrInvalidRequestURL = errors.New("invalid gate request url")
	ErrTransport         = errors.New("gate transport error")
	ErrMalformedResponse = errors.New("malformed gate response")
)

// Outcome labels a fetch result for logs and metrics.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, racex.ErrTimeout):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, ErrInvalidRequestURL):
		return "invalid_request"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed"
	case errors.Is(err, ErrTransport):
		return "transport"
	default:
		return "error"
	}
}
