// Package errors defines the single failure kind returned by the client SDK.
package errors

import (
	stderrors "errors"
	"fmt"
)

// RequestError reports a non-2xx response. Error() is the fixed, operation-specific
// message only; status and body are kept as fields for callers that want them.
type RequestError struct {
	Op         string // operation name, e.g. "leaderboard"
	Message    string // fixed human-readable message
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return e.Message
}

// Detail renders the message together with status and op for logs.
func (e *RequestError) Detail() string {
	return fmt.Sprintf("%s: %s (HTTP %d)", e.Op, e.Message, e.StatusCode)
}

// AsRequestError extracts a *RequestError from err's chain.
func AsRequestError(err error) (*RequestError, bool) {
	var re *RequestError
	if stderrors.As(err, &re) {
		return re, true
	}
	return nil, false
}
