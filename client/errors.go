package client

import (
	"errors"

	"github.com/chrissolanilla/quest-tracker/client/internal/api"
	clienterrors "github.com/chrissolanilla/quest-tracker/client/internal/errors"
)

var (
	errEmptyBaseURL = errors.New("baseURL cannot be empty")
	errNotAbsolute  = errors.New("baseURL must be absolute (scheme://host)")
)

// RequestError is the single failure kind for non-2xx responses. Its message is
// the fixed per-operation string; StatusCode and Body hold the details.
type RequestError = clienterrors.RequestError

// AsRequestError extracts a *RequestError from err's chain.
func AsRequestError(err error) (*RequestError, bool) { return clienterrors.AsRequestError(err) }

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int { return clienterrors.StatusCode(err) }

// IsNotLoggedIn reports whether err is Me's failure, i.e. no valid session.
func IsNotLoggedIn(err error) bool {
	re, ok := clienterrors.AsRequestError(err)
	return ok && re.Op == api.OpMe
}
