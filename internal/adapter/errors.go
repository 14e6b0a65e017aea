package adapter

import "errors"

// Transport errors returned by [AuthAdapter] implementations. The server's
// message is appended after the sentinel: "<sentinel>: <message>".
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrUnprocessable       = errors.New("unprocessable entity")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrInternalServerError = errors.New("internal server error")

	// ErrInvalidBaseURL is returned by [NewHTTPAuthAdapter] when the project
	// URL cannot be used as a base URL.
	ErrInvalidBaseURL = errors.New("invalid base url")
)

// IsAuthError reports whether err means the session is no longer accepted by
// the server (401, 403 or an invalid refresh token reported as 400).
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrBadRequest)
}
