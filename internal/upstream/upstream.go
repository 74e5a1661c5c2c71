// Package upstream defines the error reported when a third-party service fails.
package upstream

import (
	"errors"
	"fmt"
)

// Error is returned by every upstream client for transport failures, non-2xx
// responses and responses missing the expected payload. It is never retried.
type Error struct {
	// Service names the upstream, e.g. "Together API".
	Service string
	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int
	// Body is the response body for non-2xx responses.
	Body string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("%s responded with status %d: %s", e.Service, e.StatusCode, e.Body)
	case e.Err != nil:
		return fmt.Sprintf("%s request failed: %v", e.Service, e.Err)
	default:
		return e.Service + " request failed"
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status builds an Error for a non-2xx response.
func Status(service string, code int, body string) *Error {
	return &Error{Service: service, StatusCode: code, Body: body}
}

// Wrap builds an Error around a transport or decoding failure.
func Wrap(service string, err error) *Error {
	return &Error{Service: service, Err: err}
}

// Is reports whether err is, or wraps, an upstream Error.
func Is(err error) bool {
	var e *Error
	return errors.As(err, &e)
}
