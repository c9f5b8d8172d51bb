package request

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrInvalidPath is returned for empty paths or paths without a leading slash.
var ErrInvalidPath = errors.New("invalid request path")

// RequestError is returned for non-2xx responses and transport failures.
// StatusCode is zero when no response was received.
type RequestError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s: request failed: %s", e.Method, e.Path, e.Message)
	}
	return fmt.Sprintf("%s %s: API returned status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// IsStatus reports whether err is a RequestError with the given status code.
func IsStatus(err error, status int) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.StatusCode == status
}

// IsNotFound reports whether err is a 404 RequestError.
func IsNotFound(err error) bool {
	return IsStatus(err, http.StatusNotFound)
}

// IsUnauthorized reports whether err is a 401 RequestError.
func IsUnauthorized(err error) bool {
	return IsStatus(err, http.StatusUnauthorized)
}
