package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable matches every *NetworkError.
	ErrUnavailable = errors.New("server unavailable")
	// ErrUnauthorized matches *HTTPError values carrying status 401.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrMalformedBody is returned when a success response announces JSON
	// but the body does not parse.
	ErrMalformedBody = errors.New("malformed response body")
)

// HTTPError is returned when the server responded with a non-success status.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http %d: %s", e.Status, e.Message)
}

func (e *HTTPError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// NetworkError is returned when no response was obtained (DNS, connection
// refused, transport timeout, cancelled context, truncated body).
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrUnavailable }

// AuthExpiredError is the 401 specialisation of HTTPError.
type AuthExpiredError struct {
	*HTTPError
}

func (e *AuthExpiredError) Unwrap() error { return e.HTTPError }

// AsAuthExpired reports whether err carries an HTTP 401 and, if so, returns
// it as an *AuthExpiredError.
func AsAuthExpired(err error) (*AuthExpiredError, bool) {
	var herr *HTTPError
	if errors.As(err, &herr) && herr.Status == http.StatusUnauthorized {
		return &AuthExpiredError{HTTPError: herr}, true
	}
	return nil, false
}

// StatusCode extracts the HTTP status from err, if it carries one.
func StatusCode(err error) (int, bool) {
	var herr *HTTPError
	if errors.As(err, &herr) {
		return herr.Status, true
	}
	return 0, false
}
