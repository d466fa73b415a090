package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMalformedLogin is returned when the login response matches no
// known payload shape. Treated as a login failure by the caller.
var ErrMalformedLogin = errors.New("api: login response matched no known shape")

// APIError is a non-2xx response from the backend. Message is the
// backend-supplied message when the error body carried one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// ErrorMessage extracts a user-facing message from err: the backend's
// message field when present, else the given fallback.
func ErrorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
