package transport

import (
	"encoding/json"
	"errors"
	"fmt"
)

// NetworkError is a transport-level failure: no HTTP response was received
// (timeout, refused connection, DNS failure, truncated body).
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: network error: %v", e.Method, e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// StatusError is an application-level failure: the backend answered with an
// error status. Body holds the raw response payload.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: http %d: %s", e.Method, e.Path, e.StatusCode, string(e.Body))
}

// Detail extracts the FastAPI-style {"detail": "..."} message when present.
func (e *StatusError) Detail() string {
	var payload struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(e.Body, &payload); err != nil || payload.Detail == nil {
		return ""
	}
	if s, ok := payload.Detail.(string); ok {
		return s
	}
	return fmt.Sprint(payload.Detail)
}

// IsNetworkError reports whether err carries a NetworkError.
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// StatusCode returns the HTTP status carried by err, or 0 if it has none.
func StatusCode(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}
