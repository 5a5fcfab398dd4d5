package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnreachable wraps every failure that produced no HTTP response.
var ErrUnreachable = errors.New("api: server unreachable")

// Error is a non-2xx answer from the REST API.
type Error struct {
	Op      string
	Status  int
	Message string // server supplied, may be empty
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %d %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %d %s", e.Op, e.Status, http.StatusText(e.Status))
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// MessageOf returns the server supplied message carried by err, or "".
func MessageOf(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}
