package httperr

import "net/http"

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTPError with the given code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

// Helpers for common errors
func NotFound(msg string) *HTTPError { return NewHTTPError(http.StatusNotFound, msg) }

func Conflict(msg string) *HTTPError { return NewHTTPError(http.StatusConflict, msg) }

func BadRequest(msg string) *HTTPError { return NewHTTPError(http.StatusBadRequest, msg) }

// StatusOf returns the status carried by err, or 500 for any other error.
func StatusOf(err error) int {
	if he, ok := err.(*HTTPError); ok {
		return he.Code
	}
	return http.StatusInternalServerError
}
