package utils

import "github.com/gofiber/fiber/v2"

// ApiError is an error that carries the HTTP status and the message shown to
// the client.
type ApiError struct {
	StatusCode int
	Message    string
	Err        error
}

// NewApiError wraps err with a client-facing status and message.
func NewApiError(statusCode int, message string, err error) *ApiError {
	if message == "" {
		message = "Something went wrong"
	}
	return &ApiError{StatusCode: statusCode, Message: message, Err: err}
}

func (e *ApiError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ApiError) Unwrap() error { return e.Err }

// Internal is a 500 with a generic message; the cause is kept for logs only.
func Internal(message string, err error) *ApiError {
	return NewApiError(fiber.StatusInternalServerError, message, err)
}
