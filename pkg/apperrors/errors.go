// Package apperrors defines the error taxonomy shared by handlers and
// services. Services return *Error values with a stable code; the HTTP layer
// translates the code into a status and a JSON envelope.
//
// Only client-caused failures (validation, rate limiting) carry a code that
// reaches the caller. Backend failures are logged by the services and never
// surfaced, so they do not appear here beyond CodeInternal.
package apperrors

import (
	"errors"
	"net/http"
)

// Code identifies an error category. The string value is the wire-level
// "code" field of error responses.
type Code string

const (
	CodeValidation  Code = "VALIDATION_ERROR"
	CodeRateLimited Code = "RATE_LIMIT_EXCEEDED"
	CodeInternal    Code = "INTERNAL_ERROR"
)

// Error is a coded error with a human-readable message. The message for
// validation errors is surfaced verbatim to the caller.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

// New creates a coded error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Is reports whether err (or anything it wraps) carries the given code.
func Is(err error, code Code) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// CodeOf extracts the code from an error, defaulting to CodeInternal for
// errors outside the taxonomy.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps an error code to its HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
