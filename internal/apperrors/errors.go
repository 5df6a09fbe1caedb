// Package apperrors defines the error taxonomy shared by the API handlers.
package apperrors

import (
	"errors"
	"net/http"
)

// Code is a machine-readable error code.
type Code string

const (
	CodeUnknown         Code = "UNKNOWN"
	CodeUnauthorized    Code = "UNAUTHORIZED"
	CodeNotFound        Code = "NOT_FOUND"
	CodePayloadTooLarge Code = "PAYLOAD_TOO_LARGE"
	CodeBadRequest      Code = "BAD_REQUEST"
	CodeUpstreamFailure Code = "UPSTREAM_FAILURE"
)

// Error is the domain error type. Message is safe to show to API clients,
// Cause is only meant for logs.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

func Unauthorized(message string, cause error) *Error {
	return Wrap(CodeUnauthorized, message, cause)
}

func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

func BadRequest(message string) *Error {
	return New(CodeBadRequest, message)
}

func PayloadTooLarge(message string) *Error {
	return New(CodePayloadTooLarge, message)
}

func Upstream(message string, cause error) *Error {
	return Wrap(CodeUpstreamFailure, message, cause)
}

// CodeOf returns the code of the first *Error in err's chain.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// HTTPStatus maps an error to the response status code.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodePayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case CodeBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the text that may be shown to an untrusted client.
// The wrapped cause never leaves the process.
func PublicMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) || e.Message == "" {
		return "Internal server error"
	}
	return e.Message
}
