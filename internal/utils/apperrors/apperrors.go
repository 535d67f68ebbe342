// Package apperrors defines the error taxonomy used across handlers,
// domain services and infrastructure. Every failure that reaches the HTTP
// layer is one of these types; anything untyped is treated as internal.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	TypeValidation   ErrorType = "validation_error"
	TypeNotFound     ErrorType = "not_found"
	TypeUnauthorized ErrorType = "unauthorized"
	TypeProvider     ErrorType = "provider_error"
	TypeStore        ErrorType = "store_error"
	TypeInternal     ErrorType = "internal_error"
)

// Error carries a type for HTTP status mapping, a caller-facing message and
// the underlying cause for diagnostics.
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func New(errType ErrorType, message string) *Error {
	return &Error{Type: errType, Message: message}
}

func Wrap(errType ErrorType, message string, cause error) *Error {
	return &Error{Type: errType, Message: message, Cause: cause}
}

func Validation(message string) *Error {
	return New(TypeValidation, message)
}

func NotFound(message string) *Error {
	return New(TypeNotFound, message)
}

func Unauthorized(message string) *Error {
	return New(TypeUnauthorized, message)
}

func Provider(message string, cause error) *Error {
	return Wrap(TypeProvider, message, cause)
}

func Store(message string, cause error) *Error {
	return Wrap(TypeStore, message, cause)
}

func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}

// TypeOf returns the taxonomy type of err, or TypeInternal for untyped errors.
func TypeOf(err error) ErrorType {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return TypeInternal
}

// HTTPStatus maps an error to the response code mandated for its type.
func HTTPStatus(err error) int {
	switch TypeOf(err) {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeNotFound:
		return http.StatusNotFound
	case TypeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
