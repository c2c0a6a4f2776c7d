// Package apperr classifies the failures services hand back to the HTTP layer.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the class of an application error
type Kind string

const (
	KindValidation       Kind = "VALIDATION"
	KindNotAuthenticated Kind = "NOT_AUTHENTICATED"
	KindNotFound         Kind = "NOT_FOUND"
	KindConflict         Kind = "CONFLICT"
	KindUnexpected       Kind = "UNEXPECTED"
)

// UnexpectedMessage is the only text a client sees for an unexpected failure
const UnexpectedMessage = "An internal server error occurred"

// HTTPStatus maps a kind onto its response status
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindNotAuthenticated:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error carries a kind, a client-facing message, optional per-field
// messages and the underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Errors  []string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause for errors.Is and errors.As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Validation reports malformed or out-of-range input
func Validation(fieldErrors ...string) *Error {
	return &Error{Kind: KindValidation, Message: "Validation failed", Errors: fieldErrors}
}

// Validationf reports a single validation failure with its own message
func Validationf(format string, args ...any) *Error {
	msg := fmt.Sprintf(format, args...)
	return &Error{Kind: KindValidation, Message: msg, Errors: []string{msg}}
}

// NotAuthenticated reports a request with no resolvable caller
func NotAuthenticated(message string) *Error {
	if message == "" {
		message = "User is not authenticated"
	}
	return &Error{Kind: KindNotAuthenticated, Message: message}
}

// NotFound reports an entity that is absent or not visible to the caller
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Conflict reports a duplicate value in a unique field
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Unexpected wraps an internal failure. The cause is never shown to clients.
func Unexpected(message string, cause error) *Error {
	return &Error{Kind: KindUnexpected, Message: message, Cause: cause}
}

// KindOf returns the kind of err, or KindUnexpected for foreign errors
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnexpected
}

// Response is the JSON body of every failed request
type Response struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// ToResponse converts err into a status code and body. Unexpected failures
// get the generic message.
func ToResponse(err error) (int, Response) {
	var appErr *Error
	if !errors.As(err, &appErr) || appErr.Kind == KindUnexpected {
		return http.StatusInternalServerError, Response{Message: UnexpectedMessage}
	}
	return appErr.Kind.HTTPStatus(), Response{Message: appErr.Message, Errors: appErr.Errors}
}
