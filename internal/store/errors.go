package store

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a storage-level error carrying the HTTP status it should surface
// as. Services usually translate these into coded application errors; the
// status here is the fallback when one reaches a handler directly.
type Error struct {
	Code    int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPCode returns the status this error surfaces as.
func (e *Error) HTTPCode() int { return e.Code }

// WithMessage copies the error with a different user-facing message.
func (e *Error) WithMessage(msg string) *Error {
	return &Error{Code: e.Code, Message: msg, Err: e.Err}
}

// WithCause copies the error with an underlying cause attached.
func (e *Error) WithCause(err error) *Error {
	return &Error{Code: e.Code, Message: e.Message, Err: err}
}

// Sentinels the collections return; match with errors.Is.
var (
	ErrNotFound      = &Error{Code: http.StatusNotFound, Message: "resource not found"}
	ErrAlreadyExists = &Error{Code: http.StatusConflict, Message: "resource already exists"}
	ErrInvalidInput  = &Error{Code: http.StatusBadRequest, Message: "invalid input"}
	ErrUnauthorized  = &Error{Code: http.StatusUnauthorized, Message: "unauthorized"}
	ErrForbidden     = &Error{Code: http.StatusForbidden, Message: "forbidden"}
)

// IsNotFound reports whether err is the store's not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
