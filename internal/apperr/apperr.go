package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error for the HTTP boundary
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindValidation
	KindConflict
	KindStateConflict
	KindUpload
)

// Error is an application error carrying an explicit kind
type Error struct {
	ErrKind Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new application error of the given kind
func E(kind Kind, message string) error {
	return &Error{ErrKind: kind, Message: message}
}

// Errorf creates a new application error with a formatted message
func Errorf(kind Kind, format string, args ...interface{}) error {
	return &Error{ErrKind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a new application error wrapping a cause
func Wrap(kind Kind, message string, err error) error {
	return &Error{ErrKind: kind, Message: message, Err: err}
}

// NotFound creates a not-found error
func NotFound(format string, args ...interface{}) error {
	return Errorf(KindNotFound, format, args...)
}

// Validation creates a validation error
func Validation(format string, args ...interface{}) error {
	return Errorf(KindValidation, format, args...)
}

// Conflict creates a conflict error
func Conflict(format string, args ...interface{}) error {
	return Errorf(KindConflict, format, args...)
}

// StateConflict creates a state-conflict error
func StateConflict(format string, args ...interface{}) error {
	return Errorf(KindStateConflict, format, args...)
}

// KindOf returns the kind of an error, KindInternal for unclassified errors
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.ErrKind
	}
	return KindInternal
}

// Message returns the user-facing message of an error
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "internal server error"
}

// HTTPStatus maps an error kind to its HTTP status code
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict, KindStateConflict:
		return http.StatusConflict
	case KindUpload:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
