// Package apperr defines the application error taxonomy.
//
// Every error that crosses a package boundary is classified with a Kind so
// the HTTP layer can map it to a status code without inspecting message
// text. Messages are preserved verbatim for diagnosis.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for boundary mapping.
type Kind int

const (
	// KindUnknown is the zero value; treated as an internal error.
	KindUnknown Kind = iota

	// KindBadRequest covers malformed requests: missing slug, non-object input.
	KindBadRequest

	// KindUnknownFormula means the calculator slug is not registered.
	KindUnknownFormula

	// KindValidation means a specific input field failed its constraint.
	KindValidation

	// KindNotFound means a referenced user or calculator does not exist.
	KindNotFound

	// KindConflict means a uniqueness constraint was violated.
	KindConflict

	// KindUnauthorized means the request lacks valid credentials.
	KindUnauthorized
)

// String returns a short machine-readable code for the kind.
func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindUnknownFormula:
		return "unknown_calculator"
	case KindValidation:
		return "validation_failed"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "internal"
	}
}

// Error is a classified application error.
type Error struct {
	Kind    Kind
	Field   string // set for validation errors
	Message string
	Err     error // wrapped cause, if any
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// New returns an error of the given kind with a fixed message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf returns an error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an error of the given kind that wraps cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// Validation returns a validation error attributed to a field.
func Validation(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

// KindOf extracts the Kind from err, or KindUnknown if err is not
// a classified error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// FieldOf extracts the field name from a validation error, or "".
func FieldOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Field
	}
	return ""
}

// Is reports whether err is classified with the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
