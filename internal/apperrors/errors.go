// Package apperrors defines the failure kinds the service layer reports.
// Every service operation either succeeds or fails with exactly one kind;
// the HTTP layer is responsible for translating kinds to status codes.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	// KindUnknown is any error that carries no classification.
	KindUnknown Kind = iota
	// KindNotFound means a referenced entity id does not exist.
	KindNotFound
	// KindBadRequest means a business rule was violated, e.g. insufficient
	// stock or an invalid status transition.
	KindBadRequest
	// KindConflict means a supplied identifier is already taken.
	KindConflict
	// KindValidation means a field value is malformed, caught before any
	// business logic runs.
	KindValidation
)

// Error is a failure carrying a Kind the HTTP surface can map to a status.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// NotFound builds a KindNotFound error.
func NotFound(format string, args ...interface{}) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// BadRequest builds a KindBadRequest error.
func BadRequest(format string, args ...interface{}) error {
	return &Error{Kind: KindBadRequest, Message: fmt.Sprintf(format, args...)}
}

// Conflict builds a KindConflict error.
func Conflict(format string, args ...interface{}) error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Validation builds a KindValidation error.
func Validation(format string, args ...interface{}) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind carried by err, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsNotFound reports whether err is a KindNotFound failure.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsBadRequest reports whether err is a KindBadRequest failure.
func IsBadRequest(err error) bool { return KindOf(err) == KindBadRequest }

// IsConflict reports whether err is a KindConflict failure.
func IsConflict(err error) bool { return KindOf(err) == KindConflict }

// IsValidation reports whether err is a KindValidation failure.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }
