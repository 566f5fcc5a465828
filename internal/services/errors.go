package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/facets/internal/db"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrValidation     = errors.New("validation failed")
	ErrIntegrity      = errors.New("integrity violation")
	ErrStore          = errors.New("store failure")
	ErrForbidden      = errors.New("forbidden")
	ErrAuthentication = errors.New("authentication failed")
)

// Error pairs a failure kind with the message shown to the caller.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (err *Error) Error() string {
	return err.Message
}

func (err *Error) Unwrap() []error {
	if err.Err == nil {
		return []error{err.Kind}
	}
	return []error{err.Kind, err.Err}
}

// Message returns the caller-facing text of err.
func Message(err error) string {
	var serviceErr *Error
	if errors.As(err, &serviceErr) {
		return serviceErr.Message
	}
	if err == nil {
		return ""
	}
	return "An unexpected error occurred"
}

func notFound(entity string) error {
	return &Error{Kind: ErrNotFound, Message: entity + " not found"}
}

func invalid(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func forbidden(entity string) error {
	return &Error{Kind: ErrForbidden, Message: entity + " does not belong to this profile"}
}

func unauthenticated(message string) error {
	return &Error{Kind: ErrAuthentication, Message: message}
}

// storeFailure classifies a persistence error raised while performing action.
// Errors that already carry a kind pass through untouched.
func storeFailure(action string, err error) error {
	if err == nil {
		return nil
	}
	var serviceErr *Error
	if errors.As(err, &serviceErr) {
		return err
	}
	if errors.Is(err, db.ErrNotFound) {
		return &Error{Kind: ErrNotFound, Message: fmt.Sprintf("Record not found while %s", action), Err: err}
	}
	if errors.Is(err, db.ErrConstraint) {
		return &Error{Kind: ErrIntegrity, Message: fmt.Sprintf("Integrity error while %s: %v", action, err), Err: err}
	}
	return &Error{Kind: ErrStore, Message: fmt.Sprintf("Unexpected error while %s", action), Err: err}
}

// lookupFailure converts a failed single-row read into NotFound or a store failure.
func lookupFailure(entity string, err error) error {
	if errors.Is(err, db.ErrNotFound) {
		return notFound(entity)
	}
	return storeFailure("loading "+strings.ToLower(entity), err)
}

func isNotFound(err error) bool {
	return errors.Is(err, db.ErrNotFound) || errors.Is(err, ErrNotFound)
}
