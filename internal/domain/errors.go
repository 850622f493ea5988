package domain

import (
	"errors"
	"fmt"
)

// Error is the kind of failure a catalog operation reports.
// Wrap it with %w so callers can match with errors.Is.
type Error string

func (e Error) Error() string {
	return string(e)
}

var (
	ErrValidation = Error("validation failed")
	ErrNotFound   = Error("not found")
	ErrConflict   = Error("conflict")
	ErrStoreFault = Error("store fault")
)

// Kinds lists every recognised error kind.
var Kinds = []Error{ErrValidation, ErrNotFound, ErrConflict, ErrStoreFault}

// KindOf returns the kind carried by err, or "" if it has none.
func KindOf(err error) Error {
	for _, kind := range Kinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return ""
}

// Classify passes recognised kinds through unchanged and wraps everything
// else as a store fault.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if KindOf(err) != "" {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStoreFault, err)
}

// Validationf builds a validation error with a formatted detail.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
