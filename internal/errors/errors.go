// Package errors defines the error classes shared by the intake packages.
// Packages wrap a class sentinel with their own context; the HTTP layer and the
// metrics decorator only look at the class.
package errors

import (
	"errors"
	"fmt"
)

// Error classes.
var (
	// ErrInvalidInput marks client data that fails validation. The user can fix it.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound marks a lookup that matched nothing.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable marks a dependency that could not serve the call: the
	// store, the mail provider or the network between client and server.
	ErrUnavailable = errors.New("unavailable")

	// ErrMethodNotAllowed marks a request the endpoint does not accept.
	ErrMethodNotAllowed = errors.New("method not allowed")
)

// Class labels, as returned by Class.
const (
	ClassInvalidInput     = "invalid_input"
	ClassNotFound         = "not_found"
	ClassUnavailable      = "unavailable"
	ClassMethodNotAllowed = "method_not_allowed"
	ClassInternal         = "internal_error"
)

// Class returns the label of the first error class found in err's tree, or
// ClassInternal when err carries none. A nil error has no class.
func Class(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return ClassInvalidInput
	case errors.Is(err, ErrNotFound):
		return ClassNotFound
	case errors.Is(err, ErrMethodNotAllowed):
		return ClassMethodNotAllowed
	case errors.Is(err, ErrUnavailable):
		return ClassUnavailable
	default:
		return ClassInternal
	}
}

// New returns an error with the given text and no class.
func New(message string) error {
	return errors.New(message)
}

// Wrap prefixes err with message. It returns nil for a nil err.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is Wrap with a formatted prefix.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Join combines errors, dropping nil values.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// Is is errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}
