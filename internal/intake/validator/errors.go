package validator

import (
	apperrors "github.com/lawoffice/intake/internal/errors"
)

// Error is a field-scoped validation failure. Its text is meant for the form's
// inline error slot.
type Error struct {
	Field   Field
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap ties field errors to the domain's invalid input class.
func (e *Error) Unwrap() error {
	return apperrors.ErrInvalidInput
}

// ErrHoneypot signals a submission aborted because the hidden bot field was filled.
// It is never shown to the user.
var ErrHoneypot = apperrors.New("honeypot field filled")
