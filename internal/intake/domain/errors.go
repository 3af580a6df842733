package domain

import (
	"github.com/lawoffice/intake/internal/errors"
)

// Intake-specific error definitions.
var (
	// ErrMissingRequiredFields indicates name, email or phone is absent from the payload.
	ErrMissingRequiredFields = errors.Wrap(errors.ErrInvalidInput, "Missing required fields")

	// ErrSubmissionNotFound indicates no row exists for the requested identifier.
	ErrSubmissionNotFound = errors.Wrap(errors.ErrNotFound, "submission not found")

	// ErrPersistFailed indicates the row could not be written.
	ErrPersistFailed = errors.Wrap(errors.ErrUnavailable, "failed to persist submission")

	// ErrNotifyFailed indicates the notification could not be delivered.
	ErrNotifyFailed = errors.Wrap(errors.ErrUnavailable, "failed to send notification")

	// ErrSubmissionFailed indicates neither side effect succeeded.
	ErrSubmissionFailed = errors.New("Failed to process submission")
)
