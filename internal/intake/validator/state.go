package validator

import (
	"sync"

	apperrors "github.com/lawoffice/intake/internal/errors"
	"github.com/lawoffice/intake/internal/intake/domain"
)

// Status is the submission state of the form.
type Status string

// Form statuses.
const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
)

// Labels and status messages shown by the form.
const (
	DefaultSubmitLabel  = "Send Message"
	BusyLabel           = "Sending..."
	SuccessMessage      = "Thank you! Your message has been sent successfully. We'll get back to you soon."
	DelayedEmailNote    = " (Note: Email notification may be delayed)"
	TimeoutMessage      = "Request timed out. Please try again."
	NetworkErrorMessage = "Network error. Please check your connection and try again."
	GenericErrorMessage = "There was an error sending your message. Please try again or contact us directly."
)

// Transition errors.
var (
	// ErrAlreadySubmitting is returned by Begin while a submission is in flight.
	ErrAlreadySubmitting = apperrors.New("submission already in progress")

	// ErrNotSubmitting is returned when an outcome is recorded with no
	// submission in flight.
	ErrNotSubmitting = apperrors.New("no submission in progress")
)

// Snapshot is a point-in-time copy of the form state.
type Snapshot struct {
	Status         Status              `json:"status"`
	SubmitLabel    string              `json:"submit_label"`
	SubmitDisabled bool                `json:"submit_disabled"`
	Message        string              `json:"message,omitempty"`
	FieldErrors    map[Field]string    `json:"field_errors,omitempty"`
	Attachments    []domain.Attachment `json:"attachments,omitempty"`
	Attempt        int                 `json:"attempt"`
}

// FormState tracks the submit button, the status message and the inline
// errors of one form. The form values survive a failure and are cleared only
// on success.
type FormState struct {
	mu          sync.Mutex
	label       string
	status      Status
	message     string
	fieldErrors map[Field]string
	attempt     int

	Form        Form
	Attachments *AttachmentSet
}

// NewFormState creates an idle form with an empty attachment set.
func NewFormState(label string, upload UploadPolicy) *FormState {
	if label == "" {
		label = DefaultSubmitLabel
	}
	return &FormState{
		label:       label,
		status:      StatusIdle,
		Attachments: NewAttachmentSet(upload),
	}
}

// Begin moves the form to submitting, disabling the button and clearing the
// previous message and inline errors.
func (s *FormState) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == StatusSubmitting {
		return ErrAlreadySubmitting
	}
	s.status = StatusSubmitting
	s.message = ""
	s.fieldErrors = nil
	s.attempt++
	return nil
}

// Invalid returns the form to idle with inline errors for the failing fields.
func (s *FormState) Invalid(fieldErrors map[Field]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status = StatusIdle
	s.message = ""
	s.fieldErrors = fieldErrors
}

// Abort returns the form to idle without any feedback.
func (s *FormState) Abort() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusIdle
}

// Succeed records a successful submission and resets the form values and
// staged attachments. It fails unless a submission is in flight.
func (s *FormState) Succeed(emailSent bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusSubmitting {
		return ErrNotSubmitting
	}
	s.status = StatusSucceeded
	s.message = SuccessMessage
	if !emailSent {
		s.message += DelayedEmailNote
	}
	s.fieldErrors = nil
	s.Form.Reset()
	s.Attachments.Clear()
	return nil
}

// Fail records a failed submission. Form values are preserved for a retry.
// It fails unless a submission is in flight.
func (s *FormState) Fail(message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusSubmitting {
		return ErrNotSubmitting
	}
	if message == "" {
		message = GenericErrorMessage
	}
	s.status = StatusFailed
	s.message = message
	return nil
}

// Status returns the current status.
func (s *FormState) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Snapshot returns a copy of the current state.
func (s *FormState) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Status:         s.status,
		SubmitLabel:    s.label,
		SubmitDisabled: s.status == StatusSubmitting,
		Message:        s.message,
		Attachments:    s.Attachments.Files(),
		Attempt:        s.attempt,
	}
	if snap.SubmitDisabled {
		snap.SubmitLabel = BusyLabel
	}
	if len(s.fieldErrors) > 0 {
		snap.FieldErrors = make(map[Field]string, len(s.fieldErrors))
		for k, v := range s.fieldErrors {
			snap.FieldErrors[k] = v
		}
	}
	return snap
}
