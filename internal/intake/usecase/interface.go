// Package usecase defines the interfaces and implementations for contact form intake.
// A submission is persisted and then announced by email; each step is best-effort
// and the submission counts as received when either one succeeds.
package usecase

import (
	"context"

	"github.com/lawoffice/intake/internal/intake/domain"
)

// SubmissionRepository defines the interface for Submission persistence operations.
type SubmissionRepository interface {
	// Create inserts the submission and sets its ID.
	Create(ctx context.Context, submission *domain.Submission) error
	GetByID(ctx context.Context, id int64) (*domain.Submission, error)
}

// SubmissionNotifier announces a new submission to the firm.
type SubmissionNotifier interface {
	NotifySubmission(ctx context.Context, submission *domain.Submission) error
}

// SubmissionUseCase defines the interface for intake business logic.
type SubmissionUseCase interface {
	// Submit records and announces a submission. The returned outcome is always
	// populated; the error is non-nil only when both steps failed.
	Submit(ctx context.Context, submission *domain.Submission) (domain.Outcome, error)
	Get(ctx context.Context, id int64) (*domain.Submission, error)
}
