package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	apperrors "github.com/lawoffice/intake/internal/errors"
	"github.com/lawoffice/intake/internal/intake/domain"
	"github.com/lawoffice/intake/internal/notification"
)

// submissionUseCase implements the SubmissionUseCase interface.
type submissionUseCase struct {
	repo     SubmissionRepository
	notifier SubmissionNotifier
	logger   *slog.Logger
	now      func() time.Time
}

// NewSubmissionUseCase creates a new SubmissionUseCase.
func NewSubmissionUseCase(
	repo SubmissionRepository,
	notifier SubmissionNotifier,
	logger *slog.Logger,
) SubmissionUseCase {
	return &submissionUseCase{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Submit persists the submission and then sends the notification. A failure of
// one step is logged and does not prevent the other.
func (s *submissionUseCase) Submit(
	ctx context.Context,
	submission *domain.Submission,
) (domain.Outcome, error) {
	if submission == nil ||
		strings.TrimSpace(submission.Name) == "" ||
		strings.TrimSpace(submission.Email) == "" ||
		strings.TrimSpace(submission.Phone) == "" {
		return domain.Outcome{}, domain.ErrMissingRequiredFields
	}

	var outcome domain.Outcome

	submission.SubmittedAt = s.now()
	if err := s.repo.Create(ctx, submission); err != nil {
		submission.ID = 0
		outcome.PersistErr = apperrors.Join(domain.ErrPersistFailed, err)
		s.logger.Error("failed to persist submission",
			slog.String("email", submission.Email),
			slog.Any("error", err),
		)
	} else {
		id := submission.ID
		outcome.ID = &id
		outcome.Persisted = true
	}

	if err := s.notifier.NotifySubmission(ctx, submission); err != nil {
		outcome.NotifyErr = err
		if apperrors.Is(err, notification.ErrNotificationDisabled) {
			s.logger.Warn("submission notification skipped",
				slog.Int64("submission_id", submission.ID),
				slog.Any("error", err),
			)
		} else {
			outcome.NotifyErr = apperrors.Join(domain.ErrNotifyFailed, err)
			s.logger.Error("failed to send submission notification",
				slog.Int64("submission_id", submission.ID),
				slog.Any("error", err),
			)
		}
	} else {
		outcome.EmailSent = true
	}

	if !outcome.Succeeded() {
		return outcome, domain.ErrSubmissionFailed
	}

	s.logger.Info("submission received",
		slog.Int64("submission_id", submission.ID),
		slog.Bool("persisted", outcome.Persisted),
		slog.Bool("email_sent", outcome.EmailSent),
		slog.Int("file_count", submission.FileCount()),
	)
	return outcome, nil
}

// Get retrieves a persisted submission by its identifier.
func (s *submissionUseCase) Get(ctx context.Context, id int64) (*domain.Submission, error) {
	return s.repo.GetByID(ctx, id)
}
