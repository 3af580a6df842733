package usecase

import (
	"context"
	"time"

	apperrors "github.com/lawoffice/intake/internal/errors"
	"github.com/lawoffice/intake/internal/intake/domain"
	"github.com/lawoffice/intake/internal/metrics"
)

const metricsDomain = "intake"

// submissionUseCaseWithMetrics decorates SubmissionUseCase with metrics instrumentation.
type submissionUseCaseWithMetrics struct {
	next    SubmissionUseCase
	metrics metrics.BusinessMetrics
}

// NewSubmissionUseCaseWithMetrics wraps a SubmissionUseCase with metrics recording.
func NewSubmissionUseCaseWithMetrics(useCase SubmissionUseCase, m metrics.BusinessMetrics) SubmissionUseCase {
	return &submissionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Submit records the overall outcome plus one operation per side effect.
func (s *submissionUseCaseWithMetrics) Submit(
	ctx context.Context,
	submission *domain.Submission,
) (domain.Outcome, error) {
	start := time.Now()
	outcome, err := s.next.Submit(ctx, submission)

	status := metrics.StatusFromError(err)
	s.metrics.RecordOperation(ctx, metricsDomain, "submission_submit", status)
	s.metrics.RecordDuration(ctx, metricsDomain, "submission_submit", time.Since(start), status)

	if apperrors.Is(err, domain.ErrMissingRequiredFields) {
		return outcome, err
	}
	s.metrics.RecordOperation(ctx, metricsDomain, "submission_persist", metrics.StatusFromError(outcome.PersistErr))
	s.metrics.RecordOperation(ctx, metricsDomain, "submission_notify", metrics.StatusFromError(outcome.NotifyErr))

	return outcome, err
}

// Get records metrics for submission retrieval operations.
func (s *submissionUseCaseWithMetrics) Get(ctx context.Context, id int64) (*domain.Submission, error) {
	start := time.Now()
	submission, err := s.next.Get(ctx, id)

	status := metrics.StatusFromError(err)
	s.metrics.RecordOperation(ctx, metricsDomain, "submission_get", status)
	s.metrics.RecordDuration(ctx, metricsDomain, "submission_get", time.Since(start), status)

	return submission, err
}
