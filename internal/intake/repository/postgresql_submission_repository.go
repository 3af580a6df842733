package repository

import (
	"context"

	"github.com/lawoffice/intake/internal/database"
	apperrors "github.com/lawoffice/intake/internal/errors"
	"github.com/lawoffice/intake/internal/intake/domain"
)

// PostgreSQLSubmissionRepository implements Submission persistence for PostgreSQL databases.
type PostgreSQLSubmissionRepository struct {
	db database.Querier
}

// NewPostgreSQLSubmissionRepository creates a new PostgreSQL Submission repository.
func NewPostgreSQLSubmissionRepository(db database.Querier) *PostgreSQLSubmissionRepository {
	return &PostgreSQLSubmissionRepository{db: db}
}

// Create inserts a submission and stores the generated id on it.
func (p *PostgreSQLSubmissionRepository) Create(ctx context.Context, submission *domain.Submission) error {
	query := `INSERT INTO contact_submissions
			  (name, email, phone, practice_area, message, file_count, file_names, submitted_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id`

	err := p.db.QueryRowContext(
		ctx,
		query,
		submission.Name,
		submission.Email,
		submission.Phone,
		submission.PracticeArea,
		submission.Message,
		submission.FileCount(),
		submission.JoinedFileNames(),
		submission.SubmittedAt,
	).Scan(&submission.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to create submission")
	}
	return nil
}

// GetByID retrieves a submission by its id.
func (p *PostgreSQLSubmissionRepository) GetByID(ctx context.Context, id int64) (*domain.Submission, error) {
	query := `SELECT ` + selectColumns + ` FROM contact_submissions WHERE id = $1`
	return scanSubmission(p.db.QueryRowContext(ctx, query, id))
}
