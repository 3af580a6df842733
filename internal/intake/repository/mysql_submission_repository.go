package repository

import (
	"context"

	"github.com/lawoffice/intake/internal/database"
	apperrors "github.com/lawoffice/intake/internal/errors"
	"github.com/lawoffice/intake/internal/intake/domain"
)

const insertPositional = `INSERT INTO contact_submissions
			  (name, email, phone, practice_area, message, file_count, file_names, submitted_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

// MySQLSubmissionRepository implements Submission persistence for MySQL databases.
type MySQLSubmissionRepository struct {
	db database.Querier
}

// NewMySQLSubmissionRepository creates a new MySQL Submission repository.
func NewMySQLSubmissionRepository(db database.Querier) *MySQLSubmissionRepository {
	return &MySQLSubmissionRepository{db: db}
}

// Create inserts a submission and stores the generated id on it.
func (m *MySQLSubmissionRepository) Create(ctx context.Context, submission *domain.Submission) error {
	return insertWithLastInsertID(ctx, m.db, submission)
}

// GetByID retrieves a submission by its id.
func (m *MySQLSubmissionRepository) GetByID(ctx context.Context, id int64) (*domain.Submission, error) {
	query := `SELECT ` + selectColumns + ` FROM contact_submissions WHERE id = ?`
	return scanSubmission(m.db.QueryRowContext(ctx, query, id))
}

func insertWithLastInsertID(ctx context.Context, db database.Querier, submission *domain.Submission) error {
	result, err := db.ExecContext(
		ctx,
		insertPositional,
		submission.Name,
		submission.Email,
		submission.Phone,
		submission.PracticeArea,
		submission.Message,
		submission.FileCount(),
		submission.JoinedFileNames(),
		submission.SubmittedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create submission")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperrors.Wrap(err, "failed to read submission id")
	}
	submission.ID = id
	return nil
}
