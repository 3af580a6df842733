package repository

import (
	"context"

	"github.com/lawoffice/intake/internal/database"
	"github.com/lawoffice/intake/internal/intake/domain"
)

// SQLiteSubmissionRepository implements Submission persistence for SQLite databases.
type SQLiteSubmissionRepository struct {
	db database.Querier
}

// NewSQLiteSubmissionRepository creates a new SQLite Submission repository.
func NewSQLiteSubmissionRepository(db database.Querier) *SQLiteSubmissionRepository {
	return &SQLiteSubmissionRepository{db: db}
}

// Create inserts a submission and stores the generated id on it.
func (s *SQLiteSubmissionRepository) Create(ctx context.Context, submission *domain.Submission) error {
	return insertWithLastInsertID(ctx, s.db, submission)
}

// GetByID retrieves a submission by its id.
func (s *SQLiteSubmissionRepository) GetByID(ctx context.Context, id int64) (*domain.Submission, error) {
	query := `SELECT ` + selectColumns + ` FROM contact_submissions WHERE id = ?`
	return scanSubmission(s.db.QueryRowContext(ctx, query, id))
}
