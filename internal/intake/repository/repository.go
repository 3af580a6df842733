// Package repository implements data persistence for contact form submissions.
// PostgreSQL, MySQL and SQLite are supported; rows are insert-only.
package repository

import (
	"database/sql"
	"errors"

	"github.com/lawoffice/intake/internal/database"
	apperrors "github.com/lawoffice/intake/internal/errors"
	"github.com/lawoffice/intake/internal/intake/domain"
	"github.com/lawoffice/intake/internal/intake/usecase"
)

const selectColumns = `id, name, email, phone, practice_area, message, file_count, file_names, submitted_at`

// New returns the repository for the given driver.
func New(driver string, db database.Querier) (usecase.SubmissionRepository, error) {
	switch driver {
	case database.DriverPostgres:
		return NewPostgreSQLSubmissionRepository(db), nil
	case database.DriverMySQL:
		return NewMySQLSubmissionRepository(db), nil
	case database.DriverSQLite:
		return NewSQLiteSubmissionRepository(db), nil
	default:
		return nil, apperrors.Wrapf(apperrors.ErrInvalidInput, "unsupported database driver %q", driver)
	}
}

// scanSubmission reads one row selected with selectColumns.
func scanSubmission(row *sql.Row) (*domain.Submission, error) {
	var (
		s            domain.Submission
		practiceArea sql.NullString
		message      sql.NullString
		fileNames    sql.NullString
		fileCount    int
	)

	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Email,
		&s.Phone,
		&practiceArea,
		&message,
		&fileCount,
		&fileNames,
		&s.SubmittedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSubmissionNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get submission")
	}

	s.PracticeArea = nullableString(practiceArea)
	s.Message = nullableString(message)
	s.FileNames = domain.SplitFileNames(nullableString(fileNames), fileCount)
	s.SubmittedAt = s.SubmittedAt.UTC()

	return &s, nil
}

func nullableString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}
