package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawoffice/intake/internal/intake/domain"
	"github.com/lawoffice/intake/internal/testutil"
)

func TestMySQLSubmissionRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_UsesLastInsertID", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		repo := NewMySQLSubmissionRepository(db)
		sub := newSubmission()

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO contact_submissions")).
			WithArgs("Jane Doe", "jane@example.com", "(973) 356-6222", "Real Estate", "Closing next month.",
				2, "contract.pdf, survey.png", submittedAt).
			WillReturnResult(sqlmock.NewResult(17, 1))

		require.NoError(t, repo.Create(ctx, sub))
		assert.Equal(t, int64(17), sub.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_ExecFails", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		repo := NewMySQLSubmissionRepository(db)
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO contact_submissions")).
			WillReturnError(errors.New("Data too long for column 'name'"))

		err = repo.Create(ctx, newSubmission())
		assert.ErrorContains(t, err, "failed to create submission")
	})

	t.Run("Error_LastInsertIDUnavailable", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		repo := NewMySQLSubmissionRepository(db)
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO contact_submissions")).
			WillReturnResult(sqlmock.NewErrorResult(errors.New("no id")))

		err = repo.Create(ctx, newSubmission())
		assert.ErrorContains(t, err, "failed to read submission id")
	})
}

func TestMySQLSubmissionRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewMySQLSubmissionRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("FROM contact_submissions WHERE id = ?")).
		WithArgs(int64(17)).
		WillReturnRows(submissionRows().AddRow(
			int64(17), "Jane Doe", "jane@example.com", "(973) 356-6222",
			nil, "Hello there", 0, nil, submittedAt,
		))

	sub, err := repo.GetByID(context.Background(), 17)
	require.NoError(t, err)
	assert.Nil(t, sub.PracticeArea)
	assert.Equal(t, "Hello there", sub.MessageOrEmpty())
	assert.Nil(t, sub.FileNames)
	assert.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectQuery(regexp.QuoteMeta("FROM contact_submissions WHERE id = ?")).
		WithArgs(int64(18)).
		WillReturnError(errors.New("bad connection"))

	_, err = repo.GetByID(context.Background(), 18)
	assert.ErrorContains(t, err, "failed to get submission")
	assert.NotErrorIs(t, err, domain.ErrSubmissionNotFound)
}

func TestMySQLSubmissionRepository_Integration(t *testing.T) {
	testutil.SkipIfNoMySQL(t)
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewMySQLSubmissionRepository(db)
	ctx := context.Background()

	sub := newSubmission()
	require.NoError(t, repo.Create(ctx, sub))

	read, err := repo.GetByID(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, sub.PracticeArea, read.PracticeArea)
	assert.True(t, submittedAt.Equal(read.SubmittedAt))
}
