package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawoffice/intake/internal/intake/client"
	"github.com/lawoffice/intake/internal/intake/domain"
	"github.com/lawoffice/intake/internal/intake/usecase/mocks"
	"github.com/lawoffice/intake/internal/intake/validator"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testValidator() *validator.Validator {
	return validator.New(validator.Policy{
		AllowedPracticeAreas: []string{"Personal Injury", "Family Law", "Immigration"},
		Upload:               validator.DefaultUploadPolicy(),
	})
}

func validInput() SubmissionInput {
	return SubmissionInput{
		Name:         " Jane Doe ",
		Email:        "Jane@Example.com",
		Phone:        "973-356-6222",
		PracticeArea: "Family Law",
		Message:      "I need help with a custody arrangement.",
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadAttachments(t *testing.T) {
	t.Run("sniffs-content-type", func(t *testing.T) {
		path := writeFile(t, "notes.txt", "Accident happened on Route 46.\n")

		files, err := LoadAttachments([]string{path})

		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, "notes.txt", files[0].Name)
		assert.Equal(t, int64(31), files[0].Size)
		assert.Equal(t, "text/plain", files[0].ContentType)
	})

	t.Run("no-paths", func(t *testing.T) {
		files, err := LoadAttachments(nil)
		require.NoError(t, err)
		assert.Nil(t, files)
	})

	t.Run("missing-file", func(t *testing.T) {
		_, err := LoadAttachments([]string{filepath.Join(t.TempDir(), "missing.pdf")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read attachment")
	})

	t.Run("directory", func(t *testing.T) {
		_, err := LoadAttachments([]string{t.TempDir()})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a regular file")
	})
}

func TestRunValidateSubmission(t *testing.T) {
	v := testValidator()
	logger := discardLogger()

	t.Run("valid-text", func(t *testing.T) {
		var out bytes.Buffer

		err := RunValidateSubmission(v, logger, &out, validInput(), FormatText)

		require.NoError(t, err)
		assert.Contains(t, out.String(), "name           ok       Jane Doe")
		assert.Contains(t, out.String(), "phone          ok       (973) 356-6222")
		assert.Contains(t, out.String(), "email          ok       jane@example.com")
		assert.Contains(t, out.String(), "Form is valid")
	})

	t.Run("invalid-json", func(t *testing.T) {
		input := validInput()
		input.Email = "not-an-email"
		input.PracticeArea = "Maritime Law"
		var out bytes.Buffer

		err := RunValidateSubmission(v, logger, &out, input, FormatJSON)

		var fieldErr *validator.Error
		require.ErrorAs(t, err, &fieldErr)
		assert.Equal(t, validator.FieldEmail, fieldErr.Field)

		var decoded validationOutput
		require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
		assert.False(t, decoded.Valid)
		assert.False(t, decoded.Fields[validator.FieldEmail].Valid)
		assert.Equal(t, "Invalid practice area selected", decoded.Fields[validator.FieldPracticeArea].Error)
		assert.True(t, decoded.Fields[validator.FieldName].Valid)
	})

	t.Run("required-fields-text", func(t *testing.T) {
		var out bytes.Buffer

		err := RunValidateSubmission(v, logger, &out, SubmissionInput{}, FormatText)

		require.Error(t, err)
		assert.Contains(t, out.String(), "name           invalid  This field is required")
		assert.Contains(t, out.String(), "Form is invalid")
	})

	t.Run("attachment-checked", func(t *testing.T) {
		input := validInput()
		input.Files = []string{writeFile(t, "notes.pdf", "plain text pretending to be a pdf")}
		var out bytes.Buffer

		err := RunValidateSubmission(v, logger, &out, input, FormatText)

		var fieldErr *validator.Error
		require.ErrorAs(t, err, &fieldErr)
		assert.Equal(t, validator.FieldDocuments, fieldErr.Field)
		assert.Contains(t, out.String(), "documents      invalid")
	})

	t.Run("honeypot", func(t *testing.T) {
		input := validInput()
		input.BotField = "spam"
		var out bytes.Buffer

		err := RunValidateSubmission(v, logger, &out, input, FormatText)

		assert.ErrorIs(t, err, validator.ErrHoneypot)
		assert.Contains(t, out.String(), "Honeypot field is filled")
	})

	t.Run("invalid-format", func(t *testing.T) {
		err := RunValidateSubmission(v, logger, &bytes.Buffer{}, validInput(), "yaml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid format")
	})
}

func TestRunSubmit(t *testing.T) {
	logger := discardLogger()
	upload := validator.DefaultUploadPolicy()

	newClient := func(t *testing.T, handler http.HandlerFunc) *client.Client {
		t.Helper()
		server := httptest.NewServer(handler)
		t.Cleanup(server.Close)
		c := client.New(client.Config{Endpoint: server.URL, Timeout: time.Second}, testValidator(), logger)
		t.Cleanup(c.Close)
		return c
	}

	t.Run("success-text", func(t *testing.T) {
		var files []string
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			var payload struct {
				Files []string `json:"files"`
			}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			files = payload.Files
			_, _ = w.Write([]byte(`{"success":true,"id":41,"emailSent":true}`))
		})
		input := validInput()
		note := writeFile(t, "notes.txt", "Accident happened on Route 46.\n")
		input.Files = []string{note, note}
		var out bytes.Buffer

		err := RunSubmit(t.Context(), c, upload, logger, &out, input, FormatText)

		require.NoError(t, err)
		assert.Equal(t, []string{"notes.txt"}, files)
		assert.Contains(t, out.String(), "Status: succeeded")
		assert.Contains(t, out.String(), validator.SuccessMessage)
		assert.Contains(t, out.String(), "Submission ID: 41")
		assert.Contains(t, out.String(), "Email sent: true")
	})

	t.Run("stored-without-id-json", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success":true,"id":null,"emailSent":true}`))
		})
		var out bytes.Buffer

		err := RunSubmit(t.Context(), c, upload, logger, &out, validInput(), FormatJSON)

		require.NoError(t, err)
		var decoded submitOutput
		require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
		assert.Nil(t, decoded.ID)
		assert.True(t, decoded.EmailSent)
		assert.Equal(t, validator.StatusSucceeded, decoded.Form.Status)
	})

	t.Run("server-failure", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		var out bytes.Buffer

		err := RunSubmit(t.Context(), c, upload, logger, &out, validInput(), FormatText)

		assert.ErrorIs(t, err, client.ErrUnexpectedStatus)
		assert.Contains(t, out.String(), "Status: failed")
		assert.Contains(t, out.String(), validator.GenericErrorMessage)
		assert.NotContains(t, out.String(), "Submission ID")
	})

	t.Run("invalid-form-prints-field-errors", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("invalid form must not be sent")
		})
		input := validInput()
		input.Phone = "555"
		var out bytes.Buffer

		err := RunSubmit(t.Context(), c, upload, logger, &out, input, FormatText)

		require.Error(t, err)
		assert.Contains(t, out.String(), "Status: idle")
		assert.Contains(t, out.String(), "  phone: ")
	})

	t.Run("attachment-rejected-before-submit", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("rejected attachment must not be sent")
		})
		input := validInput()
		input.Files = []string{writeFile(t, "empty.txt", "")}

		err := RunSubmit(t.Context(), c, upload, logger, &bytes.Buffer{}, input, FormatText)

		var fieldErr *validator.Error
		require.ErrorAs(t, err, &fieldErr)
		assert.Equal(t, validator.FieldDocuments, fieldErr.Field)
	})
}

func TestRunShowSubmission(t *testing.T) {
	ctx := context.Background()
	logger := discardLogger()
	area := "Family Law"
	submission := &domain.Submission{
		ID:           12,
		Name:         "Jane Doe",
		Email:        "jane@example.com",
		Phone:        "(973) 356-6222",
		PracticeArea: &area,
		FileNames:    []string{"order.pdf", "photo.jpg"},
		SubmittedAt:  time.Date(2026, 3, 4, 15, 4, 5, 0, time.UTC),
	}

	t.Run("text-output", func(t *testing.T) {
		useCase := mocks.NewMockSubmissionUseCase(t)
		useCase.On("Get", ctx, int64(12)).Return(submission, nil)
		var out bytes.Buffer

		err := RunShowSubmission(ctx, useCase, logger, &out, 12, FormatText)

		require.NoError(t, err)
		assert.Contains(t, out.String(), "ID:            12")
		assert.Contains(t, out.String(), "Practice area: Family Law")
		assert.Contains(t, out.String(), "Message:       -")
		assert.Contains(t, out.String(), "Files (2):     order.pdf, photo.jpg")
		assert.Contains(t, out.String(), "Submitted:     2026-03-04 15:04:05")
	})

	t.Run("json-output", func(t *testing.T) {
		useCase := mocks.NewMockSubmissionUseCase(t)
		useCase.On("Get", ctx, int64(12)).Return(submission, nil)
		var out bytes.Buffer

		err := RunShowSubmission(ctx, useCase, logger, &out, 12, FormatJSON)

		require.NoError(t, err)
		assert.Contains(t, out.String(), `"file_count": 2`)
		assert.Contains(t, out.String(), `"message": null`)
	})

	t.Run("not-found", func(t *testing.T) {
		useCase := mocks.NewMockSubmissionUseCase(t)
		useCase.On("Get", ctx, int64(99)).Return(nil, domain.ErrSubmissionNotFound)

		err := RunShowSubmission(ctx, useCase, logger, &bytes.Buffer{}, 99, FormatText)

		assert.ErrorIs(t, err, domain.ErrSubmissionNotFound)
	})

	t.Run("invalid-id", func(t *testing.T) {
		useCase := mocks.NewMockSubmissionUseCase(t)

		err := RunShowSubmission(ctx, useCase, logger, &bytes.Buffer{}, 0, FormatText)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "id must be a positive number")
	})
}
