package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/lawoffice/intake/internal/intake/http/dto"
	intakeUseCase "github.com/lawoffice/intake/internal/intake/usecase"
)

// RunShowSubmission prints the stored submission with the given identifier.
//
// Requirements: Database must be migrated and accessible.
func RunShowSubmission(
	ctx context.Context,
	useCase intakeUseCase.SubmissionUseCase,
	logger *slog.Logger,
	writer io.Writer,
	id int64,
	format string,
) error {
	if id <= 0 {
		return fmt.Errorf("id must be a positive number, got: %d", id)
	}
	if err := validateFormat(format); err != nil {
		return err
	}

	submission, err := useCase.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get submission: %w", err)
	}

	resp := dto.MapSubmissionToResponse(submission)
	if format == FormatJSON {
		if err := writeJSON(writer, resp); err != nil {
			return err
		}
	} else {
		if err := outputSubmissionText(writer, resp); err != nil {
			return err
		}
	}

	logger.Info("submission retrieved", slog.Int64("id", id))
	return nil
}

func outputSubmissionText(w io.Writer, s dto.SubmissionResponse) error {
	files := "-"
	if len(s.FileNames) > 0 {
		files = strings.Join(s.FileNames, ", ")
	}

	_, err := fmt.Fprintf(w,
		"ID:            %d\n"+
			"Name:          %s\n"+
			"Email:         %s\n"+
			"Phone:         %s\n"+
			"Practice area: %s\n"+
			"Message:       %s\n"+
			"Files (%d):     %s\n"+
			"Submitted:     %s (%s)\n",
		s.ID,
		s.Name,
		s.Email,
		s.Phone,
		orDash(s.PracticeArea),
		orDash(s.Message),
		s.FileCount,
		files,
		s.SubmittedAt.UTC().Format(time.DateTime),
		humanize.Time(s.SubmittedAt),
	)
	return err
}

func orDash(value *string) string {
	if value == nil || *value == "" {
		return "-"
	}
	return *value
}
