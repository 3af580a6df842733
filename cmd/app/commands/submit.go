package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/lawoffice/intake/internal/intake/client"
	"github.com/lawoffice/intake/internal/intake/validator"
)

// FormSubmitter sends one contact form and reports the resulting form state.
type FormSubmitter interface {
	Submit(ctx context.Context, state *validator.FormState) (client.Result, error)
}

type submitOutput struct {
	Form      validator.Snapshot `json:"form"`
	ID        *int64             `json:"id,omitempty"`
	EmailSent bool               `json:"email_sent"`
}

// RunSubmit stages the input's attachments, then validates and posts the form
// through submitter. The resulting form state is printed whether or not the
// submission went through.
func RunSubmit(
	ctx context.Context,
	submitter FormSubmitter,
	upload validator.UploadPolicy,
	logger *slog.Logger,
	writer io.Writer,
	input SubmissionInput,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	attachments, err := LoadAttachments(input.Files)
	if err != nil {
		return err
	}

	state := validator.NewFormState("", upload)
	state.Form = input.Form(nil)
	for _, attachment := range attachments {
		added, err := state.Attachments.Add(attachment)
		if err != nil {
			return err
		}
		if !added {
			logger.Warn("duplicate attachment skipped", slog.String("file", attachment.Name))
		}
	}

	result, submitErr := submitter.Submit(ctx, state)

	out := submitOutput{Form: result.Snapshot, ID: result.ID, EmailSent: result.EmailSent}
	if format == FormatJSON {
		if err := writeJSON(writer, out); err != nil {
			return err
		}
	} else {
		if err := outputSubmitText(writer, out); err != nil {
			return err
		}
	}

	if submitErr != nil {
		return fmt.Errorf("failed to submit contact form: %w", submitErr)
	}

	logger.Info("contact form submitted", slog.Bool("email_sent", out.EmailSent))
	return nil
}

func outputSubmitText(w io.Writer, out submitOutput) error {
	if _, err := fmt.Fprintf(w, "Status: %s\n", out.Form.Status); err != nil {
		return err
	}
	if out.Form.Message != "" {
		if _, err := fmt.Fprintf(w, "Message: %s\n", out.Form.Message); err != nil {
			return err
		}
	}
	for _, field := range reportFields {
		if msg, ok := out.Form.FieldErrors[field]; ok {
			if _, err := fmt.Fprintf(w, "  %s: %s\n", field, msg); err != nil {
				return err
			}
		}
	}
	if out.Form.Status != validator.StatusSucceeded {
		return nil
	}

	id := "not stored"
	if out.ID != nil {
		id = fmt.Sprintf("%d", *out.ID)
	}
	_, err := fmt.Fprintf(w, "Submission ID: %s\nEmail sent: %t\n", id, out.EmailSent)
	return err
}
