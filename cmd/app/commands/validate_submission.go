package commands

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/lawoffice/intake/internal/intake/validator"
)

type validationOutput struct {
	Valid             bool                                      `json:"valid"`
	HoneypotTriggered bool                                      `json:"honeypot_triggered"`
	Fields            map[validator.Field]validator.FieldResult `json:"fields"`
}

// RunValidateSubmission runs the contact form rules over input and prints the
// result of every field. It returns the first field error when the form is
// invalid and validator.ErrHoneypot when the hidden field is filled, so the
// command exits non-zero in both cases.
func RunValidateSubmission(
	v *validator.Validator,
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

	form := input.Form(attachments)
	res := v.ValidateForm(form)

	out := validationOutput{
		Valid:             res.Valid(),
		HoneypotTriggered: form.HoneypotTriggered(),
		Fields:            res.Fields,
	}

	if format == FormatJSON {
		if err := writeJSON(writer, out); err != nil {
			return err
		}
	} else {
		if err := outputValidationText(writer, out); err != nil {
			return err
		}
	}

	logger.Debug("contact form validated",
		slog.Bool("valid", out.Valid),
		slog.Int("attachments", len(attachments)),
	)

	if fieldErr, ok := res.FirstError(); ok {
		return fieldErr
	}
	if out.HoneypotTriggered {
		return validator.ErrHoneypot
	}
	return nil
}

func outputValidationText(w io.Writer, out validationOutput) error {
	for _, field := range reportFields {
		res, ok := out.Fields[field]
		if !ok {
			continue
		}
		var err error
		switch {
		case !res.Valid:
			_, err = fmt.Fprintf(w, "%-14s invalid  %s\n", field, res.Error)
		case res.Sanitized != "":
			_, err = fmt.Fprintf(w, "%-14s ok       %s\n", field, res.Sanitized)
		default:
			_, err = fmt.Fprintf(w, "%-14s ok\n", field)
		}
		if err != nil {
			return err
		}
	}

	if out.HoneypotTriggered {
		_, err := fmt.Fprintln(w, "Honeypot field is filled: the form would be dropped silently")
		return err
	}
	if out.Valid {
		_, err := fmt.Fprintln(w, "Form is valid")
		return err
	}
	_, err := fmt.Fprintln(w, "Form is invalid")
	return err
}
