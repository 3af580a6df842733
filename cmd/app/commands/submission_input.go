package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/lawoffice/intake/internal/intake/domain"
	"github.com/lawoffice/intake/internal/intake/validator"
)

// reportFields is the order in which field results are printed.
var reportFields = []validator.Field{
	validator.FieldName,
	validator.FieldEmail,
	validator.FieldPhone,
	validator.FieldPracticeArea,
	validator.FieldMessage,
	validator.FieldDocuments,
}

// SubmissionInput holds contact form values given on the command line.
type SubmissionInput struct {
	Name         string
	Email        string
	Phone        string
	PracticeArea string
	Message      string
	BotField     string
	// Files are paths of local files to attach.
	Files []string
}

// Form returns the input as a contact form carrying the given attachments.
func (in SubmissionInput) Form(attachments []domain.Attachment) validator.Form {
	return validator.Form{
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		PracticeArea: in.PracticeArea,
		Message:      in.Message,
		BotField:     in.BotField,
		Attachments:  attachments,
	}
}

// LoadAttachments describes local files the way a browser would: base name,
// size and a content type sniffed from the file contents.
func LoadAttachments(paths []string) ([]domain.Attachment, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	attachments := make([]domain.Attachment, 0, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read attachment %q: %w", path, err)
		}
		if !info.Mode().IsRegular() {
			return nil, fmt.Errorf("attachment %q is not a regular file", path)
		}

		mtype, err := mimetype.DetectFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to detect content type of %q: %w", path, err)
		}
		contentType, _, _ := strings.Cut(mtype.String(), ";")

		attachments = append(attachments, domain.Attachment{
			Name:        filepath.Base(path),
			Size:        info.Size(),
			ContentType: strings.TrimSpace(contentType),
		})
	}
	return attachments, nil
}
