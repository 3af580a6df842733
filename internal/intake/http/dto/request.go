// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"bytes"
	"encoding/json"
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/lawoffice/intake/internal/intake/domain"
	"github.com/lawoffice/intake/internal/intake/validator"
)

// Sizing of the largest request body a valid form can produce.
const (
	escapedRuneBytes  = 6 // a rune JSON-escaped as \uXXXX
	phoneMaxLength    = 32
	fileNameMaxLength = 255
	fileEntryBytes    = 16 // quotes, comma and an optional {"name":...} wrapper
	envelopeBytes     = 1024
)

// MaxRequestBytes returns the largest SubmitRequest body a form that passes
// client validation can encode, with every character escaped and maxFiles
// attachment names of the longest allowed length.
func MaxRequestBytes(maxFiles int) int64 {
	text := validator.NameMaxLength + // name
		validator.EmailMaxLength +
		phoneMaxLength +
		validator.NameMaxLength + // practice area
		validator.MessageMaxLength
	files := max(maxFiles, 0) * (fileNameMaxLength*escapedRuneBytes + fileEntryBytes)

	return int64(text*escapedRuneBytes + files + envelopeBytes)
}

// FileList holds the attachment names of a submission. It decodes a list of
// names, a list of {"name": ...} objects, a single name or object, and null.
type FileList []string

type fileEntry struct {
	Name string `json:"name"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FileList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = nil
		return nil
	}

	var raw []json.RawMessage
	if data[0] == '[' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	} else {
		raw = []json.RawMessage{data}
	}

	names := make([]string, 0, len(raw))
	for _, item := range raw {
		name, err := decodeFileName(item)
		if err != nil {
			return err
		}
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}

	if len(names) == 0 {
		*f = nil
		return nil
	}
	*f = names
	return nil
}

func decodeFileName(item json.RawMessage) (string, error) {
	item = bytes.TrimSpace(item)
	if len(item) == 0 || bytes.Equal(item, []byte("null")) {
		return "", nil
	}
	if item[0] == '{' {
		var entry fileEntry
		if err := json.Unmarshal(item, &entry); err != nil {
			return "", err
		}
		return entry.Name, nil
	}
	var name string
	if err := json.Unmarshal(item, &name); err != nil {
		return "", err
	}
	return name, nil
}

// SubmitRequest contains the parameters for submitting a contact form.
// The practice area is accepted under both its form name and camel case.
type SubmitRequest struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	PracticeArea    string   `json:"practice-area"`
	PracticeAreaAlt string   `json:"practiceArea"`
	Message         string   `json:"message"`
	Files           FileList `json:"files"`
}

// Validate checks that the fields required for a submission are present.
// Content rules are applied by the form before submitting.
func (r *SubmitRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Phone, validation.Required),
	)
}

// PracticeAreaValue returns the practice area from whichever key carried it.
func (r *SubmitRequest) PracticeAreaValue() string {
	if r.PracticeArea != "" {
		return r.PracticeArea
	}
	return r.PracticeAreaAlt
}

// ToDomain maps the request to a submission.
func (r *SubmitRequest) ToDomain() *domain.Submission {
	var files []string
	if len(r.Files) > 0 {
		files = append(files, r.Files...)
	}
	return &domain.Submission{
		Name:         strings.TrimSpace(r.Name),
		Email:        strings.TrimSpace(r.Email),
		Phone:        strings.TrimSpace(r.Phone),
		PracticeArea: domain.OptionalString(r.PracticeAreaValue()),
		Message:      domain.OptionalString(r.Message),
		FileNames:    files,
	}
}
