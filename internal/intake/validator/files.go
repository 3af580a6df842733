package validator

import (
	"fmt"
	"sync"

	"github.com/dustin/go-humanize"
	validation "github.com/jellydator/validation"

	"github.com/lawoffice/intake/internal/intake/domain"
	rules "github.com/lawoffice/intake/internal/validation"
)

// UploadPolicy bounds the attachments of one submission.
type UploadPolicy struct {
	MaxFileBytes  int64
	MaxFiles      int
	MaxTotalBytes int64
}

// DefaultUploadPolicy allows five files of up to 10 MiB each and 10 MiB in total.
func DefaultUploadPolicy() UploadPolicy {
	return UploadPolicy{
		MaxFileBytes:  10 * 1024 * 1024,
		MaxFiles:      5,
		MaxTotalBytes: 10 * 1024 * 1024,
	}
}

// ValidateFile checks a single attachment against the per-file ceiling and the
// content type and filename rules. Sanitized carries the file name on success.
func ValidateFile(file domain.Attachment, maxBytes int64) FieldResult {
	if file.Name == "" {
		return invalid("Invalid file")
	}
	if maxBytes > 0 && file.Size > maxBytes {
		return invalid(fmt.Sprintf("File %q exceeds %s limit per file", file.Name, humanize.IBytes(uint64(maxBytes))))
	}
	if file.Size <= 0 {
		return invalid(fmt.Sprintf("File %q is empty", file.Name))
	}
	if err := validation.Validate(file.ContentType, validation.Required, rules.AllowedMIMEType); err != nil {
		return invalid(fmt.Sprintf("File %q is not an accepted format", file.Name))
	}
	if !rules.ExtensionMatchesMIME(file.Name, file.ContentType) {
		return invalid(fmt.Sprintf("File %q extension does not match file type", file.Name))
	}
	if err := validation.Validate(file.Name, rules.SafeFilename); err != nil {
		return invalid(fmt.Sprintf("File %q is not allowed", file.Name))
	}
	if err := validation.Validate(file.Name, rules.NoNullByte); err != nil {
		return invalid(fmt.Sprintf("File %q contains invalid characters", file.Name))
	}
	return FieldResult{Valid: true, Sanitized: file.Name}
}

// AttachmentSet stages the files selected on the form.
type AttachmentSet struct {
	mu     sync.Mutex
	policy UploadPolicy
	files  []domain.Attachment
}

// NewAttachmentSet creates an empty set bounded by policy.
func NewAttachmentSet(policy UploadPolicy) *AttachmentSet {
	return &AttachmentSet{policy: policy}
}

// Add stages a file. It returns false without error when the same file (name
// and size) is already staged.
func (s *AttachmentSet) Add(file domain.Attachment) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if res := ValidateFile(file, s.policy.MaxFileBytes); !res.Valid {
		return false, &Error{Field: FieldDocuments, Message: res.Error}
	}

	if s.policy.MaxFiles > 0 && len(s.files) >= s.policy.MaxFiles {
		return false, &Error{Field: FieldDocuments, Message: fmt.Sprintf(
			"Maximum %d files allowed. Please remove some files before adding more.",
			s.policy.MaxFiles,
		)}
	}

	total := s.totalLocked()
	if s.policy.MaxTotalBytes > 0 && total+file.Size > s.policy.MaxTotalBytes {
		return false, &Error{Field: FieldDocuments, Message: fmt.Sprintf(
			"Total file size would exceed %s limit. Current total: %s. Please remove some files.",
			humanize.IBytes(uint64(s.policy.MaxTotalBytes)),
			humanize.IBytes(uint64(total)),
		)}
	}

	for _, staged := range s.files {
		if staged.SameFile(file) {
			return false, nil
		}
	}

	s.files = append(s.files, file)
	return true, nil
}

// Remove unstages the file at index.
func (s *AttachmentSet) Remove(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.files) {
		return
	}
	s.files = append(s.files[:index], s.files[index+1:]...)
}

// Clear unstages every file.
func (s *AttachmentSet) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = nil
}

// Files returns a copy of the staged files.
func (s *AttachmentSet) Files() []domain.Attachment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Attachment(nil), s.files...)
}

// TotalBytes returns the combined size of the staged files.
func (s *AttachmentSet) TotalBytes() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalLocked()
}

func (s *AttachmentSet) totalLocked() int64 {
	var total int64
	for _, f := range s.files {
		total += f.Size
	}
	return total
}
