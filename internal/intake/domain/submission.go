// Package domain defines the core domain models for contact form intake.
// A Submission is created once by the intake handler and never mutated afterwards.
package domain

import (
	"path"
	"strings"
	"time"
)

// FileNamesSeparator joins attachment names in the persisted file_names column.
const FileNamesSeparator = ", "

// Submission is the record of one contact attempt.
type Submission struct {
	// ID is assigned by the store on insert; zero until persisted.
	ID int64
	// Name is the submitter's name.
	Name string
	// Email is the submitter's lowercased address.
	Email string
	// Phone is the submitter's phone number, formatted as (XXX) XXX-XXXX by the client.
	Phone string
	// PracticeArea is the optional area of practice selected on the form.
	PracticeArea *string
	// Message is the optional free-text message.
	Message *string
	// FileNames lists the attachment names; file bytes are never stored.
	FileNames []string
	// SubmittedAt is the server timestamp taken at persistence time.
	SubmittedAt time.Time
}

// FileCount returns the number of attachments carried by the submission.
func (s *Submission) FileCount() int {
	return len(s.FileNames)
}

// JoinedFileNames returns the attachment names joined for storage, or nil when there are none.
func (s *Submission) JoinedFileNames() *string {
	if len(s.FileNames) == 0 {
		return nil
	}
	joined := strings.Join(s.FileNames, FileNamesSeparator)
	return &joined
}

// SplitFileNames reverses JoinedFileNames using the stored attachment count.
// A name that itself contains the separator yields extra pieces; those are
// merged back, first where a piece has no extension and then into the leading
// name, until count names remain. A count of zero or less skips the merge.
func SplitFileNames(joined *string, count int) []string {
	if joined == nil || *joined == "" {
		return nil
	}
	pieces := strings.Split(*joined, FileNamesSeparator)

	for i := 0; len(pieces) > count && count > 0 && i < len(pieces)-1; {
		if path.Ext(pieces[i]) != "" {
			i++
			continue
		}
		pieces = mergePieces(pieces, i)
	}
	for len(pieces) > count && count > 0 {
		pieces = mergePieces(pieces, 0)
	}

	return pieces
}

func mergePieces(pieces []string, i int) []string {
	merged := pieces[i] + FileNamesSeparator + pieces[i+1]
	return append(append(pieces[:i:i], merged), pieces[i+2:]...)
}

// PracticeAreaOrEmpty returns the practice area or an empty string.
func (s *Submission) PracticeAreaOrEmpty() string {
	if s.PracticeArea == nil {
		return ""
	}
	return *s.PracticeArea
}

// MessageOrEmpty returns the message or an empty string.
func (s *Submission) MessageOrEmpty() string {
	if s.Message == nil {
		return ""
	}
	return *s.Message
}

// OptionalString returns nil for blank values and a pointer to the trimmed value otherwise.
func OptionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
