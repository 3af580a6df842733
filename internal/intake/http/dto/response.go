package dto

import (
	"time"

	"github.com/lawoffice/intake/internal/intake/domain"
)

// SubmitResponse is returned when at least one side effect of a submission succeeded.
type SubmitResponse struct {
	Success   bool   `json:"success"`
	ID        *int64 `json:"id"`
	EmailSent bool   `json:"emailSent"`
}

// SubmitFailureResponse is returned when the submission could not be recorded or delivered.
type SubmitFailureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// MapOutcomeToResponse converts a submission outcome to its API response.
func MapOutcomeToResponse(outcome domain.Outcome) SubmitResponse {
	return SubmitResponse{
		Success:   true,
		ID:        outcome.ID,
		EmailSent: outcome.EmailSent,
	}
}

// SubmissionResponse represents a persisted submission.
type SubmissionResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PracticeArea *string   `json:"practice_area"`
	Message      *string   `json:"message"`
	FileCount    int       `json:"file_count"`
	FileNames    []string  `json:"file_names"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// MapSubmissionToResponse converts a domain submission to an API response.
func MapSubmissionToResponse(s *domain.Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:           s.ID,
		Name:         s.Name,
		Email:        s.Email,
		Phone:        s.Phone,
		PracticeArea: s.PracticeArea,
		Message:      s.Message,
		FileCount:    s.FileCount(),
		FileNames:    s.FileNames,
		SubmittedAt:  s.SubmittedAt,
	}
}
