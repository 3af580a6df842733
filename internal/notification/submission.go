package notification

import (
	"bytes"
	"context"
	"embed"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/lawoffice/intake/internal/intake/domain"
)

//go:embed templates/*
var templateFS embed.FS

const submittedAtLayout = "Jan 2, 2006 3:04 PM MST"

var (
	funcs = map[string]any{"join": strings.Join}

	htmlTemplate = htmltemplate.Must(
		htmltemplate.New("submission.html").Funcs(funcs).ParseFS(templateFS, "templates/submission.html"),
	)
	textTemplate = texttemplate.Must(
		texttemplate.New("submission.txt").Funcs(funcs).ParseFS(templateFS, "templates/submission.txt"),
	)
)

// SubmissionMailerConfig configures a SubmissionMailer.
type SubmissionMailerConfig struct {
	From     string
	To       []string
	FirmName string
}

// SubmissionMailer composes the notification for a new submission and hands it to a Sender.
type SubmissionMailer struct {
	sender Sender
	cfg    SubmissionMailerConfig
}

type submissionView struct {
	ID           int64
	Name         string
	Email        string
	Phone        string
	PracticeArea string
	Message      string
	FileNames    []string
	SubmittedAt  string
	FirmName     string
}

// NewSubmissionMailer creates a SubmissionMailer.
func NewSubmissionMailer(sender Sender, cfg SubmissionMailerConfig) *SubmissionMailer {
	return &SubmissionMailer{sender: sender, cfg: cfg}
}

// NotifySubmission sends the notification for submission to the firm.
func (m *SubmissionMailer) NotifySubmission(ctx context.Context, submission *domain.Submission) error {
	msg, err := BuildSubmissionMessage(submission, m.cfg)
	if err != nil {
		return err
	}
	return m.sender.Send(ctx, msg)
}

// Subject returns the notification subject for a submission.
func Subject(submission *domain.Submission) string {
	subject := "New Contact Form Submission: " + submission.Name
	if area := submission.PracticeAreaOrEmpty(); area != "" {
		subject += " - " + area
	}
	return strings.Join(strings.Fields(subject), " ")
}

// BuildSubmissionMessage renders the HTML and plain-text bodies for a submission.
// Submitted values are escaped in the HTML body. The submission id is included
// only once the row has been persisted.
func BuildSubmissionMessage(submission *domain.Submission, cfg SubmissionMailerConfig) (Message, error) {
	view := submissionView{
		ID:           submission.ID,
		Name:         submission.Name,
		Email:        submission.Email,
		Phone:        submission.Phone,
		PracticeArea: submission.PracticeAreaOrEmpty(),
		Message:      submission.MessageOrEmpty(),
		FileNames:    submission.FileNames,
		FirmName:     cfg.FirmName,
	}
	if !submission.SubmittedAt.IsZero() {
		view.SubmittedAt = submission.SubmittedAt.Format(submittedAtLayout)
	}

	var html, text bytes.Buffer
	if err := htmlTemplate.Execute(&html, view); err != nil {
		return Message{}, err
	}
	if err := textTemplate.Execute(&text, view); err != nil {
		return Message{}, err
	}

	msg := Message{
		From:     cfg.From,
		To:       cfg.To,
		Subject:  Subject(submission),
		HTMLBody: html.String(),
		TextBody: text.String(),
	}
	if !strings.ContainsAny(submission.Email, "\r\n") {
		msg.ReplyTo = submission.Email
	}
	return msg, nil
}

// NewSender builds the Sender for the configured provider.
func NewSender(provider string, api APIConfig, smtp SMTPConfig) Sender {
	switch provider {
	case ProviderAPI:
		if api.APIKey == "" {
			return NewDisabledSender()
		}
		return NewAPISender(api)
	case ProviderSMTP:
		if smtp.Host == "" {
			return NewDisabledSender()
		}
		return NewSMTPSender(smtp)
	default:
		return NewDisabledSender()
	}
}
