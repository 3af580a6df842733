package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lawoffice/intake/internal/intake/domain"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, msg Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func mailerConfig() SubmissionMailerConfig {
	return SubmissionMailerConfig{
		From:     "Contact Form <onboarding@resend.dev>",
		To:       []string{"firm@example.com"},
		FirmName: "Amer Law LLC",
	}
}

func TestSubject(t *testing.T) {
	sub := &domain.Submission{Name: "Jane Doe"}
	assert.Equal(t, "New Contact Form Submission: Jane Doe", Subject(sub))

	sub.PracticeArea = domain.OptionalString("Real Estate")
	assert.Equal(t, "New Contact Form Submission: Jane Doe - Real Estate", Subject(sub))

	sub.Name = "Jane\r\nBcc: x@y.z"
	assert.Equal(t, "New Contact Form Submission: Jane Bcc: x@y.z - Real Estate", Subject(sub))
}

func TestBuildSubmissionMessage(t *testing.T) {
	t.Run("Success_EscapesSubmittedValues", func(t *testing.T) {
		sub := &domain.Submission{
			ID:           12,
			Name:         "Jane <b>Doe</b>",
			Email:        "jane@example.com",
			Phone:        "(973) 356-6222",
			PracticeArea: domain.OptionalString("Commercial Law"),
			Message:      domain.OptionalString("<script>alert(1)</script> contract"),
			FileNames:    []string{"a.pdf", "b.png"},
			SubmittedAt:  time.Date(2026, 5, 1, 14, 5, 0, 0, time.UTC),
		}

		msg, err := BuildSubmissionMessage(sub, mailerConfig())
		require.NoError(t, err)

		assert.Equal(t, []string{"firm@example.com"}, msg.To)
		assert.Equal(t, "jane@example.com", msg.ReplyTo)
		assert.Contains(t, msg.HTMLBody, "Jane &lt;b&gt;Doe&lt;/b&gt;")
		assert.NotContains(t, msg.HTMLBody, "<script>")
		assert.Contains(t, msg.HTMLBody, "a.pdf, b.png")
		assert.Contains(t, msg.HTMLBody, "Submission ID:")
		assert.Contains(t, msg.HTMLBody, "May 1, 2026 2:05 PM UTC")
		assert.Contains(t, msg.HTMLBody, "Amer Law LLC")
		assert.Contains(t, msg.TextBody, "Attachments (2): a.pdf, b.png")
		assert.Contains(t, msg.TextBody, "Submission ID: 12")
	})

	t.Run("Success_OmitsMissingParts", func(t *testing.T) {
		sub := &domain.Submission{Name: "Jane", Email: "jane@example.com", Phone: "(973) 356-6222"}

		msg, err := BuildSubmissionMessage(sub, mailerConfig())
		require.NoError(t, err)

		assert.NotContains(t, msg.TextBody, "Submission ID")
		assert.NotContains(t, msg.TextBody, "Attachments")
		assert.Contains(t, msg.TextBody, "Practice Area: Not specified")
		assert.Contains(t, msg.TextBody, "No message provided")
	})
}

func TestSubmissionMailer_NotifySubmission(t *testing.T) {
	ctx := context.Background()
	sub := &domain.Submission{Name: "Jane", Email: "jane@example.com", Phone: "(973) 356-6222"}

	t.Run("Success", func(t *testing.T) {
		sender := &mockSender{}
		sender.On("Send", ctx, mock.MatchedBy(func(m Message) bool {
			return m.Subject == "New Contact Form Submission: Jane" && m.From == mailerConfig().From
		})).Return(nil).Once()

		mailer := NewSubmissionMailer(sender, mailerConfig())
		assert.NoError(t, mailer.NotifySubmission(ctx, sub))
		sender.AssertExpectations(t)
	})

	t.Run("Error_SenderFails", func(t *testing.T) {
		sender := &mockSender{}
		sender.On("Send", ctx, mock.Anything).Return(errors.New("boom")).Once()

		mailer := NewSubmissionMailer(sender, mailerConfig())
		assert.EqualError(t, mailer.NotifySubmission(ctx, sub), "boom")
	})

	t.Run("Error_Disabled", func(t *testing.T) {
		mailer := NewSubmissionMailer(NewDisabledSender(), mailerConfig())
		assert.ErrorIs(t, mailer.NotifySubmission(ctx, sub), ErrNotificationDisabled)
	})
}

func TestNewSender(t *testing.T) {
	api := APIConfig{APIKey: "re_test"}
	smtp := SMTPConfig{Host: "smtp.example.com", Port: 587}

	assert.IsType(t, &APISender{}, NewSender(ProviderAPI, api, smtp))
	assert.IsType(t, &SMTPSender{}, NewSender(ProviderSMTP, api, smtp))
	assert.IsType(t, disabledSender{}, NewSender(ProviderNone, api, smtp))
	assert.IsType(t, disabledSender{}, NewSender(ProviderAPI, APIConfig{}, smtp))
	assert.IsType(t, disabledSender{}, NewSender(ProviderSMTP, api, SMTPConfig{}))
}
