// Package notification delivers email notifications for new contact form submissions
// through a transactional email API or SMTP.
package notification

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/lawoffice/intake/internal/errors"
)

// Providers selectable by configuration.
const (
	ProviderAPI  = "api"
	ProviderSMTP = "smtp"
	ProviderNone = "none"
)

// ErrNotificationDisabled is returned when no provider is configured.
var ErrNotificationDisabled = apperrors.New("email notification is not configured")

// Message is a single outbound email.
type Message struct {
	From     string
	To       []string
	ReplyTo  string
	Subject  string
	HTMLBody string
	TextBody string
}

// Sender delivers messages through one provider.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

// ErrInvalidMessage reports a message rejected before delivery.
type ErrInvalidMessage struct {
	Reason string
}

func (e ErrInvalidMessage) Error() string { return "invalid email message: " + e.Reason }

// ErrSend reports a provider-side delivery failure.
type ErrSend struct {
	Provider string
	Err      error
}

func (e ErrSend) Error() string { return fmt.Sprintf("email send failed (%s): %v", e.Provider, e.Err) }
func (e ErrSend) Unwrap() error { return e.Err }

// Validate checks the parts every provider needs.
func (m Message) Validate() error {
	if strings.TrimSpace(m.From) == "" {
		return ErrInvalidMessage{Reason: "from is required"}
	}
	if len(cleanAddrs(m.To)) == 0 {
		return ErrInvalidMessage{Reason: "at least one recipient is required"}
	}
	if strings.TrimSpace(m.Subject) == "" {
		return ErrInvalidMessage{Reason: "subject is required"}
	}
	if strings.TrimSpace(m.HTMLBody) == "" && strings.TrimSpace(m.TextBody) == "" {
		return ErrInvalidMessage{Reason: "either TextBody or HTMLBody is required"}
	}
	return nil
}

func cleanAddrs(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

type disabledSender struct{}

// NewDisabledSender returns a Sender that always reports ErrNotificationDisabled.
func NewDisabledSender() Sender {
	return disabledSender{}
}

func (disabledSender) Send(context.Context, Message) error {
	return ErrNotificationDisabled
}
