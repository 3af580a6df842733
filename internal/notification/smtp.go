package notification

import (
	"context"
	"crypto/tls"
	"strings"
	"time"

	"gopkg.in/gomail.v2"
)

const defaultSMTPTimeout = 10 * time.Second

// SMTPConfig configures an SMTPSender.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	UseTLS   bool
	Timeout  time.Duration
}

// SMTPSender sends email over SMTP.
type SMTPSender struct {
	cfg  SMTPConfig
	dial func(d *gomail.Dialer, m ...*gomail.Message) error
}

// NewSMTPSender creates an SMTPSender.
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultSMTPTimeout
	}
	return &SMTPSender{
		cfg: cfg,
		dial: func(d *gomail.Dialer, m ...*gomail.Message) error {
			return d.DialAndSend(m...)
		},
	}
}

// Send delivers the message, giving up at the context deadline or the configured timeout.
func (s *SMTPSender) Send(ctx context.Context, m Message) error {
	if s.cfg.Host == "" {
		return ErrNotificationDisabled
	}

	msg, err := buildMessage(m)
	if err != nil {
		return err
	}

	d := s.newDialer()

	done := make(chan error, 1)
	go func() {
		done <- s.dial(d, msg)
	}()

	wait := s.cfg.Timeout
	if dl, ok := ctx.Deadline(); ok {
		if remaining := time.Until(dl); remaining > 0 && remaining < wait {
			wait = remaining
		}
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case err := <-done:
		if err != nil {
			return ErrSend{Provider: "smtp", Err: err}
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return context.DeadlineExceeded
	}
}

func (s *SMTPSender) newDialer() *gomail.Dialer {
	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	d.SSL = s.cfg.UseTLS
	if s.cfg.UseTLS {
		d.TLSConfig = &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}
	}
	return d
}

func buildMessage(m Message) (*gomail.Message, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", strings.TrimSpace(m.From))
	msg.SetHeader("To", cleanAddrs(m.To)...)
	msg.SetHeader("Subject", strings.TrimSpace(m.Subject))
	if replyTo := strings.TrimSpace(m.ReplyTo); replyTo != "" {
		msg.SetHeader("Reply-To", replyTo)
	}

	hasText := strings.TrimSpace(m.TextBody) != ""
	hasHTML := strings.TrimSpace(m.HTMLBody) != ""

	switch {
	case hasText && hasHTML:
		msg.SetBody("text/plain", m.TextBody)
		msg.AddAlternative("text/html", m.HTMLBody)
	case hasHTML:
		msg.SetBody("text/html", m.HTMLBody)
	default:
		msg.SetBody("text/plain", m.TextBody)
	}

	return msg, nil
}
