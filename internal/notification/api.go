package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
)

// DefaultAPIBaseURL is the base URL of the transactional email API.
const DefaultAPIBaseURL = "https://api.resend.com"

const maxErrorBody = 4096

// APIConfig configures an APISender.
type APIConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// APISender sends email through a Resend-compatible HTTP API.
type APISender struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

type apiEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

// NewAPISender creates an APISender backed by a pooled HTTP client.
func NewAPISender(cfg APIConfig) *APISender {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultAPIBaseURL
	}

	client := cleanhttp.DefaultPooledClient()
	if cfg.Timeout > 0 {
		client.Timeout = cfg.Timeout
	}

	return &APISender{apiKey: cfg.APIKey, baseURL: baseURL, client: client}
}

// Send posts the message to the /emails endpoint. Any non-2xx status is a failure.
func (s *APISender) Send(ctx context.Context, m Message) error {
	if s.apiKey == "" {
		return ErrNotificationDisabled
	}
	if err := m.Validate(); err != nil {
		return err
	}

	body, err := json.Marshal(apiEmailRequest{
		From:    strings.TrimSpace(m.From),
		To:      cleanAddrs(m.To),
		Subject: strings.TrimSpace(m.Subject),
		HTML:    m.HTMLBody,
		Text:    m.TextBody,
		ReplyTo: strings.TrimSpace(m.ReplyTo),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return ErrSend{Provider: "api", Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return ErrSend{
			Provider: "api",
			Err:      fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail))),
		}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
