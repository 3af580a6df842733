// Package client submits a validated contact form to the intake endpoint and
// drives the form state through the outcome of that single attempt.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"

	apperrors "github.com/lawoffice/intake/internal/errors"
	"github.com/lawoffice/intake/internal/intake/domain"
	"github.com/lawoffice/intake/internal/intake/validator"
)

// DefaultTimeout bounds one submission round trip.
const DefaultTimeout = 30 * time.Second

const maxErrorBody = 4096

// Transport failures of a submission.
var (
	ErrTimeout          = apperrors.Wrap(apperrors.ErrUnavailable, "submission timed out")
	ErrNetwork          = apperrors.Wrap(apperrors.ErrUnavailable, "submission could not reach the server")
	ErrUnexpectedStatus = apperrors.New("submission rejected by the server")
	ErrInvalidResponse  = apperrors.New("submission response could not be decoded")
)

// Config configures a Client.
type Config struct {
	// Endpoint is the absolute URL of the intake endpoint.
	Endpoint string
	// Timeout bounds the request; zero means DefaultTimeout.
	Timeout time.Duration
}

// Result describes the outcome of one Submit call.
type Result struct {
	// Snapshot is the form state after the attempt.
	Snapshot validator.Snapshot
	// ID is the identifier assigned by the server, when it stored the row.
	ID *int64
	// EmailSent is false when the server reported that no notification went out.
	EmailSent bool
}

// Client posts contact forms as JSON to the intake endpoint.
type Client struct {
	endpoint   string
	timeout    time.Duration
	httpClient *http.Client
	validator  *validator.Validator
	logger     *slog.Logger
}

type submitPayload struct {
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	PracticeArea string   `json:"practice-area"`
	Message      string   `json:"message"`
	Files        []string `json:"files"`
}

type submitReply struct {
	Success   bool   `json:"success"`
	ID        *int64 `json:"id"`
	EmailSent *bool  `json:"emailSent"`
	Error     string `json:"error"`
}

// New creates a Client that validates forms with v before sending them.
func New(cfg Config, v *validator.Validator, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		endpoint:   cfg.Endpoint,
		timeout:    timeout,
		httpClient: cleanhttp.DefaultPooledClient(),
		validator:  v,
		logger:     logger,
	}
}

// Close releases idle connections held by the client.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// Submit validates the form held by state and, when it passes, posts it once.
//
// An invalid form returns the first field error and leaves inline errors on the
// state without sending anything. A filled honeypot returns ErrHoneypot with the
// state back to idle and no message. Transport and server failures set the
// matching user-facing message on the state and keep the form values for a
// retry. Only a 2xx reply resets the form and its attachments.
func (c *Client) Submit(ctx context.Context, state *validator.FormState) (Result, error) {
	if err := state.Begin(); err != nil {
		return Result{Snapshot: state.Snapshot()}, err
	}

	form := state.Form
	form.Attachments = state.Attachments.Files()

	res := c.validator.ValidateForm(form)
	if !res.Valid() {
		state.Invalid(res.Errors())
		if fieldErr, ok := res.FirstError(); ok {
			return Result{Snapshot: state.Snapshot()}, fieldErr
		}
		return Result{Snapshot: state.Snapshot()}, apperrors.ErrInvalidInput
	}
	state.Form.Apply(res)

	if form.HoneypotTriggered() {
		c.logger.Warn("bot detected via honeypot field")
		state.Abort()
		return Result{Snapshot: state.Snapshot()}, validator.ErrHoneypot
	}

	reply, err := c.post(ctx, res.Submission)
	if err != nil {
		c.logger.Error("form submission failed", slog.Any("error", err))
		if stateErr := state.Fail(failureMessage(err)); stateErr != nil {
			return Result{Snapshot: state.Snapshot()}, apperrors.Join(err, stateErr)
		}
		return Result{Snapshot: state.Snapshot()}, err
	}

	emailSent := reply.EmailSent == nil || *reply.EmailSent
	if err := state.Succeed(emailSent); err != nil {
		return Result{Snapshot: state.Snapshot()}, err
	}

	return Result{
		Snapshot:  state.Snapshot(),
		ID:        reply.ID,
		EmailSent: emailSent,
	}, nil
}

func (c *Client) post(ctx context.Context, submission *domain.Submission) (*submitReply, error) {
	body, err := json.Marshal(submitPayload{
		Name:         submission.Name,
		Email:        submission.Email,
		Phone:        submission.Phone,
		PracticeArea: submission.PracticeAreaOrEmpty(),
		Message:      submission.MessageOrEmpty(),
		Files:        nonNil(submission.FileNames),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode submission: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.Join(ErrNetwork, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if apperrors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, apperrors.Join(ErrTimeout, err)
		}
		return nil, apperrors.Join(ErrNetwork, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, apperrors.Wrapf(ErrUnexpectedStatus, "status %d: %s", resp.StatusCode, bytes.TrimSpace(detail))
	}

	var reply submitReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return nil, apperrors.Join(ErrInvalidResponse, err)
	}
	return &reply, nil
}

// failureMessage maps a submission error to the text shown on the form.
func failureMessage(err error) string {
	switch {
	case apperrors.Is(err, ErrTimeout):
		return validator.TimeoutMessage
	case apperrors.Is(err, ErrNetwork):
		return validator.NetworkErrorMessage
	default:
		return validator.GenericErrorMessage
	}
}

func nonNil(names []string) []string {
	if names == nil {
		return []string{}
	}
	return names
}
