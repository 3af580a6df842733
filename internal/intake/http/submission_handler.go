// Package http provides HTTP handlers for contact form intake.
// The intake endpoint is called cross-origin by the public site, so every
// response it produces carries permissive CORS headers.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/lawoffice/intake/internal/errors"
	"github.com/lawoffice/intake/internal/httputil"
	"github.com/lawoffice/intake/internal/intake/domain"
	"github.com/lawoffice/intake/internal/intake/http/dto"
	"github.com/lawoffice/intake/internal/intake/usecase"
)

// Client-facing error messages of the intake endpoint.
const (
	invalidBodyMessage      = "Invalid request body"
	bodyTooLargeMessage     = "Request body too large"
	missingFieldsMessage    = "Missing required fields"
	submissionFailedMessage = "Failed to process submission"
)

// SubmissionHandler handles HTTP requests for contact form submissions.
type SubmissionHandler struct {
	useCase      usecase.SubmissionUseCase
	maxBodyBytes int64
	logger       *slog.Logger
}

// NewSubmissionHandler creates a new submission handler. Request bodies larger
// than maxBodyBytes are rejected with 413; zero or less disables the cap.
func NewSubmissionHandler(
	useCase usecase.SubmissionUseCase,
	maxBodyBytes int64,
	logger *slog.Logger,
) *SubmissionHandler {
	return &SubmissionHandler{
		useCase:      useCase,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
}

// CORSHeaders sets the headers the public site needs to call the intake endpoint.
func CORSHeaders(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Headers", "Content-Type")
	c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
}

// PreflightHandler answers the CORS preflight before any body processing.
// OPTIONS /submit - Returns 200 OK with an empty body.
func (h *SubmissionHandler) PreflightHandler(c *gin.Context) {
	CORSHeaders(c)
	c.Status(http.StatusOK)
}

// MethodNotAllowedHandler rejects any method other than POST and OPTIONS.
func (h *SubmissionHandler) MethodNotAllowedHandler(c *gin.Context) {
	CORSHeaders(c)
	httputil.HandleMethodNotAllowedGin(c)
}

// SubmitHandler records and announces a contact form submission.
// POST /submit - Returns 200 OK when the row was stored or the email was sent,
// 413 when the body exceeds the cap, 500 when both side effects failed.
func (h *SubmissionHandler) SubmitHandler(c *gin.Context) {
	CORSHeaders(c)

	if h.maxBodyBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)
	}

	var req dto.SubmitRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if apperrors.As(err, &tooLarge) {
			h.logger.Warn("request body too large", slog.Int64("limit_bytes", tooLarge.Limit))
			c.JSON(http.StatusRequestEntityTooLarge, httputil.ErrorResponse{Error: bodyTooLargeMessage})
			return
		}
		httputil.HandleBadRequestGin(c, invalidBodyMessage, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleBadRequestGin(c, missingFieldsMessage, err, h.logger)
		return
	}

	outcome, err := h.useCase.Submit(c.Request.Context(), req.ToDomain())
	if err != nil {
		switch {
		case apperrors.Is(err, domain.ErrMissingRequiredFields):
			httputil.HandleBadRequestGin(c, missingFieldsMessage, err, h.logger)
		case apperrors.Is(err, domain.ErrSubmissionFailed):
			c.JSON(http.StatusInternalServerError, dto.SubmitFailureResponse{
				Success: false,
				Error:   submissionFailedMessage,
			})
		default:
			httputil.HandleErrorGin(c, err, h.logger)
		}
		return
	}

	c.JSON(http.StatusOK, dto.MapOutcomeToResponse(outcome))
}
