// Package httputil writes the JSON error bodies shared by the HTTP handlers.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/lawoffice/intake/internal/errors"
)

// MethodNotAllowedMessage is the body text of every 405 response.
const MethodNotAllowedMessage = "Method not allowed"

// ErrorResponse is the JSON body of a failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type classResponse struct {
	status int
	body   ErrorResponse
}

// classResponses maps an error class to its status and public body. Only
// invalid input echoes the error text; the rest never expose internals.
var classResponses = map[string]classResponse{
	apperrors.ClassNotFound: {
		status: http.StatusNotFound,
		body:   ErrorResponse{Error: apperrors.ClassNotFound, Message: "The requested resource was not found"},
	},
	apperrors.ClassMethodNotAllowed: {
		status: http.StatusMethodNotAllowed,
		body:   ErrorResponse{Error: MethodNotAllowedMessage},
	},
	apperrors.ClassUnavailable: {
		status: http.StatusServiceUnavailable,
		body:   ErrorResponse{Error: apperrors.ClassUnavailable, Message: "A required dependency is unavailable"},
	},
	apperrors.ClassInternal: {
		status: http.StatusInternalServerError,
		body:   ErrorResponse{Error: apperrors.ClassInternal, Message: "An internal error occurred"},
	},
}

// HandleErrorGin writes the response matching err's class and logs the failure.
// It does nothing for a nil error.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	class := apperrors.Class(err)
	if class == "" {
		return
	}

	var resp classResponse
	if class == apperrors.ClassInvalidInput {
		resp = classResponse{
			status: http.StatusUnprocessableEntity,
			body:   ErrorResponse{Error: class, Message: err.Error()},
		}
	} else {
		resp = classResponses[class]
	}

	if logger != nil {
		logger.Error("request failed",
			slog.Int("status_code", resp.status),
			slog.String("error_class", class),
			slog.Any("error", err),
		)
	}

	c.JSON(resp.status, resp.body)
}

// HandleBadRequestGin writes a 400 whose error field is the given client-facing message.
func HandleBadRequestGin(c *gin.Context, message string, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.String("reason", message), slog.Any("error", err))
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// HandleMethodNotAllowedGin writes the 405 body.
func HandleMethodNotAllowedGin(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, ErrorResponse{Error: MethodNotAllowedMessage})
}
