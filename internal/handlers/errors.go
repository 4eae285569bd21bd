package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/pix_simulator/internal/apperrors"
	"github.com/SscSPs/pix_simulator/internal/dto"
	"github.com/SscSPs/pix_simulator/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statusFor maps an error category to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error body for err. Business rejections were already logged by
// the service; only unexpected failures are logged here.
func respondError(c *gin.Context, logger *slog.Logger, err error, body dto.ErrorResponse) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", slog.String("error", err.Error()))
	}
	c.Set(middleware.ErrorCodeKey, string(body.Error.Code))
	c.JSON(status, body)
}

// respondBindError reports a malformed request.
func respondBindError(c *gin.Context, logger *slog.Logger, err error, idempotencyKey string) {
	logger.Warn("Failed to bind request", slog.String("error", err.Error()))
	coded := apperrors.Newf(apperrors.CodeValidation, "Invalid request format: %s", err.Error())
	respondError(c, logger, coded, dto.NewErrorResponse(coded).WithIdempotencyKey(idempotencyKey))
}
