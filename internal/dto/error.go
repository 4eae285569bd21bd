package dto

import (
	"errors"

	"github.com/SscSPs/pix_simulator/internal/apperrors"
)

// ErrorDetail carries the human readable message and the stable code of a failure.
type ErrorDetail struct {
	Message string         `json:"message"`
	Code    apperrors.Code `json:"code"`
}

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Error          ErrorDetail `json:"error"`
	IdempotencyKey string      `json:"idempotencyKey,omitempty"`
}

// NewErrorResponse builds the body for err. Errors without a code are reported as internal
// errors and their text is not exposed.
func NewErrorResponse(err error) ErrorResponse {
	var coded *apperrors.Error
	if errors.As(err, &coded) {
		return ErrorResponse{Error: ErrorDetail{Message: coded.Message, Code: coded.Code}}
	}
	internal := apperrors.New(apperrors.CodeInternal)
	return ErrorResponse{Error: ErrorDetail{Message: internal.Message, Code: internal.Code}}
}

// WithIdempotencyKey attaches the effective idempotency key of a transfer attempt.
func (r ErrorResponse) WithIdempotencyKey(key string) ErrorResponse {
	r.IdempotencyKey = key
	return r
}
