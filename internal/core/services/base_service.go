package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/pix_simulator/internal/apperrors"
	"github.com/SscSPs/pix_simulator/internal/middleware"
	"github.com/SscSPs/pix_simulator/internal/platform/clock"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Clock clock.Clock
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogRejection logs a business rule rejection. These are expected outcomes, so they are
// logged at warn level with their code.
func (s *BaseService) LogRejection(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("code", string(apperrors.CodeOf(err))))
	args = append(args, keyvals...)
	logger.Warn(msg, args...)
}

// LogOutcome logs err at the level its kind deserves.
func (s *BaseService) LogOutcome(ctx context.Context, err error, msg string, keyvals ...any) {
	var coded *apperrors.Error
	if errors.As(err, &coded) {
		s.LogRejection(ctx, err, msg, keyvals...)
		return
	}
	s.LogError(ctx, err, msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// now reads the service clock, falling back to the system clock.
func (s *BaseService) now() time.Time {
	if s.Clock == nil {
		return clock.NewReal(nil).Now()
	}
	return s.Clock.Now()
}
