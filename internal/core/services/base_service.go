package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/job_tracker_app/internal/apperrors"
	"github.com/SscSPs/job_tracker_app/internal/core/domain"
	"github.com/SscSPs/job_tracker_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	// Now returns the current time. Tests replace it to pin the clock.
	Now func() time.Time
}

func newBaseService() BaseService {
	return BaseService{Now: func() time.Time { return time.Now().UTC() }}
}

// now returns the current time from the configured clock.
func (s *BaseService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Option is a functional option shared by the service constructors
type Option func(*BaseService)

// WithClock sets the clock a service reads the current time from.
func WithClock(now func() time.Time) Option {
	return func(s *BaseService) {
		s.Now = now
	}
}

func (s *BaseService) apply(options []Option) {
	for _, option := range options {
		option(s)
	}
}

// statusFilterAll disables status filtering on user-wide listings.
const statusFilterAll = "ALL"

// resolveOrder defaults an empty listing order to newest first.
func resolveOrder(order domain.ScheduleOrder) (domain.ScheduleOrder, error) {
	if order == "" {
		return domain.OrderNewest, nil
	}
	if !order.IsValid() {
		return "", apperrors.NewValidationError("unknown sort order " + string(order))
	}
	return order, nil
}
