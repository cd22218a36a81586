package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/job_tracker_app/internal/apperrors"
	"github.com/SscSPs/job_tracker_app/internal/core/domain"
	portssvc "github.com/SscSPs/job_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/job_tracker_app/internal/platform/metrics"
)

// DemoUserPolicy schedules reminder jobs for everyone except the shared demo
// identity, whose data is reset periodically.
type DemoUserPolicy struct {
	DemoEmail string
}

var _ portssvc.SchedulingPolicy = DemoUserPolicy{}

func (p DemoUserPolicy) ShouldSchedule(user domain.User) bool {
	if p.DemoEmail == "" {
		return true
	}
	return !strings.EqualFold(strings.TrimSpace(user.Email), strings.TrimSpace(p.DemoEmail))
}

// FireDelay is how long from now a reminder's job waits. Past alarms fire at once.
func FireDelay(alarm, now time.Time) time.Duration {
	if d := alarm.Sub(now); d > 0 {
		return d
	}
	return 0
}

// reminderScheduler wraps the job facility with the logging and metrics every
// caller wants. Enqueue failures come back as ErrSchedulingFailed; cancel
// failures are only logged.
type reminderScheduler struct {
	base      *BaseService
	scheduler portssvc.JobScheduler
}

// enqueue returns the new job handle.
func (r reminderScheduler) enqueue(ctx context.Context, reminder domain.Reminder) (*string, error) {
	delay := FireDelay(reminder.AlarmDate, r.base.now())
	jobID, err := r.scheduler.Enqueue(ctx, reminder.ReminderID, delay)
	if err != nil {
		metrics.RecordSchedulingFailure("enqueue")
		r.base.LogError(ctx, err, "Failed to enqueue reminder job",
			slog.String("reminder_id", reminder.ReminderID),
			slog.Duration("delay", delay))
		return nil, apperrors.NewSchedulingError("failed to enqueue reminder job", err)
	}
	r.base.LogDebug(ctx, "Reminder job enqueued",
		slog.String("reminder_id", reminder.ReminderID),
		slog.String("job_id", jobID),
		slog.Duration("delay", delay))
	return &jobID, nil
}

// cancel removes the job; an absent job is fine.
func (r reminderScheduler) cancel(ctx context.Context, reminderID string, jobID *string) {
	if jobID == nil {
		return
	}
	if err := r.scheduler.Cancel(ctx, *jobID); err != nil {
		metrics.RecordSchedulingFailure("cancel")
		r.base.LogError(ctx, err, "Failed to cancel reminder job",
			slog.String("reminder_id", reminderID),
			slog.String("job_id", *jobID))
	}
}
