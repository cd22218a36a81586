package services

import (
	"context"
	"time"

	"github.com/SscSPs/job_tracker_app/internal/core/domain"
	"github.com/SscSPs/job_tracker_app/internal/dto"
)

// ReminderSvcFacade defines reminder operations. A failure to schedule the
// delayed job does not fail the write; it is reported on the result.
type ReminderSvcFacade interface {
	ListReminders(ctx context.Context, userID, applicationID string) ([]domain.Reminder, error)
	ListUserReminders(ctx context.Context, userID string, params dto.ListUserRemindersParams) ([]domain.Reminder, error)
	CreateReminder(ctx context.Context, userID, applicationID string, req dto.CreateReminderRequest) (*domain.ReminderResult, error)
	UpdateReminder(ctx context.Context, userID, reminderID string, req dto.UpdateReminderRequest) (*domain.ReminderResult, error)
	DeleteReminder(ctx context.Context, userID, reminderID string) error
}

// ReminderDispatcherSvc handles reminder jobs when they fire.
type ReminderDispatcherSvc interface {
	// HandleReminderFired marks the reminder DONE and notifies its owner. A job
	// whose reminder is no longer ACTIVE, or whose handle is stale, is a no-op.
	HandleReminderFired(ctx context.Context, job domain.ReminderJob) error
}

// JobScheduler is the delayed job facility reminders are scheduled on.
type JobScheduler interface {
	// Enqueue schedules a job for reminderID to fire after delay and returns its handle.
	Enqueue(ctx context.Context, reminderID string, delay time.Duration) (string, error)

	// Cancel removes a pending job. Cancelling an unknown or already fired job is not an error.
	Cancel(ctx context.Context, jobID string) error
}

// Notifier delivers a fired reminder to its owner.
type Notifier interface {
	NotifyReminder(ctx context.Context, notice domain.ReminderNotice) error
}

// SchedulingPolicy decides whether reminder jobs are scheduled for a user.
type SchedulingPolicy interface {
	ShouldSchedule(user domain.User) bool
}
