package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/job_tracker_app/internal/core/domain"
)

// ReminderReader defines read operations for reminder data.
type ReminderReader interface {
	// FindReminderByID retrieves a reminder of one of the user's applications.
	FindReminderByID(ctx context.Context, userID, reminderID string) (*domain.Reminder, error)

	// ListReminders returns the application's reminders ordered by AlarmDate.
	ListReminders(ctx context.Context, applicationID string) ([]domain.Reminder, error)

	// ListUserReminders returns the reminders of all the user's applications
	// matching filter, ordered by AlarmDate.
	ListUserReminders(ctx context.Context, userID string, filter domain.ReminderFilter) ([]domain.Reminder, error)

	// FindReminderNotice loads the reminder together with what its notification needs.
	FindReminderNotice(ctx context.Context, reminderID string) (*domain.ReminderNotice, error)
}

// ReminderWriter defines write operations for reminder data.
type ReminderWriter interface {
	SaveReminder(ctx context.Context, reminder domain.Reminder) error

	// UpdateReminder writes alarmDate, message and status.
	UpdateReminder(ctx context.Context, reminder domain.Reminder) error

	// SetReminderJobID records the job handle; nil clears it.
	SetReminderJobID(ctx context.Context, reminderID string, jobID *string, updatedAt time.Time) error

	// MarkReminderFired moves an ACTIVE reminder whose job handle equals jobID to
	// DONE. It reports false, without error, when nothing matched.
	MarkReminderFired(ctx context.Context, reminderID, jobID string, firedAt time.Time) (bool, error)

	DeleteReminder(ctx context.Context, reminderID string) error
}

// ReminderRepositoryFacade combines all reminder repository interfaces.
type ReminderRepositoryFacade interface {
	ReminderReader
	ReminderWriter
}
