package models

import (
	"database/sql"
	"time"
)

// Reminder is a row of the reminders table. UserID is not stored; it is
// joined in from the owning application.
type Reminder struct {
	ReminderID    string         `db:"reminder_id"`
	ApplicationID string         `db:"application_id"`
	UserID        string         `db:"user_id"`
	AlarmDate     time.Time      `db:"alarm_date"`
	Message       string         `db:"message"`
	Status        string         `db:"status"`
	JobID         sql.NullString `db:"job_id"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}
