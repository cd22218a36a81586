package domain

import "time"

// ReminderStatus is the state of a reminder.
type ReminderStatus string

const (
	ReminderActive  ReminderStatus = "ACTIVE"
	ReminderStopped ReminderStatus = "STOPPED"
	ReminderDone    ReminderStatus = "DONE"
)

// IsValid reports whether s is a known reminder status.
func (s ReminderStatus) IsValid() bool {
	return s == ReminderActive || s == ReminderStopped || s == ReminderDone
}

// Reminder is a user-set alarm on an application. JobID identifies the
// delayed job that will fire it; nil means nothing is scheduled.
type Reminder struct {
	ReminderID    string         `json:"reminderID"`
	ApplicationID string         `json:"applicationID"`
	UserID        string         `json:"userID"` // owner, resolved through the application
	AlarmDate     time.Time      `json:"alarmDate"`
	Message       string         `json:"message"`
	Status        ReminderStatus `json:"status"`
	JobID         *string        `json:"jobID,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// IsScheduled reports whether an ACTIVE reminder has a live job behind it.
func (r Reminder) IsScheduled() bool {
	return r.Status == ReminderActive && r.JobID != nil
}

// ReminderResult is returned by reminder mutations. SchedulingErr is set when
// the reminder was persisted but its job could not be enqueued.
type ReminderResult struct {
	Reminder      Reminder
	SchedulingErr error
}

func (r ReminderResult) SchedulingFailed() bool {
	return r.SchedulingErr != nil
}

// ReminderJob is the payload of a delayed reminder job.
type ReminderJob struct {
	JobID      string `json:"jobID"`
	ReminderID string `json:"reminderID"`
	Attempt    int    `json:"attempt,omitempty"`
}

// ReminderNotice carries what the notifier needs once a reminder fires.
type ReminderNotice struct {
	Reminder    Reminder
	UserEmail   string
	UserName    string
	JobTitle    string
	CompanyName string
}

// ReminderFilter narrows a user-wide reminder listing. An empty Status
// matches every reminder.
type ReminderFilter struct {
	Status ReminderStatus
	Order  ScheduleOrder
}
