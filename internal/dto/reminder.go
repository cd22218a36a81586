package dto

import (
	"time"

	"github.com/SscSPs/job_tracker_app/internal/core/domain"
)

// CreateReminderRequest defines the data needed to create a reminder.
// Status defaults to ACTIVE.
type CreateReminderRequest struct {
	AlarmDate time.Time              `json:"alarmDate" binding:"required"`
	Message   string                 `json:"message" binding:"required,max=500"`
	Status    *domain.ReminderStatus `json:"status" binding:"omitempty,reminder_status"`
}

// UpdateReminderRequest defines the editable fields of a reminder.
type UpdateReminderRequest struct {
	AlarmDate *time.Time             `json:"alarmDate"`
	Message   *string                `json:"message" binding:"omitempty,min=1,max=500"`
	Status    *domain.ReminderStatus `json:"status" binding:"omitempty,reminder_status"`
}

// ListUserRemindersParams defines the query parameters of the reminder list
// across all of a user's applications.
type ListUserRemindersParams struct {
	SortBy       domain.ScheduleOrder `form:"sortBy" binding:"omitempty,schedule_order"`
	StatusFilter string               `form:"statusFilter" binding:"omitempty,oneof=ALL ACTIVE STOPPED DONE"`
}

// ReminderResponse defines the data returned for a reminder. Scheduled is
// false for an ACTIVE reminder that has no job behind it; Warning says why
// when the last write failed to schedule one.
type ReminderResponse struct {
	ReminderID    string                `json:"reminderID"`
	ApplicationID string                `json:"applicationID"`
	AlarmDate     time.Time             `json:"alarmDate"`
	Message       string                `json:"message"`
	Status        domain.ReminderStatus `json:"status"`
	Scheduled     bool                  `json:"scheduled"`
	Warning       string                `json:"warning,omitempty"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

const schedulingWarning = "reminder saved but not actively scheduled; update it to retry"

func ToReminderResponse(r *domain.Reminder) ReminderResponse {
	return ReminderResponse{
		ReminderID:    r.ReminderID,
		ApplicationID: r.ApplicationID,
		AlarmDate:     r.AlarmDate,
		Message:       r.Message,
		Status:        r.Status,
		Scheduled:     r.IsScheduled(),
		UpdatedAt:     r.UpdatedAt,
	}
}

// ToReminderResultResponse converts the result of a reminder write.
func ToReminderResultResponse(res *domain.ReminderResult) ReminderResponse {
	resp := ToReminderResponse(&res.Reminder)
	if res.SchedulingFailed() {
		resp.Scheduled = false
		resp.Warning = schedulingWarning
	}
	return resp
}

func ToReminderResponses(rs []domain.Reminder) []ReminderResponse {
	out := make([]ReminderResponse, len(rs))
	for i := range rs {
		out[i] = ToReminderResponse(&rs[i])
	}
	return out
}
