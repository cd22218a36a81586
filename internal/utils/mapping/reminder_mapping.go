package mapping

import (
	"github.com/SscSPs/job_tracker_app/internal/core/domain"
	"github.com/SscSPs/job_tracker_app/internal/models"
)

// ToModelReminder converts a domain Reminder to a model Reminder
func ToModelReminder(d domain.Reminder) models.Reminder {
	return models.Reminder{
		ReminderID:    d.ReminderID,
		ApplicationID: d.ApplicationID,
		UserID:        d.UserID,
		AlarmDate:     d.AlarmDate,
		Message:       d.Message,
		Status:        string(d.Status),
		JobID:         ToNullString(d.JobID),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// ToDomainReminder converts a model Reminder to a domain Reminder
func ToDomainReminder(m models.Reminder) domain.Reminder {
	return domain.Reminder{
		ReminderID:    m.ReminderID,
		ApplicationID: m.ApplicationID,
		UserID:        m.UserID,
		AlarmDate:     m.AlarmDate.UTC(),
		Message:       m.Message,
		Status:        domain.ReminderStatus(m.Status),
		JobID:         FromNullString(m.JobID),
		CreatedAt:     m.CreatedAt.UTC(),
		UpdatedAt:     m.UpdatedAt.UTC(),
	}
}
