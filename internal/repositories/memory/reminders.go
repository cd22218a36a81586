package memory

import (
	"context"
	"sort"
	"time"

	"github.com/SscSPs/job_tracker_app/internal/apperrors"
	"github.com/SscSPs/job_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/job_tracker_app/internal/core/ports/repositories"
)

var _ portsrepo.ReminderRepositoryFacade = (*Store)(nil)

func (m *Store) FindReminderByID(ctx context.Context, userID, reminderID string) (*domain.Reminder, error) {
	var (
		r  domain.Reminder
		ok bool
	)
	m.locked(func(s *state) {
		r, ok = s.reminders[reminderID]
		if ok {
			app, found := s.applications[r.ApplicationID]
			ok = found && app.UserID == userID
		}
	})
	if !ok {
		return nil, apperrors.NewNotFoundError("reminder not found")
	}
	r.JobID = copyString(r.JobID)
	return &r, nil
}

func (m *Store) ListReminders(ctx context.Context, applicationID string) ([]domain.Reminder, error) {
	var out []domain.Reminder
	m.locked(func(s *state) {
		for _, r := range s.reminders {
			if r.ApplicationID == applicationID {
				r.JobID = copyString(r.JobID)
				out = append(out, r)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].AlarmDate.Equal(out[j].AlarmDate) {
			return out[i].AlarmDate.Before(out[j].AlarmDate)
		}
		return out[i].ReminderID < out[j].ReminderID
	})
	return out, nil
}

func (m *Store) ListUserReminders(ctx context.Context, userID string, filter domain.ReminderFilter) ([]domain.Reminder, error) {
	var out []domain.Reminder
	m.locked(func(s *state) {
		for _, r := range s.reminders {
			app, ok := s.applications[r.ApplicationID]
			if !ok || app.UserID != userID {
				continue
			}
			if filter.Status != "" && r.Status != filter.Status {
				continue
			}
			r.JobID = copyString(r.JobID)
			out = append(out, r)
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].AlarmDate.Equal(out[j].AlarmDate) {
			if filter.Order == domain.OrderOldest {
				return out[i].AlarmDate.Before(out[j].AlarmDate)
			}
			return out[i].AlarmDate.After(out[j].AlarmDate)
		}
		return out[i].ReminderID < out[j].ReminderID
	})
	return out, nil
}

// FindReminderNotice tolerates a missing user row; the notice then carries
// no address.
func (m *Store) FindReminderNotice(ctx context.Context, reminderID string) (*domain.ReminderNotice, error) {
	var (
		notice domain.ReminderNotice
		ok     bool
	)
	m.locked(func(s *state) {
		var r domain.Reminder
		if r, ok = s.reminders[reminderID]; !ok {
			return
		}
		r.JobID = copyString(r.JobID)
		notice.Reminder = r
		if app, found := s.applications[r.ApplicationID]; found {
			notice.JobTitle = app.JobTitle
			if c, found := s.companies[app.CompanyID]; found {
				notice.CompanyName = c.Name
			}
		}
		if u, found := s.users[r.UserID]; found {
			notice.UserEmail = u.Email
			notice.UserName = u.Name
		}
	})
	if !ok {
		return nil, apperrors.NewNotFoundError("reminder not found")
	}
	return &notice, nil
}

func (m *Store) SaveReminder(ctx context.Context, reminder domain.Reminder) error {
	if err := m.faults.check("SaveReminder"); err != nil {
		return err
	}
	var err error
	m.locked(func(s *state) {
		if _, ok := s.applications[reminder.ApplicationID]; !ok {
			err = apperrors.NewNotFoundError("application not found")
			return
		}
		if _, exists := s.reminders[reminder.ReminderID]; exists {
			err = apperrors.ErrDuplicate
			return
		}
		reminder.JobID = copyString(reminder.JobID)
		s.reminders[reminder.ReminderID] = reminder
	})
	return err
}

func (m *Store) UpdateReminder(ctx context.Context, reminder domain.Reminder) error {
	if err := m.faults.check("UpdateReminder"); err != nil {
		return err
	}
	var err error
	m.locked(func(s *state) {
		stored, ok := s.reminders[reminder.ReminderID]
		if !ok {
			err = apperrors.NewNotFoundError("reminder not found")
			return
		}
		stored.AlarmDate = reminder.AlarmDate
		stored.Message = reminder.Message
		stored.Status = reminder.Status
		stored.UpdatedAt = reminder.UpdatedAt
		s.reminders[reminder.ReminderID] = stored
	})
	return err
}

func (m *Store) SetReminderJobID(ctx context.Context, reminderID string, jobID *string, updatedAt time.Time) error {
	if err := m.faults.check("SetReminderJobID"); err != nil {
		return err
	}
	var err error
	m.locked(func(s *state) {
		stored, ok := s.reminders[reminderID]
		if !ok {
			err = apperrors.NewNotFoundError("reminder not found")
			return
		}
		stored.JobID = copyString(jobID)
		stored.UpdatedAt = updatedAt
		s.reminders[reminderID] = stored
	})
	return err
}

func (m *Store) MarkReminderFired(ctx context.Context, reminderID, jobID string, firedAt time.Time) (bool, error) {
	if err := m.faults.check("MarkReminderFired"); err != nil {
		return false, err
	}
	var marked bool
	m.locked(func(s *state) {
		stored, ok := s.reminders[reminderID]
		if !ok || stored.Status != domain.ReminderActive || stored.JobID == nil || *stored.JobID != jobID {
			return
		}
		stored.Status = domain.ReminderDone
		stored.UpdatedAt = firedAt
		s.reminders[reminderID] = stored
		marked = true
	})
	return marked, nil
}

func (m *Store) DeleteReminder(ctx context.Context, reminderID string) error {
	if err := m.faults.check("DeleteReminder"); err != nil {
		return err
	}
	var err error
	m.locked(func(s *state) {
		if _, ok := s.reminders[reminderID]; !ok {
			err = apperrors.NewNotFoundError("reminder not found")
			return
		}
		delete(s.reminders, reminderID)
	})
	return err
}
