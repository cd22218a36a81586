package memory

import (
	"context"
	"sort"
	"time"

	"github.com/SscSPs/job_tracker_app/internal/apperrors"
	"github.com/SscSPs/job_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/job_tracker_app/internal/core/ports/repositories"
)

var _ portsrepo.InterviewRepositoryFacade = (*Store)(nil)

func (s *state) FindInterviewForEntry(ctx context.Context, applicationID, entryID string, occurredAt time.Time) (*domain.Interview, error) {
	var fallback *domain.Interview
	for _, iv := range s.interviews {
		if iv.ApplicationID != applicationID {
			continue
		}
		if iv.LedgerEntryID != nil {
			if *iv.LedgerEntryID == entryID {
				iv.LedgerEntryID = copyString(iv.LedgerEntryID)
				return &iv, nil
			}
			continue
		}
		if iv.ScheduledAt.Equal(occurredAt) && (fallback == nil || iv.CreatedAt.Before(fallback.CreatedAt)) {
			found := iv
			fallback = &found
		}
	}
	return fallback, nil
}

func (s *state) FindInterviewByID(ctx context.Context, userID, interviewID string) (*domain.Interview, error) {
	iv, ok := s.interviews[interviewID]
	if !ok {
		return nil, apperrors.NewNotFoundError("interview not found")
	}
	if app, ok := s.applications[iv.ApplicationID]; !ok || app.UserID != userID {
		return nil, apperrors.NewNotFoundError("interview not found")
	}
	iv.LedgerEntryID = copyString(iv.LedgerEntryID)
	return &iv, nil
}

func (s *state) ListInterviews(ctx context.Context, applicationID string) ([]domain.Interview, error) {
	var out []domain.Interview
	for _, iv := range s.interviews {
		if iv.ApplicationID == applicationID {
			iv.LedgerEntryID = copyString(iv.LedgerEntryID)
			out = append(out, iv)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ScheduledAt.Equal(out[j].ScheduledAt) {
			return out[i].ScheduledAt.Before(out[j].ScheduledAt)
		}
		return out[i].InterviewID < out[j].InterviewID
	})
	return out, nil
}

func (s *state) SaveInterview(ctx context.Context, interview domain.Interview) error {
	if err := s.faults.check("SaveInterview"); err != nil {
		return err
	}
	if _, ok := s.applications[interview.ApplicationID]; !ok {
		return apperrors.NewNotFoundError("application not found")
	}
	if _, exists := s.interviews[interview.InterviewID]; exists {
		return apperrors.ErrDuplicate
	}
	interview.LedgerEntryID = copyString(interview.LedgerEntryID)
	s.interviews[interview.InterviewID] = interview
	return nil
}

func (s *state) UpdateInterview(ctx context.Context, interview domain.Interview) error {
	if err := s.faults.check("UpdateInterview"); err != nil {
		return err
	}
	stored, ok := s.interviews[interview.InterviewID]
	if !ok {
		return apperrors.NewNotFoundError("interview not found")
	}
	stored.LedgerEntryID = copyString(interview.LedgerEntryID)
	stored.ScheduledAt = interview.ScheduledAt
	stored.Notes = interview.Notes
	stored.Status = interview.Status
	stored.UpdatedAt = interview.UpdatedAt
	s.interviews[interview.InterviewID] = stored
	return nil
}

func (s *state) DeleteInterview(ctx context.Context, interviewID string) error {
	if err := s.faults.check("DeleteInterview"); err != nil {
		return err
	}
	if _, ok := s.interviews[interviewID]; !ok {
		return apperrors.NewNotFoundError("interview not found")
	}
	delete(s.interviews, interviewID)
	return nil
}

// Store-level readers, outside any lifecycle transaction.

func (m *Store) FindInterviewForEntry(ctx context.Context, applicationID, entryID string, occurredAt time.Time) (iv *domain.Interview, err error) {
	m.locked(func(s *state) { iv, err = s.FindInterviewForEntry(ctx, applicationID, entryID, occurredAt) })
	return iv, err
}

func (m *Store) FindInterviewByID(ctx context.Context, userID, interviewID string) (iv *domain.Interview, err error) {
	m.locked(func(s *state) { iv, err = s.FindInterviewByID(ctx, userID, interviewID) })
	return iv, err
}

func (m *Store) ListInterviews(ctx context.Context, applicationID string) (out []domain.Interview, err error) {
	m.locked(func(s *state) { out, err = s.ListInterviews(ctx, applicationID) })
	return out, err
}

func (m *Store) ListUserInterviews(ctx context.Context, userID string, filter domain.InterviewFilter) ([]domain.Interview, error) {
	var out []domain.Interview
	m.locked(func(s *state) {
		for _, iv := range s.interviews {
			app, ok := s.applications[iv.ApplicationID]
			if !ok || app.UserID != userID {
				continue
			}
			if filter.Status != "" && iv.Status != filter.Status {
				continue
			}
			iv.LedgerEntryID = copyString(iv.LedgerEntryID)
			out = append(out, iv)
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ScheduledAt.Equal(out[j].ScheduledAt) {
			if filter.Order == domain.OrderOldest {
				return out[i].ScheduledAt.Before(out[j].ScheduledAt)
			}
			return out[i].ScheduledAt.After(out[j].ScheduledAt)
		}
		return out[i].InterviewID < out[j].InterviewID
	})
	return out, nil
}
