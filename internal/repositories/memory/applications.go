package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/job_tracker_app/internal/apperrors"
	"github.com/SscSPs/job_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/job_tracker_app/internal/core/ports/repositories"
)

var _ portsrepo.ApplicationRepositoryFacade = (*Store)(nil)

// hydrate returns a copy of app with its company and ledger attached.
func (s *state) hydrate(app domain.Application) domain.Application {
	app.FileURLs = append([]string(nil), app.FileURLs...)
	if c, ok := s.companies[app.CompanyID]; ok {
		app.Company = &c
	}
	app.LedgerEntries = s.ledgerOf(app.ApplicationID)
	return app
}

func (s *state) ownedApplication(userID, applicationID string) (domain.Application, error) {
	app, ok := s.applications[applicationID]
	if !ok || app.UserID != userID {
		return domain.Application{}, apperrors.NewNotFoundError("application not found")
	}
	return app, nil
}

func (m *Store) FindApplicationByID(ctx context.Context, userID, applicationID string) (*domain.Application, error) {
	var (
		app domain.Application
		err error
	)
	m.locked(func(s *state) {
		if app, err = s.ownedApplication(userID, applicationID); err == nil {
			app = s.hydrate(app)
		}
	})
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (m *Store) ListApplicationsWithLedger(ctx context.Context, userID string, filter domain.ApplicationFilter) ([]domain.Application, error) {
	var apps []domain.Application
	m.locked(func(s *state) {
		for _, app := range s.applications {
			if app.UserID != userID || !s.matches(app, filter) {
				continue
			}
			apps = append(apps, s.hydrate(app))
		}
	})
	sort.Slice(apps, func(i, j int) bool {
		if !apps[i].CreatedAt.Equal(apps[j].CreatedAt) {
			return apps[i].CreatedAt.Before(apps[j].CreatedAt)
		}
		return apps[i].ApplicationID < apps[j].ApplicationID
	})
	return apps, nil
}

// matches applies the search term to job title and company name, and the
// status filter to the cached status.
func (s *state) matches(app domain.Application, filter domain.ApplicationFilter) bool {
	if len(filter.Statuses) > 0 {
		found := false
		for _, st := range filter.Statuses {
			if app.Status == st {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	term := strings.ToLower(strings.TrimSpace(filter.Search))
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(app.JobTitle), term) {
		return true
	}
	c, ok := s.companies[app.CompanyID]
	return ok && strings.Contains(strings.ToLower(c.Name), term)
}

func (s *state) LockApplication(ctx context.Context, userID, applicationID string) (*domain.Application, error) {
	if err := s.faults.check("LockApplication"); err != nil {
		return nil, err
	}
	app, err := s.ownedApplication(userID, applicationID)
	if err != nil {
		return nil, err
	}
	app = s.hydrate(app)
	return &app, nil
}

func (s *state) SaveApplication(ctx context.Context, app domain.Application) error {
	if err := s.faults.check("SaveApplication"); err != nil {
		return err
	}
	if _, exists := s.applications[app.ApplicationID]; exists {
		return apperrors.ErrDuplicate
	}
	if _, ok := s.companies[app.CompanyID]; !ok {
		return apperrors.NewNotFoundError("company not found")
	}
	app.Company = nil
	app.LedgerEntries = nil
	app.FileURLs = append([]string(nil), app.FileURLs...)
	s.applications[app.ApplicationID] = app
	return nil
}

func (s *state) UpdateApplicationDetails(ctx context.Context, app domain.Application) error {
	if err := s.faults.check("UpdateApplicationDetails"); err != nil {
		return err
	}
	stored, ok := s.applications[app.ApplicationID]
	if !ok {
		return apperrors.NewNotFoundError("application not found")
	}
	if _, ok := s.companies[app.CompanyID]; !ok {
		return apperrors.NewNotFoundError("company not found")
	}
	stored.CompanyID = app.CompanyID
	stored.JobTitle = app.JobTitle
	stored.JobLink = app.JobLink
	stored.JobDescription = app.JobDescription
	stored.WorkLocation = app.WorkLocation
	stored.Priority = app.Priority
	stored.Notes = app.Notes
	stored.Favorited = app.Favorited
	stored.FileURLs = append([]string(nil), app.FileURLs...)
	stored.LastUpdatedAt = app.LastUpdatedAt
	stored.LastUpdatedBy = app.LastUpdatedBy
	s.applications[app.ApplicationID] = stored
	return nil
}

func (s *state) UpdateApplicationStatus(ctx context.Context, applicationID string, status domain.ApplicationStatus, updatedBy string, updatedAt time.Time) error {
	if err := s.faults.check("UpdateApplicationStatus"); err != nil {
		return err
	}
	stored, ok := s.applications[applicationID]
	if !ok {
		return apperrors.NewNotFoundError("application not found")
	}
	stored.Status = status
	stored.LastUpdatedAt = updatedAt
	stored.LastUpdatedBy = updatedBy
	s.applications[applicationID] = stored
	return nil
}

func (s *state) DeleteApplication(ctx context.Context, applicationID string) error {
	if err := s.faults.check("DeleteApplication"); err != nil {
		return err
	}
	if _, ok := s.applications[applicationID]; !ok {
		return apperrors.NewNotFoundError("application not found")
	}
	delete(s.applications, applicationID)
	for id, e := range s.entries {
		if e.ApplicationID == applicationID {
			delete(s.entries, id)
		}
	}
	for id, iv := range s.interviews {
		if iv.ApplicationID == applicationID {
			delete(s.interviews, id)
		}
	}
	for id, r := range s.reminders {
		if r.ApplicationID == applicationID {
			delete(s.reminders, id)
		}
	}
	return nil
}
