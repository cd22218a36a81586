package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/SscSPs/job_tracker_app/internal/apperrors"
	"github.com/SscSPs/job_tracker_app/internal/core/domain"
	"github.com/SscSPs/job_tracker_app/internal/core/lifecycle"
	portsrepo "github.com/SscSPs/job_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/job_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/job_tracker_app/internal/dto"
	"github.com/SscSPs/job_tracker_app/internal/utils/pagination"
	"github.com/google/uuid"
)

type applicationService struct {
	BaseService
	appRepo      portsrepo.ApplicationRepositoryFacade
	reminderRepo portsrepo.ReminderRepositoryFacade
	sync         lifecycleSync
	jobs         reminderScheduler
}

// NewApplicationService creates a new application service. scheduler is used
// to cancel reminder jobs of deleted applications.
func NewApplicationService(
	appRepo portsrepo.ApplicationRepositoryFacade,
	reminderRepo portsrepo.ReminderRepositoryFacade,
	scheduler portssvc.JobScheduler,
	options ...Option,
) portssvc.ApplicationSvcFacade {
	s := &applicationService{BaseService: newBaseService(), appRepo: appRepo, reminderRepo: reminderRepo}
	s.apply(options)
	s.sync = lifecycleSync{base: &s.BaseService}
	s.jobs = reminderScheduler{base: &s.BaseService, scheduler: scheduler}
	return s
}

var _ portssvc.ApplicationSvcFacade = (*applicationService)(nil)

func (s *applicationService) CreateApplication(ctx context.Context, userID string, req dto.CreateApplicationRequest) (*domain.Application, error) {
	status := req.Status
	if status == "" {
		status = domain.StatusDraft
	}
	if !status.IsValid() {
		return nil, apperrors.NewValidationError("unknown status " + string(status))
	}
	companyName := strings.TrimSpace(req.CompanyName)
	if strings.TrimSpace(req.JobTitle) == "" || companyName == "" {
		return nil, apperrors.NewValidationError("jobTitle and companyName are required")
	}

	now := s.now()
	occurredAt := now
	if req.StatusDate != nil && !req.StatusDate.IsZero() {
		occurredAt = req.StatusDate.UTC()
	}
	audit := domain.AuditFields{CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID}

	app := domain.Application{
		ApplicationID:  uuid.NewString(),
		UserID:         userID,
		JobTitle:       strings.TrimSpace(req.JobTitle),
		JobLink:        req.JobLink,
		JobDescription: req.JobDescription,
		WorkLocation:   req.WorkLocation,
		Priority:       req.Priority,
		Notes:          req.Notes,
		Favorited:      req.Favorited,
		FileURLs:       req.FileURLs,
		Status:         status,
		AuditFields:    audit,
	}
	if app.WorkLocation == "" {
		app.WorkLocation = domain.WorkLocationUnsure
	}
	if app.Priority == "" {
		app.Priority = domain.PriorityMedium
	}

	var out syncOutcome
	err := s.appRepo.WithinLifecycleTx(ctx, func(ctx context.Context, tx portsrepo.LifecycleTx) error {
		company, err := tx.UpsertCompanyByName(ctx, domain.Company{
			CompanyID:   uuid.NewString(),
			UserID:      userID,
			Name:        companyName,
			AuditFields: audit,
		})
		if err != nil {
			return fmt.Errorf("failed to resolve company: %w", err)
		}
		app.CompanyID = company.CompanyID
		app.Company = company

		if err := tx.SaveApplication(ctx, app); err != nil {
			return fmt.Errorf("failed to save application: %w", err)
		}
		entry := &domain.LedgerEntry{
			EntryID:       uuid.NewString(),
			ApplicationID: app.ApplicationID,
			Status:        status,
			OccurredAt:    occurredAt,
			CreatedAt:     now,
		}
		if err := s.sync.createEntry(ctx, tx, &app, entry, &out); err != nil {
			return err
		}
		app.LedgerEntries = []domain.LedgerEntry{*entry}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create application", slog.String("job_title", app.JobTitle))
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	out.record()

	s.LogInfo(ctx, "Application created",
		slog.String("application_id", app.ApplicationID),
		slog.String("status", string(app.Status)))
	return &app, nil
}

func (s *applicationService) GetApplication(ctx context.Context, userID, applicationID string) (*domain.Application, error) {
	app, err := s.appRepo.FindApplicationByID(ctx, userID, applicationID)
	if err != nil {
		s.LogDebug(ctx, "Application lookup failed",
			slog.String("application_id", applicationID),
			slog.String("error", err.Error()))
		return nil, err
	}
	return app, nil
}

func (s *applicationService) UpdateApplication(ctx context.Context, userID, applicationID string, req dto.UpdateApplicationRequest) (*domain.Application, error) {
	err := s.appRepo.WithinLifecycleTx(ctx, func(ctx context.Context, tx portsrepo.LifecycleTx) error {
		app, err := tx.LockApplication(ctx, userID, applicationID)
		if err != nil {
			return err
		}
		now := s.now()
		if req.JobTitle != nil {
			app.JobTitle = strings.TrimSpace(*req.JobTitle)
		}
		if req.JobLink != nil {
			app.JobLink = *req.JobLink
		}
		if req.JobDescription != nil {
			app.JobDescription = *req.JobDescription
		}
		if req.WorkLocation != nil {
			app.WorkLocation = *req.WorkLocation
		}
		if req.Priority != nil {
			app.Priority = *req.Priority
		}
		if req.Notes != nil {
			app.Notes = *req.Notes
		}
		if req.Favorited != nil {
			app.Favorited = *req.Favorited
		}
		if req.FileURLs != nil {
			app.FileURLs = req.FileURLs
		}
		if req.CompanyName != nil {
			name := strings.TrimSpace(*req.CompanyName)
			if name == "" {
				return apperrors.NewValidationError("companyName cannot be empty")
			}
			company, err := tx.UpsertCompanyByName(ctx, domain.Company{
				CompanyID: uuid.NewString(),
				UserID:    userID,
				Name:      name,
				AuditFields: domain.AuditFields{
					CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID,
				},
			})
			if err != nil {
				return fmt.Errorf("failed to resolve company: %w", err)
			}
			app.CompanyID = company.CompanyID
		}
		if app.JobTitle == "" {
			return apperrors.NewValidationError("jobTitle cannot be empty")
		}
		app.LastUpdatedAt = now
		app.LastUpdatedBy = userID
		return tx.UpdateApplicationDetails(ctx, *app)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update application", slog.String("application_id", applicationID))
		return nil, fmt.Errorf("failed to update application: %w", err)
	}

	s.LogInfo(ctx, "Application updated", slog.String("application_id", applicationID))
	return s.appRepo.FindApplicationByID(ctx, userID, applicationID)
}

func (s *applicationService) DeleteApplication(ctx context.Context, userID, applicationID string) error {
	if _, err := s.appRepo.FindApplicationByID(ctx, userID, applicationID); err != nil {
		return err
	}
	reminders, err := s.reminderRepo.ListReminders(ctx, applicationID)
	if err != nil {
		return fmt.Errorf("failed to list reminders of application: %w", err)
	}

	err = s.appRepo.WithinLifecycleTx(ctx, func(ctx context.Context, tx portsrepo.LifecycleTx) error {
		if _, err := tx.LockApplication(ctx, userID, applicationID); err != nil {
			return err
		}
		return tx.DeleteApplication(ctx, applicationID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete application", slog.String("application_id", applicationID))
		return fmt.Errorf("failed to delete application: %w", err)
	}

	for _, r := range reminders {
		s.jobs.cancel(ctx, r.ReminderID, r.JobID)
	}

	s.LogInfo(ctx, "Application deleted",
		slog.String("application_id", applicationID),
		slog.Int("reminders_cancelled", len(reminders)))
	return nil
}

func (s *applicationService) ListApplications(ctx context.Context, userID string, params dto.ListApplicationsParams) (*dto.ListApplicationsResponse, error) {
	for _, st := range params.Statuses {
		if !st.IsValid() {
			return nil, apperrors.NewValidationError("unknown status filter " + string(st))
		}
	}
	mode := params.Sort
	if mode == "" {
		mode = domain.SortDateNew
	}

	apps, err := s.appRepo.ListApplicationsWithLedger(ctx, userID, domain.ApplicationFilter{
		Search:   strings.TrimSpace(params.Search),
		Statuses: params.Statuses,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list applications")
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	sorted, err := sortApplications(apps, mode)
	if err != nil {
		return nil, err
	}
	page := pagination.Normalize(params.Page, params.PageSize)
	pageItems := pagination.Slice(sorted, page)

	s.LogDebug(ctx, "Applications listed",
		slog.Int("total", len(sorted)),
		slog.Int("page", page.Number),
		slog.String("sort", string(mode)))
	return &dto.ListApplicationsResponse{
		Applications: dto.ToApplicationResponses(pageItems),
		Page:         page.Number,
		PageSize:     page.Size,
		Total:        len(sorted),
	}, nil
}

// sortApplications orders apps by mode. Date modes use the lifecycle-aware
// ordering. ALPHABETICAL compares job title then company name; PRIORITY
// compares rank (HIGH first) then the same keys. ApplicationID breaks what
// is left.
func sortApplications(apps []domain.Application, mode domain.SortMode) ([]domain.Application, error) {
	switch mode {
	case domain.SortDateNew:
		return lifecycle.SortByDate(apps, lifecycle.NewestFirst), nil
	case domain.SortDateOld:
		return lifecycle.SortByDate(apps, lifecycle.OldestFirst), nil
	case domain.SortAlphabetical:
		sorted := append([]domain.Application(nil), apps...)
		sort.SliceStable(sorted, func(i, j int) bool {
			return alphabeticalLess(sorted[i], sorted[j])
		})
		return sorted, nil
	case domain.SortPriority:
		sorted := append([]domain.Application(nil), apps...)
		sort.SliceStable(sorted, func(i, j int) bool {
			a, b := sorted[i].Priority.Rank(), sorted[j].Priority.Rank()
			if a != b {
				return a > b
			}
			return alphabeticalLess(sorted[i], sorted[j])
		})
		return sorted, nil
	}
	return nil, apperrors.NewValidationError("unknown sort mode " + string(mode))
}

func alphabeticalLess(a, b domain.Application) bool {
	if at, bt := strings.ToLower(a.JobTitle), strings.ToLower(b.JobTitle); at != bt {
		return at < bt
	}
	if ac, bc := companyKey(a), companyKey(b); ac != bc {
		return ac < bc
	}
	return a.ApplicationID < b.ApplicationID
}

func companyKey(app domain.Application) string {
	if app.Company == nil {
		return ""
	}
	return strings.ToLower(app.Company.Name)
}
