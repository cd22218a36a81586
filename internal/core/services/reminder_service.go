package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/job_tracker_app/internal/apperrors"
	"github.com/SscSPs/job_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/job_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/job_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/job_tracker_app/internal/dto"
	"github.com/google/uuid"
)

type reminderService struct {
	BaseService
	appRepo      portsrepo.ApplicationRepositoryFacade
	reminderRepo portsrepo.ReminderRepositoryFacade
	userRepo     portsrepo.UserRepositoryFacade
	policy       portssvc.SchedulingPolicy
	jobs         reminderScheduler
}

// NewReminderService creates a new reminder service. Jobs are scheduled on
// scheduler for every user policy allows.
func NewReminderService(
	appRepo portsrepo.ApplicationRepositoryFacade,
	reminderRepo portsrepo.ReminderRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	scheduler portssvc.JobScheduler,
	policy portssvc.SchedulingPolicy,
	options ...Option,
) portssvc.ReminderSvcFacade {
	s := &reminderService{
		BaseService:  newBaseService(),
		appRepo:      appRepo,
		reminderRepo: reminderRepo,
		userRepo:     userRepo,
		policy:       policy,
	}
	s.apply(options)
	s.jobs = reminderScheduler{base: &s.BaseService, scheduler: scheduler}
	return s
}

var _ portssvc.ReminderSvcFacade = (*reminderService)(nil)

func (s *reminderService) ListReminders(ctx context.Context, userID, applicationID string) ([]domain.Reminder, error) {
	if _, err := s.appRepo.FindApplicationByID(ctx, userID, applicationID); err != nil {
		return nil, err
	}
	return s.reminderRepo.ListReminders(ctx, applicationID)
}

// ListUserReminders lists reminders across all of the user's applications.
func (s *reminderService) ListUserReminders(ctx context.Context, userID string, params dto.ListUserRemindersParams) ([]domain.Reminder, error) {
	order, err := resolveOrder(params.SortBy)
	if err != nil {
		return nil, err
	}
	filter := domain.ReminderFilter{Order: order}
	if params.StatusFilter != "" && params.StatusFilter != statusFilterAll {
		filter.Status = domain.ReminderStatus(params.StatusFilter)
		if !filter.Status.IsValid() {
			return nil, apperrors.NewValidationError("unknown status filter " + params.StatusFilter)
		}
	}
	reminders, err := s.reminderRepo.ListUserReminders(ctx, userID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list user reminders")
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	return reminders, nil
}

// shouldSchedule asks the policy about the reminder's owner. An owner that
// cannot be loaded is scheduled; only a known demo identity is exempt.
func (s *reminderService) shouldSchedule(ctx context.Context, userID string) bool {
	if s.policy == nil {
		return true
	}
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		s.LogWarn(ctx, "Could not load reminder owner for scheduling policy",
			slog.String("user_id", userID),
			slog.String("error", err.Error()))
		return true
	}
	return s.policy.ShouldSchedule(*user)
}

// schedule enqueues a job for reminder and stores its handle. The returned
// error matches ErrSchedulingFailed; a user skipped by policy is not a failure.
func (s *reminderService) schedule(ctx context.Context, reminder *domain.Reminder) error {
	if !s.shouldSchedule(ctx, reminder.UserID) {
		s.LogDebug(ctx, "Reminder scheduling skipped by policy", slog.String("reminder_id", reminder.ReminderID))
		return nil
	}

	jobID, err := s.jobs.enqueue(ctx, *reminder)
	if err != nil {
		return err
	}
	if err := s.reminderRepo.SetReminderJobID(ctx, reminder.ReminderID, jobID, s.now()); err != nil {
		// Without the stored handle the job would fire as stale; drop it.
		s.LogError(ctx, err, "Failed to store reminder job handle", slog.String("reminder_id", reminder.ReminderID))
		s.jobs.cancel(ctx, reminder.ReminderID, jobID)
		return apperrors.NewSchedulingError("failed to store reminder job handle", err)
	}
	reminder.JobID = jobID
	return nil
}

// clearJob drops the reminder's previous handle before a new job is scheduled.
func (s *reminderService) clearJob(ctx context.Context, reminder *domain.Reminder) error {
	if reminder.JobID == nil {
		return nil
	}
	if err := s.reminderRepo.SetReminderJobID(ctx, reminder.ReminderID, nil, s.now()); err != nil {
		s.LogError(ctx, err, "Failed to clear reminder job handle", slog.String("reminder_id", reminder.ReminderID))
		return fmt.Errorf("failed to clear reminder job handle: %w", err)
	}
	reminder.JobID = nil
	return nil
}

func (s *reminderService) CreateReminder(ctx context.Context, userID, applicationID string, req dto.CreateReminderRequest) (*domain.ReminderResult, error) {
	status := domain.ReminderActive
	if req.Status != nil {
		status = *req.Status
	}
	if !status.IsValid() {
		return nil, apperrors.NewValidationError("unknown reminder status " + string(status))
	}
	if req.AlarmDate.IsZero() || strings.TrimSpace(req.Message) == "" {
		return nil, apperrors.NewValidationError("alarmDate and message are required")
	}

	if _, err := s.appRepo.FindApplicationByID(ctx, userID, applicationID); err != nil {
		return nil, err
	}

	now := s.now()
	reminder := domain.Reminder{
		ReminderID:    uuid.NewString(),
		ApplicationID: applicationID,
		UserID:        userID,
		AlarmDate:     req.AlarmDate.UTC(),
		Message:       req.Message,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.reminderRepo.SaveReminder(ctx, reminder); err != nil {
		s.LogError(ctx, err, "Failed to save reminder", slog.String("application_id", applicationID))
		return nil, fmt.Errorf("failed to save reminder: %w", err)
	}

	result := &domain.ReminderResult{Reminder: reminder}
	if status == domain.ReminderActive {
		result.SchedulingErr = s.schedule(ctx, &result.Reminder)
	}

	s.LogInfo(ctx, "Reminder created",
		slog.String("reminder_id", reminder.ReminderID),
		slog.Bool("scheduled", result.Reminder.IsScheduled()))
	return result, nil
}

func (s *reminderService) UpdateReminder(ctx context.Context, userID, reminderID string, req dto.UpdateReminderRequest) (*domain.ReminderResult, error) {
	if req.Status != nil && !req.Status.IsValid() {
		return nil, apperrors.NewValidationError("unknown reminder status " + string(*req.Status))
	}
	if req.AlarmDate != nil && req.AlarmDate.IsZero() {
		return nil, apperrors.NewValidationError("alarmDate cannot be empty")
	}

	before, err := s.reminderRepo.FindReminderByID(ctx, userID, reminderID)
	if err != nil {
		return nil, err
	}

	after := *before
	if req.AlarmDate != nil {
		after.AlarmDate = req.AlarmDate.UTC()
	}
	if req.Message != nil {
		after.Message = *req.Message
	}
	if req.Status != nil {
		after.Status = *req.Status
	}
	after.UpdatedAt = s.now()

	if err := s.reminderRepo.UpdateReminder(ctx, after); err != nil {
		s.LogError(ctx, err, "Failed to update reminder", slog.String("reminder_id", reminderID))
		return nil, fmt.Errorf("failed to update reminder: %w", err)
	}

	result := &domain.ReminderResult{Reminder: after}
	wasActive := before.Status == domain.ReminderActive
	isActive := after.Status == domain.ReminderActive
	alarmMoved := !before.AlarmDate.Equal(after.AlarmDate)

	switch {
	case wasActive && isActive && (alarmMoved || before.JobID == nil):
		// A missing handle means the last attempt failed: retry.
		s.jobs.cancel(ctx, reminderID, before.JobID)
		if err := s.clearJob(ctx, &result.Reminder); err != nil {
			return nil, err
		}
		result.SchedulingErr = s.schedule(ctx, &result.Reminder)
	case wasActive && !isActive:
		// The handle stays as a record of the cancelled job.
		s.jobs.cancel(ctx, reminderID, before.JobID)
	case !wasActive && isActive:
		if err := s.clearJob(ctx, &result.Reminder); err != nil {
			return nil, err
		}
		result.SchedulingErr = s.schedule(ctx, &result.Reminder)
	}

	s.LogInfo(ctx, "Reminder updated",
		slog.String("reminder_id", reminderID),
		slog.String("status", string(after.Status)),
		slog.Bool("scheduled", result.Reminder.IsScheduled()))
	return result, nil
}

func (s *reminderService) DeleteReminder(ctx context.Context, userID, reminderID string) error {
	reminder, err := s.reminderRepo.FindReminderByID(ctx, userID, reminderID)
	if err != nil {
		return err
	}
	if err := s.reminderRepo.DeleteReminder(ctx, reminderID); err != nil {
		s.LogError(ctx, err, "Failed to delete reminder", slog.String("reminder_id", reminderID))
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	s.jobs.cancel(ctx, reminderID, reminder.JobID)

	s.LogInfo(ctx, "Reminder deleted", slog.String("reminder_id", reminderID))
	return nil
}
