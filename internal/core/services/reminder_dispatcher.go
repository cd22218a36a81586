package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/job_tracker_app/internal/apperrors"
	"github.com/SscSPs/job_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/job_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/job_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/job_tracker_app/internal/platform/metrics"
)

// Outcomes of a fired reminder job, as counted in metrics.
const (
	FiredOutcomeSent       = "sent"
	FiredOutcomeSkipped    = "skipped"
	FiredOutcomeSendFailed = "send_failed"
)

type reminderDispatcher struct {
	BaseService
	reminderRepo portsrepo.ReminderRepositoryFacade
	notifier     portssvc.Notifier
}

// NewReminderDispatcher creates the consumer of fired reminder jobs.
func NewReminderDispatcher(reminderRepo portsrepo.ReminderRepositoryFacade, notifier portssvc.Notifier, options ...Option) portssvc.ReminderDispatcherSvc {
	s := &reminderDispatcher{BaseService: newBaseService(), reminderRepo: reminderRepo, notifier: notifier}
	s.apply(options)
	return s
}

var _ portssvc.ReminderDispatcherSvc = (*reminderDispatcher)(nil)

// HandleReminderFired moves the reminder to DONE only if it is still ACTIVE
// under the fired job's handle, and notifies only when that write happened.
// A redelivered job therefore never notifies twice.
func (s *reminderDispatcher) HandleReminderFired(ctx context.Context, job domain.ReminderJob) error {
	logger := s.GetLogger(ctx).With(
		slog.String("reminder_id", job.ReminderID),
		slog.String("job_id", job.JobID))

	fired, err := s.reminderRepo.MarkReminderFired(ctx, job.ReminderID, job.JobID, s.now())
	if err != nil {
		logger.Error("Failed to mark reminder fired", slog.String("error", err.Error()))
		return fmt.Errorf("failed to mark reminder fired: %w", err)
	}
	if !fired {
		metrics.RecordReminderFired(FiredOutcomeSkipped)
		logger.Info("Reminder job is stale or reminder no longer active, skipping")
		return nil
	}

	notice, err := s.reminderRepo.FindReminderNotice(ctx, job.ReminderID)
	if err != nil {
		metrics.RecordReminderFired(FiredOutcomeSendFailed)
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Reminder vanished after firing")
			return nil
		}
		logger.Error("Failed to load reminder notice", slog.String("error", err.Error()))
		return nil
	}

	if err := s.notifier.NotifyReminder(ctx, *notice); err != nil {
		// The reminder is already DONE; a retry would not resend.
		metrics.RecordReminderFired(FiredOutcomeSendFailed)
		logger.Error("Failed to send reminder notification", slog.String("error", err.Error()))
		return nil
	}

	metrics.RecordReminderFired(FiredOutcomeSent)
	logger.Info("Reminder notification sent")
	return nil
}
