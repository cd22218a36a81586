package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/job_tracker_app/internal/apperrors"
	"github.com/SscSPs/job_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/job_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/job_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/job_tracker_app/internal/dto"
	"github.com/google/uuid"
)

// interviewService exposes interviews as a view over INTERVIEW ledger
// entries. Every write goes through the ledger synchronizer.
type interviewService struct {
	BaseService
	appRepo       portsrepo.ApplicationRepositoryFacade
	interviewRepo portsrepo.InterviewRepositoryFacade
	sync          lifecycleSync
}

// NewInterviewService creates a new interview service
func NewInterviewService(appRepo portsrepo.ApplicationRepositoryFacade, interviewRepo portsrepo.InterviewRepositoryFacade, options ...Option) portssvc.InterviewSvcFacade {
	s := &interviewService{BaseService: newBaseService(), appRepo: appRepo, interviewRepo: interviewRepo}
	s.apply(options)
	s.sync = lifecycleSync{base: &s.BaseService}
	return s
}

var _ portssvc.InterviewSvcFacade = (*interviewService)(nil)

func (s *interviewService) ListInterviews(ctx context.Context, userID, applicationID string) ([]domain.Interview, error) {
	if _, err := s.appRepo.FindApplicationByID(ctx, userID, applicationID); err != nil {
		return nil, err
	}
	return s.interviewRepo.ListInterviews(ctx, applicationID)
}

// ListUserInterviews lists interviews across all of the user's applications.
func (s *interviewService) ListUserInterviews(ctx context.Context, userID string, params dto.ListUserInterviewsParams) ([]domain.Interview, error) {
	order, err := resolveOrder(params.SortBy)
	if err != nil {
		return nil, err
	}
	filter := domain.InterviewFilter{Order: order}
	if params.StatusFilter != "" && params.StatusFilter != statusFilterAll {
		filter.Status = domain.InterviewStatus(params.StatusFilter)
		if !filter.Status.IsValid() {
			return nil, apperrors.NewValidationError("unknown status filter " + params.StatusFilter)
		}
	}
	interviews, err := s.interviewRepo.ListUserInterviews(ctx, userID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list user interviews")
		return nil, fmt.Errorf("failed to list interviews: %w", err)
	}
	return interviews, nil
}

func (s *interviewService) CreateInterview(ctx context.Context, userID, applicationID string, req dto.CreateInterviewRequest) (*domain.Interview, error) {
	if req.ScheduledAt.IsZero() {
		return nil, apperrors.NewValidationError("scheduledAt is required")
	}

	var (
		interview *domain.Interview
		out       syncOutcome
	)
	err := s.appRepo.WithinLifecycleTx(ctx, func(ctx context.Context, tx portsrepo.LifecycleTx) error {
		app, err := tx.LockApplication(ctx, userID, applicationID)
		if err != nil {
			return err
		}
		entry := &domain.LedgerEntry{
			EntryID:       uuid.NewString(),
			ApplicationID: app.ApplicationID,
			Status:        domain.StatusInterview,
			OccurredAt:    req.ScheduledAt.UTC(),
			Notes:         req.Notes,
			CreatedAt:     s.now(),
		}
		if err := s.sync.createEntry(ctx, tx, app, entry, &out); err != nil {
			return err
		}
		interview = out.interview
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create interview", slog.String("application_id", applicationID))
		return nil, fmt.Errorf("failed to create interview: %w", err)
	}
	out.record()

	s.LogInfo(ctx, "Interview created",
		slog.String("application_id", applicationID),
		slog.String("interview_id", interview.InterviewID))
	return interview, nil
}

// UpdateInterview edits the INTERVIEW entry behind the interview, which moves
// the interview with it, then applies an explicit status if one was given.
// Interviews without an entry are edited on their own.
func (s *interviewService) UpdateInterview(ctx context.Context, userID, interviewID string, req dto.UpdateInterviewRequest) (*domain.Interview, error) {
	if req.ScheduledAt != nil && req.ScheduledAt.IsZero() {
		return nil, apperrors.NewValidationError("scheduledAt cannot be empty")
	}
	existing, err := s.interviewRepo.FindInterviewByID(ctx, userID, interviewID)
	if err != nil {
		return nil, err
	}

	var (
		interview *domain.Interview
		out       syncOutcome
		viaLedger bool
	)
	err = s.appRepo.WithinLifecycleTx(ctx, func(ctx context.Context, tx portsrepo.LifecycleTx) error {
		app, err := tx.LockApplication(ctx, userID, existing.ApplicationID)
		if err != nil {
			return err
		}
		iv, err := tx.FindInterviewByID(ctx, userID, interviewID)
		if err != nil {
			return err
		}
		entry, err := s.linkEntry(ctx, tx, iv)
		if err != nil {
			return err
		}

		if entry != nil {
			viaLedger = true
			after := *entry
			if req.ScheduledAt != nil {
				after.OccurredAt = req.ScheduledAt.UTC()
			}
			if req.Notes != nil {
				after.Notes = *req.Notes
			}
			if err := s.sync.updateEntry(ctx, tx, app, *entry, after, &out); err != nil {
				return err
			}
			iv = out.interview
		} else {
			now := s.now()
			if req.ScheduledAt != nil {
				iv.ScheduledAt = req.ScheduledAt.UTC()
			}
			if req.Notes != nil {
				iv.Notes = *req.Notes
			}
			iv.Status = domain.InterviewStatusAt(iv.ScheduledAt, now)
			iv.UpdatedAt = now
		}

		if req.Status != nil {
			iv.Status = *req.Status
		}
		if entry == nil || req.Status != nil {
			if err := tx.UpdateInterview(ctx, *iv); err != nil {
				return fmt.Errorf("failed to update interview: %w", err)
			}
		}
		interview = iv
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update interview", slog.String("interview_id", interviewID))
		return nil, fmt.Errorf("failed to update interview: %w", err)
	}
	if viaLedger {
		out.record()
	}

	s.LogInfo(ctx, "Interview updated",
		slog.String("interview_id", interviewID),
		slog.Bool("via_ledger", viaLedger))
	return interview, nil
}

// DeleteInterview deletes the INTERVIEW entry behind the interview, which
// takes the interview with it. Interviews without an entry are deleted alone.
func (s *interviewService) DeleteInterview(ctx context.Context, userID, interviewID string) error {
	existing, err := s.interviewRepo.FindInterviewByID(ctx, userID, interviewID)
	if err != nil {
		return err
	}

	var (
		out       syncOutcome
		viaLedger bool
	)
	err = s.appRepo.WithinLifecycleTx(ctx, func(ctx context.Context, tx portsrepo.LifecycleTx) error {
		app, err := tx.LockApplication(ctx, userID, existing.ApplicationID)
		if err != nil {
			return err
		}
		iv, err := tx.FindInterviewByID(ctx, userID, interviewID)
		if err != nil {
			return err
		}
		entry, err := s.linkEntry(ctx, tx, iv)
		if err != nil {
			return err
		}
		if entry == nil {
			return tx.DeleteInterview(ctx, iv.InterviewID)
		}
		viaLedger = true
		return s.sync.deleteEntry(ctx, tx, app, *entry, &out)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete interview", slog.String("interview_id", interviewID))
		return fmt.Errorf("failed to delete interview: %w", err)
	}
	if viaLedger {
		out.record()
	}

	s.LogInfo(ctx, "Interview deleted",
		slog.String("interview_id", interviewID),
		slog.Bool("via_ledger", viaLedger))
	return nil
}

// linkEntry returns the entry behind iv and, for an unlinked interview,
// records the link so the synchronizer finds this exact row.
func (s *interviewService) linkEntry(ctx context.Context, tx portsrepo.LifecycleTx, iv *domain.Interview) (*domain.LedgerEntry, error) {
	entry, err := correlatedEntry(ctx, tx, *iv)
	if err != nil {
		return nil, fmt.Errorf("failed to find ledger entry for interview: %w", err)
	}
	if entry == nil || iv.LedgerEntryID != nil {
		return entry, nil
	}
	entryID := entry.EntryID
	iv.LedgerEntryID = &entryID
	if err := tx.UpdateInterview(ctx, *iv); err != nil {
		return nil, fmt.Errorf("failed to link interview to ledger entry: %w", err)
	}
	return entry, nil
}
