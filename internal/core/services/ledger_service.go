package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/SscSPs/job_tracker_app/internal/apperrors"
	"github.com/SscSPs/job_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/job_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/job_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/job_tracker_app/internal/dto"
	"github.com/google/uuid"
)

type ledgerService struct {
	BaseService
	appRepo portsrepo.ApplicationRepositoryFacade
	sync    lifecycleSync
}

// NewLedgerService creates the service that owns ledger mutations.
func NewLedgerService(appRepo portsrepo.ApplicationRepositoryFacade, options ...Option) portssvc.LedgerSvcFacade {
	s := &ledgerService{BaseService: newBaseService(), appRepo: appRepo}
	s.apply(options)
	s.sync = lifecycleSync{base: &s.BaseService}
	return s
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) ListLedgerEntries(ctx context.Context, userID, applicationID string) ([]domain.LedgerEntry, error) {
	app, err := s.appRepo.FindApplicationByID(ctx, userID, applicationID)
	if err != nil {
		return nil, err
	}
	entries := append([]domain.LedgerEntry(nil), app.LedgerEntries...)
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Before(entries[j]) })
	return entries, nil
}

func (s *ledgerService) CreateLedgerEntry(ctx context.Context, userID, applicationID string, req dto.CreateLedgerEntryRequest) (*domain.LedgerMutationResult, error) {
	if !req.Status.IsValid() {
		return nil, apperrors.NewValidationError("unknown status " + string(req.Status))
	}
	if req.OccurredAt.IsZero() {
		return nil, apperrors.NewValidationError("occurredAt is required")
	}

	var (
		result *domain.LedgerMutationResult
		out    syncOutcome
	)
	err := s.appRepo.WithinLifecycleTx(ctx, func(ctx context.Context, tx portsrepo.LifecycleTx) error {
		app, err := tx.LockApplication(ctx, userID, applicationID)
		if err != nil {
			return err
		}
		entry := &domain.LedgerEntry{
			EntryID:       uuid.NewString(),
			ApplicationID: app.ApplicationID,
			Status:        req.Status,
			OccurredAt:    req.OccurredAt.UTC(),
			Notes:         req.Notes,
			CreatedAt:     s.now(),
		}
		if err := s.sync.createEntry(ctx, tx, app, entry, &out); err != nil {
			return err
		}
		result = &domain.LedgerMutationResult{Entry: entry, ApplicationStatus: app.Status}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create ledger entry",
			slog.String("application_id", applicationID),
			slog.String("status", string(req.Status)))
		return nil, fmt.Errorf("failed to create ledger entry: %w", err)
	}
	out.record()

	s.LogInfo(ctx, "Ledger entry created",
		slog.String("application_id", applicationID),
		slog.String("entry_id", result.Entry.EntryID),
		slog.String("application_status", string(result.ApplicationStatus)))
	return result, nil
}

func (s *ledgerService) UpdateLedgerEntry(ctx context.Context, userID, applicationID, entryID string, req dto.UpdateLedgerEntryRequest) (*domain.LedgerMutationResult, error) {
	if req.Status != nil && !req.Status.IsValid() {
		return nil, apperrors.NewValidationError("unknown status " + string(*req.Status))
	}
	if req.OccurredAt != nil && req.OccurredAt.IsZero() {
		return nil, apperrors.NewValidationError("occurredAt cannot be empty")
	}

	var (
		result *domain.LedgerMutationResult
		out    syncOutcome
	)
	err := s.appRepo.WithinLifecycleTx(ctx, func(ctx context.Context, tx portsrepo.LifecycleTx) error {
		app, err := tx.LockApplication(ctx, userID, applicationID)
		if err != nil {
			return err
		}
		before, err := tx.FindLedgerEntryByID(ctx, applicationID, entryID)
		if err != nil {
			return err
		}
		after := *before
		if req.Status != nil {
			after.Status = *req.Status
		}
		if req.OccurredAt != nil {
			after.OccurredAt = req.OccurredAt.UTC()
		}
		if req.Notes != nil {
			after.Notes = *req.Notes
		}
		if err := s.sync.updateEntry(ctx, tx, app, *before, after, &out); err != nil {
			return err
		}
		result = &domain.LedgerMutationResult{Entry: &after, ApplicationStatus: app.Status}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update ledger entry",
			slog.String("application_id", applicationID),
			slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to update ledger entry: %w", err)
	}
	out.record()

	s.LogInfo(ctx, "Ledger entry updated",
		slog.String("application_id", applicationID),
		slog.String("entry_id", entryID),
		slog.String("application_status", string(result.ApplicationStatus)))
	return result, nil
}

func (s *ledgerService) DeleteLedgerEntry(ctx context.Context, userID, applicationID, entryID string) (*domain.LedgerMutationResult, error) {
	var (
		result *domain.LedgerMutationResult
		out    syncOutcome
	)
	err := s.appRepo.WithinLifecycleTx(ctx, func(ctx context.Context, tx portsrepo.LifecycleTx) error {
		app, err := tx.LockApplication(ctx, userID, applicationID)
		if err != nil {
			return err
		}
		entry, err := tx.FindLedgerEntryByID(ctx, applicationID, entryID)
		if err != nil {
			return err
		}
		if err := s.sync.deleteEntry(ctx, tx, app, *entry, &out); err != nil {
			return err
		}
		result = &domain.LedgerMutationResult{
			Entry:             out.repairEntry,
			ApplicationStatus: app.Status,
			Repaired:          out.repaired,
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete ledger entry",
			slog.String("application_id", applicationID),
			slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to delete ledger entry: %w", err)
	}
	out.record()

	s.LogInfo(ctx, "Ledger entry deleted",
		slog.String("application_id", applicationID),
		slog.String("entry_id", entryID),
		slog.Bool("repaired", result.Repaired))
	return result, nil
}
