package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/job_tracker_app/internal/apperrors"
	"github.com/SscSPs/job_tracker_app/internal/core/domain"
	"github.com/SscSPs/job_tracker_app/internal/core/lifecycle"
	portsrepo "github.com/SscSPs/job_tracker_app/internal/core/ports/repositories"
	"github.com/SscSPs/job_tracker_app/internal/platform/metrics"
	"github.com/google/uuid"
)

// syncOutcome collects what a lifecycle transaction did. It is only turned
// into metrics once the transaction has committed.
type syncOutcome struct {
	kind          lifecycle.MutationKind
	statusUpdated bool
	repaired      bool
	repairEntry   *domain.LedgerEntry
	interview     *domain.Interview
}

func (o *syncOutcome) record() {
	metrics.RecordLedgerMutation(o.kind.String())
	if o.statusUpdated {
		metrics.RecordStatusUpdate()
	}
	if o.repaired {
		metrics.RecordDraftRepair()
	}
}

// lifecycleSync applies ledger mutations inside a lifecycle transaction and
// keeps interviews and the cached status in step with them. Callers must
// hold the application lock (LockApplication) on tx.
type lifecycleSync struct {
	base *BaseService
}

func (s lifecycleSync) createEntry(ctx context.Context, tx portsrepo.LifecycleTx, app *domain.Application, entry *domain.LedgerEntry, out *syncOutcome) error {
	out.kind = lifecycle.MutationCreate
	existing, err := tx.ListLedgerEntries(ctx, app.ApplicationID)
	if err != nil {
		return fmt.Errorf("failed to load ledger: %w", err)
	}
	if err := tx.SaveLedgerEntry(ctx, entry); err != nil {
		return fmt.Errorf("failed to save ledger entry: %w", err)
	}
	if entry.Status == domain.StatusInterview {
		iv, err := s.attachInterview(ctx, tx, *entry)
		if err != nil {
			return err
		}
		out.interview = iv
	}
	change := lifecycle.DeriveStatus(app.Status, existing, *entry, lifecycle.MutationCreate)
	return s.applyChange(ctx, tx, app, change, out)
}

func (s lifecycleSync) updateEntry(ctx context.Context, tx portsrepo.LifecycleTx, app *domain.Application, before, after domain.LedgerEntry, out *syncOutcome) error {
	out.kind = lifecycle.MutationUpdate
	existing, err := tx.ListLedgerEntries(ctx, app.ApplicationID)
	if err != nil {
		return fmt.Errorf("failed to load ledger: %w", err)
	}
	if err := tx.UpdateLedgerEntry(ctx, after); err != nil {
		return fmt.Errorf("failed to update ledger entry: %w", err)
	}

	wasInterview := before.Status == domain.StatusInterview
	isInterview := after.Status == domain.StatusInterview
	switch {
	case wasInterview && isInterview:
		iv, err := tx.FindInterviewForEntry(ctx, app.ApplicationID, before.EntryID, before.OccurredAt)
		if err != nil {
			return fmt.Errorf("failed to look up interview: %w", err)
		}
		if iv == nil {
			s.base.LogWarn(ctx, "No interview found for INTERVIEW entry, creating one",
				slog.String("application_id", app.ApplicationID),
				slog.String("entry_id", before.EntryID))
			if out.interview, err = s.attachInterview(ctx, tx, after); err != nil {
				return err
			}
			break
		}
		if out.interview, err = s.moveInterview(ctx, tx, iv, after); err != nil {
			return err
		}
	case wasInterview:
		if err := s.deleteInterviewFor(ctx, tx, before); err != nil {
			return err
		}
	case isInterview:
		if out.interview, err = s.attachInterview(ctx, tx, after); err != nil {
			return err
		}
	}

	change := lifecycle.DeriveStatus(app.Status, existing, after, lifecycle.MutationUpdate)
	return s.applyChange(ctx, tx, app, change, out)
}

func (s lifecycleSync) deleteEntry(ctx context.Context, tx portsrepo.LifecycleTx, app *domain.Application, entry domain.LedgerEntry, out *syncOutcome) error {
	out.kind = lifecycle.MutationDelete
	existing, err := tx.ListLedgerEntries(ctx, app.ApplicationID)
	if err != nil {
		return fmt.Errorf("failed to load ledger: %w", err)
	}
	if entry.Status == domain.StatusInterview {
		if err := s.deleteInterviewFor(ctx, tx, entry); err != nil {
			return err
		}
	}
	if err := tx.DeleteLedgerEntry(ctx, app.ApplicationID, entry.EntryID); err != nil {
		return fmt.Errorf("failed to delete ledger entry: %w", err)
	}

	change := lifecycle.DeriveStatus(app.Status, existing, entry, lifecycle.MutationDelete)
	if change.IsLedgerEmpty() {
		return s.repairEmptyLedger(ctx, tx, app, out)
	}
	return s.applyChange(ctx, tx, app, change, out)
}

// repairEmptyLedger gives an application that lost its last entry a fresh
// DRAFT entry dated now.
func (s lifecycleSync) repairEmptyLedger(ctx context.Context, tx portsrepo.LifecycleTx, app *domain.Application, out *syncOutcome) error {
	now := s.base.now()
	draft := &domain.LedgerEntry{
		EntryID:       uuid.NewString(),
		ApplicationID: app.ApplicationID,
		Status:        domain.StatusDraft,
		OccurredAt:    now,
		CreatedAt:     now,
	}
	if err := tx.SaveLedgerEntry(ctx, draft); err != nil {
		return fmt.Errorf("failed to save synthesized draft entry: %w", err)
	}
	out.repaired = true
	out.repairEntry = draft
	s.base.LogWarn(ctx, "Last ledger entry deleted, synthesized DRAFT entry",
		slog.String("application_id", app.ApplicationID),
		slog.String("entry_id", draft.EntryID))
	return s.applyChange(ctx, tx, app, lifecycle.Updated(domain.StatusDraft), out)
}

func (s lifecycleSync) applyChange(ctx context.Context, tx portsrepo.LifecycleTx, app *domain.Application, change lifecycle.StatusChange, out *syncOutcome) error {
	status, ok := change.Status()
	if !ok || status == app.Status {
		return nil
	}
	if err := tx.UpdateApplicationStatus(ctx, app.ApplicationID, status, app.UserID, s.base.now()); err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	s.base.LogDebug(ctx, "Application status derived from ledger",
		slog.String("application_id", app.ApplicationID),
		slog.String("from", string(app.Status)),
		slog.String("to", string(status)))
	app.Status = status
	out.statusUpdated = true
	return nil
}

// attachInterview gives an INTERVIEW entry its interview. An unlinked
// interview already scheduled at the entry's time is adopted and linked;
// otherwise a new one is created.
func (s lifecycleSync) attachInterview(ctx context.Context, tx portsrepo.LifecycleTx, entry domain.LedgerEntry) (*domain.Interview, error) {
	iv, err := tx.FindInterviewForEntry(ctx, entry.ApplicationID, entry.EntryID, entry.OccurredAt)
	if err != nil {
		return nil, fmt.Errorf("failed to look up interview: %w", err)
	}
	if iv == nil {
		return s.createInterview(ctx, tx, entry)
	}
	if iv.LedgerEntryID == nil {
		s.base.LogInfo(ctx, "Linked existing interview to ledger entry",
			slog.String("application_id", entry.ApplicationID),
			slog.String("interview_id", iv.InterviewID),
			slog.String("entry_id", entry.EntryID))
	}
	if entry.Notes == "" {
		entry.Notes = iv.Notes
	}
	return s.moveInterview(ctx, tx, iv, entry)
}

// moveInterview points iv at entry and copies the entry's time and notes.
func (s lifecycleSync) moveInterview(ctx context.Context, tx portsrepo.LifecycleTx, iv *domain.Interview, entry domain.LedgerEntry) (*domain.Interview, error) {
	now := s.base.now()
	entryID := entry.EntryID
	iv.LedgerEntryID = &entryID
	iv.ScheduledAt = entry.OccurredAt
	iv.Notes = entry.Notes
	iv.Status = domain.InterviewStatusAt(entry.OccurredAt, now)
	iv.UpdatedAt = now
	if err := tx.UpdateInterview(ctx, *iv); err != nil {
		return nil, fmt.Errorf("failed to update interview: %w", err)
	}
	return iv, nil
}

func (s lifecycleSync) createInterview(ctx context.Context, tx portsrepo.LifecycleTx, entry domain.LedgerEntry) (*domain.Interview, error) {
	now := s.base.now()
	entryID := entry.EntryID
	iv := domain.Interview{
		InterviewID:   uuid.NewString(),
		ApplicationID: entry.ApplicationID,
		LedgerEntryID: &entryID,
		ScheduledAt:   entry.OccurredAt,
		Notes:         entry.Notes,
		Status:        domain.InterviewStatusAt(entry.OccurredAt, now),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := tx.SaveInterview(ctx, iv); err != nil {
		return nil, fmt.Errorf("failed to save interview: %w", err)
	}
	return &iv, nil
}

// deleteInterviewFor removes the interview correlated with entry. A missing
// interview is nothing to synchronize.
func (s lifecycleSync) deleteInterviewFor(ctx context.Context, tx portsrepo.LifecycleTx, entry domain.LedgerEntry) error {
	iv, err := tx.FindInterviewForEntry(ctx, entry.ApplicationID, entry.EntryID, entry.OccurredAt)
	if err != nil {
		return fmt.Errorf("failed to look up interview: %w", err)
	}
	if iv == nil {
		s.base.LogDebug(ctx, "No interview correlated with entry",
			slog.String("application_id", entry.ApplicationID),
			slog.String("entry_id", entry.EntryID))
		return nil
	}
	if err := tx.DeleteInterview(ctx, iv.InterviewID); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to delete interview: %w", err)
	}
	return nil
}

// correlatedEntry finds the INTERVIEW entry behind iv, by link first and by
// (application, scheduled time) for unlinked rows. nil means none exists.
func correlatedEntry(ctx context.Context, tx portsrepo.LifecycleTx, iv domain.Interview) (*domain.LedgerEntry, error) {
	if iv.LedgerEntryID != nil {
		entry, err := tx.FindLedgerEntryByID(ctx, iv.ApplicationID, *iv.LedgerEntryID)
		if err == nil {
			if entry.Status != domain.StatusInterview {
				return nil, nil
			}
			return entry, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, nil
	}
	entries, err := tx.ListLedgerEntries(ctx, iv.ApplicationID)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].Status == domain.StatusInterview && entries[i].OccurredAt.Equal(iv.ScheduledAt) {
			return &entries[i], nil
		}
	}
	return nil, nil
}
