package memory

import (
	"context"
	"sort"

	"github.com/SscSPs/job_tracker_app/internal/apperrors"
	"github.com/SscSPs/job_tracker_app/internal/core/domain"
)

// ledgerOf returns the application's entries in insertion order.
func (s *state) ledgerOf(applicationID string) []domain.LedgerEntry {
	var entries []domain.LedgerEntry
	for _, e := range s.entries {
		if e.ApplicationID == applicationID {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Sequence < entries[j].Sequence })
	return entries
}

func (s *state) ListLedgerEntries(ctx context.Context, applicationID string) ([]domain.LedgerEntry, error) {
	if err := s.faults.check("ListLedgerEntries"); err != nil {
		return nil, err
	}
	return s.ledgerOf(applicationID), nil
}

func (s *state) FindLedgerEntryByID(ctx context.Context, applicationID, entryID string) (*domain.LedgerEntry, error) {
	e, ok := s.entries[entryID]
	if !ok || e.ApplicationID != applicationID {
		return nil, apperrors.NewNotFoundError("ledger entry not found")
	}
	return &e, nil
}

func (s *state) SaveLedgerEntry(ctx context.Context, entry *domain.LedgerEntry) error {
	if err := s.faults.check("SaveLedgerEntry"); err != nil {
		return err
	}
	if _, ok := s.applications[entry.ApplicationID]; !ok {
		return apperrors.NewNotFoundError("application not found")
	}
	if _, exists := s.entries[entry.EntryID]; exists {
		return apperrors.ErrDuplicate
	}
	s.seq++
	entry.Sequence = s.seq
	s.entries[entry.EntryID] = *entry
	return nil
}

func (s *state) UpdateLedgerEntry(ctx context.Context, entry domain.LedgerEntry) error {
	if err := s.faults.check("UpdateLedgerEntry"); err != nil {
		return err
	}
	stored, ok := s.entries[entry.EntryID]
	if !ok || stored.ApplicationID != entry.ApplicationID {
		return apperrors.NewNotFoundError("ledger entry not found")
	}
	stored.Status = entry.Status
	stored.OccurredAt = entry.OccurredAt
	stored.Notes = entry.Notes
	s.entries[entry.EntryID] = stored
	return nil
}

func (s *state) DeleteLedgerEntry(ctx context.Context, applicationID, entryID string) error {
	if err := s.faults.check("DeleteLedgerEntry"); err != nil {
		return err
	}
	stored, ok := s.entries[entryID]
	if !ok || stored.ApplicationID != applicationID {
		return apperrors.NewNotFoundError("ledger entry not found")
	}
	delete(s.entries, entryID)
	// Mirror ON DELETE SET NULL on interviews.ledger_entry_id.
	for id, iv := range s.interviews {
		if iv.LedgerEntryID != nil && *iv.LedgerEntryID == entryID {
			iv.LedgerEntryID = nil
			s.interviews[id] = iv
		}
	}
	return nil
}
