package repositories

import (
	"context"

	"github.com/SscSPs/job_tracker_app/internal/core/domain"
)

// LedgerReader defines read operations for ledger entries.
type LedgerReader interface {
	// ListLedgerEntries returns the application's entries in insertion order.
	ListLedgerEntries(ctx context.Context, applicationID string) ([]domain.LedgerEntry, error)

	// FindLedgerEntryByID retrieves an entry of the given application.
	FindLedgerEntryByID(ctx context.Context, applicationID, entryID string) (*domain.LedgerEntry, error)
}

// LedgerWriter defines write operations for ledger entries.
type LedgerWriter interface {
	// SaveLedgerEntry inserts entry and assigns its Sequence.
	SaveLedgerEntry(ctx context.Context, entry *domain.LedgerEntry) error

	// UpdateLedgerEntry updates status, occurredAt and notes. Sequence is kept.
	UpdateLedgerEntry(ctx context.Context, entry domain.LedgerEntry) error

	// DeleteLedgerEntry removes an entry of the given application.
	DeleteLedgerEntry(ctx context.Context, applicationID, entryID string) error
}
