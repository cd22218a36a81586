package services

import (
	"context"

	"github.com/SscSPs/job_tracker_app/internal/core/domain"
	"github.com/SscSPs/job_tracker_app/internal/dto"
)

// LedgerReaderSvc defines read operations for the status ledger
type LedgerReaderSvc interface {
	// ListLedgerEntries returns the application's entries in chronological order.
	ListLedgerEntries(ctx context.Context, userID, applicationID string) ([]domain.LedgerEntry, error)
}

// LedgerWriterSvc defines ledger mutations. Each one runs atomically with the
// interview and status updates it implies.
type LedgerWriterSvc interface {
	CreateLedgerEntry(ctx context.Context, userID, applicationID string, req dto.CreateLedgerEntryRequest) (*domain.LedgerMutationResult, error)
	UpdateLedgerEntry(ctx context.Context, userID, applicationID, entryID string, req dto.UpdateLedgerEntryRequest) (*domain.LedgerMutationResult, error)
	DeleteLedgerEntry(ctx context.Context, userID, applicationID, entryID string) (*domain.LedgerMutationResult, error)
}

// LedgerSvcFacade combines all ledger service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
