package dto

import (
	"time"

	"github.com/SscSPs/job_tracker_app/internal/core/domain"
)

// CreateLedgerEntryRequest defines the data needed to record a status change.
type CreateLedgerEntryRequest struct {
	Status     domain.ApplicationStatus `json:"status" binding:"required,application_status"`
	OccurredAt time.Time                `json:"occurredAt" binding:"required"`
	Notes      string                   `json:"notes" binding:"max=2000"`
}

// UpdateLedgerEntryRequest defines the editable fields of a ledger entry.
type UpdateLedgerEntryRequest struct {
	Status     *domain.ApplicationStatus `json:"status" binding:"omitempty,application_status"`
	OccurredAt *time.Time                `json:"occurredAt"`
	Notes      *string                   `json:"notes" binding:"omitempty,max=2000"`
}

// LedgerEntryResponse defines the data returned for a ledger entry.
type LedgerEntryResponse struct {
	EntryID    string                   `json:"entryID"`
	Status     domain.ApplicationStatus `json:"status"`
	OccurredAt time.Time                `json:"occurredAt"`
	Notes      string                   `json:"notes"`
	CreatedAt  time.Time                `json:"createdAt"`
}

// LedgerMutationResponse is returned by ledger writes.
type LedgerMutationResponse struct {
	Entry             *LedgerEntryResponse     `json:"entry,omitempty"`
	ApplicationStatus domain.ApplicationStatus `json:"applicationStatus"`
	Repaired          bool                     `json:"repaired"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to LedgerEntryResponse DTO.
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:    e.EntryID,
		Status:     e.Status,
		OccurredAt: e.OccurredAt,
		Notes:      e.Notes,
		CreatedAt:  e.CreatedAt,
	}
}

// ToLedgerEntryResponses converts a slice of domain.LedgerEntry to []LedgerEntryResponse.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	out := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		out[i] = ToLedgerEntryResponse(&entries[i])
	}
	return out
}

// ToLedgerMutationResponse converts a domain.LedgerMutationResult.
func ToLedgerMutationResponse(r *domain.LedgerMutationResult) LedgerMutationResponse {
	resp := LedgerMutationResponse{ApplicationStatus: r.ApplicationStatus, Repaired: r.Repaired}
	if r.Entry != nil {
		e := ToLedgerEntryResponse(r.Entry)
		resp.Entry = &e
	}
	return resp
}
