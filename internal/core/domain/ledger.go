package domain

import "time"

// LedgerEntry records that an application was in Status at OccurredAt.
// Sequence is assigned by the store on insert and increases monotonically,
// so it orders entries that share an OccurredAt.
type LedgerEntry struct {
	EntryID       string            `json:"entryID"`
	ApplicationID string            `json:"applicationID"`
	Status        ApplicationStatus `json:"status"`
	OccurredAt    time.Time         `json:"occurredAt"`
	Notes         string            `json:"notes"`
	Sequence      int64             `json:"sequence"`
	CreatedAt     time.Time         `json:"createdAt"`
}

// Before reports whether e is chronologically earlier than other.
func (e LedgerEntry) Before(other LedgerEntry) bool {
	if !e.OccurredAt.Equal(other.OccurredAt) {
		return e.OccurredAt.Before(other.OccurredAt)
	}
	return e.Sequence < other.Sequence
}

// LedgerMutationResult reports the state of an application after a ledger
// write. Repaired is set when a delete emptied the ledger and a DRAFT entry
// was synthesized in its place; Entry is then that DRAFT entry. After any
// other delete Entry is nil.
type LedgerMutationResult struct {
	Entry             *LedgerEntry
	ApplicationStatus ApplicationStatus
	Repaired          bool
}
