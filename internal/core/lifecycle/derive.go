package lifecycle

import (
	"fmt"

	"github.com/SscSPs/job_tracker_app/internal/core/domain"
)

// MutationKind is the kind of ledger write being derived from.
type MutationKind int

const (
	MutationCreate MutationKind = iota
	MutationUpdate
	MutationDelete
)

func (k MutationKind) String() string {
	switch k {
	case MutationCreate:
		return "create"
	case MutationUpdate:
		return "update"
	case MutationDelete:
		return "delete"
	}
	return fmt.Sprintf("MutationKind(%d)", int(k))
}

type changeKind int

const (
	changeNone changeKind = iota
	changeUpdated
	changeLedgerEmpty
)

// StatusChange is the outcome of a derivation: Unchanged, Updated(status), or
// LedgerEmpty when a delete removed the last entry and the caller must repair.
type StatusChange struct {
	kind   changeKind
	status domain.ApplicationStatus
}

// Unchanged leaves the cached status alone.
func Unchanged() StatusChange { return StatusChange{kind: changeNone} }

// Updated sets the cached status to status.
func Updated(status domain.ApplicationStatus) StatusChange {
	return StatusChange{kind: changeUpdated, status: status}
}

// LedgerEmpty signals that no entry is left to derive from.
func LedgerEmpty() StatusChange { return StatusChange{kind: changeLedgerEmpty} }

// Status returns the new status and true when the change is Updated.
func (c StatusChange) Status() (domain.ApplicationStatus, bool) {
	return c.status, c.kind == changeUpdated
}

// IsLedgerEmpty reports whether the caller has to synthesize a DRAFT entry.
func (c StatusChange) IsLedgerEmpty() bool { return c.kind == changeLedgerEmpty }

func (c StatusChange) String() string {
	switch c.kind {
	case changeUpdated:
		return "Updated(" + string(c.status) + ")"
	case changeLedgerEmpty:
		return "LedgerEmpty"
	default:
		return "Unchanged"
	}
}

// Latest returns the chronologically last entry: greatest OccurredAt, ties
// going to the greatest Sequence.
func Latest(entries []domain.LedgerEntry) (domain.LedgerEntry, bool) {
	if len(entries) == 0 {
		return domain.LedgerEntry{}, false
	}
	latest := entries[0]
	for _, e := range entries[1:] {
		if latest.Before(e) {
			latest = e
		}
	}
	return latest, true
}

// LatestWithStatus returns the chronologically last entry carrying status.
func LatestWithStatus(entries []domain.LedgerEntry, status domain.ApplicationStatus) (domain.LedgerEntry, bool) {
	var (
		latest domain.LedgerEntry
		found  bool
	)
	for _, e := range entries {
		if e.Status != status {
			continue
		}
		if !found || latest.Before(e) {
			latest = e
			found = true
		}
	}
	return latest, found
}

// ApplyMutation returns the ledger as it looks after the mutation. The input
// slice is not modified.
func ApplyMutation(existing []domain.LedgerEntry, mutated domain.LedgerEntry, kind MutationKind) []domain.LedgerEntry {
	out := make([]domain.LedgerEntry, 0, len(existing)+1)
	for _, e := range existing {
		if e.EntryID == mutated.EntryID {
			if kind == MutationUpdate {
				out = append(out, mutated)
			}
			continue
		}
		out = append(out, e)
	}
	if kind == MutationCreate {
		out = append(out, mutated)
	}
	return out
}

// DeriveStatus computes the effect of a ledger mutation on the cached status.
// existing is the ledger before the mutation; current is the cached status.
//
// The chronologically last entry after the mutation always decides the status.
// If the mutated entry becomes that entry, its status wins. If a delete
// empties the ledger, LedgerEmpty is returned.
func DeriveStatus(current domain.ApplicationStatus, existing []domain.LedgerEntry, mutated domain.LedgerEntry, kind MutationKind) StatusChange {
	after := ApplyMutation(existing, mutated, kind)
	latest, ok := Latest(after)
	if !ok {
		return LedgerEmpty()
	}
	if latest.Status == current {
		return Unchanged()
	}
	return Updated(latest.Status)
}
