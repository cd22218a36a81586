// Package lifecycle holds the pure rules that tie an application's status to
// its ledger: phase classification, status derivation and date ordering.
package lifecycle

import "github.com/SscSPs/job_tracker_app/internal/core/domain"

// Phase is the coarse lifecycle stage of a status.
type Phase int

const (
	PhaseDraft Phase = iota
	PhaseActive
	PhaseTerminal
)

func (p Phase) String() string {
	switch p {
	case PhaseDraft:
		return "draft"
	case PhaseActive:
		return "active"
	default:
		return "terminal"
	}
}

// PhaseOf classifies a status. Only outcomes are terminal; anything else that
// is not DRAFT, including statuses added later, is active.
func PhaseOf(status domain.ApplicationStatus) Phase {
	switch status {
	case domain.StatusDraft:
		return PhaseDraft
	case domain.StatusOffer, domain.StatusHired, domain.StatusDeclinedOffer,
		domain.StatusRejected, domain.StatusWithdrawn:
		return PhaseTerminal
	default:
		return PhaseActive
	}
}

// IsTerminal reports whether status ends the application's lifecycle.
func IsTerminal(status domain.ApplicationStatus) bool {
	return PhaseOf(status) == PhaseTerminal
}
