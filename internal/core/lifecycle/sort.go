package lifecycle

import (
	"sort"
	"time"

	"github.com/SscSPs/job_tracker_app/internal/core/domain"
)

// SortDirection orders dates within a phase group.
type SortDirection int

const (
	NewestFirst SortDirection = iota
	OldestFirst
)

// RelevantDate returns the date an application is ordered by:
//   - draft: its most recent DRAFT entry
//   - active: its most recent APPLIED entry
//   - terminal: its most recent entry carrying the current status
//
// ok is false when no such entry exists.
func RelevantDate(app domain.Application) (time.Time, bool) {
	want := app.Status
	if PhaseOf(app.Status) == PhaseActive {
		want = domain.StatusApplied
	}
	entry, ok := LatestWithStatus(app.LedgerEntries, want)
	if !ok {
		return time.Time{}, false
	}
	return entry.OccurredAt, true
}

type sortKey struct {
	phase Phase
	date  time.Time
	known bool
}

// SortByDate returns apps grouped draft, active, terminal, each group ordered
// by RelevantDate in the given direction. Applications without a relevant
// date go last within their group in either direction. Full ties keep their
// input order; repositories list applications by (CreatedAt, ApplicationID),
// which makes the result deterministic.
func SortByDate(apps []domain.Application, dir SortDirection) []domain.Application {
	keys := make(map[string]sortKey, len(apps))
	for _, app := range apps {
		date, known := RelevantDate(app)
		keys[app.ApplicationID] = sortKey{phase: PhaseOf(app.Status), date: date, known: known}
	}

	sorted := make([]domain.Application, len(apps))
	copy(sorted, apps)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := keys[sorted[i].ApplicationID], keys[sorted[j].ApplicationID]
		if a.phase != b.phase {
			return a.phase < b.phase
		}
		if a.known != b.known {
			return a.known
		}
		if a.known && !a.date.Equal(b.date) {
			if dir == OldestFirst {
				return a.date.Before(b.date)
			}
			return a.date.After(b.date)
		}
		return false
	})
	return sorted
}
