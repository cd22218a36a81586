// Package funnel turns application ledgers into chart projections. Nothing
// here writes; every function is a pure computation over its inputs.
package funnel

import (
	"time"

	"github.com/SscSPs/job_tracker_app/internal/core/domain"
)

// Window is the reporting window of a time frame.
type Window struct {
	Cutoff  time.Time
	AllTime bool
}

// Includes reports whether t falls inside the window. The cutoff itself is
// inside.
func (w Window) Includes(t time.Time) bool {
	return w.AllTime || !t.Before(w.Cutoff)
}

// ResolveWindow computes the window of tf relative to now. Unknown time
// frames resolve to the default one.
func ResolveWindow(tf domain.TimeFrame, now time.Time) Window {
	now = now.UTC()
	switch tf {
	case domain.TimeFrameAllTime:
		return Window{AllTime: true}
	case domain.TimeFrameThisYear:
		return Window{Cutoff: time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)}
	case domain.TimeFramePastMonth:
		return Window{Cutoff: now.AddDate(0, -1, 0)}
	case domain.TimeFramePast6Months:
		return Window{Cutoff: now.AddDate(0, -6, 0)}
	case domain.TimeFramePast12Months:
		return Window{Cutoff: now.AddDate(0, -12, 0)}
	default:
		return Window{Cutoff: now.AddDate(0, -3, 0)}
	}
}

// TrackedStatuses are the statuses reported on charts.
func TrackedStatuses() []domain.ApplicationStatus {
	all := domain.AllApplicationStatuses()
	tracked := make([]domain.ApplicationStatus, 0, len(all)-1)
	for _, s := range all {
		if s != domain.StatusDraft {
			tracked = append(tracked, s)
		}
	}
	return tracked
}
