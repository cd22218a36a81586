package funnel

import (
	"strconv"
	"time"

	"github.com/SscSPs/job_tracker_app/internal/core/domain"
	"github.com/SscSPs/job_tracker_app/internal/core/lifecycle"
	"github.com/shopspring/decimal"
)

const monthLabelFormat = "Jan 2006"

// qualifyingEntry returns the entry an application is counted by: its latest
// entry carrying its current status, when that entry is inside the window.
// Drafts are never counted.
func qualifyingEntry(app domain.Application, w Window) (domain.LedgerEntry, bool) {
	if app.Status == domain.StatusDraft {
		return domain.LedgerEntry{}, false
	}
	e, ok := lifecycle.LatestWithStatus(app.LedgerEntries, app.Status)
	if !ok || !w.Includes(e.OccurredAt) {
		return domain.LedgerEntry{}, false
	}
	return e, true
}

type bucket struct {
	label string
	start time.Time
	end   time.Time // exclusive
}

func monthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func yearStart(t time.Time) time.Time {
	return time.Date(t.UTC().Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
}

func buildBuckets(first, last time.Time, yearly bool) []bucket {
	var buckets []bucket
	if yearly {
		for s := yearStart(first); !s.After(last); s = s.AddDate(1, 0, 0) {
			buckets = append(buckets, bucket{label: strconv.Itoa(s.Year()), start: s, end: s.AddDate(1, 0, 0)})
		}
		return buckets
	}
	for s := monthStart(first); !s.After(last); s = s.AddDate(0, 1, 0) {
		buckets = append(buckets, bucket{label: s.Format(monthLabelFormat), start: s, end: s.AddDate(0, 1, 0)})
	}
	return buckets
}

// earliestTracked returns the earliest non-draft entry across apps.
func earliestTracked(apps []domain.Application) (time.Time, bool) {
	var (
		earliest time.Time
		found    bool
	)
	for _, app := range apps {
		for _, e := range app.LedgerEntries {
			if e.Status == domain.StatusDraft {
				continue
			}
			if !found || e.OccurredAt.Before(earliest) {
				earliest = e.OccurredAt
				found = true
			}
		}
	}
	return earliest, found
}

// PeriodCounts buckets applications by the date of their qualifying entry.
// Every application is counted in at most one bucket and every bucket in the
// range is reported, empty ones with zero counts.
func PeriodCounts(apps []domain.Application, tf domain.TimeFrame, now time.Time) []domain.PeriodCount {
	now = now.UTC()
	w := ResolveWindow(tf, now)

	first := w.Cutoff
	if w.AllTime {
		first = now
		if earliest, ok := earliestTracked(apps); ok {
			first = earliest
		}
	}

	last := now
	qualifying := make(map[string]domain.LedgerEntry, len(apps))
	for _, app := range apps {
		e, ok := qualifyingEntry(app, w)
		if !ok {
			continue
		}
		qualifying[app.ApplicationID] = e
		if e.OccurredAt.After(last) {
			last = e.OccurredAt
		}
		if e.OccurredAt.Before(first) {
			first = e.OccurredAt
		}
	}

	buckets := buildBuckets(first, last, w.AllTime)
	tracked := TrackedStatuses()
	out := make([]domain.PeriodCount, len(buckets))
	for i, b := range buckets {
		counts := make(map[domain.ApplicationStatus]int, len(tracked))
		for _, s := range tracked {
			counts[s] = 0
		}
		out[i] = domain.PeriodCount{Period: b.label, Start: b.start, Counts: counts}
	}

	for _, app := range apps {
		e, ok := qualifying[app.ApplicationID]
		if !ok {
			continue
		}
		at := e.OccurredAt.UTC()
		for i, b := range buckets {
			if !at.Before(b.start) && at.Before(b.end) {
				out[i].Counts[app.Status]++
				out[i].Total++
				break
			}
		}
	}
	return out
}

var hundred = decimal.NewFromInt(100)

// StatusSummary counts qualifying applications per tracked status and the
// share of each in percent, rounded to two places.
func StatusSummary(apps []domain.Application, tf domain.TimeFrame, now time.Time) domain.StatusSummary {
	w := ResolveWindow(tf, now)
	counts := make(map[domain.ApplicationStatus]int)
	total := 0
	for _, app := range apps {
		if _, ok := qualifyingEntry(app, w); ok {
			counts[app.Status]++
			total++
		}
	}

	tracked := TrackedStatuses()
	summary := domain.StatusSummary{TimeFrame: tf, Total: total, Shares: make([]domain.StatusShare, 0, len(tracked))}
	for _, s := range tracked {
		share := decimal.Zero
		if total > 0 {
			share = decimal.NewFromInt(int64(counts[s])).Mul(hundred).Div(decimal.NewFromInt(int64(total))).Round(2)
		}
		summary.Shares = append(summary.Shares, domain.StatusShare{Status: s, Count: counts[s], Share: share})
	}
	return summary
}
