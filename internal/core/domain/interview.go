package domain

import "time"

// InterviewStatus is derived from the scheduled time at write time.
type InterviewStatus string

const (
	InterviewUpcoming InterviewStatus = "UPCOMING"
	InterviewDone     InterviewStatus = "DONE"
)

// Interview mirrors an INTERVIEW ledger entry. LedgerEntryID links it to its
// entry; rows created before the link existed are matched on
// (ApplicationID, ScheduledAt) instead.
type Interview struct {
	InterviewID   string          `json:"interviewID"`
	ApplicationID string          `json:"applicationID"`
	LedgerEntryID *string         `json:"ledgerEntryID,omitempty"`
	ScheduledAt   time.Time       `json:"scheduledAt"`
	Notes         string          `json:"notes"`
	Status        InterviewStatus `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// InterviewStatusAt returns UPCOMING when scheduledAt is after now, DONE otherwise.
func InterviewStatusAt(scheduledAt, now time.Time) InterviewStatus {
	if scheduledAt.After(now) {
		return InterviewUpcoming
	}
	return InterviewDone
}

// IsValid reports whether s is a known interview status.
func (s InterviewStatus) IsValid() bool {
	return s == InterviewUpcoming || s == InterviewDone
}

// InterviewFilter narrows a user-wide interview listing. An empty Status
// matches every interview.
type InterviewFilter struct {
	Status InterviewStatus
	Order  ScheduleOrder
}
