package domain

// ApplicationStatus is the lifecycle status of a job application.
type ApplicationStatus string

const (
	StatusDraft         ApplicationStatus = "DRAFT"
	StatusApplied       ApplicationStatus = "APPLIED"
	StatusInterview     ApplicationStatus = "INTERVIEW"
	StatusOffer         ApplicationStatus = "OFFER"
	StatusHired         ApplicationStatus = "HIRED"
	StatusDeclinedOffer ApplicationStatus = "DECLINED_OFFER"
	StatusRejected      ApplicationStatus = "REJECTED"
	StatusGhosted       ApplicationStatus = "GHOSTED"
	StatusWithdrawn     ApplicationStatus = "WITHDRAWN"
)

// AllApplicationStatuses returns every status in declaration order.
func AllApplicationStatuses() []ApplicationStatus {
	return []ApplicationStatus{
		StatusDraft,
		StatusApplied,
		StatusInterview,
		StatusOffer,
		StatusHired,
		StatusDeclinedOffer,
		StatusRejected,
		StatusGhosted,
		StatusWithdrawn,
	}
}

// IsValid reports whether s is one of the known statuses.
func (s ApplicationStatus) IsValid() bool {
	for _, known := range AllApplicationStatuses() {
		if s == known {
			return true
		}
	}
	return false
}

// WorkLocation describes where the job is performed.
type WorkLocation string

const (
	WorkLocationOnSite WorkLocation = "ON_SITE"
	WorkLocationRemote WorkLocation = "REMOTE"
	WorkLocationHybrid WorkLocation = "HYBRID"
	WorkLocationUnsure WorkLocation = "UNSURE"
)

// Priority is the user-assigned importance of an application.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Rank orders priorities; higher is more important. Unknown values rank lowest.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Application is a single job application owned by a user.
// Status is a cached projection of LedgerEntries and is only written by the
// lifecycle synchronizer.
type Application struct {
	ApplicationID  string            `json:"applicationID"`
	UserID         string            `json:"userID"`
	CompanyID      string            `json:"companyID"`
	Company        *Company          `json:"company,omitempty"`
	JobTitle       string            `json:"jobTitle"`
	JobLink        string            `json:"jobLink"`
	JobDescription string            `json:"jobDescription"`
	WorkLocation   WorkLocation      `json:"workLocation"`
	Priority       Priority          `json:"priority"`
	Notes          string            `json:"notes"`
	Favorited      bool              `json:"favorited"`
	FileURLs       []string          `json:"fileURLs"`
	Status         ApplicationStatus `json:"status"`

	// Loaded on demand
	LedgerEntries []LedgerEntry `json:"ledgerEntries,omitempty"`
	AuditFields
}

// SortMode selects the ordering of an application list.
type SortMode string

const (
	SortDateNew      SortMode = "DATE_NEW"
	SortDateOld      SortMode = "DATE_OLD"
	SortAlphabetical SortMode = "ALPHABETICAL"
	SortPriority     SortMode = "PRIORITY"
)

// ApplicationFilter narrows an application listing.
type ApplicationFilter struct {
	Search   string
	Statuses []ApplicationStatus
}

// IsValid reports whether l is a known work location.
func (l WorkLocation) IsValid() bool {
	switch l {
	case WorkLocationOnSite, WorkLocationRemote, WorkLocationHybrid, WorkLocationUnsure:
		return true
	}
	return false
}

// IsValid reports whether p is a known priority.
func (p Priority) IsValid() bool {
	return p.Rank() > 0
}

// IsValid reports whether m is a known sort mode.
func (m SortMode) IsValid() bool {
	switch m {
	case SortDateNew, SortDateOld, SortAlphabetical, SortPriority:
		return true
	}
	return false
}
