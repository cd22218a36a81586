package domain

import "time"

// AuditFields holds standard audit information for user-owned entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID
}

// ScheduleOrder orders user-wide interview and reminder listings by their
// scheduled time.
type ScheduleOrder string

const (
	OrderNewest ScheduleOrder = "NEWEST"
	OrderOldest ScheduleOrder = "OLDEST"
)

// IsValid reports whether o is a known order.
func (o ScheduleOrder) IsValid() bool {
	return o == OrderNewest || o == OrderOldest
}
