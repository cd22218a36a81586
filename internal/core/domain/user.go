package domain

import "time"

// User represents a user of the application in the domain.
type User struct {
	UserID string `json:"userID"` // Primary Key (e.g., UUID)
	Email  string `json:"email"`
	Name   string `json:"name"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
