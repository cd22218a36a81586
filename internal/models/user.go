package models

import "time"

// User is a row of the users table. Users are provisioned by the identity
// provider; this service only reads them.
type User struct {
	UserID string `db:"user_id"`
	Email  string `db:"email"`
	Name   string `db:"name"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
