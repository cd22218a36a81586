package models

import (
	"database/sql"
	"time"
)

// Application is a row of the applications table.
type Application struct {
	ApplicationID  string   `db:"application_id"`
	UserID         string   `db:"user_id"`
	CompanyID      string   `db:"company_id"`
	JobTitle       string   `db:"job_title"`
	JobLink        string   `db:"job_link"`
	JobDescription string   `db:"job_description"`
	WorkLocation   string   `db:"work_location"`
	Priority       string   `db:"priority"`
	Notes          string   `db:"notes"`
	Favorited      bool     `db:"favorited"`
	FileURLs       []string `db:"file_urls"`
	Status         string   `db:"status"`
	AuditFields
}

// LedgerEntry is a row of the ledger_entries table. Sequence is a BIGSERIAL.
type LedgerEntry struct {
	EntryID       string    `db:"entry_id"`
	ApplicationID string    `db:"application_id"`
	Status        string    `db:"status"`
	OccurredAt    time.Time `db:"occurred_at"`
	Notes         string    `db:"notes"`
	Sequence      int64     `db:"sequence"`
	CreatedAt     time.Time `db:"created_at"`
}

// Interview is a row of the interviews table.
type Interview struct {
	InterviewID   string         `db:"interview_id"`
	ApplicationID string         `db:"application_id"`
	LedgerEntryID sql.NullString `db:"ledger_entry_id"`
	ScheduledAt   time.Time      `db:"scheduled_at"`
	Notes         string         `db:"notes"`
	Status        string         `db:"status"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}
