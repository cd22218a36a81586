package mapping

import (
	"database/sql"

	"github.com/SscSPs/job_tracker_app/internal/core/domain"
	"github.com/SscSPs/job_tracker_app/internal/models"
)

// ToModelApplication converts a domain Application to a model Application.
// Company and ledger are stored in their own tables and are not carried.
func ToModelApplication(d domain.Application) models.Application {
	fileURLs := d.FileURLs
	if fileURLs == nil {
		fileURLs = []string{}
	}
	return models.Application{
		ApplicationID:  d.ApplicationID,
		UserID:         d.UserID,
		CompanyID:      d.CompanyID,
		JobTitle:       d.JobTitle,
		JobLink:        d.JobLink,
		JobDescription: d.JobDescription,
		WorkLocation:   string(d.WorkLocation),
		Priority:       string(d.Priority),
		Notes:          d.Notes,
		Favorited:      d.Favorited,
		FileURLs:       fileURLs,
		Status:         string(d.Status),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainApplication converts a model Application to a domain Application
func ToDomainApplication(m models.Application) domain.Application {
	return domain.Application{
		ApplicationID:  m.ApplicationID,
		UserID:         m.UserID,
		CompanyID:      m.CompanyID,
		JobTitle:       m.JobTitle,
		JobLink:        m.JobLink,
		JobDescription: m.JobDescription,
		WorkLocation:   domain.WorkLocation(m.WorkLocation),
		Priority:       domain.Priority(m.Priority),
		Notes:          m.Notes,
		Favorited:      m.Favorited,
		FileURLs:       m.FileURLs,
		Status:         domain.ApplicationStatus(m.Status),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:       d.EntryID,
		ApplicationID: d.ApplicationID,
		Status:        string(d.Status),
		OccurredAt:    d.OccurredAt,
		Notes:         d.Notes,
		Sequence:      d.Sequence,
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:       m.EntryID,
		ApplicationID: m.ApplicationID,
		Status:        domain.ApplicationStatus(m.Status),
		OccurredAt:    m.OccurredAt.UTC(),
		Notes:         m.Notes,
		Sequence:      m.Sequence,
		CreatedAt:     m.CreatedAt.UTC(),
	}
}

// ToModelInterview converts a domain Interview to a model Interview
func ToModelInterview(d domain.Interview) models.Interview {
	return models.Interview{
		InterviewID:   d.InterviewID,
		ApplicationID: d.ApplicationID,
		LedgerEntryID: ToNullString(d.LedgerEntryID),
		ScheduledAt:   d.ScheduledAt,
		Notes:         d.Notes,
		Status:        string(d.Status),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// ToDomainInterview converts a model Interview to a domain Interview
func ToDomainInterview(m models.Interview) domain.Interview {
	return domain.Interview{
		InterviewID:   m.InterviewID,
		ApplicationID: m.ApplicationID,
		LedgerEntryID: FromNullString(m.LedgerEntryID),
		ScheduledAt:   m.ScheduledAt.UTC(),
		Notes:         m.Notes,
		Status:        domain.InterviewStatus(m.Status),
		CreatedAt:     m.CreatedAt.UTC(),
		UpdatedAt:     m.UpdatedAt.UTC(),
	}
}

// ToNullString converts an optional string to sql.NullString
func ToNullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

// FromNullString converts sql.NullString to an optional string
func FromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
