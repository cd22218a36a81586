package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/job_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/job_tracker_app/internal/core/ports/repositories"
	"github.com/SscSPs/job_tracker_app/internal/models"
	"github.com/SscSPs/job_tracker_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const interviewColumns = `i.interview_id, i.application_id, i.ledger_entry_id, i.scheduled_at, i.notes, i.status, i.created_at, i.updated_at`

type PgxInterviewRepository struct {
	BaseRepository
}

func newPgxInterviewRepository(pool *pgxpool.Pool) *PgxInterviewRepository {
	return &PgxInterviewRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InterviewRepositoryFacade = (*PgxInterviewRepository)(nil)

func scanInterview(row pgx.Row) (domain.Interview, error) {
	var m models.Interview
	err := row.Scan(&m.InterviewID, &m.ApplicationID, &m.LedgerEntryID, &m.ScheduledAt, &m.Notes, &m.Status, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return domain.Interview{}, err
	}
	return mapping.ToDomainInterview(m), nil
}

// findInterviewForEntry prefers the linked row; unlinked rows match on the
// scheduled time. A miss is (nil, nil).
func findInterviewForEntry(ctx context.Context, q dbtx, applicationID, entryID string, occurredAt time.Time) (*domain.Interview, error) {
	query := `SELECT ` + interviewColumns + `
		FROM interviews i
		WHERE i.application_id = $1
		  AND (i.ledger_entry_id = $2 OR (i.ledger_entry_id IS NULL AND i.scheduled_at = $3))
		ORDER BY (i.ledger_entry_id IS NULL), i.created_at
		LIMIT 1;`
	iv, err := scanInterview(q.QueryRow(ctx, query, applicationID, entryID, occurredAt))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapPgError(err, "failed to find interview for ledger entry")
	}
	return &iv, nil
}

func findInterviewByID(ctx context.Context, q dbtx, userID, interviewID string) (*domain.Interview, error) {
	query := `SELECT ` + interviewColumns + `
		FROM interviews i
		JOIN applications a ON a.application_id = i.application_id
		WHERE i.interview_id = $1 AND a.user_id = $2;`
	iv, err := scanInterview(q.QueryRow(ctx, query, interviewID, userID))
	if err != nil {
		return nil, mapPgError(err, "interview not found")
	}
	return &iv, nil
}

func listInterviews(ctx context.Context, q dbtx, applicationID string) ([]domain.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews i WHERE i.application_id = $1 ORDER BY i.scheduled_at, i.interview_id;`
	rows, err := q.Query(ctx, query, applicationID)
	if err != nil {
		return nil, mapPgError(err, "failed to list interviews")
	}
	defer rows.Close()

	out := []domain.Interview{}
	for rows.Next() {
		iv, err := scanInterview(rows)
		if err != nil {
			return nil, mapPgError(err, "failed to scan interview")
		}
		out = append(out, iv)
	}
	return out, mapPgError(rows.Err(), "failed to iterate interviews")
}

func (r *PgxInterviewRepository) FindInterviewForEntry(ctx context.Context, applicationID, entryID string, occurredAt time.Time) (*domain.Interview, error) {
	return findInterviewForEntry(ctx, r.Pool, applicationID, entryID, occurredAt)
}

func (r *PgxInterviewRepository) FindInterviewByID(ctx context.Context, userID, interviewID string) (*domain.Interview, error) {
	return findInterviewByID(ctx, r.Pool, userID, interviewID)
}

func (r *PgxInterviewRepository) ListInterviews(ctx context.Context, applicationID string) ([]domain.Interview, error) {
	return listInterviews(ctx, r.Pool, applicationID)
}

func (t *pgxLifecycleTx) FindInterviewForEntry(ctx context.Context, applicationID, entryID string, occurredAt time.Time) (*domain.Interview, error) {
	return findInterviewForEntry(ctx, t.q, applicationID, entryID, occurredAt)
}

func (t *pgxLifecycleTx) FindInterviewByID(ctx context.Context, userID, interviewID string) (*domain.Interview, error) {
	return findInterviewByID(ctx, t.q, userID, interviewID)
}

func (t *pgxLifecycleTx) ListInterviews(ctx context.Context, applicationID string) ([]domain.Interview, error) {
	return listInterviews(ctx, t.q, applicationID)
}

func (t *pgxLifecycleTx) SaveInterview(ctx context.Context, interview domain.Interview) error {
	m := mapping.ToModelInterview(interview)
	query := `
		INSERT INTO interviews (interview_id, application_id, ledger_entry_id, scheduled_at, notes, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := t.q.Exec(ctx, query, m.InterviewID, m.ApplicationID, m.LedgerEntryID, m.ScheduledAt, m.Notes, m.Status, m.CreatedAt, m.UpdatedAt)
	return mapPgError(err, "failed to insert interview "+m.InterviewID)
}

func (t *pgxLifecycleTx) UpdateInterview(ctx context.Context, interview domain.Interview) error {
	m := mapping.ToModelInterview(interview)
	query := `
		UPDATE interviews SET ledger_entry_id = $2, scheduled_at = $3, notes = $4, status = $5, updated_at = $6
		WHERE interview_id = $1;
	`
	tag, err := t.q.Exec(ctx, query, m.InterviewID, m.LedgerEntryID, m.ScheduledAt, m.Notes, m.Status, m.UpdatedAt)
	if err != nil {
		return mapPgError(err, "failed to update interview "+m.InterviewID)
	}
	return expectOne(tag, "interview")
}

func (t *pgxLifecycleTx) DeleteInterview(ctx context.Context, interviewID string) error {
	tag, err := t.q.Exec(ctx, `DELETE FROM interviews WHERE interview_id = $1;`, interviewID)
	if err != nil {
		return mapPgError(err, "failed to delete interview "+interviewID)
	}
	return expectOne(tag, "interview")
}

// scheduleDirection turns a validated order into an SQL sort direction.
func scheduleDirection(order domain.ScheduleOrder) string {
	if order == domain.OrderOldest {
		return "ASC"
	}
	return "DESC"
}

func (r *PgxInterviewRepository) ListUserInterviews(ctx context.Context, userID string, filter domain.InterviewFilter) ([]domain.Interview, error) {
	query := `SELECT ` + interviewColumns + `
		FROM interviews i
		JOIN applications a ON a.application_id = i.application_id
		WHERE a.user_id = $1 AND ($2::text = '' OR i.status = $2::text)
		ORDER BY i.scheduled_at ` + scheduleDirection(filter.Order) + `, i.interview_id;`
	rows, err := r.Pool.Query(ctx, query, userID, string(filter.Status))
	if err != nil {
		return nil, mapPgError(err, "failed to list user interviews")
	}
	defer rows.Close()

	out := []domain.Interview{}
	for rows.Next() {
		iv, err := scanInterview(rows)
		if err != nil {
			return nil, mapPgError(err, "failed to scan interview")
		}
		out = append(out, iv)
	}
	return out, mapPgError(rows.Err(), "failed to iterate interviews")
}
