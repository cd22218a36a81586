package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/job_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/job_tracker_app/internal/core/ports/repositories"
	"github.com/SscSPs/job_tracker_app/internal/models"
	"github.com/SscSPs/job_tracker_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reminderColumns takes the owner from the application the reminder hangs off.
const reminderColumns = `r.reminder_id, r.application_id, a.user_id, r.alarm_date, r.message, r.status, r.job_id, r.created_at, r.updated_at`

type PgxReminderRepository struct {
	BaseRepository
}

func newPgxReminderRepository(pool *pgxpool.Pool) *PgxReminderRepository {
	return &PgxReminderRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReminderRepositoryFacade = (*PgxReminderRepository)(nil)

func scanReminder(row pgx.Row, extra ...any) (domain.Reminder, error) {
	var m models.Reminder
	dest := []any{&m.ReminderID, &m.ApplicationID, &m.UserID, &m.AlarmDate, &m.Message, &m.Status, &m.JobID, &m.CreatedAt, &m.UpdatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return domain.Reminder{}, err
	}
	return mapping.ToDomainReminder(m), nil
}

func (r *PgxReminderRepository) FindReminderByID(ctx context.Context, userID, reminderID string) (*domain.Reminder, error) {
	query := `SELECT ` + reminderColumns + `
		FROM reminders r
		JOIN applications a ON a.application_id = r.application_id
		WHERE r.reminder_id = $1 AND a.user_id = $2;`
	rem, err := scanReminder(r.Pool.QueryRow(ctx, query, reminderID, userID))
	if err != nil {
		return nil, mapPgError(err, "reminder not found")
	}
	return &rem, nil
}

func (r *PgxReminderRepository) ListReminders(ctx context.Context, applicationID string) ([]domain.Reminder, error) {
	query := `SELECT ` + reminderColumns + `
		FROM reminders r
		JOIN applications a ON a.application_id = r.application_id
		WHERE r.application_id = $1
		ORDER BY r.alarm_date, r.reminder_id;`
	rows, err := r.Pool.Query(ctx, query, applicationID)
	if err != nil {
		return nil, mapPgError(err, "failed to list reminders")
	}
	defer rows.Close()

	out := []domain.Reminder{}
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, mapPgError(err, "failed to scan reminder")
		}
		out = append(out, rem)
	}
	return out, mapPgError(rows.Err(), "failed to iterate reminders")
}

func (r *PgxReminderRepository) ListUserReminders(ctx context.Context, userID string, filter domain.ReminderFilter) ([]domain.Reminder, error) {
	query := `SELECT ` + reminderColumns + `
		FROM reminders r
		JOIN applications a ON a.application_id = r.application_id
		WHERE a.user_id = $1 AND ($2::text = '' OR r.status = $2::text)
		ORDER BY r.alarm_date ` + scheduleDirection(filter.Order) + `, r.reminder_id;`
	rows, err := r.Pool.Query(ctx, query, userID, string(filter.Status))
	if err != nil {
		return nil, mapPgError(err, "failed to list user reminders")
	}
	defer rows.Close()

	out := []domain.Reminder{}
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, mapPgError(err, "failed to scan reminder")
		}
		out = append(out, rem)
	}
	return out, mapPgError(rows.Err(), "failed to iterate reminders")
}

// FindReminderNotice left-joins users so a reminder whose owner row is gone
// still loads, without an address.
func (r *PgxReminderRepository) FindReminderNotice(ctx context.Context, reminderID string) (*domain.ReminderNotice, error) {
	query := `SELECT ` + reminderColumns + `,
			COALESCE(u.email, ''), COALESCE(u.name, ''), a.job_title, c.name
		FROM reminders r
		JOIN applications a ON a.application_id = r.application_id
		JOIN companies c ON c.company_id = a.company_id
		LEFT JOIN users u ON u.user_id = a.user_id AND u.deleted_at IS NULL
		WHERE r.reminder_id = $1;`
	var notice domain.ReminderNotice
	rem, err := scanReminder(r.Pool.QueryRow(ctx, query, reminderID),
		&notice.UserEmail, &notice.UserName, &notice.JobTitle, &notice.CompanyName)
	if err != nil {
		return nil, mapPgError(err, "reminder not found")
	}
	notice.Reminder = rem
	return &notice, nil
}

func (r *PgxReminderRepository) SaveReminder(ctx context.Context, reminder domain.Reminder) error {
	m := mapping.ToModelReminder(reminder)
	query := `
		INSERT INTO reminders (reminder_id, application_id, alarm_date, message, status, job_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query, m.ReminderID, m.ApplicationID, m.AlarmDate, m.Message, m.Status, m.JobID, m.CreatedAt, m.UpdatedAt)
	return mapPgError(err, "failed to insert reminder "+m.ReminderID)
}

func (r *PgxReminderRepository) UpdateReminder(ctx context.Context, reminder domain.Reminder) error {
	m := mapping.ToModelReminder(reminder)
	query := `UPDATE reminders SET alarm_date = $2, message = $3, status = $4, updated_at = $5 WHERE reminder_id = $1;`
	tag, err := r.Pool.Exec(ctx, query, m.ReminderID, m.AlarmDate, m.Message, m.Status, m.UpdatedAt)
	if err != nil {
		return mapPgError(err, "failed to update reminder "+m.ReminderID)
	}
	return expectOne(tag, "reminder")
}

func (r *PgxReminderRepository) SetReminderJobID(ctx context.Context, reminderID string, jobID *string, updatedAt time.Time) error {
	query := `UPDATE reminders SET job_id = $2, updated_at = $3 WHERE reminder_id = $1;`
	tag, err := r.Pool.Exec(ctx, query, reminderID, mapping.ToNullString(jobID), updatedAt)
	if err != nil {
		return mapPgError(err, "failed to set reminder job id")
	}
	return expectOne(tag, "reminder")
}

// MarkReminderFired is a single conditional UPDATE, so of two deliveries of
// the same job only one sees a row affected.
func (r *PgxReminderRepository) MarkReminderFired(ctx context.Context, reminderID, jobID string, firedAt time.Time) (bool, error) {
	query := `
		UPDATE reminders SET status = $4, updated_at = $3
		WHERE reminder_id = $1 AND job_id = $2 AND status = $5;
	`
	tag, err := r.Pool.Exec(ctx, query, reminderID, jobID, firedAt, string(domain.ReminderDone), string(domain.ReminderActive))
	if err != nil {
		return false, mapPgError(err, "failed to mark reminder fired")
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PgxReminderRepository) DeleteReminder(ctx context.Context, reminderID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM reminders WHERE reminder_id = $1;`, reminderID)
	if err != nil {
		return mapPgError(err, "failed to delete reminder "+reminderID)
	}
	return expectOne(tag, "reminder")
}
