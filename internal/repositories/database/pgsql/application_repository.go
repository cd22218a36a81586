package pgsql

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/job_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/job_tracker_app/internal/core/ports/repositories"
	"github.com/SscSPs/job_tracker_app/internal/models"
	"github.com/SscSPs/job_tracker_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const applicationColumns = `
	a.application_id, a.user_id, a.company_id, a.job_title, a.job_link, a.job_description,
	a.work_location, a.priority, a.notes, a.favorited, a.file_urls, a.status,
	a.created_at, a.created_by, a.last_updated_at, a.last_updated_by`

type PgxApplicationRepository struct {
	BaseRepository
}

func newPgxApplicationRepository(pool *pgxpool.Pool) *PgxApplicationRepository {
	return &PgxApplicationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ApplicationRepositoryFacade = (*PgxApplicationRepository)(nil)

// scanApplication scans applicationColumns followed by companyColumns.
func scanApplication(row pgx.Row) (domain.Application, error) {
	var (
		a models.Application
		c models.Company
	)
	err := row.Scan(
		&a.ApplicationID, &a.UserID, &a.CompanyID, &a.JobTitle, &a.JobLink, &a.JobDescription,
		&a.WorkLocation, &a.Priority, &a.Notes, &a.Favorited, &a.FileURLs, &a.Status,
		&a.CreatedAt, &a.CreatedBy, &a.LastUpdatedAt, &a.LastUpdatedBy,
		&c.CompanyID, &c.UserID, &c.Name, &c.Website, &c.Street, &c.City, &c.State, &c.ZipCode,
		&c.Country, &c.Industry, &c.CompanySize, &c.ContactName, &c.ContactEmail, &c.ContactPhone,
		&c.Notes, &c.LogoURL, &c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
	)
	if err != nil {
		return domain.Application{}, err
	}
	app := mapping.ToDomainApplication(a)
	company := mapping.ToDomainCompany(c)
	app.Company = &company
	return app, nil
}

// findApplication loads one of the user's applications with its company and
// ledger. forUpdate takes the row lock.
func findApplication(ctx context.Context, q dbtx, userID, applicationID string, forUpdate bool) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + `, ` + companyColumns + `
		FROM applications a
		JOIN companies c ON c.company_id = a.company_id
		WHERE a.application_id = $1 AND a.user_id = $2`
	if forUpdate {
		query += ` FOR UPDATE OF a`
	}
	app, err := scanApplication(q.QueryRow(ctx, query, applicationID, userID))
	if err != nil {
		return nil, mapPgError(err, "application not found")
	}
	entries, err := listLedgerEntries(ctx, q, applicationID)
	if err != nil {
		return nil, err
	}
	app.LedgerEntries = entries
	return &app, nil
}

func (r *PgxApplicationRepository) FindApplicationByID(ctx context.Context, userID, applicationID string) (*domain.Application, error) {
	return findApplication(ctx, r.Pool, userID, applicationID, false)
}

func (r *PgxApplicationRepository) ListApplicationsWithLedger(ctx context.Context, userID string, filter domain.ApplicationFilter) ([]domain.Application, error) {
	var (
		where = []string{"a.user_id = $1"}
		args  = []any{userID}
	)
	if term := strings.TrimSpace(filter.Search); term != "" {
		args = append(args, "%"+escapeLike(term)+"%")
		where = append(where, "(a.job_title ILIKE $2 OR c.name ILIKE $2)")
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		args = append(args, statuses)
		where = append(where, "a.status = ANY($"+strconv.Itoa(len(args))+")")
	}

	query := `SELECT ` + applicationColumns + `, ` + companyColumns + `
		FROM applications a
		JOIN companies c ON c.company_id = a.company_id
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY a.created_at, a.application_id`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(err, "failed to list applications")
	}
	defer rows.Close()

	var (
		apps []domain.Application
		ids  []string
	)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, mapPgError(err, "failed to scan application")
		}
		apps = append(apps, app)
		ids = append(ids, app.ApplicationID)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "failed to iterate applications")
	}
	if len(apps) == 0 {
		return []domain.Application{}, nil
	}

	ledgers, err := listLedgersByApplication(ctx, r.Pool, ids)
	if err != nil {
		return nil, err
	}
	for i := range apps {
		apps[i].LedgerEntries = ledgers[apps[i].ApplicationID]
	}
	return apps, nil
}

// WithinLifecycleTx runs fn in one database transaction. Any error from fn
// rolls everything back.
func (r *PgxApplicationRepository) WithinLifecycleTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LifecycleTx) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // no-op after commit

	if err := fn(ctx, &pgxLifecycleTx{q: tx}); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// pgxLifecycleTx runs every LifecycleTx operation on one pgx.Tx.
type pgxLifecycleTx struct {
	q dbtx
}

var _ portsrepo.LifecycleTx = (*pgxLifecycleTx)(nil)

func (t *pgxLifecycleTx) LockApplication(ctx context.Context, userID, applicationID string) (*domain.Application, error) {
	return findApplication(ctx, t.q, userID, applicationID, true)
}

func (t *pgxLifecycleTx) SaveApplication(ctx context.Context, app domain.Application) error {
	m := mapping.ToModelApplication(app)
	query := `
		INSERT INTO applications (
			application_id, user_id, company_id, job_title, job_link, job_description,
			work_location, priority, notes, favorited, file_urls, status,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := t.q.Exec(ctx, query,
		m.ApplicationID, m.UserID, m.CompanyID, m.JobTitle, m.JobLink, m.JobDescription,
		m.WorkLocation, m.Priority, m.Notes, m.Favorited, m.FileURLs, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapPgError(err, "failed to insert application "+m.ApplicationID)
}

func (t *pgxLifecycleTx) UpdateApplicationDetails(ctx context.Context, app domain.Application) error {
	m := mapping.ToModelApplication(app)
	query := `
		UPDATE applications SET
			company_id = $2, job_title = $3, job_link = $4, job_description = $5,
			work_location = $6, priority = $7, notes = $8, favorited = $9, file_urls = $10,
			last_updated_at = $11, last_updated_by = $12
		WHERE application_id = $1;
	`
	tag, err := t.q.Exec(ctx, query,
		m.ApplicationID, m.CompanyID, m.JobTitle, m.JobLink, m.JobDescription,
		m.WorkLocation, m.Priority, m.Notes, m.Favorited, m.FileURLs,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to update application "+m.ApplicationID)
	}
	return expectOne(tag, "application")
}

func (t *pgxLifecycleTx) UpdateApplicationStatus(ctx context.Context, applicationID string, status domain.ApplicationStatus, updatedBy string, updatedAt time.Time) error {
	query := `UPDATE applications SET status = $2, last_updated_at = $3, last_updated_by = $4 WHERE application_id = $1;`
	tag, err := t.q.Exec(ctx, query, applicationID, string(status), updatedAt, updatedBy)
	if err != nil {
		return mapPgError(err, "failed to update application status")
	}
	return expectOne(tag, "application")
}

// DeleteApplication relies on ON DELETE CASCADE for ledger entries,
// interviews and reminders.
func (t *pgxLifecycleTx) DeleteApplication(ctx context.Context, applicationID string) error {
	tag, err := t.q.Exec(ctx, `DELETE FROM applications WHERE application_id = $1;`, applicationID)
	if err != nil {
		return mapPgError(err, "failed to delete application")
	}
	return expectOne(tag, "application")
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
