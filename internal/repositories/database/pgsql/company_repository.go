package pgsql

import (
	"context"

	"github.com/SscSPs/job_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/job_tracker_app/internal/core/ports/repositories"
	"github.com/SscSPs/job_tracker_app/internal/models"
	"github.com/SscSPs/job_tracker_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const companyColumns = `
	c.company_id, c.user_id, c.name, c.website, c.street, c.city, c.state, c.zip_code,
	c.country, c.industry, c.company_size, c.contact_name, c.contact_email, c.contact_phone,
	c.notes, c.logo_url, c.created_at, c.created_by, c.last_updated_at, c.last_updated_by`

const insertCompanyQuery = `
	INSERT INTO companies (
		company_id, user_id, name, website, street, city, state, zip_code,
		country, industry, company_size, contact_name, contact_email, contact_phone,
		notes, logo_url, created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`

type PgxCompanyRepository struct {
	BaseRepository
}

func newPgxCompanyRepository(pool *pgxpool.Pool) *PgxCompanyRepository {
	return &PgxCompanyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CompanyRepositoryFacade = (*PgxCompanyRepository)(nil)

func scanCompany(row pgx.Row) (domain.Company, error) {
	var c models.Company
	err := row.Scan(
		&c.CompanyID, &c.UserID, &c.Name, &c.Website, &c.Street, &c.City, &c.State, &c.ZipCode,
		&c.Country, &c.Industry, &c.CompanySize, &c.ContactName, &c.ContactEmail, &c.ContactPhone,
		&c.Notes, &c.LogoURL, &c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
	)
	if err != nil {
		return domain.Company{}, err
	}
	return mapping.ToDomainCompany(c), nil
}

func companyArgs(m models.Company) []any {
	return []any{
		m.CompanyID, m.UserID, m.Name, m.Website, m.Street, m.City, m.State, m.ZipCode,
		m.Country, m.Industry, m.CompanySize, m.ContactName, m.ContactEmail, m.ContactPhone,
		m.Notes, m.LogoURL, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	}
}

func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, userID, companyID string) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies c WHERE c.company_id = $1 AND c.user_id = $2;`
	c, err := scanCompany(r.Pool.QueryRow(ctx, query, companyID, userID))
	if err != nil {
		return nil, mapPgError(err, "company not found")
	}
	return &c, nil
}

func (r *PgxCompanyRepository) ListCompanies(ctx context.Context, userID string) ([]domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies c WHERE c.user_id = $1 ORDER BY lower(c.name), c.company_id;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, mapPgError(err, "failed to list companies")
	}
	defer rows.Close()

	out := []domain.Company{}
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, mapPgError(err, "failed to scan company")
		}
		out = append(out, c)
	}
	return out, mapPgError(rows.Err(), "failed to iterate companies")
}

// SaveCompany relies on the (user_id, lower(name)) unique index for
// duplicate detection.
func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	_, err := r.Pool.Exec(ctx, insertCompanyQuery+`;`, companyArgs(mapping.ToModelCompany(company))...)
	return mapPgError(err, "failed to insert company "+company.Name)
}

func (r *PgxCompanyRepository) UpdateCompany(ctx context.Context, company domain.Company) error {
	m := mapping.ToModelCompany(company)
	query := `
		UPDATE companies SET
			name = $3, website = $4, street = $5, city = $6, state = $7, zip_code = $8,
			country = $9, industry = $10, company_size = $11, contact_name = $12,
			contact_email = $13, contact_phone = $14, notes = $15, logo_url = $16,
			last_updated_at = $17, last_updated_by = $18
		WHERE company_id = $1 AND user_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.CompanyID, m.UserID, m.Name, m.Website, m.Street, m.City, m.State, m.ZipCode,
		m.Country, m.Industry, m.CompanySize, m.ContactName, m.ContactEmail, m.ContactPhone,
		m.Notes, m.LogoURL, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to update company "+m.CompanyID)
	}
	return expectOne(tag, "company")
}

// UpsertCompanyByName inserts the company unless the user already has one of
// that name, then returns whichever row holds the name.
func (t *pgxLifecycleTx) UpsertCompanyByName(ctx context.Context, company domain.Company) (*domain.Company, error) {
	m := mapping.ToModelCompany(company)
	if _, err := t.q.Exec(ctx, insertCompanyQuery+` ON CONFLICT (user_id, (lower(name))) DO NOTHING;`, companyArgs(m)...); err != nil {
		return nil, mapPgError(err, "failed to insert company "+m.Name)
	}
	query := `SELECT ` + companyColumns + ` FROM companies c WHERE c.user_id = $1 AND lower(c.name) = lower($2);`
	c, err := scanCompany(t.q.QueryRow(ctx, query, m.UserID, m.Name))
	if err != nil {
		return nil, mapPgError(err, "company not found")
	}
	return &c, nil
}
