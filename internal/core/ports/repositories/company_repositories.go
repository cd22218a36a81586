package repositories

import (
	"context"

	"github.com/SscSPs/job_tracker_app/internal/core/domain"
)

// CompanyReader defines read operations for companies.
type CompanyReader interface {
	FindCompanyByID(ctx context.Context, userID, companyID string) (*domain.Company, error)

	// ListCompanies returns the user's companies ordered by name.
	ListCompanies(ctx context.Context, userID string) ([]domain.Company, error)
}

// CompanyWriter defines write operations for companies.
type CompanyWriter interface {
	// SaveCompany inserts a company. A name already used by the user is ErrDuplicate.
	SaveCompany(ctx context.Context, company domain.Company) error
	UpdateCompany(ctx context.Context, company domain.Company) error
}

// CompanyTxWriter resolves companies while an application is being written.
type CompanyTxWriter interface {
	// UpsertCompanyByName returns the user's company called company.Name,
	// inserting company when none exists.
	UpsertCompanyByName(ctx context.Context, company domain.Company) (*domain.Company, error)
}

// CompanyRepositoryFacade combines all company repository interfaces.
type CompanyRepositoryFacade interface {
	CompanyReader
	CompanyWriter
}
