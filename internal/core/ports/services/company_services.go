package services

import (
	"context"

	"github.com/SscSPs/job_tracker_app/internal/core/domain"
	"github.com/SscSPs/job_tracker_app/internal/dto"
)

// CompanySvcFacade defines company operations
type CompanySvcFacade interface {
	ListCompanies(ctx context.Context, userID string) ([]domain.Company, error)
	GetCompany(ctx context.Context, userID, companyID string) (*domain.Company, error)
	CreateCompany(ctx context.Context, userID string, req dto.CreateCompanyRequest) (*domain.Company, error)
	UpdateCompany(ctx context.Context, userID, companyID string, req dto.UpdateCompanyRequest) (*domain.Company, error)
}
