package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/job_tracker_app/internal/apperrors"
	"github.com/SscSPs/job_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/job_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/job_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/job_tracker_app/internal/dto"
	"github.com/google/uuid"
)

type companyService struct {
	BaseService
	companyRepo portsrepo.CompanyRepositoryFacade
}

// NewCompanyService creates a new company service
func NewCompanyService(companyRepo portsrepo.CompanyRepositoryFacade, options ...Option) portssvc.CompanySvcFacade {
	s := &companyService{BaseService: newBaseService(), companyRepo: companyRepo}
	s.apply(options)
	return s
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

func (s *companyService) ListCompanies(ctx context.Context, userID string) ([]domain.Company, error) {
	return s.companyRepo.ListCompanies(ctx, userID)
}

func (s *companyService) GetCompany(ctx context.Context, userID, companyID string) (*domain.Company, error) {
	return s.companyRepo.FindCompanyByID(ctx, userID, companyID)
}

func (s *companyService) CreateCompany(ctx context.Context, userID string, req dto.CreateCompanyRequest) (*domain.Company, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("company name is required")
	}
	now := s.now()
	company := domain.Company{
		CompanyID:    uuid.NewString(),
		UserID:       userID,
		Name:         name,
		Website:      req.Website,
		Street:       req.Street,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		Country:      req.Country,
		Industry:     req.Industry,
		CompanySize:  req.CompanySize,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Notes:        req.Notes,
		LogoURL:      req.LogoURL,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		s.LogError(ctx, err, "Failed to create company", slog.String("name", name))
		return nil, fmt.Errorf("failed to create company: %w", err)
	}
	s.LogInfo(ctx, "Company created", slog.String("company_id", company.CompanyID))
	return &company, nil
}

func (s *companyService) UpdateCompany(ctx context.Context, userID, companyID string, req dto.UpdateCompanyRequest) (*domain.Company, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}

	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("company name cannot be empty")
		}
		company.Name = name
	}
	set(&company.Website, req.Website)
	set(&company.Street, req.Street)
	set(&company.City, req.City)
	set(&company.State, req.State)
	set(&company.ZipCode, req.ZipCode)
	set(&company.Country, req.Country)
	set(&company.Industry, req.Industry)
	set(&company.CompanySize, req.CompanySize)
	set(&company.ContactName, req.ContactName)
	set(&company.ContactEmail, req.ContactEmail)
	set(&company.ContactPhone, req.ContactPhone)
	set(&company.Notes, req.Notes)
	set(&company.LogoURL, req.LogoURL)
	company.LastUpdatedAt = s.now()
	company.LastUpdatedBy = userID

	if err := s.companyRepo.UpdateCompany(ctx, *company); err != nil {
		s.LogError(ctx, err, "Failed to update company", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to update company: %w", err)
	}
	s.LogInfo(ctx, "Company updated", slog.String("company_id", companyID))
	return company, nil
}
