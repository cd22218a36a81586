package services

import (
	"context"

	"github.com/SscSPs/job_tracker_app/internal/core/domain"
	"github.com/SscSPs/job_tracker_app/internal/dto"
)

// ApplicationReaderSvc defines read operations for applications
type ApplicationReaderSvc interface {
	// GetApplication retrieves one of the user's applications with its ledger.
	GetApplication(ctx context.Context, userID, applicationID string) (*domain.Application, error)

	// ListApplications filters, sorts and pages the user's applications.
	ListApplications(ctx context.Context, userID string, params dto.ListApplicationsParams) (*dto.ListApplicationsResponse, error)
}

// ApplicationWriterSvc defines write operations for applications
type ApplicationWriterSvc interface {
	// CreateApplication persists an application together with its first ledger entry.
	CreateApplication(ctx context.Context, userID string, req dto.CreateApplicationRequest) (*domain.Application, error)

	// UpdateApplication changes descriptive fields. The status is owned by the ledger.
	UpdateApplication(ctx context.Context, userID, applicationID string, req dto.UpdateApplicationRequest) (*domain.Application, error)

	// DeleteApplication removes the application and cancels its reminder jobs.
	DeleteApplication(ctx context.Context, userID, applicationID string) error
}

// ApplicationSvcFacade combines all application service interfaces
type ApplicationSvcFacade interface {
	ApplicationReaderSvc
	ApplicationWriterSvc
}
