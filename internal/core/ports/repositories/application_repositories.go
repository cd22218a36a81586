package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/job_tracker_app/internal/core/domain"
)

// ApplicationReader defines read operations for application data.
// All lookups are scoped to the owning user; a foreign application is ErrNotFound.
type ApplicationReader interface {
	// FindApplicationByID retrieves an application with its company.
	FindApplicationByID(ctx context.Context, userID, applicationID string) (*domain.Application, error)

	// ListApplicationsWithLedger retrieves the user's applications matching filter,
	// each with its company and full ledger.
	ListApplicationsWithLedger(ctx context.Context, userID string, filter domain.ApplicationFilter) ([]domain.Application, error)
}

// ApplicationTxWriter defines application writes that take part in a lifecycle transaction.
type ApplicationTxWriter interface {
	// LockApplication loads the application and holds its row lock until the transaction ends.
	LockApplication(ctx context.Context, userID, applicationID string) (*domain.Application, error)

	// SaveApplication inserts a new application.
	SaveApplication(ctx context.Context, app domain.Application) error

	// UpdateApplicationDetails updates the descriptive fields. Status is not touched.
	UpdateApplicationDetails(ctx context.Context, app domain.Application) error

	// UpdateApplicationStatus writes the cached status.
	UpdateApplicationStatus(ctx context.Context, applicationID string, status domain.ApplicationStatus, updatedBy string, updatedAt time.Time) error

	// DeleteApplication removes the application and, by cascade, its ledger, interviews and reminders.
	DeleteApplication(ctx context.Context, applicationID string) error
}

// ApplicationRepositoryFacade combines the application read side with the unit of work.
type ApplicationRepositoryFacade interface {
	ApplicationReader
	LifecycleUnitOfWork
}
