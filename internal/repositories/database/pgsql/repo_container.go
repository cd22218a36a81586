package pgsql

import (
	portsrepo "github.com/SscSPs/job_tracker_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ApplicationRepository: newPgxApplicationRepository(dbPool),
		InterviewRepository:   newPgxInterviewRepository(dbPool),
		ReminderRepository:    newPgxReminderRepository(dbPool),
		CompanyRepository:     newPgxCompanyRepository(dbPool),
		UserRepository:        newPgxUserRepository(dbPool),
	}
}
