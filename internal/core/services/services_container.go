package services

import (
	portsrepo "github.com/SscSPs/job_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/job_tracker_app/internal/core/ports/services"
)

// Dependencies are the adapters the services are wired to besides storage.
type Dependencies struct {
	Scheduler portssvc.JobScheduler
	Notifier  portssvc.Notifier
	Policy    portssvc.SchedulingPolicy
}

// NewServiceContainer creates a new service container with all services initialized
func NewServiceContainer(repos portsrepo.RepositoryProvider, deps Dependencies, options ...Option) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Application: NewApplicationService(repos.ApplicationRepository, repos.ReminderRepository, deps.Scheduler, options...),
		Ledger:      NewLedgerService(repos.ApplicationRepository, options...),
		Interview:   NewInterviewService(repos.ApplicationRepository, repos.InterviewRepository, options...),
		Reminder: NewReminderService(
			repos.ApplicationRepository,
			repos.ReminderRepository,
			repos.UserRepository,
			deps.Scheduler,
			deps.Policy,
			options...,
		),
		ReminderDispatcher: NewReminderDispatcher(repos.ReminderRepository, deps.Notifier, options...),
		Company:            NewCompanyService(repos.CompanyRepository, options...),
		Chart:              NewChartService(repos.ApplicationRepository, options...),
	}
}
