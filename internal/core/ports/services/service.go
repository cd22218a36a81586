package services

// ServiceContainer holds instances of all the application services.
// Handlers and the reminder job consumer use it to reach the core.
type ServiceContainer struct {
	Application        ApplicationSvcFacade
	Ledger             LedgerSvcFacade
	Interview          InterviewSvcFacade
	Reminder           ReminderSvcFacade
	ReminderDispatcher ReminderDispatcherSvc
	Company            CompanySvcFacade
	Chart              ChartSvc
}
