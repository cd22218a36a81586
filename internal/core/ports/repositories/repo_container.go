package repositories

// RepositoryProvider holds every repository the services need. It is filled
// by a storage adapter (Postgres or in-memory).
type RepositoryProvider struct {
	ApplicationRepository ApplicationRepositoryFacade
	InterviewRepository   InterviewRepositoryFacade
	ReminderRepository    ReminderRepositoryFacade
	CompanyRepository     CompanyRepositoryFacade
	UserRepository        UserRepositoryFacade
}
