package repositories

// RepositoryProvider bundles all repository implementations for injection into
// the service container.
type RepositoryProvider struct {
	UserRepo      UserRepository
	ExpenseRepo   ExpenseRepository
	CategoryRepo  CategoryRepository
	ReportingRepo ReportingRepository
}
