package services

// ServiceContainer bundles all service facades for injection into handlers.
type ServiceContainer struct {
	User        UserSvcFacade
	Expense     ExpenseSvcFacade
	Category    CategorySvcFacade
	Reporting   ReportingSvcFacade
	Token       TokenSvcFacade
	GoogleOAuth GoogleOAuthSvcFacade
}
