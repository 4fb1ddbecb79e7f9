package repositories

// RepositoryProvider aggregates every repository implementation handed to
// the service container.
type RepositoryProvider struct {
	AccountRepo  AccountRepositoryFacade
	JournalRepo  JournalRepositoryFacade
	InvoiceRepo  InvoiceRepositoryFacade
	PurchaseRepo PurchaseRepositoryFacade
	SettingsRepo SettingsRepositoryFacade
}
