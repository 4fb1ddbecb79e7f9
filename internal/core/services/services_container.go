package services

import (
	portsrepo "github.com/cuentaclara/cuentaclara-backend/internal/core/ports/repositories"
	portssvc "github.com/cuentaclara/cuentaclara-backend/internal/core/ports/services"
	"github.com/cuentaclara/cuentaclara-backend/internal/platform/events"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies and subscribes the accounting bridge to the
// event bus.
func NewServiceContainer(repos portsrepo.RepositoryProvider, bus *events.Bus) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Journal and balance first, the report generators depend on them.
	container.Journal = NewJournalService(repos.JournalRepo, repos.AccountRepo)
	container.Balance = NewBalanceService(repos.JournalRepo, repos.AccountRepo)

	container.Reporting = NewReportingService(container.Balance, repos.JournalRepo, repos.AccountRepo)
	container.Aging = NewAgingService(repos.InvoiceRepo, repos.PurchaseRepo)
	container.Tax = NewTaxService(repos.InvoiceRepo, repos.PurchaseRepo)

	container.Bridge = NewBridgeService(container.Journal, repos.SettingsRepo)
	if bus != nil {
		RegisterBridgeSubscribers(bus, container.Bridge)
	}

	return container
}
