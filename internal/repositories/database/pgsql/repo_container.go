package pgsql

import (
	portsrepo "github.com/cuentaclara/cuentaclara-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:  newPgxAccountRepository(dbPool),
		JournalRepo:  newPgxJournalRepository(dbPool),
		InvoiceRepo:  newPgxInvoiceRepository(dbPool),
		PurchaseRepo: newPgxPurchaseRepository(dbPool),
		SettingsRepo: newPgxSettingsRepository(dbPool),
	}
}
