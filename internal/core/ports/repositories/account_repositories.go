package repositories

import (
	"context"

	"github.com/cuentaclara/cuentaclara-backend/internal/core/domain"
)

// AccountRepositoryFacade defines read access to the tenant's chart of
// accounts. Accounts are created and maintained outside this subsystem.
type AccountRepositoryFacade interface {
	ListActiveAccounts(ctx context.Context, tenantID string) ([]domain.Account, error)
	FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error)
	FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error)
}
