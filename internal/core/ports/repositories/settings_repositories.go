package repositories

import (
	"context"

	"github.com/cuentaclara/cuentaclara-backend/internal/core/domain"
)

// SettingsRepositoryFacade defines read access to the per-tenant accounting
// configuration consumed by the bridge.
type SettingsRepositoryFacade interface {
	GetSettings(ctx context.Context, tenantID string) (*domain.AccountingSettings, error)
}
