package pgsql

import (
	"context"
	"errors"

	"github.com/cuentaclara/cuentaclara-backend/internal/apperrors"
	"github.com/cuentaclara/cuentaclara-backend/internal/core/domain"
	portsrepo "github.com/cuentaclara/cuentaclara-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSettingsRepository struct {
	BaseRepository
}

// newPgxSettingsRepository creates a new repository for per-tenant
// accounting configuration. Mappings are stored as one JSONB document.
func newPgxSettingsRepository(pool *pgxpool.Pool) portsrepo.SettingsRepositoryFacade {
	return &PgxSettingsRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.SettingsRepositoryFacade = (*PgxSettingsRepository)(nil)

// GetSettings retrieves the tenant's accounting settings.
func (r *PgxSettingsRepository) GetSettings(ctx context.Context, tenantID string) (*domain.AccountingSettings, error) {
	query := `
		SELECT tenant_id, auto_generate_entries, mappings,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM accounting_settings
		WHERE tenant_id = $1;
	`
	var s domain.AccountingSettings
	err := r.Pool.QueryRow(ctx, query, tenantID).Scan(
		&s.TenantID,
		&s.AutoGenerateEntries,
		&s.Mappings,
		&s.CreatedAt,
		&s.CreatedBy,
		&s.LastUpdatedAt,
		&s.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to load accounting settings for tenant "+tenantID, err)
	}
	return &s, nil
}
