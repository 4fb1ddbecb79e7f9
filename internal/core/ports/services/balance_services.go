package services

import (
	"context"
	"time"

	"github.com/cuentaclara/cuentaclara-backend/internal/core/domain"
)

// BalanceSvcFacade is the balance engine: the single source of truth for
// per-account aggregates. Every report derives its figures from it; no
// report computes balances independently.
type BalanceSvcFacade interface {
	// CalculateBalances aggregates POSTED activity per active account dated
	// <= asOf, or within [from, asOf] when from is given. Accounts with no
	// activity in the window are dropped from the result.
	CalculateBalances(ctx context.Context, tenantID string, asOf time.Time, from *time.Time) ([]domain.AccountBalance, error)

	// CalculateOpeningBalances aggregates POSTED activity dated strictly
	// before the given instant. Reports pair it with a [before, to] window so
	// an entry timestamped anywhere on the prior day still lands in exactly
	// one of the two.
	CalculateOpeningBalances(ctx context.Context, tenantID string, before time.Time) ([]domain.AccountBalance, error)
}
