package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cuentaclara/cuentaclara-backend/internal/apperrors"
	"github.com/cuentaclara/cuentaclara-backend/internal/core/domain"
	portsrepo "github.com/cuentaclara/cuentaclara-backend/internal/core/ports/repositories"
	portssvc "github.com/cuentaclara/cuentaclara-backend/internal/core/ports/services"
)

// balanceService is the balance engine shared by every report.
type balanceService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewBalanceService creates the balance engine.
func NewBalanceService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.BalanceSvcFacade {
	return &balanceService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// CalculateBalances aggregates POSTED debit/credit totals per active
// account and signs the balance by account nature. Accounts without
// activity in the window are dropped: trial balance and its siblings must
// not list dormant accounts. Results are ordered by PUC code.
func (s *balanceService) CalculateBalances(ctx context.Context, tenantID string, asOf time.Time, from *time.Time) ([]domain.AccountBalance, error) {
	if from != nil && asOf.Before(*from) {
		return nil, fmt.Errorf("%w: asOf precedes the window start", apperrors.ErrValidation)
	}

	accounts, err := s.accountRepo.ListActiveAccounts(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	activity, err := s.journalRepo.SumPostedLinesByAccount(ctx, tenantID, from, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate journal lines: %w", err)
	}
	return composeBalances(accounts, activity), nil
}

// CalculateOpeningBalances aggregates everything posted strictly before the
// given instant. Window reports use it so the opening plus the window's own
// movements cover each posted timestamp exactly once.
func (s *balanceService) CalculateOpeningBalances(ctx context.Context, tenantID string, before time.Time) ([]domain.AccountBalance, error) {
	accounts, err := s.accountRepo.ListActiveAccounts(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	activity, err := s.journalRepo.SumPostedLinesBefore(ctx, tenantID, before)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate opening journal lines: %w", err)
	}
	return composeBalances(accounts, activity), nil
}

func composeBalances(accounts []domain.Account, activity []portsrepo.AccountActivity) []domain.AccountBalance {
	activityByAccount := make(map[string]portsrepo.AccountActivity, len(activity))
	for _, a := range activity {
		activityByAccount[a.AccountID] = a
	}

	balances := make([]domain.AccountBalance, 0, len(activity))
	for _, acc := range accounts {
		act, ok := activityByAccount[acc.AccountID]
		if !ok || (act.TotalDebit.IsZero() && act.TotalCredit.IsZero()) {
			continue
		}

		balance := act.TotalDebit.Sub(act.TotalCredit)
		if acc.Nature == domain.NatureCredit {
			balance = act.TotalCredit.Sub(act.TotalDebit)
		}

		balances = append(balances, domain.AccountBalance{
			AccountID:   acc.AccountID,
			Code:        acc.Code,
			Name:        acc.Name,
			Type:        acc.Type,
			Nature:      acc.Nature,
			TotalDebit:  act.TotalDebit,
			TotalCredit: act.TotalCredit,
			Balance:     balance,
		})
	}

	sort.Slice(balances, func(i, j int) bool {
		return balances[i].Code < balances[j].Code
	})
	return balances
}
