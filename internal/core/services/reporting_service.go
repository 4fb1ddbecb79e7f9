package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cuentaclara/cuentaclara-backend/internal/apperrors"
	"github.com/cuentaclara/cuentaclara-backend/internal/core/domain"
	portsrepo "github.com/cuentaclara/cuentaclara-backend/internal/core/ports/repositories"
	portssvc "github.com/cuentaclara/cuentaclara-backend/internal/core/ports/services"
)

// netIncomeRowName labels the synthetic equity row that folds the current
// period result into the balance sheet. It is never persisted.
const netIncomeRowName = "Resultado del ejercicio"

// reportingService implements the financial report generators. Every
// balance figure flows through the balance engine; this service only
// arranges and totals.
type reportingService struct {
	BaseService
	balanceSvc  portssvc.BalanceSvcFacade
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewReportingService creates the report generators.
func NewReportingService(balanceSvc portssvc.BalanceSvcFacade, journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.ReportingSvcFacade {
	return &reportingService{
		balanceSvc:  balanceSvc,
		journalRepo: journalRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func validateRange(from, to time.Time) error {
	if to.Before(from) {
		return fmt.Errorf("%w: date range end precedes start", apperrors.ErrValidation)
	}
	return nil
}

// TrialBalance lists every account with activity through asOf plus column
// totals. Because every entry balances at creation, the two totals are
// always equal.
func (s *reportingService) TrialBalance(ctx context.Context, tenantID string, asOf time.Time) (*domain.TrialBalanceReport, error) {
	balances, err := s.balanceSvc.CalculateBalances(ctx, tenantID, asOf, nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute trial balance", slog.String("tenant_id", tenantID))
		return nil, err
	}

	report := &domain.TrialBalanceReport{
		AsOf:        asOf,
		Rows:        balances,
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, b := range balances {
		report.TotalDebit = report.TotalDebit.Add(b.TotalDebit)
		report.TotalCredit = report.TotalCredit.Add(b.TotalCredit)
	}
	return report, nil
}

// GeneralJournal returns all POSTED entries in the range with lines
// resolved to account code/name, entries ordered by date ascending and
// lines ordered debit-first descending.
func (s *reportingService) GeneralJournal(ctx context.Context, tenantID string, from, to time.Time) (*domain.GeneralJournalReport, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}

	entries, err := s.journalRepo.ListPostedEntries(ctx, tenantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list posted entries: %w", err)
	}

	accountIDs := make([]string, 0)
	seen := make(map[string]bool)
	for _, e := range entries {
		for _, l := range e.Lines {
			if !seen[l.AccountID] {
				seen[l.AccountID] = true
				accountIDs = append(accountIDs, l.AccountID)
			}
		}
	}
	accounts := map[string]domain.Account{}
	if len(accountIDs) > 0 {
		accounts, err = s.accountRepo.FindAccountsByIDs(ctx, tenantID, accountIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve accounts: %w", err)
		}
	}

	report := &domain.GeneralJournalReport{
		From:    from,
		To:      to,
		Entries: make([]domain.GeneralJournalEntry, 0, len(entries)),
	}
	for _, e := range entries {
		rows := make([]domain.GeneralJournalLine, 0, len(e.Lines))
		for _, l := range e.Lines {
			acc := accounts[l.AccountID]
			rows = append(rows, domain.GeneralJournalLine{
				AccountID:   l.AccountID,
				AccountCode: acc.Code,
				AccountName: acc.Name,
				Description: l.Description,
				Debit:       l.Debit,
				Credit:      l.Credit,
			})
		}
		// Debits before credits for readability.
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].Debit.GreaterThan(rows[j].Debit)
		})
		report.Entries = append(report.Entries, domain.GeneralJournalEntry{
			EntryID:     e.EntryID,
			EntryNumber: e.EntryNumber,
			Date:        e.Date,
			Description: e.Description,
			Source:      e.Source,
			TotalDebit:  e.TotalDebit,
			TotalCredit: e.TotalCredit,
			Lines:       rows,
		})
	}
	sort.SliceStable(report.Entries, func(i, j int) bool {
		return report.Entries[i].Date.Before(report.Entries[j].Date)
	})
	return report, nil
}

// GeneralLedger shows per-account opening balance, chronological movements
// with a running balance, and closing balance. Dormant accounts are
// excluded unless a specific account was requested.
func (s *reportingService) GeneralLedger(ctx context.Context, tenantID string, from, to time.Time, accountID string) (*domain.GeneralLedgerReport, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}

	// Opening balances cover everything posted strictly before the window.
	openings, err := s.balanceSvc.CalculateOpeningBalances(ctx, tenantID, from)
	if err != nil {
		return nil, err
	}
	openingByAccount := make(map[string]decimal.Decimal, len(openings))
	for _, b := range openings {
		openingByAccount[b.AccountID] = b.Balance
	}

	lines, err := s.journalRepo.ListPostedLines(ctx, tenantID, from, to, accountID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list posted lines: %w", err)
	}
	linesByAccount := make(map[string][]portsrepo.PostedLine)
	for _, l := range lines {
		linesByAccount[l.AccountID] = append(linesByAccount[l.AccountID], l)
	}

	var candidates []domain.Account
	if accountID != "" {
		acc, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
		if err != nil {
			return nil, err
		}
		candidates = []domain.Account{*acc}
	} else {
		candidates, err = s.accountRepo.ListActiveAccounts(ctx, tenantID)
		if err != nil {
			return nil, fmt.Errorf("failed to list accounts: %w", err)
		}
	}

	report := &domain.GeneralLedgerReport{From: from, To: to, Accounts: []domain.LedgerAccount{}}
	for _, acc := range candidates {
		accLines := linesByAccount[acc.AccountID]
		if len(accLines) == 0 && acc.AccountID != accountID {
			continue
		}

		opening := decimal.Zero
		if b, ok := openingByAccount[acc.AccountID]; ok {
			opening = b
		}

		ledger := domain.LedgerAccount{
			AccountID:      acc.AccountID,
			Code:           acc.Code,
			Name:           acc.Name,
			Nature:         acc.Nature,
			OpeningBalance: opening,
			Movements:      make([]domain.LedgerMovement, 0, len(accLines)),
		}

		running := opening
		for _, l := range accLines {
			if acc.Nature == domain.NatureDebit {
				running = running.Add(l.Debit).Sub(l.Credit)
			} else {
				running = running.Add(l.Credit).Sub(l.Debit)
			}
			desc := l.LineDescription
			if desc == "" {
				desc = l.EntryDescription
			}
			ledger.Movements = append(ledger.Movements, domain.LedgerMovement{
				EntryID:        l.EntryID,
				EntryNumber:    l.EntryNumber,
				Date:           l.Date,
				Description:    desc,
				Debit:          l.Debit,
				Credit:         l.Credit,
				RunningBalance: running,
			})
		}
		ledger.ClosingBalance = running
		report.Accounts = append(report.Accounts, ledger)
	}

	sort.Slice(report.Accounts, func(i, j int) bool {
		return report.Accounts[i].Code < report.Accounts[j].Code
	})
	return report, nil
}

// BalanceSheet partitions balances by type and folds the current-period
// result into equity as a synthetic net-income row, so the accounting
// equation holds exactly.
func (s *reportingService) BalanceSheet(ctx context.Context, tenantID string, asOf time.Time) (*domain.BalanceSheetReport, error) {
	balances, err := s.balanceSvc.CalculateBalances(ctx, tenantID, asOf, nil)
	if err != nil {
		return nil, err
	}

	report := &domain.BalanceSheetReport{
		AsOf:        asOf,
		Assets:      []domain.AccountBalance{},
		Liabilities: []domain.AccountBalance{},
		Equity:      []domain.AccountBalance{},
	}
	report.NetIncome = decimal.Zero
	report.TotalAssets = decimal.Zero
	report.TotalLiabilities = decimal.Zero
	report.TotalEquity = decimal.Zero

	revenue, cogs, expenses := decimal.Zero, decimal.Zero, decimal.Zero
	for _, b := range balances {
		switch b.Type {
		case domain.Asset:
			report.Assets = append(report.Assets, b)
			report.TotalAssets = report.TotalAssets.Add(b.Balance)
		case domain.Liability:
			report.Liabilities = append(report.Liabilities, b)
			report.TotalLiabilities = report.TotalLiabilities.Add(b.Balance)
		case domain.Equity:
			report.Equity = append(report.Equity, b)
			report.TotalEquity = report.TotalEquity.Add(b.Balance)
		case domain.Revenue:
			revenue = revenue.Add(b.Balance)
		case domain.COGS:
			cogs = cogs.Add(b.Balance)
		case domain.Expense:
			expenses = expenses.Add(b.Balance)
		}
	}

	report.NetIncome = revenue.Sub(cogs).Sub(expenses)
	report.Equity = append(report.Equity, domain.AccountBalance{
		Name:    netIncomeRowName,
		Type:    domain.Equity,
		Nature:  domain.NatureCredit,
		Balance: report.NetIncome,
	})
	report.TotalEquity = report.TotalEquity.Add(report.NetIncome)
	report.TotalLiabilitiesAndEquity = report.TotalLiabilities.Add(report.TotalEquity)
	return report, nil
}

// IncomeStatement computes the period result from window-scoped balances.
func (s *reportingService) IncomeStatement(ctx context.Context, tenantID string, from, to time.Time) (*domain.IncomeStatementReport, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}

	balances, err := s.balanceSvc.CalculateBalances(ctx, tenantID, to, &from)
	if err != nil {
		return nil, err
	}

	report := &domain.IncomeStatementReport{
		From:        from,
		To:          to,
		Revenue:     []domain.AccountBalance{},
		CostOfSales: []domain.AccountBalance{},
		Expenses:    []domain.AccountBalance{},
	}
	report.TotalRevenue = decimal.Zero
	report.TotalCOGS = decimal.Zero
	report.TotalExpenses = decimal.Zero

	for _, b := range balances {
		switch b.Type {
		case domain.Revenue:
			report.Revenue = append(report.Revenue, b)
			report.TotalRevenue = report.TotalRevenue.Add(b.Balance)
		case domain.COGS:
			report.CostOfSales = append(report.CostOfSales, b)
			report.TotalCOGS = report.TotalCOGS.Add(b.Balance)
		case domain.Expense:
			report.Expenses = append(report.Expenses, b)
			report.TotalExpenses = report.TotalExpenses.Add(b.Balance)
		}
	}

	report.GrossProfit = report.TotalRevenue.Sub(report.TotalCOGS)
	report.NetIncome = report.GrossProfit.Sub(report.TotalExpenses)
	return report, nil
}

// CashFlow covers the PUC cash/bank class. With no cash/bank accounts the
// report is all zeros, never an error.
func (s *reportingService) CashFlow(ctx context.Context, tenantID string, from, to time.Time) (*domain.CashFlowReport, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}

	report := &domain.CashFlowReport{
		From:           from,
		To:             to,
		OpeningBalance: decimal.Zero,
		Movements:      []domain.CashFlowMovement{},
		TotalInflow:    decimal.Zero,
		TotalOutflow:   decimal.Zero,
		ClosingBalance: decimal.Zero,
	}

	accounts, err := s.accountRepo.ListActiveAccounts(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	cashAccounts := make(map[string]domain.Account)
	for _, acc := range accounts {
		if acc.IsCashOrBank() {
			cashAccounts[acc.AccountID] = acc
		}
	}
	if len(cashAccounts) == 0 {
		return report, nil
	}

	// Opening balance aggregates strictly before the window.
	priorActivity, err := s.journalRepo.SumPostedLinesBefore(ctx, tenantID, from)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate opening cash activity: %w", err)
	}
	for _, a := range priorActivity {
		if _, ok := cashAccounts[a.AccountID]; ok {
			report.OpeningBalance = report.OpeningBalance.Add(a.TotalDebit).Sub(a.TotalCredit)
		}
	}

	lines, err := s.journalRepo.ListPostedLines(ctx, tenantID, from, to, "", domain.CashBankCodePrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list cash movements: %w", err)
	}
	for _, l := range lines {
		acc, ok := cashAccounts[l.AccountID]
		if !ok {
			continue
		}
		desc := l.LineDescription
		if desc == "" {
			desc = l.EntryDescription
		}
		report.Movements = append(report.Movements, domain.CashFlowMovement{
			Date:        l.Date,
			AccountCode: acc.Code,
			AccountName: acc.Name,
			Description: desc,
			Inflow:      l.Debit,
			Outflow:     l.Credit,
		})
		report.TotalInflow = report.TotalInflow.Add(l.Debit)
		report.TotalOutflow = report.TotalOutflow.Add(l.Credit)
	}

	report.ClosingBalance = report.OpeningBalance.Add(report.TotalInflow).Sub(report.TotalOutflow)
	return report, nil
}
