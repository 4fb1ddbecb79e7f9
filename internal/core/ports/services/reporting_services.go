package services

import (
	"context"
	"time"

	"github.com/cuentaclara/cuentaclara-backend/internal/core/domain"
)

// ReportingSvcFacade generates the financial reports. All methods are pure
// reads over POSTED journal data and return well-defined zero shapes on
// empty data.
type ReportingSvcFacade interface {
	TrialBalance(ctx context.Context, tenantID string, asOf time.Time) (*domain.TrialBalanceReport, error)
	GeneralJournal(ctx context.Context, tenantID string, from, to time.Time) (*domain.GeneralJournalReport, error)
	GeneralLedger(ctx context.Context, tenantID string, from, to time.Time, accountID string) (*domain.GeneralLedgerReport, error)
	BalanceSheet(ctx context.Context, tenantID string, asOf time.Time) (*domain.BalanceSheetReport, error)
	IncomeStatement(ctx context.Context, tenantID string, from, to time.Time) (*domain.IncomeStatementReport, error)
	CashFlow(ctx context.Context, tenantID string, from, to time.Time) (*domain.CashFlowReport, error)
}

// AgingSvcFacade generates the receivables/payables aging reports.
type AgingSvcFacade interface {
	ReceivablesAging(ctx context.Context, tenantID string, asOf time.Time) (*domain.AgingReport, error)
	PayablesAging(ctx context.Context, tenantID string, asOf time.Time) (*domain.AgingReport, error)
}

// TaxSvcFacade generates the Colombian tax reports from raw invoice and
// purchase-order data.
type TaxSvcFacade interface {
	IVADeclaration(ctx context.Context, tenantID string, year, period int) (*domain.IVADeclaration, error)
	WithholdingSummary(ctx context.Context, tenantID string, year int, month time.Month) (*domain.WithholdingSummary, error)
	YTDTaxSummary(ctx context.Context, tenantID string, year int) (*domain.YTDTaxSummary, error)
}
