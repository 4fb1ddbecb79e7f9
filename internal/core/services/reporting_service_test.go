package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/cuentaclara/cuentaclara-backend/internal/apperrors"
	"github.com/cuentaclara/cuentaclara-backend/internal/core/domain"
	portsrepo "github.com/cuentaclara/cuentaclara-backend/internal/core/ports/repositories"
	portssvc "github.com/cuentaclara/cuentaclara-backend/internal/core/ports/services"
	"github.com/cuentaclara/cuentaclara-backend/internal/core/services"
)

// The reporting tests run the real balance engine over mocked repositories,
// so every report figure flows through the same pipeline as production.
type ReportingServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.ReportingSvcFacade
	tenantID        string
	from            time.Time
	to              time.Time

	cash       domain.Account
	revenue    domain.Account
	taxPayable domain.Account
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	balanceSvc := services.NewBalanceService(suite.mockJournalRepo, suite.mockAccountRepo)
	suite.service = services.NewReportingService(balanceSvc, suite.mockJournalRepo, suite.mockAccountRepo)

	suite.tenantID = uuid.NewString()
	suite.from = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	suite.to = time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	suite.cash = account("1105", "Caja general", domain.Asset, domain.NatureDebit)
	suite.revenue = account("4135", "Comercio al por menor", domain.Revenue, domain.NatureCredit)
	suite.taxPayable = account("2408", "IVA por pagar", domain.Liability, domain.NatureCredit)
}

func (suite *ReportingServiceTestSuite) expectBalances(asOf time.Time, accounts []domain.Account, activity []portsrepo.AccountActivity) {
	ctx := context.Background()
	suite.mockAccountRepo.On("ListActiveAccounts", ctx, suite.tenantID).Return(accounts, nil)
	suite.mockJournalRepo.On("SumPostedLinesByAccount", ctx, suite.tenantID, (*time.Time)(nil), asOf).Return(activity, nil)
}

func (suite *ReportingServiceTestSuite) expectOpeningBalances(before time.Time, accounts []domain.Account, activity []portsrepo.AccountActivity) {
	ctx := context.Background()
	suite.mockAccountRepo.On("ListActiveAccounts", ctx, suite.tenantID).Return(accounts, nil)
	suite.mockJournalRepo.On("SumPostedLinesBefore", ctx, suite.tenantID, before).Return(activity, nil)
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_ColumnTotalsEqual() {
	ctx := context.Background()
	suite.expectBalances(suite.to,
		[]domain.Account{suite.cash, suite.revenue, suite.taxPayable},
		[]portsrepo.AccountActivity{
			{AccountID: suite.cash.AccountID, TotalDebit: decimal.NewFromInt(1190), TotalCredit: decimal.Zero},
			{AccountID: suite.revenue.AccountID, TotalDebit: decimal.Zero, TotalCredit: decimal.NewFromInt(1000)},
			{AccountID: suite.taxPayable.AccountID, TotalDebit: decimal.Zero, TotalCredit: decimal.NewFromInt(190)},
		})

	report, err := suite.service.TrialBalance(ctx, suite.tenantID, suite.to)

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 3)
	suite.True(report.TotalDebit.Equal(decimal.NewFromInt(1190)))
	suite.True(report.TotalCredit.Equal(decimal.NewFromInt(1190)))
	suite.True(report.TotalDebit.Equal(report.TotalCredit), "posted entries balance, so column totals must match")
}

func (suite *ReportingServiceTestSuite) TestGeneralJournal_ResolvesAccountsAndOrdersDebitsFirst() {
	ctx := context.Background()
	entry := domain.JournalEntry{
		EntryID:     uuid.NewString(),
		EntryNumber: 7,
		Date:        suite.from.AddDate(0, 0, 10),
		Description: "Venta factura FV-001",
		Source:      domain.SourceInvoiceSale,
		Status:      domain.Posted,
		TotalDebit:  decimal.NewFromInt(1190),
		TotalCredit: decimal.NewFromInt(1190),
		Lines: []domain.JournalEntryLine{
			{AccountID: suite.revenue.AccountID, Credit: decimal.NewFromInt(1000)},
			{AccountID: suite.taxPayable.AccountID, Credit: decimal.NewFromInt(190)},
			{AccountID: suite.cash.AccountID, Debit: decimal.NewFromInt(1190)},
		},
	}
	suite.mockJournalRepo.On("ListPostedEntries", ctx, suite.tenantID, suite.from, suite.to).Return([]domain.JournalEntry{entry}, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.tenantID, []string{suite.revenue.AccountID, suite.taxPayable.AccountID, suite.cash.AccountID}).Return(map[string]domain.Account{
		suite.cash.AccountID:       suite.cash,
		suite.revenue.AccountID:    suite.revenue,
		suite.taxPayable.AccountID: suite.taxPayable,
	}, nil).Once()

	report, err := suite.service.GeneralJournal(ctx, suite.tenantID, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Require().Len(report.Entries, 1)
	lines := report.Entries[0].Lines
	suite.Require().Len(lines, 3)
	suite.Equal("1105", lines[0].AccountCode, "debit line comes first")
	suite.Equal("Caja general", lines[0].AccountName)
	suite.True(lines[0].Debit.Equal(decimal.NewFromInt(1190)))
}

func (suite *ReportingServiceTestSuite) TestGeneralJournal_InvalidRange() {
	_, err := suite.service.GeneralJournal(context.Background(), suite.tenantID, suite.to, suite.from)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "ListPostedEntries")
}

func (suite *ReportingServiceTestSuite) TestGeneralLedger_RunningBalanceAndDormantExclusion() {
	ctx := context.Background()
	dormant := account("1110", "Bancos", domain.Asset, domain.NatureDebit)

	// Opening balances cover everything posted strictly before the window.
	suite.expectOpeningBalances(suite.from,
		[]domain.Account{suite.cash, dormant},
		[]portsrepo.AccountActivity{
			{AccountID: suite.cash.AccountID, TotalDebit: decimal.NewFromInt(500), TotalCredit: decimal.Zero},
		})
	suite.mockJournalRepo.On("ListPostedLines", ctx, suite.tenantID, suite.from, suite.to, "", "").Return([]portsrepo.PostedLine{
		{EntryID: uuid.NewString(), EntryNumber: 3, Date: suite.from.AddDate(0, 0, 2), EntryDescription: "Venta", AccountID: suite.cash.AccountID, Debit: decimal.NewFromInt(200), Credit: decimal.Zero},
		{EntryID: uuid.NewString(), EntryNumber: 4, Date: suite.from.AddDate(0, 0, 5), EntryDescription: "Pago proveedor", AccountID: suite.cash.AccountID, Debit: decimal.Zero, Credit: decimal.NewFromInt(50)},
	}, nil).Once()

	report, err := suite.service.GeneralLedger(ctx, suite.tenantID, suite.from, suite.to, "")

	suite.Require().NoError(err)
	suite.Require().Len(report.Accounts, 1, "dormant account without movements is excluded")
	ledger := report.Accounts[0]
	suite.Equal(suite.cash.AccountID, ledger.AccountID)
	suite.True(ledger.OpeningBalance.Equal(decimal.NewFromInt(500)))
	suite.Require().Len(ledger.Movements, 2)
	suite.True(ledger.Movements[0].RunningBalance.Equal(decimal.NewFromInt(700)))
	suite.True(ledger.Movements[1].RunningBalance.Equal(decimal.NewFromInt(650)))
	suite.Equal("Venta", ledger.Movements[0].Description, "falls back to the entry description")
	suite.True(ledger.ClosingBalance.Equal(decimal.NewFromInt(650)))
}

func (suite *ReportingServiceTestSuite) TestGeneralLedger_RequestedAccountIncludedWhenDormant() {
	ctx := context.Background()

	suite.expectOpeningBalances(suite.from, []domain.Account{suite.cash}, []portsrepo.AccountActivity{})
	suite.mockJournalRepo.On("ListPostedLines", ctx, suite.tenantID, suite.from, suite.to, suite.cash.AccountID, "").Return([]portsrepo.PostedLine{}, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenantID, suite.cash.AccountID).Return(&suite.cash, nil).Once()

	report, err := suite.service.GeneralLedger(ctx, suite.tenantID, suite.from, suite.to, suite.cash.AccountID)

	suite.Require().NoError(err)
	suite.Require().Len(report.Accounts, 1)
	suite.True(report.Accounts[0].OpeningBalance.IsZero())
	suite.Empty(report.Accounts[0].Movements)
	suite.True(report.Accounts[0].ClosingBalance.IsZero())
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_EquationHoldsWithNetIncomeRow() {
	ctx := context.Background()
	suite.expectBalances(suite.to,
		[]domain.Account{suite.cash, suite.revenue, suite.taxPayable},
		[]portsrepo.AccountActivity{
			{AccountID: suite.cash.AccountID, TotalDebit: decimal.NewFromInt(1190), TotalCredit: decimal.Zero},
			{AccountID: suite.revenue.AccountID, TotalDebit: decimal.Zero, TotalCredit: decimal.NewFromInt(1000)},
			{AccountID: suite.taxPayable.AccountID, TotalDebit: decimal.Zero, TotalCredit: decimal.NewFromInt(190)},
		})

	report, err := suite.service.BalanceSheet(ctx, suite.tenantID, suite.to)

	suite.Require().NoError(err)
	suite.True(report.NetIncome.Equal(decimal.NewFromInt(1000)))
	suite.True(report.TotalAssets.Equal(decimal.NewFromInt(1190)))
	suite.True(report.TotalLiabilities.Equal(decimal.NewFromInt(190)))
	suite.True(report.TotalEquity.Equal(decimal.NewFromInt(1000)))
	suite.True(report.TotalLiabilitiesAndEquity.Equal(report.TotalAssets), "assets must equal liabilities plus equity")

	suite.Require().NotEmpty(report.Equity)
	last := report.Equity[len(report.Equity)-1]
	suite.Equal("Resultado del ejercicio", last.Name)
	suite.Empty(last.AccountID, "the net income row is synthetic")
}

func (suite *ReportingServiceTestSuite) TestIncomeStatement_PeriodResult() {
	ctx := context.Background()
	cogs := account("6135", "Costo de ventas", domain.COGS, domain.NatureDebit)
	expense := account("5135", "Servicios", domain.Expense, domain.NatureDebit)

	suite.mockAccountRepo.On("ListActiveAccounts", ctx, suite.tenantID).Return([]domain.Account{suite.revenue, cogs, expense}, nil).Once()
	suite.mockJournalRepo.On("SumPostedLinesByAccount", ctx, suite.tenantID, &suite.from, suite.to).Return([]portsrepo.AccountActivity{
		{AccountID: suite.revenue.AccountID, TotalDebit: decimal.Zero, TotalCredit: decimal.NewFromInt(1000)},
		{AccountID: cogs.AccountID, TotalDebit: decimal.NewFromInt(600), TotalCredit: decimal.Zero},
		{AccountID: expense.AccountID, TotalDebit: decimal.NewFromInt(150), TotalCredit: decimal.Zero},
	}, nil).Once()

	report, err := suite.service.IncomeStatement(ctx, suite.tenantID, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.True(report.TotalRevenue.Equal(decimal.NewFromInt(1000)))
	suite.True(report.TotalCOGS.Equal(decimal.NewFromInt(600)))
	suite.True(report.GrossProfit.Equal(decimal.NewFromInt(400)))
	suite.True(report.NetIncome.Equal(decimal.NewFromInt(250)))
}

func (suite *ReportingServiceTestSuite) TestCashFlow_NoCashAccountsIsZeroReport() {
	ctx := context.Background()
	suite.mockAccountRepo.On("ListActiveAccounts", ctx, suite.tenantID).Return([]domain.Account{suite.revenue}, nil).Once()

	report, err := suite.service.CashFlow(ctx, suite.tenantID, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.True(report.OpeningBalance.IsZero())
	suite.Empty(report.Movements)
	suite.True(report.ClosingBalance.IsZero())
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "ListPostedLines")
}

func (suite *ReportingServiceTestSuite) TestCashFlow_OpeningMovementsClosing() {
	ctx := context.Background()

	suite.mockAccountRepo.On("ListActiveAccounts", ctx, suite.tenantID).Return([]domain.Account{suite.cash, suite.revenue}, nil).Once()
	suite.mockJournalRepo.On("SumPostedLinesBefore", ctx, suite.tenantID, suite.from).Return([]portsrepo.AccountActivity{
		{AccountID: suite.cash.AccountID, TotalDebit: decimal.NewFromInt(500), TotalCredit: decimal.NewFromInt(100)},
		{AccountID: suite.revenue.AccountID, TotalDebit: decimal.Zero, TotalCredit: decimal.NewFromInt(400)},
	}, nil).Once()
	suite.mockJournalRepo.On("ListPostedLines", ctx, suite.tenantID, suite.from, suite.to, "", domain.CashBankCodePrefix).Return([]portsrepo.PostedLine{
		{EntryID: uuid.NewString(), EntryNumber: 9, Date: suite.from.AddDate(0, 0, 3), EntryDescription: "Pago recibido", AccountID: suite.cash.AccountID, Debit: decimal.NewFromInt(300), Credit: decimal.Zero},
		{EntryID: uuid.NewString(), EntryNumber: 10, Date: suite.from.AddDate(0, 0, 8), EntryDescription: "Pago arriendo", AccountID: suite.cash.AccountID, Debit: decimal.Zero, Credit: decimal.NewFromInt(120)},
	}, nil).Once()

	report, err := suite.service.CashFlow(ctx, suite.tenantID, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.True(report.OpeningBalance.Equal(decimal.NewFromInt(400)), "non-cash activity is excluded from the opening balance")
	suite.Require().Len(report.Movements, 2)
	suite.True(report.TotalInflow.Equal(decimal.NewFromInt(300)))
	suite.True(report.TotalOutflow.Equal(decimal.NewFromInt(120)))
	suite.True(report.ClosingBalance.Equal(decimal.NewFromInt(580)))
}

// The opening aggregate must admit entries timestamped anywhere on the day
// before the window, not just at midnight. The matcher mirrors the strict <
// bound of the opening query: the prior activity is only served when the
// queried bound actually covers the entry's timestamp.
func (suite *ReportingServiceTestSuite) TestCashFlow_PriorDayAfternoonEntryInOpeningBalance() {
	ctx := context.Background()
	entryDate := time.Date(2025, 5, 31, 14, 0, 0, 0, time.UTC)

	suite.mockAccountRepo.On("ListActiveAccounts", ctx, suite.tenantID).Return([]domain.Account{suite.cash}, nil).Once()
	suite.mockJournalRepo.On("SumPostedLinesBefore", ctx, suite.tenantID, mock.MatchedBy(func(before time.Time) bool {
		return entryDate.Before(before)
	})).Return([]portsrepo.AccountActivity{
		{AccountID: suite.cash.AccountID, TotalDebit: decimal.NewFromInt(500), TotalCredit: decimal.Zero},
	}, nil).Once()
	suite.mockJournalRepo.On("ListPostedLines", ctx, suite.tenantID, suite.from, suite.to, "", domain.CashBankCodePrefix).Return([]portsrepo.PostedLine{}, nil).Once()

	report, err := suite.service.CashFlow(ctx, suite.tenantID, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.True(report.OpeningBalance.Equal(decimal.NewFromInt(500)), "opening balance must include everything strictly before the window start")
	suite.True(report.ClosingBalance.Equal(decimal.NewFromInt(500)), "closing balance must reconcile to the ledger")
}

func (suite *ReportingServiceTestSuite) TestGeneralLedger_PriorDayAfternoonEntryInOpeningBalance() {
	ctx := context.Background()
	entryDate := time.Date(2025, 5, 31, 14, 0, 0, 0, time.UTC)

	suite.mockAccountRepo.On("ListActiveAccounts", ctx, suite.tenantID).Return([]domain.Account{suite.cash}, nil).Once()
	suite.mockJournalRepo.On("SumPostedLinesBefore", ctx, suite.tenantID, mock.MatchedBy(func(before time.Time) bool {
		return entryDate.Before(before)
	})).Return([]portsrepo.AccountActivity{
		{AccountID: suite.cash.AccountID, TotalDebit: decimal.NewFromInt(500), TotalCredit: decimal.Zero},
	}, nil).Once()
	suite.mockJournalRepo.On("ListPostedLines", ctx, suite.tenantID, suite.from, suite.to, suite.cash.AccountID, "").Return([]portsrepo.PostedLine{}, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenantID, suite.cash.AccountID).Return(&suite.cash, nil).Once()

	report, err := suite.service.GeneralLedger(ctx, suite.tenantID, suite.from, suite.to, suite.cash.AccountID)

	suite.Require().NoError(err)
	suite.Require().Len(report.Accounts, 1)
	suite.True(report.Accounts[0].OpeningBalance.Equal(decimal.NewFromInt(500)))
	suite.True(report.Accounts[0].ClosingBalance.Equal(decimal.NewFromInt(500)))
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
