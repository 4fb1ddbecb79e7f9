package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountBalance is the derived per-account aggregate produced by the
// balance engine. Balance is signed by the account's nature.
type AccountBalance struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Type        AccountType     `json:"type"`
	Nature      AccountNature   `json:"nature"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Balance     decimal.Decimal `json:"balance"`
}

// TrialBalanceReport lists every account with activity plus column totals.
type TrialBalanceReport struct {
	AsOf        time.Time        `json:"asOf"`
	Rows        []AccountBalance `json:"rows"`
	TotalDebit  decimal.Decimal  `json:"totalDebit"`
	TotalCredit decimal.Decimal  `json:"totalCredit"`
}

// GeneralJournalLine is one resolved line of a posted entry in the general
// journal report.
type GeneralJournalLine struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Description string          `json:"description,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// GeneralJournalEntry is one posted entry with its lines resolved.
type GeneralJournalEntry struct {
	EntryID     string               `json:"entryID"`
	EntryNumber int64                `json:"entryNumber"`
	Date        time.Time            `json:"date"`
	Description string               `json:"description"`
	Source      EntrySource          `json:"source"`
	TotalDebit  decimal.Decimal      `json:"totalDebit"`
	TotalCredit decimal.Decimal      `json:"totalCredit"`
	Lines       []GeneralJournalLine `json:"lines"`
}

// GeneralJournalReport is the chronological list of posted entries.
type GeneralJournalReport struct {
	From    time.Time             `json:"from"`
	To      time.Time             `json:"to"`
	Entries []GeneralJournalEntry `json:"entries"`
}

// LedgerMovement is one journal line applied to an account's running balance.
type LedgerMovement struct {
	EntryID        string          `json:"entryID"`
	EntryNumber    int64           `json:"entryNumber"`
	Date           time.Time       `json:"date"`
	Description    string          `json:"description,omitempty"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// LedgerAccount is the general ledger view of one account over a window.
type LedgerAccount struct {
	AccountID      string           `json:"accountID"`
	Code           string           `json:"code"`
	Name           string           `json:"name"`
	Nature         AccountNature    `json:"nature"`
	OpeningBalance decimal.Decimal  `json:"openingBalance"`
	Movements      []LedgerMovement `json:"movements"`
	ClosingBalance decimal.Decimal  `json:"closingBalance"`
}

// GeneralLedgerReport groups ledger movements per account.
type GeneralLedgerReport struct {
	From     time.Time       `json:"from"`
	To       time.Time       `json:"to"`
	Accounts []LedgerAccount `json:"accounts"`
}

// BalanceSheetReport partitions balances into the accounting equation. The
// current-period result appears as a synthetic net-income row inside
// Equity; it is never persisted as a real account.
type BalanceSheetReport struct {
	AsOf                      time.Time        `json:"asOf"`
	Assets                    []AccountBalance `json:"assets"`
	Liabilities               []AccountBalance `json:"liabilities"`
	Equity                    []AccountBalance `json:"equity"`
	NetIncome                 decimal.Decimal  `json:"netIncome"`
	TotalAssets               decimal.Decimal  `json:"totalAssets"`
	TotalLiabilities          decimal.Decimal  `json:"totalLiabilities"`
	TotalEquity               decimal.Decimal  `json:"totalEquity"`
	TotalLiabilitiesAndEquity decimal.Decimal  `json:"totalLiabilitiesAndEquity"`
}

// IncomeStatementReport covers one period's result.
type IncomeStatementReport struct {
	From          time.Time        `json:"from"`
	To            time.Time        `json:"to"`
	Revenue       []AccountBalance `json:"revenue"`
	CostOfSales   []AccountBalance `json:"costOfSales"`
	Expenses      []AccountBalance `json:"expenses"`
	TotalRevenue  decimal.Decimal  `json:"totalRevenue"`
	TotalCOGS     decimal.Decimal  `json:"totalCOGS"`
	TotalExpenses decimal.Decimal  `json:"totalExpenses"`
	GrossProfit   decimal.Decimal  `json:"grossProfit"`
	NetIncome     decimal.Decimal  `json:"netIncome"`
}

// CashFlowMovement is one cash/bank account line in the cash flow report.
type CashFlowMovement struct {
	Date        time.Time       `json:"date"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Description string          `json:"description,omitempty"`
	Inflow      decimal.Decimal `json:"inflow"`
	Outflow     decimal.Decimal `json:"outflow"`
}

// CashFlowReport covers the PUC cash/bank class over a window. When the
// tenant has no cash/bank accounts the report is all zeros, never an error.
type CashFlowReport struct {
	From           time.Time          `json:"from"`
	To             time.Time          `json:"to"`
	OpeningBalance decimal.Decimal    `json:"openingBalance"`
	Movements      []CashFlowMovement `json:"movements"`
	TotalInflow    decimal.Decimal    `json:"totalInflow"`
	TotalOutflow   decimal.Decimal    `json:"totalOutflow"`
	ClosingBalance decimal.Decimal    `json:"closingBalance"`
}

// AgingRow is one customer's (or supplier's) bucketed overdue balances.
type AgingRow struct {
	PartyID      string          `json:"partyID"`
	PartyName    string          `json:"partyName"`
	Current      decimal.Decimal `json:"current"`
	Days1To30    decimal.Decimal `json:"days1To30"`
	Days31To60   decimal.Decimal `json:"days31To60"`
	Days61To90   decimal.Decimal `json:"days61To90"`
	Days90Plus   decimal.Decimal `json:"days90Plus"`
	TotalOverdue decimal.Decimal `json:"totalOverdue"`
	TotalBalance decimal.Decimal `json:"totalBalance"`
}

// AgingReport buckets unpaid balances by days overdue as of a reference date.
type AgingReport struct {
	AsOf         time.Time       `json:"asOf"`
	Rows         []AgingRow      `json:"rows"`
	Current      decimal.Decimal `json:"current"`
	Days1To30    decimal.Decimal `json:"days1To30"`
	Days31To60   decimal.Decimal `json:"days31To60"`
	Days61To90   decimal.Decimal `json:"days61To90"`
	Days90Plus   decimal.Decimal `json:"days90Plus"`
	TotalOverdue decimal.Decimal `json:"totalOverdue"`
	TotalBalance decimal.Decimal `json:"totalBalance"`
}

// IVARateBucket aggregates documents taxed at one IVA rate.
type IVARateBucket struct {
	Rate          decimal.Decimal `json:"rate"`
	TaxableBase   decimal.Decimal `json:"taxableBase"`
	TaxAmount     decimal.Decimal `json:"taxAmount"`
	DocumentCount int             `json:"documentCount"`
}

// IVADeclaration is the bimonthly IVA return: tax collected on sales
// against deductible tax paid on purchases.
type IVADeclaration struct {
	Year            int             `json:"year"`
	Period          int             `json:"period"` // 1..6, bimonthly
	From            time.Time       `json:"from"`
	To              time.Time       `json:"to"`
	Generated       []IVARateBucket `json:"generated"`
	Deductible      []IVARateBucket `json:"deductible"`
	ExemptBase      decimal.Decimal `json:"exemptBase"`
	ExcludedBase    decimal.Decimal `json:"excludedBase"`
	TotalGenerated  decimal.Decimal `json:"totalGenerated"`
	TotalDeductible decimal.Decimal `json:"totalDeductible"`
	NetIVAPayable   decimal.Decimal `json:"netIVAPayable"`
}

// WithholdingRow is one supplier's accumulated withholding for the month.
type WithholdingRow struct {
	SupplierID     string          `json:"supplierID"`
	SupplierName   string          `json:"supplierName"`
	BaseAmount     decimal.Decimal `json:"baseAmount"`
	WithheldAmount decimal.Decimal `json:"withheldAmount"`
	CertificateID  string          `json:"certificateID,omitempty"`
	HasCertificate bool            `json:"hasCertificate"`
}

// WithholdingSummary is the monthly ReteFuente summary per supplier.
type WithholdingSummary struct {
	Year          int              `json:"year"`
	Month         time.Month       `json:"month"`
	Rate          decimal.Decimal  `json:"rate"`
	MinimumBase   decimal.Decimal  `json:"minimumBase"`
	Rows          []WithholdingRow `json:"rows"`
	TotalBase     decimal.Decimal  `json:"totalBase"`
	TotalWithheld decimal.Decimal  `json:"totalWithheld"`
}

// YTDTaxSummary accumulates tax positions for a calendar year from raw
// invoice and purchase-order totals.
type YTDTaxSummary struct {
	Year             int             `json:"year"`
	IVAGenerated     decimal.Decimal `json:"ivaGenerated"`
	IVADeductible    decimal.Decimal `json:"ivaDeductible"`
	NetIVAPosition   decimal.Decimal `json:"netIVAPosition"`
	WithholdingBase  decimal.Decimal `json:"withholdingBase"`
	WithheldAmount   decimal.Decimal `json:"withheldAmount"`
	SalesSubtotal    decimal.Decimal `json:"salesSubtotal"`
	PurchaseSubtotal decimal.Decimal `json:"purchaseSubtotal"`
}
