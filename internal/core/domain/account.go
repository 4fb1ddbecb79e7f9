package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	COGS      AccountType = "COGS"
	Expense   AccountType = "EXPENSE"
)

// AccountNature is the fixed debit/credit orientation of an account. It is
// set at chart-of-accounts creation and never mutated here; it determines
// the sign convention for every balance computation.
type AccountNature string

const (
	NatureDebit  AccountNature = "DEBIT"
	NatureCredit AccountNature = "CREDIT"
)

// CashBankCodePrefix is the PUC class for cash and bank accounts ("11xx").
// The cash flow report is restricted to accounts under this class.
const CashBankCodePrefix = "11"

// Account represents one account of a tenant's chart of accounts (PUC).
// Accounts are created by the chart-of-accounts setup and are read-only in
// this subsystem.
type Account struct {
	AccountID string        `json:"accountID"`
	TenantID  string        `json:"tenantID"`
	Code      string        `json:"code"` // hierarchical PUC code, e.g. "1105"
	Name      string        `json:"name"`
	Type      AccountType   `json:"type"`
	Nature    AccountNature `json:"nature"`
	Level     int           `json:"level"`
	IsActive  bool          `json:"isActive"`
	AuditFields
}

// IsCashOrBank reports whether the account belongs to the PUC cash/bank class.
func (a Account) IsCashOrBank() bool {
	return len(a.Code) >= len(CashBankCodePrefix) && a.Code[:len(CashBankCodePrefix)] == CashBankCodePrefix
}
