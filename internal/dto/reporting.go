package dto

import "time"

// AsOfQuery selects a point-in-time report (trial balance, balance sheet,
// aging).
type AsOfQuery struct {
	AsOf time.Time `form:"asOf" binding:"required" time_format:"2006-01-02"`
}

// DateRangeQuery selects a windowed report (general journal, income
// statement, cash flow).
type DateRangeQuery struct {
	From time.Time `form:"from" binding:"required" time_format:"2006-01-02"`
	To   time.Time `form:"to" binding:"required" time_format:"2006-01-02"`
}

// LedgerQuery optionally narrows the general ledger to one account.
type LedgerQuery struct {
	From      time.Time `form:"from" binding:"required" time_format:"2006-01-02"`
	To        time.Time `form:"to" binding:"required" time_format:"2006-01-02"`
	AccountID string    `form:"accountID"`
}

// IVAQuery selects one bimonthly IVA period.
type IVAQuery struct {
	Year   int `form:"year" binding:"required"`
	Period int `form:"period" binding:"required,min=1,max=6"`
}

// WithholdingQuery selects one calendar month.
type WithholdingQuery struct {
	Year  int `form:"year" binding:"required"`
	Month int `form:"month" binding:"required,min=1,max=12"`
}

// YearQuery selects a calendar year.
type YearQuery struct {
	Year int `form:"year" binding:"required"`
}
