package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cuentaclara/cuentaclara-backend/internal/core/domain"
)

// AccountActivity is the aggregate debit/credit projection the balance
// engine consumes, one row per account with posted activity in the window.
type AccountActivity struct {
	AccountID   string
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// PostedLine is a single journal line of a POSTED entry joined with its
// parent entry, used by the general ledger and cash flow reports.
type PostedLine struct {
	EntryID          string
	EntryNumber      int64
	Date             time.Time
	EntryDescription string
	LineDescription  string
	AccountID        string
	Debit            decimal.Decimal
	Credit           decimal.Decimal
}

// JournalRepositoryFacade defines persistence for journal entries and their
// lines. SaveEntry persists the entry and all lines atomically and assigns
// the next tenant-scoped entry number inside the same transaction.
type JournalRepositoryFacade interface {
	SaveEntry(ctx context.Context, entry *domain.JournalEntry) error
	FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error)
	UpdateEntryStatus(ctx context.Context, tenantID, entryID string, status domain.EntryStatus, voidReason string, updatedBy string, updatedAt time.Time) error
	ListPostedEntries(ctx context.Context, tenantID string, from, to time.Time) ([]domain.JournalEntry, error)

	// SumPostedLinesByAccount aggregates debit/credit per account over
	// POSTED entries dated <= to (and >= from when given).
	SumPostedLinesByAccount(ctx context.Context, tenantID string, from *time.Time, to time.Time) ([]AccountActivity, error)

	// SumPostedLinesBefore aggregates debit/credit per account over POSTED
	// entries dated strictly before the given instant. Opening balances use
	// this so a window starting at `before` misses nothing: together the two
	// queries cover every posted timestamp exactly once.
	SumPostedLinesBefore(ctx context.Context, tenantID string, before time.Time) ([]AccountActivity, error)

	// ListPostedLines returns the chronological posted lines in the window,
	// optionally restricted to one account or to accounts whose PUC code
	// starts with codePrefix.
	ListPostedLines(ctx context.Context, tenantID string, from, to time.Time, accountID string, codePrefix string) ([]PostedLine, error)
}
