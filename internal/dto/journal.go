package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cuentaclara/cuentaclara-backend/internal/core/domain"
)

// JournalEntryLineRequest is one leg of a manual journal entry. Exactly one
// of debit/credit should be positive; the service enforces this.
type JournalEntryLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit" binding:"dgte0"`
	Credit      decimal.Decimal `json:"credit" binding:"dgte0"`
}

// CreateJournalEntryRequest creates a manual DRAFT journal entry.
type CreateJournalEntryRequest struct {
	Date        time.Time                 `json:"date" binding:"required" time_format:"2006-01-02"`
	Description string                    `json:"description" binding:"required"`
	Lines       []JournalEntryLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// VoidJournalEntryRequest voids a POSTED entry; the reason is recorded.
type VoidJournalEntryRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// AutoEntryParams is the bridge-only creation payload. Entries created
// through it are posted directly and carry the originating document refs.
type AutoEntryParams struct {
	Date        time.Time
	Description string
	Source      domain.EntrySource
	Refs        domain.EntryRefs
	Lines       []JournalEntryLineRequest
}

// JournalEntryResponse mirrors a persisted entry.
type JournalEntryResponse struct {
	EntryID     string                     `json:"entryID"`
	EntryNumber int64                      `json:"entryNumber"`
	Date        time.Time                  `json:"date"`
	Description string                     `json:"description"`
	Source      domain.EntrySource         `json:"source"`
	Status      domain.EntryStatus         `json:"status"`
	TotalDebit  decimal.Decimal            `json:"totalDebit"`
	TotalCredit decimal.Decimal            `json:"totalCredit"`
	VoidReason  string                     `json:"voidReason,omitempty"`
	Lines       []JournalEntryLineResponse `json:"lines"`
}

// JournalEntryLineResponse mirrors one persisted line.
type JournalEntryLineResponse struct {
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountID"`
	Description string          `json:"description,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// ToJournalEntryResponse maps a domain entry to its response shape.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	lines := make([]JournalEntryLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = JournalEntryLineResponse{
			LineID:      l.LineID,
			AccountID:   l.AccountID,
			Description: l.Description,
			Debit:       l.Debit,
			Credit:      l.Credit,
		}
	}
	return JournalEntryResponse{
		EntryID:     e.EntryID,
		EntryNumber: e.EntryNumber,
		Date:        e.Date,
		Description: e.Description,
		Source:      e.Source,
		Status:      e.Status,
		TotalDebit:  e.TotalDebit,
		TotalCredit: e.TotalCredit,
		VoidReason:  e.VoidReason,
		Lines:       lines,
	}
}
