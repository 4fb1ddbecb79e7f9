package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus is the lifecycle state of a journal entry.
type EntryStatus string

const (
	Draft  EntryStatus = "DRAFT"
	Posted EntryStatus = "POSTED"
	Voided EntryStatus = "VOIDED"
)

// EntrySource identifies the business operation that produced an entry.
type EntrySource string

const (
	SourceManual           EntrySource = "MANUAL"
	SourceInvoiceSale      EntrySource = "INVOICE_SALE"
	SourceInvoiceCancel    EntrySource = "INVOICE_CANCEL"
	SourcePaymentReceived  EntrySource = "PAYMENT_RECEIVED"
	SourcePurchaseReceived EntrySource = "PURCHASE_RECEIVED"
	SourceStockAdjustment  EntrySource = "STOCK_ADJUSTMENT"
	SourcePayrollApproved  EntrySource = "PAYROLL_APPROVED"
	SourceCreditNote       EntrySource = "CREDIT_NOTE"
	SourceDebitNote        EntrySource = "DEBIT_NOTE"
)

// EntryRefs carries the optional foreign-key links from an auto-generated
// entry back to the business document that produced it.
type EntryRefs struct {
	InvoiceID       string `json:"invoiceID,omitempty"`
	PaymentID       string `json:"paymentID,omitempty"`
	PurchaseOrderID string `json:"purchaseOrderID,omitempty"`
	StockMovementID string `json:"stockMovementID,omitempty"`
	PayrollPeriodID string `json:"payrollPeriodID,omitempty"`
	DianDocumentID  string `json:"dianDocumentID,omitempty"` // credit/debit note electronic document
}

// JournalEntry represents a single, balanced financial event. TotalDebit and
// TotalCredit are fixed at creation time; status is the only mutable field
// once the entry exists.
type JournalEntry struct {
	EntryID     string             `json:"entryID"`
	TenantID    string             `json:"tenantID"`
	EntryNumber int64              `json:"entryNumber"` // sequential, tenant-scoped
	Date        time.Time          `json:"date"`
	Description string             `json:"description"`
	Source      EntrySource        `json:"source"`
	Status      EntryStatus        `json:"status"`
	TotalDebit  decimal.Decimal    `json:"totalDebit"`
	TotalCredit decimal.Decimal    `json:"totalCredit"`
	VoidReason  string             `json:"voidReason,omitempty"`
	Refs        EntryRefs          `json:"refs,omitempty"`
	Lines       []JournalEntryLine `json:"lines,omitempty"`
	AuditFields
}

// JournalEntryLine is one leg of a journal entry. Conventionally exactly one
// of Debit/Credit is non-zero.
type JournalEntryLine struct {
	LineID      string          `json:"lineID"`
	EntryID     string          `json:"entryID"`
	AccountID   string          `json:"accountID"`
	Description string          `json:"description,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}
