package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event type names used by the in-process bus.
const (
	EventSaleRecorded     = "sale.recorded"
	EventSaleCancelled    = "sale.cancelled"
	EventPaymentReceived  = "payment.received"
	EventPurchaseReceived = "purchase.received"
	EventStockAdjusted    = "stock.adjusted"
	EventPayrollApproved  = "payroll.approved"
	EventCreditNoteIssued = "creditnote.issued"
	EventDebitNoteIssued  = "debitnote.issued"
)

// SaleRecorded is published after a sales invoice has been committed.
type SaleRecorded struct {
	TenantID  string
	UserID    string
	InvoiceID string
	Date      time.Time
	Number    string
	Subtotal  decimal.Decimal
	Tax       decimal.Decimal
	Total     decimal.Decimal
	CostTotal decimal.Decimal // Σ(costPrice × qty) of the sold items
	Immediate bool            // POS sale settled on the spot
}

func (SaleRecorded) EventType() string { return EventSaleRecorded }

// SaleCancelled is published after an invoice cancellation has committed.
type SaleCancelled struct {
	TenantID  string
	UserID    string
	InvoiceID string
	Date      time.Time
	Number    string
	Subtotal  decimal.Decimal
	Tax       decimal.Decimal
	Total     decimal.Decimal
	CostTotal decimal.Decimal
	Immediate bool
}

func (SaleCancelled) EventType() string { return EventSaleCancelled }

// PaymentReceived is published after a customer payment has committed.
type PaymentReceived struct {
	TenantID  string
	UserID    string
	PaymentID string
	InvoiceID string
	Date      time.Time
	Amount    decimal.Decimal
	Method    PaymentMethod
}

func (PaymentReceived) EventType() string { return EventPaymentReceived }

// PurchaseReceivedEvent is published when purchased goods are received.
type PurchaseReceivedEvent struct {
	TenantID        string
	UserID          string
	PurchaseOrderID string
	Date            time.Time
	Number          string
	Subtotal        decimal.Decimal
	Tax             decimal.Decimal
	Total           decimal.Decimal
}

func (PurchaseReceivedEvent) EventType() string { return EventPurchaseReceived }

// StockAdjusted is published after an inventory adjustment has committed.
// Quantity is positive for surplus, negative for shortage.
type StockAdjusted struct {
	TenantID        string
	UserID          string
	StockMovementID string
	Date            time.Time
	ProductName     string
	Quantity        decimal.Decimal
	CostPrice       decimal.Decimal
}

func (StockAdjusted) EventType() string { return EventStockAdjusted }

// PayrollApproved carries the approved gross-to-net totals of one payroll
// period. The payroll computation itself happens outside this subsystem.
type PayrollApproved struct {
	TenantID        string
	UserID          string
	PayrollPeriodID string
	Date            time.Time
	PeriodName      string
	GrossSalaries   decimal.Decimal
	NetPay          decimal.Decimal
	Retentions      decimal.Decimal
	EmployeeContrib decimal.Decimal
	EmployerContrib decimal.Decimal
	Provisions      decimal.Decimal
}

func (PayrollApproved) EventType() string { return EventPayrollApproved }

// CreditNoteIssued is published after a credit note has committed.
// IsReturn marks reason codes that bring goods back into inventory.
type CreditNoteIssued struct {
	TenantID       string
	UserID         string
	DianDocumentID string
	InvoiceID      string
	Date           time.Time
	Number         string
	Subtotal       decimal.Decimal
	Tax            decimal.Decimal
	Total          decimal.Decimal
	CostTotal      decimal.Decimal
	IsReturn       bool
}

func (CreditNoteIssued) EventType() string { return EventCreditNoteIssued }

// DebitNoteIssued is published after a debit note (additional charge) has
// committed. Debit notes never carry a COGS impact.
type DebitNoteIssued struct {
	TenantID       string
	UserID         string
	DianDocumentID string
	InvoiceID      string
	Date           time.Time
	Number         string
	Subtotal       decimal.Decimal
	Tax            decimal.Decimal
	Total          decimal.Decimal
}

func (DebitNoteIssued) EventType() string { return EventDebitNoteIssued }
