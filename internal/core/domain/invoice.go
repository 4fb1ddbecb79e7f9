package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the billing state of a sales invoice.
type InvoiceStatus string

const (
	InvoiceIssued        InvoiceStatus = "ISSUED"
	InvoicePartiallyPaid InvoiceStatus = "PARTIALLY_PAID"
	InvoicePaid          InvoiceStatus = "PAID"
	InvoiceCancelled     InvoiceStatus = "CANCELLED"
)

// PaymentMethod identifies how a customer payment was received.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "CASH"
	PaymentCard     PaymentMethod = "CARD"
	PaymentTransfer PaymentMethod = "TRANSFER"
)

// TaxCategory classifies a line item for the IVA declaration.
type TaxCategory string

const (
	TaxGravado  TaxCategory = "GRAVADO"  // taxed at a positive IVA rate
	TaxExento   TaxCategory = "EXENTO"   // 0% rate, still reported
	TaxExcluido TaxCategory = "EXCLUIDO" // outside the IVA regime
)

// Invoice is a sales invoice as seen by this subsystem: a read-only source
// for receivables aging and tax reports.
type Invoice struct {
	InvoiceID    string          `json:"invoiceID"`
	TenantID     string          `json:"tenantID"`
	Number       string          `json:"number"`
	CustomerID   string          `json:"customerID"`
	CustomerName string          `json:"customerName"`
	Status       InvoiceStatus   `json:"status"`
	IssueDate    time.Time       `json:"issueDate"`
	DueDate      *time.Time      `json:"dueDate,omitempty"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	TaxTotal     decimal.Decimal `json:"taxTotal"`
	Total        decimal.Decimal `json:"total"`
	Items        []InvoiceItem   `json:"items,omitempty"`
	Payments     []Payment       `json:"payments,omitempty"`
}

// InvoiceItem is one invoice line with its tax classification.
type InvoiceItem struct {
	ItemID      string          `json:"itemID"`
	InvoiceID   string          `json:"invoiceID"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TaxRate     decimal.Decimal `json:"taxRate"` // percentage, e.g. 19
	TaxCategory TaxCategory     `json:"taxCategory"`
	TaxAmount   decimal.Decimal `json:"taxAmount"`
	LineTotal   decimal.Decimal `json:"lineTotal"` // taxable base for the line
}

// Payment is a customer payment applied to an invoice.
type Payment struct {
	PaymentID  string          `json:"paymentID"`
	InvoiceID  string          `json:"invoiceID"`
	Amount     decimal.Decimal `json:"amount"`
	Method     PaymentMethod   `json:"method"`
	ReceivedAt time.Time       `json:"receivedAt"`
}

// OutstandingBalance is the invoice total minus all recorded payments.
func (i Invoice) OutstandingBalance() decimal.Decimal {
	paid := decimal.Zero
	for _, p := range i.Payments {
		paid = paid.Add(p.Amount)
	}
	return i.Total.Sub(paid)
}
