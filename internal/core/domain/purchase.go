package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus is the procurement state of a purchase order.
type PurchaseOrderStatus string

const (
	PurchaseOrdered   PurchaseOrderStatus = "ORDERED"
	PurchaseReceived  PurchaseOrderStatus = "RECEIVED"
	PurchasePaid      PurchaseOrderStatus = "PAID"
	PurchaseCancelled PurchaseOrderStatus = "CANCELLED"
)

// PaymentTerms expresses the agreed supplier payment window.
type PaymentTerms string

const (
	TermsImmediate PaymentTerms = "IMMEDIATE"
	TermsNet15     PaymentTerms = "NET_15"
	TermsNet30     PaymentTerms = "NET_30"
	TermsNet60     PaymentTerms = "NET_60"
)

// PurchaseOrder is a supplier purchase as seen by this subsystem: a
// read-only source for payables aging and tax reports.
type PurchaseOrder struct {
	PurchaseOrderID          string              `json:"purchaseOrderID"`
	TenantID                 string              `json:"tenantID"`
	Number                   string              `json:"number"`
	SupplierID               string              `json:"supplierID"`
	SupplierName             string              `json:"supplierName"`
	Status                   PurchaseOrderStatus `json:"status"`
	IssueDate                time.Time           `json:"issueDate"`
	PaymentTerms             PaymentTerms        `json:"paymentTerms"`
	Subtotal                 decimal.Decimal     `json:"subtotal"`
	TaxTotal                 decimal.Decimal     `json:"taxTotal"`
	Total                    decimal.Decimal     `json:"total"`
	Items                    []PurchaseOrderItem `json:"items,omitempty"`
	Payments                 []decimal.Decimal   `json:"payments,omitempty"` // amounts already paid to the supplier
	WithholdingCertificateID string              `json:"withholdingCertificateID,omitempty"`
}

// PurchaseOrderItem is one purchase line with its tax classification.
type PurchaseOrderItem struct {
	ItemID          string          `json:"itemID"`
	PurchaseOrderID string          `json:"purchaseOrderID"`
	Description     string          `json:"description"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	TaxRate         decimal.Decimal `json:"taxRate"`
	TaxCategory     TaxCategory     `json:"taxCategory"`
	TaxAmount       decimal.Decimal `json:"taxAmount"`
	LineTotal       decimal.Decimal `json:"lineTotal"`
}

// OutstandingBalance is the order total minus supplier payments made so far.
func (p PurchaseOrder) OutstandingBalance() decimal.Decimal {
	paid := decimal.Zero
	for _, amt := range p.Payments {
		paid = paid.Add(amt)
	}
	return p.Total.Sub(paid)
}
