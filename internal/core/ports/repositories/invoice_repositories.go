package repositories

import (
	"context"
	"time"

	"github.com/cuentaclara/cuentaclara-backend/internal/core/domain"
)

// InvoiceRepositoryFacade defines read access to sales invoices and their
// payments for the aging and tax reports.
type InvoiceRepositoryFacade interface {
	// ListOutstandingInvoices returns non-cancelled invoices issued on or
	// before asOf that are not fully paid, with payments loaded.
	ListOutstandingInvoices(ctx context.Context, tenantID string, asOf time.Time) ([]domain.Invoice, error)

	// ListInvoicesWithItems returns non-cancelled invoices in the window
	// with line items loaded, for the IVA declaration.
	ListInvoicesWithItems(ctx context.Context, tenantID string, from, to time.Time) ([]domain.Invoice, error)

	// ListInvoices returns non-cancelled invoice headers in the window.
	ListInvoices(ctx context.Context, tenantID string, from, to time.Time) ([]domain.Invoice, error)
}
