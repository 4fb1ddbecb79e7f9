package repositories

import (
	"context"
	"time"

	"github.com/cuentaclara/cuentaclara-backend/internal/core/domain"
)

// PurchaseRepositoryFacade defines read access to purchase orders for the
// aging and tax reports.
type PurchaseRepositoryFacade interface {
	// ListOutstandingPurchaseOrders returns non-cancelled orders issued on
	// or before asOf that are not fully paid, with supplier payments loaded.
	ListOutstandingPurchaseOrders(ctx context.Context, tenantID string, asOf time.Time) ([]domain.PurchaseOrder, error)

	// ListPurchaseOrdersWithItems returns non-cancelled orders in the
	// window with line items loaded, for the IVA declaration.
	ListPurchaseOrdersWithItems(ctx context.Context, tenantID string, from, to time.Time) ([]domain.PurchaseOrder, error)

	// ListPurchaseOrders returns non-cancelled order headers in the window.
	ListPurchaseOrders(ctx context.Context, tenantID string, from, to time.Time) ([]domain.PurchaseOrder, error)
}
