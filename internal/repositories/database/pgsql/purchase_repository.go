package pgsql

import (
	"context"
	"time"

	"github.com/cuentaclara/cuentaclara-backend/internal/apperrors"
	"github.com/cuentaclara/cuentaclara-backend/internal/core/domain"
	portsrepo "github.com/cuentaclara/cuentaclara-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxPurchaseRepository struct {
	BaseRepository
}

// newPgxPurchaseRepository creates a new read-only repository over the
// purchase order tables. Orders are written by the procurement subsystem.
func newPgxPurchaseRepository(pool *pgxpool.Pool) portsrepo.PurchaseRepositoryFacade {
	return &PgxPurchaseRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PurchaseRepositoryFacade = (*PgxPurchaseRepository)(nil)

const purchaseColumns = `
	purchase_order_id, tenant_id, number, supplier_id, supplier_name, status,
	issue_date, payment_terms, subtotal, tax_total, total, withholding_certificate_id
`

func scanPurchaseOrder(row pgx.Row) (*domain.PurchaseOrder, error) {
	var po domain.PurchaseOrder
	var certificateID *string
	err := row.Scan(
		&po.PurchaseOrderID,
		&po.TenantID,
		&po.Number,
		&po.SupplierID,
		&po.SupplierName,
		&po.Status,
		&po.IssueDate,
		&po.PaymentTerms,
		&po.Subtotal,
		&po.TaxTotal,
		&po.Total,
		&certificateID,
	)
	if err != nil {
		return nil, err
	}
	if certificateID != nil {
		po.WithholdingCertificateID = *certificateID
	}
	return &po, nil
}

func (r *PgxPurchaseRepository) queryPurchaseOrders(ctx context.Context, query string, args ...any) ([]domain.PurchaseOrder, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query purchase orders", err)
	}
	defer rows.Close()

	orders := []domain.PurchaseOrder{}
	for rows.Next() {
		po, err := scanPurchaseOrder(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan purchase order row", err)
		}
		orders = append(orders, *po)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating purchase order rows", err)
	}
	return orders, nil
}

// ListOutstandingPurchaseOrders returns non-cancelled orders issued on or
// before asOf whose supplier payments do not cover the total.
func (r *PgxPurchaseRepository) ListOutstandingPurchaseOrders(ctx context.Context, tenantID string, asOf time.Time) ([]domain.PurchaseOrder, error) {
	query := `
		SELECT ` + purchaseColumns + `
		FROM purchase_orders po
		WHERE tenant_id = $1 AND status != 'CANCELLED' AND issue_date <= $2
		  AND total > COALESCE((SELECT SUM(amount) FROM purchase_order_payments pp WHERE pp.purchase_order_id = po.purchase_order_id), 0)
		ORDER BY issue_date;
	`
	orders, err := r.queryPurchaseOrders(ctx, query, tenantID, asOf)
	if err != nil {
		return nil, err
	}
	if err := r.attachPayments(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListPurchaseOrdersWithItems returns non-cancelled orders in the window
// with line items loaded.
func (r *PgxPurchaseRepository) ListPurchaseOrdersWithItems(ctx context.Context, tenantID string, from, to time.Time) ([]domain.PurchaseOrder, error) {
	orders, err := r.ListPurchaseOrders(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListPurchaseOrders returns non-cancelled order headers in the window.
func (r *PgxPurchaseRepository) ListPurchaseOrders(ctx context.Context, tenantID string, from, to time.Time) ([]domain.PurchaseOrder, error) {
	query := `
		SELECT ` + purchaseColumns + `
		FROM purchase_orders
		WHERE tenant_id = $1 AND status != 'CANCELLED' AND issue_date >= $2 AND issue_date <= $3
		ORDER BY issue_date;
	`
	return r.queryPurchaseOrders(ctx, query, tenantID, from, to)
}

func (r *PgxPurchaseRepository) attachItems(ctx context.Context, orders []domain.PurchaseOrder) error {
	if len(orders) == 0 {
		return nil
	}
	orderIDs := make([]string, len(orders))
	for i, po := range orders {
		orderIDs[i] = po.PurchaseOrderID
	}

	query := `
		SELECT item_id, purchase_order_id, description, quantity, unit_price,
		       tax_rate, tax_category, tax_amount, line_total
		FROM purchase_order_items
		WHERE purchase_order_id = ANY($1)
		ORDER BY purchase_order_id, item_id;
	`
	rows, err := r.Pool.Query(ctx, query, orderIDs)
	if err != nil {
		return apperrors.NewAppError(500, "failed to batch query purchase order items", err)
	}
	defer rows.Close()

	itemsByOrder := make(map[string][]domain.PurchaseOrderItem)
	for rows.Next() {
		var it domain.PurchaseOrderItem
		if err := rows.Scan(
			&it.ItemID,
			&it.PurchaseOrderID,
			&it.Description,
			&it.Quantity,
			&it.UnitPrice,
			&it.TaxRate,
			&it.TaxCategory,
			&it.TaxAmount,
			&it.LineTotal,
		); err != nil {
			return apperrors.NewAppError(500, "failed to scan purchase order item row", err)
		}
		itemsByOrder[it.PurchaseOrderID] = append(itemsByOrder[it.PurchaseOrderID], it)
	}
	if err := rows.Err(); err != nil {
		return apperrors.NewAppError(500, "error iterating purchase order item rows", err)
	}

	for i := range orders {
		orders[i].Items = itemsByOrder[orders[i].PurchaseOrderID]
	}
	return nil
}

func (r *PgxPurchaseRepository) attachPayments(ctx context.Context, orders []domain.PurchaseOrder) error {
	if len(orders) == 0 {
		return nil
	}
	orderIDs := make([]string, len(orders))
	for i, po := range orders {
		orderIDs[i] = po.PurchaseOrderID
	}

	query := `
		SELECT purchase_order_id, amount
		FROM purchase_order_payments
		WHERE purchase_order_id = ANY($1)
		ORDER BY purchase_order_id, paid_at;
	`
	rows, err := r.Pool.Query(ctx, query, orderIDs)
	if err != nil {
		return apperrors.NewAppError(500, "failed to batch query supplier payments", err)
	}
	defer rows.Close()

	paymentsByOrder := make(map[string][]decimal.Decimal)
	for rows.Next() {
		var orderID string
		var amount decimal.Decimal
		if err := rows.Scan(&orderID, &amount); err != nil {
			return apperrors.NewAppError(500, "failed to scan supplier payment row", err)
		}
		paymentsByOrder[orderID] = append(paymentsByOrder[orderID], amount)
	}
	if err := rows.Err(); err != nil {
		return apperrors.NewAppError(500, "error iterating supplier payment rows", err)
	}

	for i := range orders {
		orders[i].Payments = paymentsByOrder[orders[i].PurchaseOrderID]
	}
	return nil
}
