package pgsql

import (
	"context"
	"time"

	"github.com/cuentaclara/cuentaclara-backend/internal/apperrors"
	"github.com/cuentaclara/cuentaclara-backend/internal/core/domain"
	portsrepo "github.com/cuentaclara/cuentaclara-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new read-only repository over the sales
// invoice tables. Invoices are written by the billing subsystem.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

const invoiceColumns = `
	invoice_id, tenant_id, number, customer_id, customer_name, status,
	issue_date, due_date, subtotal, tax_total, total
`

func scanInvoice(row pgx.Row) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := row.Scan(
		&inv.InvoiceID,
		&inv.TenantID,
		&inv.Number,
		&inv.CustomerID,
		&inv.CustomerName,
		&inv.Status,
		&inv.IssueDate,
		&inv.DueDate,
		&inv.Subtotal,
		&inv.TaxTotal,
		&inv.Total,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *PgxInvoiceRepository) queryInvoices(ctx context.Context, query string, args ...any) ([]domain.Invoice, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query invoices", err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan invoice row", err)
		}
		invoices = append(invoices, *inv)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating invoice rows", err)
	}
	return invoices, nil
}

// ListOutstandingInvoices returns non-cancelled invoices issued on or before
// asOf whose payments do not cover the total, with payments loaded.
func (r *PgxInvoiceRepository) ListOutstandingInvoices(ctx context.Context, tenantID string, asOf time.Time) ([]domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices i
		WHERE tenant_id = $1 AND status != 'CANCELLED' AND issue_date <= $2
		  AND total > COALESCE((SELECT SUM(amount) FROM payments p WHERE p.invoice_id = i.invoice_id), 0)
		ORDER BY issue_date;
	`
	invoices, err := r.queryInvoices(ctx, query, tenantID, asOf)
	if err != nil {
		return nil, err
	}
	if err := r.attachPayments(ctx, invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

// ListInvoicesWithItems returns non-cancelled invoices in the window with
// line items loaded.
func (r *PgxInvoiceRepository) ListInvoicesWithItems(ctx context.Context, tenantID string, from, to time.Time) ([]domain.Invoice, error) {
	invoices, err := r.ListInvoices(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

// ListInvoices returns non-cancelled invoice headers in the window.
func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, tenantID string, from, to time.Time) ([]domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE tenant_id = $1 AND status != 'CANCELLED' AND issue_date >= $2 AND issue_date <= $3
		ORDER BY issue_date;
	`
	return r.queryInvoices(ctx, query, tenantID, from, to)
}

func (r *PgxInvoiceRepository) attachItems(ctx context.Context, invoices []domain.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}
	invoiceIDs := make([]string, len(invoices))
	for i, inv := range invoices {
		invoiceIDs[i] = inv.InvoiceID
	}

	query := `
		SELECT item_id, invoice_id, description, quantity, unit_price,
		       tax_rate, tax_category, tax_amount, line_total
		FROM invoice_items
		WHERE invoice_id = ANY($1)
		ORDER BY invoice_id, item_id;
	`
	rows, err := r.Pool.Query(ctx, query, invoiceIDs)
	if err != nil {
		return apperrors.NewAppError(500, "failed to batch query invoice items", err)
	}
	defer rows.Close()

	itemsByInvoice := make(map[string][]domain.InvoiceItem)
	for rows.Next() {
		var it domain.InvoiceItem
		if err := rows.Scan(
			&it.ItemID,
			&it.InvoiceID,
			&it.Description,
			&it.Quantity,
			&it.UnitPrice,
			&it.TaxRate,
			&it.TaxCategory,
			&it.TaxAmount,
			&it.LineTotal,
		); err != nil {
			return apperrors.NewAppError(500, "failed to scan invoice item row", err)
		}
		itemsByInvoice[it.InvoiceID] = append(itemsByInvoice[it.InvoiceID], it)
	}
	if err := rows.Err(); err != nil {
		return apperrors.NewAppError(500, "error iterating invoice item rows", err)
	}

	for i := range invoices {
		invoices[i].Items = itemsByInvoice[invoices[i].InvoiceID]
	}
	return nil
}

func (r *PgxInvoiceRepository) attachPayments(ctx context.Context, invoices []domain.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}
	invoiceIDs := make([]string, len(invoices))
	for i, inv := range invoices {
		invoiceIDs[i] = inv.InvoiceID
	}

	query := `
		SELECT payment_id, invoice_id, amount, method, received_at
		FROM payments
		WHERE invoice_id = ANY($1)
		ORDER BY invoice_id, received_at;
	`
	rows, err := r.Pool.Query(ctx, query, invoiceIDs)
	if err != nil {
		return apperrors.NewAppError(500, "failed to batch query payments", err)
	}
	defer rows.Close()

	paymentsByInvoice := make(map[string][]domain.Payment)
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.PaymentID, &p.InvoiceID, &p.Amount, &p.Method, &p.ReceivedAt); err != nil {
			return apperrors.NewAppError(500, "failed to scan payment row", err)
		}
		paymentsByInvoice[p.InvoiceID] = append(paymentsByInvoice[p.InvoiceID], p)
	}
	if err := rows.Err(); err != nil {
		return apperrors.NewAppError(500, "error iterating payment rows", err)
	}

	for i := range invoices {
		invoices[i].Payments = paymentsByInvoice[invoices[i].InvoiceID]
	}
	return nil
}
