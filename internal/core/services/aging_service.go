package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cuentaclara/cuentaclara-backend/internal/core/domain"
	portsrepo "github.com/cuentaclara/cuentaclara-backend/internal/core/ports/repositories"
	portssvc "github.com/cuentaclara/cuentaclara-backend/internal/core/ports/services"
	"github.com/cuentaclara/cuentaclara-backend/internal/utils/tax"
)

// agingService buckets unpaid receivable/payable balances by days overdue.
type agingService struct {
	BaseService
	invoiceRepo  portsrepo.InvoiceRepositoryFacade
	purchaseRepo portsrepo.PurchaseRepositoryFacade
}

// NewAgingService creates the AR/AP aging report generator.
func NewAgingService(invoiceRepo portsrepo.InvoiceRepositoryFacade, purchaseRepo portsrepo.PurchaseRepositoryFacade) portssvc.AgingSvcFacade {
	return &agingService{
		invoiceRepo:  invoiceRepo,
		purchaseRepo: purchaseRepo,
	}
}

var _ portssvc.AgingSvcFacade = (*agingService)(nil)

// agingItem is one outstanding document flattened for bucketing.
type agingItem struct {
	partyID   string
	partyName string
	dueDate   time.Time
	balance   decimal.Decimal
}

// daysOverdue counts whole days between the due date and the reference
// date; zero or negative means not yet due.
func daysOverdue(asOf, dueDate time.Time) int {
	return int(asOf.Sub(dueDate).Hours() / 24)
}

func bucketItems(asOf time.Time, items []agingItem) *domain.AgingReport {
	report := &domain.AgingReport{
		AsOf:         asOf,
		Rows:         []domain.AgingRow{},
		Current:      decimal.Zero,
		Days1To30:    decimal.Zero,
		Days31To60:   decimal.Zero,
		Days61To90:   decimal.Zero,
		Days90Plus:   decimal.Zero,
		TotalOverdue: decimal.Zero,
		TotalBalance: decimal.Zero,
	}

	rowsByParty := make(map[string]*domain.AgingRow)
	order := []string{}
	for _, it := range items {
		if it.balance.LessThanOrEqual(decimal.Zero) {
			continue
		}
		row, ok := rowsByParty[it.partyID]
		if !ok {
			row = &domain.AgingRow{
				PartyID:      it.partyID,
				PartyName:    it.partyName,
				Current:      decimal.Zero,
				Days1To30:    decimal.Zero,
				Days31To60:   decimal.Zero,
				Days61To90:   decimal.Zero,
				Days90Plus:   decimal.Zero,
				TotalOverdue: decimal.Zero,
				TotalBalance: decimal.Zero,
			}
			rowsByParty[it.partyID] = row
			order = append(order, it.partyID)
		}

		days := daysOverdue(asOf, it.dueDate)
		switch {
		case days <= 0:
			row.Current = row.Current.Add(it.balance)
		case days <= 30:
			row.Days1To30 = row.Days1To30.Add(it.balance)
		case days <= 60:
			row.Days31To60 = row.Days31To60.Add(it.balance)
		case days <= 90:
			row.Days61To90 = row.Days61To90.Add(it.balance)
		default:
			row.Days90Plus = row.Days90Plus.Add(it.balance)
		}
		if days > 0 {
			row.TotalOverdue = row.TotalOverdue.Add(it.balance)
		}
		row.TotalBalance = row.TotalBalance.Add(it.balance)
	}

	for _, partyID := range order {
		row := rowsByParty[partyID]
		report.Rows = append(report.Rows, *row)
		report.Current = report.Current.Add(row.Current)
		report.Days1To30 = report.Days1To30.Add(row.Days1To30)
		report.Days31To60 = report.Days31To60.Add(row.Days31To60)
		report.Days61To90 = report.Days61To90.Add(row.Days61To90)
		report.Days90Plus = report.Days90Plus.Add(row.Days90Plus)
		report.TotalOverdue = report.TotalOverdue.Add(row.TotalOverdue)
		report.TotalBalance = report.TotalBalance.Add(row.TotalBalance)
	}

	sort.SliceStable(report.Rows, func(i, j int) bool {
		return report.Rows[i].TotalBalance.GreaterThan(report.Rows[j].TotalBalance)
	})
	return report
}

// ReceivablesAging buckets unpaid customer invoice balances. Invoices
// without a due date age from their issue date.
func (s *agingService) ReceivablesAging(ctx context.Context, tenantID string, asOf time.Time) (*domain.AgingReport, error) {
	invoices, err := s.invoiceRepo.ListOutstandingInvoices(ctx, tenantID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to list outstanding invoices: %w", err)
	}

	items := make([]agingItem, 0, len(invoices))
	for _, inv := range invoices {
		if inv.Status == domain.InvoiceCancelled {
			continue
		}
		due := inv.IssueDate
		if inv.DueDate != nil {
			due = *inv.DueDate
		}
		items = append(items, agingItem{
			partyID:   inv.CustomerID,
			partyName: inv.CustomerName,
			dueDate:   due,
			balance:   inv.OutstandingBalance(),
		})
	}
	return bucketItems(asOf, items), nil
}

// PayablesAging mirrors receivables for purchase orders, deriving the due
// date from the issue date plus the agreed payment terms.
func (s *agingService) PayablesAging(ctx context.Context, tenantID string, asOf time.Time) (*domain.AgingReport, error) {
	orders, err := s.purchaseRepo.ListOutstandingPurchaseOrders(ctx, tenantID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to list outstanding purchase orders: %w", err)
	}

	items := make([]agingItem, 0, len(orders))
	for _, po := range orders {
		if po.Status == domain.PurchaseCancelled {
			continue
		}
		due := po.IssueDate.AddDate(0, 0, tax.TermsDays(po.PaymentTerms))
		items = append(items, agingItem{
			partyID:   po.SupplierID,
			partyName: po.SupplierName,
			dueDate:   due,
			balance:   po.OutstandingBalance(),
		})
	}
	return bucketItems(asOf, items), nil
}
