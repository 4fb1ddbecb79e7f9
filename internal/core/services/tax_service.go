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

// taxService generates the Colombian tax reports from raw invoice and
// purchase-order data. It deliberately does not use the balance engine:
// DIAN figures come from documents, not from ledger balances.
type taxService struct {
	BaseService
	invoiceRepo  portsrepo.InvoiceRepositoryFacade
	purchaseRepo portsrepo.PurchaseRepositoryFacade
}

// NewTaxService creates the tax report generator.
func NewTaxService(invoiceRepo portsrepo.InvoiceRepositoryFacade, purchaseRepo portsrepo.PurchaseRepositoryFacade) portssvc.TaxSvcFacade {
	return &taxService{
		invoiceRepo:  invoiceRepo,
		purchaseRepo: purchaseRepo,
	}
}

var _ portssvc.TaxSvcFacade = (*taxService)(nil)

// rateAccumulator builds one IVA rate bucket, counting distinct documents.
type rateAccumulator struct {
	base decimal.Decimal
	tax  decimal.Decimal
	docs map[string]bool
}

func accumulateRate(buckets map[string]*rateAccumulator, rate decimal.Decimal, docID string, base, taxAmt decimal.Decimal) {
	key := rate.String()
	acc, ok := buckets[key]
	if !ok {
		acc = &rateAccumulator{base: decimal.Zero, tax: decimal.Zero, docs: make(map[string]bool)}
		buckets[key] = acc
	}
	acc.base = acc.base.Add(base)
	acc.tax = acc.tax.Add(taxAmt)
	acc.docs[docID] = true
}

func flattenRateBuckets(buckets map[string]*rateAccumulator) ([]domain.IVARateBucket, decimal.Decimal) {
	out := make([]domain.IVARateBucket, 0, len(buckets))
	total := decimal.Zero
	for key, acc := range buckets {
		rate, _ := decimal.NewFromString(key)
		out = append(out, domain.IVARateBucket{
			Rate:          rate,
			TaxableBase:   acc.base,
			TaxAmount:     acc.tax,
			DocumentCount: len(acc.docs),
		})
		total = total.Add(acc.tax)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rate.LessThan(out[j].Rate) })
	return out, total
}

// IVADeclaration aggregates invoice and purchase line items into per-rate
// buckets over one fixed bimonthly window.
func (s *taxService) IVADeclaration(ctx context.Context, tenantID string, year, period int) (*domain.IVADeclaration, error) {
	from, to, err := tax.BimonthlyPeriod(year, period)
	if err != nil {
		return nil, err
	}

	invoices, err := s.invoiceRepo.ListInvoicesWithItems(ctx, tenantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices for IVA declaration: %w", err)
	}
	orders, err := s.purchaseRepo.ListPurchaseOrdersWithItems(ctx, tenantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchase orders for IVA declaration: %w", err)
	}

	generated := make(map[string]*rateAccumulator)
	deductible := make(map[string]*rateAccumulator)
	exemptBase := decimal.Zero
	excludedBase := decimal.Zero

	for _, inv := range invoices {
		for _, item := range inv.Items {
			switch item.TaxCategory {
			case domain.TaxGravado:
				accumulateRate(generated, item.TaxRate, inv.InvoiceID, item.LineTotal, item.TaxAmount)
			case domain.TaxExento:
				exemptBase = exemptBase.Add(item.LineTotal)
			case domain.TaxExcluido:
				excludedBase = excludedBase.Add(item.LineTotal)
			}
		}
	}
	for _, po := range orders {
		for _, item := range po.Items {
			if item.TaxCategory == domain.TaxGravado {
				accumulateRate(deductible, item.TaxRate, po.PurchaseOrderID, item.LineTotal, item.TaxAmount)
			}
		}
	}

	decl := &domain.IVADeclaration{
		Year:         year,
		Period:       period,
		From:         from,
		To:           to,
		ExemptBase:   exemptBase,
		ExcludedBase: excludedBase,
	}
	decl.Generated, decl.TotalGenerated = flattenRateBuckets(generated)
	decl.Deductible, decl.TotalDeductible = flattenRateBuckets(deductible)
	decl.NetIVAPayable = decl.TotalGenerated.Sub(decl.TotalDeductible)
	return decl, nil
}

// WithholdingSummary accumulates ReteFuente per supplier for one month,
// cross-referencing issued withholding certificates. Orders whose subtotal
// does not exceed the minimum base contribute nothing.
func (s *taxService) WithholdingSummary(ctx context.Context, tenantID string, year int, month time.Month) (*domain.WithholdingSummary, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)

	orders, err := s.purchaseRepo.ListPurchaseOrders(ctx, tenantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchase orders for withholding summary: %w", err)
	}

	summary := &domain.WithholdingSummary{
		Year:          year,
		Month:         month,
		Rate:          tax.ReteFuenteRate,
		MinimumBase:   tax.ReteFuenteMinimumBase,
		Rows:          []domain.WithholdingRow{},
		TotalBase:     decimal.Zero,
		TotalWithheld: decimal.Zero,
	}

	rowsBySupplier := make(map[string]*domain.WithholdingRow)
	order := []string{}
	for _, po := range orders {
		withheld := tax.Withholding(po.Subtotal)
		if withheld.IsZero() {
			continue
		}
		row, ok := rowsBySupplier[po.SupplierID]
		if !ok {
			row = &domain.WithholdingRow{
				SupplierID:     po.SupplierID,
				SupplierName:   po.SupplierName,
				BaseAmount:     decimal.Zero,
				WithheldAmount: decimal.Zero,
			}
			rowsBySupplier[po.SupplierID] = row
			order = append(order, po.SupplierID)
		}
		row.BaseAmount = row.BaseAmount.Add(po.Subtotal)
		row.WithheldAmount = row.WithheldAmount.Add(withheld)
		if po.WithholdingCertificateID != "" {
			row.CertificateID = po.WithholdingCertificateID
			row.HasCertificate = true
		}
	}

	for _, supplierID := range order {
		row := rowsBySupplier[supplierID]
		summary.Rows = append(summary.Rows, *row)
		summary.TotalBase = summary.TotalBase.Add(row.BaseAmount)
		summary.TotalWithheld = summary.TotalWithheld.Add(row.WithheldAmount)
	}
	sort.SliceStable(summary.Rows, func(i, j int) bool {
		return summary.Rows[i].WithheldAmount.GreaterThan(summary.Rows[j].WithheldAmount)
	})
	return summary, nil
}

// YTDTaxSummary sums the year's tax positions from raw document totals.
func (s *taxService) YTDTaxSummary(ctx context.Context, tenantID string, year int) (*domain.YTDTaxSummary, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)

	invoices, err := s.invoiceRepo.ListInvoices(ctx, tenantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices for YTD summary: %w", err)
	}
	orders, err := s.purchaseRepo.ListPurchaseOrders(ctx, tenantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchase orders for YTD summary: %w", err)
	}

	summary := &domain.YTDTaxSummary{Year: year}
	summary.IVAGenerated = decimal.Zero
	summary.IVADeductible = decimal.Zero
	summary.WithholdingBase = decimal.Zero
	summary.WithheldAmount = decimal.Zero
	summary.SalesSubtotal = decimal.Zero
	summary.PurchaseSubtotal = decimal.Zero

	for _, inv := range invoices {
		summary.IVAGenerated = summary.IVAGenerated.Add(inv.TaxTotal)
		summary.SalesSubtotal = summary.SalesSubtotal.Add(inv.Subtotal)
	}
	for _, po := range orders {
		summary.IVADeductible = summary.IVADeductible.Add(po.TaxTotal)
		summary.PurchaseSubtotal = summary.PurchaseSubtotal.Add(po.Subtotal)
		if withheld := tax.Withholding(po.Subtotal); !withheld.IsZero() {
			summary.WithholdingBase = summary.WithholdingBase.Add(po.Subtotal)
			summary.WithheldAmount = summary.WithheldAmount.Add(withheld)
		}
	}
	summary.NetIVAPosition = summary.IVAGenerated.Sub(summary.IVADeductible)
	return summary, nil
}
