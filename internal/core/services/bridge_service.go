package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cuentaclara/cuentaclara-backend/internal/apperrors"
	"github.com/cuentaclara/cuentaclara-backend/internal/core/domain"
	portsrepo "github.com/cuentaclara/cuentaclara-backend/internal/core/ports/repositories"
	portssvc "github.com/cuentaclara/cuentaclara-backend/internal/core/ports/services"
	"github.com/cuentaclara/cuentaclara-backend/internal/dto"
	"github.com/cuentaclara/cuentaclara-backend/internal/platform/events"
	"github.com/cuentaclara/cuentaclara-backend/internal/utils/tax"
)

// bridgeService translates committed business events into posted journal
// entries. It runs after the originating transaction and must never fail
// it: every handler swallows its own errors behind a log line.
type bridgeService struct {
	BaseService
	journalSvc   portssvc.JournalSvcFacade
	settingsRepo portsrepo.SettingsRepositoryFacade
}

// NewBridgeService creates the accounting bridge.
func NewBridgeService(journalSvc portssvc.JournalSvcFacade, settingsRepo portsrepo.SettingsRepositoryFacade) portssvc.BridgeSvcFacade {
	return &bridgeService{
		journalSvc:   journalSvc,
		settingsRepo: settingsRepo,
	}
}

var _ portssvc.BridgeSvcFacade = (*bridgeService)(nil)

// RegisterBridgeSubscribers wires the bridge onto the event bus.
func RegisterBridgeSubscribers(bus *events.Bus, bridge portssvc.BridgeSvcFacade) {
	bus.Subscribe(domain.EventSaleRecorded, func(ctx context.Context, evt events.Event) {
		if e, ok := evt.(domain.SaleRecorded); ok {
			bridge.HandleSaleRecorded(ctx, e)
		}
	})
	bus.Subscribe(domain.EventSaleCancelled, func(ctx context.Context, evt events.Event) {
		if e, ok := evt.(domain.SaleCancelled); ok {
			bridge.HandleSaleCancelled(ctx, e)
		}
	})
	bus.Subscribe(domain.EventPaymentReceived, func(ctx context.Context, evt events.Event) {
		if e, ok := evt.(domain.PaymentReceived); ok {
			bridge.HandlePaymentReceived(ctx, e)
		}
	})
	bus.Subscribe(domain.EventPurchaseReceived, func(ctx context.Context, evt events.Event) {
		if e, ok := evt.(domain.PurchaseReceivedEvent); ok {
			bridge.HandlePurchaseReceived(ctx, e)
		}
	})
	bus.Subscribe(domain.EventStockAdjusted, func(ctx context.Context, evt events.Event) {
		if e, ok := evt.(domain.StockAdjusted); ok {
			bridge.HandleStockAdjusted(ctx, e)
		}
	})
	bus.Subscribe(domain.EventPayrollApproved, func(ctx context.Context, evt events.Event) {
		if e, ok := evt.(domain.PayrollApproved); ok {
			bridge.HandlePayrollApproved(ctx, e)
		}
	})
	bus.Subscribe(domain.EventCreditNoteIssued, func(ctx context.Context, evt events.Event) {
		if e, ok := evt.(domain.CreditNoteIssued); ok {
			bridge.HandleCreditNoteIssued(ctx, e)
		}
	})
	bus.Subscribe(domain.EventDebitNoteIssued, func(ctx context.Context, evt events.Event) {
		if e, ok := evt.(domain.DebitNoteIssued); ok {
			bridge.HandleDebitNoteIssued(ctx, e)
		}
	})
}

// settingsFor loads the tenant configuration and checks the generation
// flag. A nil return with nil error means "do nothing, silently".
func (s *bridgeService) settingsFor(ctx context.Context, tenantID string) (*domain.AccountingSettings, error) {
	settings, err := s.settingsRepo.GetSettings(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if !settings.AutoGenerateEntries {
		s.LogDebug(ctx, "Auto journal generation disabled for tenant", slog.String("tenant_id", tenantID))
		return nil, nil
	}
	return settings, nil
}

// requireMappings verifies every named mapping is configured.
func requireMappings(pairs ...[2]string) error {
	for _, p := range pairs {
		if p[1] == "" {
			return fmt.Errorf("%w: account mapping %q not configured", apperrors.ErrMissingConfig, p[0])
		}
	}
	return nil
}

// post hands a closed double-entry line set to the journal service.
func (s *bridgeService) post(ctx context.Context, tenantID string, userID string, date time.Time, description string, source domain.EntrySource, refs domain.EntryRefs, lines []dto.JournalEntryLineRequest) error {
	_, err := s.journalSvc.CreateAutoEntry(ctx, tenantID, dto.AutoEntryParams{
		Date:        date,
		Description: description,
		Source:      source,
		Refs:        refs,
		Lines:       lines,
	}, userID)
	return err
}

// logSwallowed is the bridge's failure boundary: errors are downgraded to a
// log line so the originating business operation is never affected.
func (s *bridgeService) logSwallowed(ctx context.Context, err error, event string, keyvals ...any) {
	if err == nil {
		return
	}
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("event", event), slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error("Accounting bridge failed, entry not generated", args...)
}

func debitLine(accountID, description string, amount decimal.Decimal) dto.JournalEntryLineRequest {
	return dto.JournalEntryLineRequest{AccountID: accountID, Description: description, Debit: amount, Credit: decimal.Zero}
}

func creditLine(accountID, description string, amount decimal.Decimal) dto.JournalEntryLineRequest {
	return dto.JournalEntryLineRequest{AccountID: accountID, Description: description, Debit: decimal.Zero, Credit: amount}
}

// saleLines builds the double-entry set for a sale. Reversed, it is also
// the cancellation shape.
func saleLines(m domain.AccountMappings, subtotal, taxAmt, total, cost decimal.Decimal, immediate, reversed bool) ([]dto.JournalEntryLineRequest, error) {
	counterpart := m.Receivable
	counterpartName := "receivable"
	if immediate {
		counterpart = m.Cash
		counterpartName = "cash"
	}
	required := [][2]string{{counterpartName, counterpart}, {"revenue", m.Revenue}}
	if taxAmt.IsPositive() {
		required = append(required, [2]string{"taxPayable", m.TaxPayable})
	}
	if cost.IsPositive() {
		required = append(required, [2]string{"cogs", m.COGS}, [2]string{"inventory", m.Inventory})
	}
	if err := requireMappings(required...); err != nil {
		return nil, err
	}

	debit, credit := debitLine, creditLine
	if reversed {
		debit, credit = creditLine, debitLine
	}

	lines := []dto.JournalEntryLineRequest{
		debit(counterpart, "", total),
		credit(m.Revenue, "", subtotal),
	}
	if taxAmt.IsPositive() {
		lines = append(lines, credit(m.TaxPayable, "IVA", taxAmt))
	}
	if cost.IsPositive() {
		lines = append(lines, debit(m.COGS, "", cost), credit(m.Inventory, "", cost))
	}
	return lines, nil
}

// HandleSaleRecorded posts revenue, tax and cost recognition for a sale.
func (s *bridgeService) HandleSaleRecorded(ctx context.Context, evt domain.SaleRecorded) {
	settings, err := s.settingsFor(ctx, evt.TenantID)
	if err != nil || settings == nil {
		s.logSwallowed(ctx, err, evt.EventType(), slog.String("invoice_id", evt.InvoiceID))
		return
	}

	lines, err := saleLines(settings.Mappings, evt.Subtotal, evt.Tax, evt.Total, evt.CostTotal, evt.Immediate, false)
	if err == nil {
		err = s.post(ctx, evt.TenantID, evt.UserID, evt.Date,
			fmt.Sprintf("Venta factura %s", evt.Number),
			domain.SourceInvoiceSale,
			domain.EntryRefs{InvoiceID: evt.InvoiceID},
			lines)
	}
	s.logSwallowed(ctx, err, evt.EventType(), slog.String("invoice_id", evt.InvoiceID))
}

// HandleSaleCancelled posts the exact reversal of the sale lines.
func (s *bridgeService) HandleSaleCancelled(ctx context.Context, evt domain.SaleCancelled) {
	settings, err := s.settingsFor(ctx, evt.TenantID)
	if err != nil || settings == nil {
		s.logSwallowed(ctx, err, evt.EventType(), slog.String("invoice_id", evt.InvoiceID))
		return
	}

	lines, err := saleLines(settings.Mappings, evt.Subtotal, evt.Tax, evt.Total, evt.CostTotal, evt.Immediate, true)
	if err == nil {
		err = s.post(ctx, evt.TenantID, evt.UserID, evt.Date,
			fmt.Sprintf("Anulación factura %s", evt.Number),
			domain.SourceInvoiceCancel,
			domain.EntryRefs{InvoiceID: evt.InvoiceID},
			lines)
	}
	s.logSwallowed(ctx, err, evt.EventType(), slog.String("invoice_id", evt.InvoiceID))
}

// HandlePaymentReceived moves the collected amount from receivable into
// cash or bank depending on the payment method.
func (s *bridgeService) HandlePaymentReceived(ctx context.Context, evt domain.PaymentReceived) {
	settings, err := s.settingsFor(ctx, evt.TenantID)
	if err != nil || settings == nil {
		s.logSwallowed(ctx, err, evt.EventType(), slog.String("payment_id", evt.PaymentID))
		return
	}
	m := settings.Mappings

	target := m.Bank
	targetName := "bank"
	if evt.Method == domain.PaymentCash {
		target = m.Cash
		targetName = "cash"
	}
	err = requireMappings([2]string{targetName, target}, [2]string{"receivable", m.Receivable})
	if err == nil {
		err = s.post(ctx, evt.TenantID, evt.UserID, evt.Date,
			fmt.Sprintf("Pago recibido %s", evt.PaymentID),
			domain.SourcePaymentReceived,
			domain.EntryRefs{PaymentID: evt.PaymentID, InvoiceID: evt.InvoiceID},
			[]dto.JournalEntryLineRequest{
				debitLine(target, "", evt.Amount),
				creditLine(m.Receivable, "", evt.Amount),
			})
	}
	s.logSwallowed(ctx, err, evt.EventType(), slog.String("payment_id", evt.PaymentID))
}

// HandlePurchaseReceived posts inventory intake with deductible tax and,
// above the ReteFuente base, the withholding split of the payable.
func (s *bridgeService) HandlePurchaseReceived(ctx context.Context, evt domain.PurchaseReceivedEvent) {
	settings, err := s.settingsFor(ctx, evt.TenantID)
	if err != nil || settings == nil {
		s.logSwallowed(ctx, err, evt.EventType(), slog.String("purchase_order_id", evt.PurchaseOrderID))
		return
	}
	m := settings.Mappings

	required := [][2]string{{"inventory", m.Inventory}, {"payable", m.Payable}}
	if evt.Tax.IsPositive() {
		required = append(required, [2]string{"taxDeductible", m.TaxDeductible})
	}
	withheld := tax.Withholding(evt.Subtotal)
	if withheld.IsPositive() {
		required = append(required, [2]string{"withholdingPayable", m.WithholdingPayable})
	}

	err = requireMappings(required...)
	if err == nil {
		lines := []dto.JournalEntryLineRequest{debitLine(m.Inventory, "", evt.Subtotal)}
		if evt.Tax.IsPositive() {
			lines = append(lines, debitLine(m.TaxDeductible, "IVA descontable", evt.Tax))
		}
		if withheld.IsPositive() {
			lines = append(lines, creditLine(m.WithholdingPayable, "ReteFuente", withheld))
		}
		lines = append(lines, creditLine(m.Payable, "", evt.Total.Sub(withheld)))

		err = s.post(ctx, evt.TenantID, evt.UserID, evt.Date,
			fmt.Sprintf("Compra recibida %s", evt.Number),
			domain.SourcePurchaseReceived,
			domain.EntryRefs{PurchaseOrderID: evt.PurchaseOrderID},
			lines)
	}
	s.logSwallowed(ctx, err, evt.EventType(), slog.String("purchase_order_id", evt.PurchaseOrderID))
}

// HandleStockAdjusted posts inventory surplus against miscellaneous revenue
// and shortage against miscellaneous expense. Zero-amount adjustments are
// no-ops.
func (s *bridgeService) HandleStockAdjusted(ctx context.Context, evt domain.StockAdjusted) {
	settings, err := s.settingsFor(ctx, evt.TenantID)
	if err != nil || settings == nil {
		s.logSwallowed(ctx, err, evt.EventType(), slog.String("stock_movement_id", evt.StockMovementID))
		return
	}
	m := settings.Mappings

	amount := evt.Quantity.Abs().Mul(evt.CostPrice)
	if amount.IsZero() {
		return
	}

	var lines []dto.JournalEntryLineRequest
	if evt.Quantity.IsPositive() {
		err = requireMappings([2]string{"inventory", m.Inventory}, [2]string{"miscRevenue", m.MiscRevenue})
		if err == nil {
			lines = []dto.JournalEntryLineRequest{
				debitLine(m.Inventory, "", amount),
				creditLine(m.MiscRevenue, "", amount),
			}
		}
	} else {
		err = requireMappings([2]string{"inventory", m.Inventory}, [2]string{"miscExpense", m.MiscExpense})
		if err == nil {
			lines = []dto.JournalEntryLineRequest{
				debitLine(m.MiscExpense, "", amount),
				creditLine(m.Inventory, "", amount),
			}
		}
	}
	if err == nil {
		err = s.post(ctx, evt.TenantID, evt.UserID, evt.Date,
			fmt.Sprintf("Ajuste de inventario %s", evt.ProductName),
			domain.SourceStockAdjustment,
			domain.EntryRefs{StockMovementID: evt.StockMovementID},
			lines)
	}
	s.logSwallowed(ctx, err, evt.EventType(), slog.String("stock_movement_id", evt.StockMovementID))
}

// HandlePayrollApproved posts the approved payroll totals. Zero-valued
// components are omitted; a payroll that produces no lines posts nothing.
func (s *bridgeService) HandlePayrollApproved(ctx context.Context, evt domain.PayrollApproved) {
	settings, err := s.settingsFor(ctx, evt.TenantID)
	if err != nil || settings == nil {
		s.logSwallowed(ctx, err, evt.EventType(), slog.String("payroll_period_id", evt.PayrollPeriodID))
		return
	}
	m := settings.Mappings

	type component struct {
		name      string
		accountID string
		amount    decimal.Decimal
		debit     bool
	}
	components := []component{
		{"personnelExpense", m.PersonnelExpense, evt.GrossSalaries, true},
		{"employerContribExpense", m.EmployerContribExpense, evt.EmployerContrib, true},
		{"provisionExpense", m.ProvisionExpense, evt.Provisions, true},
		{"netPayable", m.NetPayable, evt.NetPay, false},
		{"retentionPayable", m.RetentionPayable, evt.Retentions, false},
		{"employeeContribPayable", m.EmployeeContribPayable, evt.EmployeeContrib, false},
		{"employerContribPayable", m.EmployerContribPayable, evt.EmployerContrib, false},
		{"provisionPayable", m.ProvisionPayable, evt.Provisions, false},
	}

	lines := make([]dto.JournalEntryLineRequest, 0, len(components))
	for _, comp := range components {
		if !comp.amount.IsPositive() {
			continue
		}
		if err = requireMappings([2]string{comp.name, comp.accountID}); err != nil {
			break
		}
		if comp.debit {
			lines = append(lines, debitLine(comp.accountID, "", comp.amount))
		} else {
			lines = append(lines, creditLine(comp.accountID, "", comp.amount))
		}
	}
	if err == nil && len(lines) == 0 {
		return
	}
	if err == nil {
		err = s.post(ctx, evt.TenantID, evt.UserID, evt.Date,
			fmt.Sprintf("Nómina aprobada %s", evt.PeriodName),
			domain.SourcePayrollApproved,
			domain.EntryRefs{PayrollPeriodID: evt.PayrollPeriodID},
			lines)
	}
	s.logSwallowed(ctx, err, evt.EventType(), slog.String("payroll_period_id", evt.PayrollPeriodID))
}

// HandleCreditNoteIssued reverses revenue and tax; cost and inventory come
// back only for return-type reason codes.
func (s *bridgeService) HandleCreditNoteIssued(ctx context.Context, evt domain.CreditNoteIssued) {
	settings, err := s.settingsFor(ctx, evt.TenantID)
	if err != nil || settings == nil {
		s.logSwallowed(ctx, err, evt.EventType(), slog.String("dian_document_id", evt.DianDocumentID))
		return
	}
	m := settings.Mappings

	required := [][2]string{{"receivable", m.Receivable}, {"revenue", m.Revenue}}
	if evt.Tax.IsPositive() {
		required = append(required, [2]string{"taxPayable", m.TaxPayable})
	}
	restock := evt.IsReturn && evt.CostTotal.IsPositive()
	if restock {
		required = append(required, [2]string{"cogs", m.COGS}, [2]string{"inventory", m.Inventory})
	}

	err = requireMappings(required...)
	if err == nil {
		lines := []dto.JournalEntryLineRequest{
			creditLine(m.Receivable, "", evt.Total),
			debitLine(m.Revenue, "", evt.Subtotal),
		}
		if evt.Tax.IsPositive() {
			lines = append(lines, debitLine(m.TaxPayable, "IVA", evt.Tax))
		}
		if restock {
			lines = append(lines, debitLine(m.Inventory, "", evt.CostTotal), creditLine(m.COGS, "", evt.CostTotal))
		}
		err = s.post(ctx, evt.TenantID, evt.UserID, evt.Date,
			fmt.Sprintf("Nota crédito %s", evt.Number),
			domain.SourceCreditNote,
			domain.EntryRefs{InvoiceID: evt.InvoiceID, DianDocumentID: evt.DianDocumentID},
			lines)
	}
	s.logSwallowed(ctx, err, evt.EventType(), slog.String("dian_document_id", evt.DianDocumentID))
}

// HandleDebitNoteIssued posts an additional charge with the sale shape but
// no cost impact.
func (s *bridgeService) HandleDebitNoteIssued(ctx context.Context, evt domain.DebitNoteIssued) {
	settings, err := s.settingsFor(ctx, evt.TenantID)
	if err != nil || settings == nil {
		s.logSwallowed(ctx, err, evt.EventType(), slog.String("dian_document_id", evt.DianDocumentID))
		return
	}
	m := settings.Mappings

	required := [][2]string{{"receivable", m.Receivable}, {"revenue", m.Revenue}}
	if evt.Tax.IsPositive() {
		required = append(required, [2]string{"taxPayable", m.TaxPayable})
	}
	err = requireMappings(required...)
	if err == nil {
		lines := []dto.JournalEntryLineRequest{
			debitLine(m.Receivable, "", evt.Total),
			creditLine(m.Revenue, "", evt.Subtotal),
		}
		if evt.Tax.IsPositive() {
			lines = append(lines, creditLine(m.TaxPayable, "IVA", evt.Tax))
		}
		err = s.post(ctx, evt.TenantID, evt.UserID, evt.Date,
			fmt.Sprintf("Nota débito %s", evt.Number),
			domain.SourceDebitNote,
			domain.EntryRefs{InvoiceID: evt.InvoiceID, DianDocumentID: evt.DianDocumentID},
			lines)
	}
	s.logSwallowed(ctx, err, evt.EventType(), slog.String("dian_document_id", evt.DianDocumentID))
}
