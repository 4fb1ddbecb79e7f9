package services

import (
	"context"

	"github.com/cuentaclara/cuentaclara-backend/internal/core/domain"
)

// BridgeSvcFacade translates committed business events into posted journal
// entries. Handlers never return errors to the publisher: every failure is
// logged and swallowed so the originating operation is unaffected.
type BridgeSvcFacade interface {
	HandleSaleRecorded(ctx context.Context, evt domain.SaleRecorded)
	HandleSaleCancelled(ctx context.Context, evt domain.SaleCancelled)
	HandlePaymentReceived(ctx context.Context, evt domain.PaymentReceived)
	HandlePurchaseReceived(ctx context.Context, evt domain.PurchaseReceivedEvent)
	HandleStockAdjusted(ctx context.Context, evt domain.StockAdjusted)
	HandlePayrollApproved(ctx context.Context, evt domain.PayrollApproved)
	HandleCreditNoteIssued(ctx context.Context, evt domain.CreditNoteIssued)
	HandleDebitNoteIssued(ctx context.Context, evt domain.DebitNoteIssued)
}
