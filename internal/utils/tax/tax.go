// Package tax holds the Colombian tax constants and calendar helpers shared
// by the report generators and the accounting bridge.
package tax

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cuentaclara/cuentaclara-backend/internal/apperrors"
	"github.com/cuentaclara/cuentaclara-backend/internal/core/domain"
)

var (
	// ReteFuenteRate is the flat withholding rate applied to qualifying
	// purchases (2.5%).
	ReteFuenteRate = decimal.NewFromFloat(0.025)

	// ReteFuenteMinimumBase is the minimum purchase subtotal (COP) below
	// which no withholding applies.
	ReteFuenteMinimumBase = decimal.NewFromInt(523740)

	// IVAGeneralRate is the general IVA rate in percent.
	IVAGeneralRate = decimal.NewFromInt(19)

	// IVAReducedRate is the reduced IVA rate in percent.
	IVAReducedRate = decimal.NewFromInt(5)
)

// Withholding returns the ReteFuente amount for a purchase subtotal,
// rounded to whole pesos. Subtotals at or below the minimum base withhold
// nothing.
func Withholding(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.LessThanOrEqual(ReteFuenteMinimumBase) {
		return decimal.Zero
	}
	return subtotal.Mul(ReteFuenteRate).Round(0)
}

// TermsDays maps supplier payment terms to the due window in days.
// Unmapped values default to 30.
func TermsDays(terms domain.PaymentTerms) int {
	switch terms {
	case domain.TermsImmediate:
		return 0
	case domain.TermsNet15:
		return 15
	case domain.TermsNet30:
		return 30
	case domain.TermsNet60:
		return 60
	default:
		return 30
	}
}

// BimonthlyPeriod returns the [from, to] window of one of the six fixed
// bimonthly IVA periods of a year (1 = Jan-Feb .. 6 = Nov-Dec).
func BimonthlyPeriod(year, period int) (time.Time, time.Time, error) {
	if period < 1 || period > 6 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: bimonthly period must be 1..6, got %d", apperrors.ErrValidation, period)
	}
	startMonth := time.Month(2*period - 1)
	from := time.Date(year, startMonth, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 2, 0).Add(-time.Nanosecond)
	return from, to, nil
}

// PeriodForDate returns the bimonthly period (1..6) a date falls into.
func PeriodForDate(d time.Time) int {
	return (int(d.Month())-1)/2 + 1
}
