package service

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Numeric primitives shared by every engine
// ---------------------------------------------------------------------------

// ErrInvalidInput marks a call whose inputs are outside the engine's domain.
// Callers must distinguish it from an empty (but valid) result set.
var ErrInvalidInput = errors.New("invalid input for engine")

// BreakevenNever is the sentinel for a breakeven that never occurs because
// monthly savings are not positive.
const BreakevenNever = 999

var hundred = decimal.NewFromInt(100)

// MonthlyPayment computes the standard fixed-payment amortization amount.
//
//	monthlyRate = annualRatePct / 100 / 12
//	payment     = P * r * (1+r)^n / ((1+r)^n - 1)
//
// A zero rate falls back to a straight-line principal/term split. The result
// is intentionally unrounded; currency is rounded to cents only at the
// output edge so chained calculations do not compound rounding error.
func MonthlyPayment(principal decimal.Decimal, annualRatePct float64, termMonths int) decimal.Decimal {
	if termMonths <= 0 || principal.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	if annualRatePct == 0 {
		return principal.Div(decimal.NewFromInt(int64(termMonths)))
	}

	monthlyRate := annualRatePct / 100.0 / 12.0
	factor := math.Pow(1+monthlyRate, float64(termMonths))
	payment := principal.InexactFloat64() * monthlyRate * factor / (factor - 1)
	return decimal.NewFromFloat(payment)
}

// RemainingBalance returns the principal still owed after the given number
// of scheduled payments.
func RemainingBalance(principal decimal.Decimal, annualRatePct float64, termMonths, paymentsMade int) decimal.Decimal {
	if paymentsMade <= 0 {
		return principal
	}
	if paymentsMade >= termMonths {
		return decimal.Zero
	}
	if annualRatePct == 0 {
		perMonth := principal.Div(decimal.NewFromInt(int64(termMonths)))
		return principal.Sub(perMonth.Mul(decimal.NewFromInt(int64(paymentsMade))))
	}

	monthlyRate := annualRatePct / 100.0 / 12.0
	p := principal.InexactFloat64()
	pow := math.Pow(1+monthlyRate, float64(paymentsMade))
	full := math.Pow(1+monthlyRate, float64(termMonths))
	balance := p * (full - pow) / (full - 1)
	return decimal.NewFromFloat(balance)
}

// BreakevenMonths returns ceil(upfront / monthlySavings), or BreakevenNever
// when savings are not positive.
func BreakevenMonths(upfront, monthlySavings decimal.Decimal) int {
	if monthlySavings.LessThanOrEqual(decimal.Zero) {
		return BreakevenNever
	}
	if upfront.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	months := upfront.Div(monthlySavings).Ceil().IntPart()
	if months >= BreakevenNever {
		return BreakevenNever
	}
	return int(months)
}

// Percent returns pct% of base.
func Percent(base decimal.Decimal, pct float64) decimal.Decimal {
	return base.Mul(decimal.NewFromFloat(pct)).Div(hundred)
}

// RoundCents rounds a monetary amount to cents for display/persistence.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
