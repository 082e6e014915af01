package service

import (
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// BuydownComparator – break-even and net-savings ranking of rate options
// ---------------------------------------------------------------------------

// Buydown badge labels.
const (
	BuydownBadgeBestLongTerm  = "Best Long-Term"
	BuydownBadgeBestShortTerm = "Best Short-Term"
	BuydownBadgeLowestCash    = "Lowest Cash"
	BuydownBadgeAvoid         = "Avoid"
)

const (
	// Benefit score shape: 50 is the neutral baseline, raised by one point
	// per $1,000 of net savings at the horizon, clamped to 100.
	buydownScoreBaseline   = 50
	buydownScoreMax        = 100
	buydownScorePerDollars = 1000
)

// BuydownBaseline is the no-points reference the options are measured
// against.
type BuydownBaseline struct {
	LoanAmount     decimal.Decimal
	NoteRatePct    float64
	TermMonths     int
	MonthlyPayment decimal.Decimal
}

// BuydownOption is one priced rate on the lender's grid. Price is in points
// of par: above 100 costs money, below 100 returns a lender credit.
type BuydownOption struct {
	Label       string
	NoteRatePct float64
	Price       decimal.Decimal
}

// BuydownResult is the per-option economics at the planning horizon.
type BuydownResult struct {
	Label               string
	NoteRatePct         float64
	UpfrontCost         decimal.Decimal
	MonthlyPayment      decimal.Decimal
	MonthlySavings      decimal.Decimal
	BreakevenMonths     int
	NetSavingsAtHorizon decimal.Decimal
	BenefitScore        int
	Badges              []string
}

// BuydownComparator prices each option against the baseline and ranks them by
// break-even and horizon savings.
type BuydownComparator struct{}

// NewBuydownComparator returns a new comparator instance.
func NewBuydownComparator() *BuydownComparator {
	return &BuydownComparator{}
}

// Compare returns one result per pricing option.
func (c *BuydownComparator) Compare(base BuydownBaseline, options []BuydownOption, horizonMonths int) ([]BuydownResult, error) {
	if base.LoanAmount.LessThanOrEqual(decimal.Zero) || base.TermMonths <= 0 || horizonMonths <= 0 {
		return nil, ErrInvalidInput
	}

	baseline := base.MonthlyPayment
	if baseline.LessThanOrEqual(decimal.Zero) {
		baseline = MonthlyPayment(base.LoanAmount, base.NoteRatePct, base.TermMonths)
	}

	horizon := decimal.NewFromInt(int64(horizonMonths))
	results := make([]BuydownResult, 0, len(options))
	for _, opt := range options {
		upfront := base.LoanAmount.Mul(opt.Price.Sub(hundred)).Div(hundred)
		payment := MonthlyPayment(base.LoanAmount, opt.NoteRatePct, base.TermMonths)
		savings := baseline.Sub(payment)
		breakeven := BreakevenMonths(upfront, savings)
		netSavings := savings.Mul(horizon).Sub(upfront)

		results = append(results, BuydownResult{
			Label:               opt.Label,
			NoteRatePct:         opt.NoteRatePct,
			UpfrontCost:         RoundCents(upfront),
			MonthlyPayment:      RoundCents(payment),
			MonthlySavings:      RoundCents(savings),
			BreakevenMonths:     breakeven,
			NetSavingsAtHorizon: RoundCents(netSavings),
			BenefitScore:        benefitScore(savings, upfront, netSavings, breakeven, horizonMonths),
		})
	}

	assignBuydownBadges(results)
	return results, nil
}

// benefitScore maps an option onto a 0-100 scale: baseline 50, raised by net
// savings when the option pays for itself within the horizon, forced to zero
// when it loses money on a paid buydown.
func benefitScore(savings, upfront, netSavings decimal.Decimal, breakeven, horizonMonths int) int {
	if savings.LessThanOrEqual(decimal.Zero) {
		if upfront.IsPositive() {
			return 0
		}
		return buydownScoreBaseline
	}
	if breakeven > horizonMonths {
		return buydownScoreBaseline
	}

	bonus := netSavings.Div(decimal.NewFromInt(buydownScorePerDollars)).IntPart()
	score := buydownScoreBaseline + int(bonus)
	if score > buydownScoreMax {
		return buydownScoreMax
	}
	if score < 0 {
		return 0
	}
	return score
}

// assignBuydownBadges: among positive-savings options, highest net savings at
// the horizon is Best Long-Term and the lowest breakeven (when different) is
// Best Short-Term; the overall lowest upfront cost gets Lowest Cash if still
// unbadged. Options that lose money on a paid buydown always carry Avoid.
func assignBuydownBadges(results []BuydownResult) {
	bestLong := -1
	bestShort := -1
	lowestCash := -1

	for i := range results {
		if lowestCash < 0 || results[i].UpfrontCost.LessThan(results[lowestCash].UpfrontCost) {
			lowestCash = i
		}
		if results[i].MonthlySavings.LessThanOrEqual(decimal.Zero) {
			continue
		}
		if bestLong < 0 || results[i].NetSavingsAtHorizon.GreaterThan(results[bestLong].NetSavingsAtHorizon) {
			bestLong = i
		}
		if bestShort < 0 || results[i].BreakevenMonths < results[bestShort].BreakevenMonths {
			bestShort = i
		}
	}

	if bestLong >= 0 {
		results[bestLong].Badges = append(results[bestLong].Badges, BuydownBadgeBestLongTerm)
	}
	if bestShort >= 0 && bestShort != bestLong {
		results[bestShort].Badges = append(results[bestShort].Badges, BuydownBadgeBestShortTerm)
	}
	if lowestCash >= 0 && len(results[lowestCash].Badges) == 0 {
		results[lowestCash].Badges = append(results[lowestCash].Badges, BuydownBadgeLowestCash)
	}

	for i := range results {
		if results[i].MonthlySavings.LessThanOrEqual(decimal.Zero) && results[i].UpfrontCost.IsPositive() {
			results[i].Badges = append(results[i].Badges, BuydownBadgeAvoid)
		}
	}
}
