package service

import (
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// NTBAnalyzer – FHA Streamline Net Tangible Benefit and MIP economics
// ---------------------------------------------------------------------------

const (
	// ntbMinReductionPct is the regulator-mandated minimum combined-rate
	// reduction, in percentage points. Fixed by HUD; never parameterized.
	ntbMinReductionPct = 0.50

	// Current FHA annual MIP factor and upfront MIP, in percent.
	newAnnualMIPFactorPct = 0.55
	ufmipPct              = 1.75
)

// Badge labels.
const (
	BadgeDoesNotMeetNTB   = "Does Not Meet NTB"
	BadgeBestOverall      = "Best Overall"
	BadgeFastestBreakeven = "Fastest Breakeven"
	BadgeMeetsNTB         = "Meets NTB"
)

// NTBInput describes the existing FHA loan being refinanced.
type NTBInput struct {
	UnpaidBalance          decimal.Decimal
	ExistingNoteRatePct    float64
	ExistingMIPFactorPct   float64
	ExistingMonthlyPI      decimal.Decimal
	ExistingMonthlyMIP     decimal.Decimal
	OriginalUFMIP          decimal.Decimal
	MonthsSinceEndorsement int
}

// PricingOption is one priced rate/term combination under consideration.
type PricingOption struct {
	Label       string
	NoteRatePct float64
	TermMonths  int
}

// NTBResult is the per-option analysis. All currency fields are rounded to
// cents; rates are percentages.
type NTBResult struct {
	Label            string
	NoteRatePct      float64
	CombinedRatePct  decimal.Decimal
	RateReductionPct decimal.Decimal
	NTBPass          bool
	NewMonthlyPI     decimal.Decimal
	NewMonthlyMIP    decimal.Decimal
	NewTotalPayment  decimal.Decimal
	MonthlySavings   decimal.Decimal
	UFMIPRefundPct   decimal.Decimal
	UFMIPRefund      decimal.Decimal
	NewUFMIP         decimal.Decimal
	NetUFMIP         decimal.Decimal
	BreakevenMonths  int
	Badge            string
}

// NTBAnalyzer runs the Net Tangible Benefit test and MIP cost analysis for a
// set of pricing options.
type NTBAnalyzer struct{}

// NewNTBAnalyzer returns a new analyzer instance.
func NewNTBAnalyzer() *NTBAnalyzer {
	return &NTBAnalyzer{}
}

// Analyze returns one result per pricing option, badged across the set.
func (a *NTBAnalyzer) Analyze(in NTBInput, options []PricingOption) ([]NTBResult, error) {
	if in.UnpaidBalance.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidInput
	}

	// The rate comparison runs in decimal arithmetic so the 0.50 threshold
	// is tested exactly at the boundary.
	existingCombined := decimal.NewFromFloat(in.ExistingNoteRatePct).
		Add(decimal.NewFromFloat(in.ExistingMIPFactorPct))
	existingTotal := in.ExistingMonthlyPI.Add(in.ExistingMonthlyMIP)
	minReduction := decimal.NewFromFloat(ntbMinReductionPct)

	refundPct := ufmipRefundPct(in.MonthsSinceEndorsement)
	refund := in.OriginalUFMIP.Mul(refundPct).Div(hundred)
	newUFMIP := Percent(in.UnpaidBalance, ufmipPct)
	netUFMIP := newUFMIP.Sub(refund)

	results := make([]NTBResult, 0, len(options))
	for _, opt := range options {
		if opt.TermMonths <= 0 {
			return nil, ErrInvalidInput
		}

		newCombined := decimal.NewFromFloat(opt.NoteRatePct).
			Add(decimal.NewFromFloat(newAnnualMIPFactorPct))
		reduction := existingCombined.Sub(newCombined)

		newPI := MonthlyPayment(in.UnpaidBalance, opt.NoteRatePct, opt.TermMonths)
		newMIP := Percent(in.UnpaidBalance, newAnnualMIPFactorPct).Div(decimal.NewFromInt(12))
		newTotal := newPI.Add(newMIP)
		savings := existingTotal.Sub(newTotal)

		results = append(results, NTBResult{
			Label:            opt.Label,
			NoteRatePct:      opt.NoteRatePct,
			CombinedRatePct:  newCombined,
			RateReductionPct: reduction,
			NTBPass:          reduction.GreaterThanOrEqual(minReduction),
			NewMonthlyPI:     RoundCents(newPI),
			NewMonthlyMIP:    RoundCents(newMIP),
			NewTotalPayment:  RoundCents(newTotal),
			MonthlySavings:   RoundCents(savings),
			UFMIPRefundPct:   refundPct,
			UFMIPRefund:      RoundCents(refund),
			NewUFMIP:         RoundCents(newUFMIP),
			NetUFMIP:         RoundCents(netUFMIP),
			BreakevenMonths:  BreakevenMonths(netUFMIP, savings),
		})
	}

	assignNTBBadges(results)
	return results, nil
}

// ufmipRefundPct returns the HUD refund percentage for the months elapsed
// since endorsement: 100% at month 0, declining from 80% by roughly 6.67
// points per month through month 12, then from 50% to 0% linearly across
// months 13-36, and nothing after month 36.
func ufmipRefundPct(months int) decimal.Decimal {
	switch {
	case months <= 0:
		return hundred
	case months <= 12:
		pct := decimal.NewFromFloat(80).
			Sub(decimal.NewFromFloat(6.67).Mul(decimal.NewFromInt(int64(months))))
		return decimal.Max(pct, decimal.Zero)
	case months <= 36:
		elapsed := decimal.NewFromInt(int64(months - 12))
		pct := decimal.NewFromInt(50).
			Sub(decimal.NewFromInt(50).Mul(elapsed).Div(decimal.NewFromInt(24)))
		return decimal.Max(pct, decimal.Zero)
	default:
		return decimal.Zero
	}
}

// assignNTBBadges labels every failing option "Does Not Meet NTB" and, among
// the passing ones, marks the highest monthly savings "Best Overall" and the
// lowest breakeven "Fastest Breakeven" when held by a different option.
func assignNTBBadges(results []NTBResult) {
	best := -1
	fastest := -1
	for i := range results {
		if !results[i].NTBPass {
			results[i].Badge = BadgeDoesNotMeetNTB
			continue
		}
		if best < 0 || results[i].MonthlySavings.GreaterThan(results[best].MonthlySavings) {
			best = i
		}
		if fastest < 0 || results[i].BreakevenMonths < results[fastest].BreakevenMonths {
			fastest = i
		}
	}

	for i := range results {
		if !results[i].NTBPass {
			continue
		}
		switch {
		case i == best:
			results[i].Badge = BadgeBestOverall
		case i == fastest:
			results[i].Badge = BadgeFastestBreakeven
		default:
			results[i].Badge = BadgeMeetsNTB
		}
	}
}
