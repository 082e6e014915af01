package service

import (
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// MIOptimizer – four mortgage-insurance structures compared at a horizon
// ---------------------------------------------------------------------------

const (
	// miMinLTVPct: MI does not apply below 80% LTV; the comparator refuses
	// such scenarios rather than returning degenerate costs.
	miMinLTVPct = 80.0

	// pmiCancelLTVPct is the scheduled-amortization LTV at which borrower
	// paid premiums stop accruing.
	pmiCancelLTVPct = 78.0
)

// MI structure labels.
const (
	MIStructureMonthly = "Monthly MI"
	MIStructureSingle  = "Single Premium"
	MIStructureSplit   = "Split Premium"
	MIStructureLPMI    = "Lender-Paid MI"
)

// MI badge labels.
const (
	MIBadgeBestOverall   = "Best Overall"
	MIBadgeLowestMonthly = "Lowest Monthly"
	MIBadgeLowestUpfront = "Lowest Upfront"
)

// MIInput is the loan under comparison plus the pricing factors quoted for
// each structure. Factor fields are annual percentages of the loan amount
// except the upfront ones, which are one-time percentages of the loan amount.
type MIInput struct {
	LoanAmount    decimal.Decimal
	PropertyValue decimal.Decimal
	NoteRatePct   float64
	TermMonths    int
	HorizonMonths int

	MonthlyFactorPct      float64
	SinglePremiumPct      float64
	SplitUpfrontPct       float64
	SplitMonthlyFactorPct float64
	LPMIRateAddPct        float64
}

// MIOption is one structure's cost picture at the planning horizon.
type MIOption struct {
	Structure          string
	UpfrontCost        decimal.Decimal
	MonthlyMI          decimal.Decimal
	TotalMonthly       decimal.Decimal
	MonthsMIAccrues    int
	TotalCostAtHorizon decimal.Decimal
	CancelMonth        int
	Badges             []string
}

// MIOptimizer compares Monthly, Single, Split, and Lender-Paid structures.
type MIOptimizer struct{}

// NewMIOptimizer returns a new optimizer instance.
func NewMIOptimizer() *MIOptimizer {
	return &MIOptimizer{}
}

// Compare returns the four structures costed over the planning horizon.
// Scenarios below 80% LTV are refused.
func (o *MIOptimizer) Compare(in MIInput) ([]MIOption, error) {
	if in.LoanAmount.LessThanOrEqual(decimal.Zero) || in.PropertyValue.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidInput
	}
	if in.TermMonths <= 0 || in.HorizonMonths <= 0 {
		return nil, ErrInvalidInput
	}

	ltv := in.LoanAmount.Div(in.PropertyValue).Mul(hundred)
	if ltv.LessThan(decimal.NewFromFloat(miMinLTVPct)) {
		return nil, ErrInvalidInput
	}

	basePI := MonthlyPayment(in.LoanAmount, in.NoteRatePct, in.TermMonths)
	cancelMonth := o.projectCancelMonth(in)
	// Borrower-paid premiums accrue until scheduled cancellation or the
	// planning horizon, whichever comes first.
	accrual := cancelMonth
	if in.HorizonMonths < accrual {
		accrual = in.HorizonMonths
	}

	monthlyMI := Percent(in.LoanAmount, in.MonthlyFactorPct).Div(decimal.NewFromInt(12))
	monthly := MIOption{
		Structure:          MIStructureMonthly,
		UpfrontCost:        decimal.Zero,
		MonthlyMI:          RoundCents(monthlyMI),
		TotalMonthly:       RoundCents(basePI.Add(monthlyMI)),
		MonthsMIAccrues:    accrual,
		CancelMonth:        cancelMonth,
		TotalCostAtHorizon: RoundCents(monthlyMI.Mul(decimal.NewFromInt(int64(accrual)))),
	}

	singleUpfront := Percent(in.LoanAmount, in.SinglePremiumPct)
	single := MIOption{
		Structure:          MIStructureSingle,
		UpfrontCost:        RoundCents(singleUpfront),
		MonthlyMI:          decimal.Zero,
		TotalMonthly:       RoundCents(basePI),
		MonthsMIAccrues:    0,
		CancelMonth:        cancelMonth,
		TotalCostAtHorizon: RoundCents(singleUpfront),
	}

	splitUpfront := Percent(in.LoanAmount, in.SplitUpfrontPct)
	splitMonthly := Percent(in.LoanAmount, in.SplitMonthlyFactorPct).Div(decimal.NewFromInt(12))
	split := MIOption{
		Structure:          MIStructureSplit,
		UpfrontCost:        RoundCents(splitUpfront),
		MonthlyMI:          RoundCents(splitMonthly),
		TotalMonthly:       RoundCents(basePI.Add(splitMonthly)),
		MonthsMIAccrues:    accrual,
		CancelMonth:        cancelMonth,
		TotalCostAtHorizon: RoundCents(splitUpfront.Add(splitMonthly.Mul(decimal.NewFromInt(int64(accrual))))),
	}

	// LPMI is priced as a higher note rate re-amortized from scratch. It
	// never drops off, so it is costed across the full planning horizon.
	lpmiPI := MonthlyPayment(in.LoanAmount, in.NoteRatePct+in.LPMIRateAddPct, in.TermMonths)
	lpmiExtra := lpmiPI.Sub(basePI)
	lpmi := MIOption{
		Structure:          MIStructureLPMI,
		UpfrontCost:        decimal.Zero,
		MonthlyMI:          RoundCents(lpmiExtra),
		TotalMonthly:       RoundCents(lpmiPI),
		MonthsMIAccrues:    in.HorizonMonths,
		CancelMonth:        in.TermMonths,
		TotalCostAtHorizon: RoundCents(lpmiExtra.Mul(decimal.NewFromInt(int64(in.HorizonMonths)))),
	}

	options := []MIOption{monthly, single, split, lpmi}
	assignMIBadges(options)
	return options, nil
}

// projectCancelMonth walks the amortization schedule month by month until the
// balance reaches 78% of the property value, capped at the loan term.
func (o *MIOptimizer) projectCancelMonth(in MIInput) int {
	target := Percent(in.PropertyValue, pmiCancelLTVPct)
	for m := 1; m <= in.TermMonths; m++ {
		balance := RemainingBalance(in.LoanAmount, in.NoteRatePct, in.TermMonths, m)
		if balance.LessThanOrEqual(target) {
			return m
		}
	}
	return in.TermMonths
}

// assignMIBadges: lowest total cost at horizon is Best Overall; a different
// option with the lowest total monthly payment also gets Lowest Monthly; a
// different option with the lowest upfront cash also gets Lowest Upfront.
// First found wins within each category and categories are not exclusive.
func assignMIBadges(options []MIOption) {
	if len(options) == 0 {
		return
	}

	best, lowestMonthly, lowestUpfront := 0, 0, 0
	for i := 1; i < len(options); i++ {
		if options[i].TotalCostAtHorizon.LessThan(options[best].TotalCostAtHorizon) {
			best = i
		}
		if options[i].TotalMonthly.LessThan(options[lowestMonthly].TotalMonthly) {
			lowestMonthly = i
		}
		if options[i].UpfrontCost.LessThan(options[lowestUpfront].UpfrontCost) {
			lowestUpfront = i
		}
	}

	options[best].Badges = append(options[best].Badges, MIBadgeBestOverall)
	if lowestMonthly != best {
		options[lowestMonthly].Badges = append(options[lowestMonthly].Badges, MIBadgeLowestMonthly)
	}
	if lowestUpfront != best {
		options[lowestUpfront].Badges = append(options[lowestUpfront].Badges, MIBadgeLowestUpfront)
	}
}
