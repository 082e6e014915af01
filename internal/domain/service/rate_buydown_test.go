package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loanworks/advisor/internal/domain/service"
)

func buydownBaseline() service.BuydownBaseline {
	return service.BuydownBaseline{
		LoanAmount:  decimal.NewFromInt(300_000),
		NoteRatePct: 6.5,
		TermMonths:  360,
	}
}

func TestBuydownCompare_PaidPointsEconomics(t *testing.T) {
	comparator := service.NewBuydownComparator()

	// One point (price 101) buys the rate down to 6.25%.
	results, err := comparator.Compare(buydownBaseline(), []service.BuydownOption{
		{Label: "6.25 @ 101", NoteRatePct: 6.25, Price: decimal.NewFromInt(101)},
	}, 84)

	require.NoError(t, err)
	require.Len(t, results, 1)
	r := results[0]

	assert.Equal(t, "3000.00", r.UpfrontCost.StringFixed(2))
	// 1896.20 baseline vs 1847.15 bought-down payment.
	assert.InDelta(t, 49.05, r.MonthlySavings.InexactFloat64(), 0.05)
	assert.Equal(t, 62, r.BreakevenMonths)
	assert.True(t, r.NetSavingsAtHorizon.IsPositive())
	assert.Greater(t, r.BenefitScore, 50)
}

func TestBuydownCompare_LenderCreditHasNegativeUpfront(t *testing.T) {
	comparator := service.NewBuydownComparator()

	// Price below par returns cash but carries a higher rate.
	results, err := comparator.Compare(buydownBaseline(), []service.BuydownOption{
		{Label: "6.75 @ 99", NoteRatePct: 6.75, Price: decimal.NewFromInt(99)},
	}, 84)

	require.NoError(t, err)
	require.Len(t, results, 1)
	r := results[0]

	assert.Equal(t, "-3000.00", r.UpfrontCost.StringFixed(2))
	assert.True(t, r.MonthlySavings.IsNegative())
	assert.Equal(t, service.BreakevenNever, r.BreakevenMonths)
	// No savings but no cash outlay either: neutral score, no Avoid badge.
	assert.Equal(t, 50, r.BenefitScore)
	assert.NotContains(t, r.Badges, service.BuydownBadgeAvoid)
}

func TestBuydownCompare_PayingForAHigherRateIsAvoid(t *testing.T) {
	comparator := service.NewBuydownComparator()

	results, err := comparator.Compare(buydownBaseline(), []service.BuydownOption{
		{Label: "6.75 @ 101", NoteRatePct: 6.75, Price: decimal.NewFromInt(101)},
	}, 84)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 0, results[0].BenefitScore)
	assert.Contains(t, results[0].Badges, service.BuydownBadgeAvoid)
}

func TestBuydownCompare_BreakevenBeyondHorizonScoresNeutral(t *testing.T) {
	comparator := service.NewBuydownComparator()

	// Breakeven at 62 months against a 36-month horizon.
	results, err := comparator.Compare(buydownBaseline(), []service.BuydownOption{
		{Label: "6.25 @ 101", NoteRatePct: 6.25, Price: decimal.NewFromInt(101)},
	}, 36)

	require.NoError(t, err)
	assert.Equal(t, 50, results[0].BenefitScore)
}

func TestBuydownCompare_Badges(t *testing.T) {
	comparator := service.NewBuydownComparator()

	results, err := comparator.Compare(buydownBaseline(), []service.BuydownOption{
		{Label: "deep", NoteRatePct: 5.875, Price: decimal.NewFromInt(103)},
		{Label: "shallow", NoteRatePct: 6.25, Price: decimal.NewFromInt(101)},
		{Label: "credit", NoteRatePct: 6.75, Price: decimal.NewFromInt(99)},
	}, 120)

	require.NoError(t, err)
	require.Len(t, results, 3)

	// Over 10 years the deep buydown nets the most; the cheaper point
	// breaks even sooner; the credit has the least cash out the door.
	assert.Contains(t, results[0].Badges, service.BuydownBadgeBestLongTerm)
	assert.Contains(t, results[1].Badges, service.BuydownBadgeBestShortTerm)
	assert.Contains(t, results[2].Badges, service.BuydownBadgeLowestCash)
}

func TestBuydownCompare_BaselinePaymentOverride(t *testing.T) {
	comparator := service.NewBuydownComparator()
	base := buydownBaseline()
	base.MonthlyPayment = decimal.NewFromInt(2_000)

	results, err := comparator.Compare(base, []service.BuydownOption{
		{Label: "6.25 @ 101", NoteRatePct: 6.25, Price: decimal.NewFromInt(101)},
	}, 84)

	require.NoError(t, err)
	// Savings measured against the supplied payment, not a recomputed one.
	assert.InDelta(t, 152.85, results[0].MonthlySavings.InexactFloat64(), 0.05)
}

func TestBuydownCompare_InvalidInputs(t *testing.T) {
	comparator := service.NewBuydownComparator()

	base := buydownBaseline()
	base.LoanAmount = decimal.Zero
	_, err := comparator.Compare(base, nil, 84)
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = comparator.Compare(buydownBaseline(), nil, 0)
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}
