package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loanworks/advisor/internal/domain/service"
)

func baseMIInput() service.MIInput {
	return service.MIInput{
		LoanAmount:    decimal.NewFromInt(285_000),
		PropertyValue: decimal.NewFromInt(300_000),
		NoteRatePct:   6.75,
		TermMonths:    360,
		HorizonMonths: 60,

		MonthlyFactorPct:      0.55,
		SinglePremiumPct:      1.80,
		SplitUpfrontPct:       1.00,
		SplitMonthlyFactorPct: 0.28,
		LPMIRateAddPct:        0.25,
	}
}

func TestMICompare_ReturnsFourStructures(t *testing.T) {
	optimizer := service.NewMIOptimizer()

	options, err := optimizer.Compare(baseMIInput())

	require.NoError(t, err)
	require.Len(t, options, 4)
	assert.Equal(t, service.MIStructureMonthly, options[0].Structure)
	assert.Equal(t, service.MIStructureSingle, options[1].Structure)
	assert.Equal(t, service.MIStructureSplit, options[2].Structure)
	assert.Equal(t, service.MIStructureLPMI, options[3].Structure)
}

func TestMICompare_RefusesBelow80LTV(t *testing.T) {
	optimizer := service.NewMIOptimizer()
	in := baseMIInput()
	in.LoanAmount = decimal.NewFromInt(239_000) // 79.67% LTV

	_, err := optimizer.Compare(in)

	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestMICompare_Exactly80LTVIsAccepted(t *testing.T) {
	optimizer := service.NewMIOptimizer()
	in := baseMIInput()
	in.LoanAmount = decimal.NewFromInt(240_000)

	_, err := optimizer.Compare(in)

	assert.NoError(t, err)
}

func TestMICompare_MonthlyStructureEconomics(t *testing.T) {
	optimizer := service.NewMIOptimizer()

	options, err := optimizer.Compare(baseMIInput())

	require.NoError(t, err)
	monthly := options[0]
	// 285,000 * 0.55% / 12 = 130.63 per month.
	assert.Equal(t, "130.63", monthly.MonthlyMI.StringFixed(2))
	assert.True(t, monthly.UpfrontCost.IsZero())
	// Premiums accrue to the earlier of cancellation and the horizon; here
	// the 60-month horizon binds: 130.625 * 60.
	assert.Equal(t, 60, monthly.MonthsMIAccrues)
	assert.Equal(t, "7837.50", monthly.TotalCostAtHorizon.StringFixed(2))
}

func TestMICompare_SinglePremiumEconomics(t *testing.T) {
	optimizer := service.NewMIOptimizer()

	options, err := optimizer.Compare(baseMIInput())

	require.NoError(t, err)
	single := options[1]
	// 1.80% of 285,000 up front, nothing monthly.
	assert.Equal(t, "5130.00", single.UpfrontCost.StringFixed(2))
	assert.True(t, single.MonthlyMI.IsZero())
	assert.Equal(t, 0, single.MonthsMIAccrues)
	assert.Equal(t, "5130.00", single.TotalCostAtHorizon.StringFixed(2))
}

func TestMICompare_LPMINeverCancels(t *testing.T) {
	optimizer := service.NewMIOptimizer()

	options, err := optimizer.Compare(baseMIInput())

	require.NoError(t, err)
	lpmi := options[3]
	assert.Equal(t, baseMIInput().TermMonths, lpmi.CancelMonth)
	assert.Equal(t, baseMIInput().HorizonMonths, lpmi.MonthsMIAccrues)
	// The rate add shows up as an implicit monthly premium.
	assert.True(t, lpmi.MonthlyMI.IsPositive())
	assert.True(t, lpmi.UpfrontCost.IsZero())
}

func TestMICompare_CancelMonthTracksAmortization(t *testing.T) {
	optimizer := service.NewMIOptimizer()

	options, err := optimizer.Compare(baseMIInput())

	require.NoError(t, err)
	monthly := options[0]
	// 95% LTV at 6.75% takes years to amortize down to 78% of value.
	assert.Greater(t, monthly.CancelMonth, 60)
	assert.LessOrEqual(t, monthly.CancelMonth, 360)
}

func TestMICompare_BadgeAssignment(t *testing.T) {
	optimizer := service.NewMIOptimizer()

	options, err := optimizer.Compare(baseMIInput())

	require.NoError(t, err)

	bestCount := 0
	for _, o := range options {
		for _, b := range o.Badges {
			if b == service.MIBadgeBestOverall {
				bestCount++
			}
		}
	}
	assert.Equal(t, 1, bestCount, "exactly one option carries Best Overall")

	// Single premium has the lowest monthly payment (no MI on top of P&I),
	// while LPMI's small rate add makes it cheapest over a 5-year horizon.
	assert.Contains(t, options[3].Badges, service.MIBadgeBestOverall)
	assert.Contains(t, options[1].Badges, service.MIBadgeLowestMonthly)
}

func TestMICompare_InvalidInputs(t *testing.T) {
	optimizer := service.NewMIOptimizer()

	in := baseMIInput()
	in.HorizonMonths = 0
	_, err := optimizer.Compare(in)
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	in = baseMIInput()
	in.PropertyValue = decimal.Zero
	_, err = optimizer.Compare(in)
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}
