package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loanworks/advisor/internal/domain/model"
	"github.com/loanworks/advisor/internal/domain/service"
	"github.com/loanworks/advisor/internal/domain/valueobject"
)

func testAMITable() model.AMITable {
	return model.AMITable{
		ByState: map[string]decimal.Decimal{
			"TX": decimal.NewFromInt(89_000),
		},
		Default: decimal.NewFromInt(97_800),
	}
}

func baseInput() service.EligibilityInput {
	return service.EligibilityInput{
		State:          "TX",
		LoanType:       valueobject.LoanTypeFHA,
		CreditScore:    700,
		PurchasePrice:  decimal.NewFromInt(300_000),
		AnnualIncome:   decimal.NewFromInt(85_000),
		HouseholdSize:  3,
		FirstTimeBuyer: true,
	}
}

func baseProgram() model.Program {
	return model.Program{
		ID:                "tx-test-grant",
		Name:              "Test Grant",
		Administrator:     "Test Housing Agency",
		State:             "TX",
		LoanTypes:         []string{"FHA", "VA", "USDA", "CONVENTIONAL"},
		MinCreditScore:    620,
		IncomeLimitType:   model.IncomeLimitAMIPercent,
		AMIPercent:        115,
		AssistancePercent: 3,
		ProgramType:       model.ProgramTypeGrant,
		Layering:          model.LayeringYes,
		FundingSource:     model.FundingStateBond,
		Active:            true,
	}
}

func TestEligiblePrograms_MatchesBaseCase(t *testing.T) {
	filter := service.NewEligibilityFilter()

	eligible := filter.EligiblePrograms(baseInput(), []model.Program{baseProgram()}, testAMITable())

	require.Len(t, eligible, 1)
	assert.Equal(t, "tx-test-grant", eligible[0].ID)
}

func TestEligiblePrograms_SkipsInactive(t *testing.T) {
	filter := service.NewEligibilityFilter()
	p := baseProgram()
	p.Active = false

	assert.Empty(t, filter.EligiblePrograms(baseInput(), []model.Program{p}, testAMITable()))
}

func TestEligiblePrograms_StateMismatch(t *testing.T) {
	filter := service.NewEligibilityFilter()
	p := baseProgram()
	p.State = "CA"

	assert.Empty(t, filter.EligiblePrograms(baseInput(), []model.Program{p}, testAMITable()))
}

func TestEligiblePrograms_NationwideMatchesAnyState(t *testing.T) {
	filter := service.NewEligibilityFilter()
	p := baseProgram()
	p.State = "ALL"

	assert.Len(t, filter.EligiblePrograms(baseInput(), []model.Program{p}, testAMITable()), 1)
}

func TestEligiblePrograms_LoanTypeNotSupported(t *testing.T) {
	filter := service.NewEligibilityFilter()
	p := baseProgram()
	p.LoanTypes = []string{"CONVENTIONAL"}

	assert.Empty(t, filter.EligiblePrograms(baseInput(), []model.Program{p}, testAMITable()))
}

func TestEligiblePrograms_CreditScoreFloor(t *testing.T) {
	filter := service.NewEligibilityFilter()
	in := baseInput()
	in.CreditScore = 619

	assert.Empty(t, filter.EligiblePrograms(in, []model.Program{baseProgram()}, testAMITable()))

	// Exactly at the floor qualifies.
	in.CreditScore = 620
	assert.Len(t, filter.EligiblePrograms(in, []model.Program{baseProgram()}, testAMITable()), 1)
}

func TestEligiblePrograms_PurchasePriceCap(t *testing.T) {
	filter := service.NewEligibilityFilter()
	p := baseProgram()
	p.MaxPurchasePrice = decimal.NewFromInt(250_000)

	assert.Empty(t, filter.EligiblePrograms(baseInput(), []model.Program{p}, testAMITable()))
}

func TestEligiblePrograms_FirstTimeBuyerOnly(t *testing.T) {
	filter := service.NewEligibilityFilter()
	p := baseProgram()
	p.FirstTimeBuyerOnly = true
	in := baseInput()
	in.FirstTimeBuyer = false

	assert.Empty(t, filter.EligiblePrograms(in, []model.Program{p}, testAMITable()))
}

func TestEligiblePrograms_AMIPercentLimit(t *testing.T) {
	filter := service.NewEligibilityFilter()
	in := baseInput()
	// TX AMI 89,000 at 115% caps income at 102,350.
	in.AnnualIncome = decimal.NewFromInt(102_350)
	assert.Len(t, filter.EligiblePrograms(in, []model.Program{baseProgram()}, testAMITable()), 1)

	in.AnnualIncome = decimal.NewFromFloat(102_350.01)
	assert.Empty(t, filter.EligiblePrograms(in, []model.Program{baseProgram()}, testAMITable()))
}

func TestEligiblePrograms_AMIDefaultForUnknownState(t *testing.T) {
	filter := service.NewEligibilityFilter()
	p := baseProgram()
	p.State = "ALL"
	in := baseInput()
	in.State = "MT"
	// Default AMI 97,800 at 115% caps income at 112,470.
	in.AnnualIncome = decimal.NewFromInt(112_000)

	assert.Len(t, filter.EligiblePrograms(in, []model.Program{p}, testAMITable()), 1)
}

func TestEligiblePrograms_DollarCapByHouseholdSize(t *testing.T) {
	filter := service.NewEligibilityFilter()
	p := baseProgram()
	p.IncomeLimitType = model.IncomeLimitDollarCap
	p.IncomeCaps = map[string]decimal.Decimal{
		"3":  decimal.NewFromInt(100_000),
		"8+": decimal.NewFromInt(146_500),
	}

	in := baseInput()
	in.AnnualIncome = decimal.NewFromInt(99_000)
	assert.Len(t, filter.EligiblePrograms(in, []model.Program{p}, testAMITable()), 1)

	in.AnnualIncome = decimal.NewFromInt(101_000)
	assert.Empty(t, filter.EligiblePrograms(in, []model.Program{p}, testAMITable()))

	// Nine-person household reads the 8+ bucket.
	in.HouseholdSize = 9
	in.AnnualIncome = decimal.NewFromInt(140_000)
	assert.Len(t, filter.EligiblePrograms(in, []model.Program{p}, testAMITable()), 1)
}

func TestEligiblePrograms_DollarCapFallsBackToAllBucket(t *testing.T) {
	filter := service.NewEligibilityFilter()
	p := baseProgram()
	p.IncomeLimitType = model.IncomeLimitDollarCap
	p.IncomeCaps = map[string]decimal.Decimal{
		model.HouseholdSizeAll: decimal.NewFromInt(132_900),
	}

	in := baseInput()
	in.AnnualIncome = decimal.NewFromInt(130_000)
	assert.Len(t, filter.EligiblePrograms(in, []model.Program{p}, testAMITable()), 1)

	in.AnnualIncome = decimal.NewFromInt(133_000)
	assert.Empty(t, filter.EligiblePrograms(in, []model.Program{p}, testAMITable()))
}

func TestEligiblePrograms_SpecialCategories(t *testing.T) {
	filter := service.NewEligibilityFilter()
	p := baseProgram()
	p.SpecialCategories = []string{"TEACHER", "NURSE"}

	in := baseInput()
	assert.Empty(t, filter.EligiblePrograms(in, []model.Program{p}, testAMITable()))

	in.SpecialCategories = []string{"NURSE"}
	assert.Len(t, filter.EligiblePrograms(in, []model.Program{p}, testAMITable()), 1)
}

func TestEligiblePrograms_EmptyResultIsNotAnError(t *testing.T) {
	filter := service.NewEligibilityFilter()
	in := baseInput()
	in.State = "WY"

	eligible := filter.EligiblePrograms(in, []model.Program{baseProgram()}, testAMITable())

	assert.Empty(t, eligible)
}
