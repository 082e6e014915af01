package catalog

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/loanworks/advisor/internal/domain/model"
)

// StaticCatalog implements port.CatalogProvider from compiled-in reference
// data. Programs returns a fresh slice per call so engines always see an
// immutable snapshot; a future adapter can swap in a database or feed-backed
// catalog behind the same port.
type StaticCatalog struct{}

// NewStaticCatalog returns the built-in catalog.
func NewStaticCatalog() *StaticCatalog {
	return &StaticCatalog{}
}

// Programs returns a copy of the default program catalog.
func (c *StaticCatalog) Programs(_ context.Context) ([]model.Program, error) {
	out := make([]model.Program, len(defaultPrograms))
	copy(out, defaultPrograms)
	return out, nil
}

// AMITable returns the area-median-income reference table.
func (c *StaticCatalog) AMITable(_ context.Context) (model.AMITable, error) {
	byState := make(map[string]decimal.Decimal, len(defaultAMI))
	for k, v := range defaultAMI {
		byState[k] = v
	}
	return model.AMITable{
		ByState: byState,
		Default: decimal.NewFromInt(97800),
	}, nil
}

var allLoanTypes = []string{"FHA", "VA", "USDA", "CONVENTIONAL"}

var defaultPrograms = []model.Program{
	{
		ID:                "tx-tsahc-home-sweet",
		Name:              "TSAHC Home Sweet Texas Grant",
		Administrator:     "Texas State Affordable Housing Corporation",
		State:             "TX",
		LoanTypes:         allLoanTypes,
		MinCreditScore:    620,
		IncomeLimitType:   model.IncomeLimitAMIPercent,
		AMIPercent:        115,
		AssistancePercent: 3,
		ProgramType:       model.ProgramTypeGrant,
		Layering:          model.LayeringYes,
		FundingSource:     model.FundingStateBond,
		Active:            true,
	},
	{
		ID:                 "tx-tdhca-my-first",
		Name:               "TDHCA My First Texas Home",
		Administrator:      "Texas Department of Housing and Community Affairs",
		State:              "TX",
		LoanTypes:          []string{"FHA", "VA", "USDA"},
		MinCreditScore:     620,
		MaxPurchasePrice:   decimal.NewFromInt(571000),
		FirstTimeBuyerOnly: true,
		IncomeLimitType:    model.IncomeLimitAMIPercent,
		AMIPercent:         115,
		AssistancePercent:  5,
		ProgramType:        model.ProgramTypeDeferredLoan,
		Layering:           model.LayeringConditional,
		FundingSource:      model.FundingStateBond,
		Active:             true,
	},
	{
		ID:                 "ca-calhfa-myhome",
		Name:               "CalHFA MyHome Assistance",
		Administrator:      "California Housing Finance Agency",
		State:              "CA",
		LoanTypes:          []string{"FHA", "CONVENTIONAL"},
		MinCreditScore:     660,
		FirstTimeBuyerOnly: true,
		IncomeLimitType:    model.IncomeLimitAMIPercent,
		AMIPercent:         120,
		// 3.5% of loan amount as a deferred simple-interest second.
		AssistancePercent: 3.5,
		ProgramType:       model.ProgramTypeDeferredLoan,
		Layering:          model.LayeringYes,
		FundingSource:     model.FundingStateBond,
		Active:            true,
	},
	{
		ID:              "fl-hometown-heroes",
		Name:            "Florida Hometown Heroes",
		Administrator:   "Florida Housing Finance Corporation",
		State:           "FL",
		LoanTypes:       allLoanTypes,
		MinCreditScore:  640,
		IncomeLimitType: model.IncomeLimitDollarCap,
		IncomeCaps: map[string]decimal.Decimal{
			model.HouseholdSizeAll: decimal.NewFromInt(132900),
		},
		AssistanceFlat:    decimal.NewFromInt(35000),
		ProgramType:       model.ProgramTypeDeferredLoan,
		Layering:          model.LayeringYes,
		FundingSource:     model.FundingStateBond,
		SpecialCategories: []string{"FIRST_RESPONDER", "TEACHER", "NURSE", "VETERAN"},
		Active:            true,
	},
	{
		ID:              "national-chenoa-forgivable",
		Name:            "Chenoa Fund Forgivable Second",
		Administrator:   "CBC Mortgage Agency",
		State:           "ALL",
		LoanTypes:       []string{"FHA"},
		MinCreditScore:  600,
		IncomeLimitType: model.IncomeLimitAMIPercent,
		AMIPercent:      135,
		// 3.5% of loan amount covers the full FHA minimum investment.
		AssistancePercent:    3.5,
		ProgramType:          model.ProgramTypeForgivableLoan,
		Layering:             model.LayeringConditional,
		FundingSource:        model.FundingNonprofit,
		RequiresGrantPartner: true,
		Active:               true,
	},
	{
		ID:              "national-amortizing-second",
		Name:            "Community Second 10-Year Note",
		Administrator:   "National Homeownership Fund",
		State:           "ALL",
		LoanTypes:       []string{"FHA", "CONVENTIONAL"},
		MinCreditScore:  640,
		IncomeLimitType: model.IncomeLimitDollarCap,
		IncomeCaps: map[string]decimal.Decimal{
			"1":  decimal.NewFromInt(78000),
			"2":  decimal.NewFromInt(89000),
			"3":  decimal.NewFromInt(100000),
			"4":  decimal.NewFromInt(111000),
			"5":  decimal.NewFromInt(120000),
			"6":  decimal.NewFromInt(129000),
			"7":  decimal.NewFromInt(137500),
			"8+": decimal.NewFromInt(146500),
		},
		AssistanceFlat: decimal.NewFromInt(10000),
		ProgramType:    model.ProgramTypeAmortizingSecond,
		Layering:       model.LayeringYes,
		FundingSource:  model.FundingNonprofit,
		Active:         true,
	},
	{
		ID:              "lender-closing-grant",
		Name:            "Lender Closing Cost Grant",
		Administrator:   "LoanWorks Lending Partners",
		State:           "ALL",
		LoanTypes:       allLoanTypes,
		MinCreditScore:  620,
		IncomeLimitType: model.IncomeLimitAMIPercent,
		AMIPercent:      100,
		AssistanceFlat:  decimal.NewFromInt(2500),
		ProgramType:     model.ProgramTypeLenderGrant,
		Layering:        model.LayeringYes,
		FundingSource:   model.FundingLender,
		Active:          true,
	},
	{
		// Retired program kept for historical decision records.
		ID:                "tx-bond-71",
		Name:              "Texas Bond Program 71",
		Administrator:     "Texas Department of Housing and Community Affairs",
		State:             "TX",
		LoanTypes:         []string{"FHA"},
		MinCreditScore:    620,
		AssistancePercent: 4,
		ProgramType:       model.ProgramTypeGrant,
		Layering:          model.LayeringYes,
		FundingSource:     model.FundingStateBond,
		Active:            false,
	},
}

var defaultAMI = map[string]decimal.Decimal{
	"TX": decimal.NewFromInt(89000),
	"CA": decimal.NewFromInt(119100),
	"FL": decimal.NewFromInt(87600),
	"NY": decimal.NewFromInt(112500),
	"WA": decimal.NewFromInt(120900),
}
