package service

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/loanworks/advisor/internal/domain/model"
	"github.com/loanworks/advisor/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// EligibilityFilter – domain service filtering the DPA program catalog
// ---------------------------------------------------------------------------

// EligibilityInput carries the scenario attributes the filter tests against.
type EligibilityInput struct {
	State             string
	LoanType          valueobject.LoanType
	CreditScore       int
	PurchasePrice     decimal.Decimal
	AnnualIncome      decimal.Decimal
	HouseholdSize     int
	FirstTimeBuyer    bool
	SpecialCategories []string
}

// EligibilityFilter matches a borrower/property scenario against the program
// catalog. It is a pure filter: the catalog and AMI table are injected as a
// snapshot per call and never cached or mutated.
type EligibilityFilter struct{}

// NewEligibilityFilter returns a new filter instance.
func NewEligibilityFilter() *EligibilityFilter {
	return &EligibilityFilter{}
}

// EligiblePrograms returns the catalog entries the scenario qualifies for.
// An empty result is a valid outcome, not an error.
func (f *EligibilityFilter) EligiblePrograms(
	in EligibilityInput,
	catalog []model.Program,
	ami model.AMITable,
) []model.Program {
	eligible := make([]model.Program, 0, len(catalog))

	for _, p := range catalog {
		if !p.Active {
			continue
		}
		if p.State != "ALL" && p.State != in.State {
			continue
		}
		if !p.Supports(in.LoanType.String()) {
			continue
		}
		if in.CreditScore < p.MinCreditScore {
			continue
		}
		if p.MaxPurchasePrice.IsPositive() && in.PurchasePrice.GreaterThan(p.MaxPurchasePrice) {
			continue
		}
		if p.FirstTimeBuyerOnly && !in.FirstTimeBuyer {
			continue
		}
		if !incomeWithinLimit(in, p, ami) {
			continue
		}
		if !meetsSpecialCategories(in.SpecialCategories, p.SpecialCategories) {
			continue
		}
		eligible = append(eligible, p)
	}

	return eligible
}

// incomeWithinLimit applies the program's income-limit rule. A program with
// no income-limit type imposes no income test.
func incomeWithinLimit(in EligibilityInput, p model.Program, ami model.AMITable) bool {
	switch p.IncomeLimitType {
	case model.IncomeLimitAMIPercent:
		limit := Percent(ami.AreaMedianIncome(in.State), p.AMIPercent)
		return in.AnnualIncome.LessThanOrEqual(limit)

	case model.IncomeLimitDollarCap:
		cap, ok := p.IncomeCaps[householdSizeKey(in.HouseholdSize)]
		if !ok {
			cap, ok = p.IncomeCaps[model.HouseholdSizeAll]
		}
		if !ok {
			// No cap published for this household size; treat as unrestricted.
			return true
		}
		return in.AnnualIncome.LessThanOrEqual(cap)

	default:
		return true
	}
}

// meetsSpecialCategories requires at least one tag in common when the program
// restricts by category.
func meetsSpecialCategories(borrower, program []string) bool {
	if len(program) == 0 {
		return true
	}
	for _, want := range program {
		for _, have := range borrower {
			if want == have {
				return true
			}
		}
	}
	return false
}

func householdSizeKey(size int) string {
	if size <= 0 {
		return model.HouseholdSizeAll
	}
	if size >= 8 {
		return "8+"
	}
	return strconv.Itoa(size)
}
