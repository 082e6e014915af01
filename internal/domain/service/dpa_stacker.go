package service

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/loanworks/advisor/internal/domain/model"
	"github.com/loanworks/advisor/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// StackBuilder – combines eligible DPA programs into ranked candidate stacks
// ---------------------------------------------------------------------------

const (
	// percentOfPriceMax: assistance percentages at or below this read as a
	// percent of purchase price (grant structures); above it they read as a
	// percent of loan amount (second-lien structures). Business policy, not
	// a heuristic to tune.
	percentOfPriceMax = 5.0

	// Amortizing seconds are estimated at a fixed rate and term for the
	// monthly-payment-impact figure shown alongside each stack.
	amortizingSecondRatePct    = 7.0
	amortizingSecondTermMonths = 120

	maxStackResults = 5
)

// Stack-type labels.
const (
	StackTypeBestValue    = "Best Value"
	StackTypeRecommended  = "Recommended"
	StackTypeConservative = "Conservative"
	StackTypeAlternative  = "Alternative"
)

// Community-seconds CLTV ceilings by loan type, in percent.
var cltvCeilings = map[string]float64{
	valueobject.LoanTypeFHA.String():          96.5,
	valueobject.LoanTypeConventional.String(): 105,
	valueobject.LoanTypeVA.String():           100,
	valueobject.LoanTypeUSDA.String():         100,
}

// Agency citations keyed by loan type, attached to every stack for loan-file
// documentation.
var agencyCitations = map[string]string{
	valueobject.LoanTypeFHA.String():          "HUD Handbook 4000.1 II.A.4.d (secondary financing)",
	valueobject.LoanTypeConventional.String(): "Fannie Mae B5-5.1 / Freddie Mac 4204.2 (Community Seconds/Affordable Seconds)",
	valueobject.LoanTypeVA.String():           "VA Lenders Handbook Ch. 9 (secondary borrowing)",
	valueobject.LoanTypeUSDA.String():         "USDA HB-1-3555 Ch. 16 (leveraged loans)",
}

// StackInput carries the loan economics the builder needs.
type StackInput struct {
	PurchasePrice decimal.Decimal
	LoanAmount    decimal.Decimal
	LoanType      valueobject.LoanType
}

// CandidateStack is one ranked combination of one or two programs. Stacks are
// ephemeral: rebuilt on every invocation and never persisted directly.
type CandidateStack struct {
	Programs             []model.Program
	TotalAssistance      decimal.Decimal
	ResultingCLTV        decimal.Decimal
	MonthlyPaymentImpact decimal.Decimal
	LayeringBasis        string
	AgencyCitation       string
	StackType            string
}

// StackBuilder generates and ranks candidate stacks.
type StackBuilder struct{}

// NewStackBuilder returns a new builder instance.
func NewStackBuilder() *StackBuilder {
	return &StackBuilder{}
}

// BuildCandidateStacks generates single- and two-program combinations from
// the eligible set, rejects those that violate layering or CLTV rules, and
// returns the top five ranked by total assistance (monthly impact and
// program count break ties).
func (b *StackBuilder) BuildCandidateStacks(eligible []model.Program, in StackInput) []CandidateStack {
	if in.PurchasePrice.LessThanOrEqual(decimal.Zero) || in.LoanAmount.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	ceiling, ok := cltvCeilings[in.LoanType.String()]
	if !ok {
		return nil
	}
	ceilingDec := decimal.NewFromFloat(ceiling)

	var stacks []CandidateStack

	// Single-program stacks.
	for _, p := range eligible {
		assistance := AssistanceAmount(p, in.PurchasePrice, in.LoanAmount)
		if assistance.LessThanOrEqual(decimal.Zero) {
			continue
		}
		cltv, ok := resultingCLTV(in.LoanAmount, in.PurchasePrice, assistance)
		if !ok || cltv.GreaterThan(ceilingDec) {
			continue
		}
		stacks = append(stacks, b.makeStack([]model.Program{p}, assistance, cltv, in))
	}

	// Two-program stacks over every unordered pair.
	for i := 0; i < len(eligible); i++ {
		for j := i + 1; j < len(eligible); j++ {
			first, second := eligible[i], eligible[j]
			if !layeringAllowed(first, second) {
				continue
			}

			assistance := AssistanceAmount(first, in.PurchasePrice, in.LoanAmount).
				Add(AssistanceAmount(second, in.PurchasePrice, in.LoanAmount))
			if assistance.GreaterThanOrEqual(in.PurchasePrice) {
				continue
			}
			cltv, ok := resultingCLTV(in.LoanAmount, in.PurchasePrice, assistance)
			if !ok || cltv.GreaterThan(ceilingDec) {
				continue
			}
			stacks = append(stacks, b.makeStack([]model.Program{first, second}, assistance, cltv, in))
		}
	}

	rankStacks(stacks)
	if len(stacks) > maxStackResults {
		stacks = stacks[:maxStackResults]
	}
	return stacks
}

// AssistanceAmount resolves a program's assistance in dollars: the flat
// amount when specified, else a percentage of purchase price (pct <=
// percentOfPriceMax) or of loan amount (pct > percentOfPriceMax).
func AssistanceAmount(p model.Program, purchasePrice, loanAmount decimal.Decimal) decimal.Decimal {
	if p.AssistanceFlat.IsPositive() {
		return p.AssistanceFlat
	}
	if p.AssistancePercent <= 0 {
		return decimal.Zero
	}
	if p.AssistancePercent <= percentOfPriceMax {
		return Percent(purchasePrice, p.AssistancePercent)
	}
	return Percent(loanAmount, p.AssistancePercent)
}

// resultingCLTV = loanAmount / (purchasePrice - assistance) * 100.
func resultingCLTV(loanAmount, purchasePrice, assistance decimal.Decimal) (decimal.Decimal, bool) {
	basis := purchasePrice.Sub(assistance)
	if basis.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, false
	}
	return loanAmount.Div(basis).Mul(hundred), true
}

// layeringAllowed applies the pairwise combination rules. The rules are
// data-driven off catalog fields so new exclusions ship as reference data,
// not code changes.
func layeringAllowed(a, b model.Program) bool {
	if a.Layering == model.LayeringNo || b.Layering == model.LayeringNo {
		return false
	}
	// Two programs funded by the same state bond issuance under one
	// administrator cannot be combined.
	if a.FundingSource == model.FundingStateBond && b.FundingSource == model.FundingStateBond &&
		a.Administrator == b.Administrator {
		return false
	}
	// Grant-only programs refuse any non-grant partner.
	if a.RequiresGrantPartner && !b.IsGrant() {
		return false
	}
	if b.RequiresGrantPartner && !a.IsGrant() {
		return false
	}
	return true
}

func (b *StackBuilder) makeStack(
	programs []model.Program,
	assistance, cltv decimal.Decimal,
	in StackInput,
) CandidateStack {
	return CandidateStack{
		Programs:             programs,
		TotalAssistance:      assistance,
		ResultingCLTV:        cltv,
		MonthlyPaymentImpact: monthlyImpact(programs),
		LayeringBasis:        layeringBasis(programs),
		AgencyCitation:       agencyCitations[in.LoanType.String()],
		StackType:            stackType(programs),
	}
}

// monthlyImpact estimates the payment added by amortizing seconds in the
// stack. Grants, forgivable loans, and deferred loans contribute nothing.
func monthlyImpact(programs []model.Program) decimal.Decimal {
	impact := decimal.Zero
	for _, p := range programs {
		if p.ProgramType == model.ProgramTypeAmortizingSecond {
			impact = impact.Add(MonthlyPayment(p.AssistanceFlat, amortizingSecondRatePct, amortizingSecondTermMonths))
		}
	}
	return impact
}

func layeringBasis(programs []model.Program) string {
	if len(programs) == 1 {
		return "Single program; no layering required."
	}
	names := make([]string, len(programs))
	for i, p := range programs {
		names[i] = p.Name
	}
	return "Layered: " + strings.Join(names, " + ") + "; both permit combination with secondary financing."
}

func stackType(programs []model.Program) string {
	allGrants := true
	anyGrantOrForgivable := false
	allDeferred := true
	for _, p := range programs {
		if p.IsGrant() || p.ProgramType == model.ProgramTypeForgivableLoan {
			anyGrantOrForgivable = true
		}
		if !p.IsGrant() {
			allGrants = false
		}
		if p.ProgramType != model.ProgramTypeDeferredLoan {
			allDeferred = false
		}
	}
	switch {
	case allGrants:
		return StackTypeBestValue
	case anyGrantOrForgivable:
		return StackTypeRecommended
	case allDeferred:
		return StackTypeConservative
	default:
		return StackTypeAlternative
	}
}

// rankStacks orders by total assistance descending, then monthly payment
// impact ascending, then fewer programs first.
func rankStacks(stacks []CandidateStack) {
	sort.SliceStable(stacks, func(i, j int) bool {
		if !stacks[i].TotalAssistance.Equal(stacks[j].TotalAssistance) {
			return stacks[i].TotalAssistance.GreaterThan(stacks[j].TotalAssistance)
		}
		if !stacks[i].MonthlyPaymentImpact.Equal(stacks[j].MonthlyPaymentImpact) {
			return stacks[i].MonthlyPaymentImpact.LessThan(stacks[j].MonthlyPaymentImpact)
		}
		return len(stacks[i].Programs) < len(stacks[j].Programs)
	})
}
