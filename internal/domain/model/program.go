package model

import "github.com/shopspring/decimal"

// ---------------------------------------------------------------------------
// Down-payment-assistance program catalog (read-only reference data)
// ---------------------------------------------------------------------------

// Program type labels.
const (
	ProgramTypeGrant            = "GRANT"
	ProgramTypeForgivableLoan   = "FORGIVABLE_LOAN"
	ProgramTypeDeferredLoan     = "DEFERRED_LOAN"
	ProgramTypeAmortizingSecond = "AMORTIZING_SECOND"
	ProgramTypeLenderGrant      = "LENDER_GRANT"
)

// Income-limit rule kinds.
const (
	IncomeLimitNone       = ""
	IncomeLimitAMIPercent = "AMI_PERCENT"
	IncomeLimitDollarCap  = "DOLLAR_CAP"
)

// Layering permissions.
const (
	LayeringYes         = "yes"
	LayeringNo          = "no"
	LayeringConditional = "conditional"
)

// Funding sources relevant to layering rules.
const (
	FundingStateBond = "STATE_BOND"
	FundingFederal   = "FEDERAL"
	FundingNonprofit = "NONPROFIT"
	FundingLender    = "LENDER"
)

// HouseholdSizeAll is the fallback bucket in dollar-cap income tables.
const HouseholdSizeAll = "ALL"

// Program is one catalog entry of down-payment assistance. Catalog entries
// are immutable at runtime and injected into the engines as a snapshot; the
// engines never cache or mutate them.
type Program struct {
	ID            string
	Name          string
	Administrator string
	// State is a two-letter code, or "ALL" for nationwide programs.
	State     string
	LoanTypes []string
	// MinCreditScore is the floor the borrower must meet or exceed.
	MinCreditScore int
	// MaxPurchasePrice of zero means no price cap.
	MaxPurchasePrice   decimal.Decimal
	FirstTimeBuyerOnly bool

	// Income limit: IncomeLimitType selects the rule; AMIPercent applies to
	// the area median income, IncomeCaps is keyed by household size (with an
	// "ALL" fallback bucket). An empty IncomeLimitType imposes no income test.
	IncomeLimitType string
	AMIPercent      float64
	IncomeCaps      map[string]decimal.Decimal

	// Assistance: a flat dollar amount, or a percentage whose basis depends
	// on its magnitude (see service.AssistanceAmount).
	AssistanceFlat    decimal.Decimal
	AssistancePercent float64

	ProgramType   string
	Layering      string // "yes", "no", "conditional"
	FundingSource string
	// RequiresGrantPartner marks programs that may only be layered with pure
	// grants (the national forgivable second carries this restriction).
	RequiresGrantPartner bool
	SpecialCategories    []string
	Active               bool
}

// Supports reports whether the program accepts the given loan type.
func (p Program) Supports(loanType string) bool {
	for _, lt := range p.LoanTypes {
		if lt == loanType {
			return true
		}
	}
	return false
}

// IsGrant reports whether the program is a pure grant (lender grants count).
func (p Program) IsGrant() bool {
	return p.ProgramType == ProgramTypeGrant || p.ProgramType == ProgramTypeLenderGrant
}

// ---------------------------------------------------------------------------
// Area median income reference table
// ---------------------------------------------------------------------------

// AMITable maps state codes to annual area median income. Like the program
// catalog it is versioned reference data supplied per call.
type AMITable struct {
	ByState map[string]decimal.Decimal
	Default decimal.Decimal
}

// AreaMedianIncome returns the AMI for a state, falling back to the default.
func (t AMITable) AreaMedianIncome(state string) decimal.Decimal {
	if ami, ok := t.ByState[state]; ok {
		return ami
	}
	return t.Default
}
