package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// LoanType – immutable value object
// ---------------------------------------------------------------------------

// LoanType identifies the agency/program family a loan belongs to.
type LoanType struct {
	value string
}

const (
	loanTypeFHA          = "FHA"
	loanTypeVA           = "VA"
	loanTypeUSDA         = "USDA"
	loanTypeConventional = "CONVENTIONAL"
)

var (
	LoanTypeFHA          = LoanType{value: loanTypeFHA}
	LoanTypeVA           = LoanType{value: loanTypeVA}
	LoanTypeUSDA         = LoanType{value: loanTypeUSDA}
	LoanTypeConventional = LoanType{value: loanTypeConventional}
)

var validLoanTypes = map[string]LoanType{
	loanTypeFHA:          LoanTypeFHA,
	loanTypeVA:           LoanTypeVA,
	loanTypeUSDA:         LoanTypeUSDA,
	loanTypeConventional: LoanTypeConventional,
}

// NewLoanType creates a LoanType from a raw string.
func NewLoanType(s string) (LoanType, error) {
	v, ok := validLoanTypes[s]
	if !ok {
		return LoanType{}, fmt.Errorf("invalid loan type: %q", s)
	}
	return v, nil
}

// String returns the string representation.
func (t LoanType) String() string { return t.value }

// IsZero returns true if the loan type has not been initialised.
func (t LoanType) IsZero() bool { return t.value == "" }

// Equal returns true when both loan types carry the same value.
func (t LoanType) Equal(other LoanType) bool { return t.value == other.value }

// Conventional investor identifiers used by the student-loan payment rules.
const (
	InvestorFannie  = "FANNIE"
	InvestorFreddie = "FREDDIE"
)
