package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// DebtType – immutable value object
// ---------------------------------------------------------------------------

// DebtType classifies a tradeline on the credit file.
type DebtType struct {
	value string
}

const (
	debtTypeRevolving   = "REVOLVING"
	debtTypeInstallment = "INSTALLMENT"
	debtTypeMortgage    = "MORTGAGE"
	debtTypeStudentLoan = "STUDENT_LOAN"
	debtTypeCollection  = "COLLECTION"
	debtTypeChargeOff   = "CHARGE_OFF"
	debtTypeLease       = "LEASE"
	debtTypeSupport     = "ALIMONY_SUPPORT"
	debtTypeOther       = "OTHER"
)

var (
	DebtTypeRevolving   = DebtType{value: debtTypeRevolving}
	DebtTypeInstallment = DebtType{value: debtTypeInstallment}
	DebtTypeMortgage    = DebtType{value: debtTypeMortgage}
	DebtTypeStudentLoan = DebtType{value: debtTypeStudentLoan}
	DebtTypeCollection  = DebtType{value: debtTypeCollection}
	DebtTypeChargeOff   = DebtType{value: debtTypeChargeOff}
	DebtTypeLease       = DebtType{value: debtTypeLease}
	DebtTypeSupport     = DebtType{value: debtTypeSupport}
	DebtTypeOther       = DebtType{value: debtTypeOther}
)

var validDebtTypes = map[string]DebtType{
	debtTypeRevolving:   DebtTypeRevolving,
	debtTypeInstallment: DebtTypeInstallment,
	debtTypeMortgage:    DebtTypeMortgage,
	debtTypeStudentLoan: DebtTypeStudentLoan,
	debtTypeCollection:  DebtTypeCollection,
	debtTypeChargeOff:   DebtTypeChargeOff,
	debtTypeLease:       DebtTypeLease,
	debtTypeSupport:     DebtTypeSupport,
	debtTypeOther:       DebtTypeOther,
}

// NewDebtType creates a DebtType from a raw string.
func NewDebtType(s string) (DebtType, error) {
	v, ok := validDebtTypes[s]
	if !ok {
		return DebtType{}, fmt.Errorf("invalid debt type: %q", s)
	}
	return v, nil
}

// String returns the string representation.
func (t DebtType) String() string { return t.value }

// IsZero returns true if the debt type has not been initialised.
func (t DebtType) IsZero() bool { return t.value == "" }

// Equal returns true when both debt types carry the same value.
func (t DebtType) Equal(other DebtType) bool { return t.value == other.value }
