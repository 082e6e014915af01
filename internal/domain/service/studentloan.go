package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/loanworks/advisor/internal/domain/model"
	"github.com/loanworks/advisor/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// StudentLoanRuleSelector – per-investor qualifying payment selection
// ---------------------------------------------------------------------------

// Qualifying-payment methods, in loan-file documentation terms.
const (
	MethodDocumentedPayment   = "DOCUMENTED_PAYMENT"
	MethodCreditReportPayment = "CREDIT_REPORT_PAYMENT"
	MethodFHAHalfPercent      = "FHA_0_5_PERCENT_BALANCE"
	MethodVAFivePercentDiv12  = "VA_5_PERCENT_DIV_12"
	MethodIDRZeroVerified     = "IDR_ZERO_VERIFIED"
	MethodFannieOnePercent    = "FANNIE_1_PERCENT_BALANCE"
	MethodFreddieHalfPercent  = "FREDDIE_0_5_PERCENT_BALANCE"
	MethodDefaultHalfPercent  = "DEFAULT_0_5_PERCENT_BALANCE"
)

// StudentLoanRuleSelector picks the qualifying monthly payment for a
// student-loan tradeline per investor and program rules.
type StudentLoanRuleSelector struct{}

// NewStudentLoanRuleSelector returns a new selector instance.
func NewStudentLoanRuleSelector() *StudentLoanRuleSelector {
	return &StudentLoanRuleSelector{}
}

// QualifyingPayment resolves the payment for one tradeline. Precedence, first
// match wins: documented payment, credit-report payment, then the program or
// investor fallback formula. The rationale string is a required output for
// loan-file documentation.
func (s *StudentLoanRuleSelector) QualifyingPayment(
	t model.Tradeline,
	loanType valueobject.LoanType,
	conventionalInvestor string,
) (model.QualifyingPayment, error) {
	if !t.DebtType().Equal(valueobject.DebtTypeStudentLoan) {
		return model.QualifyingPayment{}, fmt.Errorf("%w: tradeline %s is not a student loan", ErrInvalidInput, t.ID())
	}

	if t.DocumentedPayment().IsPositive() {
		return model.QualifyingPayment{
			Method:    MethodDocumentedPayment,
			Payment:   t.DocumentedPayment(),
			Rationale: "Borrower-documented payment from servicer statement or repayment agreement.",
		}, nil
	}

	if t.ReportedPayment().IsPositive() {
		return model.QualifyingPayment{
			Method:    MethodCreditReportPayment,
			Payment:   t.ReportedPayment(),
			Rationale: "Monthly payment as reported on the credit report.",
		}, nil
	}

	return s.fallbackPayment(t, loanType, conventionalInvestor), nil
}

// fallbackPayment applies the program-specific formula when no payment is
// documented or reported.
func (s *StudentLoanRuleSelector) fallbackPayment(
	t model.Tradeline,
	loanType valueobject.LoanType,
	conventionalInvestor string,
) model.QualifyingPayment {
	balance := t.Balance()

	switch {
	case loanType.Equal(valueobject.LoanTypeFHA):
		return model.QualifyingPayment{
			Method:    MethodFHAHalfPercent,
			Payment:   Percent(balance, 0.5),
			Rationale: "FHA: no documented payment; 0.5% of outstanding balance per month.",
		}

	case loanType.Equal(valueobject.LoanTypeVA):
		return model.QualifyingPayment{
			Method:    MethodVAFivePercentDiv12,
			Payment:   Percent(balance, 5).Div(decimal.NewFromInt(12)),
			Rationale: "VA: no documented payment; 5% of outstanding balance divided by 12.",
		}

	case loanType.Equal(valueobject.LoanTypeConventional) && conventionalInvestor == valueobject.InvestorFannie:
		if t.IDRZeroVerified() {
			return model.QualifyingPayment{
				Method:    MethodIDRZeroVerified,
				Payment:   decimal.Zero,
				Rationale: "Fannie Mae: verified $0 income-driven repayment plan; $0 qualifying payment.",
			}
		}
		return model.QualifyingPayment{
			Method:    MethodFannieOnePercent,
			Payment:   Percent(balance, 1),
			Rationale: "Fannie Mae: no documented payment; 1% of outstanding balance per month.",
		}

	case loanType.Equal(valueobject.LoanTypeConventional) && conventionalInvestor == valueobject.InvestorFreddie:
		return model.QualifyingPayment{
			Method:    MethodFreddieHalfPercent,
			Payment:   Percent(balance, 0.5),
			Rationale: "Freddie Mac: no documented payment; 0.5% of outstanding balance per month.",
		}

	default:
		return model.QualifyingPayment{
			Method:    MethodDefaultHalfPercent,
			Payment:   Percent(balance, 0.5),
			Rationale: "No program-specific rule matched; 0.5% of outstanding balance per month applied as the conservative default.",
		}
	}
}
