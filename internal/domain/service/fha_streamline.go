package service

import "fmt"

// ---------------------------------------------------------------------------
// StreamlineRuleEngine – FHA Streamline refinance eligibility chain
// ---------------------------------------------------------------------------

// Decision states.
const (
	DecisionEligible   = "ELIGIBLE"
	DecisionNeedsInfo  = "NEEDS_INFO"
	DecisionIneligible = "INELIGIBLE"
)

// Rule statuses.
const (
	RuleStatusPass = "PASS"
	RuleStatusWarn = "WARN"
	RuleStatusFail = "FAIL"
)

// StreamlineInput carries the payment-history and occupancy facts the
// eligibility chain tests.
type StreamlineInput struct {
	FHAInsured       bool
	Delinquent       bool
	LatesLast6Months int
	LatesMonths7To12 int
	OwnerOccupied    bool
	InForbearance    bool
	BorrowerRemoved  bool
	TitleChanged     bool
}

// RuleResult is one rule's outcome. The full trace is retained for display
// regardless of the final decision.
type RuleResult struct {
	Name    string
	Status  string
	Hard    bool
	Message string
}

// EligibilityResult pairs the ordered rule trace with the final decision.
type EligibilityResult struct {
	Rules         []RuleResult
	FinalDecision string
}

// StreamlineRuleEngine evaluates the ordered FHA Streamline eligibility
// rules. Any hard-gate failure forces INELIGIBLE and the decision stays there
// regardless of later results. A soft warning while still eligible moves the
// decision to NEEDS_INFO.
type StreamlineRuleEngine struct{}

// NewStreamlineRuleEngine returns a new engine instance.
func NewStreamlineRuleEngine() *StreamlineRuleEngine {
	return &StreamlineRuleEngine{}
}

// Evaluate runs the full rule chain and returns every rule's status plus the
// final tri-state decision.
func (e *StreamlineRuleEngine) Evaluate(in StreamlineInput) EligibilityResult {
	rules := []RuleResult{
		hardRule("FHA-insured loan",
			in.FHAInsured,
			"Existing loan is FHA-insured.",
			"Existing loan is not FHA-insured; Streamline is unavailable."),
		hardRule("Not delinquent",
			!in.Delinquent,
			"Loan is current.",
			"Loan is delinquent; borrower must bring the loan current first."),
		hardRule("No lates in trailing 6 months",
			in.LatesLast6Months == 0,
			"No late payments in the last 6 months.",
			fmt.Sprintf("%d late payment(s) in the last 6 months; FHA requires zero.", in.LatesLast6Months)),
		softRule("At most 1 late in months 7-12",
			in.LatesMonths7To12 <= 1,
			"Payment history in months 7-12 meets the standard.",
			fmt.Sprintf("%d late payment(s) in months 7-12; lender review required.", in.LatesMonths7To12)),
		softRule("Owner-occupied",
			in.OwnerOccupied,
			"Property is owner-occupied.",
			"Property is not owner-occupied; non-owner Streamlines carry restricted terms."),
		hardRule("No forbearance or loss mitigation",
			!in.InForbearance,
			"Loan is not in forbearance or loss mitigation.",
			"Loan is in forbearance or loss mitigation; ineligible until resolved."),
		softRule("No borrower removal or title change",
			!in.BorrowerRemoved && !in.TitleChanged,
			"Borrowers and title are unchanged since origination.",
			"A borrower was removed or title changed; credit qualifying may be required."),
	}

	decision := DecisionEligible
	for _, r := range rules {
		switch r.Status {
		case RuleStatusFail:
			decision = DecisionIneligible
		case RuleStatusWarn:
			if decision == DecisionEligible {
				decision = DecisionNeedsInfo
			}
		}
	}

	return EligibilityResult{Rules: rules, FinalDecision: decision}
}

func hardRule(name string, pass bool, passMsg, failMsg string) RuleResult {
	if pass {
		return RuleResult{Name: name, Status: RuleStatusPass, Hard: true, Message: passMsg}
	}
	return RuleResult{Name: name, Status: RuleStatusFail, Hard: true, Message: failMsg}
}

func softRule(name string, pass bool, passMsg, warnMsg string) RuleResult {
	if pass {
		return RuleResult{Name: name, Status: RuleStatusPass, Message: passMsg}
	}
	return RuleResult{Name: name, Status: RuleStatusWarn, Message: warnMsg}
}
