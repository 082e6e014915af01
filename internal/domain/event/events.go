package event

import (
	"github.com/shopspring/decimal"

	"github.com/loanworks/advisor/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

// ---------------------------------------------------------------------------
// Scenario events
// ---------------------------------------------------------------------------

// ScenarioCreated is raised when a loan officer opens a new scenario.
type ScenarioCreated struct {
	events.BaseEvent
	OfficerID    string `json:"officer_id"`
	BorrowerName string `json:"borrower_name"`
	LoanType     string `json:"loan_type"`
}

func NewScenarioCreated(scenarioID, tenantID, officerID, borrowerName, loanType string) ScenarioCreated {
	return ScenarioCreated{
		BaseEvent:    events.NewBaseEvent("advisor.scenario.created", scenarioID, "Scenario", tenantID),
		OfficerID:    officerID,
		BorrowerName: borrowerName,
		LoanType:     loanType,
	}
}

// ScenarioActivated is raised when a scenario moves from DRAFT to ACTIVE.
type ScenarioActivated struct {
	events.BaseEvent
}

func NewScenarioActivated(scenarioID, tenantID string) ScenarioActivated {
	return ScenarioActivated{
		BaseEvent: events.NewBaseEvent("advisor.scenario.activated", scenarioID, "Scenario", tenantID),
	}
}

// AnalysisSaved is raised when an engine run is persisted onto the scenario
// under its namespaced key (fha_streamline_analysis, mi_optimizer_analysis,
// rate_buydown_analysis, debt_consolidation_analysis).
type AnalysisSaved struct {
	events.BaseEvent
	AnalysisName string `json:"analysis_name"`
}

func NewAnalysisSaved(scenarioID, tenantID, analysisName string) AnalysisSaved {
	return AnalysisSaved{
		BaseEvent:    events.NewBaseEvent("advisor.scenario.analysis_saved", scenarioID, "Scenario", tenantID),
		AnalysisName: analysisName,
	}
}

// ---------------------------------------------------------------------------
// Tradeline / dedupe events
// ---------------------------------------------------------------------------

// TradelineExcluded is raised when duplicate resolution removes a tradeline
// from debt-ratio consideration, automatically or by user decision.
type TradelineExcluded struct {
	events.BaseEvent
	GroupID string `json:"group_id"`
	Action  string `json:"action"`
	Reason  string `json:"reason,omitempty"`
}

func NewTradelineExcluded(tradelineID, tenantID, groupID, action, reason string) TradelineExcluded {
	return TradelineExcluded{
		BaseEvent: events.NewBaseEvent("advisor.tradeline.excluded", tradelineID, "Tradeline", tenantID),
		GroupID:   groupID,
		Action:    action,
		Reason:    reason,
	}
}

// TradelineKeptBoth is raised when a user overrides a duplicate
// recommendation and keeps both tradelines.
type TradelineKeptBoth struct {
	events.BaseEvent
	GroupID string `json:"group_id"`
	Reason  string `json:"reason"`
}

func NewTradelineKeptBoth(tradelineID, tenantID, groupID, reason string) TradelineKeptBoth {
	return TradelineKeptBoth{
		BaseEvent: events.NewBaseEvent("advisor.tradeline.kept_both", tradelineID, "Tradeline", tenantID),
		GroupID:   groupID,
		Reason:    reason,
	}
}

// StudentLoanPaymentResolved is raised when the qualifying-payment selector
// attaches a payment, method, and rationale to a student-loan tradeline.
type StudentLoanPaymentResolved struct {
	events.BaseEvent
	Method  string          `json:"method"`
	Payment decimal.Decimal `json:"payment"`
}

func NewStudentLoanPaymentResolved(tradelineID, tenantID, method string, payment decimal.Decimal) StudentLoanPaymentResolved {
	return StudentLoanPaymentResolved{
		BaseEvent: events.NewBaseEvent("advisor.tradeline.student_payment_resolved", tradelineID, "Tradeline", tenantID),
		Method:    method,
		Payment:   payment,
	}
}

// ---------------------------------------------------------------------------
// Decision record events
// ---------------------------------------------------------------------------

// DecisionRecorded is raised when a lender/program selection decision is
// snapshotted. Decision records are append-only.
type DecisionRecorded struct {
	events.BaseEvent
	ScenarioID        string `json:"scenario_id"`
	ProgramID         string `json:"program_id"`
	EligibilityStatus string `json:"eligibility_status"`
}

func NewDecisionRecorded(recordID, tenantID, scenarioID, programID, eligibilityStatus string) DecisionRecorded {
	return DecisionRecorded{
		BaseEvent:         events.NewBaseEvent("advisor.decision.recorded", recordID, "DecisionRecord", tenantID),
		ScenarioID:        scenarioID,
		ProgramID:         programID,
		EligibilityStatus: eligibilityStatus,
	}
}

// DecisionVoided is raised when a decision record is soft-voided. The record
// itself is never rewritten.
type DecisionVoided struct {
	events.BaseEvent
	Reason string `json:"reason"`
}

func NewDecisionVoided(recordID, tenantID, reason string) DecisionVoided {
	return DecisionVoided{
		BaseEvent: events.NewBaseEvent("advisor.decision.voided", recordID, "DecisionRecord", tenantID),
		Reason:    reason,
	}
}
