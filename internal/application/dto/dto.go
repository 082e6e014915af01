package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Shared sub-objects
// ---------------------------------------------------------------------------

// BorrowerProfile mirrors the borrower qualifying attributes on a scenario.
type BorrowerProfile struct {
	Names             []string        `json:"names"`
	CreditScore       int             `json:"credit_score"`
	AnnualIncome      decimal.Decimal `json:"annual_income"`
	MonthlyDebts      decimal.Decimal `json:"monthly_debts"`
	HouseholdSize     int             `json:"household_size"`
	FirstTimeBuyer    bool            `json:"first_time_buyer"`
	SpecialCategories []string        `json:"special_categories,omitempty"`
}

// LoanTerms mirrors the loan economics on a scenario.
type LoanTerms struct {
	Amount        decimal.Decimal `json:"amount"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	PropertyValue decimal.Decimal `json:"property_value"`
	RatePct       float64         `json:"rate_pct"`
	TermMonths    int             `json:"term_months"`
	LoanType      string          `json:"loan_type"`
	Investor      string          `json:"investor,omitempty"`
	Purpose       string          `json:"purpose"`
}

// PropertyInfo mirrors the property attributes on a scenario.
type PropertyInfo struct {
	Street       string `json:"street"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zip          string `json:"zip"`
	PropertyType string `json:"property_type"`
	Occupancy    string `json:"occupancy"`
}

// HousingExpense mirrors the monthly housing-expense components.
type HousingExpense struct {
	PrincipalAndInterest decimal.Decimal `json:"principal_and_interest"`
	Taxes                decimal.Decimal `json:"taxes"`
	Insurance            decimal.Decimal `json:"insurance"`
	MortgageInsurance    decimal.Decimal `json:"mortgage_insurance"`
	HOADues              decimal.Decimal `json:"hoa_dues"`
	TaxesEstimated       bool            `json:"taxes_estimated"`
	InsuranceEstimated   bool            `json:"insurance_estimated"`
}

// ---------------------------------------------------------------------------
// Scenario request DTOs
// ---------------------------------------------------------------------------

// CreateScenarioRequest carries the data for a new scenario.
type CreateScenarioRequest struct {
	TenantID  string          `json:"tenant_id"`
	OfficerID string          `json:"officer_id"`
	Borrower  BorrowerProfile `json:"borrower"`
	Terms     LoanTerms       `json:"terms"`
	Property  PropertyInfo    `json:"property"`
	Housing   HousingExpense  `json:"housing"`
}

// GetScenarioRequest identifies a scenario to retrieve.
type GetScenarioRequest struct {
	TenantID   string `json:"tenant_id"`
	ScenarioID string `json:"scenario_id"`
}

// UpdateScenarioRequest replaces the editable sections of a scenario.
// Activate additionally transitions a draft to active.
type UpdateScenarioRequest struct {
	TenantID   string          `json:"tenant_id"`
	ScenarioID string          `json:"scenario_id"`
	Borrower   BorrowerProfile `json:"borrower"`
	Terms      LoanTerms       `json:"terms"`
	Property   PropertyInfo    `json:"property"`
	Housing    HousingExpense  `json:"housing"`
	Activate   bool            `json:"activate,omitempty"`
}

// ListScenariosRequest lists the scenarios owned by a loan officer.
type ListScenariosRequest struct {
	TenantID  string `json:"tenant_id"`
	OfficerID string `json:"officer_id"`
}

// ---------------------------------------------------------------------------
// Engine request DTOs
// ---------------------------------------------------------------------------

// BuildAssistanceStacksRequest runs the DPA filter and stack builder on a
// scenario.
type BuildAssistanceStacksRequest struct {
	TenantID   string `json:"tenant_id"`
	ScenarioID string `json:"scenario_id"`
}

// RunDebtConsolidationRequest runs duplicate detection and student-loan
// payment resolution over a scenario's tradelines.
type RunDebtConsolidationRequest struct {
	TenantID   string `json:"tenant_id"`
	ScenarioID string `json:"scenario_id"`
}

// Duplicate-resolution actions.
const (
	ResolveActionApply        = "APPLY_RECOMMENDATION"
	ResolveActionKeepBoth     = "KEEP_BOTH"
	ResolveActionNotDuplicate = "NOT_DUPLICATE"
)

// ResolveDuplicateRequest applies a user decision to one member of a
// duplicate group. Reason is mandatory for KEEP_BOTH.
type ResolveDuplicateRequest struct {
	TenantID    string `json:"tenant_id"`
	ScenarioID  string `json:"scenario_id"`
	TradelineID string `json:"tradeline_id"`
	GroupID     string `json:"group_id"`
	Action      string `json:"action"`
	Reason      string `json:"reason,omitempty"`
}

// PricingOption is one priced rate/term under consideration.
type PricingOption struct {
	Label       string          `json:"label"`
	NoteRatePct float64         `json:"note_rate_pct"`
	TermMonths  int             `json:"term_months,omitempty"`
	Price       decimal.Decimal `json:"price,omitempty"`
}

// RunStreamlineAnalysisRequest carries the FHA Streamline eligibility facts
// and the pricing options to analyze.
type RunStreamlineAnalysisRequest struct {
	TenantID   string `json:"tenant_id"`
	ScenarioID string `json:"scenario_id"`

	FHAInsured       bool `json:"fha_insured"`
	Delinquent       bool `json:"delinquent"`
	LatesLast6Months int  `json:"lates_last_6_months"`
	LatesMonths7To12 int  `json:"lates_months_7_to_12"`
	OwnerOccupied    bool `json:"owner_occupied"`
	InForbearance    bool `json:"in_forbearance"`
	BorrowerRemoved  bool `json:"borrower_removed"`
	TitleChanged     bool `json:"title_changed"`

	UnpaidBalance          decimal.Decimal `json:"unpaid_balance"`
	ExistingNoteRatePct    float64         `json:"existing_note_rate_pct"`
	ExistingMIPFactorPct   float64         `json:"existing_mip_factor_pct"`
	ExistingMonthlyPI      decimal.Decimal `json:"existing_monthly_pi"`
	ExistingMonthlyMIP     decimal.Decimal `json:"existing_monthly_mip"`
	OriginalUFMIP          decimal.Decimal `json:"original_ufmip"`
	MonthsSinceEndorsement int             `json:"months_since_endorsement"`
	PricingOptions         []PricingOption `json:"pricing_options"`
}

// RunMIComparisonRequest carries the quoted MI factors and planning horizon.
type RunMIComparisonRequest struct {
	TenantID   string `json:"tenant_id"`
	ScenarioID string `json:"scenario_id"`

	HorizonMonths         int     `json:"horizon_months"`
	MonthlyFactorPct      float64 `json:"monthly_factor_pct"`
	SinglePremiumPct      float64 `json:"single_premium_pct"`
	SplitUpfrontPct       float64 `json:"split_upfront_pct"`
	SplitMonthlyFactorPct float64 `json:"split_monthly_factor_pct"`
	LPMIRateAddPct        float64 `json:"lpmi_rate_add_pct"`
}

// RunRateBuydownRequest carries the lender's pricing grid and planning
// horizon.
type RunRateBuydownRequest struct {
	TenantID      string          `json:"tenant_id"`
	ScenarioID    string          `json:"scenario_id"`
	HorizonMonths int             `json:"horizon_months"`
	Options       []PricingOption `json:"options"`
}

// ---------------------------------------------------------------------------
// Decision request DTOs
// ---------------------------------------------------------------------------

// RecordDecisionRequest snapshots a lender/program selection.
type RecordDecisionRequest struct {
	TenantID          string          `json:"tenant_id"`
	ScenarioID        string          `json:"scenario_id"`
	ProgramID         string          `json:"program_id"`
	LenderName        string          `json:"lender_name"`
	EligibilityStatus string          `json:"eligibility_status"`
	TotalAssistance   decimal.Decimal `json:"total_assistance"`
	ResultingCLTV     decimal.Decimal `json:"resulting_cltv"`
	DataSource        string          `json:"data_source"`
	GuidelineVersion  string          `json:"guideline_version"`
}

// VoidDecisionRequest soft-voids a decision record.
type VoidDecisionRequest struct {
	TenantID   string `json:"tenant_id"`
	DecisionID string `json:"decision_id"`
	Reason     string `json:"reason"`
}

// ExportDecisionLogRequest exports a scenario's decision history as plain
// text.
type ExportDecisionLogRequest struct {
	TenantID   string `json:"tenant_id"`
	ScenarioID string `json:"scenario_id"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// ScenarioResponse is the external representation of a scenario.
type ScenarioResponse struct {
	ID        string                     `json:"id"`
	TenantID  string                     `json:"tenant_id"`
	OfficerID string                     `json:"officer_id"`
	Borrower  BorrowerProfile            `json:"borrower"`
	Terms     LoanTerms                  `json:"terms"`
	Property  PropertyInfo               `json:"property"`
	Housing   HousingExpense             `json:"housing"`
	Status    string                     `json:"status"`
	LTVPct    decimal.Decimal            `json:"ltv_pct"`
	Analyses  map[string]json.RawMessage `json:"analyses,omitempty"`
	Version   int                        `json:"version"`
	CreatedAt time.Time                  `json:"created_at"`
	UpdatedAt time.Time                  `json:"updated_at"`
}

// ProgramResponse is the external representation of a catalog program.
type ProgramResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Administrator string `json:"administrator"`
	ProgramType   string `json:"program_type"`
}

// StackResponse is one ranked candidate stack.
type StackResponse struct {
	Programs             []ProgramResponse `json:"programs"`
	TotalAssistance      decimal.Decimal   `json:"total_assistance"`
	ResultingCLTV        decimal.Decimal   `json:"resulting_cltv"`
	MonthlyPaymentImpact decimal.Decimal   `json:"monthly_payment_impact"`
	LayeringBasis        string            `json:"layering_basis"`
	AgencyCitation       string            `json:"agency_citation"`
	StackType            string            `json:"stack_type"`
}

// BuildAssistanceStacksResponse carries the eligible programs and ranked
// stacks for a scenario.
type BuildAssistanceStacksResponse struct {
	ScenarioID           string          `json:"scenario_id"`
	EligibleProgramCount int             `json:"eligible_program_count"`
	Stacks               []StackResponse `json:"stacks"`
}

// GroupMemberResponse ties a tradeline to its role in a duplicate group.
type GroupMemberResponse struct {
	TradelineID string `json:"tradeline_id"`
	Role        string `json:"role"`
}

// DuplicateGroupResponse is one detected duplicate group.
type DuplicateGroupResponse struct {
	ID                string                `json:"id"`
	GroupType         string                `json:"group_type"`
	Confidence        string                `json:"confidence"`
	ReasonCode        string                `json:"reason_code"`
	RecommendedAction string                `json:"recommended_action"`
	Members           []GroupMemberResponse `json:"members"`
	Resolved          bool                  `json:"resolved"`
}

// TradelineResponse is the external representation of a tradeline.
type TradelineResponse struct {
	ID                  string          `json:"id"`
	ScenarioID          string          `json:"scenario_id"`
	Creditor            string          `json:"creditor"`
	DebtType            string          `json:"debt_type"`
	Balance             decimal.Decimal `json:"balance"`
	ReportedPayment     decimal.Decimal `json:"reported_payment"`
	DocumentedPayment   decimal.Decimal `json:"documented_payment"`
	MonthlyDebt         decimal.Decimal `json:"monthly_debt"`
	DedupeAction        string          `json:"dedupe_action"`
	DedupeGroupID       string          `json:"dedupe_group_id,omitempty"`
	DecisionReason      string          `json:"decision_reason,omitempty"`
	QualifyingMethod    string          `json:"qualifying_method,omitempty"`
	QualifyingPayment   decimal.Decimal `json:"qualifying_payment,omitempty"`
	QualifyingRationale string          `json:"qualifying_rationale,omitempty"`
}

// RunDebtConsolidationResponse carries the detection outcome and resolved
// payments.
type RunDebtConsolidationResponse struct {
	ScenarioID       string                   `json:"scenario_id"`
	Groups           []DuplicateGroupResponse `json:"groups"`
	Tradelines       []TradelineResponse      `json:"tradelines"`
	TotalMonthlyDebt decimal.Decimal          `json:"total_monthly_debt"`
	AutoResolved     int                      `json:"auto_resolved"`
	CompletedAt      time.Time                `json:"completed_at"`
}

// ResolveDuplicateResponse returns the tradeline after resolution.
type ResolveDuplicateResponse struct {
	Tradeline TradelineResponse `json:"tradeline"`
}

// RuleResultResponse is one eligibility rule outcome.
type RuleResultResponse struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Hard    bool   `json:"hard"`
	Message string `json:"message"`
}

// NTBOptionResponse is the per-pricing-option NTB analysis.
type NTBOptionResponse struct {
	Label            string          `json:"label"`
	NoteRatePct      float64         `json:"note_rate_pct"`
	CombinedRatePct  decimal.Decimal `json:"combined_rate_pct"`
	RateReductionPct decimal.Decimal `json:"rate_reduction_pct"`
	NTBPass          bool            `json:"ntb_pass"`
	NewMonthlyPI     decimal.Decimal `json:"new_monthly_pi"`
	NewMonthlyMIP    decimal.Decimal `json:"new_monthly_mip"`
	NewTotalPayment  decimal.Decimal `json:"new_total_payment"`
	MonthlySavings   decimal.Decimal `json:"monthly_savings"`
	NewUFMIP         decimal.Decimal `json:"new_ufmip"`
	UFMIPRefundPct   decimal.Decimal `json:"ufmip_refund_pct"`
	UFMIPRefund      decimal.Decimal `json:"ufmip_refund"`
	NetUFMIP         decimal.Decimal `json:"net_ufmip"`
	BreakevenMonths  int             `json:"breakeven_months"`
	Badge            string          `json:"badge"`
}

// RunStreamlineAnalysisResponse pairs the rule trace with the NTB analysis.
type RunStreamlineAnalysisResponse struct {
	ScenarioID    string               `json:"scenario_id"`
	Rules         []RuleResultResponse `json:"rules"`
	FinalDecision string               `json:"final_decision"`
	Options       []NTBOptionResponse  `json:"options"`
	CompletedAt   time.Time            `json:"completed_at"`
}

// MIOptionResponse is one MI structure's cost picture.
type MIOptionResponse struct {
	Structure          string          `json:"structure"`
	UpfrontCost        decimal.Decimal `json:"upfront_cost"`
	MonthlyMI          decimal.Decimal `json:"monthly_mi"`
	TotalMonthly       decimal.Decimal `json:"total_monthly"`
	MonthsMIAccrues    int             `json:"months_mi_accrues"`
	TotalCostAtHorizon decimal.Decimal `json:"total_cost_at_horizon"`
	CancelMonth        int             `json:"cancel_month"`
	Badges             []string        `json:"badges,omitempty"`
}

// RunMIComparisonResponse carries the four compared MI structures.
type RunMIComparisonResponse struct {
	ScenarioID  string             `json:"scenario_id"`
	Options     []MIOptionResponse `json:"options"`
	CompletedAt time.Time          `json:"completed_at"`
}

// BuydownOptionResponse is one rate option's break-even economics.
type BuydownOptionResponse struct {
	Label               string          `json:"label"`
	NoteRatePct         float64         `json:"note_rate_pct"`
	UpfrontCost         decimal.Decimal `json:"upfront_cost"`
	MonthlyPayment      decimal.Decimal `json:"monthly_payment"`
	MonthlySavings      decimal.Decimal `json:"monthly_savings"`
	BreakevenMonths     int             `json:"breakeven_months"`
	NetSavingsAtHorizon decimal.Decimal `json:"net_savings_at_horizon"`
	BenefitScore        int             `json:"benefit_score"`
	Badges              []string        `json:"badges,omitempty"`
}

// RunRateBuydownResponse carries the compared rate options.
type RunRateBuydownResponse struct {
	ScenarioID  string                  `json:"scenario_id"`
	Options     []BuydownOptionResponse `json:"options"`
	CompletedAt time.Time               `json:"completed_at"`
}

// DecisionRecordResponse is the external representation of a decision record.
type DecisionRecordResponse struct {
	ID                string          `json:"id"`
	TenantID          string          `json:"tenant_id"`
	ScenarioID        string          `json:"scenario_id"`
	ProgramID         string          `json:"program_id"`
	LenderName        string          `json:"lender_name"`
	EligibilityStatus string          `json:"eligibility_status"`
	TotalAssistance   decimal.Decimal `json:"total_assistance"`
	ResultingCLTV     decimal.Decimal `json:"resulting_cltv"`
	DataSource        string          `json:"data_source"`
	GuidelineVersion  string          `json:"guideline_version"`
	Voided            bool            `json:"voided"`
	VoidReason        string          `json:"void_reason,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// ExportDecisionLogResponse carries the plain-text decision history.
type ExportDecisionLogResponse struct {
	ScenarioID string `json:"scenario_id"`
	Content    string `json:"content"`
}
