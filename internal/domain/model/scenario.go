package model

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/loanworks/advisor/internal/domain/event"
	"github.com/loanworks/advisor/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Scenario aggregate root (loan-officer workstation)
// ---------------------------------------------------------------------------

// Namespaced analysis keys written by the engine use cases. Each key holds a
// self-contained snapshot (inputs + outputs + completion timestamp) so a loan
// file can be replayed without re-running the engine.
const (
	AnalysisFHAStreamline     = "fha_streamline_analysis"
	AnalysisMIOptimizer       = "mi_optimizer_analysis"
	AnalysisRateBuydown       = "rate_buydown_analysis"
	AnalysisDebtConsolidation = "debt_consolidation_analysis"
)

// BorrowerProfile groups borrower-level qualifying attributes.
type BorrowerProfile struct {
	Names             []string
	CreditScore       int
	AnnualIncome      decimal.Decimal
	MonthlyDebts      decimal.Decimal
	HouseholdSize     int
	FirstTimeBuyer    bool
	SpecialCategories []string
}

// LoanTerms groups the loan economics of a scenario.
type LoanTerms struct {
	Amount        decimal.Decimal
	PurchasePrice decimal.Decimal
	PropertyValue decimal.Decimal
	RatePct       float64
	TermMonths    int
	LoanType      valueobject.LoanType
	// Investor is FANNIE or FREDDIE for conventional loans, empty otherwise.
	Investor string
	Purpose  string // "PURCHASE" or "REFINANCE"
}

// PropertyInfo groups property attributes.
type PropertyInfo struct {
	Street       string
	City         string
	State        string
	Zip          string
	PropertyType string
	Occupancy    string // "OWNER_OCCUPIED", "SECOND_HOME", "INVESTMENT"
}

// HousingExpense groups monthly housing-expense components. The *Estimated
// flags record whether a component was auto-estimated or overridden by the
// officer.
type HousingExpense struct {
	PrincipalAndInterest decimal.Decimal
	Taxes                decimal.Decimal
	Insurance            decimal.Decimal
	MortgageInsurance    decimal.Decimal
	HOADues              decimal.Decimal
	TaxesEstimated       bool
	InsuranceEstimated   bool
}

// Scenario is an immutable aggregate. Mutations return a new copy.
type Scenario struct {
	id        string
	tenantID  string
	officerID string
	borrower  BorrowerProfile
	terms     LoanTerms
	property  PropertyInfo
	housing   HousingExpense
	status    valueobject.ScenarioStatus
	// analyses holds namespaced engine result snapshots, keyed by the
	// Analysis* constants. Snapshots are superseded, never deleted.
	analyses     map[string]json.RawMessage
	version      int
	createdAt    time.Time
	updatedAt    time.Time
	domainEvents []event.DomainEvent
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewScenario creates a scenario in DRAFT status.
func NewScenario(
	tenantID, officerID string,
	borrower BorrowerProfile,
	terms LoanTerms,
	property PropertyInfo,
	housing HousingExpense,
	now time.Time,
) (Scenario, error) {
	if tenantID == "" {
		return Scenario{}, errors.New("tenant ID is required")
	}
	if officerID == "" {
		return Scenario{}, errors.New("officer ID is required")
	}
	if len(borrower.Names) == 0 {
		return Scenario{}, errors.New("at least one borrower name is required")
	}
	if terms.LoanType.IsZero() {
		return Scenario{}, errors.New("loan type is required")
	}
	if terms.Amount.LessThanOrEqual(decimal.Zero) {
		return Scenario{}, errors.New("loan amount must be positive")
	}

	id := uuid.New().String()
	sc := Scenario{
		id:        id,
		tenantID:  tenantID,
		officerID: officerID,
		borrower:  borrower,
		terms:     terms,
		property:  property,
		housing:   housing,
		status:    valueobject.ScenarioStatusDraft,
		analyses:  map[string]json.RawMessage{},
		version:   1,
		createdAt: now,
		updatedAt: now,
	}

	sc.domainEvents = append(sc.domainEvents, event.NewScenarioCreated(
		id, tenantID, officerID, borrower.Names[0], terms.LoanType.String(),
	))

	return sc, nil
}

// ReconstructScenario rebuilds a Scenario aggregate from persistence.
func ReconstructScenario(
	id, tenantID, officerID string,
	borrower BorrowerProfile,
	terms LoanTerms,
	property PropertyInfo,
	housing HousingExpense,
	status valueobject.ScenarioStatus,
	analyses map[string]json.RawMessage,
	version int,
	createdAt, updatedAt time.Time,
) Scenario {
	if analyses == nil {
		analyses = map[string]json.RawMessage{}
	}
	return Scenario{
		id:        id,
		tenantID:  tenantID,
		officerID: officerID,
		borrower:  borrower,
		terms:     terms,
		property:  property,
		housing:   housing,
		status:    status,
		analyses:  analyses,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions
// ---------------------------------------------------------------------------

// UpdateDetails replaces the editable sections of the scenario.
func (s Scenario) UpdateDetails(
	borrower BorrowerProfile,
	terms LoanTerms,
	property PropertyInfo,
	housing HousingExpense,
	now time.Time,
) (Scenario, error) {
	if len(borrower.Names) == 0 {
		return s, errors.New("at least one borrower name is required")
	}
	if terms.Amount.LessThanOrEqual(decimal.Zero) {
		return s, errors.New("loan amount must be positive")
	}

	next := s
	next.borrower = borrower
	next.terms = terms
	next.property = property
	next.housing = housing
	next.updatedAt = now
	next.domainEvents = copyEvents(s.domainEvents)
	return next, nil
}

// Activate transitions DRAFT -> ACTIVE.
func (s Scenario) Activate(now time.Time) (Scenario, error) {
	if !s.status.Equal(valueobject.ScenarioStatusDraft) {
		return s, valueobject.ErrInvalidStatusTransition
	}
	next := s
	next.status = valueobject.ScenarioStatusActive
	next.updatedAt = now
	next.domainEvents = copyEvents(s.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewScenarioActivated(s.id, s.tenantID))
	return next, nil
}

// WithAnalysis stores an engine result snapshot under its namespaced key,
// superseding any previous snapshot for the same key.
func (s Scenario) WithAnalysis(name string, snapshot json.RawMessage, now time.Time) (Scenario, error) {
	switch name {
	case AnalysisFHAStreamline, AnalysisMIOptimizer, AnalysisRateBuydown, AnalysisDebtConsolidation:
	default:
		return s, errors.New("unknown analysis name: " + name)
	}
	if len(snapshot) == 0 {
		return s, errors.New("analysis snapshot must not be empty")
	}

	next := s
	next.analyses = make(map[string]json.RawMessage, len(s.analyses)+1)
	for k, v := range s.analyses {
		next.analyses[k] = v
	}
	next.analyses[name] = snapshot
	next.updatedAt = now
	next.domainEvents = copyEvents(s.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewAnalysisSaved(s.id, s.tenantID, name))
	return next, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (s Scenario) ID() string                         { return s.id }
func (s Scenario) TenantID() string                   { return s.tenantID }
func (s Scenario) OfficerID() string                  { return s.officerID }
func (s Scenario) Borrower() BorrowerProfile          { return s.borrower }
func (s Scenario) Terms() LoanTerms                   { return s.terms }
func (s Scenario) Property() PropertyInfo             { return s.property }
func (s Scenario) Housing() HousingExpense            { return s.housing }
func (s Scenario) Status() valueobject.ScenarioStatus { return s.status }
func (s Scenario) Version() int                       { return s.version }
func (s Scenario) CreatedAt() time.Time               { return s.createdAt }
func (s Scenario) UpdatedAt() time.Time               { return s.updatedAt }
func (s Scenario) DomainEvents() []event.DomainEvent  { return s.domainEvents }

// Analysis returns the stored snapshot for the given key, if any.
func (s Scenario) Analysis(name string) (json.RawMessage, bool) {
	snap, ok := s.analyses[name]
	return snap, ok
}

// Analyses returns a defensive copy of all stored analysis snapshots.
func (s Scenario) Analyses() map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(s.analyses))
	for k, v := range s.analyses {
		out[k] = v
	}
	return out
}

// LTV returns the loan-to-value ratio as a percentage, zero if no value.
func (s Scenario) LTV() decimal.Decimal {
	value := s.terms.PropertyValue
	if value.IsZero() {
		value = s.terms.PurchasePrice
	}
	if value.IsZero() {
		return decimal.Zero
	}
	return s.terms.Amount.Div(value).Mul(decimal.NewFromInt(100))
}

// ClearEvents returns a copy with an empty event list.
func (s Scenario) ClearEvents() Scenario {
	next := s
	next.domainEvents = nil
	return next
}

func copyEvents(evts []event.DomainEvent) []event.DomainEvent {
	if evts == nil {
		return nil
	}
	out := make([]event.DomainEvent, len(evts))
	copy(out, evts)
	return out
}
