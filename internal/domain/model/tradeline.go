package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/loanworks/advisor/internal/domain/event"
	"github.com/loanworks/advisor/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Tradeline aggregate (one liability line under a scenario)
// ---------------------------------------------------------------------------

// QualifyingPayment is the resolved student-loan qualifying payment attached
// to a tradeline. Rationale is required loan-file documentation, not
// cosmetic.
type QualifyingPayment struct {
	Method    string
	Payment   decimal.Decimal
	Rationale string
}

// Tradeline is an immutable aggregate. Mutations return a new copy.
type Tradeline struct {
	id                string
	scenarioID        string
	tenantID          string
	creditor          string
	debtType          valueobject.DebtType
	balance           decimal.Decimal
	reportedPayment   decimal.Decimal
	documentedPayment decimal.Decimal
	accountLast4      string
	accountHash       string
	accountStatus     string
	idrZeroVerified   bool
	studentPayment    *QualifyingPayment

	dedupeAction   valueobject.DedupeAction
	dedupeGroupID  string
	decisionReason string

	version      int
	createdAt    time.Time
	updatedAt    time.Time
	domainEvents []event.DomainEvent
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewTradeline creates a tradeline from import or manual entry.
func NewTradeline(
	scenarioID, tenantID, creditor string,
	debtType valueobject.DebtType,
	balance, reportedPayment, documentedPayment decimal.Decimal,
	accountLast4, accountHash, accountStatus string,
	idrZeroVerified bool,
	now time.Time,
) (Tradeline, error) {
	if scenarioID == "" {
		return Tradeline{}, errors.New("scenario ID is required")
	}
	if tenantID == "" {
		return Tradeline{}, errors.New("tenant ID is required")
	}
	if creditor == "" {
		return Tradeline{}, errors.New("creditor name is required")
	}
	if debtType.IsZero() {
		return Tradeline{}, errors.New("debt type is required")
	}
	if balance.IsNegative() {
		return Tradeline{}, errors.New("balance must not be negative")
	}

	return Tradeline{
		id:                uuid.New().String(),
		scenarioID:        scenarioID,
		tenantID:          tenantID,
		creditor:          creditor,
		debtType:          debtType,
		balance:           balance,
		reportedPayment:   reportedPayment,
		documentedPayment: documentedPayment,
		accountLast4:      accountLast4,
		accountHash:       accountHash,
		accountStatus:     accountStatus,
		idrZeroVerified:   idrZeroVerified,
		dedupeAction:      valueobject.DedupeActionNone,
		version:           1,
		createdAt:         now,
		updatedAt:         now,
	}, nil
}

// ReconstructTradeline rebuilds a Tradeline aggregate from persistence.
func ReconstructTradeline(
	id, scenarioID, tenantID, creditor string,
	debtType valueobject.DebtType,
	balance, reportedPayment, documentedPayment decimal.Decimal,
	accountLast4, accountHash, accountStatus string,
	idrZeroVerified bool,
	studentPayment *QualifyingPayment,
	dedupeAction valueobject.DedupeAction,
	dedupeGroupID, decisionReason string,
	version int,
	createdAt, updatedAt time.Time,
) Tradeline {
	return Tradeline{
		id:                id,
		scenarioID:        scenarioID,
		tenantID:          tenantID,
		creditor:          creditor,
		debtType:          debtType,
		balance:           balance,
		reportedPayment:   reportedPayment,
		documentedPayment: documentedPayment,
		accountLast4:      accountLast4,
		accountHash:       accountHash,
		accountStatus:     accountStatus,
		idrZeroVerified:   idrZeroVerified,
		studentPayment:    studentPayment,
		dedupeAction:      dedupeAction,
		dedupeGroupID:     dedupeGroupID,
		decisionReason:    decisionReason,
		version:           version,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions
// ---------------------------------------------------------------------------

// MarkAutoRemoved excludes the tradeline as the REMOVE member of a
// high-confidence duplicate group. No user interaction is involved.
func (t Tradeline) MarkAutoRemoved(groupID string, now time.Time) (Tradeline, error) {
	if !t.dedupeAction.Equal(valueobject.DedupeActionNone) {
		return t, errors.New("tradeline already has a dedupe decision")
	}
	next := t
	next.dedupeAction = valueobject.DedupeActionAutoRemoved
	next.dedupeGroupID = groupID
	next.updatedAt = now
	next.domainEvents = copyEvents(t.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewTradelineExcluded(
		t.id, t.tenantID, groupID, valueobject.DedupeActionAutoRemoved.String(), "",
	))
	return next, nil
}

// MarkManualExcluded excludes the tradeline by user decision.
func (t Tradeline) MarkManualExcluded(groupID, reason string, now time.Time) (Tradeline, error) {
	if !t.dedupeAction.Equal(valueobject.DedupeActionNone) {
		return t, errors.New("tradeline already has a dedupe decision")
	}
	next := t
	next.dedupeAction = valueobject.DedupeActionManualExcluded
	next.dedupeGroupID = groupID
	next.decisionReason = reason
	next.updatedAt = now
	next.domainEvents = copyEvents(t.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewTradelineExcluded(
		t.id, t.tenantID, groupID, valueobject.DedupeActionManualExcluded.String(), reason,
	))
	return next, nil
}

// OverrideKeepBoth records a user decision to keep a recommended-remove
// tradeline. A reason is mandatory.
func (t Tradeline) OverrideKeepBoth(groupID, reason string, now time.Time) (Tradeline, error) {
	if reason == "" {
		return t, errors.New("keep-both override requires a reason")
	}
	if !t.dedupeAction.Equal(valueobject.DedupeActionNone) {
		return t, errors.New("tradeline already has a dedupe decision")
	}
	next := t
	next.dedupeAction = valueobject.DedupeActionKeepBoth
	next.dedupeGroupID = groupID
	next.decisionReason = reason
	next.updatedAt = now
	next.domainEvents = copyEvents(t.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewTradelineKeptBoth(t.id, t.tenantID, groupID, reason))
	return next, nil
}

// WithQualifyingPayment attaches the resolved student-loan qualifying payment.
func (t Tradeline) WithQualifyingPayment(qp QualifyingPayment, now time.Time) (Tradeline, error) {
	if !t.debtType.Equal(valueobject.DebtTypeStudentLoan) {
		return t, errors.New("qualifying payment applies to student-loan tradelines only")
	}
	next := t
	next.studentPayment = &QualifyingPayment{Method: qp.Method, Payment: qp.Payment, Rationale: qp.Rationale}
	next.updatedAt = now
	next.domainEvents = copyEvents(t.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewStudentLoanPaymentResolved(
		t.id, t.tenantID, qp.Method, qp.Payment,
	))
	return next, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (t Tradeline) ID() string                             { return t.id }
func (t Tradeline) ScenarioID() string                     { return t.scenarioID }
func (t Tradeline) TenantID() string                       { return t.tenantID }
func (t Tradeline) Creditor() string                       { return t.creditor }
func (t Tradeline) DebtType() valueobject.DebtType         { return t.debtType }
func (t Tradeline) Balance() decimal.Decimal               { return t.balance }
func (t Tradeline) ReportedPayment() decimal.Decimal       { return t.reportedPayment }
func (t Tradeline) DocumentedPayment() decimal.Decimal     { return t.documentedPayment }
func (t Tradeline) AccountLast4() string                   { return t.accountLast4 }
func (t Tradeline) AccountHash() string                    { return t.accountHash }
func (t Tradeline) AccountStatus() string                  { return t.accountStatus }
func (t Tradeline) IDRZeroVerified() bool                  { return t.idrZeroVerified }
func (t Tradeline) DedupeAction() valueobject.DedupeAction { return t.dedupeAction }
func (t Tradeline) DedupeGroupID() string                  { return t.dedupeGroupID }
func (t Tradeline) DecisionReason() string                 { return t.decisionReason }
func (t Tradeline) Version() int                           { return t.version }
func (t Tradeline) CreatedAt() time.Time                   { return t.createdAt }
func (t Tradeline) UpdatedAt() time.Time                   { return t.updatedAt }
func (t Tradeline) DomainEvents() []event.DomainEvent      { return t.domainEvents }

// StudentPayment returns the resolved qualifying payment, if any.
func (t Tradeline) StudentPayment() (QualifyingPayment, bool) {
	if t.studentPayment == nil {
		return QualifyingPayment{}, false
	}
	return *t.studentPayment, true
}

// Excluded reports whether the tradeline is out of debt-ratio consideration.
func (t Tradeline) Excluded() bool { return t.dedupeAction.Excluded() }

// MonthlyDebt returns the payment that counts toward ratios: the resolved
// student-loan qualifying payment when present, else the documented payment,
// else the reported payment. Excluded tradelines contribute zero.
func (t Tradeline) MonthlyDebt() decimal.Decimal {
	if t.Excluded() {
		return decimal.Zero
	}
	if t.studentPayment != nil {
		return t.studentPayment.Payment
	}
	if t.documentedPayment.IsPositive() {
		return t.documentedPayment
	}
	return t.reportedPayment
}

// ClearEvents returns a copy with an empty event list.
func (t Tradeline) ClearEvents() Tradeline {
	next := t
	next.domainEvents = nil
	return next
}
