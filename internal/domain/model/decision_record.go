package model

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/loanworks/advisor/internal/domain/event"
)

// ---------------------------------------------------------------------------
// DecisionRecord aggregate — append-only selection snapshot
// ---------------------------------------------------------------------------

// ErrMissingProvenance is returned when a decision record lacks the
// data-source or guideline-version fields required for audit replay.
var ErrMissingProvenance = errors.New("decision record requires data source and guideline version")

// DecisionRecord is an immutable snapshot of a lender/program selection
// decision. Once written it is never updated, except for a soft voided flag
// with a reason; a new scenario run produces a new record.
type DecisionRecord struct {
	id                string
	tenantID          string
	scenarioID        string
	programID         string
	lenderName        string
	eligibilityStatus string
	totalAssistance   decimal.Decimal
	resultingCLTV     decimal.Decimal
	dataSource        string
	guidelineVersion  string
	scenarioSnapshot  json.RawMessage
	voided            bool
	voidReason        string
	createdAt         time.Time
	domainEvents      []event.DomainEvent
}

// NewDecisionRecord validates provenance and creates a record.
func NewDecisionRecord(
	tenantID, scenarioID, programID, lenderName, eligibilityStatus string,
	totalAssistance, resultingCLTV decimal.Decimal,
	dataSource, guidelineVersion string,
	scenarioSnapshot json.RawMessage,
	now time.Time,
) (DecisionRecord, error) {
	if tenantID == "" {
		return DecisionRecord{}, errors.New("tenant ID is required")
	}
	if scenarioID == "" {
		return DecisionRecord{}, errors.New("scenario ID is required")
	}
	if programID == "" {
		return DecisionRecord{}, errors.New("program ID is required")
	}
	if dataSource == "" || guidelineVersion == "" {
		return DecisionRecord{}, ErrMissingProvenance
	}
	if len(scenarioSnapshot) == 0 {
		return DecisionRecord{}, errors.New("scenario snapshot is required")
	}

	id := uuid.New().String()
	rec := DecisionRecord{
		id:                id,
		tenantID:          tenantID,
		scenarioID:        scenarioID,
		programID:         programID,
		lenderName:        lenderName,
		eligibilityStatus: eligibilityStatus,
		totalAssistance:   totalAssistance,
		resultingCLTV:     resultingCLTV,
		dataSource:        dataSource,
		guidelineVersion:  guidelineVersion,
		scenarioSnapshot:  scenarioSnapshot,
		createdAt:         now,
	}
	rec.domainEvents = append(rec.domainEvents, event.NewDecisionRecorded(
		id, tenantID, scenarioID, programID, eligibilityStatus,
	))
	return rec, nil
}

// ReconstructDecisionRecord rebuilds a DecisionRecord from persistence.
func ReconstructDecisionRecord(
	id, tenantID, scenarioID, programID, lenderName, eligibilityStatus string,
	totalAssistance, resultingCLTV decimal.Decimal,
	dataSource, guidelineVersion string,
	scenarioSnapshot json.RawMessage,
	voided bool,
	voidReason string,
	createdAt time.Time,
) DecisionRecord {
	return DecisionRecord{
		id:                id,
		tenantID:          tenantID,
		scenarioID:        scenarioID,
		programID:         programID,
		lenderName:        lenderName,
		eligibilityStatus: eligibilityStatus,
		totalAssistance:   totalAssistance,
		resultingCLTV:     resultingCLTV,
		dataSource:        dataSource,
		guidelineVersion:  guidelineVersion,
		scenarioSnapshot:  scenarioSnapshot,
		voided:            voided,
		voidReason:        voidReason,
		createdAt:         createdAt,
	}
}

// Void soft-voids the record with a reason. The only permitted mutation.
func (r DecisionRecord) Void(reason string, _ time.Time) (DecisionRecord, error) {
	if reason == "" {
		return r, errors.New("void reason is required")
	}
	if r.voided {
		return r, errors.New("decision record is already voided")
	}
	next := r
	next.voided = true
	next.voidReason = reason
	next.domainEvents = copyEvents(r.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewDecisionVoided(r.id, r.tenantID, reason))
	return next, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (r DecisionRecord) ID() string                       { return r.id }
func (r DecisionRecord) TenantID() string                 { return r.tenantID }
func (r DecisionRecord) ScenarioID() string               { return r.scenarioID }
func (r DecisionRecord) ProgramID() string                { return r.programID }
func (r DecisionRecord) LenderName() string               { return r.lenderName }
func (r DecisionRecord) EligibilityStatus() string        { return r.eligibilityStatus }
func (r DecisionRecord) TotalAssistance() decimal.Decimal { return r.totalAssistance }
func (r DecisionRecord) ResultingCLTV() decimal.Decimal   { return r.resultingCLTV }
func (r DecisionRecord) DataSource() string               { return r.dataSource }
func (r DecisionRecord) GuidelineVersion() string         { return r.guidelineVersion }
func (r DecisionRecord) ScenarioSnapshot() json.RawMessage {
	return r.scenarioSnapshot
}
func (r DecisionRecord) Voided() bool                      { return r.voided }
func (r DecisionRecord) VoidReason() string                { return r.voidReason }
func (r DecisionRecord) CreatedAt() time.Time              { return r.createdAt }
func (r DecisionRecord) DomainEvents() []event.DomainEvent { return r.domainEvents }

// ClearEvents returns a copy with an empty event list.
func (r DecisionRecord) ClearEvents() DecisionRecord {
	next := r
	next.domainEvents = nil
	return next
}
