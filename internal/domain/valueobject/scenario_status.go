package valueobject

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// ScenarioStatus – immutable value object
// ---------------------------------------------------------------------------

// ScenarioStatus represents the lifecycle stage of a loan scenario.
type ScenarioStatus struct {
	value string
}

const (
	scenarioStatusDraft  = "DRAFT"
	scenarioStatusActive = "ACTIVE"
)

var (
	ScenarioStatusDraft  = ScenarioStatus{value: scenarioStatusDraft}
	ScenarioStatusActive = ScenarioStatus{value: scenarioStatusActive}
)

var validScenarioStatuses = map[string]ScenarioStatus{
	scenarioStatusDraft:  ScenarioStatusDraft,
	scenarioStatusActive: ScenarioStatusActive,
}

// NewScenarioStatus creates a ScenarioStatus from a raw string.
func NewScenarioStatus(s string) (ScenarioStatus, error) {
	v, ok := validScenarioStatuses[s]
	if !ok {
		return ScenarioStatus{}, fmt.Errorf("invalid scenario status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s ScenarioStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s ScenarioStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s ScenarioStatus) Equal(other ScenarioStatus) bool { return s.value == other.value }

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
