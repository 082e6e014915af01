package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// DedupeAction – immutable value object
// ---------------------------------------------------------------------------

// DedupeAction records how a tradeline was treated by duplicate resolution.
type DedupeAction struct {
	value string
}

const (
	dedupeActionNone           = "NONE"
	dedupeActionAutoRemoved    = "AUTO_REMOVED"
	dedupeActionManualExcluded = "MANUAL_EXCLUDED"
	dedupeActionKeepBoth       = "OVERRIDDEN_KEEP_BOTH"
)

var (
	DedupeActionNone           = DedupeAction{value: dedupeActionNone}
	DedupeActionAutoRemoved    = DedupeAction{value: dedupeActionAutoRemoved}
	DedupeActionManualExcluded = DedupeAction{value: dedupeActionManualExcluded}
	DedupeActionKeepBoth       = DedupeAction{value: dedupeActionKeepBoth}
)

var validDedupeActions = map[string]DedupeAction{
	dedupeActionNone:           DedupeActionNone,
	dedupeActionAutoRemoved:    DedupeActionAutoRemoved,
	dedupeActionManualExcluded: DedupeActionManualExcluded,
	dedupeActionKeepBoth:       DedupeActionKeepBoth,
}

// NewDedupeAction creates a DedupeAction from a raw string.
func NewDedupeAction(s string) (DedupeAction, error) {
	v, ok := validDedupeActions[s]
	if !ok {
		return DedupeAction{}, fmt.Errorf("invalid dedupe action: %q", s)
	}
	return v, nil
}

// String returns the string representation.
func (a DedupeAction) String() string { return a.value }

// IsZero returns true if the action has not been initialised.
func (a DedupeAction) IsZero() bool { return a.value == "" }

// Equal returns true when both actions carry the same value.
func (a DedupeAction) Equal(other DedupeAction) bool { return a.value == other.value }

// Excluded reports whether the tradeline no longer counts toward debt ratios.
func (a DedupeAction) Excluded() bool {
	return a.value == dedupeActionAutoRemoved || a.value == dedupeActionManualExcluded
}
