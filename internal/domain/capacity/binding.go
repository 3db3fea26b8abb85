package capacity

import (
	"fmt"
	"time"
)

// SourceType identifies which kind of slot backs a binding.
type SourceType string

const (
	SourceTypePlan  SourceType = "plan"
	SourceTypeToken SourceType = "token"
)

// ParseSourceType parses a persisted source type string.
func ParseSourceType(value string) (SourceType, error) {
	switch SourceType(value) {
	case SourceTypePlan, SourceTypeToken:
		return SourceType(value), nil
	default:
		return "", fmt.Errorf("invalid slot source type: %s", value)
	}
}

// SlotBinding records which concrete slot backs an active student. The
// validity window of the source is frozen onto the binding at bind time, so
// later mutations of the source (token reuse, renewal) never retroactively
// change an already-bound student's window.
type SlotBinding struct {
	sourceType SourceType
	sourceID   uint
	boundFrom  time.Time
	boundUntil time.Time
}

// NewSlotBinding creates a binding for a freshly allocated slot.
func NewSlotBinding(sourceType SourceType, sourceID uint, boundFrom, boundUntil time.Time) (SlotBinding, error) {
	if sourceType != SourceTypePlan && sourceType != SourceTypeToken {
		return SlotBinding{}, fmt.Errorf("invalid slot source type: %s", sourceType)
	}
	if sourceID == 0 {
		return SlotBinding{}, fmt.Errorf("slot source ID is required")
	}
	if !boundUntil.After(boundFrom) {
		return SlotBinding{}, fmt.Errorf("binding window must end after it starts")
	}

	return SlotBinding{
		sourceType: sourceType,
		sourceID:   sourceID,
		boundFrom:  boundFrom,
		boundUntil: boundUntil,
	}, nil
}

func (b SlotBinding) SourceType() SourceType { return b.sourceType }
func (b SlotBinding) SourceID() uint         { return b.sourceID }
func (b SlotBinding) BoundFrom() time.Time   { return b.boundFrom }
func (b SlotBinding) BoundUntil() time.Time  { return b.boundUntil }

// IsTokenBacked reports whether the binding consumes token quantity.
func (b SlotBinding) IsTokenBacked() bool {
	return b.sourceType == SourceTypeToken
}
