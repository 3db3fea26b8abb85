package capacity

import (
	"errors"
	"fmt"
)

// Stable machine-readable codes surfaced to callers. UI layers key off
// these to render specific guidance, so they must never change.
const (
	CodeCapacityExceeded       = "CAPACITY_EXCEEDED"
	CodeLimitExceededOnRenewal = "LIMIT_EXCEEDED_ON_RENEWAL"
	CodeTokenExhausted         = "TOKEN_EXHAUSTED"
	CodePlanExpired            = "PLAN_EXPIRED"
)

var (
	ErrTokenExhausted          = errors.New("capacity token exhausted")
	ErrTokenExpired            = errors.New("capacity token expired")
	ErrTokenNotFound           = errors.New("capacity token not found")
	ErrAssignmentNotFound      = errors.New("plan assignment not found")
	ErrPlanNotFound            = errors.New("plan definition not found")
	ErrPlanInactive            = errors.New("plan definition inactive")
	ErrNegativeTokenQuantity   = errors.New("token quantity below zero")
	ErrStudentAlreadyBound     = errors.New("student already holds a slot binding")
	ErrNoRenewalInProgress     = errors.New("no renewal awaiting reconciliation")
	ErrInsufficientSources     = errors.New("not enough slot sources for requested allocation")
	ErrInvalidRosterTransition = errors.New("invalid roster state transition")
)

// CapacityError is the user-facing rejection of a capacity-changing request.
// It always carries the capacity snapshot at the moment of rejection so the
// caller can explain why ("upgrade your plan" vs "add a token") without
// parsing free text.
type CapacityError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Limit     int    `json:"effective_limit"`
	Active    int    `json:"active_count"`
	Available int    `json:"available_slots"`
	Requested int    `json:"requested,omitempty"`
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s: %s (limit=%d active=%d available=%d)",
		e.Code, e.Message, e.Limit, e.Active, e.Available)
}

// NewCapacityExceededError builds the rejection for an activation attempt
// that does not fit the coach's effective capacity.
func NewCapacityExceededError(status CapacityStatus, requested int) *CapacityError {
	return &CapacityError{
		Code:      CodeCapacityExceeded,
		Message:   "coach has no available slots for this activation",
		Limit:     status.EffectiveLimit,
		Active:    status.ActiveCount,
		Available: status.AvailableSlots,
		Requested: requested,
	}
}

// NewRenewalLimitError builds the rejection for a keep-list larger than the
// renewed cycle's effective limit. The engine never truncates the list.
func NewRenewalLimitError(status CapacityStatus, kept int) *CapacityError {
	return &CapacityError{
		Code:      CodeLimitExceededOnRenewal,
		Message:   "keep list exceeds the renewed plan's effective limit",
		Limit:     status.EffectiveLimit,
		Active:    status.ActiveCount,
		Available: status.AvailableSlots,
		Requested: kept,
	}
}

// NewPlanExpiredError builds the rejection for operations that require an
// effective plan assignment.
func NewPlanExpiredError(status CapacityStatus) *CapacityError {
	return &CapacityError{
		Code:      CodePlanExpired,
		Message:   "plan assignment is expired or missing, renewal required",
		Limit:     status.EffectiveLimit,
		Active:    status.ActiveCount,
		Available: status.AvailableSlots,
	}
}

// AsCapacityError extracts a CapacityError from an error chain.
func AsCapacityError(err error) (*CapacityError, bool) {
	var capErr *CapacityError
	if errors.As(err, &capErr) {
		return capErr, true
	}
	return nil, false
}
