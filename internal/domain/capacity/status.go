package capacity

import "time"

// CapacityStatus is the externally visible capacity snapshot for a coach.
type CapacityStatus struct {
	EffectiveLimit  int     `json:"effective_limit"`
	PlanLimit       int     `json:"plan_limit"`
	TokenCapacity   int     `json:"token_capacity"`
	ActiveCount     int     `json:"active_count"`
	AvailableSlots  int     `json:"available_slots"`
	UsagePercent    float64 `json:"usage_percent"`
	CanActivateMore bool    `json:"can_activate_more"`
}

// ResolveCapacity computes the coach's capacity snapshot from the current
// slot sources. It is a pure function with no side effects, safe to call
// arbitrarily often.
//
// tokenBoundCount is the number of active students whose binding draws on
// a token unit that has not yet lapsed. Consuming a token unit moves it
// from the token's remaining quantity into this count, so the effective
// limit holds steady while the unit backs a student instead of shrinking
// once on the quantity and again on the active count.
//
// Expiration is re-checked here rather than trusting the active flags, so a
// stale not-yet-swept assignment or token never inflates the limit. The
// expiration sweeper is an optimization, not a correctness dependency.
func ResolveCapacity(assignment *PlanAssignment, plan *PlanDefinition, tokens []*CapacityToken, activeCount, tokenBoundCount int, now time.Time) CapacityStatus {
	planLimit := 0
	if assignment != nil && plan != nil && assignment.IsEffective(now) {
		planLimit = plan.StudentLimit()
	}

	tokenCapacity := tokenBoundCount
	for _, token := range tokens {
		tokenCapacity += token.AvailableQuantity(now)
	}

	effectiveLimit := planLimit + tokenCapacity

	availableSlots := effectiveLimit - activeCount
	if availableSlots < 0 {
		availableSlots = 0
	}

	usagePercent := 0.0
	if effectiveLimit > 0 {
		usagePercent = float64(activeCount) / float64(effectiveLimit)
	}

	return CapacityStatus{
		EffectiveLimit:  effectiveLimit,
		PlanLimit:       planLimit,
		TokenCapacity:   tokenCapacity,
		ActiveCount:     activeCount,
		AvailableSlots:  availableSlots,
		UsagePercent:    usagePercent,
		CanActivateMore: availableSlots > 0,
	}
}
