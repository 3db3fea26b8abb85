package capacity

import (
	"fmt"
	"time"
)

// RosterState tracks the renewal reconciliation progress of an assignment.
// A freshly assigned plan with no live roster is born finalized; a renewal
// over an existing roster starts as approved and must be finalized by the
// coach choosing which students stay.
type RosterState string

const (
	RosterStateApproved  RosterState = "approved"
	RosterStatePending   RosterState = "pending"
	RosterStateFinalized RosterState = "finalized"
)

// ValidRosterStates enumerates the persistable roster states.
var ValidRosterStates = map[RosterState]bool{
	RosterStateApproved:  true,
	RosterStatePending:   true,
	RosterStateFinalized: true,
}

// PlanAssignment links a coach to a plan definition for a validity window.
// At most one assignment per coach is active at any instant. Assignments are
// never deleted; superseding or expiring flips the active flag off.
type PlanAssignment struct {
	id          uint
	sid         string
	coachID     uint
	planID      uint
	startDate   time.Time
	endDate     time.Time
	isActive    bool
	rosterState RosterState
	reason      string
	assignedBy  uint
	createdAt   time.Time
	updatedAt   time.Time
}

// NewPlanAssignment creates a new assignment for a coach.
// needsReconciliation marks renewals over a live roster: the coach must
// explicitly pick which students remain before the cycle is settled.
func NewPlanAssignment(sid string, coachID, planID uint, startDate, endDate time.Time, reason string, assignedBy uint, needsReconciliation bool) (*PlanAssignment, error) {
	if sid == "" {
		return nil, fmt.Errorf("assignment SID is required")
	}
	if coachID == 0 {
		return nil, fmt.Errorf("coach ID is required")
	}
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}
	if !endDate.After(startDate) {
		return nil, fmt.Errorf("end date must be after start date")
	}

	state := RosterStateFinalized
	if needsReconciliation {
		state = RosterStateApproved
	}

	now := time.Now().UTC()
	return &PlanAssignment{
		sid:         sid,
		coachID:     coachID,
		planID:      planID,
		startDate:   startDate,
		endDate:     endDate,
		isActive:    true,
		rosterState: state,
		reason:      reason,
		assignedBy:  assignedBy,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructPlanAssignment reconstructs an assignment from persistence.
func ReconstructPlanAssignment(
	id uint,
	sid string,
	coachID, planID uint,
	startDate, endDate time.Time,
	isActive bool,
	rosterState RosterState,
	reason string,
	assignedBy uint,
	createdAt, updatedAt time.Time,
) (*PlanAssignment, error) {
	if id == 0 {
		return nil, fmt.Errorf("assignment ID cannot be zero")
	}
	if coachID == 0 {
		return nil, fmt.Errorf("coach ID is required")
	}
	if !ValidRosterStates[rosterState] {
		return nil, fmt.Errorf("invalid roster state: %s", rosterState)
	}

	return &PlanAssignment{
		id:          id,
		sid:         sid,
		coachID:     coachID,
		planID:      planID,
		startDate:   startDate,
		endDate:     endDate,
		isActive:    isActive,
		rosterState: rosterState,
		reason:      reason,
		assignedBy:  assignedBy,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (a *PlanAssignment) ID() uint                 { return a.id }
func (a *PlanAssignment) SID() string              { return a.sid }
func (a *PlanAssignment) CoachID() uint            { return a.coachID }
func (a *PlanAssignment) PlanID() uint             { return a.planID }
func (a *PlanAssignment) StartDate() time.Time     { return a.startDate }
func (a *PlanAssignment) EndDate() time.Time       { return a.endDate }
func (a *PlanAssignment) IsActive() bool           { return a.isActive }
func (a *PlanAssignment) RosterState() RosterState { return a.rosterState }
func (a *PlanAssignment) Reason() string           { return a.reason }
func (a *PlanAssignment) AssignedBy() uint         { return a.assignedBy }
func (a *PlanAssignment) CreatedAt() time.Time     { return a.createdAt }
func (a *PlanAssignment) UpdatedAt() time.Time     { return a.updatedAt }

// SetID sets the assignment ID (only for persistence layer use)
func (a *PlanAssignment) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("assignment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("assignment ID cannot be zero")
	}
	a.id = id
	return nil
}

// IsEffective reports whether the assignment contributes capacity at the
// given instant. The active flag alone is not trusted: an expired but not
// yet swept assignment contributes nothing.
func (a *PlanAssignment) IsEffective(now time.Time) bool {
	return a.isActive && now.Before(a.endDate)
}

// IsExpired reports whether the validity window has elapsed.
func (a *PlanAssignment) IsExpired(now time.Time) bool {
	return !now.Before(a.endDate)
}

// Deactivate flips the active flag off, used both for expiry sweeping and
// for superseding by a newer assignment.
func (a *PlanAssignment) Deactivate() {
	if !a.isActive {
		return
	}
	a.isActive = false
	a.updatedAt = time.Now().UTC()
}

// BeginRosterSelection moves an approved renewal into the pending state,
// meaning the coach has started choosing which students to keep.
func (a *PlanAssignment) BeginRosterSelection() error {
	switch a.rosterState {
	case RosterStateApproved:
		a.rosterState = RosterStatePending
		a.updatedAt = time.Now().UTC()
		return nil
	case RosterStatePending:
		// already selecting, nothing to do
		return nil
	default:
		return fmt.Errorf("%w: from %s to %s", ErrInvalidRosterTransition, a.rosterState, RosterStatePending)
	}
}

// FinalizeRoster settles the renewal cycle after the roster was reconciled.
func (a *PlanAssignment) FinalizeRoster() error {
	switch a.rosterState {
	case RosterStateApproved, RosterStatePending:
		a.rosterState = RosterStateFinalized
		a.updatedAt = time.Now().UTC()
		return nil
	default:
		return fmt.Errorf("%w: from %s to %s", ErrInvalidRosterTransition, a.rosterState, RosterStateFinalized)
	}
}

// RequiresReconciliation reports whether the coach still has to settle the
// roster for this cycle.
func (a *PlanAssignment) RequiresReconciliation() bool {
	return a.rosterState != RosterStateFinalized
}

// RenewalState is the externally visible renewal workflow state.
type RenewalState string

const (
	RenewalStateNone      RenewalState = "NO_ACTIVE_RENEWAL"
	RenewalStateApproved  RenewalState = "RENEWAL_APPROVED"
	RenewalStatePending   RenewalState = "CYCLE_ASSIGNMENT_PENDING"
	RenewalStateFinalized RenewalState = "FINALIZED"
)

// RenewalStateOf derives the workflow state from the coach's current
// assignment. A nil assignment means no renewal is in flight.
func RenewalStateOf(assignment *PlanAssignment) RenewalState {
	if assignment == nil {
		return RenewalStateNone
	}
	switch assignment.RosterState() {
	case RosterStateApproved:
		return RenewalStateApproved
	case RosterStatePending:
		return RenewalStatePending
	default:
		return RenewalStateFinalized
	}
}
