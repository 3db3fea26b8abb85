// Package capacity holds the slot allocation domain: plan definitions,
// plan assignments, capacity tokens, slot bindings and the pure capacity
// resolution and source selection logic built on top of them.
package capacity

import (
	"fmt"
	"time"
)

// PlanDefinition is a catalog entry describing a purchasable plan.
// It is immutable once referenced by an assignment; admins may only
// deactivate it to stop new assignments.
type PlanDefinition struct {
	id           uint
	sid          string
	name         string
	priceCents   int64
	studentLimit int
	durationDays int
	isActive     bool
	createdAt    time.Time
	updatedAt    time.Time
}

// NewPlanDefinition creates a new plan definition.
func NewPlanDefinition(sid, name string, priceCents int64, studentLimit, durationDays int) (*PlanDefinition, error) {
	if sid == "" {
		return nil, fmt.Errorf("plan SID is required")
	}
	if name == "" {
		return nil, fmt.Errorf("plan name is required")
	}
	if priceCents < 0 {
		return nil, fmt.Errorf("plan price cannot be negative")
	}
	if studentLimit < 0 {
		return nil, fmt.Errorf("student limit cannot be negative")
	}
	if durationDays <= 0 {
		return nil, fmt.Errorf("duration must be positive")
	}

	now := time.Now().UTC()
	return &PlanDefinition{
		sid:          sid,
		name:         name,
		priceCents:   priceCents,
		studentLimit: studentLimit,
		durationDays: durationDays,
		isActive:     true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructPlanDefinition reconstructs a plan definition from persistence.
func ReconstructPlanDefinition(
	id uint,
	sid, name string,
	priceCents int64,
	studentLimit, durationDays int,
	isActive bool,
	createdAt, updatedAt time.Time,
) (*PlanDefinition, error) {
	if id == 0 {
		return nil, fmt.Errorf("plan definition ID cannot be zero")
	}
	if studentLimit < 0 {
		return nil, fmt.Errorf("student limit cannot be negative")
	}

	return &PlanDefinition{
		id:           id,
		sid:          sid,
		name:         name,
		priceCents:   priceCents,
		studentLimit: studentLimit,
		durationDays: durationDays,
		isActive:     isActive,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (p *PlanDefinition) ID() uint             { return p.id }
func (p *PlanDefinition) SID() string          { return p.sid }
func (p *PlanDefinition) Name() string         { return p.name }
func (p *PlanDefinition) PriceCents() int64    { return p.priceCents }
func (p *PlanDefinition) StudentLimit() int    { return p.studentLimit }
func (p *PlanDefinition) DurationDays() int    { return p.durationDays }
func (p *PlanDefinition) IsActive() bool       { return p.isActive }
func (p *PlanDefinition) CreatedAt() time.Time { return p.createdAt }
func (p *PlanDefinition) UpdatedAt() time.Time { return p.updatedAt }

// SetID sets the plan definition ID (only for persistence layer use)
func (p *PlanDefinition) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("plan definition ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("plan definition ID cannot be zero")
	}
	p.id = id
	return nil
}

// Deactivate removes the plan from the catalog for new assignments.
// Existing assignments keep referencing it.
func (p *PlanDefinition) Deactivate() {
	if !p.isActive {
		return
	}
	p.isActive = false
	p.updatedAt = time.Now().UTC()
}
