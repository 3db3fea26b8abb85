package capacity

import (
	"context"
	"time"
)

// PlanDefinitionRepository persists the plan catalog.
type PlanDefinitionRepository interface {
	Create(ctx context.Context, plan *PlanDefinition) error
	GetByID(ctx context.Context, id uint) (*PlanDefinition, error)
	GetBySID(ctx context.Context, sid string) (*PlanDefinition, error)
	List(ctx context.Context, activeOnly bool) ([]*PlanDefinition, error)
	Update(ctx context.Context, plan *PlanDefinition) error
}

// PlanAssignmentRepository persists coach plan assignments.
//
// The ForUpdate variant acquires a row lock inside the surrounding
// transaction; it is the serialization point for all capacity-mutating
// operations of one coach.
type PlanAssignmentRepository interface {
	Create(ctx context.Context, assignment *PlanAssignment) error
	GetByID(ctx context.Context, id uint) (*PlanAssignment, error)
	// GetCurrentByCoachID returns the coach's active assignment, or nil.
	GetCurrentByCoachID(ctx context.Context, coachID uint) (*PlanAssignment, error)
	GetCurrentByCoachIDForUpdate(ctx context.Context, coachID uint) (*PlanAssignment, error)
	Update(ctx context.Context, assignment *PlanAssignment) error
	// DeactivateCurrent flips the active flag off on the coach's current
	// assignment, superseding it. No-op when none exists.
	DeactivateCurrent(ctx context.Context, coachID uint) error
	// MarkExpired deactivates every active assignment whose end date has
	// passed, returning the number of rows touched.
	MarkExpired(ctx context.Context, now time.Time) (int64, error)
}

// CapacityTokenRepository persists supplementary capacity tokens.
type CapacityTokenRepository interface {
	Create(ctx context.Context, token *CapacityToken) error
	GetByID(ctx context.Context, id uint) (*CapacityToken, error)
	GetByIDForUpdate(ctx context.Context, id uint) (*CapacityToken, error)
	ListByCoachID(ctx context.Context, coachID uint) ([]*CapacityToken, error)
	// ListUsableByCoachID returns active, unexpired, non-empty tokens
	// ordered by expiration date then ID, the allocation precedence order.
	ListUsableByCoachID(ctx context.Context, coachID uint, now time.Time) ([]*CapacityToken, error)
	ListUsableByCoachIDForUpdate(ctx context.Context, coachID uint, now time.Time) ([]*CapacityToken, error)
	Update(ctx context.Context, token *CapacityToken) error
	// MarkExpired deactivates every active token whose expiration has
	// passed, returning the number of rows touched.
	MarkExpired(ctx context.Context, now time.Time) (int64, error)
}
