package student

import (
	"context"
	"time"

	"coachdesk/internal/domain/capacity"
)

// Repository persists students and their slot bindings.
type Repository interface {
	Create(ctx context.Context, s *Student) error
	GetByID(ctx context.Context, id uint) (*Student, error)
	GetBySID(ctx context.Context, sid string) (*Student, error)
	ListByCoachID(ctx context.Context, coachID uint) ([]*Student, error)
	ListActiveByCoachID(ctx context.Context, coachID uint) ([]*Student, error)
	// CountActiveByCoachID counts students occupying a slot right now.
	CountActiveByCoachID(ctx context.Context, coachID uint) (int, error)
	// CountActiveBoundTo counts active students whose binding points at the
	// given slot source, used to derive remaining plan room.
	CountActiveBoundTo(ctx context.Context, coachID uint, sourceType capacity.SourceType, sourceID uint) (int, error)
	// CountActiveTokenBound counts active students backed by a token unit
	// whose bound-until instant is still in the future. These consumed
	// units still count toward the coach's effective limit.
	CountActiveTokenBound(ctx context.Context, coachID uint, now time.Time) (int, error)
	Update(ctx context.Context, s *Student) error
}
