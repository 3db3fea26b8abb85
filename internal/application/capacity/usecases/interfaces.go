package usecases

import (
	"context"

	"coachdesk/internal/domain/capacity"
)

// TransactionManager runs a function inside a database transaction. The
// context passed to fn carries the transaction; repositories pick it up
// automatically.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CapacityStatusCache caches resolved capacity snapshots per coach. It is
// purely an optimization: every mutating use case invalidates, and a miss
// or cache failure falls back to resolving from the store.
type CapacityStatusCache interface {
	// Get returns the cached snapshot, or nil on a miss.
	Get(ctx context.Context, coachID uint) (*capacity.CapacityStatus, error)
	Set(ctx context.Context, coachID uint, status capacity.CapacityStatus) error
	Invalidate(ctx context.Context, coachID uint) error
}
