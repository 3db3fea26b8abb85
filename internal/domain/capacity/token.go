package capacity

import (
	"fmt"
	"time"
)

// CapacityToken is a supplementary, independently expiring capacity grant.
// Quantity is a counter, not a boolean: each activation backed by the token
// decrements it, each release before expiry restores it. A token drained to
// zero is flipped inactive; restoring a unit reactivates it unless expired.
type CapacityToken struct {
	id             uint
	sid            string
	coachID        uint
	quantity       int
	expirationDate time.Time
	isActive       bool
	reason         string
	createdBy      uint
	createdAt      time.Time
	updatedAt      time.Time
}

// NewCapacityToken creates a new token grant for a coach.
func NewCapacityToken(sid string, coachID uint, quantity int, expirationDate time.Time, reason string, createdBy uint) (*CapacityToken, error) {
	if sid == "" {
		return nil, fmt.Errorf("token SID is required")
	}
	if coachID == 0 {
		return nil, fmt.Errorf("coach ID is required")
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("token quantity must be positive")
	}

	now := time.Now().UTC()
	if !expirationDate.After(now) {
		return nil, fmt.Errorf("token expiration must be in the future")
	}

	return &CapacityToken{
		sid:            sid,
		coachID:        coachID,
		quantity:       quantity,
		expirationDate: expirationDate,
		isActive:       true,
		reason:         reason,
		createdBy:      createdBy,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// ReconstructCapacityToken reconstructs a token from persistence.
func ReconstructCapacityToken(
	id uint,
	sid string,
	coachID uint,
	quantity int,
	expirationDate time.Time,
	isActive bool,
	reason string,
	createdBy uint,
	createdAt, updatedAt time.Time,
) (*CapacityToken, error) {
	if id == 0 {
		return nil, fmt.Errorf("token ID cannot be zero")
	}
	if coachID == 0 {
		return nil, fmt.Errorf("coach ID is required")
	}
	if quantity < 0 {
		return nil, fmt.Errorf("%w: token %d has quantity %d", ErrNegativeTokenQuantity, id, quantity)
	}

	return &CapacityToken{
		id:             id,
		sid:            sid,
		coachID:        coachID,
		quantity:       quantity,
		expirationDate: expirationDate,
		isActive:       isActive,
		reason:         reason,
		createdBy:      createdBy,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

func (t *CapacityToken) ID() uint                  { return t.id }
func (t *CapacityToken) SID() string               { return t.sid }
func (t *CapacityToken) CoachID() uint             { return t.coachID }
func (t *CapacityToken) Quantity() int             { return t.quantity }
func (t *CapacityToken) ExpirationDate() time.Time { return t.expirationDate }
func (t *CapacityToken) IsActive() bool            { return t.isActive }
func (t *CapacityToken) Reason() string            { return t.reason }
func (t *CapacityToken) CreatedBy() uint           { return t.createdBy }
func (t *CapacityToken) CreatedAt() time.Time      { return t.createdAt }
func (t *CapacityToken) UpdatedAt() time.Time      { return t.updatedAt }

// SetID sets the token ID (only for persistence layer use)
func (t *CapacityToken) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("token ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("token ID cannot be zero")
	}
	t.id = id
	return nil
}

// IsExpired reports whether the token's validity window has elapsed.
func (t *CapacityToken) IsExpired(now time.Time) bool {
	return !now.Before(t.expirationDate)
}

// IsUsable reports whether the token can back a new activation right now.
// The active flag alone is not trusted; expiry is re-checked.
func (t *CapacityToken) IsUsable(now time.Time) bool {
	return t.isActive && t.quantity > 0 && !t.IsExpired(now)
}

// AvailableQuantity returns the capacity this token contributes at the
// given instant.
func (t *CapacityToken) AvailableQuantity(now time.Time) int {
	if !t.isActive || t.IsExpired(now) {
		return 0
	}
	return t.quantity
}

// Consume burns one unit of the token for a new binding. When the last
// unit is consumed the token is flipped inactive.
func (t *CapacityToken) Consume(now time.Time) error {
	if t.IsExpired(now) {
		return ErrTokenExpired
	}
	if !t.isActive || t.quantity <= 0 {
		return ErrTokenExhausted
	}

	t.quantity--
	if t.quantity == 0 {
		t.isActive = false
	}
	t.updatedAt = time.Now().UTC()
	return nil
}

// Restore returns one unit to the token after a release. Restoration
// reactivates a drained token. An expired token is not replenished: the
// capacity is simply lost, and false is returned.
func (t *CapacityToken) Restore(now time.Time) bool {
	if t.IsExpired(now) {
		return false
	}

	t.quantity++
	t.isActive = true
	t.updatedAt = time.Now().UTC()
	return true
}

// Expire flips the active flag off once the validity window has elapsed.
// Quantity is untouched; bound students keep their frozen validity window.
func (t *CapacityToken) Expire() {
	if !t.isActive {
		return
	}
	t.isActive = false
	t.updatedAt = time.Now().UTC()
}
