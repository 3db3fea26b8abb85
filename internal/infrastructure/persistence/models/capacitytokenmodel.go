package models

import (
	"time"

	"coachdesk/internal/shared/constants"
)

// CapacityTokenModel is the persistence model for supplementary capacity
// tokens. Quantity is a consumable counter, not an immutable grant size.
type CapacityTokenModel struct {
	ID             uint      `gorm:"primarykey"`
	SID            string    `gorm:"column:sid;uniqueIndex;not null;size:50;comment:Stripe-style ID: tok_xxx"`
	CoachID        uint      `gorm:"not null;index:idx_token_coach_active,priority:1"`
	Quantity       int       `gorm:"not null"`
	ExpirationDate time.Time `gorm:"not null;index:idx_token_expiration"`
	IsActive       bool      `gorm:"not null;default:true;index:idx_token_coach_active,priority:2"`
	Reason         string    `gorm:"size:500"`
	CreatedBy      uint      `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the table name for GORM
func (CapacityTokenModel) TableName() string {
	return constants.TableCapacityTokens
}
