package models

import (
	"time"

	"coachdesk/internal/shared/constants"
)

// PlanDefinitionModel is the persistence model for the plan catalog.
// This is the anti-corruption layer between domain and database.
type PlanDefinitionModel struct {
	ID           uint   `gorm:"primarykey"`
	SID          string `gorm:"column:sid;uniqueIndex;not null;size:50;comment:Stripe-style ID: plan_xxx"`
	Name         string `gorm:"not null;size:100"`
	PriceCents   int64  `gorm:"not null"`
	StudentLimit int    `gorm:"not null"`
	DurationDays int    `gorm:"not null"`
	IsActive     bool   `gorm:"not null;default:true;index:idx_plan_active"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (PlanDefinitionModel) TableName() string {
	return constants.TablePlanDefinitions
}
