package models

import (
	"time"

	"coachdesk/internal/shared/constants"
)

// PlanAssignmentModel is the persistence model for coach plan assignments.
// The (coach_id, is_active) index backs the "current assignment" lookup
// that every capacity operation starts from.
type PlanAssignmentModel struct {
	ID          uint      `gorm:"primarykey"`
	SID         string    `gorm:"column:sid;uniqueIndex;not null;size:50;comment:Stripe-style ID: pa_xxx"`
	CoachID     uint      `gorm:"not null;index:idx_coach_active,priority:1"`
	PlanID      uint      `gorm:"not null;index:idx_assignment_plan"`
	StartDate   time.Time `gorm:"not null"`
	EndDate     time.Time `gorm:"not null;index:idx_assignment_end_date"`
	IsActive    bool      `gorm:"not null;default:true;index:idx_coach_active,priority:2"`
	RosterState string    `gorm:"not null;size:20;default:finalized"`
	Reason      string    `gorm:"size:500"`
	AssignedBy  uint      `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for GORM
func (PlanAssignmentModel) TableName() string {
	return constants.TablePlanAssignments
}
