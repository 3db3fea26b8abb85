package models

import (
	"time"

	"coachdesk/internal/shared/constants"
)

// StudentModel is the persistence model for students. The slot binding is
// embedded as a nullable column group: all four slot_* columns are set
// while the student is active and cleared on release.
type StudentModel struct {
	ID      uint   `gorm:"primarykey"`
	SID     string `gorm:"column:sid;uniqueIndex;not null;size:50;comment:Stripe-style ID: st_xxx"`
	CoachID uint   `gorm:"not null;index:idx_student_coach_status,priority:1"`
	Name    string `gorm:"not null;size:100"`
	Email   string `gorm:"size:255"`
	Status  string `gorm:"not null;size:20;default:inactive;index:idx_student_coach_status,priority:2"`

	SlotSourceType *string    `gorm:"size:20;index:idx_student_slot_source,priority:1"`
	SlotSourceID   *uint      `gorm:"index:idx_student_slot_source,priority:2"`
	SlotBoundFrom  *time.Time
	SlotBoundUntil *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (StudentModel) TableName() string {
	return constants.TableStudents
}
