// Package student holds the student aggregate: the coach's trainee whose
// active status is gated by the capacity engine.
package student

import (
	"fmt"
	"time"

	"coachdesk/internal/domain/capacity"
)

// Status is the student lifecycle status.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// ValidStatuses enumerates the persistable statuses.
var ValidStatuses = map[Status]bool{
	StatusActive:   true,
	StatusInactive: true,
}

// Student is a coach's trainee. An active student always carries exactly
// one slot binding; an inactive student carries none.
type Student struct {
	id        uint
	sid       string
	coachID   uint
	name      string
	email     string
	status    Status
	binding   *capacity.SlotBinding
	createdAt time.Time
	updatedAt time.Time
}

// NewStudent creates a new, inactive student for a coach. Activation goes
// through the slot allocator, never through construction.
func NewStudent(sid string, coachID uint, name, email string) (*Student, error) {
	if sid == "" {
		return nil, fmt.Errorf("student SID is required")
	}
	if coachID == 0 {
		return nil, fmt.Errorf("coach ID is required")
	}
	if name == "" {
		return nil, fmt.Errorf("student name is required")
	}

	now := time.Now().UTC()
	return &Student{
		sid:       sid,
		coachID:   coachID,
		name:      name,
		email:     email,
		status:    StatusInactive,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructStudent reconstructs a student from persistence.
func ReconstructStudent(
	id uint,
	sid string,
	coachID uint,
	name, email string,
	status Status,
	binding *capacity.SlotBinding,
	createdAt, updatedAt time.Time,
) (*Student, error) {
	if id == 0 {
		return nil, fmt.Errorf("student ID cannot be zero")
	}
	if coachID == 0 {
		return nil, fmt.Errorf("coach ID is required")
	}
	if !ValidStatuses[status] {
		return nil, fmt.Errorf("invalid student status: %s", status)
	}

	return &Student{
		id:        id,
		sid:       sid,
		coachID:   coachID,
		name:      name,
		email:     email,
		status:    status,
		binding:   binding,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (s *Student) ID() uint                       { return s.id }
func (s *Student) SID() string                    { return s.sid }
func (s *Student) CoachID() uint                  { return s.coachID }
func (s *Student) Name() string                   { return s.name }
func (s *Student) Email() string                  { return s.email }
func (s *Student) Status() Status                 { return s.status }
func (s *Student) Binding() *capacity.SlotBinding { return s.binding }
func (s *Student) CreatedAt() time.Time           { return s.createdAt }
func (s *Student) UpdatedAt() time.Time           { return s.updatedAt }

// SetID sets the student ID (only for persistence layer use)
func (s *Student) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("student ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("student ID cannot be zero")
	}
	s.id = id
	return nil
}

// IsActive reports whether the student currently occupies a slot.
func (s *Student) IsActive() bool {
	return s.status == StatusActive
}

// Activate binds the student to an allocated slot and marks them active.
// A student already holding a binding cannot be activated again.
func (s *Student) Activate(binding capacity.SlotBinding) error {
	if s.status == StatusActive || s.binding != nil {
		return capacity.ErrStudentAlreadyBound
	}
	s.status = StatusActive
	s.binding = &binding
	s.updatedAt = time.Now().UTC()
	return nil
}

// Deactivate clears the binding and marks the student inactive, returning
// the released binding so the caller can restore token capacity. It is
// idempotent: deactivating an unbound student returns nil.
func (s *Student) Deactivate() *capacity.SlotBinding {
	released := s.binding
	if s.status == StatusInactive && released == nil {
		return nil
	}
	s.status = StatusInactive
	s.binding = nil
	s.updatedAt = time.Now().UTC()
	return released
}
