package dto

import (
	"time"

	"coachdesk/internal/domain/capacity"
	"coachdesk/internal/domain/student"
)

type PlanDefinitionDTO struct {
	SID          string    `json:"id"`
	Name         string    `json:"name"`
	PriceCents   int64     `json:"price_cents"`
	StudentLimit int       `json:"student_limit"`
	DurationDays int       `json:"duration_days"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type PlanAssignmentDTO struct {
	SID         string             `json:"id"`
	CoachID     uint               `json:"coach_id"`
	Plan        *PlanDefinitionDTO `json:"plan,omitempty"`
	StartDate   time.Time          `json:"start_date"`
	EndDate     time.Time          `json:"end_date"`
	IsActive    bool               `json:"is_active"`
	RosterState string             `json:"roster_state"`
	Reason      string             `json:"reason,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

type CapacityTokenDTO struct {
	SID            string    `json:"id"`
	Quantity       int       `json:"quantity"`
	ExpirationDate time.Time `json:"expiration_date"`
	IsActive       bool      `json:"is_active"`
	Reason         string    `json:"reason,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type SlotBindingDTO struct {
	SourceType string    `json:"source_type"`
	SourceID   uint      `json:"source_id"`
	BoundFrom  time.Time `json:"bound_from"`
	BoundUntil time.Time `json:"bound_until"`
}

type StudentDTO struct {
	SID       string          `json:"id"`
	CoachID   uint            `json:"coach_id"`
	Name      string          `json:"name"`
	Email     string          `json:"email,omitempty"`
	Status    string          `json:"status"`
	Binding   *SlotBindingDTO `json:"binding,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

type RenewalStatusDTO struct {
	State         string     `json:"state"`
	AssignmentSID string     `json:"assignment_id,omitempty"`
	CycleEndDate  *time.Time `json:"cycle_end_date,omitempty"`
}

func ToPlanDefinitionDTO(plan *capacity.PlanDefinition) *PlanDefinitionDTO {
	if plan == nil {
		return nil
	}
	return &PlanDefinitionDTO{
		SID:          plan.SID(),
		Name:         plan.Name(),
		PriceCents:   plan.PriceCents(),
		StudentLimit: plan.StudentLimit(),
		DurationDays: plan.DurationDays(),
		IsActive:     plan.IsActive(),
		CreatedAt:    plan.CreatedAt(),
		UpdatedAt:    plan.UpdatedAt(),
	}
}

func ToPlanDefinitionDTOs(plans []*capacity.PlanDefinition) []*PlanDefinitionDTO {
	dtos := make([]*PlanDefinitionDTO, 0, len(plans))
	for _, plan := range plans {
		dtos = append(dtos, ToPlanDefinitionDTO(plan))
	}
	return dtos
}

func ToPlanAssignmentDTO(assignment *capacity.PlanAssignment, plan *capacity.PlanDefinition) *PlanAssignmentDTO {
	if assignment == nil {
		return nil
	}
	return &PlanAssignmentDTO{
		SID:         assignment.SID(),
		CoachID:     assignment.CoachID(),
		Plan:        ToPlanDefinitionDTO(plan),
		StartDate:   assignment.StartDate(),
		EndDate:     assignment.EndDate(),
		IsActive:    assignment.IsActive(),
		RosterState: string(assignment.RosterState()),
		Reason:      assignment.Reason(),
		CreatedAt:   assignment.CreatedAt(),
	}
}

func ToCapacityTokenDTO(token *capacity.CapacityToken) *CapacityTokenDTO {
	if token == nil {
		return nil
	}
	return &CapacityTokenDTO{
		SID:            token.SID(),
		Quantity:       token.Quantity(),
		ExpirationDate: token.ExpirationDate(),
		IsActive:       token.IsActive(),
		Reason:         token.Reason(),
		CreatedAt:      token.CreatedAt(),
	}
}

func ToCapacityTokenDTOs(tokens []*capacity.CapacityToken) []*CapacityTokenDTO {
	dtos := make([]*CapacityTokenDTO, 0, len(tokens))
	for _, token := range tokens {
		dtos = append(dtos, ToCapacityTokenDTO(token))
	}
	return dtos
}

func ToSlotBindingDTO(binding *capacity.SlotBinding) *SlotBindingDTO {
	if binding == nil {
		return nil
	}
	return &SlotBindingDTO{
		SourceType: string(binding.SourceType()),
		SourceID:   binding.SourceID(),
		BoundFrom:  binding.BoundFrom(),
		BoundUntil: binding.BoundUntil(),
	}
}

func ToStudentDTO(s *student.Student) *StudentDTO {
	if s == nil {
		return nil
	}
	return &StudentDTO{
		SID:       s.SID(),
		CoachID:   s.CoachID(),
		Name:      s.Name(),
		Email:     s.Email(),
		Status:    string(s.Status()),
		Binding:   ToSlotBindingDTO(s.Binding()),
		CreatedAt: s.CreatedAt(),
	}
}

func ToStudentDTOs(students []*student.Student) []*StudentDTO {
	dtos := make([]*StudentDTO, 0, len(students))
	for _, s := range students {
		dtos = append(dtos, ToStudentDTO(s))
	}
	return dtos
}

func ToRenewalStatusDTO(assignment *capacity.PlanAssignment) *RenewalStatusDTO {
	dto := &RenewalStatusDTO{
		State: string(capacity.RenewalStateOf(assignment)),
	}
	if assignment != nil {
		dto.AssignmentSID = assignment.SID()
		end := assignment.EndDate()
		dto.CycleEndDate = &end
	}
	return dto
}
