package mappers

import (
	"fmt"

	"coachdesk/internal/domain/capacity"
	"coachdesk/internal/infrastructure/persistence/models"
	"coachdesk/internal/shared/mapper"
)

type PlanAssignmentMapper interface {
	ToEntity(model *models.PlanAssignmentModel) (*capacity.PlanAssignment, error)
	ToModel(entity *capacity.PlanAssignment) (*models.PlanAssignmentModel, error)
	ToEntities(models []*models.PlanAssignmentModel) ([]*capacity.PlanAssignment, error)
}

type PlanAssignmentMapperImpl struct{}

func NewPlanAssignmentMapper() PlanAssignmentMapper {
	return &PlanAssignmentMapperImpl{}
}

func (m *PlanAssignmentMapperImpl) ToEntity(model *models.PlanAssignmentModel) (*capacity.PlanAssignment, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := capacity.ReconstructPlanAssignment(
		model.ID,
		model.SID,
		model.CoachID,
		model.PlanID,
		model.StartDate,
		model.EndDate,
		model.IsActive,
		capacity.RosterState(model.RosterState),
		model.Reason,
		model.AssignedBy,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct plan assignment entity: %w", err)
	}

	return entity, nil
}

func (m *PlanAssignmentMapperImpl) ToModel(entity *capacity.PlanAssignment) (*models.PlanAssignmentModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.PlanAssignmentModel{
		ID:          entity.ID(),
		SID:         entity.SID(),
		CoachID:     entity.CoachID(),
		PlanID:      entity.PlanID(),
		StartDate:   entity.StartDate(),
		EndDate:     entity.EndDate(),
		IsActive:    entity.IsActive(),
		RosterState: string(entity.RosterState()),
		Reason:      entity.Reason(),
		AssignedBy:  entity.AssignedBy(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}, nil
}

func (m *PlanAssignmentMapperImpl) ToEntities(modelList []*models.PlanAssignmentModel) ([]*capacity.PlanAssignment, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToEntity, func(model *models.PlanAssignmentModel) uint { return model.ID })
}
