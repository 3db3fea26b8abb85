package mappers

import (
	"fmt"

	"coachdesk/internal/domain/capacity"
	"coachdesk/internal/infrastructure/persistence/models"
	"coachdesk/internal/shared/mapper"
)

type PlanDefinitionMapper interface {
	ToEntity(model *models.PlanDefinitionModel) (*capacity.PlanDefinition, error)
	ToModel(entity *capacity.PlanDefinition) (*models.PlanDefinitionModel, error)
	ToEntities(models []*models.PlanDefinitionModel) ([]*capacity.PlanDefinition, error)
}

type PlanDefinitionMapperImpl struct{}

func NewPlanDefinitionMapper() PlanDefinitionMapper {
	return &PlanDefinitionMapperImpl{}
}

func (m *PlanDefinitionMapperImpl) ToEntity(model *models.PlanDefinitionModel) (*capacity.PlanDefinition, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := capacity.ReconstructPlanDefinition(
		model.ID,
		model.SID,
		model.Name,
		model.PriceCents,
		model.StudentLimit,
		model.DurationDays,
		model.IsActive,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct plan definition entity: %w", err)
	}

	return entity, nil
}

func (m *PlanDefinitionMapperImpl) ToModel(entity *capacity.PlanDefinition) (*models.PlanDefinitionModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.PlanDefinitionModel{
		ID:           entity.ID(),
		SID:          entity.SID(),
		Name:         entity.Name(),
		PriceCents:   entity.PriceCents(),
		StudentLimit: entity.StudentLimit(),
		DurationDays: entity.DurationDays(),
		IsActive:     entity.IsActive(),
		CreatedAt:    entity.CreatedAt(),
		UpdatedAt:    entity.UpdatedAt(),
	}, nil
}

func (m *PlanDefinitionMapperImpl) ToEntities(modelList []*models.PlanDefinitionModel) ([]*capacity.PlanDefinition, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToEntity, func(model *models.PlanDefinitionModel) uint { return model.ID })
}
