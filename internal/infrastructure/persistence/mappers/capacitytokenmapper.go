package mappers

import (
	"fmt"

	"coachdesk/internal/domain/capacity"
	"coachdesk/internal/infrastructure/persistence/models"
	"coachdesk/internal/shared/mapper"
)

type CapacityTokenMapper interface {
	ToEntity(model *models.CapacityTokenModel) (*capacity.CapacityToken, error)
	ToModel(entity *capacity.CapacityToken) (*models.CapacityTokenModel, error)
	ToEntities(models []*models.CapacityTokenModel) ([]*capacity.CapacityToken, error)
}

type CapacityTokenMapperImpl struct{}

func NewCapacityTokenMapper() CapacityTokenMapper {
	return &CapacityTokenMapperImpl{}
}

func (m *CapacityTokenMapperImpl) ToEntity(model *models.CapacityTokenModel) (*capacity.CapacityToken, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := capacity.ReconstructCapacityToken(
		model.ID,
		model.SID,
		model.CoachID,
		model.Quantity,
		model.ExpirationDate,
		model.IsActive,
		model.Reason,
		model.CreatedBy,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct capacity token entity: %w", err)
	}

	return entity, nil
}

func (m *CapacityTokenMapperImpl) ToModel(entity *capacity.CapacityToken) (*models.CapacityTokenModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.CapacityTokenModel{
		ID:             entity.ID(),
		SID:            entity.SID(),
		CoachID:        entity.CoachID(),
		Quantity:       entity.Quantity(),
		ExpirationDate: entity.ExpirationDate(),
		IsActive:       entity.IsActive(),
		Reason:         entity.Reason(),
		CreatedBy:      entity.CreatedBy(),
		CreatedAt:      entity.CreatedAt(),
		UpdatedAt:      entity.UpdatedAt(),
	}, nil
}

func (m *CapacityTokenMapperImpl) ToEntities(modelList []*models.CapacityTokenModel) ([]*capacity.CapacityToken, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToEntity, func(model *models.CapacityTokenModel) uint { return model.ID })
}
