package mappers

import (
	"fmt"

	"coachdesk/internal/domain/capacity"
	"coachdesk/internal/domain/student"
	"coachdesk/internal/infrastructure/persistence/models"
	"coachdesk/internal/shared/mapper"
)

type StudentMapper interface {
	ToEntity(model *models.StudentModel) (*student.Student, error)
	ToModel(entity *student.Student) (*models.StudentModel, error)
	ToEntities(models []*models.StudentModel) ([]*student.Student, error)
}

type StudentMapperImpl struct{}

func NewStudentMapper() StudentMapper {
	return &StudentMapperImpl{}
}

func (m *StudentMapperImpl) ToEntity(model *models.StudentModel) (*student.Student, error) {
	if model == nil {
		return nil, nil
	}

	var binding *capacity.SlotBinding
	if model.SlotSourceType != nil {
		if model.SlotSourceID == nil || model.SlotBoundFrom == nil || model.SlotBoundUntil == nil {
			return nil, fmt.Errorf("student %d has a partial slot binding column group", model.ID)
		}
		sourceType, err := capacity.ParseSourceType(*model.SlotSourceType)
		if err != nil {
			return nil, fmt.Errorf("student %d: %w", model.ID, err)
		}
		b, err := capacity.NewSlotBinding(sourceType, *model.SlotSourceID, *model.SlotBoundFrom, *model.SlotBoundUntil)
		if err != nil {
			return nil, fmt.Errorf("student %d: %w", model.ID, err)
		}
		binding = &b
	}

	entity, err := student.ReconstructStudent(
		model.ID,
		model.SID,
		model.CoachID,
		model.Name,
		model.Email,
		student.Status(model.Status),
		binding,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct student entity: %w", err)
	}

	return entity, nil
}

func (m *StudentMapperImpl) ToModel(entity *student.Student) (*models.StudentModel, error) {
	if entity == nil {
		return nil, nil
	}

	model := &models.StudentModel{
		ID:        entity.ID(),
		SID:       entity.SID(),
		CoachID:   entity.CoachID(),
		Name:      entity.Name(),
		Email:     entity.Email(),
		Status:    string(entity.Status()),
		CreatedAt: entity.CreatedAt(),
		UpdatedAt: entity.UpdatedAt(),
	}

	if binding := entity.Binding(); binding != nil {
		sourceType := string(binding.SourceType())
		sourceID := binding.SourceID()
		boundFrom := binding.BoundFrom()
		boundUntil := binding.BoundUntil()
		model.SlotSourceType = &sourceType
		model.SlotSourceID = &sourceID
		model.SlotBoundFrom = &boundFrom
		model.SlotBoundUntil = &boundUntil
	}

	return model, nil
}

func (m *StudentMapperImpl) ToEntities(modelList []*models.StudentModel) ([]*student.Student, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToEntity, func(model *models.StudentModel) uint { return model.ID })
}
