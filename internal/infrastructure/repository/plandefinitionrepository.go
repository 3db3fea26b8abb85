package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"coachdesk/internal/domain/capacity"
	"coachdesk/internal/infrastructure/persistence/mappers"
	"coachdesk/internal/infrastructure/persistence/models"
	"coachdesk/internal/shared/db"
	"coachdesk/internal/shared/logger"
)

type PlanDefinitionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.PlanDefinitionMapper
	logger logger.Interface
}

func NewPlanDefinitionRepository(db *gorm.DB, logger logger.Interface) capacity.PlanDefinitionRepository {
	return &PlanDefinitionRepositoryImpl{
		db:     db,
		mapper: mappers.NewPlanDefinitionMapper(),
		logger: logger,
	}
}

func (r *PlanDefinitionRepositoryImpl) Create(ctx context.Context, plan *capacity.PlanDefinition) error {
	model, err := r.mapper.ToModel(plan)
	if err != nil {
		return fmt.Errorf("failed to map plan definition entity: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create plan definition", "error", err, "sid", model.SID)
		return fmt.Errorf("failed to create plan definition: %w", err)
	}

	if err := plan.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set plan definition ID: %w", err)
	}
	return nil
}

func (r *PlanDefinitionRepositoryImpl) GetByID(ctx context.Context, id uint) (*capacity.PlanDefinition, error) {
	var model models.PlanDefinitionModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get plan definition by ID", "error", err, "id", id)
		return nil, fmt.Errorf("failed to get plan definition: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *PlanDefinitionRepositoryImpl) GetBySID(ctx context.Context, sid string) (*capacity.PlanDefinition, error) {
	var model models.PlanDefinitionModel

	if err := db.GetTxFromContext(ctx, r.db).Where("sid = ?", sid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get plan definition by SID", "error", err, "sid", sid)
		return nil, fmt.Errorf("failed to get plan definition: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *PlanDefinitionRepositoryImpl) List(ctx context.Context, activeOnly bool) ([]*capacity.PlanDefinition, error) {
	var modelList []*models.PlanDefinitionModel

	query := db.GetTxFromContext(ctx, r.db).Order("created_at ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to list plan definitions", "error", err)
		return nil, fmt.Errorf("failed to list plan definitions: %w", err)
	}

	return r.mapper.ToEntities(modelList)
}

func (r *PlanDefinitionRepositoryImpl) Update(ctx context.Context, plan *capacity.PlanDefinition) error {
	model, err := r.mapper.ToModel(plan)
	if err != nil {
		return fmt.Errorf("failed to map plan definition entity: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Save(model).Error; err != nil {
		r.logger.Errorw("failed to update plan definition", "error", err, "id", model.ID)
		return fmt.Errorf("failed to update plan definition: %w", err)
	}
	return nil
}
