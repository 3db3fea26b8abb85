package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"coachdesk/internal/domain/capacity"
	"coachdesk/internal/infrastructure/persistence/mappers"
	"coachdesk/internal/infrastructure/persistence/models"
	"coachdesk/internal/shared/db"
	"coachdesk/internal/shared/logger"
)

type PlanAssignmentRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.PlanAssignmentMapper
	logger logger.Interface
}

func NewPlanAssignmentRepository(db *gorm.DB, logger logger.Interface) capacity.PlanAssignmentRepository {
	return &PlanAssignmentRepositoryImpl{
		db:     db,
		mapper: mappers.NewPlanAssignmentMapper(),
		logger: logger,
	}
}

func (r *PlanAssignmentRepositoryImpl) Create(ctx context.Context, assignment *capacity.PlanAssignment) error {
	model, err := r.mapper.ToModel(assignment)
	if err != nil {
		return fmt.Errorf("failed to map plan assignment entity: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create plan assignment", "error", err, "coach_id", model.CoachID)
		return fmt.Errorf("failed to create plan assignment: %w", err)
	}

	if err := assignment.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set plan assignment ID: %w", err)
	}
	return nil
}

func (r *PlanAssignmentRepositoryImpl) GetByID(ctx context.Context, id uint) (*capacity.PlanAssignment, error) {
	var model models.PlanAssignmentModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get plan assignment by ID", "error", err, "id", id)
		return nil, fmt.Errorf("failed to get plan assignment: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *PlanAssignmentRepositoryImpl) GetCurrentByCoachID(ctx context.Context, coachID uint) (*capacity.PlanAssignment, error) {
	return r.getCurrent(ctx, coachID, false)
}

// GetCurrentByCoachIDForUpdate locks the coach's current assignment row.
// This row is the serialization point for all capacity mutations of one
// coach, so callers must hold a transaction in ctx.
func (r *PlanAssignmentRepositoryImpl) GetCurrentByCoachIDForUpdate(ctx context.Context, coachID uint) (*capacity.PlanAssignment, error) {
	return r.getCurrent(ctx, coachID, true)
}

func (r *PlanAssignmentRepositoryImpl) getCurrent(ctx context.Context, coachID uint, forUpdate bool) (*capacity.PlanAssignment, error) {
	var model models.PlanAssignmentModel

	query := db.GetTxFromContext(ctx, r.db)
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	err := query.
		Where("coach_id = ? AND is_active = ?", coachID, true).
		Order("created_at DESC").
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get current plan assignment", "error", err, "coach_id", coachID)
		return nil, fmt.Errorf("failed to get current plan assignment: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *PlanAssignmentRepositoryImpl) Update(ctx context.Context, assignment *capacity.PlanAssignment) error {
	model, err := r.mapper.ToModel(assignment)
	if err != nil {
		return fmt.Errorf("failed to map plan assignment entity: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Save(model).Error; err != nil {
		r.logger.Errorw("failed to update plan assignment", "error", err, "id", model.ID)
		return fmt.Errorf("failed to update plan assignment: %w", err)
	}
	return nil
}

func (r *PlanAssignmentRepositoryImpl) DeactivateCurrent(ctx context.Context, coachID uint) error {
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.PlanAssignmentModel{}).
		Where("coach_id = ? AND is_active = ?", coachID, true).
		Update("is_active", false).Error
	if err != nil {
		r.logger.Errorw("failed to deactivate current plan assignment", "error", err, "coach_id", coachID)
		return fmt.Errorf("failed to deactivate current plan assignment: %w", err)
	}
	return nil
}

func (r *PlanAssignmentRepositoryImpl) MarkExpired(ctx context.Context, now time.Time) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.PlanAssignmentModel{}).
		Where("is_active = ? AND end_date <= ?", true, now).
		Update("is_active", false)
	if result.Error != nil {
		r.logger.Errorw("failed to mark expired plan assignments", "error", result.Error)
		return 0, fmt.Errorf("failed to mark expired plan assignments: %w", result.Error)
	}
	return result.RowsAffected, nil
}
