package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"coachdesk/internal/domain/capacity"
	"coachdesk/internal/domain/student"
	"coachdesk/internal/infrastructure/persistence/mappers"
	"coachdesk/internal/infrastructure/persistence/models"
	"coachdesk/internal/shared/db"
	"coachdesk/internal/shared/logger"
)

type StudentRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.StudentMapper
	logger logger.Interface
}

func NewStudentRepository(db *gorm.DB, logger logger.Interface) student.Repository {
	return &StudentRepositoryImpl{
		db:     db,
		mapper: mappers.NewStudentMapper(),
		logger: logger,
	}
}

func (r *StudentRepositoryImpl) Create(ctx context.Context, s *student.Student) error {
	model, err := r.mapper.ToModel(s)
	if err != nil {
		return fmt.Errorf("failed to map student entity: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create student", "error", err, "coach_id", model.CoachID)
		return fmt.Errorf("failed to create student: %w", err)
	}

	if err := s.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set student ID: %w", err)
	}
	return nil
}

func (r *StudentRepositoryImpl) GetByID(ctx context.Context, id uint) (*student.Student, error) {
	var model models.StudentModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get student by ID", "error", err, "id", id)
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *StudentRepositoryImpl) GetBySID(ctx context.Context, sid string) (*student.Student, error) {
	var model models.StudentModel

	if err := db.GetTxFromContext(ctx, r.db).Where("sid = ?", sid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get student by SID", "error", err, "sid", sid)
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *StudentRepositoryImpl) ListByCoachID(ctx context.Context, coachID uint) ([]*student.Student, error) {
	var modelList []*models.StudentModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("coach_id = ?", coachID).
		Order("created_at ASC").
		Find(&modelList).Error
	if err != nil {
		r.logger.Errorw("failed to list students", "error", err, "coach_id", coachID)
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	return r.mapper.ToEntities(modelList)
}

func (r *StudentRepositoryImpl) ListActiveByCoachID(ctx context.Context, coachID uint) ([]*student.Student, error) {
	var modelList []*models.StudentModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("coach_id = ? AND status = ?", coachID, student.StatusActive).
		Order("created_at ASC").
		Find(&modelList).Error
	if err != nil {
		r.logger.Errorw("failed to list active students", "error", err, "coach_id", coachID)
		return nil, fmt.Errorf("failed to list active students: %w", err)
	}

	return r.mapper.ToEntities(modelList)
}

func (r *StudentRepositoryImpl) CountActiveByCoachID(ctx context.Context, coachID uint) (int, error) {
	var count int64

	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.StudentModel{}).
		Where("coach_id = ? AND status = ?", coachID, student.StatusActive).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to count active students", "error", err, "coach_id", coachID)
		return 0, fmt.Errorf("failed to count active students: %w", err)
	}

	return int(count), nil
}

func (r *StudentRepositoryImpl) CountActiveBoundTo(ctx context.Context, coachID uint, sourceType capacity.SourceType, sourceID uint) (int, error) {
	var count int64

	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.StudentModel{}).
		Where("coach_id = ? AND status = ? AND slot_source_type = ? AND slot_source_id = ?",
			coachID, student.StatusActive, string(sourceType), sourceID).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to count bound students", "error", err, "coach_id", coachID, "source_id", sourceID)
		return 0, fmt.Errorf("failed to count bound students: %w", err)
	}

	return int(count), nil
}

func (r *StudentRepositoryImpl) CountActiveTokenBound(ctx context.Context, coachID uint, now time.Time) (int, error) {
	var count int64

	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.StudentModel{}).
		Where("coach_id = ? AND status = ? AND slot_source_type = ? AND slot_bound_until > ?",
			coachID, student.StatusActive, string(capacity.SourceTypeToken), now).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to count token-bound students", "error", err, "coach_id", coachID)
		return 0, fmt.Errorf("failed to count token-bound students: %w", err)
	}

	return int(count), nil
}

func (r *StudentRepositoryImpl) Update(ctx context.Context, s *student.Student) error {
	model, err := r.mapper.ToModel(s)
	if err != nil {
		return fmt.Errorf("failed to map student entity: %w", err)
	}

	// Save skips nil fields on updates with struct; use a column map so a
	// released binding actually clears the slot_* columns.
	err = db.GetTxFromContext(ctx, r.db).
		Model(&models.StudentModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"status":           model.Status,
			"slot_source_type": model.SlotSourceType,
			"slot_source_id":   model.SlotSourceID,
			"slot_bound_from":  model.SlotBoundFrom,
			"slot_bound_until": model.SlotBoundUntil,
			"name":             model.Name,
			"email":            model.Email,
			"updated_at":       model.UpdatedAt,
		}).Error
	if err != nil {
		r.logger.Errorw("failed to update student", "error", err, "id", model.ID)
		return fmt.Errorf("failed to update student: %w", err)
	}
	return nil
}
