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

type CapacityTokenRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.CapacityTokenMapper
	logger logger.Interface
}

func NewCapacityTokenRepository(db *gorm.DB, logger logger.Interface) capacity.CapacityTokenRepository {
	return &CapacityTokenRepositoryImpl{
		db:     db,
		mapper: mappers.NewCapacityTokenMapper(),
		logger: logger,
	}
}

func (r *CapacityTokenRepositoryImpl) Create(ctx context.Context, token *capacity.CapacityToken) error {
	model, err := r.mapper.ToModel(token)
	if err != nil {
		return fmt.Errorf("failed to map capacity token entity: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create capacity token", "error", err, "coach_id", model.CoachID)
		return fmt.Errorf("failed to create capacity token: %w", err)
	}

	if err := token.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set capacity token ID: %w", err)
	}
	return nil
}

func (r *CapacityTokenRepositoryImpl) GetByID(ctx context.Context, id uint) (*capacity.CapacityToken, error) {
	return r.getByID(ctx, id, false)
}

func (r *CapacityTokenRepositoryImpl) GetByIDForUpdate(ctx context.Context, id uint) (*capacity.CapacityToken, error) {
	return r.getByID(ctx, id, true)
}

func (r *CapacityTokenRepositoryImpl) getByID(ctx context.Context, id uint, forUpdate bool) (*capacity.CapacityToken, error) {
	var model models.CapacityTokenModel

	query := db.GetTxFromContext(ctx, r.db)
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := query.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get capacity token by ID", "error", err, "id", id)
		return nil, fmt.Errorf("failed to get capacity token: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *CapacityTokenRepositoryImpl) ListByCoachID(ctx context.Context, coachID uint) ([]*capacity.CapacityToken, error) {
	var modelList []*models.CapacityTokenModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("coach_id = ?", coachID).
		Order("expiration_date ASC, id ASC").
		Find(&modelList).Error
	if err != nil {
		r.logger.Errorw("failed to list capacity tokens", "error", err, "coach_id", coachID)
		return nil, fmt.Errorf("failed to list capacity tokens: %w", err)
	}

	return r.mapper.ToEntities(modelList)
}

func (r *CapacityTokenRepositoryImpl) ListUsableByCoachID(ctx context.Context, coachID uint, now time.Time) ([]*capacity.CapacityToken, error) {
	return r.listUsable(ctx, coachID, now, false)
}

// ListUsableByCoachIDForUpdate locks the coach's usable token rows in
// allocation precedence order. Callers must hold a transaction in ctx.
func (r *CapacityTokenRepositoryImpl) ListUsableByCoachIDForUpdate(ctx context.Context, coachID uint, now time.Time) ([]*capacity.CapacityToken, error) {
	return r.listUsable(ctx, coachID, now, true)
}

func (r *CapacityTokenRepositoryImpl) listUsable(ctx context.Context, coachID uint, now time.Time, forUpdate bool) ([]*capacity.CapacityToken, error) {
	var modelList []*models.CapacityTokenModel

	query := db.GetTxFromContext(ctx, r.db)
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	err := query.
		Where("coach_id = ? AND is_active = ? AND quantity > 0 AND expiration_date > ?", coachID, true, now).
		Order("expiration_date ASC, id ASC").
		Find(&modelList).Error
	if err != nil {
		r.logger.Errorw("failed to list usable capacity tokens", "error", err, "coach_id", coachID)
		return nil, fmt.Errorf("failed to list usable capacity tokens: %w", err)
	}

	return r.mapper.ToEntities(modelList)
}

func (r *CapacityTokenRepositoryImpl) Update(ctx context.Context, token *capacity.CapacityToken) error {
	model, err := r.mapper.ToModel(token)
	if err != nil {
		return fmt.Errorf("failed to map capacity token entity: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Save(model).Error; err != nil {
		r.logger.Errorw("failed to update capacity token", "error", err, "id", model.ID)
		return fmt.Errorf("failed to update capacity token: %w", err)
	}
	return nil
}

func (r *CapacityTokenRepositoryImpl) MarkExpired(ctx context.Context, now time.Time) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.CapacityTokenModel{}).
		Where("is_active = ? AND expiration_date <= ?", true, now).
		Update("is_active", false)
	if result.Error != nil {
		r.logger.Errorw("failed to mark expired capacity tokens", "error", result.Error)
		return 0, fmt.Errorf("failed to mark expired capacity tokens: %w", result.Error)
	}
	return result.RowsAffected, nil
}
