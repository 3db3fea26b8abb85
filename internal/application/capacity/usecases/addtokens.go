package usecases

import (
	"context"
	"fmt"
	"time"

	"coachdesk/internal/domain/capacity"
	"coachdesk/internal/shared/biztime"
	"coachdesk/internal/shared/id"
	"coachdesk/internal/shared/logger"
)

type AddTokensCommand struct {
	CoachID  uint
	Quantity int
	// ExpirationDate defaults to DefaultValidityDays from now when zero.
	ExpirationDate time.Time
	Reason         string
	CreatedBy      uint
}

// AddTokensUseCase grants a coach supplementary capacity as one
// quantity-bearing token.
type AddTokensUseCase struct {
	tokenRepo           capacity.CapacityTokenRepository
	txManager           TransactionManager
	statusCache         CapacityStatusCache
	defaultValidityDays int
	logger              logger.Interface
}

func NewAddTokensUseCase(
	tokenRepo capacity.CapacityTokenRepository,
	txManager TransactionManager,
	statusCache CapacityStatusCache,
	defaultValidityDays int,
	logger logger.Interface,
) *AddTokensUseCase {
	return &AddTokensUseCase{
		tokenRepo:           tokenRepo,
		txManager:           txManager,
		statusCache:         statusCache,
		defaultValidityDays: defaultValidityDays,
		logger:              logger,
	}
}

func (uc *AddTokensUseCase) Execute(ctx context.Context, cmd AddTokensCommand) (*capacity.CapacityToken, error) {
	now := biztime.NowUTC()

	expiration := cmd.ExpirationDate
	if expiration.IsZero() {
		expiration = now.Add(time.Duration(uc.defaultValidityDays) * 24 * time.Hour)
	}
	if !expiration.After(now) {
		return nil, fmt.Errorf("token expiration must be in the future")
	}

	sid, err := id.GenerateWithPrefix(id.PrefixCapacityToken, id.DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token ID: %w", err)
	}

	token, err := capacity.NewCapacityToken(sid, cmd.CoachID, cmd.Quantity, expiration, cmd.Reason, cmd.CreatedBy)
	if err != nil {
		return nil, fmt.Errorf("failed to create capacity token: %w", err)
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		return uc.tokenRepo.Create(txCtx, token)
	})
	if err != nil {
		uc.logger.Errorw("failed to save capacity token", "error", err, "coach_id", cmd.CoachID)
		return nil, fmt.Errorf("failed to save capacity token: %w", err)
	}

	uc.logger.Infow("capacity tokens granted",
		"coach_id", cmd.CoachID,
		"token_sid", token.SID(),
		"quantity", cmd.Quantity,
		"expiration_date", expiration,
	)

	if uc.statusCache != nil {
		if err := uc.statusCache.Invalidate(ctx, cmd.CoachID); err != nil {
			uc.logger.Warnw("failed to invalidate capacity status cache", "error", err, "coach_id", cmd.CoachID)
		}
	}
	return token, nil
}
