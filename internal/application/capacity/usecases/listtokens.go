package usecases

import (
	"context"
	"fmt"

	"coachdesk/internal/domain/capacity"
	"coachdesk/internal/shared/logger"
)

type ListTokensCommand struct {
	CoachID uint
}

type ListTokensUseCase struct {
	tokenRepo capacity.CapacityTokenRepository
	logger    logger.Interface
}

func NewListTokensUseCase(tokenRepo capacity.CapacityTokenRepository, logger logger.Interface) *ListTokensUseCase {
	return &ListTokensUseCase{tokenRepo: tokenRepo, logger: logger}
}

func (uc *ListTokensUseCase) Execute(ctx context.Context, cmd ListTokensCommand) ([]*capacity.CapacityToken, error) {
	tokens, err := uc.tokenRepo.ListByCoachID(ctx, cmd.CoachID)
	if err != nil {
		uc.logger.Errorw("failed to list capacity tokens", "error", err, "coach_id", cmd.CoachID)
		return nil, fmt.Errorf("failed to list capacity tokens: %w", err)
	}
	return tokens, nil
}
