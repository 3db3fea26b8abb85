package usecases

import (
	"context"
	"fmt"

	"coachdesk/internal/domain/capacity"
	"coachdesk/internal/shared/biztime"
	"coachdesk/internal/shared/logger"
)

type SweepExpiredResult struct {
	ExpiredAssignments int64
	ExpiredTokens      int64
}

// SweepExpiredUseCase deactivates assignments and tokens whose validity
// window has elapsed. The sweep is advisory: the resolver and allocator
// re-check expiry on every read, so a late or missed sweep never grants
// capacity that should not exist.
type SweepExpiredUseCase struct {
	assignmentRepo capacity.PlanAssignmentRepository
	tokenRepo      capacity.CapacityTokenRepository
	logger         logger.Interface
}

func NewSweepExpiredUseCase(
	assignmentRepo capacity.PlanAssignmentRepository,
	tokenRepo capacity.CapacityTokenRepository,
	logger logger.Interface,
) *SweepExpiredUseCase {
	return &SweepExpiredUseCase{
		assignmentRepo: assignmentRepo,
		tokenRepo:      tokenRepo,
		logger:         logger,
	}
}

func (uc *SweepExpiredUseCase) Execute(ctx context.Context) (*SweepExpiredResult, error) {
	now := biztime.NowUTC()

	expiredAssignments, err := uc.assignmentRepo.MarkExpired(ctx, now)
	if err != nil {
		uc.logger.Errorw("failed to sweep expired assignments", "error", err)
		return nil, fmt.Errorf("failed to sweep expired assignments: %w", err)
	}

	expiredTokens, err := uc.tokenRepo.MarkExpired(ctx, now)
	if err != nil {
		uc.logger.Errorw("failed to sweep expired tokens", "error", err)
		return nil, fmt.Errorf("failed to sweep expired tokens: %w", err)
	}

	if expiredAssignments > 0 || expiredTokens > 0 {
		uc.logger.Infow("expiration sweep completed",
			"expired_assignments", expiredAssignments,
			"expired_tokens", expiredTokens,
		)
	}

	return &SweepExpiredResult{
		ExpiredAssignments: expiredAssignments,
		ExpiredTokens:      expiredTokens,
	}, nil
}
