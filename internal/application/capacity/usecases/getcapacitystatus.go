package usecases

import (
	"context"
	"fmt"

	"coachdesk/internal/domain/capacity"
	"coachdesk/internal/domain/student"
	"coachdesk/internal/shared/biztime"
	"coachdesk/internal/shared/logger"
)

type GetCapacityStatusCommand struct {
	CoachID uint
	// BypassCache forces a fresh resolution, used right after mutations.
	BypassCache bool
}

type GetCapacityStatusUseCase struct {
	assignmentRepo capacity.PlanAssignmentRepository
	planRepo       capacity.PlanDefinitionRepository
	tokenRepo      capacity.CapacityTokenRepository
	studentRepo    student.Repository
	statusCache    CapacityStatusCache
	logger         logger.Interface
}

func NewGetCapacityStatusUseCase(
	assignmentRepo capacity.PlanAssignmentRepository,
	planRepo capacity.PlanDefinitionRepository,
	tokenRepo capacity.CapacityTokenRepository,
	studentRepo student.Repository,
	statusCache CapacityStatusCache,
	logger logger.Interface,
) *GetCapacityStatusUseCase {
	return &GetCapacityStatusUseCase{
		assignmentRepo: assignmentRepo,
		planRepo:       planRepo,
		tokenRepo:      tokenRepo,
		studentRepo:    studentRepo,
		statusCache:    statusCache,
		logger:         logger,
	}
}

func (uc *GetCapacityStatusUseCase) Execute(ctx context.Context, cmd GetCapacityStatusCommand) (*capacity.CapacityStatus, error) {
	if uc.statusCache != nil && !cmd.BypassCache {
		cached, err := uc.statusCache.Get(ctx, cmd.CoachID)
		if err != nil {
			uc.logger.Warnw("capacity status cache read failed", "error", err, "coach_id", cmd.CoachID)
		} else if cached != nil {
			return cached, nil
		}
	}

	now := biztime.NowUTC()

	assignment, err := uc.assignmentRepo.GetCurrentByCoachID(ctx, cmd.CoachID)
	if err != nil {
		uc.logger.Errorw("failed to get current assignment", "error", err, "coach_id", cmd.CoachID)
		return nil, fmt.Errorf("failed to get current assignment: %w", err)
	}

	var plan *capacity.PlanDefinition
	if assignment != nil {
		plan, err = uc.planRepo.GetByID(ctx, assignment.PlanID())
		if err != nil {
			uc.logger.Errorw("failed to get plan definition", "error", err, "plan_id", assignment.PlanID())
			return nil, fmt.Errorf("failed to get plan definition: %w", err)
		}
	}

	tokens, err := uc.tokenRepo.ListByCoachID(ctx, cmd.CoachID)
	if err != nil {
		uc.logger.Errorw("failed to list capacity tokens", "error", err, "coach_id", cmd.CoachID)
		return nil, fmt.Errorf("failed to list capacity tokens: %w", err)
	}

	activeCount, err := uc.studentRepo.CountActiveByCoachID(ctx, cmd.CoachID)
	if err != nil {
		uc.logger.Errorw("failed to count active students", "error", err, "coach_id", cmd.CoachID)
		return nil, fmt.Errorf("failed to count active students: %w", err)
	}

	tokenBound, err := uc.studentRepo.CountActiveTokenBound(ctx, cmd.CoachID, now)
	if err != nil {
		uc.logger.Errorw("failed to count token-bound students", "error", err, "coach_id", cmd.CoachID)
		return nil, fmt.Errorf("failed to count token-bound students: %w", err)
	}

	status := capacity.ResolveCapacity(assignment, plan, tokens, activeCount, tokenBound, now)

	if uc.statusCache != nil {
		if err := uc.statusCache.Set(ctx, cmd.CoachID, status); err != nil {
			uc.logger.Warnw("capacity status cache write failed", "error", err, "coach_id", cmd.CoachID)
		}
	}

	return &status, nil
}
