package usecases

import (
	"context"
	"fmt"

	"coachdesk/internal/domain/capacity"
	"coachdesk/internal/shared/logger"
)

type GetRenewalStateCommand struct {
	CoachID uint
}

type GetRenewalStateResult struct {
	State      capacity.RenewalState
	Assignment *capacity.PlanAssignment
}

type GetRenewalStateUseCase struct {
	assignmentRepo capacity.PlanAssignmentRepository
	logger         logger.Interface
}

func NewGetRenewalStateUseCase(assignmentRepo capacity.PlanAssignmentRepository, logger logger.Interface) *GetRenewalStateUseCase {
	return &GetRenewalStateUseCase{assignmentRepo: assignmentRepo, logger: logger}
}

func (uc *GetRenewalStateUseCase) Execute(ctx context.Context, cmd GetRenewalStateCommand) (*GetRenewalStateResult, error) {
	assignment, err := uc.assignmentRepo.GetCurrentByCoachID(ctx, cmd.CoachID)
	if err != nil {
		uc.logger.Errorw("failed to get current assignment", "error", err, "coach_id", cmd.CoachID)
		return nil, fmt.Errorf("failed to get current assignment: %w", err)
	}

	return &GetRenewalStateResult{
		State:      capacity.RenewalStateOf(assignment),
		Assignment: assignment,
	}, nil
}
