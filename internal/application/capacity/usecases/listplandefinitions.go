package usecases

import (
	"context"
	"fmt"

	"coachdesk/internal/domain/capacity"
	"coachdesk/internal/shared/logger"
)

type ListPlanDefinitionsCommand struct {
	ActiveOnly bool
}

type ListPlanDefinitionsUseCase struct {
	planRepo capacity.PlanDefinitionRepository
	logger   logger.Interface
}

func NewListPlanDefinitionsUseCase(planRepo capacity.PlanDefinitionRepository, logger logger.Interface) *ListPlanDefinitionsUseCase {
	return &ListPlanDefinitionsUseCase{planRepo: planRepo, logger: logger}
}

func (uc *ListPlanDefinitionsUseCase) Execute(ctx context.Context, cmd ListPlanDefinitionsCommand) ([]*capacity.PlanDefinition, error) {
	plans, err := uc.planRepo.List(ctx, cmd.ActiveOnly)
	if err != nil {
		uc.logger.Errorw("failed to list plan definitions", "error", err)
		return nil, fmt.Errorf("failed to list plan definitions: %w", err)
	}
	return plans, nil
}
