package usecases

import (
	"context"
	"fmt"

	"coachdesk/internal/domain/capacity"
	"coachdesk/internal/shared/id"
	"coachdesk/internal/shared/logger"
)

type CreatePlanDefinitionCommand struct {
	Name         string
	PriceCents   int64
	StudentLimit int
	DurationDays int
}

type CreatePlanDefinitionUseCase struct {
	planRepo capacity.PlanDefinitionRepository
	logger   logger.Interface
}

func NewCreatePlanDefinitionUseCase(planRepo capacity.PlanDefinitionRepository, logger logger.Interface) *CreatePlanDefinitionUseCase {
	return &CreatePlanDefinitionUseCase{planRepo: planRepo, logger: logger}
}

func (uc *CreatePlanDefinitionUseCase) Execute(ctx context.Context, cmd CreatePlanDefinitionCommand) (*capacity.PlanDefinition, error) {
	sid, err := id.GenerateWithPrefix(id.PrefixPlanDefinition, id.DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate plan ID: %w", err)
	}

	plan, err := capacity.NewPlanDefinition(sid, cmd.Name, cmd.PriceCents, cmd.StudentLimit, cmd.DurationDays)
	if err != nil {
		return nil, fmt.Errorf("failed to create plan definition: %w", err)
	}

	if err := uc.planRepo.Create(ctx, plan); err != nil {
		uc.logger.Errorw("failed to save plan definition", "error", err, "name", cmd.Name)
		return nil, fmt.Errorf("failed to save plan definition: %w", err)
	}

	uc.logger.Infow("plan definition created",
		"plan_sid", plan.SID(),
		"name", plan.Name(),
		"student_limit", plan.StudentLimit(),
	)
	return plan, nil
}
