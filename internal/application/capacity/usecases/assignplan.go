package usecases

import (
	"context"
	"fmt"
	"time"

	"coachdesk/internal/domain/capacity"
	"coachdesk/internal/domain/student"
	"coachdesk/internal/shared/biztime"
	"coachdesk/internal/shared/id"
	"coachdesk/internal/shared/logger"
)

type AssignPlanCommand struct {
	CoachID uint
	PlanSID string
	// StartDate defaults to now when zero.
	StartDate time.Time
	// DurationDays overrides the plan's default cycle length when non-nil.
	DurationDays *int
	Reason       string
	AssignedBy   uint
}

type AssignPlanResult struct {
	Assignment *capacity.PlanAssignment
	Plan       *capacity.PlanDefinition
	// RequiresReconciliation is true when a live roster predates this
	// assignment and the coach still has to settle it.
	RequiresReconciliation bool
}

// AssignPlanUseCase grants a coach a new plan cycle, superseding any prior
// assignment. When the coach already has active students the new assignment
// starts in the approved roster state and waits for cycle reconciliation;
// with an empty roster there is nothing to reconcile and it finalizes
// immediately.
type AssignPlanUseCase struct {
	assignmentRepo capacity.PlanAssignmentRepository
	planRepo       capacity.PlanDefinitionRepository
	studentRepo    student.Repository
	txManager      TransactionManager
	statusCache    CapacityStatusCache
	logger         logger.Interface
}

func NewAssignPlanUseCase(
	assignmentRepo capacity.PlanAssignmentRepository,
	planRepo capacity.PlanDefinitionRepository,
	studentRepo student.Repository,
	txManager TransactionManager,
	statusCache CapacityStatusCache,
	logger logger.Interface,
) *AssignPlanUseCase {
	return &AssignPlanUseCase{
		assignmentRepo: assignmentRepo,
		planRepo:       planRepo,
		studentRepo:    studentRepo,
		txManager:      txManager,
		statusCache:    statusCache,
		logger:         logger,
	}
}

func (uc *AssignPlanUseCase) Execute(ctx context.Context, cmd AssignPlanCommand) (*AssignPlanResult, error) {
	var result *AssignPlanResult

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		plan, err := uc.planRepo.GetBySID(txCtx, cmd.PlanSID)
		if err != nil {
			uc.logger.Errorw("failed to get plan definition", "error", err, "plan_sid", cmd.PlanSID)
			return fmt.Errorf("failed to get plan definition: %w", err)
		}
		if plan == nil {
			return capacity.ErrPlanNotFound
		}
		if !plan.IsActive() {
			return capacity.ErrPlanInactive
		}

		activeCount, err := uc.studentRepo.CountActiveByCoachID(txCtx, cmd.CoachID)
		if err != nil {
			return fmt.Errorf("failed to count active students: %w", err)
		}

		if err := uc.assignmentRepo.DeactivateCurrent(txCtx, cmd.CoachID); err != nil {
			return fmt.Errorf("failed to supersede current assignment: %w", err)
		}

		startDate := cmd.StartDate
		if startDate.IsZero() {
			startDate = biztime.NowUTC()
		}
		durationDays := plan.DurationDays()
		if cmd.DurationDays != nil {
			durationDays = *cmd.DurationDays
		}
		if durationDays <= 0 {
			return fmt.Errorf("assignment duration must be positive")
		}
		endDate := startDate.Add(time.Duration(durationDays) * 24 * time.Hour)

		needsReconciliation := activeCount > 0
		sid, err := id.GenerateWithPrefix(id.PrefixPlanAssignment, id.DefaultLength)
		if err != nil {
			return fmt.Errorf("failed to generate assignment ID: %w", err)
		}

		assignment, err := capacity.NewPlanAssignment(sid, cmd.CoachID, plan.ID(), startDate, endDate, cmd.Reason, cmd.AssignedBy, needsReconciliation)
		if err != nil {
			return fmt.Errorf("failed to create plan assignment: %w", err)
		}
		if err := uc.assignmentRepo.Create(txCtx, assignment); err != nil {
			return fmt.Errorf("failed to save plan assignment: %w", err)
		}

		uc.logger.Infow("plan assigned",
			"coach_id", cmd.CoachID,
			"plan_sid", plan.SID(),
			"assignment_sid", assignment.SID(),
			"start_date", startDate,
			"end_date", endDate,
			"requires_reconciliation", needsReconciliation,
		)

		result = &AssignPlanResult{
			Assignment:             assignment,
			Plan:                   plan,
			RequiresReconciliation: needsReconciliation,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.statusCache != nil {
		if err := uc.statusCache.Invalidate(ctx, cmd.CoachID); err != nil {
			uc.logger.Warnw("failed to invalidate capacity status cache", "error", err, "coach_id", cmd.CoachID)
		}
	}
	return result, nil
}
