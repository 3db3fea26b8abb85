package usecases

import (
	"context"
	"fmt"

	"coachdesk/internal/domain/capacity"
	"coachdesk/internal/shared/logger"
)

type StartRenewalCommand struct {
	CoachID uint
}

// StartRenewalUseCase moves an approved renewal into roster selection. It
// is idempotent while the selection is already underway.
type StartRenewalUseCase struct {
	assignmentRepo capacity.PlanAssignmentRepository
	txManager      TransactionManager
	logger         logger.Interface
}

func NewStartRenewalUseCase(
	assignmentRepo capacity.PlanAssignmentRepository,
	txManager TransactionManager,
	logger logger.Interface,
) *StartRenewalUseCase {
	return &StartRenewalUseCase{
		assignmentRepo: assignmentRepo,
		txManager:      txManager,
		logger:         logger,
	}
}

func (uc *StartRenewalUseCase) Execute(ctx context.Context, cmd StartRenewalCommand) (*capacity.PlanAssignment, error) {
	var assignment *capacity.PlanAssignment

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		assignment, err = uc.assignmentRepo.GetCurrentByCoachIDForUpdate(txCtx, cmd.CoachID)
		if err != nil {
			uc.logger.Errorw("failed to lock current assignment", "error", err, "coach_id", cmd.CoachID)
			return fmt.Errorf("failed to lock current assignment: %w", err)
		}
		if assignment == nil {
			return capacity.ErrNoRenewalInProgress
		}

		if err := assignment.BeginRosterSelection(); err != nil {
			return err
		}
		if err := uc.assignmentRepo.Update(txCtx, assignment); err != nil {
			return fmt.Errorf("failed to update assignment: %w", err)
		}

		uc.logger.Infow("roster selection started",
			"coach_id", cmd.CoachID,
			"assignment_sid", assignment.SID(),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return assignment, nil
}
