package usecases

import (
	"context"
	"errors"
	"fmt"

	"coachdesk/internal/domain/capacity"
	"coachdesk/internal/domain/student"
	"coachdesk/internal/shared/biztime"
	apperrors "coachdesk/internal/shared/errors"
	"coachdesk/internal/shared/logger"
)

type ActivateStudentCommand struct {
	CoachID    uint
	StudentSID string
}

type ActivateStudentResult struct {
	Student *student.Student
	Status  capacity.CapacityStatus
}

// ActivateStudentUseCase allocates a slot for a student. The whole
// read-check-write section runs inside one transaction with the coach's
// assignment and token rows locked, so concurrent activations for the same
// coach serialize and the limit cannot be oversubscribed.
type ActivateStudentUseCase struct {
	assignmentRepo capacity.PlanAssignmentRepository
	planRepo       capacity.PlanDefinitionRepository
	tokenRepo      capacity.CapacityTokenRepository
	studentRepo    student.Repository
	txManager      TransactionManager
	statusCache    CapacityStatusCache
	logger         logger.Interface
}

func NewActivateStudentUseCase(
	assignmentRepo capacity.PlanAssignmentRepository,
	planRepo capacity.PlanDefinitionRepository,
	tokenRepo capacity.CapacityTokenRepository,
	studentRepo student.Repository,
	txManager TransactionManager,
	statusCache CapacityStatusCache,
	logger logger.Interface,
) *ActivateStudentUseCase {
	return &ActivateStudentUseCase{
		assignmentRepo: assignmentRepo,
		planRepo:       planRepo,
		tokenRepo:      tokenRepo,
		studentRepo:    studentRepo,
		txManager:      txManager,
		statusCache:    statusCache,
		logger:         logger,
	}
}

func (uc *ActivateStudentUseCase) Execute(ctx context.Context, cmd ActivateStudentCommand) (*ActivateStudentResult, error) {
	var result *ActivateStudentResult

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		now := biztime.NowUTC()

		st, err := uc.studentRepo.GetBySID(txCtx, cmd.StudentSID)
		if err != nil {
			uc.logger.Errorw("failed to get student", "error", err, "student_sid", cmd.StudentSID)
			return fmt.Errorf("failed to get student: %w", err)
		}
		if st == nil {
			return apperrors.NewNotFoundError("student not found")
		}
		if st.CoachID() != cmd.CoachID {
			return apperrors.NewForbiddenError("student does not belong to this coach")
		}
		if st.IsActive() {
			return capacity.ErrStudentAlreadyBound
		}

		// Lock order: assignment first, then tokens. Every capacity-mutating
		// use case for one coach takes the same order.
		assignment, err := uc.assignmentRepo.GetCurrentByCoachIDForUpdate(txCtx, cmd.CoachID)
		if err != nil {
			uc.logger.Errorw("failed to lock current assignment", "error", err, "coach_id", cmd.CoachID)
			return fmt.Errorf("failed to lock current assignment: %w", err)
		}

		var plan *capacity.PlanDefinition
		if assignment != nil {
			plan, err = uc.planRepo.GetByID(txCtx, assignment.PlanID())
			if err != nil {
				uc.logger.Errorw("failed to get plan definition", "error", err, "plan_id", assignment.PlanID())
				return fmt.Errorf("failed to get plan definition: %w", err)
			}
		}

		tokens, err := uc.tokenRepo.ListUsableByCoachIDForUpdate(txCtx, cmd.CoachID, now)
		if err != nil {
			uc.logger.Errorw("failed to lock capacity tokens", "error", err, "coach_id", cmd.CoachID)
			return fmt.Errorf("failed to lock capacity tokens: %w", err)
		}

		activeCount, err := uc.studentRepo.CountActiveByCoachID(txCtx, cmd.CoachID)
		if err != nil {
			return fmt.Errorf("failed to count active students: %w", err)
		}
		tokenBound, err := uc.studentRepo.CountActiveTokenBound(txCtx, cmd.CoachID, now)
		if err != nil {
			return fmt.Errorf("failed to count token-bound students: %w", err)
		}

		status := capacity.ResolveCapacity(assignment, plan, tokens, activeCount, tokenBound, now)
		if !status.CanActivateMore {
			uc.logger.Infow("activation rejected, no available slots",
				"coach_id", cmd.CoachID,
				"student_sid", cmd.StudentSID,
				"effective_limit", status.EffectiveLimit,
				"active_count", status.ActiveCount,
			)
			// A lapsed assignment is a distinct, recoverable state: the
			// coach needs a renewal, not a bigger plan.
			if assignment != nil && assignment.IsExpired(now) {
				return capacity.NewPlanExpiredError(status)
			}
			return capacity.NewCapacityExceededError(status, 1)
		}

		planBound := 0
		if assignment != nil {
			planBound, err = uc.studentRepo.CountActiveBoundTo(txCtx, cmd.CoachID, capacity.SourceTypePlan, assignment.ID())
			if err != nil {
				return fmt.Errorf("failed to count plan-bound students: %w", err)
			}
		}

		sources, err := capacity.SelectSources(assignment, plan, planBound, tokens, 1, now)
		if err != nil {
			if errors.Is(err, capacity.ErrInsufficientSources) {
				return capacity.NewCapacityExceededError(status, 1)
			}
			return fmt.Errorf("failed to select slot source: %w", err)
		}

		source := sources[0]
		if source.Type == capacity.SourceTypeToken {
			if err := source.Token.Consume(now); err != nil {
				return fmt.Errorf("failed to consume token %d: %w", source.SourceID, err)
			}
			if err := uc.tokenRepo.Update(txCtx, source.Token); err != nil {
				return fmt.Errorf("failed to update token: %w", err)
			}
			tokenBound++
		}

		// The binding freezes the source's validity window as of now; later
		// changes to the source never shorten or extend an existing binding.
		binding, err := capacity.NewSlotBinding(source.Type, source.SourceID, now, source.ValidUntil)
		if err != nil {
			return fmt.Errorf("failed to create slot binding: %w", err)
		}
		if err := st.Activate(binding); err != nil {
			return err
		}
		if err := uc.studentRepo.Update(txCtx, st); err != nil {
			return fmt.Errorf("failed to update student: %w", err)
		}

		uc.logger.Infow("student activated",
			"coach_id", cmd.CoachID,
			"student_sid", st.SID(),
			"source_type", source.Type,
			"source_id", source.SourceID,
			"bound_until", source.ValidUntil,
		)

		status = capacity.ResolveCapacity(assignment, plan, tokens, activeCount+1, tokenBound, now)
		result = &ActivateStudentResult{Student: st, Status: status}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateCache(ctx, cmd.CoachID)
	return result, nil
}

func (uc *ActivateStudentUseCase) invalidateCache(ctx context.Context, coachID uint) {
	if uc.statusCache == nil {
		return
	}
	if err := uc.statusCache.Invalidate(ctx, coachID); err != nil {
		uc.logger.Warnw("failed to invalidate capacity status cache", "error", err, "coach_id", coachID)
	}
}
