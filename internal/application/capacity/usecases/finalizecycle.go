package usecases

import (
	"context"
	"errors"
	"fmt"

	"coachdesk/internal/domain/capacity"
	"coachdesk/internal/domain/student"
	"coachdesk/internal/shared/biztime"
	"coachdesk/internal/shared/logger"
)

type FinalizeCycleCommand struct {
	CoachID uint
	// KeepStudentSIDs selects which of the currently active students keep
	// their slot into the new cycle. Everyone else is released.
	KeepStudentSIDs []string
}

type FinalizeCycleResult struct {
	Assignment *capacity.PlanAssignment
	Kept       []*student.Student
	Released   []*student.Student
	Status     capacity.CapacityStatus
}

// FinalizeCycleUseCase settles a renewal: the whole roster is released,
// kept students are re-bound against the renewed sources, and the
// assignment's roster state moves to finalized, all in one transaction.
// A keep list that does not fit the renewed effective limit rejects the
// entire finalization and nothing changes.
type FinalizeCycleUseCase struct {
	assignmentRepo capacity.PlanAssignmentRepository
	planRepo       capacity.PlanDefinitionRepository
	tokenRepo      capacity.CapacityTokenRepository
	studentRepo    student.Repository
	txManager      TransactionManager
	statusCache    CapacityStatusCache
	logger         logger.Interface
}

func NewFinalizeCycleUseCase(
	assignmentRepo capacity.PlanAssignmentRepository,
	planRepo capacity.PlanDefinitionRepository,
	tokenRepo capacity.CapacityTokenRepository,
	studentRepo student.Repository,
	txManager TransactionManager,
	statusCache CapacityStatusCache,
	logger logger.Interface,
) *FinalizeCycleUseCase {
	return &FinalizeCycleUseCase{
		assignmentRepo: assignmentRepo,
		planRepo:       planRepo,
		tokenRepo:      tokenRepo,
		studentRepo:    studentRepo,
		txManager:      txManager,
		statusCache:    statusCache,
		logger:         logger,
	}
}

func (uc *FinalizeCycleUseCase) Execute(ctx context.Context, cmd FinalizeCycleCommand) (*FinalizeCycleResult, error) {
	var result *FinalizeCycleResult

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		now := biztime.NowUTC()

		assignment, err := uc.assignmentRepo.GetCurrentByCoachIDForUpdate(txCtx, cmd.CoachID)
		if err != nil {
			uc.logger.Errorw("failed to lock current assignment", "error", err, "coach_id", cmd.CoachID)
			return fmt.Errorf("failed to lock current assignment: %w", err)
		}
		if assignment == nil || !assignment.RequiresReconciliation() {
			return capacity.ErrNoRenewalInProgress
		}

		plan, err := uc.planRepo.GetByID(txCtx, assignment.PlanID())
		if err != nil {
			return fmt.Errorf("failed to get plan definition: %w", err)
		}

		tokens, err := uc.tokenRepo.ListUsableByCoachIDForUpdate(txCtx, cmd.CoachID, now)
		if err != nil {
			return fmt.Errorf("failed to lock capacity tokens: %w", err)
		}
		tokenByID := make(map[uint]*capacity.CapacityToken, len(tokens))
		for _, token := range tokens {
			tokenByID[token.ID()] = token
		}

		active, err := uc.studentRepo.ListActiveByCoachID(txCtx, cmd.CoachID)
		if err != nil {
			return fmt.Errorf("failed to list active students: %w", err)
		}
		activeBySID := make(map[string]*student.Student, len(active))
		for _, st := range active {
			activeBySID[st.SID()] = st
		}

		keep := make([]*student.Student, 0, len(cmd.KeepStudentSIDs))
		seen := make(map[string]bool, len(cmd.KeepStudentSIDs))
		for _, sid := range cmd.KeepStudentSIDs {
			if seen[sid] {
				continue
			}
			seen[sid] = true
			st, ok := activeBySID[sid]
			if !ok {
				return fmt.Errorf("student %s is not in the active roster", sid)
			}
			keep = append(keep, st)
		}

		// Release the whole roster first so the renewed sources are judged
		// from a clean slate. Token units flow back unless expired; drained
		// tokens reactivate and become selectable again below.
		touchedTokens := make(map[uint]*capacity.CapacityToken)
		for _, st := range active {
			released := st.Deactivate()
			if released == nil || !released.IsTokenBacked() {
				continue
			}
			token, ok := tokenByID[released.SourceID()]
			if !ok {
				token, err = uc.tokenRepo.GetByIDForUpdate(txCtx, released.SourceID())
				if err != nil {
					return fmt.Errorf("failed to lock token %d: %w", released.SourceID(), err)
				}
				if token == nil {
					continue
				}
				tokenByID[token.ID()] = token
			}
			if token.Restore(now) {
				touchedTokens[token.ID()] = token
				if !containsToken(tokens, token.ID()) {
					tokens = append(tokens, token)
				}
			}
		}

		// The whole roster was just released, so no consumed token units
		// remain outstanding at this point.
		status := capacity.ResolveCapacity(assignment, plan, tokens, 0, 0, now)
		if len(keep) > status.EffectiveLimit {
			uc.logger.Infow("cycle finalization rejected, keep list exceeds limit",
				"coach_id", cmd.CoachID,
				"keep_count", len(keep),
				"effective_limit", status.EffectiveLimit,
			)
			return capacity.NewRenewalLimitError(status, len(keep))
		}

		sources, err := capacity.SelectSources(assignment, plan, 0, tokens, len(keep), now)
		if err != nil {
			if errors.Is(err, capacity.ErrInsufficientSources) {
				return capacity.NewRenewalLimitError(status, len(keep))
			}
			return fmt.Errorf("failed to select slot sources: %w", err)
		}

		tokenBound := 0
		for i, st := range keep {
			source := sources[i]
			if source.Type == capacity.SourceTypeToken {
				if err := source.Token.Consume(now); err != nil {
					return fmt.Errorf("failed to consume token %d: %w", source.SourceID, err)
				}
				touchedTokens[source.SourceID] = source.Token
				tokenBound++
			}
			binding, err := capacity.NewSlotBinding(source.Type, source.SourceID, now, source.ValidUntil)
			if err != nil {
				return fmt.Errorf("failed to create slot binding: %w", err)
			}
			if err := st.Activate(binding); err != nil {
				return err
			}
		}

		if err := assignment.FinalizeRoster(); err != nil {
			return err
		}
		if err := uc.assignmentRepo.Update(txCtx, assignment); err != nil {
			return fmt.Errorf("failed to update assignment: %w", err)
		}
		for _, token := range touchedTokens {
			if err := uc.tokenRepo.Update(txCtx, token); err != nil {
				return fmt.Errorf("failed to update token: %w", err)
			}
		}
		for _, st := range active {
			if err := uc.studentRepo.Update(txCtx, st); err != nil {
				return fmt.Errorf("failed to update student: %w", err)
			}
		}

		released := make([]*student.Student, 0, len(active)-len(keep))
		for _, st := range active {
			if !seen[st.SID()] {
				released = append(released, st)
			}
		}

		uc.logger.Infow("cycle finalized",
			"coach_id", cmd.CoachID,
			"assignment_sid", assignment.SID(),
			"kept", len(keep),
			"released", len(released),
		)

		result = &FinalizeCycleResult{
			Assignment: assignment,
			Kept:       keep,
			Released:   released,
			Status:     capacity.ResolveCapacity(assignment, plan, tokens, len(keep), tokenBound, now),
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

func containsToken(tokens []*capacity.CapacityToken, tokenID uint) bool {
	for _, token := range tokens {
		if token.ID() == tokenID {
			return true
		}
	}
	return false
}
