package usecases

import (
	"context"
	"fmt"

	"coachdesk/internal/domain/capacity"
	"coachdesk/internal/domain/student"
	"coachdesk/internal/shared/biztime"
	apperrors "coachdesk/internal/shared/errors"
	"coachdesk/internal/shared/logger"
)

type DeactivateStudentCommand struct {
	StudentSID string
}

type DeactivateStudentResult struct {
	Student *student.Student
	// Released is false when the student was already inactive.
	Released bool
	// TokenRestored is true when the released slot was token-backed and the
	// token got its unit back. An expired token is never replenished.
	TokenRestored bool
}

// DeactivateStudentUseCase releases a student's slot. Idempotent: releasing
// an inactive student succeeds and changes nothing.
type DeactivateStudentUseCase struct {
	tokenRepo   capacity.CapacityTokenRepository
	studentRepo student.Repository
	txManager   TransactionManager
	statusCache CapacityStatusCache
	logger      logger.Interface
}

func NewDeactivateStudentUseCase(
	tokenRepo capacity.CapacityTokenRepository,
	studentRepo student.Repository,
	txManager TransactionManager,
	statusCache CapacityStatusCache,
	logger logger.Interface,
) *DeactivateStudentUseCase {
	return &DeactivateStudentUseCase{
		tokenRepo:   tokenRepo,
		studentRepo: studentRepo,
		txManager:   txManager,
		statusCache: statusCache,
		logger:      logger,
	}
}

func (uc *DeactivateStudentUseCase) Execute(ctx context.Context, cmd DeactivateStudentCommand) (*DeactivateStudentResult, error) {
	var result *DeactivateStudentResult
	var coachID uint

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
		coachID = st.CoachID()

		released := st.Deactivate()
		if released == nil {
			result = &DeactivateStudentResult{Student: st, Released: false}
			return nil
		}

		restored := false
		if released.IsTokenBacked() {
			token, err := uc.tokenRepo.GetByIDForUpdate(txCtx, released.SourceID())
			if err != nil {
				uc.logger.Errorw("failed to lock token for restore", "error", err, "token_id", released.SourceID())
				return fmt.Errorf("failed to lock token: %w", err)
			}
			if token != nil {
				if restored = token.Restore(now); restored {
					if err := uc.tokenRepo.Update(txCtx, token); err != nil {
						return fmt.Errorf("failed to update token: %w", err)
					}
				} else {
					uc.logger.Infow("released slot's token already expired, capacity not restored",
						"token_id", token.ID(),
						"student_sid", st.SID(),
					)
				}
			}
		}

		if err := uc.studentRepo.Update(txCtx, st); err != nil {
			return fmt.Errorf("failed to update student: %w", err)
		}

		uc.logger.Infow("student deactivated",
			"coach_id", coachID,
			"student_sid", st.SID(),
			"source_type", released.SourceType(),
			"source_id", released.SourceID(),
			"token_restored", restored,
		)

		result = &DeactivateStudentResult{Student: st, Released: true, TokenRestored: restored}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Released && uc.statusCache != nil {
		if err := uc.statusCache.Invalidate(ctx, coachID); err != nil {
			uc.logger.Warnw("failed to invalidate capacity status cache", "error", err, "coach_id", coachID)
		}
	}
	return result, nil
}
