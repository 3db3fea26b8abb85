package usecases

import (
	"context"
	"fmt"

	"coachdesk/internal/domain/student"
	"coachdesk/internal/shared/logger"
)

type ListStudentsCommand struct {
	CoachID    uint
	ActiveOnly bool
}

type ListStudentsUseCase struct {
	studentRepo student.Repository
	logger      logger.Interface
}

func NewListStudentsUseCase(studentRepo student.Repository, logger logger.Interface) *ListStudentsUseCase {
	return &ListStudentsUseCase{studentRepo: studentRepo, logger: logger}
}

func (uc *ListStudentsUseCase) Execute(ctx context.Context, cmd ListStudentsCommand) ([]*student.Student, error) {
	var (
		students []*student.Student
		err      error
	)
	if cmd.ActiveOnly {
		students, err = uc.studentRepo.ListActiveByCoachID(ctx, cmd.CoachID)
	} else {
		students, err = uc.studentRepo.ListByCoachID(ctx, cmd.CoachID)
	}
	if err != nil {
		uc.logger.Errorw("failed to list students", "error", err, "coach_id", cmd.CoachID)
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}
