package usecases

import (
	"context"
	"fmt"

	"coachdesk/internal/domain/student"
	apperrors "coachdesk/internal/shared/errors"
	"coachdesk/internal/shared/logger"
)

type GetStudentCommand struct {
	StudentSID string
}

type GetStudentUseCase struct {
	studentRepo student.Repository
	logger      logger.Interface
}

func NewGetStudentUseCase(studentRepo student.Repository, logger logger.Interface) *GetStudentUseCase {
	return &GetStudentUseCase{studentRepo: studentRepo, logger: logger}
}

func (uc *GetStudentUseCase) Execute(ctx context.Context, cmd GetStudentCommand) (*student.Student, error) {
	st, err := uc.studentRepo.GetBySID(ctx, cmd.StudentSID)
	if err != nil {
		uc.logger.Errorw("failed to get student", "error", err, "student_sid", cmd.StudentSID)
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	if st == nil {
		return nil, apperrors.NewNotFoundError("student not found")
	}
	return st, nil
}
