package usecases

import (
	"context"
	"fmt"

	"coachdesk/internal/domain/student"
	"coachdesk/internal/shared/id"
	"coachdesk/internal/shared/logger"
)

type CreateStudentCommand struct {
	CoachID uint
	Name    string
	Email   string
}

// CreateStudentUseCase registers a student with a coach. Students are
// created inactive; occupying a slot is a separate, capacity-checked step.
type CreateStudentUseCase struct {
	studentRepo student.Repository
	logger      logger.Interface
}

func NewCreateStudentUseCase(studentRepo student.Repository, logger logger.Interface) *CreateStudentUseCase {
	return &CreateStudentUseCase{studentRepo: studentRepo, logger: logger}
}

func (uc *CreateStudentUseCase) Execute(ctx context.Context, cmd CreateStudentCommand) (*student.Student, error) {
	sid, err := id.GenerateWithPrefix(id.PrefixStudent, id.DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate student ID: %w", err)
	}

	st, err := student.NewStudent(sid, cmd.CoachID, cmd.Name, cmd.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to create student: %w", err)
	}

	if err := uc.studentRepo.Create(ctx, st); err != nil {
		uc.logger.Errorw("failed to save student", "error", err, "coach_id", cmd.CoachID)
		return nil, fmt.Errorf("failed to save student: %w", err)
	}

	uc.logger.Infow("student registered",
		"coach_id", cmd.CoachID,
		"student_sid", st.SID(),
	)
	return st, nil
}
