package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coachdesk/internal/domain/capacity"
	"coachdesk/internal/domain/student"
	apperrors "coachdesk/internal/shared/errors"
	"coachdesk/internal/shared/logger"
)

type mockStudentRepository struct {
	CreateFunc                func(ctx context.Context, s *student.Student) error
	GetByIDFunc               func(ctx context.Context, id uint) (*student.Student, error)
	GetBySIDFunc              func(ctx context.Context, sid string) (*student.Student, error)
	ListByCoachIDFunc         func(ctx context.Context, coachID uint) ([]*student.Student, error)
	ListActiveByCoachIDFunc   func(ctx context.Context, coachID uint) ([]*student.Student, error)
	CountActiveByCoachIDFunc  func(ctx context.Context, coachID uint) (int, error)
	CountActiveBoundToFunc    func(ctx context.Context, coachID uint, sourceType capacity.SourceType, sourceID uint) (int, error)
	CountActiveTokenBoundFunc func(ctx context.Context, coachID uint, now time.Time) (int, error)
	UpdateFunc                func(ctx context.Context, s *student.Student) error
}

func (m *mockStudentRepository) Create(ctx context.Context, s *student.Student) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, s)
	}
	return nil
}

func (m *mockStudentRepository) GetByID(ctx context.Context, id uint) (*student.Student, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockStudentRepository) GetBySID(ctx context.Context, sid string) (*student.Student, error) {
	if m.GetBySIDFunc != nil {
		return m.GetBySIDFunc(ctx, sid)
	}
	return nil, nil
}

func (m *mockStudentRepository) ListByCoachID(ctx context.Context, coachID uint) ([]*student.Student, error) {
	if m.ListByCoachIDFunc != nil {
		return m.ListByCoachIDFunc(ctx, coachID)
	}
	return nil, nil
}

func (m *mockStudentRepository) ListActiveByCoachID(ctx context.Context, coachID uint) ([]*student.Student, error) {
	if m.ListActiveByCoachIDFunc != nil {
		return m.ListActiveByCoachIDFunc(ctx, coachID)
	}
	return nil, nil
}

func (m *mockStudentRepository) CountActiveByCoachID(ctx context.Context, coachID uint) (int, error) {
	if m.CountActiveByCoachIDFunc != nil {
		return m.CountActiveByCoachIDFunc(ctx, coachID)
	}
	return 0, nil
}

func (m *mockStudentRepository) CountActiveBoundTo(ctx context.Context, coachID uint, sourceType capacity.SourceType, sourceID uint) (int, error) {
	if m.CountActiveBoundToFunc != nil {
		return m.CountActiveBoundToFunc(ctx, coachID, sourceType, sourceID)
	}
	return 0, nil
}

func (m *mockStudentRepository) CountActiveTokenBound(ctx context.Context, coachID uint, now time.Time) (int, error) {
	if m.CountActiveTokenBoundFunc != nil {
		return m.CountActiveTokenBoundFunc(ctx, coachID, now)
	}
	return 0, nil
}

func (m *mockStudentRepository) Update(ctx context.Context, s *student.Student) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, s)
	}
	return nil
}

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)                   {}
func (m *mockLogger) Info(msg string, args ...any)                    {}
func (m *mockLogger) Warn(msg string, args ...any)                    {}
func (m *mockLogger) Error(msg string, args ...any)                   {}
func (m *mockLogger) Fatal(msg string, args ...any)                   {}
func (m *mockLogger) With(args ...any) logger.Interface               { return m }
func (m *mockLogger) Named(name string) logger.Interface              { return m }
func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Fatalw(msg string, keysAndValues ...interface{}) {}

func newTestStudent(t *testing.T, sid string, coachID uint) *student.Student {
	t.Helper()
	st, err := student.NewStudent(sid, coachID, "Test Student", "")
	require.NoError(t, err)
	return st
}

func TestCreateStudentUseCase(t *testing.T) {
	t.Run("creates an inactive student", func(t *testing.T) {
		var saved *student.Student
		repo := &mockStudentRepository{
			CreateFunc: func(ctx context.Context, s *student.Student) error {
				saved = s
				return nil
			},
		}
		uc := NewCreateStudentUseCase(repo, &mockLogger{})

		st, err := uc.Execute(context.Background(), CreateStudentCommand{
			CoachID: 1,
			Name:    "Dana",
			Email:   "dana@example.com",
		})
		require.NoError(t, err)
		require.NotNil(t, st)
		assert.Same(t, saved, st)
		assert.Equal(t, uint(1), st.CoachID())
		assert.Equal(t, "Dana", st.Name())
		assert.False(t, st.IsActive())
		assert.Nil(t, st.Binding())
		assert.NotEmpty(t, st.SID())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		uc := NewCreateStudentUseCase(&mockStudentRepository{}, &mockLogger{})

		_, err := uc.Execute(context.Background(), CreateStudentCommand{CoachID: 1})
		assert.Error(t, err)
	})

	t.Run("propagates repository failure", func(t *testing.T) {
		repo := &mockStudentRepository{
			CreateFunc: func(ctx context.Context, s *student.Student) error {
				return fmt.Errorf("connection reset")
			},
		}
		uc := NewCreateStudentUseCase(repo, &mockLogger{})

		_, err := uc.Execute(context.Background(), CreateStudentCommand{CoachID: 1, Name: "Dana"})
		assert.Error(t, err)
	})
}

func TestListStudentsUseCase(t *testing.T) {
	all := []*student.Student{
		newTestStudent(t, "st_first0001", 1),
		newTestStudent(t, "st_second001", 1),
	}
	active := all[:1]

	repo := &mockStudentRepository{
		ListByCoachIDFunc: func(ctx context.Context, coachID uint) ([]*student.Student, error) {
			return all, nil
		},
		ListActiveByCoachIDFunc: func(ctx context.Context, coachID uint) ([]*student.Student, error) {
			return active, nil
		},
	}
	uc := NewListStudentsUseCase(repo, &mockLogger{})

	t.Run("lists all students", func(t *testing.T) {
		got, err := uc.Execute(context.Background(), ListStudentsCommand{CoachID: 1})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("lists active students only", func(t *testing.T) {
		got, err := uc.Execute(context.Background(), ListStudentsCommand{CoachID: 1, ActiveOnly: true})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "st_first0001", got[0].SID())
	})
}

func TestGetStudentUseCase(t *testing.T) {
	t.Run("returns the student", func(t *testing.T) {
		existing := newTestStudent(t, "st_existing1", 1)
		repo := &mockStudentRepository{
			GetBySIDFunc: func(ctx context.Context, sid string) (*student.Student, error) {
				assert.Equal(t, "st_existing1", sid)
				return existing, nil
			},
		}
		uc := NewGetStudentUseCase(repo, &mockLogger{})

		got, err := uc.Execute(context.Background(), GetStudentCommand{StudentSID: "st_existing1"})
		require.NoError(t, err)
		assert.Same(t, existing, got)
	})

	t.Run("returns not found for unknown student", func(t *testing.T) {
		uc := NewGetStudentUseCase(&mockStudentRepository{}, &mockLogger{})

		_, err := uc.Execute(context.Background(), GetStudentCommand{StudentSID: "st_missing01"})
		require.Error(t, err)
		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, 404, appErr.Code)
	})
}
