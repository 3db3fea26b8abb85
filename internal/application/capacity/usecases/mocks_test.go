package usecases

import (
	"context"
	"time"

	"coachdesk/internal/domain/capacity"
	"coachdesk/internal/domain/student"
	"coachdesk/internal/shared/logger"
)

type mockPlanDefinitionRepository struct {
	CreateFunc   func(ctx context.Context, plan *capacity.PlanDefinition) error
	GetByIDFunc  func(ctx context.Context, id uint) (*capacity.PlanDefinition, error)
	GetBySIDFunc func(ctx context.Context, sid string) (*capacity.PlanDefinition, error)
	ListFunc     func(ctx context.Context, activeOnly bool) ([]*capacity.PlanDefinition, error)
	UpdateFunc   func(ctx context.Context, plan *capacity.PlanDefinition) error
}

func (m *mockPlanDefinitionRepository) Create(ctx context.Context, plan *capacity.PlanDefinition) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, plan)
	}
	return nil
}

func (m *mockPlanDefinitionRepository) GetByID(ctx context.Context, id uint) (*capacity.PlanDefinition, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockPlanDefinitionRepository) GetBySID(ctx context.Context, sid string) (*capacity.PlanDefinition, error) {
	if m.GetBySIDFunc != nil {
		return m.GetBySIDFunc(ctx, sid)
	}
	return nil, nil
}

func (m *mockPlanDefinitionRepository) List(ctx context.Context, activeOnly bool) ([]*capacity.PlanDefinition, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, activeOnly)
	}
	return nil, nil
}

func (m *mockPlanDefinitionRepository) Update(ctx context.Context, plan *capacity.PlanDefinition) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, plan)
	}
	return nil
}

type mockPlanAssignmentRepository struct {
	CreateFunc                       func(ctx context.Context, assignment *capacity.PlanAssignment) error
	GetByIDFunc                      func(ctx context.Context, id uint) (*capacity.PlanAssignment, error)
	GetCurrentByCoachIDFunc          func(ctx context.Context, coachID uint) (*capacity.PlanAssignment, error)
	GetCurrentByCoachIDForUpdateFunc func(ctx context.Context, coachID uint) (*capacity.PlanAssignment, error)
	UpdateFunc                       func(ctx context.Context, assignment *capacity.PlanAssignment) error
	DeactivateCurrentFunc            func(ctx context.Context, coachID uint) error
	MarkExpiredFunc                  func(ctx context.Context, now time.Time) (int64, error)
}

func (m *mockPlanAssignmentRepository) Create(ctx context.Context, assignment *capacity.PlanAssignment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, assignment)
	}
	return nil
}

func (m *mockPlanAssignmentRepository) GetByID(ctx context.Context, id uint) (*capacity.PlanAssignment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockPlanAssignmentRepository) GetCurrentByCoachID(ctx context.Context, coachID uint) (*capacity.PlanAssignment, error) {
	if m.GetCurrentByCoachIDFunc != nil {
		return m.GetCurrentByCoachIDFunc(ctx, coachID)
	}
	return nil, nil
}

func (m *mockPlanAssignmentRepository) GetCurrentByCoachIDForUpdate(ctx context.Context, coachID uint) (*capacity.PlanAssignment, error) {
	if m.GetCurrentByCoachIDForUpdateFunc != nil {
		return m.GetCurrentByCoachIDForUpdateFunc(ctx, coachID)
	}
	return nil, nil
}

func (m *mockPlanAssignmentRepository) Update(ctx context.Context, assignment *capacity.PlanAssignment) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, assignment)
	}
	return nil
}

func (m *mockPlanAssignmentRepository) DeactivateCurrent(ctx context.Context, coachID uint) error {
	if m.DeactivateCurrentFunc != nil {
		return m.DeactivateCurrentFunc(ctx, coachID)
	}
	return nil
}

func (m *mockPlanAssignmentRepository) MarkExpired(ctx context.Context, now time.Time) (int64, error) {
	if m.MarkExpiredFunc != nil {
		return m.MarkExpiredFunc(ctx, now)
	}
	return 0, nil
}

type mockCapacityTokenRepository struct {
	CreateFunc                       func(ctx context.Context, token *capacity.CapacityToken) error
	GetByIDFunc                      func(ctx context.Context, id uint) (*capacity.CapacityToken, error)
	GetByIDForUpdateFunc             func(ctx context.Context, id uint) (*capacity.CapacityToken, error)
	ListByCoachIDFunc                func(ctx context.Context, coachID uint) ([]*capacity.CapacityToken, error)
	ListUsableByCoachIDFunc          func(ctx context.Context, coachID uint, now time.Time) ([]*capacity.CapacityToken, error)
	ListUsableByCoachIDForUpdateFunc func(ctx context.Context, coachID uint, now time.Time) ([]*capacity.CapacityToken, error)
	UpdateFunc                       func(ctx context.Context, token *capacity.CapacityToken) error
	MarkExpiredFunc                  func(ctx context.Context, now time.Time) (int64, error)
}

func (m *mockCapacityTokenRepository) Create(ctx context.Context, token *capacity.CapacityToken) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, token)
	}
	return nil
}

func (m *mockCapacityTokenRepository) GetByID(ctx context.Context, id uint) (*capacity.CapacityToken, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockCapacityTokenRepository) GetByIDForUpdate(ctx context.Context, id uint) (*capacity.CapacityToken, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockCapacityTokenRepository) ListByCoachID(ctx context.Context, coachID uint) ([]*capacity.CapacityToken, error) {
	if m.ListByCoachIDFunc != nil {
		return m.ListByCoachIDFunc(ctx, coachID)
	}
	return nil, nil
}

func (m *mockCapacityTokenRepository) ListUsableByCoachID(ctx context.Context, coachID uint, now time.Time) ([]*capacity.CapacityToken, error) {
	if m.ListUsableByCoachIDFunc != nil {
		return m.ListUsableByCoachIDFunc(ctx, coachID, now)
	}
	return nil, nil
}

func (m *mockCapacityTokenRepository) ListUsableByCoachIDForUpdate(ctx context.Context, coachID uint, now time.Time) ([]*capacity.CapacityToken, error) {
	if m.ListUsableByCoachIDForUpdateFunc != nil {
		return m.ListUsableByCoachIDForUpdateFunc(ctx, coachID, now)
	}
	return nil, nil
}

func (m *mockCapacityTokenRepository) Update(ctx context.Context, token *capacity.CapacityToken) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, token)
	}
	return nil
}

func (m *mockCapacityTokenRepository) MarkExpired(ctx context.Context, now time.Time) (int64, error) {
	if m.MarkExpiredFunc != nil {
		return m.MarkExpiredFunc(ctx, now)
	}
	return 0, nil
}

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

// mockTxManager runs the function directly; the test context stands in for
// the transaction context.
type mockTxManager struct {
	RunInTransactionFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTransactionFunc != nil {
		return m.RunInTransactionFunc(ctx, fn)
	}
	return fn(ctx)
}

type mockStatusCache struct {
	GetFunc        func(ctx context.Context, coachID uint) (*capacity.CapacityStatus, error)
	SetFunc        func(ctx context.Context, coachID uint, status capacity.CapacityStatus) error
	InvalidateFunc func(ctx context.Context, coachID uint) error
}

func (m *mockStatusCache) Get(ctx context.Context, coachID uint) (*capacity.CapacityStatus, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, coachID)
	}
	return nil, nil
}

func (m *mockStatusCache) Set(ctx context.Context, coachID uint, status capacity.CapacityStatus) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, coachID, status)
	}
	return nil
}

func (m *mockStatusCache) Invalidate(ctx context.Context, coachID uint) error {
	if m.InvalidateFunc != nil {
		return m.InvalidateFunc(ctx, coachID)
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
