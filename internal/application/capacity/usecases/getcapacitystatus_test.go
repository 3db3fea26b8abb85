package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coachdesk/internal/domain/capacity"
)

func TestGetCapacityStatus_ResolvesAndCaches(t *testing.T) {
	coachID := uint(10)
	plan := makePlan(t, 1, 5)
	assignment := makeAssignment(t, 1, coachID, 1, 20*24*time.Hour, capacity.RosterStateFinalized)
	tokens := []*capacity.CapacityToken{makeToken(t, 7, coachID, 2, 10*24*time.Hour)}

	assignmentRepo := &mockPlanAssignmentRepository{
		GetCurrentByCoachIDFunc: func(ctx context.Context, id uint) (*capacity.PlanAssignment, error) {
			return assignment, nil
		},
	}
	planRepo := &mockPlanDefinitionRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*capacity.PlanDefinition, error) {
			return plan, nil
		},
	}
	tokenRepo := &mockCapacityTokenRepository{
		ListByCoachIDFunc: func(ctx context.Context, id uint) ([]*capacity.CapacityToken, error) {
			return tokens, nil
		},
	}
	studentRepo := &mockStudentRepository{
		CountActiveByCoachIDFunc: func(ctx context.Context, id uint) (int, error) {
			return 4, nil
		},
	}

	var cachedStatus *capacity.CapacityStatus
	cache := &mockStatusCache{
		SetFunc: func(ctx context.Context, id uint, status capacity.CapacityStatus) error {
			cachedStatus = &status
			return nil
		},
	}

	uc := NewGetCapacityStatusUseCase(assignmentRepo, planRepo, tokenRepo, studentRepo, cache, &mockLogger{})

	status, err := uc.Execute(context.Background(), GetCapacityStatusCommand{CoachID: coachID})
	require.NoError(t, err)

	assert.Equal(t, 7, status.EffectiveLimit)
	assert.Equal(t, 5, status.PlanLimit)
	assert.Equal(t, 2, status.TokenCapacity)
	assert.Equal(t, 4, status.ActiveCount)
	assert.Equal(t, 3, status.AvailableSlots)
	require.NotNil(t, cachedStatus)
	assert.Equal(t, *status, *cachedStatus)
}

func TestGetCapacityStatus_DrainedTokenStillBacksBoundStudents(t *testing.T) {
	// Both units of a quantity-2 token consumed: the token reads as
	// drained, but the two students it backs keep the limit at 7.
	coachID := uint(10)
	plan := makePlan(t, 1, 5)
	assignment := makeAssignment(t, 1, coachID, 1, 20*24*time.Hour, capacity.RosterStateFinalized)
	drained := makeToken(t, 7, coachID, 0, 10*24*time.Hour)

	assignmentRepo := &mockPlanAssignmentRepository{
		GetCurrentByCoachIDFunc: func(ctx context.Context, id uint) (*capacity.PlanAssignment, error) {
			return assignment, nil
		},
	}
	planRepo := &mockPlanDefinitionRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*capacity.PlanDefinition, error) {
			return plan, nil
		},
	}
	tokenRepo := &mockCapacityTokenRepository{
		ListByCoachIDFunc: func(ctx context.Context, id uint) ([]*capacity.CapacityToken, error) {
			return []*capacity.CapacityToken{drained}, nil
		},
	}
	studentRepo := &mockStudentRepository{
		CountActiveByCoachIDFunc: func(ctx context.Context, id uint) (int, error) {
			return 7, nil
		},
		CountActiveTokenBoundFunc: func(ctx context.Context, id uint, now time.Time) (int, error) {
			return 2, nil
		},
	}

	uc := NewGetCapacityStatusUseCase(assignmentRepo, planRepo, tokenRepo, studentRepo, nil, &mockLogger{})

	status, err := uc.Execute(context.Background(), GetCapacityStatusCommand{CoachID: coachID})
	require.NoError(t, err)

	assert.Equal(t, 7, status.EffectiveLimit)
	assert.Equal(t, 2, status.TokenCapacity)
	assert.Equal(t, 7, status.ActiveCount)
	assert.Equal(t, 0, status.AvailableSlots)
	assert.False(t, status.CanActivateMore)
}

func TestGetCapacityStatus_CacheHitSkipsStore(t *testing.T) {
	cached := capacity.CapacityStatus{EffectiveLimit: 5, ActiveCount: 2, AvailableSlots: 3, CanActivateMore: true}
	cache := &mockStatusCache{
		GetFunc: func(ctx context.Context, coachID uint) (*capacity.CapacityStatus, error) {
			return &cached, nil
		},
	}
	assignmentRepo := &mockPlanAssignmentRepository{
		GetCurrentByCoachIDFunc: func(ctx context.Context, coachID uint) (*capacity.PlanAssignment, error) {
			t.Fatal("store must not be hit on a cache hit")
			return nil, nil
		},
	}

	uc := NewGetCapacityStatusUseCase(assignmentRepo, &mockPlanDefinitionRepository{}, &mockCapacityTokenRepository{}, &mockStudentRepository{}, cache, &mockLogger{})

	status, err := uc.Execute(context.Background(), GetCapacityStatusCommand{CoachID: 10})
	require.NoError(t, err)
	assert.Equal(t, cached, *status)
}

func TestGetCapacityStatus_CacheFailureFallsBackToStore(t *testing.T) {
	cache := &mockStatusCache{
		GetFunc: func(ctx context.Context, coachID uint) (*capacity.CapacityStatus, error) {
			return nil, assert.AnError
		},
		SetFunc: func(ctx context.Context, coachID uint, status capacity.CapacityStatus) error {
			return assert.AnError
		},
	}

	uc := NewGetCapacityStatusUseCase(&mockPlanAssignmentRepository{}, &mockPlanDefinitionRepository{}, &mockCapacityTokenRepository{}, &mockStudentRepository{}, cache, &mockLogger{})

	status, err := uc.Execute(context.Background(), GetCapacityStatusCommand{CoachID: 10})
	require.NoError(t, err)
	assert.Equal(t, 0, status.EffectiveLimit)
}

func TestGetCapacityStatus_NoAssignment(t *testing.T) {
	tokenRepo := &mockCapacityTokenRepository{
		ListByCoachIDFunc: func(ctx context.Context, id uint) ([]*capacity.CapacityToken, error) {
			return []*capacity.CapacityToken{makeToken(t, 7, 10, 3, 10*24*time.Hour)}, nil
		},
	}

	uc := NewGetCapacityStatusUseCase(&mockPlanAssignmentRepository{}, &mockPlanDefinitionRepository{}, tokenRepo, &mockStudentRepository{}, nil, &mockLogger{})

	status, err := uc.Execute(context.Background(), GetCapacityStatusCommand{CoachID: 10})
	require.NoError(t, err)

	// tokens alone still grant capacity
	assert.Equal(t, 3, status.EffectiveLimit)
	assert.Equal(t, 0, status.PlanLimit)
}
