package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coachdesk/internal/domain/capacity"
)

func TestStartRenewal_ApprovedMovesToPending(t *testing.T) {
	coachID := uint(10)
	assignment := makeAssignment(t, 1, coachID, 1, 30*24*time.Hour, capacity.RosterStateApproved)

	updated := false
	assignmentRepo := &mockPlanAssignmentRepository{
		GetCurrentByCoachIDForUpdateFunc: func(ctx context.Context, id uint) (*capacity.PlanAssignment, error) {
			return assignment, nil
		},
		UpdateFunc: func(ctx context.Context, a *capacity.PlanAssignment) error {
			updated = true
			return nil
		},
	}

	uc := NewStartRenewalUseCase(assignmentRepo, &mockTxManager{}, &mockLogger{})

	result, err := uc.Execute(context.Background(), StartRenewalCommand{CoachID: coachID})
	require.NoError(t, err)

	assert.Equal(t, capacity.RosterStatePending, result.RosterState())
	assert.True(t, updated)
}

func TestStartRenewal_NoAssignment(t *testing.T) {
	uc := NewStartRenewalUseCase(&mockPlanAssignmentRepository{}, &mockTxManager{}, &mockLogger{})

	_, err := uc.Execute(context.Background(), StartRenewalCommand{CoachID: 10})
	assert.ErrorIs(t, err, capacity.ErrNoRenewalInProgress)
}

func TestStartRenewal_FinalizedRejected(t *testing.T) {
	assignment := makeAssignment(t, 1, 10, 1, 30*24*time.Hour, capacity.RosterStateFinalized)
	assignmentRepo := &mockPlanAssignmentRepository{
		GetCurrentByCoachIDForUpdateFunc: func(ctx context.Context, id uint) (*capacity.PlanAssignment, error) {
			return assignment, nil
		},
	}

	uc := NewStartRenewalUseCase(assignmentRepo, &mockTxManager{}, &mockLogger{})

	_, err := uc.Execute(context.Background(), StartRenewalCommand{CoachID: 10})
	assert.ErrorIs(t, err, capacity.ErrInvalidRosterTransition)
}

func TestGetRenewalState(t *testing.T) {
	tests := []struct {
		name       string
		assignment *capacity.PlanAssignment
		want       capacity.RenewalState
	}{
		{"no assignment", nil, capacity.RenewalStateNone},
		{"approved", makeAssignment(t, 1, 10, 1, 30*24*time.Hour, capacity.RosterStateApproved), capacity.RenewalStateApproved},
		{"pending", makeAssignment(t, 2, 10, 1, 30*24*time.Hour, capacity.RosterStatePending), capacity.RenewalStatePending},
		{"finalized", makeAssignment(t, 3, 10, 1, 30*24*time.Hour, capacity.RosterStateFinalized), capacity.RenewalStateFinalized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assignmentRepo := &mockPlanAssignmentRepository{
				GetCurrentByCoachIDFunc: func(ctx context.Context, id uint) (*capacity.PlanAssignment, error) {
					return tt.assignment, nil
				},
			}
			uc := NewGetRenewalStateUseCase(assignmentRepo, &mockLogger{})

			result, err := uc.Execute(context.Background(), GetRenewalStateCommand{CoachID: 10})
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.State)
		})
	}
}

func TestSweepExpired(t *testing.T) {
	assignmentRepo := &mockPlanAssignmentRepository{
		MarkExpiredFunc: func(ctx context.Context, now time.Time) (int64, error) {
			return 2, nil
		},
	}
	tokenRepo := &mockCapacityTokenRepository{
		MarkExpiredFunc: func(ctx context.Context, now time.Time) (int64, error) {
			return 5, nil
		},
	}

	uc := NewSweepExpiredUseCase(assignmentRepo, tokenRepo, &mockLogger{})

	result, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.ExpiredAssignments)
	assert.Equal(t, int64(5), result.ExpiredTokens)
}

func TestAddTokens(t *testing.T) {
	coachID := uint(10)

	var created *capacity.CapacityToken
	tokenRepo := &mockCapacityTokenRepository{
		CreateFunc: func(ctx context.Context, token *capacity.CapacityToken) error {
			created = token
			return nil
		},
	}

	uc := NewAddTokensUseCase(tokenRepo, &mockTxManager{}, nil, 30, &mockLogger{})

	token, err := uc.Execute(context.Background(), AddTokensCommand{
		CoachID:   coachID,
		Quantity:  3,
		Reason:    "mid-cycle upsell",
		CreatedBy: 1,
	})
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.Equal(t, 3, token.Quantity())
	assert.True(t, token.IsActive())
	// default validity window applies when no expiration is given
	assert.WithinDuration(t, time.Now().UTC().Add(30*24*time.Hour), token.ExpirationDate(), time.Minute)
}

func TestAddTokens_PastExpirationRejected(t *testing.T) {
	uc := NewAddTokensUseCase(&mockCapacityTokenRepository{}, &mockTxManager{}, nil, 30, &mockLogger{})

	_, err := uc.Execute(context.Background(), AddTokensCommand{
		CoachID:        10,
		Quantity:       3,
		ExpirationDate: time.Now().UTC().Add(-time.Hour),
		CreatedBy:      1,
	})
	assert.Error(t, err)
}
