package usecases

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"coachdesk/internal/domain/capacity"
	"coachdesk/internal/domain/student"
)

func makePlan(t *testing.T, id uint, limit int) *capacity.PlanDefinition {
	t.Helper()
	now := time.Now().UTC()
	plan, err := capacity.ReconstructPlanDefinition(id, "plan_test", "Test Plan", 9900, limit, 30, true, now, now)
	require.NoError(t, err)
	return plan
}

func makeAssignment(t *testing.T, id, coachID, planID uint, endsIn time.Duration, state capacity.RosterState) *capacity.PlanAssignment {
	t.Helper()
	now := time.Now().UTC()
	assignment, err := capacity.ReconstructPlanAssignment(
		id, "pa_test", coachID, planID,
		now.AddDate(0, -1, 0), now.Add(endsIn),
		true, state, "", 1, now, now,
	)
	require.NoError(t, err)
	return assignment
}

func makeToken(t *testing.T, id, coachID uint, quantity int, expiresIn time.Duration) *capacity.CapacityToken {
	t.Helper()
	now := time.Now().UTC()
	token, err := capacity.ReconstructCapacityToken(
		id, "tok_test", coachID, quantity,
		now.Add(expiresIn), quantity > 0, "", 1, now, now,
	)
	require.NoError(t, err)
	return token
}

func makeStudent(t *testing.T, id uint, sid string, coachID uint) *student.Student {
	t.Helper()
	now := time.Now().UTC()
	st, err := student.ReconstructStudent(id, sid, coachID, "Test Student", "", student.StatusInactive, nil, now, now)
	require.NoError(t, err)
	return st
}

func makeActiveStudent(t *testing.T, id uint, sid string, coachID uint, sourceType capacity.SourceType, sourceID uint, boundUntil time.Time) *student.Student {
	t.Helper()
	now := time.Now().UTC()
	binding, err := capacity.NewSlotBinding(sourceType, sourceID, now.AddDate(0, -1, 0), boundUntil)
	require.NoError(t, err)
	st, err := student.ReconstructStudent(id, sid, coachID, "Test Student", "", student.StatusActive, &binding, now, now)
	require.NoError(t, err)
	return st
}
