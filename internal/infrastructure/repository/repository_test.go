package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"coachdesk/internal/domain/capacity"
	"coachdesk/internal/domain/student"
	"coachdesk/internal/infrastructure/persistence/models"
	"coachdesk/internal/shared/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.PlanDefinitionModel{},
		&models.PlanAssignmentModel{},
		&models.CapacityTokenModel{},
		&models.StudentModel{},
	)
	require.NoError(t, err)

	return db
}

func createTestPlan(t *testing.T, sid string, limit int) *capacity.PlanDefinition {
	t.Helper()
	plan, err := capacity.NewPlanDefinition(sid, "Starter", 4900, limit, 30)
	require.NoError(t, err)
	return plan
}

func TestPlanDefinitionRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlanDefinitionRepository(db, logger.NewLogger())
	ctx := context.Background()

	plan := createTestPlan(t, "plan_starter01", 5)
	require.NoError(t, repo.Create(ctx, plan))
	assert.NotZero(t, plan.ID())

	found, err := repo.GetBySID(ctx, "plan_starter01")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, plan.ID(), found.ID())
	assert.Equal(t, "Starter", found.Name())
	assert.Equal(t, 5, found.StudentLimit())
	assert.True(t, found.IsActive())

	missing, err := repo.GetBySID(ctx, "plan_nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPlanDefinitionRepository_ListActiveOnly(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlanDefinitionRepository(db, logger.NewLogger())
	ctx := context.Background()

	active := createTestPlan(t, "plan_active01", 5)
	require.NoError(t, repo.Create(ctx, active))

	retired := createTestPlan(t, "plan_retired1", 10)
	retired.Deactivate()
	require.NoError(t, repo.Create(ctx, retired))

	all, err := repo.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	activeOnly, err := repo.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, activeOnly, 1)
	assert.Equal(t, "plan_active01", activeOnly[0].SID())
}

func TestPlanAssignmentRepository_CurrentAndDeactivate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlanAssignmentRepository(db, logger.NewLogger())
	ctx := context.Background()

	now := time.Now().UTC()

	first, err := capacity.NewPlanAssignment("pa_first001", 1, 10, now, now.AddDate(0, 1, 0), "initial", 99, false)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, first))

	current, err := repo.GetCurrentByCoachID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "pa_first001", current.SID())

	require.NoError(t, repo.DeactivateCurrent(ctx, 1))

	second, err := capacity.NewPlanAssignment("pa_second01", 1, 10, now, now.AddDate(0, 1, 0), "renewal", 99, true)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, second))

	current, err = repo.GetCurrentByCoachID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "pa_second01", current.SID())
	assert.True(t, current.RequiresReconciliation())

	none, err := repo.GetCurrentByCoachID(ctx, 2)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestPlanAssignmentRepository_MarkExpired(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlanAssignmentRepository(db, logger.NewLogger())
	ctx := context.Background()

	now := time.Now().UTC()

	stale, err := capacity.NewPlanAssignment("pa_stale0001", 1, 10, now.AddDate(0, -2, 0), now.Add(-time.Hour), "", 99, false)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, stale))

	fresh, err := capacity.NewPlanAssignment("pa_fresh0001", 2, 10, now, now.AddDate(0, 1, 0), "", 99, false)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, fresh))

	count, err := repo.MarkExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	gone, err := repo.GetCurrentByCoachID(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, gone)

	kept, err := repo.GetCurrentByCoachID(ctx, 2)
	require.NoError(t, err)
	assert.NotNil(t, kept)

	// Second sweep finds nothing left to mark.
	count, err = repo.MarkExpired(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCapacityTokenRepository_UsableOrdering(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCapacityTokenRepository(db, logger.NewLogger())
	ctx := context.Background()

	now := time.Now().UTC()

	late, err := capacity.NewCapacityToken("tok_late0001", 1, 2, now.AddDate(0, 0, 30), "", 99)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, late))

	early, err := capacity.NewCapacityToken("tok_early001", 1, 1, now.AddDate(0, 0, 5), "", 99)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, early))

	drained, err := capacity.NewCapacityToken("tok_drained1", 1, 1, now.AddDate(0, 0, 10), "", 99)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, drained))
	require.NoError(t, drained.Consume(now))
	require.NoError(t, repo.Update(ctx, drained))

	otherCoach, err := capacity.NewCapacityToken("tok_other001", 2, 3, now.AddDate(0, 0, 7), "", 99)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, otherCoach))

	usable, err := repo.ListUsableByCoachID(ctx, 1, now)
	require.NoError(t, err)
	require.Len(t, usable, 2)
	assert.Equal(t, "tok_early001", usable[0].SID())
	assert.Equal(t, "tok_late0001", usable[1].SID())

	all, err := repo.ListByCoachID(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestCapacityTokenRepository_MarkExpired(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCapacityTokenRepository(db, logger.NewLogger())
	ctx := context.Background()

	now := time.Now().UTC()

	expiring, err := capacity.NewCapacityToken("tok_expiring1", 1, 2, now.Add(time.Minute), "", 99)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, expiring))

	count, err := repo.MarkExpired(ctx, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	reloaded, err := repo.GetByID(ctx, expiring.ID())
	require.NoError(t, err)
	require.NotNil(t, reloaded)
	assert.False(t, reloaded.IsActive())
	// The sweep only flags the token; the quantity is kept for auditing.
	assert.Equal(t, 2, reloaded.Quantity())
}

func TestStudentRepository_BindingRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db, logger.NewLogger())
	ctx := context.Background()

	now := time.Now().UTC()

	st, err := student.NewStudent("st_roundtrip", 1, "Dana", "dana@example.com")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, st))
	assert.NotZero(t, st.ID())

	binding, err := capacity.NewSlotBinding(capacity.SourceTypePlan, 42, now, now.AddDate(0, 1, 0))
	require.NoError(t, err)
	require.NoError(t, st.Activate(binding))
	require.NoError(t, repo.Update(ctx, st))

	found, err := repo.GetBySID(ctx, "st_roundtrip")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.True(t, found.IsActive())
	require.NotNil(t, found.Binding())
	assert.Equal(t, capacity.SourceTypePlan, found.Binding().SourceType())
	assert.Equal(t, uint(42), found.Binding().SourceID())

	// Releasing must clear the slot columns, not just the status.
	found.Deactivate()
	require.NoError(t, repo.Update(ctx, found))

	reloaded, err := repo.GetBySID(ctx, "st_roundtrip")
	require.NoError(t, err)
	require.NotNil(t, reloaded)
	assert.False(t, reloaded.IsActive())
	assert.Nil(t, reloaded.Binding())
}

func TestStudentRepository_Counts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db, logger.NewLogger())
	ctx := context.Background()

	now := time.Now().UTC()

	planBound, err := student.NewStudent("st_planbound", 1, "Alice", "")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, planBound))
	binding, err := capacity.NewSlotBinding(capacity.SourceTypePlan, 7, now, now.AddDate(0, 1, 0))
	require.NoError(t, err)
	require.NoError(t, planBound.Activate(binding))
	require.NoError(t, repo.Update(ctx, planBound))

	tokenBound, err := student.NewStudent("st_tokbound1", 1, "Bob", "")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, tokenBound))
	tokBinding, err := capacity.NewSlotBinding(capacity.SourceTypeToken, 3, now, now.AddDate(0, 0, 14))
	require.NoError(t, err)
	require.NoError(t, tokenBound.Activate(tokBinding))
	require.NoError(t, repo.Update(ctx, tokenBound))

	// Token binding whose frozen window already ended: still active on the
	// roster, but it no longer contributes token-backed capacity.
	lapsed, err := student.NewStudent("st_lapsed001", 1, "Eve", "")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, lapsed))
	lapsedBinding, err := capacity.NewSlotBinding(capacity.SourceTypeToken, 9, now.AddDate(0, -2, 0), now.Add(-time.Hour))
	require.NoError(t, err)
	require.NoError(t, lapsed.Activate(lapsedBinding))
	require.NoError(t, repo.Update(ctx, lapsed))

	inactive, err := student.NewStudent("st_inactive1", 1, "Carol", "")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, inactive))

	count, err := repo.CountActiveByCoachID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	tokenBoundCount, err := repo.CountActiveTokenBound(ctx, 1, now)
	require.NoError(t, err)
	assert.Equal(t, 1, tokenBoundCount)

	planCount, err := repo.CountActiveBoundTo(ctx, 1, capacity.SourceTypePlan, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, planCount)

	tokenCount, err := repo.CountActiveBoundTo(ctx, 1, capacity.SourceTypeToken, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, tokenCount)

	active, err := repo.ListActiveByCoachID(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, active, 3)

	all, err := repo.ListByCoachID(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}
