package student

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coachdesk/internal/domain/capacity"
)

func testBinding(t *testing.T) capacity.SlotBinding {
	t.Helper()
	now := time.Now().UTC()
	binding, err := capacity.NewSlotBinding(capacity.SourceTypePlan, 1, now, now.AddDate(0, 0, 30))
	require.NoError(t, err)
	return binding
}

func TestNewStudent_BornInactive(t *testing.T) {
	s, err := NewStudent("st_abc", 10, "Ana", "ana@example.com")
	require.NoError(t, err)

	assert.Equal(t, StatusInactive, s.Status())
	assert.False(t, s.IsActive())
	assert.Nil(t, s.Binding())
}

func TestStudent_Activate(t *testing.T) {
	s, err := NewStudent("st_abc", 10, "Ana", "ana@example.com")
	require.NoError(t, err)
	binding := testBinding(t)

	require.NoError(t, s.Activate(binding))

	assert.True(t, s.IsActive())
	require.NotNil(t, s.Binding())
	assert.Equal(t, capacity.SourceTypePlan, s.Binding().SourceType())
}

func TestStudent_ActivateTwiceRejected(t *testing.T) {
	s, err := NewStudent("st_abc", 10, "Ana", "ana@example.com")
	require.NoError(t, err)
	require.NoError(t, s.Activate(testBinding(t)))

	err = s.Activate(testBinding(t))
	assert.ErrorIs(t, err, capacity.ErrStudentAlreadyBound)
}

func TestStudent_DeactivateReturnsReleasedBinding(t *testing.T) {
	s, err := NewStudent("st_abc", 10, "Ana", "ana@example.com")
	require.NoError(t, err)
	binding := testBinding(t)
	require.NoError(t, s.Activate(binding))

	released := s.Deactivate()

	require.NotNil(t, released)
	assert.Equal(t, binding.SourceID(), released.SourceID())
	assert.False(t, s.IsActive())
	assert.Nil(t, s.Binding())
}

func TestStudent_DeactivateIsIdempotent(t *testing.T) {
	s, err := NewStudent("st_abc", 10, "Ana", "ana@example.com")
	require.NoError(t, err)
	require.NoError(t, s.Activate(testBinding(t)))

	require.NotNil(t, s.Deactivate())
	assert.Nil(t, s.Deactivate())
	assert.False(t, s.IsActive())
}
