package member

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMember(t *testing.T) {
	t.Run("creates member with zero points", func(t *testing.T) {
		m, err := NewMember(42, "Olena")

		require.NoError(t, err)
		assert.Equal(t, int64(42), m.TelegramID())
		assert.Equal(t, "Olena", m.Name())
		assert.Equal(t, 0, m.Points())
		assert.Nil(t, m.PreviousChore())
		assert.Len(t, m.DomainEvents(), 1)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewMember(42, "  ")

		assert.ErrorIs(t, err, ErrEmptyName)
	})
}

func TestMember_Rename(t *testing.T) {
	m, _ := NewMember(1, "Old")

	require.NoError(t, m.Rename("New"))
	assert.Equal(t, "New", m.Name())

	assert.ErrorIs(t, m.Rename(""), ErrEmptyName)
}

func TestMember_AssignmentHistory(t *testing.T) {
	m, _ := NewMember(1, "Ivan")

	m.RecordAssignment("dishes")
	require.NotNil(t, m.PreviousChore())
	assert.Equal(t, "dishes", *m.PreviousChore())

	m.ClearAssignmentHistory()
	assert.Nil(t, m.PreviousChore())
}

func TestMember_Points(t *testing.T) {
	t.Run("points can go negative", func(t *testing.T) {
		m, _ := NewMember(1, "Ivan")

		m.AdjustPoints(-1)
		m.AdjustPoints(-1)
		assert.Equal(t, -2, m.Points())

		m.AdjustPoints(3)
		assert.Equal(t, 1, m.Points())
	})

	t.Run("each adjustment records a points event", func(t *testing.T) {
		m, _ := NewMember(1, "Ivan")
		m.ClearDomainEvents()

		m.AdjustPoints(1)
		m.AdjustPoints(-1)

		events := m.DomainEvents()
		require.Len(t, events, 2)
		for _, event := range events {
			assert.Equal(t, RoutingKeyPointsAdjusted, event.RoutingKey())
		}
	})
}
