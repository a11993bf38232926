package application

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/rota/internal/chores/domain/chore"
	"github.com/felixgeelhaar/rota/internal/roster/domain/member"
)

func TestNewEventMetadata(t *testing.T) {
	md := NewEventMetadata(42)

	assert.Equal(t, int64(42), md.ActorID)
	assert.NotEqual(t, uuid.Nil, md.CorrelationID)
}

func TestApplyEventMetadata(t *testing.T) {
	t.Run("attaches metadata to buffered aggregate events", func(t *testing.T) {
		c, err := chore.NewChore("Dishes", chore.DifficultyEasy)
		require.NoError(t, err)

		md := NewEventMetadata(42)
		ApplyEventMetadata(c.DomainEvents(), md)

		events := c.DomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, int64(42), events[0].Metadata().ActorID)
		assert.Equal(t, md.CorrelationID, events[0].Metadata().CorrelationID)
	})

	t.Run("covers every event in the buffer", func(t *testing.T) {
		m, err := member.NewMember(7, "Ivan")
		require.NoError(t, err)
		m.AdjustPoints(1)
		m.AdjustPoints(-1)

		md := NewEventMetadata(7)
		ApplyEventMetadata(m.DomainEvents(), md)

		events := m.DomainEvents()
		require.Len(t, events, 3)
		for _, event := range events {
			assert.Equal(t, int64(7), event.Metadata().ActorID)
			assert.Equal(t, md.CorrelationID, event.Metadata().CorrelationID)
		}
	})
}
