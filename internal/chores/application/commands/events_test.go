package commands

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/rota/internal/chores/domain/chore"
	"github.com/felixgeelhaar/rota/internal/shared/domain"
	"github.com/felixgeelhaar/rota/internal/shared/infrastructure/outbox"
)

func TestDrainEvents(t *testing.T) {
	t.Run("actor metadata lands in the outbox message", func(t *testing.T) {
		outboxRepo := new(mockOutboxRepo)

		c, err := chore.NewChore("Dishes", chore.DifficultyEasy)
		require.NoError(t, err)

		var saved []*outbox.Message
		outboxRepo.On("SaveBatch", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				saved = args.Get(1).([]*outbox.Message)
			}).
			Return(nil)

		require.NoError(t, drainEvents(context.Background(), outboxRepo, c, 42))

		require.Len(t, saved, 1)
		var md domain.EventMetadata
		require.NoError(t, json.Unmarshal(saved[0].Metadata, &md))
		assert.Equal(t, int64(42), md.ActorID)
		assert.NotEqual(t, uuid.Nil, md.CorrelationID)
		assert.Equal(t, chore.RoutingKeyCreated, saved[0].RoutingKey)

		assert.Empty(t, c.DomainEvents())
		outboxRepo.AssertExpectations(t)
	})

	t.Run("no events means no outbox write", func(t *testing.T) {
		outboxRepo := new(mockOutboxRepo)

		c, err := chore.NewChore("Dishes", chore.DifficultyEasy)
		require.NoError(t, err)
		c.ClearDomainEvents()

		require.NoError(t, drainEvents(context.Background(), outboxRepo, c, 42))
		outboxRepo.AssertNotCalled(t, "SaveBatch", mock.Anything, mock.Anything)
	})
}
