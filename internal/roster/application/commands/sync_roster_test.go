package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/rota/internal/roster/domain/member"
)

func TestSyncRosterHandler_Handle(t *testing.T) {
	t.Run("creates new members", func(t *testing.T) {
		memberRepo := new(mockMemberRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewSyncRosterHandler(memberRepo, outboxRepo, uow)

		ctx := context.Background()

		uow.On("Begin", ctx).Return(ctx, nil)
		uow.On("Commit", ctx).Return(nil)
		memberRepo.On("FindByTelegramID", ctx, int64(1)).Return(nil, member.ErrNotFound)
		memberRepo.On("FindByTelegramID", ctx, int64(2)).Return(nil, member.ErrNotFound)
		memberRepo.On("Save", ctx, mock.AnythingOfType("*member.Member")).Return(nil).Twice()
		outboxRepo.On("SaveBatch", ctx, mock.AnythingOfType("[]*outbox.Message")).Return(nil).Twice()

		result, err := handler.Handle(ctx, SyncRosterCommand{
			Entries: []RosterEntry{
				{TelegramID: 1, Name: "Ivan"},
				{TelegramID: 2, Name: "Olena"},
			},
			ActorID: 1,
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"Ivan", "Olena"}, result.Names)
		memberRepo.AssertExpectations(t)
		outboxRepo.AssertExpectations(t)
	})

	t.Run("renames existing members and keeps their points", func(t *testing.T) {
		memberRepo := new(mockMemberRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewSyncRosterHandler(memberRepo, outboxRepo, uow)

		ctx := context.Background()
		existing, _ := member.NewMember(1, "Old Name")
		existing.AdjustPoints(5)
		existing.RecordAssignment("dishes")
		existing.ClearDomainEvents()

		uow.On("Begin", ctx).Return(ctx, nil)
		uow.On("Commit", ctx).Return(nil)
		memberRepo.On("FindByTelegramID", ctx, int64(1)).Return(existing, nil)
		memberRepo.On("Save", ctx, existing).Return(nil)

		result, err := handler.Handle(ctx, SyncRosterCommand{
			Entries: []RosterEntry{{TelegramID: 1, Name: "New Name"}},
			ActorID: 1,
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"New Name"}, result.Names)
		assert.Equal(t, "New Name", existing.Name())
		assert.Equal(t, 5, existing.Points())
		assert.Nil(t, existing.PreviousChore())
		memberRepo.AssertExpectations(t)
	})
}
