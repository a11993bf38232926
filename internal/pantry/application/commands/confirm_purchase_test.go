package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/rota/internal/pantry/domain/item"
)

func depletedItem(t *testing.T, name string, queue []int64) *item.Item {
	t.Helper()
	it := freshItem(t, name, queue)
	_, err := it.MarkOutOfStock(queue[0])
	require.NoError(t, err)
	it.ClearDomainEvents()
	return it
}

func TestConfirmPurchaseHandler_Handle(t *testing.T) {
	t.Run("expected buyer restocks and rotation moves on", func(t *testing.T) {
		itemRepo := new(mockItemRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewConfirmPurchaseHandler(itemRepo, outboxRepo, uow)

		ctx := context.Background()
		it := depletedItem(t, "milk", []int64{10, 20, 30})

		uow.On("Begin", ctx).Return(ctx, nil)
		uow.On("Commit", ctx).Return(nil)
		itemRepo.On("FindByName", ctx, "milk").Return(it, nil)
		itemRepo.On("UpdateConditional", ctx, it, false).Return(nil)
		outboxRepo.On("SaveBatch", ctx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		result, err := handler.Handle(ctx, ConfirmPurchaseCommand{ItemName: "milk", BuyerID: 20})

		require.NoError(t, err)
		assert.Equal(t, "milk", result.ItemName)
		assert.True(t, it.InStock())
		assert.Equal(t, 2, it.Cursor())

		itemRepo.AssertExpectations(t)
		outboxRepo.AssertExpectations(t)
	})

	t.Run("wrong member is rejected without touching the item", func(t *testing.T) {
		itemRepo := new(mockItemRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewConfirmPurchaseHandler(itemRepo, outboxRepo, uow)

		ctx := context.Background()
		it := depletedItem(t, "milk", []int64{10, 20, 30})

		uow.On("Begin", ctx).Return(ctx, nil)
		uow.On("Rollback", ctx).Return(nil)
		itemRepo.On("FindByName", ctx, "milk").Return(it, nil)

		_, err := handler.Handle(ctx, ConfirmPurchaseCommand{ItemName: "milk", BuyerID: 10})

		assert.ErrorIs(t, err, item.ErrNotYourTurn)
		assert.False(t, it.InStock())
		assert.Equal(t, 1, it.Cursor())
		itemRepo.AssertNotCalled(t, "UpdateConditional", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("already restocked reads as already handled", func(t *testing.T) {
		itemRepo := new(mockItemRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewConfirmPurchaseHandler(itemRepo, outboxRepo, uow)

		ctx := context.Background()
		it := freshItem(t, "milk", []int64{10, 20})

		uow.On("Begin", ctx).Return(ctx, nil)
		uow.On("Rollback", ctx).Return(nil)
		itemRepo.On("FindByName", ctx, "milk").Return(it, nil)

		_, err := handler.Handle(ctx, ConfirmPurchaseCommand{ItemName: "milk", BuyerID: 10})

		assert.ErrorIs(t, err, item.ErrAlreadyHandled)
	})

	t.Run("racing purchase loses the conditional write", func(t *testing.T) {
		itemRepo := new(mockItemRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewConfirmPurchaseHandler(itemRepo, outboxRepo, uow)

		ctx := context.Background()
		it := depletedItem(t, "milk", []int64{10, 20})

		uow.On("Begin", ctx).Return(ctx, nil)
		uow.On("Rollback", ctx).Return(nil)
		itemRepo.On("FindByName", ctx, "milk").Return(it, nil)
		itemRepo.On("UpdateConditional", ctx, it, false).Return(item.ErrAlreadyHandled)

		_, err := handler.Handle(ctx, ConfirmPurchaseCommand{ItemName: "milk", BuyerID: 20})

		assert.ErrorIs(t, err, item.ErrAlreadyHandled)
		outboxRepo.AssertNotCalled(t, "SaveBatch", mock.Anything, mock.Anything)
	})
}
