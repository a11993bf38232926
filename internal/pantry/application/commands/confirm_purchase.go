package commands

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/rota/internal/pantry/domain/item"
	sharedApplication "github.com/felixgeelhaar/rota/internal/shared/application"
	"github.com/felixgeelhaar/rota/internal/shared/infrastructure/outbox"
)

// ConfirmPurchaseCommand restocks an item. Only the expected buyer may
// confirm; everyone else is rejected without touching the item.
type ConfirmPurchaseCommand struct {
	ItemName string
	BuyerID  int64
}

// ConfirmPurchaseResult describes the restock for announcements.
type ConfirmPurchaseResult struct {
	ItemName string
}

// ConfirmPurchaseHandler handles the ConfirmPurchaseCommand.
type ConfirmPurchaseHandler struct {
	itemRepo   item.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewConfirmPurchaseHandler creates a new ConfirmPurchaseHandler.
func NewConfirmPurchaseHandler(itemRepo item.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *ConfirmPurchaseHandler {
	return &ConfirmPurchaseHandler{
		itemRepo:   itemRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle verifies the caller's turn and conditionally writes the restock.
func (h *ConfirmPurchaseHandler) Handle(ctx context.Context, cmd ConfirmPurchaseCommand) (*ConfirmPurchaseResult, error) {
	var result *ConfirmPurchaseResult
	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		it, err := h.itemRepo.FindByName(txCtx, cmd.ItemName)
		if err != nil {
			return err
		}

		err = it.MarkBought(cmd.BuyerID)
		if errors.Is(err, item.ErrAlreadyInStock) {
			return item.ErrAlreadyHandled
		}
		if err != nil {
			return err
		}

		if err := h.itemRepo.UpdateConditional(txCtx, it, false); err != nil {
			return err
		}
		if err := drainEvents(txCtx, h.outboxRepo, it, cmd.BuyerID); err != nil {
			return err
		}

		result = &ConfirmPurchaseResult{ItemName: it.Name()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
