package commands

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/rota/internal/pantry/domain/item"
	"github.com/felixgeelhaar/rota/internal/roster/domain/member"
	sharedApplication "github.com/felixgeelhaar/rota/internal/shared/application"
	"github.com/felixgeelhaar/rota/internal/shared/infrastructure/outbox"
)

// TrackItemCommand starts tracking an item or replaces an existing item's
// buyer rotation. An empty BuyerQueue means "everyone, in roster order".
type TrackItemCommand struct {
	Name       string
	BuyerQueue []int64
	ActorID    int64
}

// TrackItemHandler handles the TrackItemCommand.
type TrackItemHandler struct {
	itemRepo   item.Repository
	memberRepo member.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewTrackItemHandler creates a new TrackItemHandler.
func NewTrackItemHandler(itemRepo item.Repository, memberRepo member.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *TrackItemHandler {
	return &TrackItemHandler{
		itemRepo:   itemRepo,
		memberRepo: memberRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle upserts the item by name.
func (h *TrackItemHandler) Handle(ctx context.Context, cmd TrackItemCommand) error {
	queue := cmd.BuyerQueue
	if len(queue) == 0 {
		members, err := h.memberRepo.FindAll(ctx)
		if err != nil {
			return err
		}
		for _, m := range members {
			queue = append(queue, m.TelegramID())
		}
	}

	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		existing, err := h.itemRepo.FindByName(txCtx, cmd.Name)
		switch {
		case errors.Is(err, item.ErrNotFound):
			it, err := item.NewItem(cmd.Name, queue)
			if err != nil {
				return err
			}
			if err := h.itemRepo.Save(txCtx, it); err != nil {
				return err
			}
			return drainEvents(txCtx, h.outboxRepo, it, cmd.ActorID)
		case err != nil:
			return err
		}

		existing.SetBuyerQueue(queue)
		return h.itemRepo.Save(txCtx, existing)
	})
}
