package commands

import (
	"context"

	"github.com/felixgeelhaar/rota/internal/chores/domain/chore"
	sharedApplication "github.com/felixgeelhaar/rota/internal/shared/application"
	"github.com/felixgeelhaar/rota/internal/shared/infrastructure/outbox"
)

// DeleteChoreCommand removes a chore from the pool.
type DeleteChoreCommand struct {
	Name    string
	ActorID int64
}

// DeleteChoreHandler handles the DeleteChoreCommand.
type DeleteChoreHandler struct {
	choreRepo  chore.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewDeleteChoreHandler creates a new DeleteChoreHandler.
func NewDeleteChoreHandler(choreRepo chore.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *DeleteChoreHandler {
	return &DeleteChoreHandler{
		choreRepo:  choreRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the DeleteChoreCommand.
func (h *DeleteChoreHandler) Handle(ctx context.Context, cmd DeleteChoreCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		c, err := h.choreRepo.FindByName(txCtx, cmd.Name)
		if err != nil {
			return err
		}
		if err := h.choreRepo.Delete(txCtx, cmd.Name); err != nil {
			return err
		}

		c.AddDomainEvent(chore.NewChoreDeleted(c.ID(), c.Name()))
		return drainEvents(txCtx, h.outboxRepo, c, cmd.ActorID)
	})
}
