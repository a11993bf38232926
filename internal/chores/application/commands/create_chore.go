package commands

import (
	"context"

	"github.com/felixgeelhaar/rota/internal/chores/domain/chore"
	sharedApplication "github.com/felixgeelhaar/rota/internal/shared/application"
	"github.com/felixgeelhaar/rota/internal/shared/infrastructure/outbox"
)

// CreateChoreCommand adds a new chore to the pool.
type CreateChoreCommand struct {
	Name       string
	Difficulty chore.Difficulty
	ActorID    int64
}

// CreateChoreHandler handles the CreateChoreCommand.
type CreateChoreHandler struct {
	choreRepo  chore.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewCreateChoreHandler creates a new CreateChoreHandler.
func NewCreateChoreHandler(choreRepo chore.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *CreateChoreHandler {
	return &CreateChoreHandler{
		choreRepo:  choreRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the CreateChoreCommand.
func (h *CreateChoreHandler) Handle(ctx context.Context, cmd CreateChoreCommand) error {
	c, err := chore.NewChore(cmd.Name, cmd.Difficulty)
	if err != nil {
		return err
	}

	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if err := h.choreRepo.Save(txCtx, c); err != nil {
			return err
		}
		return drainEvents(txCtx, h.outboxRepo, c, cmd.ActorID)
	})
}
