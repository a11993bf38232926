package commands

import (
	"context"

	"github.com/felixgeelhaar/rota/internal/chores/domain/chore"
	sharedApplication "github.com/felixgeelhaar/rota/internal/shared/application"
)

// EditChoreCommand changes a chore's difficulty grade.
type EditChoreCommand struct {
	Name       string
	Difficulty chore.Difficulty
	ActorID    int64
}

// EditChoreHandler handles the EditChoreCommand.
type EditChoreHandler struct {
	choreRepo chore.Repository
	uow       sharedApplication.UnitOfWork
}

// NewEditChoreHandler creates a new EditChoreHandler.
func NewEditChoreHandler(choreRepo chore.Repository, uow sharedApplication.UnitOfWork) *EditChoreHandler {
	return &EditChoreHandler{choreRepo: choreRepo, uow: uow}
}

// Handle executes the EditChoreCommand.
func (h *EditChoreHandler) Handle(ctx context.Context, cmd EditChoreCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		c, err := h.choreRepo.FindByName(txCtx, cmd.Name)
		if err != nil {
			return err
		}
		c.SetDifficulty(cmd.Difficulty)
		return h.choreRepo.Save(txCtx, c)
	})
}
