package commands

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/rota/internal/chores/domain/chore"
	"github.com/felixgeelhaar/rota/internal/roster/domain/member"
	sharedApplication "github.com/felixgeelhaar/rota/internal/shared/application"
	"github.com/felixgeelhaar/rota/internal/shared/infrastructure/outbox"
)

// RolloverCycleCommand closes the week: penalize incomplete chores and
// clear all assignment state for the next cycle.
type RolloverCycleCommand struct{}

// RolloverCycleResult lists the members who lost a point, one entry per
// unfinished chore.
type RolloverCycleResult struct {
	Penalized []string
}

// RolloverCycleHandler handles the RolloverCycleCommand.
type RolloverCycleHandler struct {
	choreRepo  chore.Repository
	memberRepo member.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewRolloverCycleHandler creates a new RolloverCycleHandler.
func NewRolloverCycleHandler(choreRepo chore.Repository, memberRepo member.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *RolloverCycleHandler {
	return &RolloverCycleHandler{
		choreRepo:  choreRepo,
		memberRepo: memberRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle docks one point per incomplete chore, then resets every chore.
// Chores whose assignee no longer resolves are skipped, not errored.
func (h *RolloverCycleHandler) Handle(ctx context.Context, _ RolloverCycleCommand) (*RolloverCycleResult, error) {
	result := &RolloverCycleResult{}

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		open, err := h.choreRepo.FindIncomplete(txCtx)
		if err != nil {
			return err
		}

		for _, c := range open {
			if c.AssignedTo() == nil {
				continue
			}
			m, err := h.memberRepo.FindByTelegramID(txCtx, *c.AssignedTo())
			if errors.Is(err, member.ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			// The store applies the delta atomically; the aggregate
			// mirrors it so the points event reaches the outbox.
			m.AdjustPoints(-1)
			if err := h.memberRepo.IncrementPoints(txCtx, m.TelegramID(), -1); err != nil {
				return err
			}
			if err := drainEvents(txCtx, h.outboxRepo, m, 0); err != nil {
				return err
			}
			result.Penalized = append(result.Penalized, m.Name())
		}

		return h.choreRepo.ResetAllCycles(txCtx)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
