package commands

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/rota/internal/chores/domain/chore"
	"github.com/felixgeelhaar/rota/internal/roster/domain/member"
	sharedApplication "github.com/felixgeelhaar/rota/internal/shared/application"
	"github.com/felixgeelhaar/rota/internal/shared/infrastructure/outbox"
)

// ErrNothingToComplete is returned when the member has no open chore.
// Callers treat it as a notice to the member, not a failure.
var ErrNothingToComplete = errors.New("no incomplete chore assigned")

// CompleteChoreCommand marks the caller's assigned chore as done.
type CompleteChoreCommand struct {
	TelegramID int64
}

// CompleteChoreResult describes the completed chore for announcements.
type CompleteChoreResult struct {
	ChoreName  string
	MemberName string
	Points     int
}

// CompleteChoreHandler handles the CompleteChoreCommand.
type CompleteChoreHandler struct {
	choreRepo  chore.Repository
	memberRepo member.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewCompleteChoreHandler creates a new CompleteChoreHandler.
func NewCompleteChoreHandler(choreRepo chore.Repository, memberRepo member.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *CompleteChoreHandler {
	return &CompleteChoreHandler{
		choreRepo:  choreRepo,
		memberRepo: memberRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle finds the member's open chore, completes it, and awards one point.
func (h *CompleteChoreHandler) Handle(ctx context.Context, cmd CompleteChoreCommand) (*CompleteChoreResult, error) {
	m, err := h.memberRepo.FindByTelegramID(ctx, cmd.TelegramID)
	if err != nil {
		return nil, err
	}

	var result *CompleteChoreResult
	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		c, err := h.choreRepo.FindAssignedIncomplete(txCtx, cmd.TelegramID)
		if errors.Is(err, chore.ErrNotFound) {
			return ErrNothingToComplete
		}
		if err != nil {
			return err
		}

		if err := c.Complete(); err != nil {
			return err
		}
		if err := h.choreRepo.Save(txCtx, c); err != nil {
			return err
		}

		// The store applies the delta atomically; the aggregate mirrors
		// it so the points event reaches the outbox.
		m.AdjustPoints(1)
		if err := h.memberRepo.IncrementPoints(txCtx, cmd.TelegramID, 1); err != nil {
			return err
		}

		if err := drainEvents(txCtx, h.outboxRepo, c, cmd.TelegramID); err != nil {
			return err
		}
		if err := drainEvents(txCtx, h.outboxRepo, m, cmd.TelegramID); err != nil {
			return err
		}

		result = &CompleteChoreResult{
			ChoreName:  c.Name(),
			MemberName: m.Name(),
			Points:     m.Points(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
