package commands

import (
	"context"

	"github.com/felixgeelhaar/rota/internal/chores/application/services"
	"github.com/felixgeelhaar/rota/internal/chores/domain/chore"
	"github.com/felixgeelhaar/rota/internal/roster/domain/member"
	sharedApplication "github.com/felixgeelhaar/rota/internal/shared/application"
	"github.com/felixgeelhaar/rota/internal/shared/infrastructure/outbox"
)

// RunAssignmentCommand starts a new cycle by drawing chores for the roster.
type RunAssignmentCommand struct {
	ActorID int64
}

// PickDTO is one line of the assignment announcement, in roster order.
type PickDTO struct {
	MemberName string
	ChoreName  string
	Assigned   bool
}

// AssignmentResult carries the cycle's picks for the notification layer.
type AssignmentResult struct {
	Picks []PickDTO
}

// Empty reports whether the cycle assigned nothing (empty roster or pool).
func (r *AssignmentResult) Empty() bool { return len(r.Picks) == 0 }

// RunAssignmentHandler handles the RunAssignmentCommand.
type RunAssignmentHandler struct {
	choreRepo  chore.Repository
	memberRepo member.Repository
	engine     *services.AssignmentEngine
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewRunAssignmentHandler creates a new RunAssignmentHandler.
func NewRunAssignmentHandler(
	choreRepo chore.Repository,
	memberRepo member.Repository,
	engine *services.AssignmentEngine,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
) *RunAssignmentHandler {
	return &RunAssignmentHandler{
		choreRepo:  choreRepo,
		memberRepo: memberRepo,
		engine:     engine,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle draws the new cycle's assignment and persists it. An empty roster
// or chore pool yields an empty result, not an error.
func (h *RunAssignmentHandler) Handle(ctx context.Context, cmd RunAssignmentCommand) (*AssignmentResult, error) {
	members, err := h.memberRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	chores, err := h.choreRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	picks := h.engine.Assign(members, chores)
	result := &AssignmentResult{Picks: make([]PickDTO, 0, len(picks))}

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		for _, pick := range picks {
			dto := PickDTO{MemberName: pick.Member.Name()}

			if pick.Assigned() {
				pick.Chore.Assign(pick.Member.TelegramID())
				if err := h.choreRepo.Save(txCtx, pick.Chore); err != nil {
					return err
				}

				pick.Member.RecordAssignment(pick.Chore.Name())
				if err := h.memberRepo.Save(txCtx, pick.Member); err != nil {
					return err
				}

				if err := drainEvents(txCtx, h.outboxRepo, pick.Chore, cmd.ActorID); err != nil {
					return err
				}

				dto.ChoreName = pick.Chore.Name()
				dto.Assigned = true
			}

			result.Picks = append(result.Picks, dto)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
