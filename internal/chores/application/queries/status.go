package queries

import (
	"context"

	"github.com/felixgeelhaar/rota/internal/chores/domain/chore"
	"github.com/felixgeelhaar/rota/internal/roster/domain/member"
)

// ChoreStatusDTO is one row of the cycle status report.
type ChoreStatusDTO struct {
	Name         string
	Difficulty   string
	AssigneeName string
	Assigned     bool
	Completed    bool
}

// StatusQuery lists every chore with its assignee and completion state.
type StatusQuery struct{}

// StatusHandler handles the StatusQuery.
type StatusHandler struct {
	choreRepo  chore.Repository
	memberRepo member.Repository
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(choreRepo chore.Repository, memberRepo member.Repository) *StatusHandler {
	return &StatusHandler{choreRepo: choreRepo, memberRepo: memberRepo}
}

// Handle returns the chore list with assignee names resolved. An assignee
// missing from the roster is reported as unassigned rather than erroring.
func (h *StatusHandler) Handle(ctx context.Context, _ StatusQuery) ([]ChoreStatusDTO, error) {
	chores, err := h.choreRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	members, err := h.memberRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[int64]string, len(members))
	for _, m := range members {
		names[m.TelegramID()] = m.Name()
	}

	statuses := make([]ChoreStatusDTO, 0, len(chores))
	for _, c := range chores {
		dto := ChoreStatusDTO{
			Name:       c.Name(),
			Difficulty: string(c.Difficulty()),
			Completed:  c.IsCompleted(),
		}
		if c.AssignedTo() != nil {
			if name, ok := names[*c.AssignedTo()]; ok {
				dto.AssigneeName = name
				dto.Assigned = true
			}
		}
		statuses = append(statuses, dto)
	}
	return statuses, nil
}
