package commands

import (
	"context"

	"github.com/felixgeelhaar/rota/internal/roster/domain/member"
)

// ResetPointsCommand snaps every member's points to zero.
type ResetPointsCommand struct{}

// ResetPointsResult reports how many members were reset.
type ResetPointsResult struct {
	MembersReset int64
}

// ResetPointsHandler handles the monthly points reset.
type ResetPointsHandler struct {
	memberRepo member.Repository
}

// NewResetPointsHandler creates a new ResetPointsHandler.
func NewResetPointsHandler(memberRepo member.Repository) *ResetPointsHandler {
	return &ResetPointsHandler{memberRepo: memberRepo}
}

// Handle resets all points unconditionally. Running it twice in the same
// window yields the same state, so duplicate scheduler fires are harmless.
func (h *ResetPointsHandler) Handle(ctx context.Context, _ ResetPointsCommand) (*ResetPointsResult, error) {
	reset, err := h.memberRepo.ResetAllPoints(ctx)
	if err != nil {
		return nil, err
	}
	return &ResetPointsResult{MembersReset: reset}, nil
}
