package queries

import (
	"context"
	"sort"

	"github.com/felixgeelhaar/rota/internal/roster/domain/member"
)

// StandingDTO is one row of the points leaderboard.
type StandingDTO struct {
	TelegramID int64
	Name       string
	Points     int
}

// LeaderboardQuery lists members ranked by points.
type LeaderboardQuery struct{}

// LeaderboardHandler handles the LeaderboardQuery.
type LeaderboardHandler struct {
	memberRepo member.Repository
}

// NewLeaderboardHandler creates a new LeaderboardHandler.
func NewLeaderboardHandler(memberRepo member.Repository) *LeaderboardHandler {
	return &LeaderboardHandler{memberRepo: memberRepo}
}

// Handle returns standings in descending points order; ties keep roster order.
func (h *LeaderboardHandler) Handle(ctx context.Context, _ LeaderboardQuery) ([]StandingDTO, error) {
	members, err := h.memberRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	standings := make([]StandingDTO, 0, len(members))
	for _, m := range members {
		standings = append(standings, StandingDTO{
			TelegramID: m.TelegramID(),
			Name:       m.Name(),
			Points:     m.Points(),
		})
	}
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Points > standings[j].Points
	})
	return standings, nil
}
