package member

import (
	"github.com/felixgeelhaar/rota/internal/shared/domain"
	"github.com/google/uuid"
)

const (
	AggregateType = "Member"

	RoutingKeyJoined         = "rota.roster.joined"
	RoutingKeyPointsAdjusted = "rota.roster.points_adjusted"
)

// MemberJoined is emitted when a member is first synced into the roster.
type MemberJoined struct {
	domain.BaseEvent
	TelegramID int64  `json:"telegram_id"`
	Name       string `json:"name"`
}

// NewMemberJoined creates a MemberJoined event.
func NewMemberJoined(memberID uuid.UUID, telegramID int64, name string) *MemberJoined {
	return &MemberJoined{
		BaseEvent:  domain.NewBaseEvent(memberID, AggregateType, RoutingKeyJoined),
		TelegramID: telegramID,
		Name:       name,
	}
}

// PointsAdjusted is emitted when a member's points change.
type PointsAdjusted struct {
	domain.BaseEvent
	TelegramID int64 `json:"telegram_id"`
	Delta      int   `json:"delta"`
	Points     int   `json:"points"`
}

// NewPointsAdjusted creates a PointsAdjusted event.
func NewPointsAdjusted(memberID uuid.UUID, telegramID int64, delta, points int) *PointsAdjusted {
	return &PointsAdjusted{
		BaseEvent:  domain.NewBaseEvent(memberID, AggregateType, RoutingKeyPointsAdjusted),
		TelegramID: telegramID,
		Delta:      delta,
		Points:     points,
	}
}
