package chore

import (
	"github.com/felixgeelhaar/rota/internal/shared/domain"
	"github.com/google/uuid"
)

const (
	AggregateType = "Chore"

	RoutingKeyCreated   = "rota.chores.created"
	RoutingKeyAssigned  = "rota.chores.assigned"
	RoutingKeyCompleted = "rota.chores.completed"
	RoutingKeyDeleted   = "rota.chores.deleted"
)

// ChoreCreated is emitted when a new chore is created.
type ChoreCreated struct {
	domain.BaseEvent
	Name       string `json:"name"`
	Difficulty string `json:"difficulty"`
}

// NewChoreCreated creates a ChoreCreated event.
func NewChoreCreated(choreID uuid.UUID, name, difficulty string) *ChoreCreated {
	return &ChoreCreated{
		BaseEvent:  domain.NewBaseEvent(choreID, AggregateType, RoutingKeyCreated),
		Name:       name,
		Difficulty: difficulty,
	}
}

// ChoreAssigned is emitted when a chore is handed to a member.
type ChoreAssigned struct {
	domain.BaseEvent
	Name       string `json:"name"`
	TelegramID int64  `json:"telegram_id"`
}

// NewChoreAssigned creates a ChoreAssigned event.
func NewChoreAssigned(choreID uuid.UUID, name string, telegramID int64) *ChoreAssigned {
	return &ChoreAssigned{
		BaseEvent:  domain.NewBaseEvent(choreID, AggregateType, RoutingKeyAssigned),
		Name:       name,
		TelegramID: telegramID,
	}
}

// ChoreCompleted is emitted when the assignee finishes a chore.
type ChoreCompleted struct {
	domain.BaseEvent
	Name       string `json:"name"`
	TelegramID int64  `json:"telegram_id"`
}

// NewChoreCompleted creates a ChoreCompleted event.
func NewChoreCompleted(choreID uuid.UUID, name string, telegramID int64) *ChoreCompleted {
	return &ChoreCompleted{
		BaseEvent:  domain.NewBaseEvent(choreID, AggregateType, RoutingKeyCompleted),
		Name:       name,
		TelegramID: telegramID,
	}
}

// ChoreDeleted is emitted when an admin removes a chore.
type ChoreDeleted struct {
	domain.BaseEvent
	Name string `json:"name"`
}

// NewChoreDeleted creates a ChoreDeleted event.
func NewChoreDeleted(choreID uuid.UUID, name string) *ChoreDeleted {
	return &ChoreDeleted{
		BaseEvent: domain.NewBaseEvent(choreID, AggregateType, RoutingKeyDeleted),
		Name:      name,
	}
}
