package item

import (
	"github.com/felixgeelhaar/rota/internal/shared/domain"
	"github.com/google/uuid"
)

const (
	AggregateType = "Item"

	RoutingKeyCreated   = "rota.pantry.created"
	RoutingKeyDepleted  = "rota.pantry.depleted"
	RoutingKeyRestocked = "rota.pantry.restocked"
)

// ItemCreated is emitted when a new item starts being tracked.
type ItemCreated struct {
	domain.BaseEvent
	Name string `json:"name"`
}

// NewItemCreated creates an ItemCreated event.
func NewItemCreated(itemID uuid.UUID, name string) *ItemCreated {
	return &ItemCreated{
		BaseEvent: domain.NewBaseEvent(itemID, AggregateType, RoutingKeyCreated),
		Name:      name,
	}
}

// ItemDepleted is emitted when a member reports an item out of stock.
type ItemDepleted struct {
	domain.BaseEvent
	Name       string `json:"name"`
	ReporterID int64  `json:"reporter_id"`
	NextBuyer  int64  `json:"next_buyer"`
}

// NewItemDepleted creates an ItemDepleted event.
func NewItemDepleted(itemID uuid.UUID, name string, reporterID, nextBuyer int64) *ItemDepleted {
	return &ItemDepleted{
		BaseEvent:  domain.NewBaseEvent(itemID, AggregateType, RoutingKeyDepleted),
		Name:       name,
		ReporterID: reporterID,
		NextBuyer:  nextBuyer,
	}
}

// ItemRestocked is emitted when the expected buyer confirms a purchase.
type ItemRestocked struct {
	domain.BaseEvent
	Name    string `json:"name"`
	BuyerID int64  `json:"buyer_id"`
}

// NewItemRestocked creates an ItemRestocked event.
func NewItemRestocked(itemID uuid.UUID, name string, buyerID int64) *ItemRestocked {
	return &ItemRestocked{
		BaseEvent: domain.NewBaseEvent(itemID, AggregateType, RoutingKeyRestocked),
		Name:      name,
		BuyerID:   buyerID,
	}
}
