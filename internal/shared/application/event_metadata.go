package application

import (
	"github.com/felixgeelhaar/rota/internal/shared/domain"
	"github.com/google/uuid"
)

type metadataSetter interface {
	SetMetadata(metadata domain.EventMetadata)
}

// NewEventMetadata creates command-scoped metadata for domain events.
// The actor is the telegram id of the member who caused the command,
// or zero for scheduler-driven commands.
func NewEventMetadata(actorID int64) domain.EventMetadata {
	return domain.EventMetadata{
		CorrelationID: uuid.New(),
		ActorID:       actorID,
	}
}

// ApplyEventMetadata sets metadata on all events that support it.
func ApplyEventMetadata(events []domain.DomainEvent, metadata domain.EventMetadata) {
	for _, event := range events {
		if setter, ok := event.(metadataSetter); ok {
			setter.SetMetadata(metadata)
		}
	}
}
