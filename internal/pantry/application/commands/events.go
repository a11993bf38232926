package commands

import (
	"context"

	sharedApplication "github.com/felixgeelhaar/rota/internal/shared/application"
	"github.com/felixgeelhaar/rota/internal/shared/domain"
	"github.com/felixgeelhaar/rota/internal/shared/infrastructure/outbox"
)

type eventSource interface {
	DomainEvents() []domain.DomainEvent
	ClearDomainEvents()
}

// drainEvents moves an aggregate's uncommitted events into the outbox.
func drainEvents(ctx context.Context, repo outbox.Repository, src eventSource, actorID int64) error {
	events := src.DomainEvents()
	if len(events) == 0 {
		return nil
	}
	sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(actorID))

	msgs := make([]*outbox.Message, 0, len(events))
	for _, event := range events {
		msg, err := outbox.NewMessage(event)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	src.ClearDomainEvents()
	return repo.SaveBatch(ctx, msgs)
}
