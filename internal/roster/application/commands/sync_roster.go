package commands

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/rota/internal/roster/domain/member"
	sharedApplication "github.com/felixgeelhaar/rota/internal/shared/application"
	"github.com/felixgeelhaar/rota/internal/shared/infrastructure/outbox"
)

// RosterEntry identifies one chat member to sync.
type RosterEntry struct {
	TelegramID int64
	Name       string
}

// SyncRosterCommand upserts the given chat members into the roster.
type SyncRosterCommand struct {
	Entries []RosterEntry
	ActorID int64
}

// SyncRosterResult lists the display names that were synced.
type SyncRosterResult struct {
	Names []string
}

// SyncRosterHandler handles the SyncRosterCommand.
type SyncRosterHandler struct {
	memberRepo member.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewSyncRosterHandler creates a new SyncRosterHandler.
func NewSyncRosterHandler(memberRepo member.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *SyncRosterHandler {
	return &SyncRosterHandler{
		memberRepo: memberRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle upserts each entry by telegram id. Existing members keep their
// points; their assignment history is cleared so the next cycle starts
// fresh, matching a roster re-sync.
func (h *SyncRosterHandler) Handle(ctx context.Context, cmd SyncRosterCommand) (*SyncRosterResult, error) {
	result := &SyncRosterResult{}

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		for _, entry := range cmd.Entries {
			m, err := h.memberRepo.FindByTelegramID(txCtx, entry.TelegramID)
			switch {
			case errors.Is(err, member.ErrNotFound):
				m, err = member.NewMember(entry.TelegramID, entry.Name)
				if err != nil {
					return err
				}
			case err != nil:
				return err
			default:
				if err := m.Rename(entry.Name); err != nil {
					return err
				}
				m.ClearAssignmentHistory()
			}

			if err := h.memberRepo.Save(txCtx, m); err != nil {
				return err
			}
			if err := saveEvents(txCtx, h.outboxRepo, m, cmd.ActorID); err != nil {
				return err
			}
			result.Names = append(result.Names, m.Name())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func saveEvents(ctx context.Context, repo outbox.Repository, m *member.Member, actorID int64) error {
	events := m.DomainEvents()
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
	m.ClearDomainEvents()
	return repo.SaveBatch(ctx, msgs)
}
