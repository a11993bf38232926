package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/felixgeelhaar/rota/internal/pantry/domain/item"
	"github.com/felixgeelhaar/rota/internal/roster/domain/member"
	sharedApplication "github.com/felixgeelhaar/rota/internal/shared/application"
	"github.com/felixgeelhaar/rota/internal/shared/infrastructure/outbox"
)

// ErrUnknownBuyer is returned when the rotation resolves to a telegram id
// that is no longer on the roster.
var ErrUnknownBuyer = errors.New("next buyer is not on the roster")

// ReportDepletedCommand flags an item as out of stock. Any member may report.
type ReportDepletedCommand struct {
	ItemName   string
	ReporterID int64
}

// ReportDepletedResult names the member now on the hook for restocking.
type ReportDepletedResult struct {
	ItemName      string
	BuyerID       int64
	BuyerName     string
	BuyerPosition int
	QueueLength   int
}

// ReportDepletedHandler handles the ReportDepletedCommand.
type ReportDepletedHandler struct {
	itemRepo   item.Repository
	memberRepo member.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewReportDepletedHandler creates a new ReportDepletedHandler.
func NewReportDepletedHandler(itemRepo item.Repository, memberRepo member.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *ReportDepletedHandler {
	return &ReportDepletedHandler{
		itemRepo:   itemRepo,
		memberRepo: memberRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle advances the rotation and conditionally writes the depleted state.
// A racing report loses the conditional write and gets ErrAlreadyHandled.
func (h *ReportDepletedHandler) Handle(ctx context.Context, cmd ReportDepletedCommand) (*ReportDepletedResult, error) {
	var result *ReportDepletedResult
	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		it, err := h.itemRepo.FindByName(txCtx, cmd.ItemName)
		if err != nil {
			return err
		}

		buyerID, err := it.MarkOutOfStock(cmd.ReporterID)
		if errors.Is(err, item.ErrAlreadyOutOfStock) {
			return item.ErrAlreadyHandled
		}
		if err != nil {
			return err
		}

		if err := h.itemRepo.UpdateConditional(txCtx, it, true); err != nil {
			return err
		}

		buyer, err := h.memberRepo.FindByTelegramID(txCtx, buyerID)
		if errors.Is(err, member.ErrNotFound) {
			return fmt.Errorf("%w: telegram id %d", ErrUnknownBuyer, buyerID)
		}
		if err != nil {
			return err
		}

		if err := drainEvents(txCtx, h.outboxRepo, it, cmd.ReporterID); err != nil {
			return err
		}

		result = &ReportDepletedResult{
			ItemName:      it.Name(),
			BuyerID:       buyerID,
			BuyerName:     buyer.Name(),
			BuyerPosition: it.Cursor(),
			QueueLength:   len(it.BuyerQueue()),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
