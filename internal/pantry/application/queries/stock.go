package queries

import (
	"context"

	"github.com/felixgeelhaar/rota/internal/pantry/domain/item"
	"github.com/felixgeelhaar/rota/internal/roster/domain/member"
)

// StockDTO describes one tracked item for display.
type StockDTO struct {
	Name      string
	InStock   bool
	NextBuyer string
}

// StockHandler lists every tracked item with its stock state and, for
// depleted items, the member whose turn it is to buy.
type StockHandler struct {
	itemRepo   item.Repository
	memberRepo member.Repository
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(itemRepo item.Repository, memberRepo member.Repository) *StockHandler {
	return &StockHandler{itemRepo: itemRepo, memberRepo: memberRepo}
}

// Handle returns the stock report in item creation order.
func (h *StockHandler) Handle(ctx context.Context) ([]StockDTO, error) {
	items, err := h.itemRepo.FindAll(ctx)
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

	report := make([]StockDTO, 0, len(items))
	for _, it := range items {
		dto := StockDTO{Name: it.Name(), InStock: it.InStock()}
		if !it.InStock() {
			if buyerID, err := it.ExpectedBuyer(); err == nil {
				dto.NextBuyer = names[buyerID]
			}
		}
		report = append(report, dto)
	}
	return report, nil
}
