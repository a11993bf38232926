package item

import "context"

// Repository persists items.
//
// UpdateConditional applies a stock transition only when the stored in_stock
// flag still matches expectInStock, so concurrent depletion or purchase
// reports cannot both land. A lost race returns ErrAlreadyHandled.
type Repository interface {
	Save(ctx context.Context, it *Item) error
	FindAll(ctx context.Context) ([]*Item, error)
	FindByName(ctx context.Context, name string) (*Item, error)
	Delete(ctx context.Context, name string) error
	UpdateConditional(ctx context.Context, it *Item, expectInStock bool) error
}
