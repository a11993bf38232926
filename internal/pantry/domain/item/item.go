package item

import (
	"errors"
	"strings"

	"github.com/felixgeelhaar/rota/internal/shared/domain"
)

var (
	// ErrEmptyName is returned when an item name is empty.
	ErrEmptyName = errors.New("item name cannot be empty")
	// ErrNotFound is returned when an item does not exist.
	ErrNotFound = errors.New("item not found")
	// ErrEmptyBuyerQueue is returned when a stock transition needs a buyer
	// but the queue has none.
	ErrEmptyBuyerQueue = errors.New("item has no buyer queue")
	// ErrNotYourTurn is returned when someone other than the expected buyer
	// confirms a purchase.
	ErrNotYourTurn = errors.New("it is not your turn to buy this item")
	// ErrAlreadyHandled is returned when a stock transition raced with an
	// identical one and lost.
	ErrAlreadyHandled = errors.New("item stock state already changed")
	// ErrAlreadyOutOfStock is returned when depleting an item that is
	// already out of stock.
	ErrAlreadyOutOfStock = errors.New("item is already out of stock")
	// ErrAlreadyInStock is returned when confirming a purchase for an item
	// that is not out of stock.
	ErrAlreadyInStock = errors.New("item is already in stock")
)

// Item is a shared household good with a circular buyer rotation. Each
// depletion advances the cursor one position and puts the member at the new
// cursor on the hook for restocking.
type Item struct {
	domain.BaseAggregateRoot
	name       string
	inStock    bool
	buyerQueue []int64
	cursor     int
}

// NewItem creates a new tracked item. A fresh item starts in stock with the
// cursor at the head of the queue.
func NewItem(name string, buyerQueue []int64) (*Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	it := &Item{
		BaseAggregateRoot: domain.NewBaseAggregateRoot(),
		name:              name,
		inStock:           true,
		buyerQueue:        append([]int64(nil), buyerQueue...),
		cursor:            0,
	}
	it.AddDomainEvent(NewItemCreated(it.ID(), name))
	return it, nil
}

// Rehydrate reconstructs an Item from persistence without raising events.
func Rehydrate(base domain.BaseAggregateRoot, name string, inStock bool, buyerQueue []int64, cursor int) *Item {
	return &Item{
		BaseAggregateRoot: base,
		name:              name,
		inStock:           inStock,
		buyerQueue:        buyerQueue,
		cursor:            cursor,
	}
}

func (i *Item) Name() string        { return i.name }
func (i *Item) InStock() bool       { return i.inStock }
func (i *Item) BuyerQueue() []int64 { return append([]int64(nil), i.buyerQueue...) }
func (i *Item) Cursor() int         { return i.cursor }

// ExpectedBuyer returns the telegram id at the cursor, the member whose turn
// it currently is.
func (i *Item) ExpectedBuyer() (int64, error) {
	if len(i.buyerQueue) == 0 {
		return 0, ErrEmptyBuyerQueue
	}
	return i.buyerQueue[i.cursor%len(i.buyerQueue)], nil
}

// SetBuyerQueue replaces the rotation order and rewinds the cursor.
func (i *Item) SetBuyerQueue(buyerQueue []int64) {
	i.buyerQueue = append([]int64(nil), buyerQueue...)
	i.cursor = 0
	i.Touch()
}

// MarkOutOfStock records a depletion and advances the rotation one position.
// The member at the new cursor becomes the expected buyer and is returned.
func (i *Item) MarkOutOfStock(reporterID int64) (int64, error) {
	if !i.inStock {
		return 0, ErrAlreadyOutOfStock
	}
	if len(i.buyerQueue) == 0 {
		return 0, ErrEmptyBuyerQueue
	}

	i.inStock = false
	i.cursor = (i.cursor + 1) % len(i.buyerQueue)
	buyer := i.buyerQueue[i.cursor]
	i.Touch()
	i.AddDomainEvent(NewItemDepleted(i.ID(), i.name, reporterID, buyer))
	return buyer, nil
}

// MarkBought records a restock. Only the expected buyer may confirm; anyone
// else gets ErrNotYourTurn and the item is left untouched. On success the
// cursor advances so the duty rotates to the next member.
func (i *Item) MarkBought(buyerID int64) error {
	if i.inStock {
		return ErrAlreadyInStock
	}
	if len(i.buyerQueue) == 0 {
		return ErrEmptyBuyerQueue
	}
	if i.buyerQueue[i.cursor] != buyerID {
		return ErrNotYourTurn
	}

	i.inStock = true
	i.cursor = (i.cursor + 1) % len(i.buyerQueue)
	i.Touch()
	i.AddDomainEvent(NewItemRestocked(i.ID(), i.name, buyerID))
	return nil
}
