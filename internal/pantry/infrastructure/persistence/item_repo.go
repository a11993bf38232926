package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/rota/internal/pantry/domain/item"
	sharedDomain "github.com/felixgeelhaar/rota/internal/shared/domain"
	"github.com/felixgeelhaar/rota/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

// ErrOptimisticLocking is returned when a save races with a concurrent write.
var ErrOptimisticLocking = errors.New("optimistic locking conflict")

// ItemRepository implements item.Repository on the shared database
// abstraction. The buyer queue is stored as a JSON array so the same schema
// works on PostgreSQL and SQLite.
type ItemRepository struct {
	conn database.Connection
}

// NewItemRepository creates a new item repository.
func NewItemRepository(conn database.Connection) *ItemRepository {
	return &ItemRepository{conn: conn}
}

type itemRow struct {
	ID         uuid.UUID
	Name       string
	InStock    bool
	BuyerQueue string
	Cursor     int
	Version    int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

const itemColumns = `id, name, in_stock, buyer_queue, cursor_index, version, created_at, updated_at`

// Save persists an item, inserting or updating by id with an optimistic
// version check.
func (r *ItemRepository) Save(ctx context.Context, it *item.Item) error {
	queue, err := json.Marshal(it.BuyerQueue())
	if err != nil {
		return fmt.Errorf("marshal buyer queue: %w", err)
	}

	query := `
		INSERT INTO items (
			id, name, in_stock, buyer_queue, cursor_index, version, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			in_stock = EXCLUDED.in_stock,
			buyer_queue = EXCLUDED.buyer_queue,
			cursor_index = EXCLUDED.cursor_index,
			version = items.version + 1,
			updated_at = EXCLUDED.updated_at
		WHERE items.version = $6
		RETURNING version
	`

	var newVersion int
	exec := database.ExecutorFromContext(ctx, r.conn)
	err = exec.QueryRow(ctx, query,
		it.ID(),
		it.Name(),
		it.InStock(),
		string(queue),
		it.Cursor(),
		it.Version(),
		it.CreatedAt(),
		time.Now().UTC(),
	).Scan(&newVersion)

	if err != nil {
		if database.IsNoRows(err) {
			return ErrOptimisticLocking
		}
		return err
	}
	return nil
}

// FindAll retrieves every item in creation order.
func (r *ItemRepository) FindAll(ctx context.Context) ([]*item.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY created_at, name`

	exec := database.ExecutorFromContext(ctx, r.conn)
	rows, err := exec.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*item.Item
	for rows.Next() {
		var row itemRow
		err := rows.Scan(
			&row.ID,
			&row.Name,
			&row.InStock,
			&row.BuyerQueue,
			&row.Cursor,
			&row.Version,
			&row.CreatedAt,
			&row.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		it, err := rowToItem(row)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// FindByName retrieves an item by its unique name.
func (r *ItemRepository) FindByName(ctx context.Context, name string) (*item.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE name = $1`

	var row itemRow
	exec := database.ExecutorFromContext(ctx, r.conn)
	err := exec.QueryRow(ctx, query, name).Scan(
		&row.ID,
		&row.Name,
		&row.InStock,
		&row.BuyerQueue,
		&row.Cursor,
		&row.Version,
		&row.CreatedAt,
		&row.UpdatedAt,
	)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, item.ErrNotFound
		}
		return nil, err
	}
	return rowToItem(row)
}

// Delete removes an item by name.
func (r *ItemRepository) Delete(ctx context.Context, name string) error {
	query := `DELETE FROM items WHERE name = $1`
	exec := database.ExecutorFromContext(ctx, r.conn)
	result, err := exec.Exec(ctx, query, name)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return item.ErrNotFound
	}
	return nil
}

// UpdateConditional writes a stock transition only if the stored stock flag
// still matches expectInStock. Zero affected rows means another report won
// the race.
func (r *ItemRepository) UpdateConditional(ctx context.Context, it *item.Item, expectInStock bool) error {
	queue, err := json.Marshal(it.BuyerQueue())
	if err != nil {
		return fmt.Errorf("marshal buyer queue: %w", err)
	}

	query := `
		UPDATE items
		SET in_stock = $1, buyer_queue = $2, cursor_index = $3,
			version = version + 1, updated_at = $4
		WHERE id = $5 AND in_stock = $6
	`

	exec := database.ExecutorFromContext(ctx, r.conn)
	result, err := exec.Exec(ctx, query,
		it.InStock(),
		string(queue),
		it.Cursor(),
		time.Now().UTC(),
		it.ID(),
		expectInStock,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return item.ErrAlreadyHandled
	}
	return nil
}

func rowToItem(row itemRow) (*item.Item, error) {
	var queue []int64
	if row.BuyerQueue != "" {
		if err := json.Unmarshal([]byte(row.BuyerQueue), &queue); err != nil {
			return nil, fmt.Errorf("unmarshal buyer queue: %w", err)
		}
	}
	base := sharedDomain.RehydrateBaseAggregateRoot(
		sharedDomain.RehydrateBaseEntity(row.ID, row.CreatedAt, row.UpdatedAt),
		row.Version,
	)
	return item.Rehydrate(base, row.Name, row.InStock, queue, row.Cursor), nil
}
