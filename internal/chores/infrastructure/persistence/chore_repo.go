package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/felixgeelhaar/rota/internal/chores/domain/chore"
	sharedDomain "github.com/felixgeelhaar/rota/internal/shared/domain"
	"github.com/felixgeelhaar/rota/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

// ErrOptimisticLocking is returned when a save races with a concurrent write.
var ErrOptimisticLocking = errors.New("optimistic locking conflict")

// ChoreRepository implements chore.Repository on the shared database
// abstraction.
type ChoreRepository struct {
	conn database.Connection
}

// NewChoreRepository creates a new chore repository.
func NewChoreRepository(conn database.Connection) *ChoreRepository {
	return &ChoreRepository{conn: conn}
}

type choreRow struct {
	ID         uuid.UUID
	Name       string
	Difficulty string
	AssignedTo *int64
	Completed  bool
	Version    int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

const choreColumns = `id, name, difficulty, assigned_to, completed, version, created_at, updated_at`

// Save persists a chore, inserting or updating by id with an optimistic
// version check.
func (r *ChoreRepository) Save(ctx context.Context, c *chore.Chore) error {
	query := `
		INSERT INTO chores (
			id, name, difficulty, assigned_to, completed, version, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			difficulty = EXCLUDED.difficulty,
			assigned_to = EXCLUDED.assigned_to,
			completed = EXCLUDED.completed,
			version = chores.version + 1,
			updated_at = EXCLUDED.updated_at
		WHERE chores.version = $6
		RETURNING version
	`

	var newVersion int
	exec := database.ExecutorFromContext(ctx, r.conn)
	err := exec.QueryRow(ctx, query,
		c.ID(),
		c.Name(),
		string(c.Difficulty()),
		c.AssignedTo(),
		c.IsCompleted(),
		c.Version(),
		c.CreatedAt(),
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

// FindAll retrieves every chore in creation order.
func (r *ChoreRepository) FindAll(ctx context.Context) ([]*chore.Chore, error) {
	query := `SELECT ` + choreColumns + ` FROM chores ORDER BY created_at, name`
	return r.queryChores(ctx, query)
}

// FindByName retrieves a chore by its unique name.
func (r *ChoreRepository) FindByName(ctx context.Context, name string) (*chore.Chore, error) {
	query := `SELECT ` + choreColumns + ` FROM chores WHERE name = $1`

	var row choreRow
	exec := database.ExecutorFromContext(ctx, r.conn)
	err := exec.QueryRow(ctx, query, name).Scan(
		&row.ID,
		&row.Name,
		&row.Difficulty,
		&row.AssignedTo,
		&row.Completed,
		&row.Version,
		&row.CreatedAt,
		&row.UpdatedAt,
	)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, chore.ErrNotFound
		}
		return nil, err
	}
	return rowToChore(row)
}

// Delete removes a chore by name.
func (r *ChoreRepository) Delete(ctx context.Context, name string) error {
	query := `DELETE FROM chores WHERE name = $1`
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
		return chore.ErrNotFound
	}
	return nil
}

// FindAssignedIncomplete returns the member's current open chore.
func (r *ChoreRepository) FindAssignedIncomplete(ctx context.Context, telegramID int64) (*chore.Chore, error) {
	query := `
		SELECT ` + choreColumns + `
		FROM chores
		WHERE assigned_to = $1 AND completed = $2
		ORDER BY created_at
		LIMIT 1
	`

	var row choreRow
	exec := database.ExecutorFromContext(ctx, r.conn)
	err := exec.QueryRow(ctx, query, telegramID, false).Scan(
		&row.ID,
		&row.Name,
		&row.Difficulty,
		&row.AssignedTo,
		&row.Completed,
		&row.Version,
		&row.CreatedAt,
		&row.UpdatedAt,
	)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, chore.ErrNotFound
		}
		return nil, err
	}
	return rowToChore(row)
}

// FindIncomplete returns every chore still open this cycle.
func (r *ChoreRepository) FindIncomplete(ctx context.Context) ([]*chore.Chore, error) {
	query := `SELECT ` + choreColumns + ` FROM chores WHERE completed = $1 ORDER BY created_at, name`
	return r.queryChores(ctx, query, false)
}

// ResetAllCycles clears assignment and completion state on every chore.
func (r *ChoreRepository) ResetAllCycles(ctx context.Context) error {
	query := `
		UPDATE chores
		SET assigned_to = NULL, completed = $1, version = version + 1, updated_at = $2
	`
	exec := database.ExecutorFromContext(ctx, r.conn)
	_, err := exec.Exec(ctx, query, false, time.Now().UTC())
	return err
}

func (r *ChoreRepository) queryChores(ctx context.Context, query string, args ...any) ([]*chore.Chore, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chores []*chore.Chore
	for rows.Next() {
		var row choreRow
		err := rows.Scan(
			&row.ID,
			&row.Name,
			&row.Difficulty,
			&row.AssignedTo,
			&row.Completed,
			&row.Version,
			&row.CreatedAt,
			&row.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		c, err := rowToChore(row)
		if err != nil {
			return nil, err
		}
		chores = append(chores, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return chores, nil
}

func rowToChore(row choreRow) (*chore.Chore, error) {
	difficulty, err := chore.ParseDifficulty(row.Difficulty)
	if err != nil {
		return nil, err
	}
	base := sharedDomain.RehydrateBaseAggregateRoot(
		sharedDomain.RehydrateBaseEntity(row.ID, row.CreatedAt, row.UpdatedAt),
		row.Version,
	)
	return chore.Rehydrate(base, row.Name, difficulty, row.AssignedTo, row.Completed), nil
}
