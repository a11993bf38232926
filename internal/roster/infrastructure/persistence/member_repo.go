package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/felixgeelhaar/rota/internal/roster/domain/member"
	sharedDomain "github.com/felixgeelhaar/rota/internal/shared/domain"
	"github.com/felixgeelhaar/rota/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

// ErrOptimisticLocking is returned when a save races with a concurrent write.
var ErrOptimisticLocking = errors.New("optimistic locking conflict")

// MemberRepository implements member.Repository on the shared database
// abstraction. The SQL is portable across both supported drivers.
type MemberRepository struct {
	conn database.Connection
}

// NewMemberRepository creates a new member repository.
func NewMemberRepository(conn database.Connection) *MemberRepository {
	return &MemberRepository{conn: conn}
}

type memberRow struct {
	ID            uuid.UUID
	TelegramID    int64
	Name          string
	Points        int
	PreviousChore *string
	Version       int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Save persists a member, inserting or updating by id with an optimistic
// version check.
func (r *MemberRepository) Save(ctx context.Context, m *member.Member) error {
	query := `
		INSERT INTO members (
			id, telegram_id, name, points, previous_chore, version, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			telegram_id = EXCLUDED.telegram_id,
			name = EXCLUDED.name,
			points = EXCLUDED.points,
			previous_chore = EXCLUDED.previous_chore,
			version = members.version + 1,
			updated_at = EXCLUDED.updated_at
		WHERE members.version = $6
		RETURNING version
	`

	var newVersion int
	exec := database.ExecutorFromContext(ctx, r.conn)
	err := exec.QueryRow(ctx, query,
		m.ID(),
		m.TelegramID(),
		m.Name(),
		m.Points(),
		m.PreviousChore(),
		m.Version(),
		m.CreatedAt(),
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

// FindAll retrieves the full roster in stable join order.
func (r *MemberRepository) FindAll(ctx context.Context) ([]*member.Member, error) {
	query := `
		SELECT id, telegram_id, name, points, previous_chore, version, created_at, updated_at
		FROM members
		ORDER BY created_at, telegram_id
	`

	exec := database.ExecutorFromContext(ctx, r.conn)
	rows, err := exec.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*member.Member
	for rows.Next() {
		var row memberRow
		if err := scanMember(rows, &row); err != nil {
			return nil, err
		}
		members = append(members, rowToMember(row))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return members, nil
}

// FindByTelegramID retrieves a member by telegram identity.
func (r *MemberRepository) FindByTelegramID(ctx context.Context, telegramID int64) (*member.Member, error) {
	query := `
		SELECT id, telegram_id, name, points, previous_chore, version, created_at, updated_at
		FROM members
		WHERE telegram_id = $1
	`

	var row memberRow
	exec := database.ExecutorFromContext(ctx, r.conn)
	err := exec.QueryRow(ctx, query, telegramID).Scan(
		&row.ID,
		&row.TelegramID,
		&row.Name,
		&row.Points,
		&row.PreviousChore,
		&row.Version,
		&row.CreatedAt,
		&row.UpdatedAt,
	)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, member.ErrNotFound
		}
		return nil, err
	}
	return rowToMember(row), nil
}

// IncrementPoints applies a signed delta in a single store-side update so
// concurrent scoring calls cannot lose increments.
func (r *MemberRepository) IncrementPoints(ctx context.Context, telegramID int64, delta int) error {
	query := `
		UPDATE members
		SET points = points + $1, version = version + 1, updated_at = $2
		WHERE telegram_id = $3
	`

	exec := database.ExecutorFromContext(ctx, r.conn)
	result, err := exec.Exec(ctx, query, delta, time.Now().UTC(), telegramID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return member.ErrNotFound
	}
	return nil
}

// ResetAllPoints snaps every member's points to zero.
func (r *MemberRepository) ResetAllPoints(ctx context.Context) (int64, error) {
	query := `UPDATE members SET points = 0, version = version + 1, updated_at = $1`
	exec := database.ExecutorFromContext(ctx, r.conn)
	result, err := exec.Exec(ctx, query, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func scanMember(rows database.Rows, row *memberRow) error {
	return rows.Scan(
		&row.ID,
		&row.TelegramID,
		&row.Name,
		&row.Points,
		&row.PreviousChore,
		&row.Version,
		&row.CreatedAt,
		&row.UpdatedAt,
	)
}

func rowToMember(row memberRow) *member.Member {
	base := sharedDomain.RehydrateBaseAggregateRoot(
		sharedDomain.RehydrateBaseEntity(row.ID, row.CreatedAt, row.UpdatedAt),
		row.Version,
	)
	return member.Rehydrate(base, row.TelegramID, row.Name, row.Points, row.PreviousChore)
}
