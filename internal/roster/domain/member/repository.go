package member

import "context"

// Repository defines the interface for member persistence.
type Repository interface {
	Save(ctx context.Context, m *Member) error
	FindAll(ctx context.Context) ([]*Member, error)
	FindByTelegramID(ctx context.Context, telegramID int64) (*Member, error)

	// IncrementPoints applies a signed delta atomically at the store, safe
	// under concurrent callers. Returns ErrNotFound for unknown members.
	IncrementPoints(ctx context.Context, telegramID int64, delta int) error

	// ResetAllPoints snaps every member's points to zero.
	ResetAllPoints(ctx context.Context) (int64, error)
}
