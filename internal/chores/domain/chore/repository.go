package chore

import "context"

// Repository defines the interface for chore persistence.
type Repository interface {
	Save(ctx context.Context, c *Chore) error
	FindAll(ctx context.Context) ([]*Chore, error)
	FindByName(ctx context.Context, name string) (*Chore, error)
	Delete(ctx context.Context, name string) error

	// FindAssignedIncomplete returns the member's current open chore,
	// or ErrNotFound when they have nothing outstanding.
	FindAssignedIncomplete(ctx context.Context, telegramID int64) (*Chore, error)

	// FindIncomplete returns every chore still open this cycle.
	FindIncomplete(ctx context.Context) ([]*Chore, error)

	// ResetAllCycles clears assignment and completion state on every chore.
	ResetAllCycles(ctx context.Context) error
}
