package member

import (
	"errors"
	"strings"

	"github.com/felixgeelhaar/rota/internal/shared/domain"
)

var (
	ErrEmptyName = errors.New("member name cannot be empty")
	ErrNotFound  = errors.New("member not found")
	ErrInvalidID = errors.New("telegram id must be positive")
)

// Member represents a household member participating in the chore rotation.
type Member struct {
	domain.BaseAggregateRoot
	telegramID    int64
	name          string
	points        int
	previousChore *string
}

// NewMember creates a new member with the given telegram identity.
func NewMember(telegramID int64, name string) (*Member, error) {
	if telegramID <= 0 {
		return nil, ErrInvalidID
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	m := &Member{
		BaseAggregateRoot: domain.NewBaseAggregateRoot(),
		telegramID:        telegramID,
		name:              name,
	}

	m.AddDomainEvent(NewMemberJoined(m.ID(), telegramID, name))

	return m, nil
}

// Rehydrate recreates a member from persisted state.
func Rehydrate(base domain.BaseAggregateRoot, telegramID int64, name string, points int, previousChore *string) *Member {
	return &Member{
		BaseAggregateRoot: base,
		telegramID:        telegramID,
		name:              name,
		points:            points,
		previousChore:     previousChore,
	}
}

func (m *Member) TelegramID() int64      { return m.telegramID }
func (m *Member) Name() string           { return m.name }
func (m *Member) Points() int            { return m.points }
func (m *Member) PreviousChore() *string { return m.previousChore }

// Rename updates the member's display name, tracking chat profile changes.
func (m *Member) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	m.name = name
	m.Touch()
	return nil
}

// RecordAssignment remembers the chore just assigned so the next cycle
// avoids repeating it.
func (m *Member) RecordAssignment(choreName string) {
	m.previousChore = &choreName
	m.Touch()
}

// ClearAssignmentHistory forgets the previous chore, removing the no-repeat
// exclusion for the next cycle.
func (m *Member) ClearAssignmentHistory() {
	m.previousChore = nil
	m.Touch()
}

// AdjustPoints applies a signed delta to the member's points. Points have
// no floor; overdue penalties may drive them negative.
func (m *Member) AdjustPoints(delta int) {
	m.points += delta
	m.Touch()
	m.AddDomainEvent(NewPointsAdjusted(m.ID(), m.telegramID, delta, m.points))
}
