package chore

import (
	"errors"
	"strings"

	"github.com/felixgeelhaar/rota/internal/shared/domain"
)

var (
	ErrEmptyName        = errors.New("chore name cannot be empty")
	ErrNotFound         = errors.New("chore not found")
	ErrAlreadyCompleted = errors.New("chore is already completed")
	ErrNotAssigned      = errors.New("chore is not assigned")
)

// Difficulty grades how demanding a chore is.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty validates a difficulty string. Input is normalized, so
// chat and CLI spellings like "Easy" or " hard " are accepted.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, nil
	default:
		return "", errors.New("unknown difficulty: " + s)
	}
}

// Chore represents a recurring household task. The name is the unique key;
// the row persists across cycles while assignment state resets each one.
type Chore struct {
	domain.BaseAggregateRoot
	name       string
	difficulty Difficulty
	assignedTo *int64
	completed  bool
}

// NewChore creates a new chore with the given name and difficulty.
func NewChore(name string, difficulty Difficulty) (*Chore, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if difficulty == "" {
		difficulty = DifficultyMedium
	}

	c := &Chore{
		BaseAggregateRoot: domain.NewBaseAggregateRoot(),
		name:              name,
		difficulty:        difficulty,
	}

	c.AddDomainEvent(NewChoreCreated(c.ID(), c.name, string(c.difficulty)))

	return c, nil
}

// Rehydrate recreates a chore from persisted state.
func Rehydrate(base domain.BaseAggregateRoot, name string, difficulty Difficulty, assignedTo *int64, completed bool) *Chore {
	return &Chore{
		BaseAggregateRoot: base,
		name:              name,
		difficulty:        difficulty,
		assignedTo:        assignedTo,
		completed:         completed,
	}
}

func (c *Chore) Name() string           { return c.name }
func (c *Chore) Difficulty() Difficulty { return c.difficulty }
func (c *Chore) AssignedTo() *int64     { return c.assignedTo }
func (c *Chore) IsCompleted() bool      { return c.completed }

// IsAssigned reports whether the chore has an assignee this cycle.
func (c *Chore) IsAssigned() bool { return c.assignedTo != nil }

// SetDifficulty updates the difficulty grade.
func (c *Chore) SetDifficulty(difficulty Difficulty) {
	c.difficulty = difficulty
	c.Touch()
}

// Assign hands the chore to a member for the new cycle and clears any
// completion state from the previous one.
func (c *Chore) Assign(telegramID int64) {
	c.assignedTo = &telegramID
	c.completed = false
	c.Touch()
	c.AddDomainEvent(NewChoreAssigned(c.ID(), c.name, telegramID))
}

// Complete marks the chore as done for this cycle.
func (c *Chore) Complete() error {
	if c.completed {
		return ErrAlreadyCompleted
	}
	if c.assignedTo == nil {
		return ErrNotAssigned
	}

	c.completed = true
	c.Touch()
	c.AddDomainEvent(NewChoreCompleted(c.ID(), c.name, *c.assignedTo))
	return nil
}

// ResetCycle clears assignment and completion state for the next cycle.
func (c *Chore) ResetCycle() {
	c.assignedTo = nil
	c.completed = false
	c.Touch()
}
