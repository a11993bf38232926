package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Wizard steps for the add-chore conversation.
const (
	StepAwaitName       = "await_name"
	StepAwaitDifficulty = "await_difficulty"
)

// DefaultWizardTTL expires abandoned conversations.
const DefaultWizardTTL = 10 * time.Minute

// ErrNoWizard is returned when a member has no conversation in progress.
var ErrNoWizard = errors.New("no wizard in progress")

// WizardState is one member's position in the add-chore conversation.
type WizardState struct {
	Step      string `json:"step"`
	ChoreName string `json:"chore_name,omitempty"`
}

// WizardStore keeps per-member conversation state in Redis with a TTL, so an
// abandoned /add_task never wedges the next one and state survives restarts.
type WizardStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewWizardStore creates a WizardStore.
func NewWizardStore(rdb *redis.Client, ttl time.Duration) *WizardStore {
	if ttl <= 0 {
		ttl = DefaultWizardTTL
	}
	return &WizardStore{rdb: rdb, ttl: ttl}
}

func wizardKey(telegramID int64) string {
	return fmt.Sprintf("rota:wizard:%d", telegramID)
}

// Put stores the member's conversation state, refreshing the TTL.
func (s *WizardStore) Put(ctx context.Context, telegramID int64, state WizardState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, wizardKey(telegramID), payload, s.ttl).Err()
}

// Get loads the member's conversation state.
func (s *WizardStore) Get(ctx context.Context, telegramID int64) (WizardState, error) {
	payload, err := s.rdb.Get(ctx, wizardKey(telegramID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return WizardState{}, ErrNoWizard
	}
	if err != nil {
		return WizardState{}, err
	}
	var state WizardState
	if err := json.Unmarshal(payload, &state); err != nil {
		return WizardState{}, err
	}
	return state, nil
}

// Clear drops the member's conversation state.
func (s *WizardStore) Clear(ctx context.Context, telegramID int64) error {
	return s.rdb.Del(ctx, wizardKey(telegramID)).Err()
}
