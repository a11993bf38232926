package services

import (
	"math/rand/v2"
	"time"

	"github.com/felixgeelhaar/rota/internal/chores/domain/chore"
	"github.com/felixgeelhaar/rota/internal/roster/domain/member"
)

// Pick pairs a member with the chore drawn for them this cycle.
// Chore is nil when no chore could be assigned.
type Pick struct {
	Member *member.Member
	Chore  *chore.Chore
}

// Assigned reports whether the pick carries a chore.
func (p Pick) Assigned() bool { return p.Chore != nil }

// AssignmentEngine draws a non-repeating, non-duplicate chore per member
// for a cycle. Randomness is the only non-deterministic element, so the
// source is injected and tests seed it.
type AssignmentEngine struct {
	rng *rand.Rand
}

// NewAssignmentEngine creates an engine with the given random source.
// A nil source gets a time-seeded one.
func NewAssignmentEngine(rng *rand.Rand) *AssignmentEngine {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed))
	}
	return &AssignmentEngine{rng: rng}
}

// Assign draws one chore per member in input order. For each member the
// candidate pool excludes their previous chore and any chore already
// claimed this pass. An empty pool relaxes only the previous-chore
// exclusion; if no unclaimed chore remains either, the member is recorded
// as unassigned rather than silently dropped.
//
// Empty members or chores is a defined boundary, not an error: the result
// is empty.
func (e *AssignmentEngine) Assign(members []*member.Member, chores []*chore.Chore) []Pick {
	if len(members) == 0 || len(chores) == 0 {
		return nil
	}

	claimed := make(map[string]bool, len(chores))
	picks := make([]Pick, 0, len(members))

	for _, m := range members {
		pool := candidates(chores, claimed, m.PreviousChore())
		if len(pool) == 0 {
			pool = candidates(chores, claimed, nil)
		}
		if len(pool) == 0 {
			picks = append(picks, Pick{Member: m})
			continue
		}

		picked := pool[e.rng.IntN(len(pool))]
		claimed[picked.Name()] = true
		picks = append(picks, Pick{Member: m, Chore: picked})
	}

	return picks
}

func candidates(chores []*chore.Chore, claimed map[string]bool, previous *string) []*chore.Chore {
	pool := make([]*chore.Chore, 0, len(chores))
	for _, c := range chores {
		if claimed[c.Name()] {
			continue
		}
		if previous != nil && c.Name() == *previous {
			continue
		}
		pool = append(pool, c)
	}
	return pool
}
