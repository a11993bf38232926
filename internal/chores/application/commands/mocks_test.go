package commands

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/felixgeelhaar/rota/internal/chores/domain/chore"
	"github.com/felixgeelhaar/rota/internal/roster/domain/member"
	"github.com/felixgeelhaar/rota/internal/shared/infrastructure/outbox"
)

// mockChoreRepo is a mock implementation of chore.Repository.
type mockChoreRepo struct {
	mock.Mock
}

func (m *mockChoreRepo) Save(ctx context.Context, c *chore.Chore) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockChoreRepo) FindAll(ctx context.Context) ([]*chore.Chore, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*chore.Chore), args.Error(1)
}

func (m *mockChoreRepo) FindByName(ctx context.Context, name string) (*chore.Chore, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chore.Chore), args.Error(1)
}

func (m *mockChoreRepo) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *mockChoreRepo) FindAssignedIncomplete(ctx context.Context, telegramID int64) (*chore.Chore, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chore.Chore), args.Error(1)
}

func (m *mockChoreRepo) FindIncomplete(ctx context.Context) ([]*chore.Chore, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*chore.Chore), args.Error(1)
}

func (m *mockChoreRepo) ResetAllCycles(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// mockMemberRepo is a mock implementation of member.Repository.
type mockMemberRepo struct {
	mock.Mock
}

func (m *mockMemberRepo) Save(ctx context.Context, mm *member.Member) error {
	args := m.Called(ctx, mm)
	return args.Error(0)
}

func (m *mockMemberRepo) FindAll(ctx context.Context) ([]*member.Member, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*member.Member), args.Error(1)
}

func (m *mockMemberRepo) FindByTelegramID(ctx context.Context, telegramID int64) (*member.Member, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *mockMemberRepo) IncrementPoints(ctx context.Context, telegramID int64, delta int) error {
	args := m.Called(ctx, telegramID, delta)
	return args.Error(0)
}

func (m *mockMemberRepo) ResetAllPoints(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// mockOutboxRepo is a mock implementation of outbox.Repository.
type mockOutboxRepo struct {
	mock.Mock
}

func (m *mockOutboxRepo) Save(ctx context.Context, msg *outbox.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *mockOutboxRepo) SaveBatch(ctx context.Context, msgs []*outbox.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *mockOutboxRepo) GetUnpublished(ctx context.Context, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

func (m *mockOutboxRepo) MarkPublished(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockOutboxRepo) MarkFailed(ctx context.Context, id int64, errMsg string, nextRetryAt time.Time) error {
	args := m.Called(ctx, id, errMsg, nextRetryAt)
	return args.Error(0)
}

func (m *mockOutboxRepo) DeleteOld(ctx context.Context, olderThanDays int) (int64, error) {
	args := m.Called(ctx, olderThanDays)
	return args.Get(0).(int64), args.Error(1)
}

// mockUnitOfWork is a passthrough unit of work: Begin returns the same
// context so repository expectations stay simple.
type mockUnitOfWork struct {
	mock.Mock
}

func (m *mockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(context.Context), args.Error(1)
}

func (m *mockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
