package queries

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/rota/internal/pantry/domain/item"
	"github.com/felixgeelhaar/rota/internal/roster/domain/member"
)

type mockItemRepo struct {
	mock.Mock
}

func (m *mockItemRepo) Save(ctx context.Context, it *item.Item) error {
	args := m.Called(ctx, it)
	return args.Error(0)
}

func (m *mockItemRepo) FindAll(ctx context.Context) ([]*item.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*item.Item), args.Error(1)
}

func (m *mockItemRepo) FindByName(ctx context.Context, name string) (*item.Item, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*item.Item), args.Error(1)
}

func (m *mockItemRepo) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *mockItemRepo) UpdateConditional(ctx context.Context, it *item.Item, expectInStock bool) error {
	args := m.Called(ctx, it, expectInStock)
	return args.Error(0)
}

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

func TestStockHandler_Handle(t *testing.T) {
	t.Run("names the expected buyer for depleted items only", func(t *testing.T) {
		itemRepo := new(mockItemRepo)
		memberRepo := new(mockMemberRepo)
		handler := NewStockHandler(itemRepo, memberRepo)

		ctx := context.Background()

		milk, err := item.NewItem("Milk", []int64{10, 20})
		require.NoError(t, err)

		coffee, err := item.NewItem("Coffee", []int64{10, 20})
		require.NoError(t, err)
		_, err = coffee.MarkOutOfStock(10)
		require.NoError(t, err)

		ivan, err := member.NewMember(10, "Ivan")
		require.NoError(t, err)
		olena, err := member.NewMember(20, "Olena")
		require.NoError(t, err)

		itemRepo.On("FindAll", ctx).Return([]*item.Item{milk, coffee}, nil)
		memberRepo.On("FindAll", ctx).Return([]*member.Member{ivan, olena}, nil)

		report, err := handler.Handle(ctx)

		require.NoError(t, err)
		require.Len(t, report, 2)

		assert.Equal(t, "Milk", report[0].Name)
		assert.True(t, report[0].InStock)
		assert.Empty(t, report[0].NextBuyer)

		assert.Equal(t, "Coffee", report[1].Name)
		assert.False(t, report[1].InStock)
		assert.Equal(t, "Olena", report[1].NextBuyer)
	})

	t.Run("empty pantry yields empty report", func(t *testing.T) {
		itemRepo := new(mockItemRepo)
		memberRepo := new(mockMemberRepo)
		handler := NewStockHandler(itemRepo, memberRepo)

		ctx := context.Background()
		itemRepo.On("FindAll", ctx).Return([]*item.Item{}, nil)
		memberRepo.On("FindAll", ctx).Return([]*member.Member{}, nil)

		report, err := handler.Handle(ctx)

		require.NoError(t, err)
		assert.Empty(t, report)
	})
}
