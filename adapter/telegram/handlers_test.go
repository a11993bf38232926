package telegram

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"

	"github.com/felixgeelhaar/rota/internal/notify"
	pantryCommands "github.com/felixgeelhaar/rota/internal/pantry/application/commands"
	"github.com/felixgeelhaar/rota/internal/pantry/domain/item"
	"github.com/felixgeelhaar/rota/internal/shared/infrastructure/outbox"
)

// recordingGateway captures outbound calls so handler tests can assert which
// surface an interaction went out on.
type recordingGateway struct {
	sent    []string
	deleted []int
	alerts  []alertCall
}

type alertCall struct {
	CallbackID string
	Text       string
}

func (g *recordingGateway) SendText(_ context.Context, text string) error {
	g.sent = append(g.sent, text)
	return nil
}

func (g *recordingGateway) SendMenu(_ context.Context, text string, _ []notify.MenuOption) (int, error) {
	g.sent = append(g.sent, text)
	return 0, nil
}

func (g *recordingGateway) DeleteMessage(_ context.Context, messageID int) {
	g.deleted = append(g.deleted, messageID)
}

func (g *recordingGateway) Alert(_ context.Context, interactionID string, text string) error {
	g.alerts = append(g.alerts, alertCall{CallbackID: interactionID, Text: text})
	return nil
}

// callbackContext fakes just the parts of tele.Context a button press touches.
type callbackContext struct {
	tele.Context
	sender    *tele.User
	callback  *tele.Callback
	responded []*tele.CallbackResponse
}

func (c *callbackContext) Sender() *tele.User       { return c.sender }
func (c *callbackContext) Callback() *tele.Callback { return c.callback }

func (c *callbackContext) Respond(resp ...*tele.CallbackResponse) error {
	c.responded = append(c.responded, resp...)
	return nil
}

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

func boughtButtonPress(sender int64, messageID int) *callbackContext {
	return &callbackContext{
		sender: &tele.User{ID: sender, FirstName: "Olena"},
		callback: &tele.Callback{
			ID:      "cb-1",
			Message: &tele.Message{ID: messageID},
		},
	}
}

func TestBot_OnBought(t *testing.T) {
	newBotUnderTest := func(itemRepo *mockItemRepo, outboxRepo *mockOutboxRepo, uow *mockUnitOfWork, gw *recordingGateway) *Bot {
		return &Bot{
			gateway: gw,
			handlers: Handlers{
				ConfirmPurchase: pantryCommands.NewConfirmPurchaseHandler(itemRepo, outboxRepo, uow),
			},
			logger: slog.New(slog.DiscardHandler),
		}
	}

	outOfStockItem := func(t *testing.T, name string, queue []int64) *item.Item {
		t.Helper()
		it, err := item.NewItem(name, queue)
		require.NoError(t, err)
		_, err = it.MarkOutOfStock(queue[0])
		require.NoError(t, err)
		it.ClearDomainEvents()
		return it
	}

	t.Run("wrong member gets a private alert and the menu stays up", func(t *testing.T) {
		itemRepo := new(mockItemRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		gw := &recordingGateway{}
		b := newBotUnderTest(itemRepo, outboxRepo, uow, gw)

		it := outOfStockItem(t, "Milk", []int64{10, 20})
		uow.On("Begin", mock.Anything).Return(context.Background(), nil)
		uow.On("Rollback", mock.Anything).Return(nil)
		itemRepo.On("FindByName", mock.Anything, "Milk").Return(it, nil)

		c := boughtButtonPress(10, 5)
		require.NoError(t, b.onBought(c, "Milk"))

		require.Len(t, gw.alerts, 1)
		assert.Equal(t, "cb-1", gw.alerts[0].CallbackID)
		assert.Equal(t, "It is not your turn to buy this.", gw.alerts[0].Text)
		assert.Empty(t, gw.deleted)
		assert.Empty(t, gw.sent)
		assert.False(t, it.InStock())
	})

	t.Run("expected buyer restock deletes the menu and announces", func(t *testing.T) {
		itemRepo := new(mockItemRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		gw := &recordingGateway{}
		b := newBotUnderTest(itemRepo, outboxRepo, uow, gw)

		it := outOfStockItem(t, "Milk", []int64{10, 20})
		uow.On("Begin", mock.Anything).Return(context.Background(), nil)
		uow.On("Commit", mock.Anything).Return(nil)
		itemRepo.On("FindByName", mock.Anything, "Milk").Return(it, nil)
		itemRepo.On("UpdateConditional", mock.Anything, it, false).Return(nil)
		outboxRepo.On("SaveBatch", mock.Anything, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		c := boughtButtonPress(20, 5)
		require.NoError(t, b.onBought(c, "Milk"))

		assert.Equal(t, []int{5}, gw.deleted)
		require.Len(t, gw.sent, 1)
		assert.Contains(t, gw.sent[0], "Milk is back in stock")
		assert.Contains(t, gw.sent[0], "Olena")
		require.Len(t, c.responded, 1)
		assert.Empty(t, gw.alerts)
		itemRepo.AssertExpectations(t)
		outboxRepo.AssertExpectations(t)
	})
}
