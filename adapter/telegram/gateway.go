package telegram

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/sony/gobreaker/v2"
	tele "gopkg.in/telebot.v3"

	"github.com/felixgeelhaar/rota/internal/notify"
)

// Gateway implements notify.Gateway against the Telegram Bot API. Sends go
// through a circuit breaker so a flapping API degrades announcements instead
// of hammering the endpoint.
type Gateway struct {
	bot     *tele.Bot
	chatID  int64
	breaker *gobreaker.CircuitBreaker[*tele.Message]
	logger  *slog.Logger
}

// NewGateway creates a Gateway posting into the given group chat.
func NewGateway(bot *tele.Bot, chatID int64, logger *slog.Logger) *Gateway {
	breaker := gobreaker.NewCircuitBreaker[*tele.Message](gobreaker.Settings{
		Name:        "telegram-send",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return &Gateway{bot: bot, chatID: chatID, breaker: breaker, logger: logger}
}

// SendText posts a plain message to the group.
func (g *Gateway) SendText(_ context.Context, text string) error {
	_, err := g.breaker.Execute(func() (*tele.Message, error) {
		return g.bot.Send(tele.ChatID(g.chatID), text)
	})
	return err
}

// SendMenu posts a message with one inline button per option.
func (g *Gateway) SendMenu(_ context.Context, text string, options []notify.MenuOption) (int, error) {
	rows := make([][]tele.InlineButton, 0, len(options))
	for _, opt := range options {
		rows = append(rows, []tele.InlineButton{{
			Text: opt.Label,
			Data: EncodeAction(opt.Action),
		}})
	}

	msg, err := g.breaker.Execute(func() (*tele.Message, error) {
		return g.bot.Send(tele.ChatID(g.chatID), text, &tele.ReplyMarkup{InlineKeyboard: rows})
	})
	if err != nil {
		return 0, err
	}
	return msg.ID, nil
}

// DeleteMessage removes a previously sent group message. Best-effort.
func (g *Gateway) DeleteMessage(_ context.Context, messageID int) {
	err := g.bot.Delete(tele.StoredMessage{
		MessageID: strconv.Itoa(messageID),
		ChatID:    g.chatID,
	})
	if err != nil {
		g.logger.Warn("delete message failed", "message_id", messageID, "error", err)
	}
}

// Alert answers a callback interaction with a popup shown only to the actor.
func (g *Gateway) Alert(_ context.Context, interactionID string, text string) error {
	return g.bot.Respond(&tele.Callback{ID: interactionID}, &tele.CallbackResponse{
		Text:      text,
		ShowAlert: true,
	})
}
