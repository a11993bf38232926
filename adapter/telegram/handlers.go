// Package telegram adapts the group chat surface onto the application layer.
// All state-changing interactions route through command handlers; the bot
// itself only parses input, gates admin commands, and renders results.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tele "gopkg.in/telebot.v3"

	choreCommands "github.com/felixgeelhaar/rota/internal/chores/application/commands"
	choreQueries "github.com/felixgeelhaar/rota/internal/chores/application/queries"
	"github.com/felixgeelhaar/rota/internal/chores/domain/chore"
	"github.com/felixgeelhaar/rota/internal/notify"
	pantryCommands "github.com/felixgeelhaar/rota/internal/pantry/application/commands"
	pantryQueries "github.com/felixgeelhaar/rota/internal/pantry/application/queries"
	"github.com/felixgeelhaar/rota/internal/pantry/domain/item"
	rosterCommands "github.com/felixgeelhaar/rota/internal/roster/application/commands"
	rosterQueries "github.com/felixgeelhaar/rota/internal/roster/application/queries"
	"github.com/felixgeelhaar/rota/pkg/config"
)

// Handlers bundles the application entry points the bot drives.
type Handlers struct {
	SyncRoster      *rosterCommands.SyncRosterHandler
	CreateChore     *choreCommands.CreateChoreHandler
	EditChore       *choreCommands.EditChoreHandler
	DeleteChore     *choreCommands.DeleteChoreHandler
	CompleteChore   *choreCommands.CompleteChoreHandler
	RunAssignment   *choreCommands.RunAssignmentHandler
	TrackItem       *pantryCommands.TrackItemHandler
	ReportDepleted  *pantryCommands.ReportDepletedHandler
	ConfirmPurchase *pantryCommands.ConfirmPurchaseHandler
	Status          *choreQueries.StatusHandler
	Leaderboard     *rosterQueries.LeaderboardHandler
	Stock           *pantryQueries.StockHandler
}

// Bot routes chat commands and callbacks into the application layer.
type Bot struct {
	bot      *tele.Bot
	cfg      *config.Config
	gateway  notify.Gateway
	wizard   *WizardStore
	handlers Handlers
	logger   *slog.Logger
}

// NewBot wires routes onto a telebot instance.
func NewBot(bot *tele.Bot, cfg *config.Config, gateway notify.Gateway, wizard *WizardStore, handlers Handlers, logger *slog.Logger) *Bot {
	b := &Bot{
		bot:      bot,
		cfg:      cfg,
		gateway:  gateway,
		wizard:   wizard,
		handlers: handlers,
		logger:   logger,
	}
	b.register()
	return b
}

// Start begins long polling. Blocks until Stop is called.
func (b *Bot) Start() {
	b.bot.Start()
}

// Stop halts long polling.
func (b *Bot) Stop() {
	b.bot.Stop()
}

func (b *Bot) register() {
	b.bot.Use(b.onlyHomeGroup)

	b.bot.Handle("/sync_users", b.adminOnly(b.handleSyncUsers))
	b.bot.Handle("/add_task", b.adminOnly(b.handleAddTask))
	b.bot.Handle("/edit_task", b.adminOnly(b.handleEditTask))
	b.bot.Handle("/delete_task", b.adminOnly(b.handleDeleteTask))
	b.bot.Handle("/reset_tasks", b.adminOnly(b.handleResetTasks))
	b.bot.Handle("/add_item", b.adminOnly(b.handleAddItem))

	b.bot.Handle("/done", b.handleDone)
	b.bot.Handle("/status", b.handleStatus)
	b.bot.Handle("/points", b.handlePoints)
	b.bot.Handle("/check_stock", b.handleCheckStock)
	b.bot.Handle("/notify_out_of_stock", b.handleNotifyOutOfStock)

	b.bot.Handle(tele.OnText, b.handleText)
	b.bot.Handle(tele.OnCallback, b.handleCallback)
}

// onlyHomeGroup drops updates from chats other than the configured group.
func (b *Bot) onlyHomeGroup(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		if b.cfg.GroupID != 0 && c.Chat() != nil && c.Chat().ID != b.cfg.GroupID {
			return nil
		}
		return next(c)
	}
}

func (b *Bot) adminOnly(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		if c.Sender() == nil || !b.cfg.IsAdmin(c.Sender().ID) {
			return c.Send("This command is for admins only.")
		}
		return next(c)
	}
}

func (b *Bot) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

func displayName(u *tele.User) string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		name = u.Username
	}
	return name
}

func (b *Bot) handleSyncUsers(c tele.Context) error {
	ctx, cancel := b.ctx()
	defer cancel()

	admins, err := b.bot.AdminsOf(c.Chat())
	if err != nil {
		return c.Send("Could not read the member list, try again later.")
	}

	entries := make([]rosterCommands.RosterEntry, 0, len(admins))
	for _, m := range admins {
		if m.User == nil || m.User.IsBot {
			continue
		}
		entries = append(entries, rosterCommands.RosterEntry{
			TelegramID: m.User.ID,
			Name:       displayName(m.User),
		})
	}

	result, err := b.handlers.SyncRoster.Handle(ctx, rosterCommands.SyncRosterCommand{
		Entries: entries,
		ActorID: c.Sender().ID,
	})
	if err != nil {
		b.logger.Error("sync roster failed", "error", err)
		return c.Send("Roster sync failed.")
	}
	return c.Send(fmt.Sprintf("Roster synced: %s.", strings.Join(result.Names, ", ")))
}

func (b *Bot) handleAddTask(c tele.Context) error {
	ctx, cancel := b.ctx()
	defer cancel()

	err := b.wizard.Put(ctx, c.Sender().ID, WizardState{Step: StepAwaitName})
	if err != nil {
		b.logger.Error("start wizard failed", "error", err)
		return c.Send("Could not start, try again.")
	}
	return c.Send("What should the new chore be called?")
}

// handleText advances the add-chore wizard; text outside a wizard is ignored.
func (b *Bot) handleText(c tele.Context) error {
	ctx, cancel := b.ctx()
	defer cancel()

	state, err := b.wizard.Get(ctx, c.Sender().ID)
	if errors.Is(err, ErrNoWizard) {
		return nil
	}
	if err != nil {
		b.logger.Error("load wizard failed", "error", err)
		return nil
	}
	if state.Step != StepAwaitName {
		return nil
	}

	name := strings.TrimSpace(c.Text())
	if name == "" {
		return c.Send("The chore needs a name, try again.")
	}

	state = WizardState{Step: StepAwaitDifficulty, ChoreName: name}
	if err := b.wizard.Put(ctx, c.Sender().ID, state); err != nil {
		b.logger.Error("save wizard failed", "error", err)
		return c.Send("Could not save that, try again.")
	}

	markup := &tele.ReplyMarkup{InlineKeyboard: [][]tele.InlineButton{
		{
			{Text: "Easy", Data: EncodeAction(notify.Action{Kind: ActionDifficulty, Arg: "easy"})},
			{Text: "Medium", Data: EncodeAction(notify.Action{Kind: ActionDifficulty, Arg: "medium"})},
			{Text: "Hard", Data: EncodeAction(notify.Action{Kind: ActionDifficulty, Arg: "hard"})},
		},
		{
			{Text: "Cancel", Data: EncodeAction(notify.Action{Kind: ActionCancel})},
		},
	}}
	return c.Send(fmt.Sprintf("How hard is %q?", name), markup)
}

func (b *Bot) handleEditTask(c tele.Context) error {
	args := c.Args()
	if len(args) < 2 {
		return c.Send("Usage: /edit_task <name> <easy|medium|hard>")
	}

	difficulty, err := chore.ParseDifficulty(args[len(args)-1])
	if err != nil {
		return c.Send("Difficulty must be easy, medium or hard.")
	}
	name := strings.Join(args[:len(args)-1], " ")

	ctx, cancel := b.ctx()
	defer cancel()

	err = b.handlers.EditChore.Handle(ctx, choreCommands.EditChoreCommand{
		Name:       name,
		Difficulty: difficulty,
		ActorID:    c.Sender().ID,
	})
	if errors.Is(err, chore.ErrNotFound) {
		return c.Send(fmt.Sprintf("There is no chore called %q.", name))
	}
	if err != nil {
		b.logger.Error("edit chore failed", "error", err)
		return c.Send("Could not update the chore.")
	}
	return c.Send(fmt.Sprintf("%q is now %s.", name, difficulty))
}

func (b *Bot) handleDeleteTask(c tele.Context) error {
	name := strings.TrimSpace(strings.Join(c.Args(), " "))
	if name == "" {
		return c.Send("Usage: /delete_task <name>")
	}

	ctx, cancel := b.ctx()
	defer cancel()

	err := b.handlers.DeleteChore.Handle(ctx, choreCommands.DeleteChoreCommand{
		Name:    name,
		ActorID: c.Sender().ID,
	})
	if errors.Is(err, chore.ErrNotFound) {
		return c.Send(fmt.Sprintf("There is no chore called %q.", name))
	}
	if err != nil {
		b.logger.Error("delete chore failed", "error", err)
		return c.Send("Could not delete the chore.")
	}
	return c.Send(fmt.Sprintf("Deleted %q.", name))
}

func (b *Bot) handleResetTasks(c tele.Context) error {
	ctx, cancel := b.ctx()
	defer cancel()

	result, err := b.handlers.RunAssignment.Handle(ctx, choreCommands.RunAssignmentCommand{
		ActorID: c.Sender().ID,
	})
	if err != nil {
		b.logger.Error("manual assignment failed", "error", err)
		return c.Send("Could not redraw assignments.")
	}
	return c.Send(renderAssignment(result))
}

func (b *Bot) handleAddItem(c tele.Context) error {
	name := strings.TrimSpace(strings.Join(c.Args(), " "))
	if name == "" {
		return c.Send("Usage: /add_item <name>")
	}

	ctx, cancel := b.ctx()
	defer cancel()

	err := b.handlers.TrackItem.Handle(ctx, pantryCommands.TrackItemCommand{
		Name:    name,
		ActorID: c.Sender().ID,
	})
	if err != nil {
		b.logger.Error("track item failed", "error", err)
		return c.Send("Could not add the item.")
	}
	return c.Send(fmt.Sprintf("Now tracking %q. Buyers rotate in roster order.", name))
}

func (b *Bot) handleDone(c tele.Context) error {
	ctx, cancel := b.ctx()
	defer cancel()

	result, err := b.handlers.CompleteChore.Handle(ctx, choreCommands.CompleteChoreCommand{
		TelegramID: c.Sender().ID,
	})
	if errors.Is(err, choreCommands.ErrNothingToComplete) {
		return c.Send("You have no open chore this cycle.")
	}
	if err != nil {
		b.logger.Error("complete chore failed", "error", err)
		return c.Send("Could not record that, try again.")
	}
	return c.Send(fmt.Sprintf("%s finished %q. +1 point (now %d).",
		result.MemberName, result.ChoreName, result.Points))
}

func (b *Bot) handleStatus(c tele.Context) error {
	ctx, cancel := b.ctx()
	defer cancel()

	rows, err := b.handlers.Status.Handle(ctx, choreQueries.StatusQuery{})
	if err != nil {
		b.logger.Error("status query failed", "error", err)
		return c.Send("Could not load the status.")
	}
	return c.Send(renderStatus(rows))
}

func (b *Bot) handlePoints(c tele.Context) error {
	ctx, cancel := b.ctx()
	defer cancel()

	rows, err := b.handlers.Leaderboard.Handle(ctx, rosterQueries.LeaderboardQuery{})
	if err != nil {
		b.logger.Error("leaderboard query failed", "error", err)
		return c.Send("Could not load the points.")
	}
	return c.Send(renderLeaderboard(rows))
}

func (b *Bot) handleCheckStock(c tele.Context) error {
	ctx, cancel := b.ctx()
	defer cancel()

	rows, err := b.handlers.Stock.Handle(ctx)
	if err != nil {
		b.logger.Error("stock query failed", "error", err)
		return c.Send("Could not load the stock report.")
	}
	return c.Send(renderStock(rows))
}

// handleNotifyOutOfStock offers the in-stock items as buttons; picking one
// reports the depletion.
func (b *Bot) handleNotifyOutOfStock(c tele.Context) error {
	ctx, cancel := b.ctx()
	defer cancel()

	rows, err := b.handlers.Stock.Handle(ctx)
	if err != nil {
		b.logger.Error("stock query failed", "error", err)
		return c.Send("Could not load the item list.")
	}

	var options []notify.MenuOption
	for _, row := range rows {
		if !row.InStock {
			continue
		}
		options = append(options, notify.MenuOption{
			Label:  row.Name,
			Action: notify.Action{Kind: ActionDepleted, Arg: row.Name},
		})
	}
	if len(options) == 0 {
		return c.Send("Everything is already flagged as out of stock.")
	}
	options = append(options, notify.MenuOption{
		Label:  "Cancel",
		Action: notify.Action{Kind: ActionCancel},
	})

	_, err = b.gateway.SendMenu(ctx, "What ran out?", options)
	return err
}

// handleCallback is the single dispatch point for every inline button.
func (b *Bot) handleCallback(c tele.Context) error {
	action, err := ParseAction(c.Callback().Data)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{})
	}

	switch action.Kind {
	case ActionDifficulty:
		return b.onDifficultyPicked(c, action.Arg)
	case ActionCancel:
		return b.onCancel(c)
	case ActionDepleted:
		return b.onDepletedPicked(c, action.Arg)
	case ActionBought:
		return b.onBought(c, action.Arg)
	default:
		return c.Respond(&tele.CallbackResponse{})
	}
}

func (b *Bot) onDifficultyPicked(c tele.Context, arg string) error {
	ctx, cancel := b.ctx()
	defer cancel()

	state, err := b.wizard.Get(ctx, c.Sender().ID)
	if errors.Is(err, ErrNoWizard) || (err == nil && state.Step != StepAwaitDifficulty) {
		return c.Respond(&tele.CallbackResponse{Text: "This menu is not yours or has expired."})
	}
	if err != nil {
		b.logger.Error("load wizard failed", "error", err)
		return c.Respond(&tele.CallbackResponse{Text: "Something went wrong."})
	}

	difficulty, err := chore.ParseDifficulty(arg)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown difficulty."})
	}

	err = b.handlers.CreateChore.Handle(ctx, choreCommands.CreateChoreCommand{
		Name:       state.ChoreName,
		Difficulty: difficulty,
		ActorID:    c.Sender().ID,
	})
	if err != nil {
		b.logger.Error("create chore failed", "error", err)
		return b.gateway.Alert(ctx, c.Callback().ID, "Could not create the chore.")
	}

	if err := b.wizard.Clear(ctx, c.Sender().ID); err != nil {
		b.logger.Warn("clear wizard failed", "error", err)
	}
	b.gateway.DeleteMessage(ctx, c.Callback().Message.ID)
	if err := c.Respond(&tele.CallbackResponse{}); err != nil {
		return err
	}
	return b.gateway.SendText(ctx, fmt.Sprintf("Added chore %q (%s).", state.ChoreName, difficulty))
}

func (b *Bot) onCancel(c tele.Context) error {
	ctx, cancel := b.ctx()
	defer cancel()

	if err := b.wizard.Clear(ctx, c.Sender().ID); err != nil {
		b.logger.Warn("clear wizard failed", "error", err)
	}
	b.gateway.DeleteMessage(ctx, c.Callback().Message.ID)
	return c.Respond(&tele.CallbackResponse{Text: "Cancelled."})
}

func (b *Bot) onDepletedPicked(c tele.Context, itemName string) error {
	ctx, cancel := b.ctx()
	defer cancel()

	result, err := b.handlers.ReportDepleted.Handle(ctx, pantryCommands.ReportDepletedCommand{
		ItemName:   itemName,
		ReporterID: c.Sender().ID,
	})
	switch {
	case errors.Is(err, item.ErrAlreadyHandled):
		return c.Respond(&tele.CallbackResponse{Text: "Someone already reported that."})
	case errors.Is(err, item.ErrEmptyBuyerQueue):
		return b.gateway.Alert(ctx, c.Callback().ID, "No buyers are set up for this item.")
	case errors.Is(err, item.ErrNotFound):
		return c.Respond(&tele.CallbackResponse{Text: "That item is no longer tracked."})
	case err != nil:
		b.logger.Error("report depleted failed", "item", itemName, "error", err)
		return b.gateway.Alert(ctx, c.Callback().ID, "Could not record that, try again.")
	}

	b.gateway.DeleteMessage(ctx, c.Callback().Message.ID)
	if err := c.Respond(&tele.CallbackResponse{}); err != nil {
		return err
	}

	text := fmt.Sprintf("%s is out of stock. %s, your turn to buy it.", result.ItemName, result.BuyerName)
	_, err = b.gateway.SendMenu(ctx, text, []notify.MenuOption{{
		Label:  "I bought it",
		Action: notify.Action{Kind: ActionBought, Arg: result.ItemName},
	}})
	return err
}

func (b *Bot) onBought(c tele.Context, itemName string) error {
	ctx, cancel := b.ctx()
	defer cancel()

	result, err := b.handlers.ConfirmPurchase.Handle(ctx, pantryCommands.ConfirmPurchaseCommand{
		ItemName: itemName,
		BuyerID:  c.Sender().ID,
	})
	switch {
	case errors.Is(err, item.ErrNotYourTurn):
		return b.gateway.Alert(ctx, c.Callback().ID, "It is not your turn to buy this.")
	case errors.Is(err, item.ErrAlreadyHandled):
		return c.Respond(&tele.CallbackResponse{Text: "Already restocked."})
	case errors.Is(err, item.ErrNotFound):
		return c.Respond(&tele.CallbackResponse{Text: "That item is no longer tracked."})
	case err != nil:
		b.logger.Error("confirm purchase failed", "item", itemName, "error", err)
		return b.gateway.Alert(ctx, c.Callback().ID, "Could not record that, try again.")
	}

	b.gateway.DeleteMessage(ctx, c.Callback().Message.ID)
	if err := c.Respond(&tele.CallbackResponse{}); err != nil {
		return err
	}
	return b.gateway.SendText(ctx, fmt.Sprintf("%s is back in stock, thanks %s!",
		result.ItemName, displayName(c.Sender())))
}
