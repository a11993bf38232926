package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	tele "gopkg.in/telebot.v3"

	"github.com/felixgeelhaar/rota/adapter/telegram"
	"github.com/felixgeelhaar/rota/internal/scheduling"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the bot, the scheduler, and the outbox relay",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireContainer(); err != nil {
			return err
		}
		cfg := container.Config
		if cfg.BotToken == "" {
			return fmt.Errorf("BOT_TOKEN is not set")
		}
		if container.RedisClient == nil {
			return fmt.Errorf("redis is required to serve: check REDIS_URL")
		}

		bot, err := tele.NewBot(tele.Settings{
			Token:  cfg.BotToken,
			Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		})
		if err != nil {
			return fmt.Errorf("failed to create bot: %w", err)
		}

		gateway := telegram.NewGateway(bot, cfg.GroupID, logger)
		wizard := telegram.NewWizardStore(container.RedisClient, telegram.DefaultWizardTTL)

		tgBot := telegram.NewBot(bot, cfg, gateway, wizard, telegram.Handlers{
			SyncRoster:      container.SyncRosterHandler,
			CreateChore:     container.CreateChoreHandler,
			EditChore:       container.EditChoreHandler,
			DeleteChore:     container.DeleteChoreHandler,
			CompleteChore:   container.CompleteChoreHandler,
			RunAssignment:   container.RunAssignmentHandler,
			TrackItem:       container.TrackItemHandler,
			ReportDepleted:  container.ReportDepletedHandler,
			ConfirmPurchase: container.ConfirmPurchaseHandler,
			Status:          container.StatusHandler,
			Leaderboard:     container.LeaderboardHandler,
			Stock:           container.StockHandler,
		}, logger)

		announcer := telegram.NewAnnouncer(
			gateway,
			container.RunAssignmentHandler,
			container.RolloverHandler,
			container.ResetPointsHandler,
			logger,
		)

		loc := cfg.Location()
		scheduler := scheduling.NewService(loc, logger)

		assignJob := announcer.AssignmentJob()
		if cfg.AssignLastWeekdayOnly {
			assignJob = scheduling.GateLastWeekday(loc, assignJob)
		}
		if err := scheduler.Register("assignment", cfg.AssignCron, assignJob); err != nil {
			return fmt.Errorf("failed to schedule assignment: %w", err)
		}
		if err := scheduler.Register("rollover", cfg.RolloverCron, announcer.RolloverJob()); err != nil {
			return fmt.Errorf("failed to schedule rollover: %w", err)
		}
		if err := scheduler.Register("monthly-reset", cfg.ResetCron, announcer.ResetJob()); err != nil {
			return fmt.Errorf("failed to schedule monthly reset: %w", err)
		}

		ctx := cmd.Context()
		go container.OutboxProcessor.Start(ctx)
		scheduler.Start()
		go tgBot.Start()
		logger.Info("bot is up", "group_id", cfg.GroupID, "timezone", cfg.Timezone)

		<-ctx.Done()

		logger.Info("shutting down")
		tgBot.Stop()
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		scheduler.Stop(stopCtx)
		container.OutboxProcessor.Stop()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
