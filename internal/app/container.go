// Package app wires configuration, infrastructure, and handlers into one
// dependency container shared by the bot, the CLI, and the worker.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	choreCommands "github.com/felixgeelhaar/rota/internal/chores/application/commands"
	choreQueries "github.com/felixgeelhaar/rota/internal/chores/application/queries"
	choreServices "github.com/felixgeelhaar/rota/internal/chores/application/services"
	"github.com/felixgeelhaar/rota/internal/chores/domain/chore"
	chorePersistence "github.com/felixgeelhaar/rota/internal/chores/infrastructure/persistence"
	pantryCommands "github.com/felixgeelhaar/rota/internal/pantry/application/commands"
	pantryQueries "github.com/felixgeelhaar/rota/internal/pantry/application/queries"
	"github.com/felixgeelhaar/rota/internal/pantry/domain/item"
	pantryPersistence "github.com/felixgeelhaar/rota/internal/pantry/infrastructure/persistence"
	rosterCommands "github.com/felixgeelhaar/rota/internal/roster/application/commands"
	rosterQueries "github.com/felixgeelhaar/rota/internal/roster/application/queries"
	"github.com/felixgeelhaar/rota/internal/roster/domain/member"
	rosterPersistence "github.com/felixgeelhaar/rota/internal/roster/infrastructure/persistence"
	sharedApplication "github.com/felixgeelhaar/rota/internal/shared/application"
	"github.com/felixgeelhaar/rota/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/rota/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/rota/internal/shared/infrastructure/migrations"
	"github.com/felixgeelhaar/rota/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/rota/pkg/config"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Infrastructure
	DBConn      database.Connection
	RedisClient *redis.Client

	// Repositories
	MemberRepo member.Repository
	ChoreRepo  chore.Repository
	ItemRepo   item.Repository
	OutboxRepo outbox.Repository

	// Event publishing
	EventPublisher  eventbus.Publisher
	OutboxProcessor *outbox.Processor

	// Unit of Work
	UnitOfWork sharedApplication.UnitOfWork

	// Roster handlers
	SyncRosterHandler  *rosterCommands.SyncRosterHandler
	ResetPointsHandler *rosterCommands.ResetPointsHandler
	LeaderboardHandler *rosterQueries.LeaderboardHandler

	// Chore handlers
	CreateChoreHandler   *choreCommands.CreateChoreHandler
	EditChoreHandler     *choreCommands.EditChoreHandler
	DeleteChoreHandler   *choreCommands.DeleteChoreHandler
	CompleteChoreHandler *choreCommands.CompleteChoreHandler
	RunAssignmentHandler *choreCommands.RunAssignmentHandler
	RolloverHandler      *choreCommands.RolloverCycleHandler
	StatusHandler        *choreQueries.StatusHandler

	// Pantry handlers
	TrackItemHandler       *pantryCommands.TrackItemHandler
	ReportDepletedHandler  *pantryCommands.ReportDepletedHandler
	ConfirmPurchaseHandler *pantryCommands.ConfirmPurchaseHandler
	StockHandler           *pantryQueries.StockHandler
}

// NewContainer builds the dependency graph.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{
		Config: cfg,
		Logger: logger,
	}

	conn, err := database.NewConnection(ctx, database.Config{URL: cfg.DatabaseURL})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DBConn = conn
	logger.Info("connected to database", "driver", conn.Driver())

	if err := migrations.Run(ctx, conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Redis backs the add-chore wizard state. Optional in development.
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			if !cfg.IsDevelopment() {
				conn.Close()
				return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
			}
			logger.Warn("invalid Redis URL, wizard state unavailable", "error", err)
		} else {
			redisClient := redis.NewClient(opt)
			if err := redisClient.Ping(ctx).Err(); err != nil {
				if !cfg.IsDevelopment() {
					conn.Close()
					return nil, fmt.Errorf("failed to connect to Redis: %w", err)
				}
				logger.Warn("Redis not available, wizard state unavailable", "error", err)
			} else {
				c.RedisClient = redisClient
				logger.Info("connected to Redis")
			}
		}
	}

	c.MemberRepo = rosterPersistence.NewMemberRepository(conn)
	c.ChoreRepo = chorePersistence.NewChoreRepository(conn)
	c.ItemRepo = pantryPersistence.NewItemRepository(conn)
	c.OutboxRepo = outbox.NewSQLRepository(conn)
	c.UnitOfWork = database.NewUnitOfWork(conn)

	if cfg.RabbitMQURL != "" {
		publisher, err := eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, logger)
		if err != nil {
			if !cfg.IsDevelopment() {
				conn.Close()
				return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
			}
			logger.Warn("RabbitMQ not available, using noop publisher", "error", err)
			c.EventPublisher = eventbus.NewNoopPublisher(logger)
		} else {
			c.EventPublisher = publisher
		}
	} else {
		c.EventPublisher = eventbus.NewNoopPublisher(logger)
	}

	c.OutboxProcessor = outbox.NewProcessor(c.OutboxRepo, c.EventPublisher, outbox.ProcessorConfig{
		PollInterval:     cfg.OutboxPollInterval,
		BatchSize:        cfg.OutboxBatchSize,
		MaxRetries:       cfg.OutboxMaxRetries,
		RetryBackoffBase: outbox.DefaultProcessorConfig().RetryBackoffBase,
		RetryBackoffMax:  outbox.DefaultProcessorConfig().RetryBackoffMax,
	}, logger)

	engine := choreServices.NewAssignmentEngine(nil)

	c.SyncRosterHandler = rosterCommands.NewSyncRosterHandler(c.MemberRepo, c.OutboxRepo, c.UnitOfWork)
	c.ResetPointsHandler = rosterCommands.NewResetPointsHandler(c.MemberRepo)
	c.LeaderboardHandler = rosterQueries.NewLeaderboardHandler(c.MemberRepo)

	c.CreateChoreHandler = choreCommands.NewCreateChoreHandler(c.ChoreRepo, c.OutboxRepo, c.UnitOfWork)
	c.EditChoreHandler = choreCommands.NewEditChoreHandler(c.ChoreRepo, c.UnitOfWork)
	c.DeleteChoreHandler = choreCommands.NewDeleteChoreHandler(c.ChoreRepo, c.OutboxRepo, c.UnitOfWork)
	c.CompleteChoreHandler = choreCommands.NewCompleteChoreHandler(c.ChoreRepo, c.MemberRepo, c.OutboxRepo, c.UnitOfWork)
	c.RunAssignmentHandler = choreCommands.NewRunAssignmentHandler(c.ChoreRepo, c.MemberRepo, engine, c.OutboxRepo, c.UnitOfWork)
	c.RolloverHandler = choreCommands.NewRolloverCycleHandler(c.ChoreRepo, c.MemberRepo, c.OutboxRepo, c.UnitOfWork)
	c.StatusHandler = choreQueries.NewStatusHandler(c.ChoreRepo, c.MemberRepo)

	c.TrackItemHandler = pantryCommands.NewTrackItemHandler(c.ItemRepo, c.MemberRepo, c.OutboxRepo, c.UnitOfWork)
	c.ReportDepletedHandler = pantryCommands.NewReportDepletedHandler(c.ItemRepo, c.MemberRepo, c.OutboxRepo, c.UnitOfWork)
	c.ConfirmPurchaseHandler = pantryCommands.NewConfirmPurchaseHandler(c.ItemRepo, c.OutboxRepo, c.UnitOfWork)
	c.StockHandler = pantryQueries.NewStockHandler(c.ItemRepo, c.MemberRepo)

	return c, nil
}

// Close releases all held resources.
func (c *Container) Close() {
	if c.OutboxProcessor != nil && c.OutboxProcessor.IsRunning() {
		c.OutboxProcessor.Stop()
	}
	if publisher, ok := c.EventPublisher.(*eventbus.RabbitMQPublisher); ok {
		if err := publisher.Close(); err != nil {
			c.Logger.Warn("failed to close event publisher", "error", err)
		}
	}
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("failed to close redis client", "error", err)
		}
	}
	if c.DBConn != nil {
		c.DBConn.Close()
	}
}
