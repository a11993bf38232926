package telegram

import (
	"context"
	"log/slog"

	choreCommands "github.com/felixgeelhaar/rota/internal/chores/application/commands"
	"github.com/felixgeelhaar/rota/internal/notify"
	rosterCommands "github.com/felixgeelhaar/rota/internal/roster/application/commands"
	"github.com/felixgeelhaar/rota/internal/scheduling"
)

// Announcer turns the scheduled triggers into group announcements.
type Announcer struct {
	gateway       notify.Gateway
	runAssignment *choreCommands.RunAssignmentHandler
	rollover      *choreCommands.RolloverCycleHandler
	resetPoints   *rosterCommands.ResetPointsHandler
	logger        *slog.Logger
}

// NewAnnouncer creates an Announcer.
func NewAnnouncer(
	gateway notify.Gateway,
	runAssignment *choreCommands.RunAssignmentHandler,
	rollover *choreCommands.RolloverCycleHandler,
	resetPoints *rosterCommands.ResetPointsHandler,
	logger *slog.Logger,
) *Announcer {
	return &Announcer{
		gateway:       gateway,
		runAssignment: runAssignment,
		rollover:      rollover,
		resetPoints:   resetPoints,
		logger:        logger,
	}
}

// AssignmentJob draws the new cycle's chores and posts the result.
func (a *Announcer) AssignmentJob() scheduling.Job {
	return func(ctx context.Context) error {
		result, err := a.runAssignment.Handle(ctx, choreCommands.RunAssignmentCommand{})
		if err != nil {
			return err
		}
		return a.gateway.SendText(ctx, renderAssignment(result))
	}
}

// RolloverJob applies the overdue penalties, clears the cycle, and posts who
// lost points.
func (a *Announcer) RolloverJob() scheduling.Job {
	return func(ctx context.Context) error {
		result, err := a.rollover.Handle(ctx, choreCommands.RolloverCycleCommand{})
		if err != nil {
			return err
		}
		return a.gateway.SendText(ctx, renderRollover(result.Penalized))
	}
}

// ResetJob zeroes everyone's points for the new month and announces it.
func (a *Announcer) ResetJob() scheduling.Job {
	return func(ctx context.Context) error {
		result, err := a.resetPoints.Handle(ctx, rosterCommands.ResetPointsCommand{})
		if err != nil {
			return err
		}
		a.logger.Info("monthly reset applied", "members", result.MembersReset)
		return a.gateway.SendText(ctx, "New month, clean slate: everyone is back to 0 points.")
	}
}
