package jobs

import (
	"context"
	"errors"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OrderAssignmentJob manages the scheduled routing of pending orders.
// Runs every second to drain the backlog of orders awaiting their first
// store assignment, one order per tick.
type OrderAssignmentJob struct {
	handler commands.AssignOrderCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOrderAssignmentJob creates a new job for routing pending orders.
func NewOrderAssignmentJob(handler commands.AssignOrderCommandHandler, logger *slog.Logger) *OrderAssignmentJob {
	return &OrderAssignmentJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "order_assignment_job"),
	}
}

// Start begins the order assignment job to run every second.
func (j *OrderAssignmentJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewAssignNextPendingOrderCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			// Only log errors that are not expected business scenarios
			if !errors.Is(err, commands.ErrNoPendingOrders) && !errors.Is(err, commands.ErrNoSuitableStore) {
				j.logger.ErrorContext(ctx, "Order assignment job failed", "error", err)
			}
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order assignment job started (running every second)")
	return nil
}

// Stop stops the order assignment job.
func (j *OrderAssignmentJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order assignment job stopped")
}
