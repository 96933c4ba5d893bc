package jobs

import (
	"context"
	"log/slog"
	"time"

	"ordering/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// expiryBatchSize bounds how many orders one run cancels.
const expiryBatchSize = 100

// ExpirePendingOrdersHandler is satisfied by commands.ExpirePendingOrdersCommandHandler.
type ExpirePendingOrdersHandler interface {
	Handle(ctx context.Context, cmd commands.ExpirePendingOrdersCommand) (int, error)
}

// OrderExpiryJob cancels PENDING orders older than ttl on a cron schedule,
// returning their stock to inventory.
type OrderExpiryJob struct {
	handler  ExpirePendingOrdersHandler
	schedule string
	ttl      time.Duration
	now      func() time.Time
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOrderExpiryJob creates the job. schedule uses the six-field cron syntax with seconds.
func NewOrderExpiryJob(
	handler ExpirePendingOrdersHandler,
	schedule string,
	ttl time.Duration,
	logger *slog.Logger,
) *OrderExpiryJob {
	return &OrderExpiryJob{
		handler:  handler,
		schedule: schedule,
		ttl:      ttl,
		now:      time.Now,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "order_expiry_job"),
	}
}

// Start registers the schedule and starts the cron runner.
func (j *OrderExpiryJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order expiry job started",
		"schedule", j.schedule, "ttl", j.ttl.String())
	return nil
}

// RunOnce cancels one batch of stale orders and reports how many were cancelled.
func (j *OrderExpiryJob) RunOnce(ctx context.Context) int {
	cmd, err := commands.NewExpirePendingOrdersCommand(j.now().Add(-j.ttl), expiryBatchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Order expiry job misconfigured", "error", err)
		return 0
	}

	cancelled, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Order expiry job failed", "cancelled", cancelled, "error", err)
	}
	if cancelled > 0 {
		j.logger.InfoContext(ctx, "Expired pending orders", "cancelled", cancelled)
	}
	return cancelled
}

// Stop stops the cron runner and waits for a running batch to finish.
func (j *OrderExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Order expiry job stopped")
}
