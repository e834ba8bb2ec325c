package jobs

import (
	"context"
	"log/slog"
	"time"

	"storefront/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

const (
	DefaultAutoCloseSchedule = "@every 15m"
	DefaultAutoCloseIdle     = 48 * time.Hour
	DefaultAutoCloseBatch    = 100
)

// DeliveredOrdersCloser completes delivered orders the customer never confirmed.
type DeliveredOrdersCloser interface {
	Handle(ctx context.Context, cmd commands.CloseDeliveredOrdersCommand) ([]int64, error)
}

type AutoCloseConfig struct {
	Schedule  string
	IdleFor   time.Duration
	BatchSize int
}

// AutoCloseJob completes orders that sit in delivering with a delivered
// delivery for longer than IdleFor.
type AutoCloseJob struct {
	handler DeliveredOrdersCloser
	cfg     AutoCloseConfig
	cron    *cron.Cron
	logger  *slog.Logger
}

func NewAutoCloseJob(handler DeliveredOrdersCloser, cfg AutoCloseConfig, logger *slog.Logger) *AutoCloseJob {
	if cfg.Schedule == "" {
		cfg.Schedule = DefaultAutoCloseSchedule
	}
	if cfg.IdleFor <= 0 {
		cfg.IdleFor = DefaultAutoCloseIdle
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultAutoCloseBatch
	}
	return &AutoCloseJob{
		handler: handler,
		cfg:     cfg,
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:  logger.With("component", "auto_close_job"),
	}
}

func (j *AutoCloseJob) Start() error {
	if _, err := j.cron.AddFunc(j.cfg.Schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Auto-close job started", "schedule", j.cfg.Schedule, "idle_for", j.cfg.IdleFor)
	return nil
}

// Run performs one pass and returns the ids it completed.
func (j *AutoCloseJob) Run(ctx context.Context) []int64 {
	cmd, err := commands.NewCloseDeliveredOrdersCommand(j.cfg.IdleFor, j.cfg.BatchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Auto-close job misconfigured", "error", err)
		return nil
	}

	closed, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Auto-close job failed", "error", err, "closed", len(closed))
		return closed
	}
	if len(closed) > 0 {
		j.logger.InfoContext(ctx, "Delivered orders completed", "order_ids", closed)
	}
	return closed
}

// Stop waits for a running pass to finish.
func (j *AutoCloseJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Auto-close job stopped")
}
