// Package janitor schedules background maintenance for uploaded assets.
package janitor

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Sweeper is implemented by service.AssetService.
type Sweeper interface {
	SweepPending(ctx context.Context) (int, error)
}

const runTimeout = 5 * time.Minute

type Janitor struct {
	cron    *cron.Cron
	sweeper Sweeper
	logger  *zap.Logger

	// ctx is cancelled by Stop so an in-flight sweep returns early.
	ctx    context.Context
	cancel context.CancelFunc
}

// New registers the sweep under spec, a six-field cron expression with
// seconds. Overlapping runs are skipped.
func New(spec string, sweeper Sweeper, logger *zap.Logger) (*Janitor, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	j := &Janitor{sweeper: sweeper, logger: logger, ctx: ctx, cancel: cancel}

	j.cron = cron.New(
		cron.WithSeconds(),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	if _, err := j.cron.AddFunc(spec, j.Run); err != nil {
		cancel()
		return nil, err
	}
	return j, nil
}

func (j *Janitor) Start() {
	j.cron.Start()
	j.logger.Info("asset janitor started", zap.Int("entries", len(j.cron.Entries())))
}

// Stop cancels a running sweep and waits for it to return or for ctx to end.
func (j *Janitor) Stop(ctx context.Context) error {
	j.cancel()
	done := j.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run performs one sweep. It is exported so operators can trigger it
// outside the schedule.
func (j *Janitor) Run() {
	ctx, cancel := context.WithTimeout(j.ctx, runTimeout)
	defer cancel()

	start := time.Now()
	n, err := j.sweeper.SweepPending(ctx)
	if err != nil {
		j.logger.Error("asset janitor sweep failed", zap.Int("deleted", n), zap.Error(err))
		return
	}
	j.logger.Info("asset janitor sweep done", zap.Int("deleted", n), zap.Duration("took", time.Since(start)))
}
