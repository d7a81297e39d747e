// Package scheduler refreshes forward curve snapshots on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Reloader re-reads every configured curve source.
type Reloader interface {
	ReloadAll(ctx context.Context) error
}

// CurveReloader runs a Reloader on a six-field (seconds first) cron spec.
type CurveReloader struct {
	cron     *cron.Cron
	reloader Reloader
	timeout  time.Duration
	logger   *slog.Logger
	ctx      context.Context
}

const defaultReloadTimeout = time.Minute

func NewCurveReloader(spec string, r Reloader, logger *slog.Logger) (*CurveReloader, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cr := &CurveReloader{
		cron:     cron.New(cron.WithSeconds()),
		reloader: r,
		timeout:  defaultReloadTimeout,
		logger:   logger,
		ctx:      context.Background(),
	}
	if _, err := cr.cron.AddFunc(spec, cr.reload); err != nil {
		return nil, fmt.Errorf("register curve reload %q: %w", spec, err)
	}
	return cr, nil
}

// Run starts the cron loop and blocks until ctx is done, then waits for a
// running reload to finish.
func (c *CurveReloader) Run(ctx context.Context) error {
	c.ctx = ctx
	c.cron.Start()
	c.logger.Info("curve reloader started", slog.Time("next", c.Next()))

	<-ctx.Done()
	<-c.cron.Stop().Done()
	c.logger.Info("curve reloader stopped")
	return nil
}

// Next is the time of the next scheduled reload.
func (c *CurveReloader) Next() time.Time {
	entries := c.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

func (c *CurveReloader) reload() {
	ctx, cancel := context.WithTimeout(c.ctx, c.timeout)
	defer cancel()

	start := time.Now()
	if err := c.reloader.ReloadAll(ctx); err != nil {
		c.logger.ErrorContext(ctx, "curve reload failed", slog.String("error", err.Error()))
		return
	}
	c.logger.InfoContext(ctx, "curves reloaded", slog.Duration("duration", time.Since(start)))
}
