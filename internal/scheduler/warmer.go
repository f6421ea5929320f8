package scheduler

import (
	"context"
	"fmt"
	"time"

	applogger "QuantLab/pkg/logger"

	"github.com/robfig/cron/v3"
)

// Warmer refreshes the snapshot cache on a fixed cadence so interactive
// requests mostly land on warm data.
type Warmer struct {
	cron     *cron.Cron
	interval time.Duration
	refresh  func(ctx context.Context) error
	logger   *applogger.Logger
	timeout  time.Duration
}

// NewWarmer creates a warmer running refresh every interval. An interval of
// zero disables it.
func NewWarmer(interval time.Duration, refresh func(ctx context.Context) error, logger *applogger.Logger) *Warmer {
	return &Warmer{
		cron:     cron.New(),
		interval: interval,
		refresh:  refresh,
		logger:   logger,
		timeout:  30 * time.Second,
	}
}

// Start schedules the refresh job and runs one warm-up pass immediately.
func (w *Warmer) Start() error {
	if w.interval <= 0 {
		return nil
	}

	spec := fmt.Sprintf("@every %s", w.interval)
	if _, err := w.cron.AddFunc(spec, w.run); err != nil {
		return fmt.Errorf("schedule warmer: %w", err)
	}
	w.cron.Start()
	go w.run()

	w.logger.Info("cache warmer started", applogger.Duration("interval", w.interval))
	return nil
}

// Stop halts the schedule and waits for a running job to finish.
func (w *Warmer) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
}

func (w *Warmer) run() {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	if err := w.refresh(ctx); err != nil {
		w.logger.Warn("cache warm failed", applogger.Error(err))
	}
}
