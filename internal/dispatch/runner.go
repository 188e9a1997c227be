package dispatch

import (
	"context"
	"time"

	"github.com/clinicabrunoquintela/clinica-gestao-sub000/pkg/logging"
)

type runner interface {
	RunOnce(ctx context.Context, now time.Time) (*RunReport, error)
}

// Runner invokes the coordinator on a fixed tick. It is the periodic trigger
// of the system; each tick is one finite run.
type Runner struct {
	coordinator runner
	lock        *RunLock
	interval    time.Duration
	logger      *logging.Logger
}

// NewRunner creates a dispatch runner. lock may be nil for single-instance
// deployments.
func NewRunner(coordinator runner, lock *RunLock, logger *logging.Logger) *Runner {
	if logger == nil {
		logger = logging.Default()
	}
	return &Runner{
		coordinator: coordinator,
		lock:        lock,
		interval:    time.Minute,
		logger:      logger,
	}
}

func (r *Runner) WithInterval(d time.Duration) *Runner {
	if d > 0 {
		r.interval = d
	}
	return r
}

// Run ticks until the context is canceled.
func (r *Runner) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	r.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.tick(ctx)
		}
	}
}

func (r *Runner) tick(ctx context.Context) {
	if r.lock != nil {
		ok, err := r.lock.Acquire(ctx)
		if err != nil {
			r.logger.Error("dispatch lock unavailable", "error", err)
			return
		}
		if !ok {
			r.logger.Debug("another replica holds the dispatch lock")
			return
		}
		defer r.lock.Release(ctx)
	}

	if _, err := r.coordinator.RunOnce(ctx, time.Now().UTC()); err != nil {
		r.logger.Error("dispatch run failed", "error", err)
	}
}
