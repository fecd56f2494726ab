package daemon

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// Syncer re-reads the window list.
type Syncer interface {
	Sync() error
}

// ReconcilerConfig holds configuration for the reconciler.
type ReconcilerConfig struct {
	Interval time.Duration
	Logger   *slog.Logger
}

// Reconciler periodically re-syncs the managed windows so a missed
// property notification cannot leave a destroyed window registered.
type Reconciler struct {
	interval time.Duration
	target   Syncer
	logger   *slog.Logger
}

// NewReconciler creates a new reconciler with the given configuration.
func NewReconciler(cfg ReconcilerConfig, target Syncer) *Reconciler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Reconciler{
		interval: interval,
		target:   target,
		logger:   logger,
	}
}

func (r *Reconciler) String() string { return "reconciler" }

// Serve runs the reconciliation loop. Blocks until ctx is cancelled.
func (r *Reconciler) Serve(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Debug("reconciler started", "interval", r.interval)

	for {
		select {
		case <-ctx.Done():
			r.logger.Debug("reconciler stopped")
			return ctx.Err()
		case <-ticker.C:
			r.reconcile()
		}
	}
}

// reconcile performs a single reconciliation pass.
func (r *Reconciler) reconcile() {
	// A panic here must not take the daemon down with it.
	defer func() {
		if err := recover(); err != nil {
			r.logger.Error("reconciler panic recovered", "error", err)
		}
	}()

	if err := r.target.Sync(); err != nil {
		r.logger.Warn("reconciler: sync failed", "error", err)
	}
}

// ReconcileNow triggers an immediate reconciliation pass.
func (r *Reconciler) ReconcileNow() {
	r.reconcile()
}
