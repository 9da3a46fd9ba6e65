// Package daemon holds the background upkeep of a running wmgeom process.
package daemon

import (
	"context"
	"log/slog"
	"time"

	"github.com/1broseidon/wmgeom/internal/corners"
	"github.com/1broseidon/wmgeom/internal/monitor"
	"github.com/1broseidon/wmgeom/internal/screen"
)

// MonitorLister returns the current monitor layout of the display.
type MonitorLister func() (*monitor.Set, error)

// ReconcilerConfig holds configuration for the reconciler.
type ReconcilerConfig struct {
	Interval time.Duration
	Logger   *slog.Logger
}

// Reconciler periodically checks the monitor layout for drift, such as a
// hot-plugged output, and keeps the corner trigger windows on top.
type Reconciler struct {
	interval     time.Duration
	screen       *screen.Context
	listMonitors MonitorLister
	logger       *slog.Logger
}

// NewReconciler creates a new reconciler for scr.
func NewReconciler(cfg ReconcilerConfig, scr *screen.Context, listMonitors MonitorLister) *Reconciler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Reconciler{
		interval:     interval,
		screen:       scr,
		listMonitors: listMonitors,
		logger:       logger.With("component", "reconciler"),
	}
}

// Run starts the reconciliation loop. Blocks until context is cancelled.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("reconciler started", "interval", r.interval)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reconciler stopped")
			return
		case <-ticker.C:
			r.reconcile()
		}
	}
}

// reconcile performs a single reconciliation pass and reports whether the
// monitor layout changed.
func (r *Reconciler) reconcile() (changed bool) {
	// Recover from panics to prevent crashing the daemon
	defer func() {
		if err := recover(); err != nil {
			r.logger.Error("reconciler panic recovered", "error", err)
		}
	}()

	actual, err := r.listMonitors()
	if err != nil {
		r.logger.Error("reconciler: failed to list monitors", "error", err)
		return false
	}

	if !SameLayout(r.screen.Monitors(), actual) {
		r.logger.Info("reconciler: monitor layout changed",
			"before", r.screen.Monitors().Len(),
			"after", actual.Len())
		if err := r.screen.SetMonitors(actual); err != nil {
			r.logger.Warn("reconciler: failed to move corners", "error", err)
		}
		changed = true
	}

	// Other override-redirect windows can cover the trigger zones.
	if err := r.screen.Corners().Update(corners.NewUpdateMask(corners.UpdateStack)); err != nil {
		r.logger.Warn("reconciler: failed to raise corners", "error", err)
	}
	return changed
}

// ReconcileNow triggers an immediate reconciliation pass.
func (r *Reconciler) ReconcileNow() bool {
	return r.reconcile()
}

// SameLayout reports whether a and b hold the same monitors in the same
// order.
func SameLayout(a, b *monitor.Set) bool {
	if a == nil || b == nil {
		return a.Len() == b.Len()
	}
	if a.Len() != b.Len() {
		return false
	}
	am, bm := a.All(), b.All()
	for i := range am {
		if am[i] != bm[i] {
			return false
		}
	}
	return true
}
