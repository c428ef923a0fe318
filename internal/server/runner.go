// Package server runs the long-lived background components of the daemon.
package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/vmunix/mediascan/internal/events"
	"golang.org/x/sync/errgroup"
)

// Service is a component that runs until its context is canceled.
type Service interface {
	Run(ctx context.Context) error
}

// Config for the runner.
type Config struct {
	// PruneInterval is how often old events are removed. Zero disables pruning.
	PruneInterval time.Duration
	// Retention is how long events are kept.
	Retention time.Duration
}

// Runner manages the scan workers and event housekeeping.
type Runner struct {
	scanner  Service
	eventLog *events.EventLog
	bus      *events.Bus
	config   Config
	logger   *slog.Logger
}

// NewRunner creates a new runner. eventLog and bus may be nil.
func NewRunner(scanner Service, eventLog *events.EventLog, bus *events.Bus, cfg Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		scanner:  scanner,
		eventLog: eventLog,
		bus:      bus,
		config:   cfg,
		logger:   logger.With("component", "runner"),
	}
}

// Run starts all components.
// It blocks until the context is canceled or a component fails.
func (r *Runner) Run(ctx context.Context) error {
	if r.bus != nil {
		defer func() { _ = r.bus.Close() }()
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return r.scanner.Run(ctx)
	})

	if r.eventLog != nil && r.config.PruneInterval > 0 && r.config.Retention > 0 {
		g.Go(func() error {
			r.pruneLoop(ctx)
			return nil
		})
	}

	return g.Wait()
}

func (r *Runner) pruneLoop(ctx context.Context) {
	r.prune(ctx)

	ticker := time.NewTicker(r.config.PruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.prune(ctx)
		}
	}
}

func (r *Runner) prune(ctx context.Context) {
	n, err := r.eventLog.Prune(ctx, r.config.Retention)
	if err != nil {
		if ctx.Err() == nil {
			r.logger.Warn("event prune failed", "error", err)
		}
		return
	}
	if n > 0 {
		r.logger.Info("pruned events", "count", n, "retention", r.config.Retention)
	}
}
