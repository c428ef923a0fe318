// Package scanner runs scanFile requests against the configured indexing
// backends in the background.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/mediascan/internal/channel"
	"github.com/vmunix/mediascan/internal/events"
	"github.com/vmunix/mediascan/internal/mediaindex"
)

//go:generate mockgen -destination=mocks/mock_backend.go -package=mocks github.com/vmunix/mediascan/internal/scanner Backend

// ErrQueueFull is passed to the completion callback when a path is dropped.
var ErrQueueFull = errors.New("scan queue full")

// Backend indexes a single path.
type Backend interface {
	Name() string
	Scan(ctx context.Context, path, mimeType string) error
}

// Config controls dispatcher sizing.
type Config struct {
	Workers   int
	QueueSize int
	Timeout   time.Duration // per path, across all backends
}

type job struct {
	path       string
	mimeType   string
	onComplete channel.ScanCallback
}

// Dispatcher queues scan requests and hands them to backends.
type Dispatcher struct {
	backends []Backend
	bus      *events.Bus
	cfg      Config
	queue    chan job
	logger   *slog.Logger
}

// Ensure Dispatcher satisfies the channel's indexing service.
var _ channel.Indexer = (*Dispatcher)(nil)

// New creates a dispatcher. bus may be nil.
func New(backends []Backend, bus *events.Bus, cfg Config, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 100
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Dispatcher{
		backends: backends,
		bus:      bus,
		cfg:      cfg,
		queue:    make(chan job, cfg.QueueSize),
		logger:   logger.With("component", "scanner"),
	}
}

// Backends returns the names of the configured backends.
func (d *Dispatcher) Backends() []string {
	names := make([]string, len(d.backends))
	for i, b := range d.backends {
		names[i] = b.Name()
	}
	return names
}

// Pending returns the number of queued, not yet started scans.
func (d *Dispatcher) Pending() int {
	return len(d.queue)
}

// ScanFile queues every path and returns immediately.
// mimeTypes[i], when present and non-empty, overrides detection for paths[i].
func (d *Dispatcher) ScanFile(paths []string, mimeTypes []string, onComplete channel.ScanCallback) {
	for i, p := range paths {
		p = mediaindex.NormalizePath(p)
		mimeType := ""
		if i < len(mimeTypes) {
			mimeType = mimeTypes[i]
		}
		if mimeType == "" {
			mimeType = mediaindex.DetectMimeType(p)
		}

		j := job{path: p, mimeType: mimeType, onComplete: onComplete}
		select {
		case d.queue <- j:
			d.publish(&events.ScanRequested{
				BaseEvent: events.NewBaseEvent(events.EventScanRequested, p),
				MimeType:  mimeType,
			})
		default:
			d.logger.Warn("scan queue full, dropping path", "path", p, "queue_size", d.cfg.QueueSize)
			d.publish(&events.ScanDropped{
				BaseEvent: events.NewBaseEvent(events.EventScanDropped, p),
				Reason:    ErrQueueFull.Error(),
			})
			if onComplete != nil {
				onComplete(p, ErrQueueFull)
			}
		}
	}
}

// Run processes queued scans until ctx is canceled.
func (d *Dispatcher) Run(ctx context.Context) error {
	d.logger.Info("scanner started", "workers", d.cfg.Workers, "backends", d.Backends())

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < d.cfg.Workers; i++ {
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return nil
				case j := <-d.queue:
					d.process(ctx, j)
				}
			}
		})
	}

	err := g.Wait()
	d.logger.Info("scanner stopped", "abandoned", len(d.queue))
	return err
}

func (d *Dispatcher) process(ctx context.Context, j job) {
	ctx, cancel := context.WithTimeout(ctx, d.cfg.Timeout)
	defer cancel()

	start := time.Now()
	var errs []error
	for _, b := range d.backends {
		if err := b.Scan(ctx, j.path, j.mimeType); err != nil {
			d.logger.Warn("backend scan failed", "backend", b.Name(), "path", j.path, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", b.Name(), err))
		}
	}
	err := errors.Join(errs...)
	elapsed := time.Since(start).Milliseconds()

	if err != nil {
		d.publish(&events.ScanFailed{
			BaseEvent:  events.NewBaseEvent(events.EventScanFailed, j.path),
			Backends:   d.Backends(),
			Reason:     err.Error(),
			DurationMS: elapsed,
		})
	} else {
		d.logger.Debug("scan completed", "path", j.path, "duration_ms", elapsed)
		d.publish(&events.ScanCompleted{
			BaseEvent:  events.NewBaseEvent(events.EventScanCompleted, j.path),
			Backends:   d.Backends(),
			DurationMS: elapsed,
		})
	}

	if j.onComplete != nil {
		j.onComplete(j.path, err)
	}
}

func (d *Dispatcher) publish(e events.Event) {
	if d.bus == nil {
		return
	}
	// Events outlive the request that caused them.
	if err := d.bus.Publish(context.Background(), e); err != nil {
		d.logger.Error("failed to publish event", "type", e.EventType(), "error", err)
	}
}
