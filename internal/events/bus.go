// internal/events/bus.go
package events

import (
	"context"
	"log/slog"
	"slices"
	"sync"
)

// Filter selects the events a subscriber receives. A nil Filter matches all.
type Filter func(Event) bool

// OfType matches events whose type is one of types.
func OfType(types ...string) Filter {
	return func(e Event) bool {
		return slices.Contains(types, e.EventType())
	}
}

// ForPath matches events concerning path.
func ForPath(path string) Filter {
	return func(e Event) bool {
		return e.Path() == path
	}
}

type subscriber struct {
	ch     chan Event
	filter Filter
}

// Bus fans scan events out to subscribers.
type Bus struct {
	mu     sync.RWMutex
	subs   []*subscriber
	log    *EventLog // may be nil
	logger *slog.Logger
	closed bool
}

// NewBus creates a new event bus.
// The EventLog is optional - pass nil to disable persistence.
func NewBus(log *EventLog, logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		log:    log,
		logger: logger,
	}
}

// Publish persists e (when a log is configured), then delivers it without
// blocking. Subscribers with a full buffer miss the event.
func (b *Bus) Publish(ctx context.Context, e Event) error {
	if b.log != nil {
		if _, err := b.log.Append(ctx, e); err != nil {
			b.logger.Error("failed to persist event", "type", e.EventType(), "error", err)
		}
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return nil
	}

	for _, s := range b.subs {
		if s.filter != nil && !s.filter(e) {
			continue
		}
		select {
		case s.ch <- e:
		default:
			b.logger.Warn("subscriber channel full, dropping event",
				"type", e.EventType(),
				"path", e.Path())
		}
	}
	return nil
}

// Subscribe returns a channel receiving events accepted by filter.
// The channel is closed by Unsubscribe or Close.
func (b *Bus) Subscribe(filter Filter, bufferSize int) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, bufferSize)
	if b.closed {
		close(ch)
		return ch
	}
	b.subs = append(b.subs, &subscriber{ch: ch, filter: filter})
	return ch
}

func (b *Bus) SubscribePath(path string, bufferSize int) <-chan Event {
	return b.Subscribe(ForPath(path), bufferSize)
}

// Unsubscribe removes a subscription and closes its channel.
// Unknown or already removed channels are ignored.
func (b *Bus) Unsubscribe(ch <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s.ch == ch {
			b.subs = slices.Delete(b.subs, i, i+1)
			close(s.ch)
			return
		}
	}
}

// Close shuts down the bus and closes all subscriber channels.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	for _, s := range b.subs {
		close(s.ch)
	}
	b.subs = nil
	return nil
}
