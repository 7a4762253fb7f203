package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bibbank/agriscore/internal/domain/event"
	"github.com/bibbank/agriscore/internal/domain/port"
)

const (
	dispatchQueueSize = 256
	dispatchTimeout   = 10 * time.Second
)

var (
	// ErrDispatcherClosed is returned by Publish after Close.
	ErrDispatcherClosed = errors.New("event dispatcher closed")

	// ErrDispatchQueueFull is returned when events are dropped because the
	// publisher is not keeping up.
	ErrDispatchQueueFull = errors.New("event dispatch queue full")
)

type dispatchBatch struct {
	ctx    context.Context
	events []event.Event
}

// EventDispatcher moves event publishing off the request path. Publish only
// enqueues; a single goroutine forwards batches to the underlying publisher
// in order. Close drains the queue.
type EventDispatcher struct {
	publisher port.EventPublisher
	logger    *slog.Logger
	timeout   time.Duration

	mu     sync.RWMutex
	closed bool
	queue  chan dispatchBatch
	done   chan struct{}
}

// NewEventDispatcher starts the forwarding goroutine.
func NewEventDispatcher(publisher port.EventPublisher, logger *slog.Logger) *EventDispatcher {
	d := &EventDispatcher{
		publisher: publisher,
		logger:    logger,
		timeout:   dispatchTimeout,
		queue:     make(chan dispatchBatch, dispatchQueueSize),
		done:      make(chan struct{}),
	}
	go d.run()
	return d
}

// Publish enqueues events without waiting for delivery. The caller's
// cancellation does not apply to delivery; its values (trace context) do.
func (d *EventDispatcher) Publish(ctx context.Context, events ...event.Event) error {
	if len(events) == 0 {
		return nil
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrDispatcherClosed
	}

	select {
	case d.queue <- dispatchBatch{ctx: context.WithoutCancel(ctx), events: events}:
		return nil
	default:
		return fmt.Errorf("%w: dropped %d events", ErrDispatchQueueFull, len(events))
	}
}

// Close stops accepting events and waits until queued ones are delivered or
// ctx ends.
func (d *EventDispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("drain events: %w", ctx.Err())
	}
}

func (d *EventDispatcher) run() {
	defer close(d.done)
	for b := range d.queue {
		ctx, cancel := context.WithTimeout(b.ctx, d.timeout)
		err := d.publisher.Publish(ctx, b.events...)
		cancel()
		if err != nil {
			d.logger.Warn("failed to publish events",
				slog.Int("count", len(b.events)),
				slog.String("event_type", b.events[0].EventType()),
				slog.String("error", err.Error()),
			)
		}
	}
}
