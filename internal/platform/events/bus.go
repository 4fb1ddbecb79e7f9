// Package events provides the in-process event bus that decouples business
// operations from their accounting side effects. Publishers emit events
// after their own transaction has committed; subscribers run synchronously
// on the publishing goroutine but can never fail the publisher.
package events

import (
	"context"
	"log/slog"
	"sync"

	"github.com/cuentaclara/cuentaclara-backend/internal/middleware"
)

// Event is any post-commit business fact carried over the bus.
type Event interface {
	EventType() string
}

// HandlerFunc consumes one event. Handlers must not return errors; failures
// are their own responsibility to log.
type HandlerFunc func(ctx context.Context, evt Event)

// Bus is a synchronous in-process publish/subscribe dispatcher.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]HandlerFunc
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]HandlerFunc)}
}

// Subscribe registers a handler for an event type. Subscription order is
// dispatch order.
func (b *Bus) Subscribe(eventType string, h HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], h)
}

// Publish dispatches the event to every subscriber, in order, on the
// calling goroutine. A panicking subscriber is recovered and logged; the
// publisher always returns normally.
func (b *Bus) Publish(ctx context.Context, evt Event) {
	b.mu.RLock()
	subs := b.handlers[evt.EventType()]
	b.mu.RUnlock()

	for _, h := range subs {
		b.dispatch(ctx, evt, h)
	}
}

func (b *Bus) dispatch(ctx context.Context, evt Event, h HandlerFunc) {
	defer func() {
		if r := recover(); r != nil {
			middleware.GetLoggerFromCtx(ctx).Error("Event handler panicked",
				slog.String("event_type", evt.EventType()),
				slog.Any("panic", r))
		}
	}()
	h(ctx, evt)
}
