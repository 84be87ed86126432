package events

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Bus is a simple synchronous event bus for domain events.
// It dispatches events to registered handlers synchronously.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   *zap.Logger
}

// NewBus creates a new event bus.
func NewBus(logger *zap.Logger) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

// Register registers a handler for the events it handles. Registering on a nil bus is a no-op.
func (b *Bus) Register(handler Handler) {
	if b == nil || handler == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, eventType := range handler.Handles() {
		b.handlers[eventType] = append(b.handlers[eventType], handler)
		b.logger.Debug("registered event handler",
			zap.String("event_type", eventType),
		)
	}
}

// Publish dispatches an event to all registered handlers.
// Handlers are called synchronously in registration order.
// If a handler fails, the error is logged but other handlers continue processing.
// The only error returned is for values that are not an Event.
// A nil bus drops events, so a typed-nil *Bus is a usable publisher.
func (b *Bus) Publish(_ context.Context, event interface{}) error {
	if b == nil {
		return nil
	}
	ev, ok := event.(Event)
	if !ok {
		return fmt.Errorf("publish: %T does not implement events.Event", event)
	}

	b.mu.RLock()
	handlers := b.handlers[ev.EventType()]
	b.mu.RUnlock()

	if len(handlers) == 0 {
		b.logger.Debug("no handlers registered for event", logFields(ev)...)
		return nil
	}

	b.logger.Debug("publishing event", logFields(ev, zap.Int("handler_count", len(handlers)))...)

	for _, handler := range handlers {
		if err := handler.Handle(ev); err != nil {
			b.logger.Error("event handler failed", logFields(ev, zap.Error(err))...)
		}
	}
	return nil
}
