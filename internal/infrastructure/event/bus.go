package event

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/salesbridge/backend/internal/domain/shared"
)

// InMemoryEventBus implements shared.EventBus with in-memory pub/sub.
// Dispatch is synchronous; a failing handler is logged and does not
// block the remaining handlers.
type InMemoryEventBus struct {
	mu       sync.RWMutex
	handlers map[string][]shared.EventHandler
	logger   *zap.Logger
}

// NewInMemoryEventBus creates a new in-memory event bus
func NewInMemoryEventBus(logger *zap.Logger) *InMemoryEventBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InMemoryEventBus{
		handlers: make(map[string][]shared.EventHandler),
		logger:   logger,
	}
}

// Publish publishes events to all registered handlers synchronously
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, event := range events {
		b.mu.RLock()
		handlers := append([]shared.EventHandler(nil), b.handlers[event.GetEventType()]...)
		b.mu.RUnlock()

		for _, handler := range handlers {
			if err := b.dispatch(ctx, handler, event); err != nil {
				b.logger.Error("handler failed to process event",
					zap.String("event_type", event.GetEventType()),
					zap.String("event_id", event.GetEventID().String()),
					zap.Error(err),
				)
			}
		}
	}
	return nil
}

// Subscribe registers a handler for an event type
func (b *InMemoryEventBus) Subscribe(eventType string, handler shared.EventHandler) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
	b.logger.Debug("handler subscribed", zap.String("event_type", eventType))
	return nil
}

// Unsubscribe removes a handler for an event type
func (b *InMemoryEventBus) Unsubscribe(eventType string, handler shared.EventHandler) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	registered := b.handlers[eventType]
	for i, h := range registered {
		if h == handler {
			b.handlers[eventType] = append(registered[:i], registered[i+1:]...)
			break
		}
	}
	return nil
}

// dispatch safely dispatches an event to a handler
func (b *InMemoryEventBus) dispatch(ctx context.Context, handler shared.EventHandler, event shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("handler panicked",
				zap.String("event_type", event.GetEventType()),
				zap.Any("panic", r),
			)
		}
	}()
	return handler.Handle(ctx, event)
}

var _ shared.EventBus = (*InMemoryEventBus)(nil)
