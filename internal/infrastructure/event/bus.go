// Package event dispatches domain events raised by payment reconciliation to
// in-process handlers and to the outbound SNS topic.
package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ikpixels/marketplace/internal/domain/shared"
	"github.com/ikpixels/marketplace/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// DefaultHandlerTimeout bounds a single asynchronous handler invocation
const DefaultHandlerTimeout = 10 * time.Second

// InMemoryEventBus fans events out to subscribed handlers. Before Start it
// dispatches synchronously; once started, each handler runs in its own
// goroutine so publishers never wait on slow sinks. Stop drains in-flight
// dispatches.
type InMemoryEventBus struct {
	registry       *handlerRegistry
	logger         *zap.Logger
	handlerTimeout time.Duration

	// mu orders wg.Add in Publish against wg.Wait in Stop
	mu      sync.Mutex
	running bool
	wg      sync.WaitGroup
}

// NewInMemoryEventBus creates a new in-memory event bus
func NewInMemoryEventBus(log *zap.Logger) *InMemoryEventBus {
	if log == nil {
		log = zap.NewNop()
	}
	return &InMemoryEventBus{
		registry:       newHandlerRegistry(),
		logger:         log,
		handlerTimeout: DefaultHandlerTimeout,
	}
}

// Publish delivers events to every matching handler. Handler failures are
// logged and never returned.
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, evt := range events {
		for _, handler := range b.registry.lookup(evt.EventType()) {
			if !b.track() {
				b.dispatch(ctx, handler, evt)
				continue
			}
			go func(h shared.EventHandler, e shared.DomainEvent) {
				defer b.wg.Done()
				hctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), b.handlerTimeout)
				defer cancel()
				b.dispatch(hctx, h, e)
			}(handler, evt)
		}
	}
	return nil
}

// track registers one asynchronous dispatch. It reports false when the bus
// is not running and the caller must dispatch inline.
func (b *InMemoryEventBus) track() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.running {
		return false
	}
	b.wg.Add(1)
	return true
}

// Subscribe registers handler for eventTypes, falling back to the types the
// handler declares itself. A handler with no types receives every event.
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	b.registry.register(handler, eventTypes...)
	b.logger.Debug("Event handler subscribed", zap.Strings("event_types", eventTypes))
}

// Unsubscribe removes handler from every event type
func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.registry.unregister(handler)
}

// Start switches the bus to asynchronous dispatch
func (b *InMemoryEventBus) Start(context.Context) error {
	b.mu.Lock()
	b.running = true
	b.mu.Unlock()
	b.logger.Info("Event bus started")
	return nil
}

// Stop returns the bus to synchronous dispatch and waits for in-flight
// handlers, or until ctx is done.
func (b *InMemoryEventBus) Stop(ctx context.Context) error {
	b.mu.Lock()
	b.running = false
	b.mu.Unlock()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		b.logger.Info("Event bus stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("event bus stop: %w", ctx.Err())
	}
}

func (b *InMemoryEventBus) dispatch(ctx context.Context, handler shared.EventHandler, evt shared.DomainEvent) {
	log := logger.Enrich(ctx, b.logger).With(
		zap.String("event_type", evt.EventType()),
		zap.String("event_id", evt.EventID().String()),
	)
	defer func() {
		if r := recover(); r != nil {
			log.Error("Event handler panicked", zap.Any("panic", r))
		}
	}()

	if err := handler.Handle(ctx, evt); err != nil {
		log.Error("Event handler failed", zap.Error(err))
	}
}

var _ shared.EventPublisher = (*InMemoryEventBus)(nil)
