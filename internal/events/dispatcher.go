package events

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// dispatchTimeout bounds how long a single handler may run for one event.
const dispatchTimeout = 30 * time.Second

// Dispatcher fans account events out to registered handlers on their own
// goroutine. Dispatch never blocks the caller and never returns an error:
// notification is strictly best-effort and a failing handler must not fail
// the request that raised the event.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers []Handler
	wg       sync.WaitGroup
	logger   *slog.Logger
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		logger: logger.With(slog.String("component", "account_event_dispatcher")),
	}
}

// RegisterHandler adds a handler to receive future events.
func (d *Dispatcher) RegisterHandler(handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers = append(d.handlers, handler)
	d.logger.Debug("registered account event handler", "handler_count", len(d.handlers))
}

// Dispatch delivers the event to every registered handler asynchronously.
// The event outlives the originating request, so handlers get a fresh
// context rather than the request's.
func (d *Dispatcher) Dispatch(event AccountEvent) {
	d.mu.RLock()
	handlers := make([]Handler, len(d.handlers))
	copy(handlers, d.handlers)
	d.mu.RUnlock()

	if len(handlers) == 0 {
		d.logger.Debug("no handlers registered for account event",
			"event_type", string(event.Type))
		return
	}

	for _, handler := range handlers {
		d.wg.Add(1)
		go func(h Handler) {
			defer d.wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
			defer cancel()

			if err := h.HandleAccountEvent(ctx, event); err != nil {
				d.logger.Error("account event handler failed",
					"error", err,
					"event_type", string(event.Type),
					"email", event.Email)
			}
		}(handler)
	}
}

// Wait blocks until every in-flight handler has finished. Used on shutdown
// and in tests.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
