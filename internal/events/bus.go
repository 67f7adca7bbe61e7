package events

import (
	"context"
	"log/slog"
	"sync"

	"github.com/codearena/auth-api/internal/domain"
)

// Handler consumes a UserRegistered event. Handlers run off the request path;
// an error is logged, never propagated back to the publisher.
type Handler func(ctx context.Context, ev domain.UserRegistered) error

// Bus is an in-process asynchronous dispatcher. Publish enqueues onto a
// buffered channel drained by a single worker, so the publishing use case
// returns without waiting for subscribers. Close drains remaining events.
type Bus struct {
	handlers  []Handler
	ch        chan domain.UserRegistered
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

func NewBus(buffer int) *Bus {
	if buffer <= 0 {
		buffer = 16
	}
	b := &Bus{
		ch:   make(chan domain.UserRegistered, buffer),
		done: make(chan struct{}),
	}
	b.wg.Add(1)
	go b.run()
	return b
}

// Subscribe registers a handler. Must be called before the first Publish;
// the handler list is not protected against concurrent mutation.
func (b *Bus) Subscribe(h Handler) {
	b.handlers = append(b.handlers, h)
}

func (b *Bus) run() {
	defer b.wg.Done()
	for {
		select {
		case ev := <-b.ch:
			b.dispatch(ev)
		case <-b.done:
			for {
				select {
				case ev := <-b.ch:
					b.dispatch(ev)
				default:
					return
				}
			}
		}
	}
}

func (b *Bus) dispatch(ev domain.UserRegistered) {
	for _, h := range b.handlers {
		if err := h(context.Background(), ev); err != nil {
			slog.Warn("event handler failed", "user_id", ev.UserID, "err", err)
		}
	}
}

// Publish enqueues the event. If the bus is shutting down or the caller's
// context is cancelled the event is dropped; registration already succeeded
// at this point and does not depend on delivery.
func (b *Bus) Publish(ctx context.Context, ev domain.UserRegistered) {
	select {
	case b.ch <- ev:
	case <-ctx.Done():
	case <-b.done:
	}
}

// Close stops the worker after draining buffered events.
func (b *Bus) Close() {
	b.closeOnce.Do(func() {
		close(b.done)
		b.wg.Wait()
	})
}
