package events

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

type Event interface {
	Name() string
}

type Publisher interface {
	Publish(ctx context.Context, evt Event) []error
}

type Handler func(ctx context.Context, evt Event) error

// Bus dispatches events synchronously to the handlers subscribed to their name.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	log      *zap.SugaredLogger
}

func New(log *zap.SugaredLogger) *Bus {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Bus{handlers: make(map[string][]Handler), log: log}
}

func (b *Bus) Subscribe(eventName string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], h)
}

// Publish calls every handler of evt in subscription order and returns their
// errors. A panicking handler does not stop the others.
func (b *Bus) Publish(ctx context.Context, evt Event) []error {
	b.mu.RLock()
	hs := append([]Handler(nil), b.handlers[evt.Name()]...)
	b.mu.RUnlock()

	var errs []error
	for i, h := range hs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					b.log.Errorw("event handler panic", "event", evt.Name(), "handler_index", i, "panic", r)
					errs = append(errs, fmt.Errorf("event handler %d panicked: %v", i, r))
				}
			}()
			if err := h(ctx, evt); err != nil {
				b.log.Warnw("event handler error", "event", evt.Name(), "handler_index", i, "error", err.Error())
				errs = append(errs, err)
			}
		}()
	}
	return errs
}
