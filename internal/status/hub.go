package status

import (
	"context"
	"sync"

	"github.com/vietddude/newscatcher/internal/notify"
)

const subscriberBuffer = 16

// Hub fans notifications out to websocket subscribers. Slow subscribers miss
// notifications instead of blocking the sender.
type Hub struct {
	mu   sync.RWMutex
	subs map[chan notify.Notification]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[chan notify.Notification]struct{})}
}

// Subscribe registers a subscriber. Call the returned func to unsubscribe.
func (h *Hub) Subscribe() (<-chan notify.Notification, func()) {
	ch := make(chan notify.Notification, subscriberBuffer)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
}

// Subscribers returns the number of active subscribers.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Notify implements notify.Notifier.
func (h *Hub) Notify(_ context.Context, n notify.Notification) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subs {
		select {
		case ch <- n:
		default:
		}
	}
}
