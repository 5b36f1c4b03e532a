// File: database/events/notifier.go
package events

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Notifier fans change signals out to listeners by topic. Signals carry no
// payload: a listener reloads whatever it watches.
type Notifier interface {
	Publish(ctx context.Context, topic string) error
	// Listen registers a listener. The channel is 1-buffered and coalesces
	// bursts; cancel deregisters it.
	Listen(topic string) (<-chan struct{}, func())
}

// Hub is the in-process Notifier.
type Hub struct {
	mu        sync.Mutex
	listeners map[string]map[string]chan struct{}
}

func NewHub() *Hub {
	return &Hub{listeners: make(map[string]map[string]chan struct{})}
}

func (h *Hub) Publish(_ context.Context, topic string) error {
	h.Signal(topic)
	return nil
}

// Signal wakes every listener of topic without blocking.
func (h *Hub) Signal(topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.listeners[topic] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (h *Hub) Listen(topic string) (<-chan struct{}, func()) {
	id := uuid.NewString()
	ch := make(chan struct{}, 1)

	h.mu.Lock()
	if h.listeners[topic] == nil {
		h.listeners[topic] = make(map[string]chan struct{})
	}
	h.listeners[topic][id] = ch
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.listeners[topic], id)
			if len(h.listeners[topic]) == 0 {
				delete(h.listeners, topic)
			}
		})
	}
}

// Listeners returns the number of registered listeners on topic.
func (h *Hub) Listeners(topic string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.listeners[topic])
}
