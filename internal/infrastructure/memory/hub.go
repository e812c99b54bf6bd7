// Package memory implementaciones en proceso de los puertos que en producción usan Redis.
// Se usan cuando REDIS_URL no está configurado y en los tests.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Residentes-api/internal/application/realtime"
)

var _ realtime.Broker = (*Hub)(nil)

const subscriberBuffer = 16

// Hub broker de eventos en memoria. Un suscriptor lento pierde eventos en lugar de bloquear al publicador.
type Hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[string]map[int]chan realtime.Event
}

// NewHub crea un hub vacío.
func NewHub() *Hub {
	return &Hub{subs: map[string]map[int]chan realtime.Event{}}
}

// Publish entrega ev a los suscriptores de topic.
func (h *Hub) Publish(_ context.Context, topic string, ev realtime.Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs[topic] {
		select {
		case ch <- ev:
		default:
		}
	}
	return nil
}

// Subscribe registra un suscriptor; cancel (o ctx) lo da de baja y cierra el canal.
func (h *Hub) Subscribe(ctx context.Context, topic string) (<-chan realtime.Event, func(), error) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	ch := make(chan realtime.Event, subscriberBuffer)
	if h.subs[topic] == nil {
		h.subs[topic] = map[int]chan realtime.Event{}
	}
	h.subs[topic][id] = ch
	h.mu.Unlock()

	var once sync.Once
	done := make(chan struct{})
	cancel := func() {
		once.Do(func() {
			close(done)
			h.mu.Lock()
			delete(h.subs[topic], id)
			if len(h.subs[topic]) == 0 {
				delete(h.subs, topic)
			}
			close(ch)
			h.mu.Unlock()
		})
	}
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-done:
		}
	}()
	return ch, cancel, nil
}

// Subscribers número de suscriptores de topic.
func (h *Hub) Subscribers(topic string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[topic])
}
