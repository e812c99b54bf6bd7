package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/jhoicas/Residentes-api/internal/application/realtime"
	"github.com/jhoicas/Residentes-api/pkg/logger"
)

var _ realtime.Broker = (*Broker)(nil)

// Broker eventos del padrón sobre Redis pub/sub; varias instancias de la API comparten los cambios.
type Broker struct {
	client *Client
	log    *logger.Logger
}

// NewBroker broker sobre c.
func (c *Client) NewBroker(log *logger.Logger) *Broker {
	if log == nil {
		log = logger.Nop()
	}
	return &Broker{client: c, log: log.Component("redis_broker")}
}

// Publish serializa ev en JSON y lo publica en el canal del tema.
func (b *Broker) Publish(ctx context.Context, topic string, ev realtime.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := b.client.store.Publish(ctx, buildKey("events", topic), payload).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// Subscribe se suscribe al canal del tema. El canal devuelto se cierra con cancel o ctx.
func (b *Broker) Subscribe(ctx context.Context, topic string) (<-chan realtime.Event, func(), error) {
	if b.client.raw == nil {
		return nil, nil, errors.New("redis client not initialized")
	}
	ps := b.client.raw.Subscribe(ctx, buildKey("events", topic))
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, nil, fmt.Errorf("subscribe %s: %w", topic, err)
	}

	out := make(chan realtime.Event, 16)
	done := make(chan struct{})
	var once sync.Once
	cancel := func() { once.Do(func() { close(done) }) }

	go func() {
		defer close(out)
		defer ps.Close()
		msgs := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var ev realtime.Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					b.log.Warn().Err(err).Str("topic", topic).Msg("evento inválido descartado")
					continue
				}
				select {
				case out <- ev:
				default:
				}
			}
		}
	}()
	return out, cancel, nil
}
