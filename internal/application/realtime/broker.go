// Package realtime define el puerto de notificaciones en vivo del padrón.
package realtime

import (
	"context"
	"time"
)

// Tipos de evento publicados tras una escritura exitosa.
const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)

// TopicAll recibe todos los cambios del padrón.
const TopicAll = "residents"

// TopicResident tema de un residente concreto.
func TopicResident(id string) string {
	return TopicAll + ":" + id
}

// Event cambio sobre un residente. No incluye el registro: el cliente vuelve a consultar.
type Event struct {
	Type       string    `json:"type"`
	ResidentID string    `json:"resident_id"`
	At         time.Time `json:"at"`
}

// Broker publica y distribuye eventos. Subscribe devuelve un canal que se cierra
// al llamar cancel o al cancelarse ctx; el llamador debe invocar cancel siempre.
type Broker interface {
	Publish(ctx context.Context, topic string, ev Event) error
	Subscribe(ctx context.Context, topic string) (<-chan Event, func(), error)
}

// PublishChange publica ev en el tema general y en el del residente.
func PublishChange(ctx context.Context, b Broker, ev Event) error {
	if b == nil {
		return nil
	}
	if err := b.Publish(ctx, TopicAll, ev); err != nil {
		return err
	}
	return b.Publish(ctx, TopicResident(ev.ResidentID), ev)
}
