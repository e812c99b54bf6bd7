package http

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/jhoicas/Residentes-api/internal/application/realtime"
	"github.com/jhoicas/Residentes-api/pkg/logger"
	"github.com/jhoicas/Residentes-api/pkg/metrics"
)

const heartbeatInterval = 25 * time.Second

// EventsHandler stream SSE de cambios del padrón; el cliente vuelve a consultar al recibir un evento.
type EventsHandler struct {
	broker  realtime.Broker
	metrics *metrics.RosterMetrics
	log     *logger.Logger
	// done se cierra al apagar el servidor para terminar los streams abiertos.
	done <-chan struct{}
}

// NewEventsHandler construye el handler. done puede ser nil.
func NewEventsHandler(broker realtime.Broker, m *metrics.RosterMetrics, log *logger.Logger, done <-chan struct{}) *EventsHandler {
	return &EventsHandler{broker: broker, metrics: m, log: log.Component("sse"), done: done}
}

// Roster godoc
// @Summary      Cambios del padrón (SSE)
// @Tags         residents
// @Security     Bearer
// @Produce      text/event-stream
// @Success      200
// @Router       /api/residents/events [get]
func (h *EventsHandler) Roster(c *fiber.Ctx) error {
	return h.stream(c, realtime.TopicAll)
}

// Resident godoc
// @Summary      Cambios de un residente (SSE)
// @Tags         residents
// @Security     Bearer
// @Produce      text/event-stream
// @Param        id   path  string  true  "ID del residente"
// @Success      200
// @Router       /api/residents/{id}/events [get]
func (h *EventsHandler) Resident(c *fiber.Ctx) error {
	return h.stream(c, realtime.TopicResident(c.Params("id")))
}

func (h *EventsHandler) stream(c *fiber.Ctx, topic string) error {
	// Suscripción antes de responder: un fallo aquí todavía puede devolver 503.
	ctx, cancelCtx := context.WithCancel(context.Background())
	events, unsubscribe, err := h.broker.Subscribe(ctx, topic)
	if err != nil {
		cancelCtx()
		h.log.Error().Err(err).Str("topic", topic).Msg("suscribir stream")
		return errorJSON(c, fiber.StatusServiceUnavailable, CodeUnavailable, "eventos no disponibles")
	}
	h.metrics.SubscriberAdded()

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	userID := GetUserID(c)
	release := func() {
		unsubscribe()
		cancelCtx()
	}
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		h.pump(w, topic, userID, events, release)
	}))
	return nil
}

// pump escribe eventos y heartbeats en w hasta que el stream termina. Una escritura
// fallida es un cliente desconectado. Al salir siempre llama a release.
func (h *EventsHandler) pump(w *bufio.Writer, topic, userID string, events <-chan realtime.Event, release func()) {
	defer func() {
		release()
		h.metrics.SubscriberRemoved()
		h.log.Debug().Str("topic", topic).Str("user_id", userID).Msg("stream cerrado")
	}()

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	if err := writeComment(w, "conectado"); err != nil {
		return
	}
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := writeEvent(w, ev); err != nil {
				return
			}
		case <-ticker.C:
			if err := writeComment(w, "ping"); err != nil {
				return
			}
		case <-h.done:
			return
		}
	}
}

func writeEvent(w *bufio.Writer, ev realtime.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, data); err != nil {
		return err
	}
	return w.Flush()
}

func writeComment(w *bufio.Writer, text string) error {
	if _, err := fmt.Fprintf(w, ": %s\n\n", text); err != nil {
		return err
	}
	return w.Flush()
}
