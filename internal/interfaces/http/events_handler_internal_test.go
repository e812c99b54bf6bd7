package http

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Residentes-api/internal/application/realtime"
	"github.com/jhoicas/Residentes-api/internal/infrastructure/memory"
	"github.com/jhoicas/Residentes-api/pkg/logger"
	"github.com/jhoicas/Residentes-api/pkg/metrics"
)

func TestWriteEvent_FormatoSSE(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	ev := realtime.Event{Type: realtime.EventUpdated, ResidentID: "r1", At: time.Date(2024, 6, 14, 10, 0, 0, 0, time.UTC)}

	require.NoError(t, writeEvent(w, ev))
	assert.Equal(t,
		"event: updated\ndata: {\"type\":\"updated\",\"resident_id\":\"r1\",\"at\":\"2024-06-14T10:00:00Z\"}\n\n",
		buf.String())
}

func TestWriteComment(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)

	require.NoError(t, writeComment(w, "ping"))
	assert.Equal(t, ": ping\n\n", buf.String())
}

// clienteCaido simula una conexión cerrada por el navegador.
type clienteCaido struct{}

func (clienteCaido) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

const subscribersGauge = `
# HELP resident_live_subscribers Suscriptores SSE activos.
# TYPE resident_live_subscribers gauge
resident_live_subscribers 0
`

// openStream suscribe como lo hace stream y devuelve lo que pump necesita.
func openStream(t *testing.T, h *EventsHandler, topic string) (<-chan realtime.Event, func()) {
	t.Helper()
	ctx, cancelCtx := context.WithCancel(context.Background())
	events, unsubscribe, err := h.broker.Subscribe(ctx, topic)
	require.NoError(t, err)
	h.metrics.SubscriberAdded()
	return events, func() {
		unsubscribe()
		cancelCtx()
	}
}

func TestPump_ClienteDesconectadoLiberaSuscripcion(t *testing.T) {
	hub := memory.NewHub()
	reg := prometheus.NewRegistry()
	h := NewEventsHandler(hub, metrics.NewRosterMetrics(reg), logger.Nop(), nil)
	events, release := openStream(t, h, realtime.TopicAll)
	require.Equal(t, 1, hub.Subscribers(realtime.TopicAll))

	finished := make(chan struct{})
	go func() {
		h.pump(bufio.NewWriter(clienteCaido{}), realtime.TopicAll, "u1", events, release)
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("el stream no terminó tras fallar la escritura")
	}
	assert.Equal(t, 0, hub.Subscribers(realtime.TopicAll))
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(subscribersGauge), "resident_live_subscribers"))
}

func TestPump_ApagadoCierraStream(t *testing.T) {
	hub := memory.NewHub()
	reg := prometheus.NewRegistry()
	done := make(chan struct{})
	close(done)
	h := NewEventsHandler(hub, metrics.NewRosterMetrics(reg), logger.Nop(), done)
	topic := realtime.TopicResident("r1")
	events, release := openStream(t, h, topic)

	var buf bytes.Buffer
	h.pump(bufio.NewWriter(&buf), topic, "u1", events, release)

	assert.Equal(t, ": conectado\n\n", buf.String())
	assert.Equal(t, 0, hub.Subscribers(topic))
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(subscribersGauge), "resident_live_subscribers"))
}

func TestPump_CanalCerradoPorBrokerEntregaPendientes(t *testing.T) {
	hub := memory.NewHub()
	h := NewEventsHandler(hub, nil, logger.Nop(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	events, unsubscribe, err := hub.Subscribe(ctx, realtime.TopicAll)
	require.NoError(t, err)

	require.NoError(t, hub.Publish(ctx, realtime.TopicAll, realtime.Event{Type: realtime.EventCreated, ResidentID: "r9"}))
	cancel()
	require.Eventually(t, func() bool { return hub.Subscribers(realtime.TopicAll) == 0 }, time.Second, 10*time.Millisecond)

	var buf bytes.Buffer
	released := false
	h.pump(bufio.NewWriter(&buf), realtime.TopicAll, "u1", events, func() {
		unsubscribe()
		released = true
	})

	assert.True(t, released)
	assert.Contains(t, buf.String(), ": conectado\n\n")
	assert.Contains(t, buf.String(), "event: created\n")
	assert.Contains(t, buf.String(), `"resident_id":"r9"`)
}
