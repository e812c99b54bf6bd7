package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Residentes-api/internal/application/realtime"
)

func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := New(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func receive(t *testing.T, events <-chan realtime.Event) realtime.Event {
	t.Helper()
	select {
	case ev, ok := <-events:
		require.True(t, ok, "el canal se cerró antes de recibir el evento")
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("no llegó el evento")
		return realtime.Event{}
	}
}

func TestBroker_SubscribeRecibeEventosDelTema(t *testing.T) {
	mr, client := setupMiniredis(t)
	broker := client.NewBroker(nil)
	ctx := context.Background()

	events, cancel, err := broker.Subscribe(ctx, realtime.TopicAll)
	require.NoError(t, err)
	defer cancel()
	assert.Equal(t, 1, mr.PubSubNumSub("residentes:events:residents")["residentes:events:residents"])

	at := time.Date(2024, 6, 14, 10, 0, 0, 0, time.UTC)
	require.NoError(t, broker.Publish(ctx, realtime.TopicResident("otro"), realtime.Event{Type: realtime.EventDeleted, ResidentID: "otro"}))
	require.NoError(t, client.raw.Publish(ctx, "residentes:events:residents", "no-es-json").Err())
	require.NoError(t, broker.Publish(ctx, realtime.TopicAll, realtime.Event{Type: realtime.EventCreated, ResidentID: "r1", At: at}))

	got := receive(t, events)
	assert.Equal(t, realtime.EventCreated, got.Type, "el payload inválido y el otro tema se descartan")
	assert.Equal(t, "r1", got.ResidentID)
	assert.True(t, at.Equal(got.At))
}

func TestBroker_CancelCierraCanalYDaDeBaja(t *testing.T) {
	mr, client := setupMiniredis(t)
	broker := client.NewBroker(nil)
	channel := "residentes:events:" + realtime.TopicResident("r1")

	events, cancel, err := broker.Subscribe(context.Background(), realtime.TopicResident("r1"))
	require.NoError(t, err)
	require.Equal(t, 1, mr.PubSubNumSub(channel)[channel])

	cancel()
	cancel()

	select {
	case _, ok := <-events:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("el canal no se cerró tras cancel")
	}
	assert.Eventually(t, func() bool { return mr.PubSubNumSub(channel)[channel] == 0 }, 2*time.Second, 20*time.Millisecond)
}

func TestBroker_ContextoCanceladoCierraCanal(t *testing.T) {
	mr, client := setupMiniredis(t)
	broker := client.NewBroker(nil)
	ctx, cancelCtx := context.WithCancel(context.Background())

	events, cancel, err := broker.Subscribe(ctx, realtime.TopicAll)
	require.NoError(t, err)
	defer cancel()

	cancelCtx()
	select {
	case _, ok := <-events:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("el canal no se cerró al cancelar el contexto")
	}
	assert.Eventually(t, func() bool {
		return mr.PubSubNumSub("residentes:events:residents")["residentes:events:residents"] == 0
	}, 2*time.Second, 20*time.Millisecond)
}

func TestBroker_SubscribeSinConexion(t *testing.T) {
	_, _, err := (&Client{store: newMockCmdable()}).NewBroker(nil).Subscribe(context.Background(), realtime.TopicAll)
	assert.Error(t, err)
}
