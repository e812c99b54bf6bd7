package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestHTTPMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.Observe("GET", "/api/residents", 200, 15*time.Millisecond)
	m.Observe("GET", "/api/residents", 200, 5*time.Millisecond)
	m.Observe("GET", "", 404, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/residents", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "unknown", "404")))
}

func TestMetrics_NilSeguro(t *testing.T) {
	var h *HTTPMetrics
	h.Observe("GET", "/", 200, time.Millisecond)

	r := NewRosterMetrics(nil)
	r.IncWrite("create", "ok")
	r.SubscriberAdded()
	r.SubscriberRemoved()
}

func TestRosterMetrics_Contadores(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewRosterMetrics(reg)

	m.IncWrite("update", "ok")
	m.SubscriberAdded()
	m.SubscriberAdded()
	m.SubscriberRemoved()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.writes.WithLabelValues("update", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.subscribers))
}
