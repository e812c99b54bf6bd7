package metrics

import "github.com/prometheus/client_golang/prometheus"

// RosterMetrics métricas de escritura del padrón y de suscriptores en vivo.
type RosterMetrics struct {
	writes      *prometheus.CounterVec
	subscribers prometheus.Gauge
}

// NewRosterMetrics registra las métricas del padrón en reg.
func NewRosterMetrics(reg prometheus.Registerer) *RosterMetrics {
	if reg == nil {
		return &RosterMetrics{}
	}
	writes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "resident_writes_total",
		Help: "Escrituras sobre el padrón por operación y resultado.",
	}, []string{"op", "result"})
	subscribers := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "resident_live_subscribers",
		Help: "Suscriptores SSE activos.",
	})
	reg.MustRegister(writes, subscribers)
	return &RosterMetrics{writes: writes, subscribers: subscribers}
}

// IncWrite cuenta una escritura (op: create|update|delete; result: ok|error).
func (m *RosterMetrics) IncWrite(op, result string) {
	if m == nil || m.writes == nil {
		return
	}
	m.writes.WithLabelValues(normalizeLabel(op), normalizeLabel(result)).Inc()
}

// SubscriberAdded incrementa el gauge de suscriptores.
func (m *RosterMetrics) SubscriberAdded() {
	if m == nil || m.subscribers == nil {
		return
	}
	m.subscribers.Inc()
}

// SubscriberRemoved decrementa el gauge de suscriptores.
func (m *RosterMetrics) SubscriberRemoved() {
	if m == nil || m.subscribers == nil {
		return
	}
	m.subscribers.Dec()
}
