package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestAssistantMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewAssistantMetrics(reg)

	m.ObserveIntent("booking")
	m.ObserveIntent("booking")
	m.ObserveIntent("greeting")
	m.ObserveCache("trains", true)
	m.ObserveCache("trains", false)
	m.ObserveBooking("confirmed")
	m.ObserveTurnLatency(0.02)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.intentsTotal.WithLabelValues("booking")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.intentsTotal.WithLabelValues("greeting")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.cacheTotal.WithLabelValues("trains", "hit")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.cacheTotal.WithLabelValues("trains", "miss")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.bookingsTotal.WithLabelValues("confirmed")))
}

func TestAssistantMetricsNilSafe(t *testing.T) {
	var m *AssistantMetrics
	assert.NotPanics(t, func() {
		m.ObserveIntent("unknown")
		m.ObserveCache("notices", true)
		m.ObserveBooking("failed")
		m.ObserveTurnLatency(0.1)
	})
}
