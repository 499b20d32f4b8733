package metrics

import "github.com/prometheus/client_golang/prometheus"

// AssistantMetrics exposes counters/histograms for the assistant core.
type AssistantMetrics struct {
	intentsTotal  *prometheus.CounterVec
	cacheTotal    *prometheus.CounterVec
	bookingsTotal *prometheus.CounterVec
	turnLatency   prometheus.Histogram
}

func NewAssistantMetrics(reg prometheus.Registerer) *AssistantMetrics {
	m := &AssistantMetrics{
		intentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "transit",
			Subsystem: "assistant",
			Name:      "intents_total",
			Help:      "Total classified intents",
		}, []string{"intent"}),
		cacheTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "transit",
			Subsystem: "assistant",
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by collection and result",
		}, []string{"collection", "result"}),
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "transit",
			Subsystem: "assistant",
			Name:      "bookings_total",
			Help:      "Dialogue booking outcomes",
		}, []string{"outcome"}),
		turnLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "transit",
			Subsystem: "assistant",
			Name:      "turn_latency_seconds",
			Help:      "Latency of a single conversation turn",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.intentsTotal, m.cacheTotal, m.bookingsTotal, m.turnLatency)
	return m
}

func (m *AssistantMetrics) ObserveIntent(intent string) {
	if m == nil {
		return
	}
	m.intentsTotal.WithLabelValues(intent).Inc()
}

func (m *AssistantMetrics) ObserveCache(collection string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheTotal.WithLabelValues(collection, result).Inc()
}

func (m *AssistantMetrics) ObserveBooking(outcome string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(outcome).Inc()
}

func (m *AssistantMetrics) ObserveTurnLatency(seconds float64) {
	if m == nil {
		return
	}
	m.turnLatency.Observe(seconds)
}
