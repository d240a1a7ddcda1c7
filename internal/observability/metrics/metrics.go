package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for the booking flow.
type BookingMetrics struct {
	bookingsTotal     *prometheus.CounterVec
	bookingLatency    *prometheus.HistogramVec
	sessionsConsumed  prometheus.Counter
	bundlesStarted    prometheus.Counter
	exhaustedRejected prometheus.Counter
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "diyetup",
			Subsystem: "booking",
			Name:      "requests_total",
			Help:      "Total booking requests by outcome",
		}, []string{"outcome"}),
		bookingLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "diyetup",
			Subsystem: "booking",
			Name:      "latency_seconds",
			Help:      "Latency of booking processing",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
		sessionsConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "diyetup",
			Subsystem: "booking",
			Name:      "sessions_consumed_total",
			Help:      "Total package sessions consumed",
		}),
		bundlesStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "diyetup",
			Subsystem: "booking",
			Name:      "bundles_started_total",
			Help:      "Total new package assignments created",
		}),
		exhaustedRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "diyetup",
			Subsystem: "booking",
			Name:      "exhausted_rejections_total",
			Help:      "Total bookings rejected because the package was exhausted",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.bookingsTotal, m.bookingLatency, m.sessionsConsumed, m.bundlesStarted, m.exhaustedRejected)
	return m
}

func (m *BookingMetrics) ObserveBooking(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(outcome).Inc()
	m.bookingLatency.WithLabelValues(outcome).Observe(seconds)
}

func (m *BookingMetrics) ObserveSessionConsumed(newBundle bool) {
	if m == nil {
		return
	}
	m.sessionsConsumed.Inc()
	if newBundle {
		m.bundlesStarted.Inc()
	}
}

func (m *BookingMetrics) ObserveExhaustedRejection() {
	if m == nil {
		return
	}
	m.exhaustedRejected.Inc()
}
