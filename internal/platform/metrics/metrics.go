package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	VersionsCreated       prometheus.Counter
	PacksGenerated        prometheus.Counter
	StatusEvaluations     prometheus.Counter
	TimelineEvents        *prometheus.CounterVec
	PackGenerationSeconds prometheus.Histogram
	RequestLatency        *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		VersionsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sentra_control_versions_created_total",
			Help: "Total number of control logic versions created",
		}),
		PacksGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sentra_assurance_packs_generated_total",
			Help: "Total number of assurance packs generated",
		}),
		StatusEvaluations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sentra_status_evaluations_total",
			Help: "Total number of control status evaluations served",
		}),
		TimelineEvents: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sentra_timeline_events_total",
			Help: "Total number of timeline events recorded, by event type",
		}, []string{"type"}),
		PackGenerationSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "sentra_pack_generation_duration_seconds",
			Help:    "Time spent generating assurance packs",
			Buckets: prometheus.DefBuckets,
		}),
		RequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sentra_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status code",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "code"}),
	}
}

// IncrementVersionsCreated increments the versions created counter by 1
func (m *Metrics) IncrementVersionsCreated() {
	m.VersionsCreated.Inc()
}

// IncrementPacksGenerated increments the packs generated counter by 1
func (m *Metrics) IncrementPacksGenerated() {
	m.PacksGenerated.Inc()
}

// IncrementStatusEvaluations increments the status evaluations counter by 1
func (m *Metrics) IncrementStatusEvaluations() {
	m.StatusEvaluations.Inc()
}

// IncrementTimelineEvents increments the timeline counter for an event type
func (m *Metrics) IncrementTimelineEvents(eventType string) {
	m.TimelineEvents.WithLabelValues(eventType).Inc()
}

// ObservePackGeneration records one pack generation duration
func (m *Metrics) ObservePackGeneration(seconds float64) {
	m.PackGenerationSeconds.Observe(seconds)
}

// ObserveRequest records one HTTP request duration
func (m *Metrics) ObserveRequest(route, code string, seconds float64) {
	m.RequestLatency.WithLabelValues(route, code).Observe(seconds)
}
