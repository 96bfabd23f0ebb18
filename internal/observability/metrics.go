package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics records bot activity.
type Metrics interface {
	RecordCommand(command string)
	RecordRejectedInput(kind string)
	RecordPredictionSubmitted()
	RecordPredictionFailed()
	RecordSessionStarted()
	RecordSessionsExpired(n int)
	RecordRateLimited()
	SetActiveSessions(n int)
}

// PrometheusMetrics implements Metrics with Prometheus collectors.
type PrometheusMetrics struct {
	commands         *prometheus.CounterVec
	rejected         *prometheus.CounterVec
	predictions      prometheus.Counter
	predictionErrors prometheus.Counter
	sessionsStarted  prometheus.Counter
	sessionsExpired  prometheus.Counter
	rateLimited      prometheus.Counter
	activeSessions   prometheus.Gauge
}

var _ Metrics = (*PrometheusMetrics)(nil)

// NewPrometheusMetrics registers the bot collectors on reg.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	m := &PrometheusMetrics{
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scoreline",
			Name:      "commands_total",
			Help:      "Chat commands received, by command.",
		}, []string{"command"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scoreline",
			Name:      "rejected_inputs_total",
			Help:      "Conversation inputs rejected by validation, by kind.",
		}, []string{"kind"}),
		predictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "scoreline",
			Name:      "predictions_submitted_total",
			Help:      "Predictions persisted.",
		}),
		predictionErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "scoreline",
			Name:      "prediction_save_failures_total",
			Help:      "Predictions that could not be persisted.",
		}),
		sessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "scoreline",
			Name:      "sessions_started_total",
			Help:      "Prediction sessions started.",
		}),
		sessionsExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "scoreline",
			Name:      "sessions_expired_total",
			Help:      "Abandoned prediction sessions removed by the sweeper.",
		}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "scoreline",
			Name:      "rate_limited_messages_total",
			Help:      "Inbound chat messages dropped by the per-chat limiter.",
		}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "scoreline",
			Name:      "sessions_active",
			Help:      "Prediction sessions currently held by the registry.",
		}),
	}

	reg.MustRegister(
		m.commands, m.rejected, m.predictions, m.predictionErrors,
		m.sessionsStarted, m.sessionsExpired, m.rateLimited, m.activeSessions,
	)
	return m
}

// NewRegistry returns a registry carrying the Go and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func (m *PrometheusMetrics) RecordCommand(command string) {
	m.commands.WithLabelValues(command).Inc()
}

func (m *PrometheusMetrics) RecordRejectedInput(kind string) {
	m.rejected.WithLabelValues(kind).Inc()
}

func (m *PrometheusMetrics) RecordPredictionSubmitted() {
	m.predictions.Inc()
}

func (m *PrometheusMetrics) RecordPredictionFailed() {
	m.predictionErrors.Inc()
}

func (m *PrometheusMetrics) RecordSessionStarted() {
	m.sessionsStarted.Inc()
}

func (m *PrometheusMetrics) RecordSessionsExpired(n int) {
	m.sessionsExpired.Add(float64(n))
}

func (m *PrometheusMetrics) RecordRateLimited() {
	m.rateLimited.Inc()
}

func (m *PrometheusMetrics) SetActiveSessions(n int) {
	m.activeSessions.Set(float64(n))
}

// NoOpMetrics discards all measurements.
type NoOpMetrics struct{}

var _ Metrics = NoOpMetrics{}

func (NoOpMetrics) RecordCommand(string)       {}
func (NoOpMetrics) RecordRejectedInput(string) {}
func (NoOpMetrics) RecordPredictionSubmitted() {}
func (NoOpMetrics) RecordPredictionFailed()    {}
func (NoOpMetrics) RecordSessionStarted()      {}
func (NoOpMetrics) RecordSessionsExpired(int)  {}
func (NoOpMetrics) RecordRateLimited()         {}
func (NoOpMetrics) SetActiveSessions(int)      {}
