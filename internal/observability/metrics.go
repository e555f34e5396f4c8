package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce       sync.Once
	httpRequestsTotal  *prometheus.CounterVec
	httpLatencySeconds *prometheus.HistogramVec
	predictionsTotal   *prometheus.CounterVec
	alertsCreatedTotal prometheus.Counter
	chatRequestsTotal  *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used by the service.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dropfixer_http_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dropfixer_http_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0},
		}, []string{"method", "route"})

		predictionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dropfixer_predictions_total",
			Help: "Total number of risk predictions served, by risk level.",
		}, []string{"risk_level"})

		alertsCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dropfixer_alerts_created_total",
			Help: "Total number of risk alerts created.",
		})

		chatRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dropfixer_chat_requests_total",
			Help: "Total number of chat requests, by answering source.",
		}, []string{"source"})

		prometheus.MustRegister(httpRequestsTotal, httpLatencySeconds, predictionsTotal, alertsCreatedTotal, chatRequestsTotal)
	})
}

// HTTPRequests exposes the request counter.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the latency histogram.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// Predictions exposes the per-level prediction counter.
func Predictions() *prometheus.CounterVec {
	RegisterMetrics()
	return predictionsTotal
}

// AlertsCreated exposes the alert creation counter.
func AlertsCreated() prometheus.Counter {
	RegisterMetrics()
	return alertsCreatedTotal
}

// ChatRequests exposes the chat counter labelled by answering source.
func ChatRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return chatRequestsTotal
}
