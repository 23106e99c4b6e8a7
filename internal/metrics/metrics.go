// Package metrics holds the Prometheus collectors shared by the command
// layer and the HTTP server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var (
	capturesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "camgo_photo_captures_total",
		Help: "Photo capture attempts by outcome",
	}, []string{"outcome"})

	savesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "camgo_photo_saves_total",
		Help: "Photo save attempts by outcome and file extension",
	}, []string{"outcome", "ext"})

	photoBytes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "camgo_photo_bytes",
		Help:    "Size of captured photos in bytes",
		Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
	})

	greetingsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "camgo_greetings_total",
		Help: "Greeting commands served",
	})

	// HTTP
	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "camgo_http_request_duration_seconds",
		Help:    "HTTP request latencies in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	httpRequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "camgo_http_requests_in_flight",
		Help: "Current number of HTTP requests being served",
	})
)

func outcome(ok bool) string {
	if ok {
		return OutcomeSuccess
	}
	return OutcomeFailure
}

// RecordCapture counts a capture and, on success, observes its size.
func RecordCapture(ok bool, size int) {
	capturesTotal.WithLabelValues(outcome(ok)).Inc()
	if ok {
		photoBytes.Observe(float64(size))
	}
}

// RecordSave counts a save attempt for the given extension.
func RecordSave(ok bool, ext string) {
	savesTotal.WithLabelValues(outcome(ok), ext).Inc()
}

// RecordGreeting counts a greet command.
func RecordGreeting() {
	greetingsTotal.Inc()
}

// ObserveHTTP records one finished HTTP request.
func ObserveHTTP(method, path, status string, seconds float64) {
	httpRequestDuration.WithLabelValues(method, path, status).Observe(seconds)
}

// HTTPInFlight returns the in-flight gauge for middleware use.
func HTTPInFlight() prometheus.Gauge {
	return httpRequestsInFlight
}
