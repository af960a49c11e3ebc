package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "quill"

// Generation outcomes used as the "outcome" label.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

//nolint:gochecknoglobals // promauto collectors register once per process
var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"method", "path"},
	)

	generationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "generation",
			Name:      "total",
			Help:      "Total number of upstream generation calls",
		},
		[]string{"backend", "outcome"},
	)

	generationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "generation",
			Name:      "duration_seconds",
			Help:      "Upstream generation latency in seconds",
			Buckets:   []float64{.25, .5, 1, 2.5, 5, 10, 20, 30, 60, 90},
		},
		[]string{"backend"},
	)

	generationTokens = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "generation",
			Name:      "tokens_total",
			Help:      "Tokens reported by the provider",
		},
		[]string{"backend", "type"}, // type: prompt/candidates
	)
)

// RecordHTTPRequest records a served HTTP request.
func RecordHTTPRequest(method, path string, status int, elapsed time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// RecordGeneration records one upstream generation call.
func RecordGeneration(backend, outcome string, elapsed time.Duration) {
	generationTotal.WithLabelValues(backend, outcome).Inc()
	generationDuration.WithLabelValues(backend).Observe(elapsed.Seconds())
}

// RecordTokens records provider-reported token usage.
func RecordTokens(backend string, promptTokens, candidateTokens int) {
	if promptTokens > 0 {
		generationTokens.WithLabelValues(backend, "prompt").Add(float64(promptTokens))
	}
	if candidateTokens > 0 {
		generationTokens.WithLabelValues(backend, "candidates").Add(float64(candidateTokens))
	}
}
