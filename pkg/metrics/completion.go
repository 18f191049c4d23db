package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CompletionAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summarizer_completion_attempts_total",
			Help: "Chat completion attempts per model and outcome",
		},
		[]string{"model", "outcome"},
	)

	CompletionAttemptDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "summarizer_completion_attempt_duration_seconds",
			Help:    "Duration of a single chat completion attempt",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 45, 60},
		},
		[]string{"model"},
	)

	CompletionExhausted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "summarizer_completion_exhausted_total",
			Help: "Completion calls that failed on every candidate model",
		},
	)

	ExtractionFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summarizer_extraction_failures_total",
			Help: "Source extraction failures by source kind",
		},
		[]string{"source"},
	)
)

// ObserveAttempt records one candidate attempt.
func ObserveAttempt(model, outcome string, elapsed time.Duration) {
	CompletionAttempts.WithLabelValues(model, outcome).Inc()
	CompletionAttemptDuration.WithLabelValues(model).Observe(elapsed.Seconds())
}
