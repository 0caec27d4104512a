// Package metrics exposes Prometheus collectors for the job lifecycle.
package metrics

import (
	"net/http"

	"github.com/analyticore/analysis-service/pkg/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	AnalysesTriggered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "analysis",
			Subsystem: "jobs",
			Name:      "triggered_total",
			Help:      "Total number of analysis runs dispatched",
		},
	)
	JobTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "analysis",
			Subsystem: "jobs",
			Name:      "transitions_total",
			Help:      "Total number of persisted job status transitions",
		},
		[]string{"status"},
	)
	AnalysisDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "analysis",
			Subsystem: "jobs",
			Name:      "run_duration_seconds",
			Help:      "Time from PROCESSING to a terminal status",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		},
	)
	RateLimitRejections = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "analysis",
			Subsystem: "api",
			Name:      "rate_limit_rejections_total",
			Help:      "Total number of requests rejected by rate limiting",
		},
	)
)

func init() {
	prometheus.MustRegister(AnalysesTriggered, JobTransitions, AnalysisDuration, RateLimitRejections)
}

// ObserveTransition counts a persisted move to status.
func ObserveTransition(status models.JobStatus) {
	JobTransitions.WithLabelValues(string(status)).Inc()
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
