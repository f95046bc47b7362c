package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	upstreamCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "careercraft",
			Subsystem: "analysis_api",
			Name:      "calls_total",
			Help:      "Calls made to the remote analysis service.",
		},
		[]string{"operation"},
	)

	upstreamFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "careercraft",
			Subsystem: "analysis_api",
			Name:      "failures_total",
			Help:      "Failed calls to the remote analysis service.",
		},
		[]string{"operation"},
	)

	upstreamInProgress = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "careercraft",
			Subsystem: "analysis_api",
			Name:      "calls_in_progress",
			Help:      "Calls to the remote analysis service awaiting a response.",
		},
		[]string{"operation"},
	)

	upstreamDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "careercraft",
			Subsystem: "analysis_api",
			Name:      "call_duration_seconds",
			Help:      "Latency of calls to the remote analysis service.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"operation"},
	)

	meterAnimations = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "careercraft",
			Subsystem: "meter",
			Name:      "animations_active",
			Help:      "Score meter animations currently running.",
		},
	)
)

// ObserveUpstream wraps one call to the analysis service.
//
//	done := metrics.ObserveUpstream("analyze")
//	defer func() { done(err) }()
func ObserveUpstream(operation string) func(err error) {
	start := time.Now()
	upstreamInProgress.WithLabelValues(operation).Inc()

	return func(err error) {
		upstreamInProgress.WithLabelValues(operation).Dec()
		upstreamCalls.WithLabelValues(operation).Inc()
		upstreamDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
		if err != nil {
			upstreamFailures.WithLabelValues(operation).Inc()
		}
	}
}

// MeterStarted and MeterStopped track running meter animations.
func MeterStarted() { meterAnimations.Inc() }
func MeterStopped() { meterAnimations.Dec() }
