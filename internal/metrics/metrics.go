// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "aspectrank"

var (
	// Run Metrics
	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Total number of pipeline runs",
		},
		[]string{"mode", "strategy", "outcome"}, // mode: "batch", "content"; outcome: "success", "error"
	)

	RunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of pipeline runs in seconds",
			Buckets:   []float64{.1, .5, 1, 5, 15, 30, 60, 120, 300, 600, 1800},
		},
		[]string{"mode"},
	)

	RunLastSuccess = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_last_success_timestamp_seconds",
			Help:      "Unix timestamp of the last successful run",
		},
		[]string{"mode"},
	)

	// Input Metrics
	InputRecordsLoaded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "input_records_loaded_total",
			Help:      "Total number of input records decoded and kept",
		},
		[]string{"input"}, // "reviews", "metadata", "likes"
	)

	InputRecordsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "input_records_dropped_total",
			Help:      "Total number of input records dropped",
		},
		[]string{"input", "reason"}, // reason: "malformed", "incomplete"
	)

	InputRecordsRecovered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "input_records_recovered_total",
			Help:      "Total number of records decoded only after trimming surrounding noise",
		},
		[]string{"input"},
	)

	// Ranking Metrics
	RecommendationsEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendations_emitted_total",
			Help:      "Total number of recommendation entries written",
		},
		[]string{"mode", "strategy"},
	)

	UsersRanked = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "batch_users",
			Help:      "Number of users in the last batch result",
		},
	)

	FallbackTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallback_total",
			Help:      "Total number of batch runs that substituted the popularity ranker",
		},
		[]string{"reason"}, // "infer_only", "no_trainer", "train_failed"
	)

	TrainingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "training_duration_seconds",
			Help:      "Duration of latent-factor model training in seconds",
			Buckets:   []float64{.1, .5, 1, 5, 15, 30, 60, 300, 900},
		},
		[]string{"model"},
	)

	ContentResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "content_results_total",
			Help:      "Total number of content ranking requests by outcome",
		},
		[]string{"outcome"}, // "ok", "user not found", "no aspect data"
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_requests_total",
			Help:      "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_consecutive_failures",
			Help:      "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state_transitions_total",
			Help:      "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Scheduler Metrics
	ScheduledRunsSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scheduled_runs_skipped_total",
			Help:      "Total number of scheduled runs skipped because the previous run was still active",
		},
	)
)

// RecordRun records one pipeline run. strategy may be empty when the run
// failed before a ranker was chosen.
func RecordRun(mode, strategy string, duration time.Duration, err error) {
	if strategy == "" {
		strategy = "none"
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	RunsTotal.WithLabelValues(mode, strategy, outcome).Inc()
	RunDuration.WithLabelValues(mode).Observe(duration.Seconds())
	if err == nil {
		RunLastSuccess.WithLabelValues(mode).Set(float64(time.Now().Unix()))
	}
}

// RecordInput records the outcome of decoding one input.
func RecordInput(input string, loaded, recovered, malformed, incomplete int) {
	InputRecordsLoaded.WithLabelValues(input).Add(float64(loaded))
	if recovered > 0 {
		InputRecordsRecovered.WithLabelValues(input).Add(float64(recovered))
	}
	if malformed > 0 {
		InputRecordsDropped.WithLabelValues(input, "malformed").Add(float64(malformed))
	}
	if incomplete > 0 {
		InputRecordsDropped.WithLabelValues(input, "incomplete").Add(float64(incomplete))
	}
}

// RecordBatchResult records the size of a batch result and its fallback
// reason, if any.
func RecordBatchResult(strategy, fallbackReason string, users, recommendations int) {
	UsersRanked.Set(float64(users))
	RecommendationsEmitted.WithLabelValues("batch", strategy).Add(float64(recommendations))
	if fallbackReason != "" {
		FallbackTotal.WithLabelValues(fallbackReason).Inc()
	}
}

// RecordTraining records one training attempt.
func RecordTraining(model string, duration time.Duration) {
	TrainingDuration.WithLabelValues(model).Observe(duration.Seconds())
}

// RecordContentResult records one content ranking request. An empty reason
// means recommendations were produced.
func RecordContentResult(reason string, recommendations int) {
	outcome := reason
	if outcome == "" {
		outcome = "ok"
	}
	ContentResults.WithLabelValues(outcome).Inc()
	RecommendationsEmitted.WithLabelValues("content", "content").Add(float64(recommendations))
}

// WriteTextfile writes every registered metric to path in the Prometheus
// text format, for the node_exporter textfile collector. The write is
// atomic.
func WriteTextfile(path string) error {
	return WriteTextfileFrom(prometheus.DefaultGatherer, path)
}

// WriteTextfileFrom writes the metrics of g to path.
func WriteTextfileFrom(g prometheus.Gatherer, path string) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
