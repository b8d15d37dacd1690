// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

/*
Package metrics provides Prometheus metrics for ranking runs.

The process is a batch job, so nothing is served over HTTP. Instead, when
metrics.textfile_path is set, the registry is written after every batch run
in the Prometheus text format for the node_exporter textfile collector:

	node_exporter --collector.textfile.directory=/var/lib/node_exporter

# Available Metrics

Run Metrics:
  - aspectrank_runs_total: Pipeline runs (counter)
    Labels: mode, strategy, outcome
  - aspectrank_run_duration_seconds: Run latency (histogram)
    Labels: mode
  - aspectrank_run_last_success_timestamp_seconds (gauge)
    Labels: mode

Input Metrics:
  - aspectrank_input_records_loaded_total (counter)
    Labels: input
  - aspectrank_input_records_dropped_total (counter)
    Labels: input, reason (malformed, incomplete)
  - aspectrank_input_records_recovered_total (counter)
    Labels: input

Ranking Metrics:
  - aspectrank_recommendations_emitted_total (counter)
    Labels: mode, strategy
  - aspectrank_batch_users: Users in the last batch result (gauge)
  - aspectrank_fallback_total: Popularity substitutions (counter)
    Labels: reason (infer_only, no_trainer, train_failed)
  - aspectrank_training_duration_seconds (histogram)
    Labels: model
  - aspectrank_content_results_total (counter)
    Labels: outcome

Circuit Breaker Metrics:
  - aspectrank_circuit_breaker_state: 0=closed, 1=half-open, 2=open (gauge)
  - aspectrank_circuit_breaker_requests_total (counter)
    Labels: name, result (success, failure, rejected)
  - aspectrank_circuit_breaker_consecutive_failures (gauge)
  - aspectrank_circuit_breaker_state_transitions_total (counter)
    Labels: name, from_state, to_state

Scheduler Metrics:
  - aspectrank_scheduled_runs_skipped_total (counter)

# Example Queries

Fallback rate over a week:

	sum(increase(aspectrank_fallback_total[7d]))
	  / sum(increase(aspectrank_runs_total{mode="batch"}[7d]))

Stale output alert:

	time() - aspectrank_run_last_success_timestamp_seconds{mode="batch"} > 2 * 86400

# Thread Safety

All collectors are safe for concurrent use.
*/
package metrics
