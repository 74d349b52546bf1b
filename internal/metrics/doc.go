// Cinerec - Movie Recommendations from Viewing History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

/*
Package metrics provides Prometheus metrics collection and export for observability.

All metrics live on Registry rather than the default registerer, together with
the Go runtime and process collectors.

# Available Metrics

Pipeline Metrics:
  - cinerec_training_duration_seconds: time spent fitting the forest (histogram)
  - cinerec_prediction_duration_seconds: time spent scoring the catalog (histogram)
  - cinerec_rows_encoded_total: movies encoded (counter)
    Labels: phase (train, predict)
  - cinerec_rows_dropped_total: movies skipped for a missing field (counter)
    Labels: phase, reason (missing_rating, missing_year, missing_label)
  - cinerec_trees_fitted_total: decision trees fitted (counter)
  - cinerec_recommendations_total: movies recommended (counter)
  - cinerec_runs_total: runs by outcome (counter)
    Labels: status (success, error)
  - cinerec_oob_accuracy: out-of-bag accuracy of the last forest (gauge)

HTTP Metrics (serve command):
  - cinerec_http_requests_total: Labels method, endpoint, status
  - cinerec_http_request_duration_seconds: Labels method, endpoint
  - cinerec_http_requests_in_flight: gauge

# Export

The serve command exposes Handler at /metrics:

	curl http://localhost:3000/metrics

A one-shot CLI run can instead write the registry to a file picked up by
node_exporter's textfile collector:

	cinerec --metrics-file /var/lib/node_exporter/cinerec.prom history.json catalog.json
*/
package metrics
