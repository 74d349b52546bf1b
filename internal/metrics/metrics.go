// Cinerec - Movie Recommendations from Viewing History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every cinerec metric plus the Go and process collectors.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Phases and drop reasons used as label values.
const (
	PhaseTrain   = "train"
	PhasePredict = "predict"

	ReasonMissingRating = "missing_rating"
	ReasonMissingYear   = "missing_year"
	ReasonMissingLabel  = "missing_label"
)

var (
	// Pipeline Metrics
	TrainingDuration = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cinerec_training_duration_seconds",
			Help:    "Duration of fitting the classifier in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	PredictionDuration = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cinerec_prediction_duration_seconds",
			Help:    "Duration of scoring the catalog in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	RowsEncoded = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinerec_rows_encoded_total",
			Help: "Total number of movies encoded into feature vectors",
		},
		[]string{"phase"}, // "train", "predict"
	)

	RowsDropped = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinerec_rows_dropped_total",
			Help: "Total number of movies dropped because a required field was missing",
		},
		[]string{"phase", "reason"},
	)

	TreesFitted = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "cinerec_trees_fitted_total",
			Help: "Total number of decision trees fitted",
		},
	)

	RecommendationsReturned = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "cinerec_recommendations_total",
			Help: "Total number of movies recommended",
		},
	)

	RunsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinerec_runs_total",
			Help: "Total number of train and recommend runs by outcome",
		},
		[]string{"status"}, // "success", "error"
	)

	OOBAccuracy = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinerec_oob_accuracy",
			Help: "Out-of-bag accuracy of the most recently fitted forest",
		},
	)

	// API Metrics
	APIRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinerec_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinerec_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinerec_http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)
)

// RecordTraining records a completed fit.
func RecordTraining(duration time.Duration, rows, trees int) {
	TrainingDuration.Observe(duration.Seconds())
	RowsEncoded.WithLabelValues(PhaseTrain).Add(float64(rows))
	TreesFitted.Add(float64(trees))
}

// RecordPrediction records a completed catalog scoring pass.
func RecordPrediction(duration time.Duration, rows, recommended int) {
	PredictionDuration.Observe(duration.Seconds())
	RowsEncoded.WithLabelValues(PhasePredict).Add(float64(rows))
	RecommendationsReturned.Add(float64(recommended))
}

// RecordRowDropped counts one movie excluded from a phase.
func RecordRowDropped(phase, reason string) {
	RowsDropped.WithLabelValues(phase, reason).Inc()
}

// RecordRun counts a run by outcome.
func RecordRun(err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	RunsTotal.WithLabelValues(status).Inc()
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// Handler serves Registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}

// WriteTextfile writes Registry to path in the text exposition format,
// atomically, for node_exporter's textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}
