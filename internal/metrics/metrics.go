// Fieldfeed - Farmer Community Feed Ranking and Pagination Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fieldfeed

// Package metrics provides Prometheus instrumentation for the feed engine:
// feed request outcomes, pagination behavior, store query performance, and
// the engagement event pipeline.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Feed engine metrics
	FeedRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_requests_total",
			Help: "Total number of feed requests by effective sort mode and outcome",
		},
		[]string{"mode", "status"},
	)

	FeedRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_request_duration_seconds",
			Help:    "Feed request duration in seconds by effective sort mode",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"mode"},
	)

	FeedPageSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "feed_page_size",
			Help:    "Number of items returned per feed page",
			Buckets: []float64{1, 5, 10, 20, 30, 50},
		},
	)

	// FeedFallbacksTotal counts cold-start fallbacks from the personalized
	// pipeline to the engagement pipeline.
	FeedFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_personalized_fallbacks_total",
			Help: "Total number of cold-start fallbacks to the engagement pipeline",
		},
	)

	CursorDecodeErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_cursor_decode_errors_total",
			Help: "Total number of malformed or mismatched pagination cursors",
		},
	)

	// Content store metrics
	StoreQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	StoreQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation"},
	)

	StoreBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "store_circuit_breaker_open",
			Help: "1 when the content store circuit breaker is open, 0 otherwise",
		},
	)

	// Engagement event pipeline metrics
	EngagementEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engagement_events_total",
			Help: "Total number of engagement events processed by kind and outcome",
		},
		[]string{"kind", "status"},
	)

	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)
)

// RecordFeedRequest records the outcome and duration of one feed request.
func RecordFeedRequest(mode string, err error, start time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	FeedRequestsTotal.WithLabelValues(mode, status).Inc()
	FeedRequestDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())
}

// RecordStoreQuery records the duration and outcome of one store query.
func RecordStoreQuery(operation string, err error, start time.Time) {
	StoreQueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		StoreQueryErrors.WithLabelValues(operation).Inc()
	}
}

// RecordHTTPRequest records one HTTP request for API metrics.
func RecordHTTPRequest(method, endpoint string, statusCode int, start time.Time) {
	HTTPRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())
}
