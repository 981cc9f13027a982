// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metrics owns the Prometheus collectors exported on /metrics.

Collectors:

  - HTTP: request totals and latency by route pattern.
  - Search: debounced live queries by outcome (applied, superseded, failed).
  - Relations: favorite/watchlist toggles by list and resulting state.
  - Uploads: poster uploads by outcome.
*/
package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "playbill"

// # Outcomes

const (
	OutcomeApplied    = "applied"
	OutcomeSuperseded = "superseded"
	OutcomeFailed     = "failed"
	OutcomeRejected   = "rejected"
	OutcomeStored     = "stored"
)

var (
	// Registry holds the application collectors; the default registry is not used.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "route"},
	)

	searchQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "live_queries_total",
			Help:      "Debounced live search queries by outcome.",
		},
		[]string{"outcome"},
	)

	relationToggles = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "social",
			Name:      "toggles_total",
			Help:      "Favorite and watchlist toggles by list and resulting state.",
		},
		[]string{"list", "active"},
	)

	posterUploads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "media",
			Name:      "poster_uploads_total",
			Help:      "Poster uploads by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		searchQueries,
		relationToggles,
		posterUploads,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered collectors.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Instrument records totals and latency for every request.
//
// Routes are labelled by chi pattern (/api/v1/plays/{id}) so ids never become labels.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		recorder := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(recorder, request)

		route := "unmatched"
		if routeContext := chi.RouteContext(request.Context()); routeContext != nil {
			if pattern := routeContext.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		httpRequests.WithLabelValues(request.Method, route, strconv.Itoa(recorder.status)).Inc()
		httpDuration.WithLabelValues(request.Method, route).Observe(time.Since(start).Seconds())
	})
}

// RecordSearch counts one debounced live query.
func RecordSearch(outcome string) {
	searchQueries.WithLabelValues(outcome).Inc()
}

// RecordToggle counts one favorite/watchlist toggle.
func RecordToggle(list string, active bool) {
	relationToggles.WithLabelValues(list, strconv.FormatBool(active)).Inc()
}

// RecordUpload counts one poster upload attempt.
func RecordUpload(outcome string) {
	posterUploads.WithLabelValues(outcome).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (recorder *statusRecorder) WriteHeader(code int) {
	recorder.status = code
	recorder.ResponseWriter.WriteHeader(code)
}

func (recorder *statusRecorder) Unwrap() http.ResponseWriter {
	return recorder.ResponseWriter
}

func (recorder *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := recorder.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("metrics: %T does not support hijacking", recorder.ResponseWriter)
	}
	recorder.status = http.StatusSwitchingProtocols
	return hijacker.Hijack()
}
