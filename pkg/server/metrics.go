// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/splunk/ethmetrics/pkg/defaults"
)

// OperationRoot labels requests served by the root handler, including
// unknown paths.
const OperationRoot = "root"

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: defaults.MetricsNamespace,
			Subsystem: defaults.MetricsSubsystemHTTP,
			Name:      "requests_total",
			Help:      "Total number of API requests by operation and status",
		},
		[]string{"operation", "method", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: defaults.MetricsNamespace,
			Subsystem: defaults.MetricsSubsystemHTTP,
			Name:      "request_duration_seconds",
			Help:      "API request latency by operation",
			// captures can take as long as the node does
			Buckets: []float64{0.005, 0.025, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"operation"},
	)

	httpRequestsInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: defaults.MetricsNamespace,
			Subsystem: defaults.MetricsSubsystemHTTP,
			Name:      "requests_in_flight",
			Help:      "API requests currently being processed by operation",
		},
		[]string{"operation"},
	)

	rateLimitRejects = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: defaults.MetricsNamespace,
			Subsystem: defaults.MetricsSubsystemHTTP,
			Name:      "rate_limit_rejects_total",
			Help:      "API requests rejected by the rate limiter by operation",
		},
		[]string{"operation"},
	)

	panicRecoveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: defaults.MetricsNamespace,
			Subsystem: defaults.MetricsSubsystemHTTP,
			Name:      "panic_recoveries_total",
			Help:      "Panics recovered in API handlers by operation",
		},
		[]string{"operation"},
	)
)

// Operation names the API operation served at a route pattern: its last
// path segment, e.g. "capture" for "/v1/capture". Labels come from the
// registered pattern, never from the request path.
func Operation(pattern string) string {
	// drop a method or host qualifier such as "GET /v1/capture"
	if i := strings.LastIndexByte(pattern, ' '); i >= 0 {
		pattern = pattern[i+1:]
	}
	pattern = strings.TrimRight(pattern, "/")
	if i := strings.LastIndexByte(pattern, '/'); i >= 0 {
		pattern = pattern[i+1:]
	}
	if pattern == "" {
		return OperationRoot
	}
	return pattern
}

// metricsMiddleware records request count, latency and concurrency for one
// operation.
func (s *Server) metricsMiddleware(operation string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		inFlight := httpRequestsInFlight.WithLabelValues(operation)
		inFlight.Inc()
		defer inFlight.Dec()

		wrapped := newResponseWriter(w)
		next.ServeHTTP(wrapped, r)

		httpRequestsTotal.WithLabelValues(operation, r.Method, strconv.Itoa(wrapped.Status())).Inc()
		httpRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}
