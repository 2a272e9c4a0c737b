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

package node

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/splunk/ethmetrics/pkg/defaults"
)

// Source names used as metric labels and in logs.
const (
	SourceChain    = "chain"
	SourceMetrics  = "metrics"
	SourceMemStats = "memstats"
	SourceTxpool   = "txpool"
	SourcePeers    = "peers"
)

var (
	sourceDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: defaults.MetricsNamespace,
			Subsystem: defaults.MetricsSubsystemCapture,
			Name:      "source_duration_seconds",
			Help:      "Time taken by a single capture source",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"source"},
	)

	sourceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: defaults.MetricsNamespace,
			Subsystem: defaults.MetricsSubsystemCapture,
			Name:      "source_failures_total",
			Help:      "Total number of failed capture source fetches",
		},
		[]string{"source"},
	)
)

// ObserveSource records the duration of a source fetch started at start and
// counts it as failed when err is non-nil.
func ObserveSource(source string, start time.Time, err error) {
	sourceDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
	if err != nil {
		sourceFailures.WithLabelValues(source).Inc()
	}
}
