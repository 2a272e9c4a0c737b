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

package capture

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/splunk/ethmetrics/pkg/defaults"
)

var (
	captureDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: defaults.MetricsNamespace,
			Subsystem: defaults.MetricsSubsystemCapture,
			Name:      "duration_seconds",
			Help:      "Time taken to capture all sources of a node",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
	)

	captureTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: defaults.MetricsNamespace,
			Subsystem: defaults.MetricsSubsystemCapture,
			Name:      "total",
			Help:      "Total number of capture attempts",
		},
		[]string{"status"},
	)

	captureMessages = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: defaults.MetricsNamespace,
			Subsystem: defaults.MetricsSubsystemCapture,
			Name:      "messages",
			Help:      "Number of messages in the last capture",
		},
	)

	captureMeasurements = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: defaults.MetricsNamespace,
			Subsystem: defaults.MetricsSubsystemCapture,
			Name:      "measurements",
			Help:      "Number of distinct metric keys in the last capture",
		},
	)

	captureLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: defaults.MetricsNamespace,
			Subsystem: defaults.MetricsSubsystemCapture,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful capture",
		},
	)
)
