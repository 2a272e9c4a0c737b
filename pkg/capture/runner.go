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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/splunk/ethmetrics/pkg/collector"
	"github.com/splunk/ethmetrics/pkg/defaults"
	"github.com/splunk/ethmetrics/pkg/measurement"
	"github.com/splunk/ethmetrics/pkg/output"
	"github.com/splunk/ethmetrics/pkg/serializer"
)

// ErrNoMessages is returned when a capture produced nothing at all.
var ErrNoMessages = errors.New("capture produced no messages")

// Runner captures node statistics and writes reports to a sink.
type Runner struct {
	// Adapter captures from the node. Required.
	Adapter collector.Adapter

	// Sink receives each report from Run. Defaults to JSON on stdout.
	Sink serializer.Serializer

	// Interval between captures in Run. Defaults to defaults.CaptureInterval.
	Interval time.Duration

	// Timeout bounds a single capture. Defaults to defaults.CaptureTimeout.
	Timeout time.Duration

	// Version is stamped into report headers.
	Version string

	// Now overrides the clock in tests.
	Now func() time.Time

	mu          sync.Mutex
	initialized bool
	infoSent    bool
	last        measurement.Set
}

// Initialized reports whether the adapter has been initialized.
func (r *Runner) Initialized() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.initialized
}

func (r *Runner) ensureInitialized(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.initialized {
		return nil
	}
	if err := r.Adapter.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize %s adapter: %w", r.Adapter.Name(), err)
	}
	r.initialized = true
	r.infoSent = false
	slog.Info("adapter initialized", "adapter", r.Adapter.Name(), "clientVersion", r.Adapter.FullVersion(), "enode", r.Adapter.Enode())
	return nil
}

// CaptureOnce initializes the adapter if needed and runs a single capture.
func (r *Runner) CaptureOnce(ctx context.Context) (*output.Report, error) {
	if r.Adapter == nil {
		return nil, errors.New("runner has no adapter")
	}
	if err := r.ensureInitialized(ctx); err != nil {
		captureTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = defaults.CaptureTimeout
	}
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		captureDuration.Observe(time.Since(start).Seconds())
	}()

	captureTime := output.Millis(r.now())
	msgs, err := r.Adapter.CaptureNodeStats(cctx, captureTime)
	if err != nil && len(msgs) == 0 {
		captureTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("capture failed: %w", err)
	}
	if len(msgs) == 0 {
		captureTotal.WithLabelValues("error").Inc()
		return nil, ErrNoMessages
	}
	if err != nil {
		slog.Warn("capture incomplete", "error", err, "messages", len(msgs))
	}

	info := r.Adapter.Info()
	r.mu.Lock()
	if !r.infoSent {
		msgs = append([]output.Message{output.NewInfo(captureTime, info)}, msgs...)
		r.infoSent = true
	}
	next := measurement.FromMap(output.MergedMetrics(msgs))
	changed := measurement.Compare(r.last, next)
	r.last = next
	r.mu.Unlock()

	captureTotal.WithLabelValues("success").Inc()
	captureMessages.Set(float64(len(msgs)))
	captureMeasurements.Set(float64(len(next)))
	captureLastSuccess.Set(float64(time.Now().Unix()))

	slog.Debug("capture complete",
		"messages", len(msgs),
		"measurements", len(next),
		"changed", len(changed),
		"duration", time.Since(start).String())

	return output.NewReport(r.Version, &info, msgs), nil
}

// Run captures immediately and then every Interval, writing each report to
// Sink, until ctx is canceled. Capture and sink failures are logged and the
// loop continues. Run returns nil on cancellation.
func (r *Runner) Run(ctx context.Context) error {
	if r.Adapter == nil {
		return errors.New("runner has no adapter")
	}
	interval := r.Interval
	if interval <= 0 {
		interval = defaults.CaptureInterval
	}
	if interval < defaults.MinCaptureInterval {
		return fmt.Errorf("interval %s is below minimum %s", interval, defaults.MinCaptureInterval)
	}
	if r.Sink == nil {
		r.Sink = serializer.NewStdoutWriter(serializer.FormatJSON)
	}

	slog.Info("starting capture loop", "adapter", r.Adapter.Name(), "interval", interval.String())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		r.tick(ctx)

		select {
		case <-ctx.Done():
			slog.Info("capture loop stopped")
			return nil
		case <-ticker.C:
		}
	}
}

func (r *Runner) tick(ctx context.Context) {
	report, err := r.CaptureOnce(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		slog.Error("capture failed", "error", err)
		return
	}
	if err := r.Sink.Serialize(ctx, report); err != nil {
		slog.Error("failed to write report", "error", err, "captureId", report.CaptureID)
	}
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}
