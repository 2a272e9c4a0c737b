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

package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/splunk/ethmetrics/pkg/capture"
	"github.com/splunk/ethmetrics/pkg/defaults"
	apperrors "github.com/splunk/ethmetrics/pkg/errors"
	"github.com/splunk/ethmetrics/pkg/flatten"
	"github.com/splunk/ethmetrics/pkg/measurement"
	"github.com/splunk/ethmetrics/pkg/serializer"
	"github.com/splunk/ethmetrics/pkg/server"
)

// RunnerFactory connects to the node and returns a capture runner.
type RunnerFactory func(ctx context.Context) (*capture.Runner, error)

// Handler serves the capture and flatten endpoints.
type Handler struct {
	newRunner RunnerFactory

	mu     sync.Mutex
	runner *capture.Runner
}

// NewHandler returns a handler that creates its runner on the first capture
// request, so the daemon can start before the node is reachable.
func NewHandler(newRunner RunnerFactory) *Handler {
	return &Handler{newRunner: newRunner}
}

// FlattenResponse is the body returned by the flatten endpoint.
type FlattenResponse struct {
	Mode         flatten.Mode    `json:"mode"`
	Prefix       string          `json:"prefix"`
	Measurements measurement.Set `json:"measurements"`
}

func (h *Handler) runnerFor(ctx context.Context) (*capture.Runner, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.runner != nil {
		return h.runner, nil
	}
	r, err := h.newRunner(ctx)
	if err != nil {
		return nil, err
	}
	h.runner = r
	return r, nil
}

// HandleCapture runs one capture and returns the report.
func (h *Handler) HandleCapture(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		server.WriteError(w, r, http.StatusMethodNotAllowed, apperrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{"method": r.Method})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaults.CaptureHandlerTimeout)
	defer cancel()

	runner, err := h.runnerFor(ctx)
	if err != nil {
		server.WriteError(w, r, http.StatusServiceUnavailable, apperrors.ErrCodeUnavailable,
			"Node unavailable", true, map[string]any{"error": err.Error()})
		return
	}

	report, err := runner.CaptureOnce(ctx)
	if err != nil {
		if errors.Is(err, capture.ErrNoMessages) || errors.Is(err, context.DeadlineExceeded) {
			server.WriteError(w, r, http.StatusServiceUnavailable, apperrors.ErrCodeUnavailable,
				"Capture returned no data", true, map[string]any{"error": err.Error()})
			return
		}
		server.WriteErrorFromErr(w, r, err, "Capture failed", nil)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	serializer.RespondJSON(w, http.StatusOK, report)
}

// HandleFlatten flattens a snapshot posted as JSON or YAML. The mode and
// prefix query parameters select the formatter and key namespace.
func (h *Handler) HandleFlatten(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		server.WriteError(w, r, http.StatusMethodNotAllowed, apperrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{"method": r.Method})
		return
	}
	defer r.Body.Close()

	q := r.URL.Query()
	mode, err := flatten.ParseMode(q.Get("mode"))
	if err != nil {
		server.WriteError(w, r, http.StatusBadRequest, apperrors.ErrCodeInvalidRequest,
			"Invalid mode", false, map[string]any{
				"error":   err.Error(),
				"allowed": flatten.SupportedModes(),
			})
		return
	}
	prefix := q.Get("prefix")
	if !q.Has("prefix") {
		prefix = mode.DefaultPrefix()
	}

	body := http.MaxBytesReader(w, r.Body, defaults.FlattenMaxBodyBytes)
	v, err := decodeSnapshot(body, r.Header.Get("Content-Type"))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			server.WriteError(w, r, http.StatusRequestEntityTooLarge, apperrors.ErrCodeInvalidRequest,
				"Snapshot too large", false, map[string]any{"limit": tooLarge.Limit})
			return
		}
		server.WriteError(w, r, http.StatusBadRequest, apperrors.ErrCodeInvalidRequest,
			"Invalid snapshot", false, map[string]any{"error": err.Error()})
		return
	}

	set := mode.Apply(v, prefix)
	slog.Debug("flattened snapshot", "mode", mode, "prefix", prefix, "measurements", len(set))

	serializer.RespondJSON(w, http.StatusOK, FlattenResponse{
		Mode:         mode,
		Prefix:       prefix,
		Measurements: set,
	})
}

func decodeSnapshot(r io.Reader, contentType string) (measurement.Value, error) {
	if strings.Contains(contentType, "yaml") {
		var v measurement.Value
		if err := yaml.NewDecoder(r).Decode(&v); err != nil {
			return measurement.Value{}, fmt.Errorf("invalid YAML: %w", err)
		}
		return v, nil
	}
	v, err := measurement.DecodeJSON(r)
	if err != nil {
		return measurement.Value{}, fmt.Errorf("invalid JSON: %w", err)
	}
	return v, nil
}
