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
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/splunk/ethmetrics/pkg/capture"
	"github.com/splunk/ethmetrics/pkg/config"
	"github.com/splunk/ethmetrics/pkg/logging"
	"github.com/splunk/ethmetrics/pkg/server"
)

const (
	name           = "ethmetricsd"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/splunk/ethmetrics/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Routes returns the API handlers keyed by path.
func Routes(h *Handler) map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"/v1/capture": h.HandleCapture,
		"/v1/flatten": h.HandleFlatten,
	}
}

// NewServer builds the daemon's HTTP server from cfg. Non-zero server
// settings in cfg override the environment defaults of pkg/server.
func NewServer(cfg *config.Config) *server.Server {
	h := NewHandler(func(ctx context.Context) (*capture.Runner, error) {
		return capture.NewRunner(ctx, cfg, version, nil)
	})

	scfg := server.NewConfig()
	scfg.Name = name
	scfg.Version = version
	scfg.Handlers = Routes(h)
	if cfg.Server.Address != "" {
		scfg.Address = cfg.Server.Address
	}
	if cfg.Server.Port > 0 {
		scfg.Port = cfg.Server.Port
	}
	if cfg.Server.RateLimit > 0 {
		scfg.RateLimit = rate.Limit(cfg.Server.RateLimit)
	}
	if cfg.Server.RateLimitBurst > 0 {
		scfg.RateLimitBurst = cfg.Server.RateLimitBurst
	}

	return server.New(server.WithConfig(scfg))
}

// Serve loads the configuration at configPath (empty for defaults and
// environment only), starts the API server and blocks until shutdown.
func Serve(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logging.SetDefaultStructuredLoggerWithLevel(name, version, cfg.LogLevel)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"node", cfg.Node.URL,
	)

	if err := NewServer(cfg).Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}
