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

// Package api wires the ethmetrics HTTP endpoints onto pkg/server.
//
// # Endpoints
//
// Application endpoints (with rate limiting):
//   - GET /v1/capture  - Capture the configured node and return a report
//   - POST /v1/flatten - Flatten a posted snapshot
//
// System endpoints (no rate limiting):
//   - GET /health  - Health check (liveness)
//   - GET /ready   - Readiness check
//   - GET /metrics - Prometheus metrics
//
// # Capture
//
// The node connection is established on the first capture request, so the
// daemon starts even when the node is not up yet. The first successful
// report begins with a node:info message.
//
//	curl http://localhost:8080/v1/capture
//
// # Flatten
//
// The body is a JSON document, or YAML when Content-Type contains "yaml".
// Query parameters:
//   - mode: metrics (default) or memstats
//   - prefix: key namespace; defaults to geth.metrics or geth.memStats.
//
// Example:
//
//	curl -X POST "http://localhost:8080/v1/flatten?prefix=x" \
//	  -H "Content-Type: application/json" \
//	  -d '{"counter": "1.2K (0.00/s)", "uptime": "1h0m0s"}'
//
//	{"mode":"metrics","prefix":"x","measurements":[
//	  {"key":"x.counter","value":1200},{"key":"x.uptime","value":3600000}]}
//
// # Configuration
//
// Settings come from pkg/config (file and ETHMETRICS_* variables) and the
// pkg/server environment (PORT, RATE_LIMIT, RATE_LIMIT_BURST).
//
// Version information is set at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/splunk/ethmetrics/pkg/api.version=1.0.0'"
package api
