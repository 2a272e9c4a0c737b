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

// Package server provides the HTTP server used by the ethmetrics daemon.
//
// The server is a thin layer over net/http with:
//
//   - Rate limiting using token bucket algorithm (golang.org/x/time/rate)
//   - Request ID tracking through the X-Request-Id header
//   - Panic recovery and a per-request timeout
//   - Prometheus metrics on /metrics, labeled by API operation
//   - Health and readiness endpoints
//   - Graceful shutdown on SIGINT and SIGTERM
//
// # Usage
//
//	s := server.New(
//	    server.WithName("ethmetricsd"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/v1/capture": h.HandleCapture,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// # Configuration
//
// NewConfig reads these environment variables:
//
//	PORT                      listen port (default 8080)
//	RATE_LIMIT                requests per second (default 100)
//	RATE_LIMIT_BURST          burst size (default 200)
//	SHUTDOWN_TIMEOUT_SECONDS  graceful shutdown timeout (default 30)
//
// # System Endpoints
//
// GET /health always returns 200 with {"status": "healthy"}.
//
// GET /ready returns 200 once the listener is up and 503 before that and
// during shutdown.
//
// GET /metrics serves the Prometheus registry, including the capture metrics
// registered by other packages.
//
// # Errors
//
// All errors share one JSON structure:
//
//	{
//	  "code": "SERVICE_UNAVAILABLE",
//	  "message": "node unavailable",
//	  "details": {"error": "connection refused"},
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2025-12-22T12:00:00Z",
//	  "retryable": true
//	}
//
// WriteErrorFromErr maps pkg/errors codes to HTTP statuses.
package server
