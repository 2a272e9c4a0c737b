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

package defaults

import "time"

// JSON-RPC client timeouts for requests to the node.
const (
	// RPCTimeout is the default total timeout for a single JSON-RPC call.
	// Callers should respect parent context deadlines when shorter.
	RPCTimeout = 10 * time.Second

	// RPCDialTimeout is the timeout for establishing connections to the node.
	RPCDialTimeout = 5 * time.Second

	// RPCResponseHeaderTimeout is the timeout for reading response headers.
	RPCResponseHeaderTimeout = 8 * time.Second

	// RPCIdleConnTimeout is the timeout for idle connections in the pool.
	RPCIdleConnTimeout = 90 * time.Second

	// RPCKeepAlive is the keep-alive duration for connections.
	RPCKeepAlive = 30 * time.Second

	// RPCMaxResponseBytes caps the size of a decoded response body.
	RPCMaxResponseBytes = 64 << 20
)

// Capture timeouts and intervals.
const (
	// CaptureTimeout bounds one full capture across all sources.
	// Should be longer than RPCTimeout so a single slow source can fail on its own.
	CaptureTimeout = 30 * time.Second

	// CaptureInterval is the default period of the run loop.
	CaptureInterval = 15 * time.Second

	// MinCaptureInterval is the shortest accepted run loop period.
	MinCaptureInterval = 1 * time.Second

	// InitializeTimeout bounds node info retrieval at startup.
	InitializeTimeout = 15 * time.Second
)

// Handler timeouts for HTTP request processing.
const (
	// CaptureHandlerTimeout is the timeout for capture requests.
	CaptureHandlerTimeout = 45 * time.Second

	// FlattenHandlerTimeout is the timeout for flatten requests.
	FlattenHandlerTimeout = 10 * time.Second

	// FlattenMaxBodyBytes caps the snapshot size accepted by the flatten endpoint.
	FlattenMaxBodyBytes = 8 << 20
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 60 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)
