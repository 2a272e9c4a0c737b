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

// Package cli implements the ethmetrics command-line interface.
//
// # Commands
//
// capture - Capture a single report from a node:
//
//	ethmetrics capture [--node-url URL] [--output FILE] [--format json|yaml|table]
//
// Detects the client from web3_clientVersion, collects its statistics and
// prints one report with node:info, node:metrics and geth:peer messages.
//
// run - Capture periodically:
//
//	ethmetrics run --interval 10s [--config ethmetrics.yaml]
//
// Writes one report per interval until interrupted. A node that is not
// reachable at startup is retried every interval. With --config the file is
// watched and valid changes restart the loop.
//
// flatten - Flatten a saved snapshot:
//
//	ethmetrics flatten [--mode metrics|memstats] [--prefix P] [FILE]
//
// Reads a debug_metrics or debug_memStats document from FILE or stdin and
// prints its dotted-key measurements.
//
// version - Print build information.
//
// # Global Flags
//
//	--config, -c     YAML config file (env ETHMETRICS_CONFIG)
//	--node-url, -n   JSON-RPC endpoint (env ETHMETRICS_NODE_URL)
//	--timeout        Timeout of a single JSON-RPC call
//	--log-level      Log level (env ETHMETRICS_LOG_LEVEL, LOG_LEVEL)
//
// Flags override other settings only when given explicitly. ETHMETRICS_*
// environment variables override config file values, which override defaults.
//
// # Exit Codes
//
//	0  Success
//	1  Any error
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/splunk/ethmetrics/pkg/cli.version=1.0.0'"
package cli
