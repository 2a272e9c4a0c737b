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

// Package config loads ethmetrics settings from a YAML file and the
// environment.
//
// Values are resolved in this order, later wins: built-in defaults, the
// config file, ETHMETRICS_* environment variables. Nested keys map to
// environment names by upper-casing and replacing dots and dashes with
// underscores, so node.url becomes ETHMETRICS_NODE_URL.
//
//	node:
//	  url: http://127.0.0.1:8545
//	  timeout: 10s
//	  requestsPerSecond: 20
//	capture:
//	  interval: 15s
//	  txpool: true
//	  peers: true
//	  exclude: ["geth.memStats.bySize.*"]
//	output:
//	  format: json
//
// Watch reloads the file on change and hands each valid revision to a
// callback. An invalid revision is logged and skipped.
package config
