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

// Package ethrpc is a small JSON-RPC 2.0 client for Ethereum nodes over HTTP.
//
// The client covers the handful of namespaces the metrics collector needs
// (admin, debug, eth, net, txpool, web3) and reports failures as structured
// errors so callers can tell an unreachable node from a node that rejected
// a method:
//
//	c := ethrpc.NewClient("http://127.0.0.1:8545",
//		ethrpc.WithTimeout(5*time.Second),
//		ethrpc.WithRequestsPerSecond(20),
//	)
//	raw, err := c.Metrics(ctx, true)
//
// Quantities returned by the eth and net namespaces are hex encoded and can be
// converted with ParseQuantity.
package ethrpc
