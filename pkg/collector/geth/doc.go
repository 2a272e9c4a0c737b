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

// Package geth captures go-ethereum node statistics.
//
// A capture joins four independent sources:
//   - chain: block number, peer count, gas price and sync status
//   - metrics: debug_metrics and debug_memStats flattened into one node:metrics message
//   - txpool: pending and queued transaction counts from txpool_content
//   - peers: one geth:peer message per admin_peers entry
//
// The sources run concurrently. A source that fails is logged and
// contributes no messages; the others are unaffected.
//
//	a := geth.NewAdapter(client, clientVersion, node.Options{Txpool: true, Peers: true})
//	if err := a.Initialize(ctx); err != nil {
//		return err
//	}
//	msgs, err := a.CaptureNodeStats(ctx, output.Millis(time.Now()))
package geth
