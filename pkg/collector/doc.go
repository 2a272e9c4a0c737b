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

// Package collector selects and drives the adapter that captures statistics
// from an Ethereum node.
//
// NewAdapter asks the node for its web3_clientVersion and returns the
// matching Adapter: a geth adapter for go-ethereum nodes, or the generic
// adapter that only reads the standard eth and net namespaces.
//
//	client := ethrpc.NewClient(url)
//	a, err := collector.NewAdapter(ctx, client, node.Options{Txpool: true, Peers: true})
//	if err != nil {
//		return err
//	}
//	if err := a.Initialize(ctx); err != nil {
//		return err
//	}
//	msgs, err := a.CaptureNodeStats(ctx, output.Millis(time.Now()))
//
// Adapters are safe for concurrent use once initialized.
package collector
