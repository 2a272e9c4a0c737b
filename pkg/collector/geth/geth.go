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

package geth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/splunk/ethmetrics/pkg/collector/node"
	"github.com/splunk/ethmetrics/pkg/defaults"
	"github.com/splunk/ethmetrics/pkg/ethrpc"
	"github.com/splunk/ethmetrics/pkg/flatten"
	"github.com/splunk/ethmetrics/pkg/measurement"
	"github.com/splunk/ethmetrics/pkg/output"
)

// Name is the adapter name and the client name geth reports, lower-cased.
const Name = "geth"

// Keys emitted by the txpool source.
const (
	KeyTxpoolPending = "geth.txpool.pending"
	KeyTxpoolQueued  = "geth.txpool.queued"
)

// Client is the part of the JSON-RPC client used by Adapter.
type Client interface {
	node.ChainClient
	NodeInfo(ctx context.Context) (*ethrpc.NodeInfo, error)
	Metrics(ctx context.Context, raw bool) (measurement.Value, error)
	MemStats(ctx context.Context) (measurement.Value, error)
	TxpoolContent(ctx context.Context) (*ethrpc.TxpoolContent, error)
	Peers(ctx context.Context) ([]json.RawMessage, error)
}

// Adapter captures geth specific sources on top of the generic chain stats.
type Adapter struct {
	*node.Adapter

	client Client

	mu       sync.RWMutex
	nodeInfo *ethrpc.NodeInfo
}

// NewAdapter creates an adapter for a geth node that reported fullVersion.
func NewAdapter(client Client, fullVersion string, opts node.Options) *Adapter {
	return &Adapter{
		Adapter: node.NewAdapter(client, fullVersion, opts),
		client:  client,
	}
}

// Name returns "geth".
func (a *Adapter) Name() string {
	return Name
}

// Initialize retrieves admin_nodeInfo. It must succeed before Enode and Info
// report node details.
func (a *Adapter) Initialize(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaults.InitializeTimeout)
		defer cancel()
	}

	slog.Debug("retrieving node info from geth node")
	info, err := a.client.NodeInfo(ctx)
	if err != nil {
		return fmt.Errorf("failed to retrieve geth node info: %w", err)
	}
	slog.Debug("retrieved node info", "id", info.ID, "name", info.Name, "enode", info.Enode)

	a.mu.Lock()
	a.nodeInfo = info
	a.mu.Unlock()
	return nil
}

// Enode returns the node's enode URL, or "" before a successful Initialize.
func (a *Adapter) Enode() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.nodeInfo == nil {
		return ""
	}
	return a.nodeInfo.Enode
}

// Info adds node info details to the generic description.
func (a *Adapter) Info() output.NodeInfo {
	info := a.Adapter.Info()
	if info.Client == "" {
		info.Client = "Geth"
	}

	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.nodeInfo != nil {
		info.ID = a.nodeInfo.ID
		info.Enode = a.nodeInfo.Enode
		info.ListenAddr = a.nodeInfo.ListenAddr
		if info.Name == "" {
			info.Name = a.nodeInfo.Name
		}
	}
	return info
}

// CaptureNodeStats runs all enabled sources concurrently and returns their
// messages in source order: chain, metrics, txpool, peers. Sources never fail
// the capture; each one logs its own errors and contributes what it got.
func (a *Adapter) CaptureNodeStats(ctx context.Context, captureTime int64) ([]output.Message, error) {
	opts := a.Options()

	var results [4][]output.Message
	var wg sync.WaitGroup

	wg.Go(func() {
		msgs, err := a.Adapter.CaptureNodeStats(ctx, captureTime)
		if err != nil {
			slog.Warn("generic node stats unavailable", "error", err)
		}
		results[0] = msgs
	})
	wg.Go(func() {
		results[1] = CaptureMetrics(ctx, a.client, captureTime, opts)
	})
	if opts.Txpool {
		wg.Go(func() {
			results[2] = CaptureTxpool(ctx, a.client, captureTime, opts)
		})
	}
	if opts.Peers {
		wg.Go(func() {
			results[3] = CapturePeers(ctx, a.client, captureTime)
		})
	}
	wg.Wait()

	var msgs []output.Message
	for _, r := range results {
		msgs = append(msgs, r...)
	}
	return msgs, ctx.Err()
}

// CaptureMetrics fetches debug_metrics (raw) and debug_memStats concurrently
// and merges both flattened sets into one node:metrics message. When one
// fetch fails the other is still reported. Nothing is returned when both
// fail or no key survives the filter.
func CaptureMetrics(ctx context.Context, client Client, captureTime int64, opts node.Options) []output.Message {
	var metrics, memStats measurement.Set
	var metricsOK, memStatsOK bool

	var wg sync.WaitGroup
	wg.Go(func() {
		start := time.Now()
		v, err := client.Metrics(ctx, true)
		node.ObserveSource(node.SourceMetrics, start, err)
		if err != nil {
			slog.Error("failed to retrieve metrics from geth node", "error", err)
			return
		}
		metrics, metricsOK = flatten.GethMetrics(v), true
	})
	wg.Go(func() {
		start := time.Now()
		v, err := client.MemStats(ctx)
		node.ObserveSource(node.SourceMemStats, start, err)
		if err != nil {
			slog.Error("failed to retrieve memstats from geth node", "error", err)
			return
		}
		memStats, memStatsOK = flatten.GethMemStats(v), true
	})
	wg.Wait()

	if !metricsOK && !memStatsOK {
		return nil
	}
	set := opts.Filter(metrics.Concat(memStats))
	if len(set) == 0 {
		return nil
	}
	return []output.Message{output.NewMetrics(captureTime, set.ToMap())}
}

// CaptureTxpool counts pending and queued transactions. Failures are logged
// and yield no messages.
func CaptureTxpool(ctx context.Context, client Client, captureTime int64, opts node.Options) []output.Message {
	start := time.Now()
	content, err := client.TxpoolContent(ctx)
	node.ObserveSource(node.SourceTxpool, start, err)
	if err != nil {
		slog.Error("failed to retrieve txpool data from geth node", "error", err)
		return nil
	}

	pending, queued := content.Counts()
	var set measurement.Set
	set.Add(KeyTxpoolPending, float64(pending))
	set.Add(KeyTxpoolQueued, float64(queued))
	set = opts.Filter(set)
	if len(set) == 0 {
		return nil
	}
	return []output.Message{output.NewMetrics(captureTime, set.ToMap())}
}

// CapturePeers emits one geth:peer message per connected peer. Failures are
// logged and yield no messages; a malformed peer entry is skipped.
func CapturePeers(ctx context.Context, client Client, captureTime int64) []output.Message {
	start := time.Now()
	peers, err := client.Peers(ctx)
	node.ObserveSource(node.SourcePeers, start, err)
	if err != nil {
		slog.Error("failed to retrieve peers from geth node", "error", err)
		return nil
	}

	msgs := make([]output.Message, 0, len(peers))
	for i, raw := range peers {
		msg, err := output.NewPeer(captureTime, raw)
		if err != nil {
			slog.Warn("skipping malformed peer", "index", i, "error", err)
			continue
		}
		msgs = append(msgs, msg)
	}
	return msgs
}
