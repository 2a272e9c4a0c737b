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

package node

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/splunk/ethmetrics/pkg/ethrpc"
	"github.com/splunk/ethmetrics/pkg/measurement"
	"github.com/splunk/ethmetrics/pkg/output"
	"github.com/splunk/ethmetrics/pkg/version"
)

// Keys emitted by the chain source.
const (
	KeyBlockNumber      = "ethereum.blockNumber"
	KeyPeerCount        = "ethereum.peerCount"
	KeyGasPrice         = "ethereum.gasPrice"
	KeySyncing          = "ethereum.syncing"
	KeySyncCurrentBlock = "ethereum.sync.currentBlock"
	KeySyncHighestBlock = "ethereum.sync.highestBlock"
)

// ChainClient is the part of the JSON-RPC client used by Adapter.
type ChainClient interface {
	ClientVersion(ctx context.Context) (string, error)
	BlockNumber(ctx context.Context) (float64, error)
	PeerCount(ctx context.Context) (float64, error)
	GasPrice(ctx context.Context) (float64, error)
	Syncing(ctx context.Context) (*ethrpc.SyncStatus, error)
}

// Options select which sources run and which keys are kept.
type Options struct {
	// Include and Exclude are wildcard key patterns; see measurement.Set.Filter.
	Include []string
	Exclude []string

	// Txpool enables txpool counts on clients that support them.
	Txpool bool

	// Peers enables one message per connected peer on clients that support it.
	Peers bool
}

// Filter applies the include and exclude patterns to s.
func (o Options) Filter(s measurement.Set) measurement.Set {
	return s.Filter(o.Include, o.Exclude)
}

// Adapter captures the chain statistics every client exposes.
type Adapter struct {
	client      ChainClient
	opts        Options
	fullVersion string
	parsed      version.ClientVersion
}

// NewAdapter creates an adapter for a node that reported fullVersion.
func NewAdapter(client ChainClient, fullVersion string, opts Options) *Adapter {
	a := &Adapter{client: client, opts: opts, fullVersion: fullVersion}
	if cv, err := version.ParseClientVersion(fullVersion); err == nil {
		a.parsed = cv
	}
	return a
}

// Name returns the adapter name.
func (a *Adapter) Name() string {
	return "generic"
}

// FullVersion returns the web3_clientVersion string.
func (a *Adapter) FullVersion() string {
	return a.fullVersion
}

// ClientVersion returns the parsed client version. It is zero when the
// version string could not be parsed.
func (a *Adapter) ClientVersion() version.ClientVersion {
	return a.parsed
}

// Enode is empty for generic nodes.
func (a *Adapter) Enode() string {
	return ""
}

// Options returns the adapter options.
func (a *Adapter) Options() Options {
	return a.opts
}

// Initialize is a no-op for generic nodes.
func (a *Adapter) Initialize(context.Context) error {
	return nil
}

// Info describes the node from its client version.
func (a *Adapter) Info() output.NodeInfo {
	info := output.NodeInfo{
		Client:      a.parsed.Name,
		Version:     a.parsed.Version.String(),
		FullVersion: a.fullVersion,
		Platform:    a.parsed.Platform,
		Runtime:     a.parsed.Runtime,
		Name:        a.parsed.Identity,
	}
	if a.parsed.Release == "" {
		info.Version = ""
	}
	return info
}

// CaptureNodeStats returns the chain source as a single node:metrics message.
// Nothing is returned when every fetch failed or all keys were filtered out.
func (a *Adapter) CaptureNodeStats(ctx context.Context, captureTime int64) ([]output.Message, error) {
	set := CaptureChainStats(ctx, a.client)
	set = a.opts.Filter(set)
	if len(set) == 0 {
		return nil, ctx.Err()
	}
	return []output.Message{output.NewMetrics(captureTime, set.ToMap())}, nil
}

// CaptureChainStats fetches block number, peer count, gas price and sync
// status concurrently. Failed fetches are logged and leave their keys out.
func CaptureChainStats(ctx context.Context, client ChainClient) measurement.Set {
	start := time.Now()

	var mu sync.Mutex
	values := make(map[string]float64, 6)
	record := func(key string, fetch func(context.Context) (float64, error)) func() error {
		return func() error {
			n, err := fetch(ctx)
			if err != nil {
				slog.Warn("failed to fetch chain stat", "key", key, "error", err)
				return fmt.Errorf("%s: %w", key, err)
			}
			mu.Lock()
			values[key] = n
			mu.Unlock()
			return nil
		}
	}

	// plain group: one failed fetch must not cancel the others
	var g errgroup.Group
	g.Go(record(KeyBlockNumber, client.BlockNumber))
	g.Go(record(KeyPeerCount, client.PeerCount))
	g.Go(record(KeyGasPrice, client.GasPrice))
	g.Go(func() error {
		status, err := client.Syncing(ctx)
		if err != nil {
			slog.Warn("failed to fetch sync status", "error", err)
			return fmt.Errorf("%s: %w", KeySyncing, err)
		}
		mu.Lock()
		defer mu.Unlock()
		values[KeySyncing] = 0
		if status.Syncing {
			values[KeySyncing] = 1
			values[KeySyncCurrentBlock] = status.CurrentBlock
			values[KeySyncHighestBlock] = status.HighestBlock
		}
		return nil
	})
	failed := g.Wait()

	ObserveSource(SourceChain, start, failed)

	set := make(measurement.Set, 0, len(values))
	for _, key := range []string{KeyBlockNumber, KeyPeerCount, KeyGasPrice, KeySyncing, KeySyncCurrentBlock, KeySyncHighestBlock} {
		if v, ok := values[key]; ok {
			set.Add(key, v)
		}
	}
	return set
}
