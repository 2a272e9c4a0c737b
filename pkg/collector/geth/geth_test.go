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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splunk/ethmetrics/pkg/collector/node"
	"github.com/splunk/ethmetrics/pkg/ethrpc"
	"github.com/splunk/ethmetrics/pkg/measurement"
	"github.com/splunk/ethmetrics/pkg/output"
)

const clientVersion = "Geth/v1.9.25-stable-e7872729/linux-amd64/go1.15.6"

var errUnavailable = errors.New("connection refused")

type fakeClient struct {
	nodeInfo    *ethrpc.NodeInfo
	nodeInfoErr error
	metrics     string
	metricsErr  error
	memStats    string
	memStatsErr error
	txpool      *ethrpc.TxpoolContent
	txpoolErr   error
	peers       []json.RawMessage
	peersErr    error
	chainErr    error
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		nodeInfo: &ethrpc.NodeInfo{ID: "abc", Name: "Geth/v1.9.25", Enode: "enode://abc@127.0.0.1:30303", ListenAddr: "[::]:30303"},
		metrics:  `{"chain": {"head": {"block": 10}}, "p2p": {"ingress": "1.5K (0.00/s)"}}`,
		memStats: `{"HeapAlloc": 100, "BySize": [{"Size": 16, "Mallocs": 4, "Frees": 2}]}`,
		txpool: &ethrpc.TxpoolContent{
			Pending: map[string]map[string]json.RawMessage{"0xa": {"1": nil, "2": nil}},
			Queued:  map[string]map[string]json.RawMessage{"0xb": {"5": nil}},
		},
		peers: []json.RawMessage{json.RawMessage(`{"id":"p1"}`), json.RawMessage(`{"id":"p2"}`)},
	}
}

func (f *fakeClient) ClientVersion(context.Context) (string, error) { return clientVersion, nil }

func (f *fakeClient) BlockNumber(context.Context) (float64, error) { return 100, f.chainErr }

func (f *fakeClient) PeerCount(context.Context) (float64, error) { return 2, f.chainErr }

func (f *fakeClient) GasPrice(context.Context) (float64, error) { return 1e9, f.chainErr }

func (f *fakeClient) Syncing(context.Context) (*ethrpc.SyncStatus, error) {
	if f.chainErr != nil {
		return nil, f.chainErr
	}
	return &ethrpc.SyncStatus{}, nil
}

func (f *fakeClient) NodeInfo(context.Context) (*ethrpc.NodeInfo, error) {
	return f.nodeInfo, f.nodeInfoErr
}

func (f *fakeClient) Metrics(_ context.Context, raw bool) (measurement.Value, error) {
	if !raw {
		return measurement.Value{}, errors.New("expected raw metrics")
	}
	return decodeOrErr(f.metrics, f.metricsErr)
}

func (f *fakeClient) MemStats(context.Context) (measurement.Value, error) {
	return decodeOrErr(f.memStats, f.memStatsErr)
}

func (f *fakeClient) TxpoolContent(context.Context) (*ethrpc.TxpoolContent, error) {
	return f.txpool, f.txpoolErr
}

func (f *fakeClient) Peers(context.Context) ([]json.RawMessage, error) {
	return f.peers, f.peersErr
}

func decodeOrErr(payload string, err error) (measurement.Value, error) {
	if err != nil {
		return measurement.Value{}, err
	}
	var v measurement.Value
	if e := json.Unmarshal([]byte(payload), &v); e != nil {
		return measurement.Value{}, e
	}
	return v, nil
}

func allSources() node.Options {
	return node.Options{Txpool: true, Peers: true}
}

func TestAdapter_Lifecycle(t *testing.T) {
	client := newFakeClient()
	a := NewAdapter(client, clientVersion, allSources())

	assert.Equal(t, "geth", a.Name())
	assert.Equal(t, clientVersion, a.FullVersion())
	assert.Empty(t, a.Enode())

	require.NoError(t, a.Initialize(context.Background()))
	assert.Equal(t, "enode://abc@127.0.0.1:30303", a.Enode())

	info := a.Info()
	assert.Equal(t, "Geth", info.Client)
	assert.Equal(t, "1.9.25", info.Version)
	assert.Equal(t, "linux-amd64", info.Platform)
	assert.Equal(t, "go1.15.6", info.Runtime)
	assert.Equal(t, "abc", info.ID)
	assert.Equal(t, "Geth/v1.9.25", info.Name)
	assert.Equal(t, "[::]:30303", info.ListenAddr)
}

func TestAdapter_InitializeFailure(t *testing.T) {
	client := newFakeClient()
	client.nodeInfoErr = errUnavailable
	a := NewAdapter(client, clientVersion, allSources())

	err := a.Initialize(context.Background())
	require.ErrorIs(t, err, errUnavailable)
	assert.Empty(t, a.Enode())
}

func TestAdapter_CaptureNodeStats(t *testing.T) {
	a := NewAdapter(newFakeClient(), clientVersion, allSources())

	msgs, err := a.CaptureNodeStats(context.Background(), 1234)
	require.NoError(t, err)
	require.Len(t, msgs, 5)

	for _, m := range msgs {
		assert.Equal(t, int64(1234), m.Time)
	}

	assert.Equal(t, output.TypeNodeMetrics, msgs[0].Type)
	assert.Equal(t, map[string]float64{
		node.KeyBlockNumber: 100,
		node.KeyPeerCount:   2,
		node.KeyGasPrice:    1e9,
		node.KeySyncing:     0,
	}, msgs[0].Metrics)

	assert.Equal(t, map[string]float64{
		"geth.metrics.chain.head.block":   10,
		"geth.metrics.p2p.ingress":        1500,
		"geth.memStats.heapAlloc":         100,
		"geth.memStats.bySize.16.mallocs": 4,
		"geth.memStats.bySize.16.frees":   2,
	}, msgs[1].Metrics)

	assert.Equal(t, map[string]float64{KeyTxpoolPending: 2, KeyTxpoolQueued: 1}, msgs[2].Metrics)

	assert.Equal(t, output.TypeGethPeer, msgs[3].Type)
	assert.Equal(t, output.TypeGethPeer, msgs[4].Type)
}

func TestAdapter_CaptureNodeStats_SourceIsolation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*fakeClient)
		opts   node.Options
		counts map[output.MessageType]int
	}{
		{
			name:   "txpool failure",
			mutate: func(f *fakeClient) { f.txpoolErr = errUnavailable },
			opts:   allSources(),
			counts: map[output.MessageType]int{output.TypeNodeMetrics: 2, output.TypeGethPeer: 2},
		},
		{
			name:   "peers failure",
			mutate: func(f *fakeClient) { f.peersErr = errUnavailable },
			opts:   allSources(),
			counts: map[output.MessageType]int{output.TypeNodeMetrics: 3},
		},
		{
			name:   "chain failure",
			mutate: func(f *fakeClient) { f.chainErr = errUnavailable },
			opts:   allSources(),
			counts: map[output.MessageType]int{output.TypeNodeMetrics: 2, output.TypeGethPeer: 2},
		},
		{
			name: "metrics and memstats failure",
			mutate: func(f *fakeClient) {
				f.metricsErr = errUnavailable
				f.memStatsErr = errUnavailable
			},
			opts:   allSources(),
			counts: map[output.MessageType]int{output.TypeNodeMetrics: 2, output.TypeGethPeer: 2},
		},
		{
			name:   "optional sources disabled",
			mutate: func(*fakeClient) {},
			opts:   node.Options{},
			counts: map[output.MessageType]int{output.TypeNodeMetrics: 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newFakeClient()
			tt.mutate(client)
			a := NewAdapter(client, clientVersion, tt.opts)

			msgs, err := a.CaptureNodeStats(context.Background(), 1)
			require.NoError(t, err)
			assert.Equal(t, tt.counts, output.MessageCounts(msgs))
		})
	}
}

func TestAdapter_CaptureNodeStats_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewAdapter(newFakeClient(), clientVersion, allSources()).CaptureNodeStats(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCaptureMetrics_PartialFailure(t *testing.T) {
	client := newFakeClient()
	client.metricsErr = errUnavailable

	msgs := CaptureMetrics(context.Background(), client, 7, node.Options{})
	require.Len(t, msgs, 1)
	assert.Equal(t, []string{
		"geth.memStats.bySize.16.frees",
		"geth.memStats.bySize.16.mallocs",
		"geth.memStats.heapAlloc",
	}, output.SortedKeys(msgs[0].Metrics))
}

func TestCaptureMetrics_Filter(t *testing.T) {
	client := newFakeClient()

	msgs := CaptureMetrics(context.Background(), client, 7, node.Options{
		Include: []string{"geth.metrics.*", "geth.memStats.heapAlloc"},
		Exclude: []string{"*.p2p.*"},
	})
	require.Len(t, msgs, 1)
	assert.Equal(t, map[string]float64{
		"geth.metrics.chain.head.block": 10,
		"geth.memStats.heapAlloc":       100,
	}, msgs[0].Metrics)

	assert.Empty(t, CaptureMetrics(context.Background(), client, 7, node.Options{Include: []string{"nothing"}}))
}

func TestCaptureTxpool(t *testing.T) {
	client := newFakeClient()
	msgs := CaptureTxpool(context.Background(), client, 3, node.Options{})
	require.Len(t, msgs, 1)
	assert.Equal(t, map[string]float64{KeyTxpoolPending: 2, KeyTxpoolQueued: 1}, msgs[0].Metrics)

	client.txpoolErr = errUnavailable
	assert.Empty(t, CaptureTxpool(context.Background(), client, 3, node.Options{}))

	client.txpoolErr = nil
	client.txpool = &ethrpc.TxpoolContent{}
	msgs = CaptureTxpool(context.Background(), client, 3, node.Options{})
	require.Len(t, msgs, 1)
	assert.Equal(t, map[string]float64{KeyTxpoolPending: 0, KeyTxpoolQueued: 0}, msgs[0].Metrics)
}

func TestCapturePeers(t *testing.T) {
	client := newFakeClient()
	client.peers = append(client.peers, json.RawMessage(`{"id":`))

	msgs := CapturePeers(context.Background(), client, 9)
	require.Len(t, msgs, 2)
	id, ok := msgs[1].Peer.Lookup("id")
	require.True(t, ok)
	s, _ := id.Text()
	assert.Equal(t, "p2", s)

	client.peersErr = errUnavailable
	assert.Empty(t, CapturePeers(context.Background(), client, 9))
}
