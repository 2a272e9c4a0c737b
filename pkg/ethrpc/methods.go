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

package ethrpc

import (
	"bytes"
	"context"
	"encoding/json"

	apperrors "github.com/splunk/ethmetrics/pkg/errors"
	"github.com/splunk/ethmetrics/pkg/measurement"
)

// Method names used by the collector.
const (
	MethodNodeInfo      = "admin_nodeInfo"
	MethodPeers         = "admin_peers"
	MethodMetrics       = "debug_metrics"
	MethodMemStats      = "debug_memStats"
	MethodBlockNumber   = "eth_blockNumber"
	MethodGasPrice      = "eth_gasPrice"
	MethodSyncing       = "eth_syncing"
	MethodPeerCount     = "net_peerCount"
	MethodTxpoolContent = "txpool_content"
	MethodClientVersion = "web3_clientVersion"
)

// NodeInfo is the subset of admin_nodeInfo the collector reports.
type NodeInfo struct {
	ID         string          `json:"id" yaml:"id"`
	Name       string          `json:"name" yaml:"name"`
	Enode      string          `json:"enode" yaml:"enode"`
	ENR        string          `json:"enr,omitempty" yaml:"enr,omitempty"`
	IP         string          `json:"ip,omitempty" yaml:"ip,omitempty"`
	ListenAddr string          `json:"listenAddr,omitempty" yaml:"listenAddr,omitempty"`
	Ports      NodePorts       `json:"ports" yaml:"ports"`
	Protocols  json.RawMessage `json:"protocols,omitempty" yaml:"-"`
}

// NodePorts holds the node's p2p ports.
type NodePorts struct {
	Discovery int `json:"discovery" yaml:"discovery"`
	Listener  int `json:"listener" yaml:"listener"`
}

// TxpoolContent is the txpool_content result keyed by sender then nonce.
type TxpoolContent struct {
	Pending map[string]map[string]json.RawMessage `json:"pending"`
	Queued  map[string]map[string]json.RawMessage `json:"queued"`
}

// Counts returns the number of pending and queued transactions.
func (t *TxpoolContent) Counts() (pending, queued int) {
	if t == nil {
		return 0, 0
	}
	for _, txs := range t.Pending {
		pending += len(txs)
	}
	for _, txs := range t.Queued {
		queued += len(txs)
	}
	return pending, queued
}

// SyncStatus is the eth_syncing result. Syncing is false when the node
// reported false, in which case the block fields are zero.
type SyncStatus struct {
	Syncing       bool
	StartingBlock float64
	CurrentBlock  float64
	HighestBlock  float64
}

// NodeInfo calls admin_nodeInfo.
func (c *Client) NodeInfo(ctx context.Context) (*NodeInfo, error) {
	var info NodeInfo
	if err := c.Call(ctx, &info, MethodNodeInfo); err != nil {
		return nil, err
	}
	return &info, nil
}

// ClientVersion calls web3_clientVersion.
func (c *Client) ClientVersion(ctx context.Context) (string, error) {
	var v string
	if err := c.Call(ctx, &v, MethodClientVersion); err != nil {
		return "", err
	}
	return v, nil
}

// Metrics calls debug_metrics. With raw set the node returns plain values
// instead of rate-annotated strings where it can.
func (c *Client) Metrics(ctx context.Context, raw bool) (measurement.Value, error) {
	var v measurement.Value
	if err := c.Call(ctx, &v, MethodMetrics, raw); err != nil {
		return measurement.Value{}, err
	}
	return v, nil
}

// MemStats calls debug_memStats.
func (c *Client) MemStats(ctx context.Context) (measurement.Value, error) {
	var v measurement.Value
	if err := c.Call(ctx, &v, MethodMemStats); err != nil {
		return measurement.Value{}, err
	}
	return v, nil
}

// TxpoolContent calls txpool_content.
func (c *Client) TxpoolContent(ctx context.Context) (*TxpoolContent, error) {
	var content TxpoolContent
	if err := c.Call(ctx, &content, MethodTxpoolContent); err != nil {
		return nil, err
	}
	return &content, nil
}

// Peers calls admin_peers and returns each peer as its raw JSON object.
func (c *Client) Peers(ctx context.Context) ([]json.RawMessage, error) {
	var peers []json.RawMessage
	if err := c.Call(ctx, &peers, MethodPeers); err != nil {
		return nil, err
	}
	return peers, nil
}

// BlockNumber calls eth_blockNumber.
func (c *Client) BlockNumber(ctx context.Context) (float64, error) {
	return c.quantity(ctx, MethodBlockNumber)
}

// PeerCount calls net_peerCount.
func (c *Client) PeerCount(ctx context.Context) (float64, error) {
	return c.quantity(ctx, MethodPeerCount)
}

// GasPrice calls eth_gasPrice.
func (c *Client) GasPrice(ctx context.Context) (float64, error) {
	return c.quantity(ctx, MethodGasPrice)
}

// Syncing calls eth_syncing.
func (c *Client) Syncing(ctx context.Context) (*SyncStatus, error) {
	var raw json.RawMessage
	if err := c.Call(ctx, &raw, MethodSyncing); err != nil {
		return nil, err
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("false")) {
		return &SyncStatus{}, nil
	}

	var progress struct {
		StartingBlock string `json:"startingBlock"`
		CurrentBlock  string `json:"currentBlock"`
		HighestBlock  string `json:"highestBlock"`
	}
	if err := json.Unmarshal(raw, &progress); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeDecode, "failed to decode eth_syncing result", err)
	}

	status := &SyncStatus{Syncing: true}
	fields := []struct {
		name string
		hex  string
		dst  *float64
	}{
		{"startingBlock", progress.StartingBlock, &status.StartingBlock},
		{"currentBlock", progress.CurrentBlock, &status.CurrentBlock},
		{"highestBlock", progress.HighestBlock, &status.HighestBlock},
	}
	for _, f := range fields {
		if f.hex == "" {
			continue
		}
		n, err := ParseQuantity(f.hex)
		if err != nil {
			return nil, apperrors.WrapWithContext(apperrors.ErrCodeDecode,
				"invalid eth_syncing quantity", err, map[string]any{"field": f.name})
		}
		*f.dst = n
	}
	return status, nil
}

func (c *Client) quantity(ctx context.Context, method string) (float64, error) {
	var hex string
	if err := c.Call(ctx, &hex, method); err != nil {
		return 0, err
	}
	n, err := ParseQuantity(hex)
	if err != nil {
		return 0, apperrors.WrapWithContext(apperrors.ErrCodeDecode,
			"invalid quantity", err, map[string]any{"method": method, "value": hex})
	}
	return n, nil
}
