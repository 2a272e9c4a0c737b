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

package collector

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/splunk/ethmetrics/pkg/collector/geth"
	"github.com/splunk/ethmetrics/pkg/collector/node"
	"github.com/splunk/ethmetrics/pkg/output"
	"github.com/splunk/ethmetrics/pkg/version"
)

// MinGethVersion is the oldest geth release known to serve raw debug_metrics.
var MinGethVersion = version.MustParseVersion("1.9")

// Adapter captures statistics from one node.
type Adapter interface {
	// Name identifies the adapter, e.g. "geth".
	Name() string

	// FullVersion is the node's web3_clientVersion string.
	FullVersion() string

	// Enode is the node's enode URL, or "" when unknown.
	Enode() string

	// Info describes the node for node:info messages and report headers.
	Info() output.NodeInfo

	// Initialize fetches static node details. It is called once before capturing.
	Initialize(ctx context.Context) error

	// CaptureNodeStats runs one capture stamped with captureTime (epoch ms).
	CaptureNodeStats(ctx context.Context, captureTime int64) ([]output.Message, error)
}

// Client is the JSON-RPC surface required by all adapters.
type Client interface {
	geth.Client
}

// NewAdapter detects the client implementation and returns its adapter.
// The adapter is not initialized.
func NewAdapter(ctx context.Context, client Client, opts node.Options) (Adapter, error) {
	fullVersion, err := client.ClientVersion(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve client version: %w", err)
	}

	cv, err := version.ParseClientVersion(fullVersion)
	if err != nil {
		slog.Warn("unrecognized client version, using generic adapter", "clientVersion", fullVersion, "error", err)
		return node.NewAdapter(client, fullVersion, opts), nil
	}

	switch strings.ToLower(cv.Name) {
	case geth.Name:
		if !cv.Version.EqualsOrNewer(MinGethVersion) {
			slog.Warn("geth release older than supported minimum",
				"version", cv.Version.String(), "minimum", MinGethVersion.String())
		}
		slog.Debug("using geth adapter", "clientVersion", fullVersion)
		return geth.NewAdapter(client, fullVersion, opts), nil
	default:
		slog.Info("no dedicated adapter for client, using generic adapter", "client", cv.Name)
		return node.NewAdapter(client, fullVersion, opts), nil
	}
}
