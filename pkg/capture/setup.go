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

package capture

import (
	"context"
	"fmt"

	"github.com/splunk/ethmetrics/pkg/collector"
	"github.com/splunk/ethmetrics/pkg/collector/node"
	"github.com/splunk/ethmetrics/pkg/config"
	"github.com/splunk/ethmetrics/pkg/ethrpc"
	"github.com/splunk/ethmetrics/pkg/serializer"
)

// NewClient builds a JSON-RPC client from node settings.
func NewClient(cfg config.NodeConfig, userAgent string) *ethrpc.Client {
	opts := []ethrpc.Option{
		ethrpc.WithUserAgent(userAgent),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, ethrpc.WithTimeout(cfg.Timeout))
	}
	if cfg.RequestsPerSecond > 0 {
		opts = append(opts, ethrpc.WithRequestsPerSecond(cfg.RequestsPerSecond))
	}
	for k, v := range cfg.Headers {
		opts = append(opts, ethrpc.WithHeader(k, v))
	}
	return ethrpc.NewClient(cfg.URL, opts...)
}

// AdapterOptions converts capture settings into adapter options.
func AdapterOptions(cfg config.CaptureConfig) node.Options {
	return node.Options{
		Include: cfg.Include,
		Exclude: cfg.Exclude,
		Txpool:  cfg.Txpool,
		Peers:   cfg.Peers,
	}
}

// NewRunner connects to the configured node, detects its client and returns
// a runner writing to sink. The adapter is initialized on first capture.
func NewRunner(ctx context.Context, cfg *config.Config, version string, sink serializer.Serializer) (*Runner, error) {
	client := NewClient(cfg.Node, "ethmetrics/"+version)

	adapter, err := collector.NewAdapter(ctx, client, AdapterOptions(cfg.Capture))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to node at %s: %w", client.URL(), err)
	}

	return &Runner{
		Adapter:  adapter,
		Sink:     sink,
		Interval: cfg.Capture.Interval,
		Version:  version,
	}, nil
}
