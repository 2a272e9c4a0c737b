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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splunk/ethmetrics/pkg/config"
	"github.com/splunk/ethmetrics/pkg/output"
)

func newFakeNode(t *testing.T, results map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     uint64 `json:"id"`
			Method string `json:"method"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
		if res, ok := results[req.Method]; ok {
			resp["result"] = res
		} else {
			resp["error"] = map[string]any{"code": -32601, "message": "method not found"}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewRunner_GenericNode(t *testing.T) {
	srv := newFakeNode(t, map[string]any{
		"web3_clientVersion": "Nethermind/v1.25.0/linux-x64/dotnet8.0.0",
		"eth_blockNumber":    "0x10",
		"net_peerCount":      "0x3",
		"eth_gasPrice":       "0x3b9aca00",
		"eth_syncing":        false,
	})

	cfg, err := config.Default()
	require.NoError(t, err)
	cfg.Node.URL = srv.URL
	cfg.Node.Headers = map[string]string{"X-Test": "1"}
	cfg.Capture.Interval = 5 * time.Second

	r, err := NewRunner(context.Background(), cfg, "test", nil)
	require.NoError(t, err)
	assert.Equal(t, "generic", r.Adapter.Name())
	assert.Equal(t, 5*time.Second, r.Interval)

	report, err := r.CaptureOnce(context.Background())
	require.NoError(t, err)

	merged := output.MergedMetrics(report.Messages)
	assert.Equal(t, float64(16), merged["ethereum.blockNumber"])
	assert.Equal(t, float64(3), merged["ethereum.peerCount"])
	assert.Equal(t, float64(0), merged["ethereum.syncing"])
}

func TestNewRunner_Unreachable(t *testing.T) {
	srv := newFakeNode(t, nil)
	srv.Close()

	cfg, err := config.Default()
	require.NoError(t, err)
	cfg.Node.URL = srv.URL
	cfg.Node.Timeout = time.Second

	_, err = NewRunner(context.Background(), cfg, "test", nil)
	assert.Error(t, err)
}

func TestAdapterOptions(t *testing.T) {
	opts := AdapterOptions(config.CaptureConfig{
		Include: []string{"ethereum.*"},
		Exclude: []string{"ethereum.gasPrice"},
		Txpool:  true,
	})
	assert.Equal(t, []string{"ethereum.*"}, opts.Include)
	assert.Equal(t, []string{"ethereum.gasPrice"}, opts.Exclude)
	assert.True(t, opts.Txpool)
	assert.False(t, opts.Peers)
}
