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
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/splunk/ethmetrics/pkg/errors"
	"github.com/splunk/ethmetrics/pkg/measurement"
)

type recordedCall struct {
	Method string
	Params []json.RawMessage
	Header http.Header
}

// fakeNode answers JSON-RPC calls from a method table. Values of type *Error
// are returned as error objects, everything else as the result.
type fakeNode struct {
	mu      sync.Mutex
	results map[string]any
	calls   []recordedCall
}

func newFakeNode(t *testing.T, results map[string]any) (*fakeNode, *httptest.Server) {
	t.Helper()
	n := &fakeNode{results: results}
	srv := httptest.NewServer(http.HandlerFunc(n.serve))
	t.Cleanup(srv.Close)
	return n, srv
}

func (n *fakeNode) serve(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID     json.RawMessage   `json:"id"`
		Method string            `json:"method"`
		Params []json.RawMessage `json:"params"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	n.mu.Lock()
	n.calls = append(n.calls, recordedCall{Method: req.Method, Params: req.Params, Header: r.Header.Clone()})
	result, ok := n.results[req.Method]
	n.mu.Unlock()

	resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
	switch v := result.(type) {
	case *Error:
		resp["error"] = v
	default:
		if !ok {
			resp["error"] = &Error{Code: -32601, Message: "the method " + req.Method + " does not exist/is not available"}
		} else {
			resp["result"] = v
		}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (n *fakeNode) lastCall() recordedCall {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls[len(n.calls)-1]
}

func TestClient_Call(t *testing.T) {
	node, srv := newFakeNode(t, map[string]any{
		MethodClientVersion: "Geth/v1.9.25-stable-e7872729/linux-amd64/go1.15.6",
	})
	c := NewClient(srv.URL, WithHeader("Authorization", "Bearer abc"))

	var v string
	require.NoError(t, c.Call(context.Background(), &v, MethodClientVersion))
	assert.Equal(t, "Geth/v1.9.25-stable-e7872729/linux-amd64/go1.15.6", v)

	call := node.lastCall()
	assert.Equal(t, MethodClientVersion, call.Method)
	assert.Empty(t, call.Params)
	assert.Equal(t, "Bearer abc", call.Header.Get("Authorization"))
	assert.Equal(t, DefaultUserAgent, call.Header.Get("User-Agent"))
	assert.Equal(t, "application/json", call.Header.Get("Content-Type"))
}

func TestClient_CallNilOut(t *testing.T) {
	_, srv := newFakeNode(t, map[string]any{"x_ping": true})
	require.NoError(t, NewClient(srv.URL).Call(context.Background(), nil, "x_ping"))
}

func TestClient_CallErrors(t *testing.T) {
	t.Run("rpc error object", func(t *testing.T) {
		_, srv := newFakeNode(t, map[string]any{})
		err := NewClient(srv.URL).Call(context.Background(), nil, MethodTxpoolContent)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeRPC, apperrors.CodeOf(err))

		var rpcErr *Error
		require.ErrorAs(t, err, &rpcErr)
		assert.Equal(t, -32601, rpcErr.Code)
	})

	t.Run("http status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		err := NewClient(srv.URL).Call(context.Background(), nil, MethodBlockNumber)
		assert.Equal(t, apperrors.ErrCodeUnavailable, apperrors.CodeOf(err))
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("<html>"))
		}))
		defer srv.Close()

		err := NewClient(srv.URL).Call(context.Background(), nil, MethodBlockNumber)
		assert.Equal(t, apperrors.ErrCodeDecode, apperrors.CodeOf(err))
	})

	t.Run("missing result", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1}`))
		}))
		defer srv.Close()

		var out string
		err := NewClient(srv.URL).Call(context.Background(), &out, MethodBlockNumber)
		assert.Equal(t, apperrors.ErrCodeDecode, apperrors.CodeOf(err))
	})

	t.Run("result type mismatch", func(t *testing.T) {
		_, srv := newFakeNode(t, map[string]any{MethodBlockNumber: 12})
		var out string
		err := NewClient(srv.URL).Call(context.Background(), &out, MethodBlockNumber)
		assert.Equal(t, apperrors.ErrCodeDecode, apperrors.CodeOf(err))
	})

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		err := NewClient(url).Call(context.Background(), nil, MethodBlockNumber)
		assert.Equal(t, apperrors.ErrCodeUnavailable, apperrors.CodeOf(err))
	})

	t.Run("timeout", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()
		defer close(release)

		err := NewClient(srv.URL, WithTimeout(50*time.Millisecond)).Call(context.Background(), nil, MethodBlockNumber)
		assert.Equal(t, apperrors.ErrCodeTimeout, apperrors.CodeOf(err))
	})

	t.Run("empty url", func(t *testing.T) {
		err := NewClient("").Call(context.Background(), nil, MethodBlockNumber)
		assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.CodeOf(err))
	})
}

func TestClient_RequestIDsIncrease(t *testing.T) {
	var mu sync.Mutex
	var ids []uint64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req request
		_ = json.NewDecoder(r.Body).Decode(&req)
		mu.Lock()
		ids = append(ids, req.ID)
		mu.Unlock()
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":"0x1"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	for i := 0; i < 3; i++ {
		_, err := c.BlockNumber(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, []uint64{1, 2, 3}, ids)
}

func TestClient_RateLimit(t *testing.T) {
	_, srv := newFakeNode(t, map[string]any{MethodPeerCount: "0x2"})
	c := NewClient(srv.URL, WithRequestsPerSecond(10))

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := c.PeerCount(context.Background())
		require.NoError(t, err)
	}
	// 10 rps spaces calls 100ms apart after the first.
	assert.GreaterOrEqual(t, time.Since(start), 150*time.Millisecond)
}

func TestClient_TypedMethods(t *testing.T) {
	node, srv := newFakeNode(t, map[string]any{
		MethodNodeInfo: map[string]any{
			"id":    "abc",
			"name":  "Geth/v1.9.25-stable/linux-amd64/go1.15.6",
			"enode": "enode://abc@127.0.0.1:30303",
			"ip":    "127.0.0.1",
			"ports": map[string]any{"discovery": 30303, "listener": 30303},
		},
		MethodMetrics:     map[string]any{"chain": map[string]any{"head": map[string]any{"block": 10}}},
		MethodMemStats:    map[string]any{"HeapAlloc": 100},
		MethodBlockNumber: "0x1b4",
		MethodGasPrice:    "0x3b9aca00",
		MethodPeers:       []any{map[string]any{"id": "p1"}, map[string]any{"id": "p2"}},
		MethodTxpoolContent: map[string]any{
			"pending": map[string]any{
				"0xa": map[string]any{"1": map[string]any{}, "2": map[string]any{}},
				"0xb": map[string]any{"7": map[string]any{}},
			},
			"queued": map[string]any{
				"0xc": map[string]any{"9": map[string]any{}},
			},
		},
	})
	c := NewClient(srv.URL)
	ctx := context.Background()

	info, err := c.NodeInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "enode://abc@127.0.0.1:30303", info.Enode)
	assert.Equal(t, 30303, info.Ports.Listener)

	metrics, err := c.Metrics(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, measurement.KindMapping, metrics.Kind())
	assert.Equal(t, "true", string(node.lastCall().Params[0]))

	mem, err := c.MemStats(ctx)
	require.NoError(t, err)
	heap, ok := mem.Lookup("HeapAlloc")
	require.True(t, ok)
	n, _ := heap.Number()
	assert.Equal(t, float64(100), n)

	block, err := c.BlockNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, float64(436), block)

	gas, err := c.GasPrice(ctx)
	require.NoError(t, err)
	assert.Equal(t, float64(1e9), gas)

	peers, err := c.Peers(ctx)
	require.NoError(t, err)
	require.Len(t, peers, 2)
	assert.JSONEq(t, `{"id":"p1"}`, string(peers[0]))

	content, err := c.TxpoolContent(ctx)
	require.NoError(t, err)
	pending, queued := content.Counts()
	assert.Equal(t, 3, pending)
	assert.Equal(t, 1, queued)
}

func TestClient_Syncing(t *testing.T) {
	tests := []struct {
		name    string
		result  any
		want    *SyncStatus
		wantErr bool
	}{
		{
			name:   "not syncing",
			result: false,
			want:   &SyncStatus{},
		},
		{
			name:   "in progress",
			result: map[string]any{"startingBlock": "0x0", "currentBlock": "0x10", "highestBlock": "0x20"},
			want:   &SyncStatus{Syncing: true, CurrentBlock: 16, HighestBlock: 32},
		},
		{
			name:    "bad quantity",
			result:  map[string]any{"currentBlock": "16"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, srv := newFakeNode(t, map[string]any{MethodSyncing: tt.result})
			got, err := NewClient(srv.URL).Syncing(context.Background())
			if tt.wantErr {
				assert.Equal(t, apperrors.ErrCodeDecode, apperrors.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTxpoolContent_CountsNil(t *testing.T) {
	var content *TxpoolContent
	p, q := content.Counts()
	assert.Zero(t, p)
	assert.Zero(t, q)
}
