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
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"go.uber.org/ratelimit"

	"github.com/splunk/ethmetrics/pkg/defaults"
	apperrors "github.com/splunk/ethmetrics/pkg/errors"
)

const (
	// DefaultUserAgent is sent with every request unless overridden.
	DefaultUserAgent = "ethmetrics/1.0"

	jsonrpcVersion = "2.0"
)

// Option configures a Client.
type Option func(*Client)

// Client sends JSON-RPC requests to a single node endpoint.
// It is safe for concurrent use.
type Client struct {
	url        string
	userAgent  string
	timeout    time.Duration
	headers    http.Header
	limiter    ratelimit.Limiter
	httpClient *http.Client
	nextID     atomic.Uint64
}

// WithTimeout sets the per-call timeout applied when the caller's context
// carries no deadline.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithRequestsPerSecond throttles outgoing calls. Zero or negative disables throttling.
func WithRequestsPerSecond(rps int) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = ratelimit.New(rps)
		} else {
			c.limiter = nil
		}
	}
}

// WithHeader adds a header to every request, e.g. an Authorization token.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Set(key, value)
	}
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// NewClient creates a client for the node at url.
func NewClient(url string, opts ...Option) *Client {
	c := &Client{
		url:        url,
		userAgent:  DefaultUserAgent,
		timeout:    defaults.RPCTimeout,
		headers:    make(http.Header),
		httpClient: &http.Client{Transport: newDefaultTransport()},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the node endpoint.
func (c *Client) URL() string {
	return c.url
}

func newDefaultTransport() *http.Transport {
	return &http.Transport{
		MaxIdleConns:        16,
		MaxIdleConnsPerHost: 8,

		DialContext: (&net.Dialer{
			Timeout:   defaults.RPCDialTimeout,
			KeepAlive: defaults.RPCKeepAlive,
		}).DialContext,
		TLSHandshakeTimeout:   defaults.RPCDialTimeout,
		ResponseHeaderTimeout: defaults.RPCResponseHeaderTimeout,
		ExpectContinueTimeout: 1 * time.Second,

		IdleConnTimeout:   defaults.RPCIdleConnTimeout,
		ForceAttemptHTTP2: true,

		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}
}

type request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *Error          `json:"error"`
}

// Error is a JSON-RPC error object returned by the node.
type Error struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// Call invokes method with params and decodes the result into out.
// A nil out discards the result.
func (c *Client) Call(ctx context.Context, out any, method string, params ...any) error {
	if c.url == "" {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "node url is empty")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Deadline(); !ok && c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	if c.limiter != nil {
		c.limiter.Take()
	}

	if params == nil {
		params = []any{}
	}
	body, err := json.Marshal(request{
		JSONRPC: jsonrpcVersion,
		ID:      c.nextID.Add(1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("failed to encode %s request", method), err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("failed to create %s request", method), err)
	}
	for k, vals := range c.headers {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		code := apperrors.ErrCodeUnavailable
		if ctx.Err() == context.DeadlineExceeded {
			code = apperrors.ErrCodeTimeout
		}
		return apperrors.WrapWithContext(code, fmt.Sprintf("%s request failed", method), err,
			map[string]any{"method": method, "url": c.url})
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return apperrors.NewWithContext(apperrors.ErrCodeUnavailable,
			fmt.Sprintf("%s returned HTTP %d", method, resp.StatusCode),
			map[string]any{"method": method, "url": c.url, "status": resp.StatusCode})
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, defaults.RPCMaxResponseBytes+1))
	if err != nil {
		code := apperrors.ErrCodeUnavailable
		if ctx.Err() == context.DeadlineExceeded {
			code = apperrors.ErrCodeTimeout
		}
		return apperrors.Wrap(code, fmt.Sprintf("failed to read %s response", method), err)
	}
	if len(data) > defaults.RPCMaxResponseBytes {
		return apperrors.NewWithContext(apperrors.ErrCodeDecode,
			fmt.Sprintf("%s response exceeds %d bytes", method, defaults.RPCMaxResponseBytes),
			map[string]any{"method": method})
	}

	var rpcResp response
	if err := json.Unmarshal(data, &rpcResp); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeDecode,
			fmt.Sprintf("invalid %s response", method), err)
	}
	if rpcResp.Error != nil {
		return apperrors.WrapWithContext(apperrors.ErrCodeRPC,
			fmt.Sprintf("%s rejected by node", method), rpcResp.Error,
			map[string]any{"method": method, "rpcCode": rpcResp.Error.Code})
	}

	if out == nil {
		return nil
	}
	if len(rpcResp.Result) == 0 {
		return apperrors.NewWithContext(apperrors.ErrCodeDecode,
			fmt.Sprintf("%s response has no result", method),
			map[string]any{"method": method})
	}
	if err := json.Unmarshal(rpcResp.Result, out); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeDecode,
			fmt.Sprintf("failed to decode %s result", method), err)
	}
	return nil
}
