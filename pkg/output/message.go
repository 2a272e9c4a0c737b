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

package output

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/splunk/ethmetrics/pkg/measurement"
)

// MessageType tags the payload of a Message.
type MessageType string

const (
	TypeNodeMetrics MessageType = "node:metrics"
	TypeGethPeer    MessageType = "geth:peer"
	TypeNodeInfo    MessageType = "node:info"
)

// String returns the tag.
func (t MessageType) String() string {
	return string(t)
}

// Message is one envelope emitted by a capture.
type Message struct {
	Type MessageType `json:"type" yaml:"type"`

	// Time is the capture time in milliseconds since the Unix epoch.
	Time int64 `json:"time" yaml:"time"`

	Metrics map[string]float64 `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	Peer    *measurement.Value `json:"peer,omitempty" yaml:"peer,omitempty"`
	Info    *NodeInfo          `json:"info,omitempty" yaml:"info,omitempty"`
}

// NodeInfo describes the node a capture was taken from.
type NodeInfo struct {
	Client      string `json:"client" yaml:"client"`
	Version     string `json:"version" yaml:"version"`
	FullVersion string `json:"fullVersion" yaml:"fullVersion"`
	Platform    string `json:"platform,omitempty" yaml:"platform,omitempty"`
	Runtime     string `json:"runtime,omitempty" yaml:"runtime,omitempty"`
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	ID          string `json:"id,omitempty" yaml:"id,omitempty"`
	Enode       string `json:"enode,omitempty" yaml:"enode,omitempty"`
	ListenAddr  string `json:"listenAddr,omitempty" yaml:"listenAddr,omitempty"`
}

// Millis converts t to the envelope time representation.
func Millis(t time.Time) int64 {
	return t.UnixMilli()
}

// NewMetrics builds a node:metrics message. The map is used as is.
func NewMetrics(captureTime int64, metrics map[string]float64) Message {
	return Message{Type: TypeNodeMetrics, Time: captureTime, Metrics: metrics}
}

// NewPeer builds a geth:peer message from a raw admin_peers entry.
func NewPeer(captureTime int64, raw json.RawMessage) (Message, error) {
	var peer measurement.Value
	if err := json.Unmarshal(raw, &peer); err != nil {
		return Message{}, fmt.Errorf("invalid peer object: %w", err)
	}
	return Message{Type: TypeGethPeer, Time: captureTime, Peer: &peer}, nil
}

// NewInfo builds a node:info message.
func NewInfo(captureTime int64, info NodeInfo) Message {
	return Message{Type: TypeNodeInfo, Time: captureTime, Info: &info}
}

// MessageCounts returns the number of messages per type.
func MessageCounts(msgs []Message) map[MessageType]int {
	counts := make(map[MessageType]int)
	for _, m := range msgs {
		counts[m.Type]++
	}
	return counts
}

// MergedMetrics combines the metrics of all node:metrics messages. Later
// messages win on key collisions.
func MergedMetrics(msgs []Message) map[string]float64 {
	merged := make(map[string]float64)
	for _, m := range msgs {
		if m.Type != TypeNodeMetrics {
			continue
		}
		for k, v := range m.Metrics {
			merged[k] = v
		}
	}
	return merged
}

// SortedKeys returns the keys of metrics in lexical order.
func SortedKeys(metrics map[string]float64) []string {
	keys := make([]string, 0, len(metrics))
	for k := range metrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
