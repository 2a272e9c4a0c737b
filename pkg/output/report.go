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
	"strconv"

	"github.com/google/uuid"

	"github.com/splunk/ethmetrics/pkg/header"
)

const (
	// APIVersion is the schema version of Report documents.
	APIVersion = "ethmetrics.splunk.com/v1alpha1"
)

// Report is the document produced by one capture.
type Report struct {
	header.Header `json:",inline" yaml:",inline"`

	CaptureID string    `json:"captureId" yaml:"captureId"`
	Node      *NodeInfo `json:"node,omitempty" yaml:"node,omitempty"`
	Messages  []Message `json:"messages" yaml:"messages"`
}

// NewReport creates a Report with a fresh capture ID.
func NewReport(toolVersion string, node *NodeInfo, msgs []Message) *Report {
	r := &Report{
		CaptureID: uuid.New().String(),
		Node:      node,
		Messages:  msgs,
	}
	if r.Messages == nil {
		r.Messages = []Message{}
	}
	r.Init(header.KindCapture, APIVersion, toolVersion)
	if node != nil && node.Enode != "" {
		r.Metadata["enode"] = node.Enode
	}
	return r
}

// TableHeader implements the serializer's tabular rendering.
func (r *Report) TableHeader() []string {
	return []string{"key", "value"}
}

// TableRows returns the merged node:metrics as sorted key/value rows,
// followed by one row per peer.
func (r *Report) TableRows() [][]string {
	merged := MergedMetrics(r.Messages)
	rows := make([][]string, 0, len(merged)+1)
	for _, k := range SortedKeys(merged) {
		rows = append(rows, []string{k, formatNumber(merged[k])})
	}
	peers := 0
	for _, m := range r.Messages {
		if m.Type != TypeGethPeer || m.Peer == nil {
			continue
		}
		id := "-"
		if v, ok := m.Peer.Lookup("id"); ok {
			if s, ok := v.Text(); ok {
				id = s
			}
		}
		rows = append(rows, []string{"peer." + strconv.Itoa(peers), id})
		peers++
	}
	return rows
}
