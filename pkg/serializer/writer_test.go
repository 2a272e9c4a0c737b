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

package serializer

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splunk/ethmetrics/pkg/measurement"
)

type sample struct {
	Name   string            `json:"name" yaml:"name"`
	Count  int               `json:"count" yaml:"count"`
	Labels map[string]string `json:"labels,omitempty" yaml:"labels,omitempty"`
}

type tabular struct{}

func (tabular) TableHeader() []string { return []string{"key", "value"} }
func (tabular) TableRows() [][]string {
	return [][]string{{"geth.metrics.chain.head", "10"}, {"geth.txpool.pending", "3"}}
}

func TestWriter_Formats(t *testing.T) {
	data := sample{Name: "geth", Count: 2}
	tests := []struct {
		format Format
		want   string
	}{
		{FormatJSON, "{\n  \"name\": \"geth\",\n  \"count\": 2\n}\n"},
		{FormatYAML, "name: geth\ncount: 2\n"},
		{FormatTable, "Field  Value\n-----  -----\nCount  2\nName   geth\n"},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewWriter(tt.format, &buf).Serialize(context.Background(), data))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriter_TableUsesTabular(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(FormatTable, &buf).Serialize(context.Background(), tabular{}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"Key", "Value"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"geth.metrics.chain.head", "10"}, strings.Fields(lines[2]))
}

func TestWriter_TableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(FormatTable, &buf).Serialize(context.Background(), struct{}{}))
	assert.Equal(t, "<empty>\n", buf.String())
}

func TestWriter_TableNested(t *testing.T) {
	type inner struct{ Port int }
	type outer struct {
		inner
		Node   inner
		Tags   []string
		Ptr    *inner
		Labels map[string]string
	}

	var buf bytes.Buffer
	v := outer{Node: inner{Port: 8545}, Tags: []string{"a"}, Labels: map[string]string{"env": "test"}}
	require.NoError(t, NewWriter(FormatTable, &buf).Serialize(context.Background(), v))

	out := buf.String()
	assert.Contains(t, out, "Node.Port")
	assert.Contains(t, out, "Tags.[0]")
	assert.Contains(t, out, "Labels.env")
	assert.Contains(t, out, "Ptr")
	assert.NotContains(t, out, "inner.Port")
}

func TestWriter_MeasurementValueYAML(t *testing.T) {
	v := measurement.Mapping(
		measurement.Field{Name: "b", Value: measurement.Number(1)},
		measurement.Field{Name: "a", Value: measurement.String("1s")},
	)
	var buf bytes.Buffer
	require.NoError(t, NewWriter(FormatYAML, &buf).Serialize(context.Background(), v))
	assert.Equal(t, "b: 1\na: 1s\n", buf.String())
}

func TestWriter_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf bytes.Buffer
	assert.ErrorIs(t, NewWriter(FormatJSON, &buf).Serialize(ctx, 1), context.Canceled)
	assert.Zero(t, buf.Len())
}

func TestNewWriter_Defaults(t *testing.T) {
	w := NewWriter("xml", nil)
	assert.Equal(t, FormatJSON, w.format)
	assert.Equal(t, os.Stdout, w.output)
}

func TestNewFileWriterOrStdout(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		w, ok := NewFileWriterOrStdout(FormatJSON, " ").(*Writer)
		require.True(t, ok)
		assert.Equal(t, os.Stdout, w.output)
		assert.NoError(t, Close(w))
	})

	t.Run("dash", func(t *testing.T) {
		w := NewFileWriterOrStdout(FormatJSON, "-").(*Writer)
		assert.Equal(t, os.Stdout, w.output)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.yaml")
		w := NewFileWriterOrStdout(FormatYAML, path)
		require.NoError(t, w.Serialize(context.Background(), sample{Name: "x"}))
		require.NoError(t, Close(w))
		require.NoError(t, Close(w))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "name: x\ncount: 0\n", string(data))
	})

	t.Run("unwritable path falls back to stdout", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "report.json")
		w := NewFileWriterOrStdout(FormatJSON, path).(*Writer)
		assert.Equal(t, os.Stdout, w.output)
	})
}

func TestFormat_IsUnknown(t *testing.T) {
	for _, f := range SupportedFormats() {
		assert.False(t, Format(f).IsUnknown(), f)
	}
	assert.True(t, Format("csv").IsUnknown())
	assert.True(t, Format("").IsUnknown())
}
