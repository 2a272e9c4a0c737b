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
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splunk/ethmetrics/pkg/measurement"
)

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"metrics.json":  FormatJSON,
		"METRICS.JSON":  FormatJSON,
		"metrics.yaml":  FormatYAML,
		"metrics.yml":   FormatYAML,
		"metrics.table": FormatTable,
		"metrics.txt":   FormatTable,
		"metrics":       FormatJSON,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %s, want %s", path, got, want)
		}
	}
}

func TestNewReader_RejectsFormats(t *testing.T) {
	_, err := NewReader(FormatTable, strings.NewReader(""))
	assert.Error(t, err)
	_, err = NewReader("toml", strings.NewReader(""))
	assert.Error(t, err)
}

func TestReader_Deserialize(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{"json", FormatJSON, `{"name":"geth","count":3}`},
		{"yaml", FormatYAML, "name: geth\ncount: 3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewReader(tt.format, strings.NewReader(tt.input))
			require.NoError(t, err)
			var got sample
			require.NoError(t, r.Deserialize(&got))
			assert.Equal(t, sample{Name: "geth", Count: 3}, got)
			assert.NoError(t, r.Close())
		})
	}
}

func TestReader_DeserializeErrors(t *testing.T) {
	var nilReader *Reader
	assert.Error(t, nilReader.Deserialize(&sample{}))
	assert.NoError(t, nilReader.Close())

	r, err := NewReader(FormatJSON, nil)
	require.NoError(t, err)
	assert.Error(t, r.Deserialize(&sample{}))

	r, err = NewReader(FormatJSON, strings.NewReader(`{"name":`))
	require.NoError(t, err)
	assert.Error(t, r.Deserialize(&sample{}))
}

func TestReader_MeasurementValueKeepsOrder(t *testing.T) {
	for _, tt := range []struct {
		format Format
		input  string
	}{
		{FormatJSON, `{"z": 1, "a": {"y": "2ms", "b": [1]}}`},
		{FormatYAML, "z: 1\na:\n  y: 2ms\n  b: [1]\n"},
	} {
		r, err := NewReader(tt.format, strings.NewReader(tt.input))
		require.NoError(t, err)
		var v measurement.Value
		require.NoError(t, r.Deserialize(&v))

		names := make([]string, 0)
		for _, f := range v.Fields() {
			names = append(names, f.Name)
		}
		assert.Equal(t, []string{"z", "a"}, names, tt.format)
	}
}

type closeCounter struct {
	*strings.Reader
	closed int
}

func (c *closeCounter) Close() error {
	c.closed++
	return nil
}

func TestReader_CloseIdempotent(t *testing.T) {
	src := &closeCounter{Reader: strings.NewReader("{}")}
	r, err := NewReader(FormatJSON, src)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	require.NoError(t, r.Close())
	assert.Equal(t, 1, src.closed)
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "snap.json")
	yamlPath := filepath.Join(dir, "snap.yml")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"name":"a","count":1}`), 0o600))
	require.NoError(t, os.WriteFile(yamlPath, []byte("name: b\ncount: 2\n"), 0o600))

	got, err := FromFile[sample](jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Name)

	got, err = FromFile[sample](yamlPath)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Count)

	_, err = FromFile[sample](filepath.Join(dir, "missing.json"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	tablePath := filepath.Join(dir, "snap.txt")
	require.NoError(t, os.WriteFile(tablePath, []byte("x"), 0o600))
	_, err = FromFile[sample](tablePath)
	assert.Error(t, err)
}
