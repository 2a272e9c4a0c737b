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

package measurement

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_AddAndKeys(t *testing.T) {
	var s Set
	s.Add("a", 1)
	s.Add("b", 2)

	assert.Equal(t, []string{"a", "b"}, s.Keys())

	v, ok := s.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 2.0, v)

	_, ok = s.Get("missing")
	assert.False(t, ok)
}

func TestSet_Concat(t *testing.T) {
	a := Set{{Key: "a", Value: 1}}
	b := Set{{Key: "b", Value: 2}}
	c := Set{{Key: "c", Value: 3}}

	got := a.Concat(b, c)
	assert.Equal(t, []string{"a", "b", "c"}, got.Keys())
	assert.Len(t, a, 1, "receiver must not be modified")
}

func TestSet_ToMap(t *testing.T) {
	a := Set{{Key: "x", Value: 1}, {Key: "y", Value: 2}, {Key: "x", Value: 3}}
	assert.Equal(t, map[string]float64{"x": 3, "y": 2}, a.ToMap())
}

func TestSet_Table(t *testing.T) {
	s := Set{{Key: "a", Value: 1200}, {Key: "b", Value: 0.5}, {Key: "c", Value: 32768}}
	assert.Equal(t, []string{"key", "value"}, s.TableHeader())
	assert.Equal(t, [][]string{{"a", "1200"}, {"b", "0.5"}, {"c", "32768"}}, s.TableRows())
}

func TestSet_Validate(t *testing.T) {
	tests := []struct {
		name    string
		set     Set
		wantErr bool
	}{
		{"empty", Set{}, false},
		{"valid", Set{{Key: "a", Value: 1}, {Key: "b", Value: 0}}, false},
		{"empty key", Set{{Key: "", Value: 1}}, true},
		{"duplicate", Set{{Key: "a", Value: 1}, {Key: "a", Value: 2}}, true},
		{"nan", Set{{Key: "a", Value: math.NaN()}}, true},
		{"inf", Set{{Key: "a", Value: math.Inf(-1)}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.set.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFromMap(t *testing.T) {
	got := FromMap(map[string]float64{"b": 2, "a": 1, "c": 3})
	assert.Equal(t, Set{{Key: "a", Value: 1}, {Key: "b", Value: 2}, {Key: "c", Value: 3}}, got)
	assert.Empty(t, FromMap(nil))
}
