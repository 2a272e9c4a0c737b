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
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Measurement is a single flat metric: a dotted key and its numeric value.
type Measurement struct {
	Key   string  `json:"key" yaml:"key"`
	Value float64 `json:"value" yaml:"value"`
}

// Set is an insertion-ordered sequence of measurements produced by one
// flattening call.
type Set []Measurement

// Add appends a measurement to the set.
func (s *Set) Add(key string, value float64) {
	*s = append(*s, Measurement{Key: key, Value: value})
}

// Concat returns a new set holding s followed by others, in order.
func (s Set) Concat(others ...Set) Set {
	n := len(s)
	for _, o := range others {
		n += len(o)
	}
	out := make(Set, 0, n)
	out = append(out, s...)
	for _, o := range others {
		out = append(out, o...)
	}
	return out
}

// Keys returns the measurement keys in order.
func (s Set) Keys() []string {
	keys := make([]string, len(s))
	for i, m := range s {
		keys[i] = m.Key
	}
	return keys
}

// Get returns the value of the first measurement with the given key.
func (s Set) Get(key string) (float64, bool) {
	for _, m := range s {
		if m.Key == key {
			return m.Value, true
		}
	}
	return 0, false
}

// ToMap converts the set to a key/value map. Later entries win on key conflicts.
func (s Set) ToMap() map[string]float64 {
	out := make(map[string]float64, len(s))
	for _, m := range s {
		out[m.Key] = m.Value
	}
	return out
}

// FromMap builds a set from m ordered by key.
func FromMap(m map[string]float64) Set {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(Set, 0, len(keys))
	for _, k := range keys {
		out = append(out, Measurement{Key: k, Value: m[k]})
	}
	return out
}

// TableHeader names the columns of the table rendering.
func (s Set) TableHeader() []string {
	return []string{"key", "value"}
}

// TableRows renders one row per measurement in set order.
func (s Set) TableRows() [][]string {
	rows := make([][]string, len(s))
	for i, m := range s {
		rows[i] = []string{m.Key, strconv.FormatFloat(m.Value, 'f', -1, 64)}
	}
	return rows
}

// Validate checks that every key is non-empty and unique and that every value is finite.
func (s Set) Validate() error {
	seen := make(map[string]struct{}, len(s))
	for i, m := range s {
		if m.Key == "" {
			return fmt.Errorf("measurement[%d]: %w", i, errors.New("key cannot be empty"))
		}
		if _, dup := seen[m.Key]; dup {
			return fmt.Errorf("measurement[%d]: duplicate key %q", i, m.Key)
		}
		if math.IsNaN(m.Value) || math.IsInf(m.Value, 0) {
			return fmt.Errorf("measurement[%d]: key %q has non-finite value", i, m.Key)
		}
		seen[m.Key] = struct{}{}
	}
	return nil
}
