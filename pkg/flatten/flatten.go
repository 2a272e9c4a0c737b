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

package flatten

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/splunk/ethmetrics/pkg/measurement"
	"github.com/splunk/ethmetrics/pkg/units"
)

const (
	// GethMetricsPrefix is the key namespace for debug_metrics snapshots.
	GethMetricsPrefix = "geth.metrics"
	// GethMemStatsPrefix is the key namespace for debug_memStats snapshots.
	// It already ends in the separator.
	GethMemStatsPrefix = "geth.memStats."
)

// Flatten walks a nested mapping and returns one measurement per numeric or
// numerically interpretable leaf, keyed prefix + "." + LowerFirst(name) for
// each traversed field. Sequences and unparseable strings are dropped.
// Fields whose lowered names collide produce one key: it keeps the position of
// the first emission and the value of the last.
// Flatten never fails; non-mapping input yields an empty set.
func Flatten(v measurement.Value, prefix string) measurement.Set {
	out := newKeyedSet(v.Len())
	flattenInto(out, v, prefix)
	return out.set
}

func flattenInto(out *keyedSet, v measurement.Value, prefix string) {
	for _, f := range v.Fields() {
		key := prefix + "." + LowerFirst(f.Name)

		switch f.Value.Kind() {
		case measurement.KindNumber:
			n, _ := f.Value.Number()
			if isFinite(n) {
				out.put(key, n)
			}
		case measurement.KindString:
			s, _ := f.Value.Text()
			if n, ok := ParseLeaf(s); ok {
				out.put(key, n)
			}
		case measurement.KindSequence:
			// timing breakdowns, not metrics
		case measurement.KindMapping:
			flattenInto(out, f.Value, key)
		case measurement.KindNull, measurement.KindInvalid:
		}
	}
}

// keyedSet builds a measurement.Set with unique keys.
type keyedSet struct {
	set   measurement.Set
	index map[string]int
}

func newKeyedSet(capacity int) *keyedSet {
	return &keyedSet{
		set:   make(measurement.Set, 0, capacity),
		index: make(map[string]int, capacity),
	}
}

// put appends key, or overwrites the value of an earlier entry with that key.
func (k *keyedSet) put(key string, value float64) {
	if i, ok := k.index[key]; ok {
		k.set[i].Value = value
		return
	}
	k.index[key] = len(k.set)
	k.set.Add(key, value)
}

// ParseLeaf interprets a string leaf. A rate annotated counter such as
// "1.2K (0.00/s)" yields its abbreviated count, and a string ending in "s" is
// read as a duration in milliseconds. Anything else reports false.
func ParseLeaf(s string) (float64, bool) {
	if strings.HasSuffix(s, ")") {
		if parts := strings.Split(s, " "); len(parts) == 2 {
			if n, ok := units.ParseAbbreviated(parts[0]); ok && isFinite(n) {
				return n, true
			}
		}
	}

	if strings.HasSuffix(s, "s") {
		if n, ok := units.DurationToMillis(s); ok && isFinite(n) {
			return n, true
		}
	}

	return 0, false
}

// LowerFirst lower-cases the first character of s and keeps the rest verbatim.
func LowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	lower := unicode.ToLower(r)
	if lower == r {
		return s
	}
	return string(lower) + s[size:]
}

// GethMetrics flattens a debug_metrics snapshot under GethMetricsPrefix.
func GethMetrics(v measurement.Value) measurement.Set {
	return Flatten(v, GethMetricsPrefix)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
