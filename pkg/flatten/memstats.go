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
	"strconv"

	"github.com/splunk/ethmetrics/pkg/measurement"
)

// BySizeField is the reserved size histogram field of a memory stats snapshot.
const BySizeField = "BySize"

// SizeBucket is one entry of the size histogram. Size is kept as the key
// segment it produces; Mallocs and Frees are only set when numeric.
type SizeBucket struct {
	Size       string
	Mallocs    float64
	HasMallocs bool
	Frees      float64
	HasFrees   bool
}

// FormatMemStats flattens a one level memory statistics snapshot. Numeric
// siblings are keyed prefix + LowerFirst(name); prefix is expected to end in
// the separator already. Each BySize bucket yields
// prefix + "bySize.<size>.mallocs" and prefix + "bySize.<size>.frees".
// Non-numeric siblings are dropped and nested mappings are not descended.
// Colliding keys are merged as in Flatten.
func FormatMemStats(v measurement.Value, prefix string) measurement.Set {
	var bySize measurement.Value
	var hasBySize bool

	out := newKeyedSet(v.Len())
	for _, f := range v.Fields() {
		if f.Name == BySizeField {
			bySize, hasBySize = f.Value, true
			continue
		}
		if n, ok := f.Value.Number(); ok && isFinite(n) {
			out.put(prefix+LowerFirst(f.Name), n)
		}
	}

	if !hasBySize {
		return out.set
	}

	for _, b := range SizeBuckets(bySize) {
		if b.HasMallocs {
			out.put(prefix+"bySize."+b.Size+".mallocs", b.Mallocs)
		}
		if b.HasFrees {
			out.put(prefix+"bySize."+b.Size+".frees", b.Frees)
		}
	}

	return out.set
}

// SizeBuckets reads the entries of a BySize sequence. Entries that are not
// mappings or carry no usable Size are skipped.
func SizeBuckets(v measurement.Value) []SizeBucket {
	items := v.Items()
	buckets := make([]SizeBucket, 0, len(items))
	for _, item := range items {
		if item.Kind() != measurement.KindMapping {
			continue
		}

		size, ok := bucketSize(item)
		if !ok {
			continue
		}
		b := SizeBucket{Size: size}

		if m, found := item.Lookup("Mallocs"); found {
			if n, isNum := m.Number(); isNum && isFinite(n) {
				b.Mallocs, b.HasMallocs = n, true
			}
		}
		if f, found := item.Lookup("Frees"); found {
			if n, isNum := f.Number(); isNum && isFinite(n) {
				b.Frees, b.HasFrees = n, true
			}
		}

		buckets = append(buckets, b)
	}
	return buckets
}

func bucketSize(item measurement.Value) (string, bool) {
	size, found := item.Lookup("Size")
	if !found {
		return "", false
	}
	switch size.Kind() {
	case measurement.KindNumber:
		n, _ := size.Number()
		if !isFinite(n) {
			return "", false
		}
		return strconv.FormatFloat(n, 'f', -1, 64), true
	case measurement.KindString:
		return size.Text()
	default:
		return "", false
	}
}

// GethMemStats formats a debug_memStats snapshot under GethMemStatsPrefix.
func GethMemStats(v measurement.Value) measurement.Set {
	return FormatMemStats(v, GethMemStatsPrefix)
}
