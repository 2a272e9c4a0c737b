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

// Package measurement provides the data model for raw node snapshots and the
// flat measurements derived from them.
//
// # Core Types
//
//   - Value: tagged variant over number, string, sequence and ordered mapping.
//     One Value tree represents one decoded snapshot.
//   - Field: named entry of a mapping Value.
//   - Measurement: a dotted key with a numeric value.
//   - Set: insertion-ordered sequence of Measurements.
//
// # Decoding Snapshots
//
// Value implements json.Unmarshaler and yaml.Unmarshaler. Both keep the
// source order of object keys, which later defines measurement order:
//
//	var v Value
//	if err := json.Unmarshal(payload, &v); err != nil {
//	    return err
//	}
//	for _, f := range v.Fields() {
//	    fmt.Println(f.Name, f.Value.Kind())
//	}
//
// Or build trees directly:
//
//	v := NewMappingBuilder().
//	    SetNumber("heapAlloc", 100).
//	    SetString("uptime", "1h0m0s").
//	    Build()
//
// # Working with Sets
//
//	var s Set
//	s.Add("geth.metrics.chain.head", 42)
//	m := s.ToMap()
//
// # Filtering Keys
//
// Filter keys using wildcard patterns:
//
//	// Keep chain metrics but drop anything under p2p
//	kept := s.Filter([]string{"geth.metrics.chain*"}, []string{"*.p2p.*"})
//
// # Comparing Captures
//
//	changed := Compare(previous, current)
package measurement
