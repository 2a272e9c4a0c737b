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

// Package units parses the textual number encodings found in geth metric
// snapshots.
//
// Two grammars are supported:
//
//   - Magnitude abbreviated numbers: a decimal literal with an optional
//     trailing K, M, G or T, e.g. "1.5K" or "2.2G".
//   - Go duration strings: signed sequences of mantissa and unit pairs,
//     e.g. "1h2m3.4s", "500µs" or "-2ms". Units are ns, us (also spelled
//     with U+00B5 or U+03BC), ms, s, m and h.
//
// Both parsers are pure and never fail loudly. They return the parsed value
// and true, or NaN and false when the input does not match the grammar:
//
//	if ms, ok := units.DurationToMillis("1h0m0s"); ok {
//	    fmt.Println(ms) // 3.6e+06
//	}
package units
