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

// Package flatten turns nested node snapshots into flat dotted-key measurements.
//
// Flatten handles arbitrary metric trees such as the debug_metrics output of
// geth. Numbers are emitted as is, string leaves are read either as rate
// annotated counters ("1.2K (0.00/s)") or as Go durations ("1h2m3s",
// converted to milliseconds), and arrays are skipped:
//
//	set := flatten.Flatten(snapshot, "x")
//	// x.counter=1200, x.uptime=3600000
//
// FormatMemStats handles the fixed shape of runtime memory statistics with its
// BySize histogram:
//
//	set := flatten.GethMemStats(memStats)
//	// geth.memStats.heapAlloc=..., geth.memStats.bySize.16.mallocs=...
//
// Both functions are total and deterministic. Leaves that cannot be
// interpreted are dropped without error.
package flatten
