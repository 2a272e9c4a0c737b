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

// Compare returns the measurements from next that are new or carry a different
// value than in prev. Order follows next.
func Compare(prev, next Set) Set {
	old := prev.ToMap()

	var diffs Set
	for _, m := range next {
		v, exists := old[m.Key]
		if !exists || v != m.Value {
			diffs = append(diffs, m)
		}
	}

	return diffs
}
