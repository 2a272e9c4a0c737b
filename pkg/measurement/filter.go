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

import "strings"

// Filter returns the measurements whose keys pass the include and exclude patterns.
// An empty include list admits every key; exclude always wins over include.
// Supports wildcard patterns:
//   - "prefix*" matches keys starting with "prefix"
//   - "*suffix" matches keys ending with "suffix"
//   - "*contains*" matches keys containing "contains"
//   - "exact" matches keys exactly
func (s Set) Filter(include, exclude []string) Set {
	if len(include) == 0 && len(exclude) == 0 {
		return s
	}

	result := make(Set, 0, len(s))
	for _, m := range s {
		if len(include) > 0 && !MatchesAny(m.Key, include) {
			continue
		}
		if MatchesAny(m.Key, exclude) {
			continue
		}
		result = append(result, m)
	}

	return result
}

// FilterOut returns the measurements whose keys match none of the patterns.
func (s Set) FilterOut(patterns []string) Set {
	return s.Filter(nil, patterns)
}

// FilterIn returns only the measurements whose keys match at least one pattern.
// This is the complement of FilterOut.
func (s Set) FilterIn(patterns []string) Set {
	result := make(Set, 0, len(s))
	for _, m := range s {
		if MatchesAny(m.Key, patterns) {
			result = append(result, m)
		}
	}
	return result
}

// MatchesAny reports whether key matches at least one of the wildcard patterns.
func MatchesAny(key string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchesPattern(key, pattern) {
			return true
		}
	}
	return false
}

// matchesPattern checks if a key matches a wildcard pattern.
// Supports multiple wildcard segments, e.g., "a*b*c" matches "aXbYc".
func matchesPattern(key, pattern string) bool {
	if !strings.Contains(pattern, "*") {
		return key == pattern
	}

	segments := strings.Split(pattern, "*")

	pos := 0
	for i, segment := range segments {
		if segment == "" {
			continue // consecutive wildcards
		}

		// anchored at the start unless the pattern begins with *
		if i == 0 {
			if !strings.HasPrefix(key, segment) {
				return false
			}
			pos = len(segment)
			continue
		}

		// anchored at the end unless the pattern ends with *
		if i == len(segments)-1 {
			return strings.HasSuffix(key[pos:], segment)
		}

		idx := strings.Index(key[pos:], segment)
		if idx == -1 {
			return false
		}
		pos += idx + len(segment)
	}

	return true
}
