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
	"reflect"
	"testing"
)

func testSet() Set {
	return Set{
		{Key: "geth.metrics.chain.head.block", Value: 1},
		{Key: "geth.metrics.p2p.peers", Value: 2},
		{Key: "geth.metrics.p2p.ingress", Value: 3},
		{Key: "geth.memStats.heapAlloc", Value: 4},
		{Key: "geth.memStats.bySize.16.mallocs", Value: 5},
		{Key: "geth.txpool.pending", Value: 6},
	}
}

func TestSet_Filter(t *testing.T) {
	tests := []struct {
		name     string
		include  []string
		exclude  []string
		wantKeys []string
	}{
		{
			name:    "no patterns",
			include: nil,
			exclude: nil,
			wantKeys: []string{
				"geth.metrics.chain.head.block", "geth.metrics.p2p.peers", "geth.metrics.p2p.ingress",
				"geth.memStats.heapAlloc", "geth.memStats.bySize.16.mallocs", "geth.txpool.pending",
			},
		},
		{
			name:     "prefix include",
			include:  []string{"geth.metrics*"},
			wantKeys: []string{"geth.metrics.chain.head.block", "geth.metrics.p2p.peers", "geth.metrics.p2p.ingress"},
		},
		{
			name:     "include with exclude",
			include:  []string{"geth.metrics*"},
			exclude:  []string{"*.p2p.*"},
			wantKeys: []string{"geth.metrics.chain.head.block"},
		},
		{
			name:    "exclude only",
			exclude: []string{"*bySize*", "geth.txpool.pending"},
			wantKeys: []string{
				"geth.metrics.chain.head.block", "geth.metrics.p2p.peers", "geth.metrics.p2p.ingress",
				"geth.memStats.heapAlloc",
			},
		},
		{
			name:     "suffix include",
			include:  []string{"*s"},
			wantKeys: []string{"geth.metrics.p2p.peers", "geth.metrics.p2p.ingress", "geth.memStats.bySize.16.mallocs"},
		},
		{
			name:     "multiple wildcards",
			include:  []string{"geth.*.p2p.*s"},
			wantKeys: []string{"geth.metrics.p2p.peers", "geth.metrics.p2p.ingress"},
		},
		{
			name:     "non-matching include",
			include:  []string{"nonexistent*"},
			wantKeys: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := testSet().Filter(tt.include, tt.exclude).Keys()
			if !reflect.DeepEqual(got, tt.wantKeys) {
				t.Errorf("Filter() keys = %v, want %v", got, tt.wantKeys)
			}
		})
	}
}

func TestSet_FilterInOut(t *testing.T) {
	in := testSet().FilterIn([]string{"geth.txpool.*"}).Keys()
	if !reflect.DeepEqual(in, []string{"geth.txpool.pending"}) {
		t.Errorf("FilterIn() = %v", in)
	}

	out := testSet().FilterOut([]string{"geth.metrics.*", "geth.memStats.*"}).Keys()
	if !reflect.DeepEqual(out, []string{"geth.txpool.pending"}) {
		t.Errorf("FilterOut() = %v", out)
	}
}

func TestMatchesPattern(t *testing.T) {
	tests := []struct {
		key     string
		pattern string
		want    bool
	}{
		{"abc", "abc", true},
		{"abc", "ab", false},
		{"abc", "*", true},
		{"abc", "a*", true},
		{"abc", "*c", true},
		{"abc", "*b*", true},
		{"aXbYc", "a*b*c", true},
		{"acb", "a*b*c", false},
		{"a", "a*a", false},
		{"aa", "a*a", true},
		{"abc", "**c", true},
	}
	for _, tt := range tests {
		t.Run(tt.key+"_"+tt.pattern, func(t *testing.T) {
			if got := matchesPattern(tt.key, tt.pattern); got != tt.want {
				t.Errorf("matchesPattern(%q, %q) = %v, want %v", tt.key, tt.pattern, got, tt.want)
			}
		})
	}
}

func BenchmarkSet_Filter(b *testing.B) {
	s := testSet()
	include := []string{"geth.metrics*"}
	exclude := []string{"*.p2p.*"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Filter(include, exclude)
	}
}
