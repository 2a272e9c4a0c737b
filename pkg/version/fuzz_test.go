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

package version

import "testing"

func FuzzParseVersion(f *testing.F) {
	for _, seed := range []string{"1", "v1.2", "1.2.3", "v1.9.25-stable-e7872729", "", ".", "1..2", "-1", "1.2.3.4", "1.2.3+x"} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		v, err := ParseVersion(input)
		if err != nil {
			return
		}
		if !v.IsValid() {
			t.Errorf("ParseVersion(%q) returned invalid version: %+v", input, v)
		}
		v2, err := ParseVersion(v.String())
		if err != nil {
			t.Fatalf("re-parsing %q (from %q) failed: %v", v.String(), input, err)
		}
		if v.Compare(v2) != 0 || v.Precision != v2.Precision {
			t.Errorf("round trip mismatch for %q: %+v != %+v", input, v, v2)
		}
	})
}

func FuzzParseClientVersion(f *testing.F) {
	f.Add("Geth/v1.9.25-stable-e7872729/linux-amd64/go1.15.6")
	f.Add("Geth/node/v1.10.1/linux-amd64/go1.16")
	f.Add("/v1")
	f.Add("a/b/c")

	f.Fuzz(func(t *testing.T, input string) {
		cv, err := ParseClientVersion(input)
		if err != nil {
			return
		}
		if !cv.Version.IsValid() {
			t.Errorf("ParseClientVersion(%q) returned invalid version: %+v", input, cv.Version)
		}
	})
}

func BenchmarkParseClientVersion(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = ParseClientVersion("Geth/v1.9.25-stable-e7872729/linux-amd64/go1.15.6")
	}
}
