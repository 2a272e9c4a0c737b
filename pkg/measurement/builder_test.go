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

import "testing"

func TestMappingBuilder(t *testing.T) {
	v := NewMappingBuilder().
		SetNumber("count", 3).
		SetString("uptime", "1h0m0s").
		SetSequence("timings", Number(1), Number(2)).
		SetMapping("nested", NewMappingBuilder().SetNumber("inner", 1)).
		Build()

	if v.Kind() != KindMapping {
		t.Fatalf("Build() kind = %v, want mapping", v.Kind())
	}

	wantNames := []string{"count", "uptime", "timings", "nested"}
	fields := v.Fields()
	if len(fields) != len(wantNames) {
		t.Fatalf("expected %d fields, got %d", len(wantNames), len(fields))
	}
	for i, name := range wantNames {
		if fields[i].Name != name {
			t.Errorf("field[%d] = %s, want %s", i, fields[i].Name, name)
		}
	}

	nested, _ := v.Lookup("nested")
	inner, ok := nested.Lookup("inner")
	if !ok {
		t.Fatal("expected nested.inner")
	}
	if f, _ := inner.Number(); f != 1 {
		t.Errorf("nested.inner = %v, want 1", f)
	}
}

func TestMappingBuilder_SetReplacesInPlace(t *testing.T) {
	v := NewMappingBuilder().
		SetNumber("a", 1).
		SetNumber("b", 2).
		SetNumber("a", 3).
		Build()

	fields := v.Fields()
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	if fields[0].Name != "a" {
		t.Errorf("first field = %s, want a", fields[0].Name)
	}
	if f, _ := fields[0].Value.Number(); f != 3 {
		t.Errorf("a = %v, want 3", f)
	}
}

func TestMappingBuilder_Empty(t *testing.T) {
	v := NewMappingBuilder().Build()
	if v.Kind() != KindMapping || v.Len() != 0 {
		t.Errorf("empty builder = %v (len %d), want empty mapping", v.Kind(), v.Len())
	}
}
