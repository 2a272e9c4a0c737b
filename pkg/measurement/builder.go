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

// MappingBuilder provides a fluent API for building mapping Values in field order.
type MappingBuilder struct {
	fields []Field
}

// NewMappingBuilder creates an empty MappingBuilder.
func NewMappingBuilder() *MappingBuilder {
	return &MappingBuilder{
		fields: make([]Field, 0),
	}
}

// Set appends a field. Setting an existing name replaces its value in place.
func (b *MappingBuilder) Set(name string, value Value) *MappingBuilder {
	for i := range b.fields {
		if b.fields[i].Name == name {
			b.fields[i].Value = value
			return b
		}
	}
	b.fields = append(b.fields, Field{Name: name, Value: value})
	return b
}

// SetNumber is a convenience method for adding numeric fields.
func (b *MappingBuilder) SetNumber(name string, value float64) *MappingBuilder {
	return b.Set(name, Number(value))
}

// SetString is a convenience method for adding string fields.
func (b *MappingBuilder) SetString(name, value string) *MappingBuilder {
	return b.Set(name, String(value))
}

// SetSequence is a convenience method for adding sequence fields.
func (b *MappingBuilder) SetSequence(name string, items ...Value) *MappingBuilder {
	return b.Set(name, Sequence(items...))
}

// SetMapping adds a nested mapping built by another builder.
func (b *MappingBuilder) SetMapping(name string, nested *MappingBuilder) *MappingBuilder {
	return b.Set(name, nested.Build())
}

// Build constructs and returns the mapping Value.
func (b *MappingBuilder) Build() Value {
	return Mapping(b.fields...)
}
