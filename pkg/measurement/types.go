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
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindNumber
	KindString
	KindSequence
	KindMapping
	KindNull
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	case KindNull:
		return "null"
	default:
		return "invalid"
	}
}

// Value is one node of a raw snapshot tree. It holds a number, a string, a
// sequence of values, an ordered mapping of named values or an explicit null.
// The zero Value is KindInvalid.
type Value struct {
	kind   Kind
	num    float64
	str    string
	items  []Value
	fields []Field
}

// Field is a named entry of a mapping Value.
type Field struct {
	Name  string
	Value Value
}

// Number creates a numeric Value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// String creates a string Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Null creates an explicit null Value.
func Null() Value { return Value{kind: KindNull} }

// Sequence creates a sequence Value from the given items.
func Sequence(items ...Value) Value {
	return Value{kind: KindSequence, items: append([]Value(nil), items...)}
}

// Mapping creates a mapping Value. Field order is preserved. A repeated name
// keeps its first position and takes the last value.
func Mapping(fields ...Field) Value {
	m := newFieldSet(len(fields))
	for _, f := range fields {
		m.put(f.Name, f.Value)
	}
	return m.value()
}

// fieldSet accumulates mapping fields with unique names.
type fieldSet struct {
	fields []Field
	index  map[string]int
}

func newFieldSet(capacity int) *fieldSet {
	return &fieldSet{
		fields: make([]Field, 0, capacity),
		index:  make(map[string]int, capacity),
	}
}

func (m *fieldSet) put(name string, v Value) {
	if i, ok := m.index[name]; ok {
		m.fields[i].Value = v
		return
	}
	m.index[name] = len(m.fields)
	m.fields = append(m.fields, Field{Name: name, Value: v})
}

func (m *fieldSet) value() Value {
	return Value{kind: KindMapping, fields: m.fields}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// Number returns the numeric value and true if v is a number.
func (v Value) Number() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// Text returns the string value and true if v is a string.
func (v Value) Text() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// Items returns a copy of the sequence items, or nil if v is not a sequence.
func (v Value) Items() []Value {
	if v.kind != KindSequence {
		return nil
	}
	return append([]Value(nil), v.items...)
}

// Fields returns a copy of the mapping fields in source order, or nil if v is not a mapping.
func (v Value) Fields() []Field {
	if v.kind != KindMapping {
		return nil
	}
	return append([]Field(nil), v.fields...)
}

// Len returns the number of items or fields, and zero for scalars.
func (v Value) Len() int {
	switch v.kind {
	case KindSequence:
		return len(v.items)
	case KindMapping:
		return len(v.fields)
	default:
		return 0
	}
}

// Lookup returns the first field with the given name.
func (v Value) Lookup(name string) (Value, bool) {
	for _, f := range v.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// String renders v for diagnostics.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindString:
		return v.str
	case KindNull:
		return "null"
	case KindSequence, KindMapping:
		b, err := v.MarshalJSON()
		if err != nil {
			return fmt.Sprintf("<%s>", v.kind)
		}
		return string(b)
	default:
		return "<invalid>"
	}
}

// FromAny converts a generically decoded value (as produced by encoding/json or
// yaml.v3 into an `any`) to a Value. Keys of Go maps are sorted because map
// iteration order is undefined. Booleans become strings, nil becomes Null and
// anything else is rendered with fmt.
func FromAny(in any) Value {
	switch val := in.(type) {
	case Value:
		return val
	case float64:
		return Number(val)
	case float32:
		return Number(float64(val))
	case int:
		return Number(float64(val))
	case int64:
		return Number(float64(val))
	case int32:
		return Number(float64(val))
	case uint:
		return Number(float64(val))
	case uint64:
		return Number(float64(val))
	case uint32:
		return Number(float64(val))
	case json.Number:
		f, _ := strconv.ParseFloat(string(val), 64)
		return Number(f)
	case string:
		return String(val)
	case bool:
		return String(strconv.FormatBool(val))
	case nil:
		return Null()
	case []any:
		items := make([]Value, len(val))
		for i, item := range val {
			items[i] = FromAny(item)
		}
		return Value{kind: KindSequence, items: items}
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fields := make([]Field, len(keys))
		for i, k := range keys {
			fields[i] = Field{Name: k, Value: FromAny(val[k])}
		}
		return Value{kind: KindMapping, fields: fields}
	default:
		return String(fmt.Sprintf("%v", val))
	}
}

// UnmarshalJSON decodes a JSON document into v, keeping object key order.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	out, err := decodeJSON(dec)
	if err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after top-level value")
	}

	*v = out
	return nil
}

// DecodeJSON reads a single JSON value from r.
func DecodeJSON(r io.Reader) (Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return decodeJSON(dec)
}

func decodeJSON(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			fields := newFieldSet(0)
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("expected object key, got %v", keyTok)
				}
				child, err := decodeJSON(dec)
				if err != nil {
					return Value{}, fmt.Errorf("field %q: %w", key, err)
				}
				fields.put(key, child)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return fields.value(), nil
		case '[':
			items := make([]Value, 0)
			for dec.More() {
				child, err := decodeJSON(dec)
				if err != nil {
					return Value{}, fmt.Errorf("index %d: %w", len(items), err)
				}
				items = append(items, child)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Value{kind: KindSequence, items: items}, nil
		default:
			return Value{}, fmt.Errorf("unexpected delimiter %q", t)
		}
	case json.Number:
		// out-of-range literals come back as ±Inf together with an error
		f, _ := strconv.ParseFloat(string(t), 64)
		return Number(f), nil
	case string:
		return String(t), nil
	case bool:
		return String(strconv.FormatBool(t)), nil
	case nil:
		return Null(), nil
	default:
		return Value{}, fmt.Errorf("unexpected token %v", tok)
	}
}

// MarshalJSON encodes v keeping mapping field order. Non-finite numbers are
// written as null.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encodeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) encodeJSON(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			buf.WriteString("null")
			return nil
		}
		buf.WriteString(strconv.FormatFloat(v.num, 'g', -1, 64))
	case KindString:
		b, err := json.Marshal(v.str)
		if err != nil {
			return err
		}
		buf.Write(b)
	case KindSequence:
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encodeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindMapping:
		buf.WriteByte('{')
		for i, f := range v.fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(f.Name)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := f.Value.encodeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		buf.WriteString("null")
	}
	return nil
}

// UnmarshalYAML decodes a YAML node into v, keeping mapping key order.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	out, err := decodeYAML(node)
	if err != nil {
		return err
	}
	*v = out
	return nil
}

func decodeYAML(node *yaml.Node) (Value, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Value{}, errors.New("empty yaml document")
		}
		return decodeYAML(node.Content[0])
	case yaml.AliasNode:
		if node.Alias == nil {
			return Value{}, errors.New("dangling yaml alias")
		}
		return decodeYAML(node.Alias)
	case yaml.MappingNode:
		fields := newFieldSet(len(node.Content) / 2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			child, err := decodeYAML(node.Content[i+1])
			if err != nil {
				return Value{}, fmt.Errorf("field %q: %w", node.Content[i].Value, err)
			}
			fields.put(node.Content[i].Value, child)
		}
		return fields.value(), nil
	case yaml.SequenceNode:
		items := make([]Value, 0, len(node.Content))
		for i, c := range node.Content {
			child, err := decodeYAML(c)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			items = append(items, child)
		}
		return Value{kind: KindSequence, items: items}, nil
	case yaml.ScalarNode:
		switch node.ShortTag() {
		case "!!int", "!!float":
			var f float64
			if err := node.Decode(&f); err != nil {
				return Value{}, err
			}
			return Number(f), nil
		case "!!null":
			return Null(), nil
		default:
			return String(node.Value), nil
		}
	default:
		return Value{}, fmt.Errorf("unsupported yaml node kind %d", node.Kind)
	}
}

// MarshalYAML encodes v as a yaml node keeping mapping field order.
func (v Value) MarshalYAML() (any, error) {
	return v.yamlNode(), nil
}

func (v Value) yamlNode() *yaml.Node {
	switch v.kind {
	case KindNumber:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: formatYAMLFloat(v.num)}
	case KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.str}
	case KindSequence:
		n := &yaml.Node{Kind: yaml.SequenceNode}
		for _, item := range v.items {
			n.Content = append(n.Content, item.yamlNode())
		}
		return n
	case KindMapping:
		n := &yaml.Node{Kind: yaml.MappingNode}
		for _, f := range v.fields {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Name},
				f.Value.yamlNode())
		}
		return n
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

func formatYAMLFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}
