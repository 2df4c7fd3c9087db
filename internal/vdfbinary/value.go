// ModBridge
// Copyright (c) 2026 The ModBridge Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of ModBridge.
//
// ModBridge is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// ModBridge is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with ModBridge.  If not, see <http://www.gnu.org/licenses/>.

package vdfbinary

import "strings"

// Kind identifies the wire type of a Value.
type Kind uint8

const (
	KindMap Kind = iota
	KindString
	KindInt32
	KindFloat32
	KindUint64
)

// Value is a single binary VDF value. The zero Value is an empty string.
type Value struct {
	m    *Map
	str  string
	num  uint64
	f    float32
	kind Kind
}

func String(s string) Value { return Value{kind: KindString, str: s} }

// Int32 holds the raw 32 bits of a 0x02 field. Steam stores some of these
// as signed, so callers reinterpret as needed.
func Int32(n uint32) Value { return Value{kind: KindInt32, num: uint64(n)} }

func Uint64(n uint64) Value { return Value{kind: KindUint64, num: n} }

func Float32(f float32) Value { return Value{kind: KindFloat32, f: f} }

// Bool encodes a flag the way Steam does, as a 0/1 int32.
func Bool(b bool) Value {
	if b {
		return Int32(1)
	}
	return Int32(0)
}

func MapValue(m *Map) Value {
	if m == nil {
		m = NewMap()
	}
	return Value{kind: KindMap, m: m}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

func (v Value) AsUint32() (uint32, bool) {
	return uint32(v.num), v.kind == KindInt32
}

func (v Value) AsUint64() (uint64, bool) {
	return v.num, v.kind == KindUint64
}

func (v Value) AsFloat32() (float32, bool) {
	return v.f, v.kind == KindFloat32
}

func (v Value) AsBool() (bool, bool) {
	return v.num != 0, v.kind == KindInt32
}

func (v Value) AsMap() (*Map, bool) {
	return v.m, v.kind == KindMap
}

// Field is one key/value pair of a Map.
type Field struct {
	Key   string
	Value Value
}

// Map is an ordered binary VDF map. Keys keep their original case;
// lookups ignore case.
type Map struct {
	fields []Field
}

func NewMap() *Map {
	return &Map{}
}

func (m *Map) Len() int {
	return len(m.fields)
}

// Fields returns a copy of the map's fields in file order.
func (m *Map) Fields() []Field {
	out := make([]Field, len(m.fields))
	copy(out, m.fields)
	return out
}

func (m *Map) index(key string) int {
	for i, f := range m.fields {
		if strings.EqualFold(f.Key, key) {
			return i
		}
	}
	return -1
}

func (m *Map) Get(key string) (Value, bool) {
	i := m.index(key)
	if i < 0 {
		return Value{}, false
	}
	return m.fields[i].Value, true
}

// Set replaces the value of an existing key in place, keeping its position
// and spelling, or appends a new field.
func (m *Map) Set(key string, v Value) {
	if i := m.index(key); i >= 0 {
		m.fields[i].Value = v
		return
	}
	m.fields = append(m.fields, Field{Key: key, Value: v})
}

func (m *Map) GetMap(key string) (*Map, bool) {
	v, ok := m.Get(key)
	if !ok {
		return nil, false
	}
	return v.AsMap()
}

func (m *Map) GetString(key string) (string, bool) {
	v, ok := m.Get(key)
	if !ok {
		return "", false
	}
	return v.AsString()
}

func (m *Map) GetUint(key string) (uint32, bool) {
	v, ok := m.Get(key)
	if !ok {
		return 0, false
	}
	return v.AsUint32()
}

func (m *Map) GetBool(key string) (bool, bool) {
	v, ok := m.Get(key)
	if !ok {
		return false, false
	}
	return v.AsBool()
}
