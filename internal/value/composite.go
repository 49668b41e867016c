// Copyright 2015 Google Inc.
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

package value

import "strings"

// Tuple is an ordered, fixed sequence of Values with value semantics
// (spec.md §3 "Tuple"): it is always deep-copied on assignment.
type Tuple struct {
	Elems []Value
}

func (Tuple) valueNode() {}

func (t Tuple) Copy() Value {
	out := make([]Value, len(t.Elems))
	for i, e := range t.Elems {
		out[i] = e.Copy()
	}
	return Tuple{Elems: out}
}

func (t Tuple) Retain(h Heap) {
	for _, e := range t.Elems {
		e.Retain(h)
	}
}

func (t Tuple) Release(h Heap) {
	for _, e := range t.Elems {
		e.Release(h)
	}
}

func (Tuple) Truthy() bool    { return true }
func (Tuple) TypeTag() string { return "unknown" }

func (t Tuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// List is an ordered, mutable sequence of Values with value semantics
// (spec.md §3 "List"). Elems is a pointer to a slice so that the native
// `push` (spec.md §4.5.10) can mutate a List in place through any alias of
// the same List Value produced before the mutation -- the Language has no
// notion of "the same list object" beyond that shared backing slice, since
// Lists are deep-copied on every assignment anyway.
type List struct {
	Elems *[]Value
}

// NewList returns an empty List.
func NewList() List {
	elems := []Value{}
	return List{Elems: &elems}
}

func (List) valueNode() {}

func (l List) Copy() Value {
	out := make([]Value, len(*l.Elems))
	for i, e := range *l.Elems {
		out[i] = e.Copy()
	}
	return List{Elems: &out}
}

func (l List) Retain(h Heap) {
	for _, e := range *l.Elems {
		e.Retain(h)
	}
}

func (l List) Release(h Heap) {
	for _, e := range *l.Elems {
		e.Release(h)
	}
}

func (List) Truthy() bool    { return true }
func (List) TypeTag() string { return "unknown" }

func (l List) String() string {
	parts := make([]string, len(*l.Elems))
	for i, e := range *l.Elems {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Map is an unordered key→value association with structurally-compared
// keys and value semantics (spec.md §3 "Map"). Keys/Values are parallel
// slices rather than a Go map because Value is not always a comparable Go
// key type (Tuple, List, Struct contain slices/maps themselves); lookups
// use value.Equal.
type Map struct {
	Keys   []Value
	Values []Value
}

func (Map) valueNode() {}

func (m Map) Copy() Value {
	keys := make([]Value, len(m.Keys))
	vals := make([]Value, len(m.Values))
	for i := range m.Keys {
		keys[i] = m.Keys[i].Copy()
		vals[i] = m.Values[i].Copy()
	}
	return Map{Keys: keys, Values: vals}
}

func (m Map) Retain(h Heap) {
	for i := range m.Keys {
		m.Keys[i].Retain(h)
		m.Values[i].Retain(h)
	}
}

func (m Map) Release(h Heap) {
	for i := range m.Keys {
		m.Keys[i].Release(h)
		m.Values[i].Release(h)
	}
}

func (Map) Truthy() bool    { return true }
func (Map) TypeTag() string { return "unknown" }

func (m Map) String() string {
	parts := make([]string, len(m.Keys))
	for i := range m.Keys {
		parts[i] = m.Keys[i].String() + " => " + m.Values[i].String()
	}
	return "#{" + strings.Join(parts, ", ") + "}"
}

// Get returns the value associated with key, if any.
func (m Map) Get(key Value) (Value, bool) {
	i := indexOfKey(m.Keys, key)
	if i < 0 {
		return nil, false
	}
	return m.Values[i], true
}

// Struct is a value-kind aggregate with named fields, copied by value
// (spec.md §3 "Struct"). It also serves as the Heap's payload type for
// class instances (spec.md §4.4), since a class instance is exactly a
// Struct reached indirectly through a ClassRef.
type Struct struct {
	TypeName string
	Fields   map[string]Value
}

func (Struct) valueNode() {}

func (s Struct) Copy() Value {
	fields := make(map[string]Value, len(s.Fields))
	for k, v := range s.Fields {
		fields[k] = v.Copy()
	}
	return Struct{TypeName: s.TypeName, Fields: fields}
}

func (s Struct) Retain(h Heap) {
	for _, v := range s.Fields {
		v.Retain(h)
	}
}

func (s Struct) Release(h Heap) {
	for _, v := range s.Fields {
		v.Release(h)
	}
}

func (Struct) Truthy() bool      { return true }
func (s Struct) TypeTag() string { return s.TypeName }

func (s Struct) String() string {
	parts := make([]string, 0, len(s.Fields))
	for k, v := range s.Fields {
		parts = append(parts, k+": "+v.String())
	}
	return s.TypeName + "{" + strings.Join(parts, ", ") + "}"
}
