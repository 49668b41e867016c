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

// Package value implements the Language's runtime Value model: the
// tagged-union of spec.md §3, collapsed the way spec.md §9 describes --
// "all polymorphism is dispatched on the variant tag" -- into one Go
// interface with one concrete type per variant, rather than a class
// hierarchy or a double-dispatch visitor.
package value

// Heap is the narrow interface the value package needs from a heap store,
// kept here (rather than importing internal/heap) so that package can
// depend on value.Struct without creating an import cycle: heap.Heap
// implements this interface structurally.
type Heap interface {
	Retain(Address)
	Release(Address) (freed bool, err error)
	Dereference(Address) (Struct, bool)
	Store(Address, Struct)
}

// Address is an opaque, equality-comparable heap address (spec.md §3
// "Heap"). It is a fixed-size byte array rather than a pointer so Value
// implementations can hold it by value with no aliasing surprises.
type Address [16]byte

// Value is the runtime value every expression evaluates to (spec.md §3
// "Runtime Value"). The method set is exactly the operations spec.md §4.5.1
// assigns to every variant: copy, retain, release, plus the truthiness,
// type-tag and stringification rules used throughout §4.5.
type Value interface {
	valueNode()

	// Copy returns the value to store into a new owner (spec.md §4.5.2
	// step 2). List/Struct/Tuple/Map deep-copy; ClassRef returns a new
	// handle to the same address; everything else returns itself.
	Copy() Value

	// Retain increments any heap refcounts reachable from this value
	// (spec.md §4.5.1).
	Retain(h Heap)

	// Release decrements any heap refcounts reachable from this value
	// (spec.md §4.5.1).
	Release(h Heap)

	// Truthy implements spec.md §4.5.3 "Truthiness".
	Truthy() bool

	// TypeTag implements the type-inference rule of spec.md §4.3.
	TypeTag() string

	// String renders the value the way `print` stringifies it (spec.md
	// §4.5.7); \n and \t inside Prim(string) are expanded by the caller
	// at print time, not here.
	String() string
}

// Equal implements spec.md §4.5.3 equality: by value for Prim/Atom/Tuple/
// Map/Pointer, by address for ClassRef. It is a free function (not a
// method) because comparing two values is a binary operation the way the
// grammar's `==` is, not a unary one.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Int:
		bv, ok := b.(Int)
		return ok && av == bv
	case Str:
		bv, ok := b.(Str)
		return ok && av == bv
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Atom:
		bv, ok := b.(Atom)
		return ok && av.Name == bv.Name
	case Tuple:
		bv, ok := b.(Tuple)
		return ok && equalSlices(av.Elems, bv.Elems)
	case List:
		bv, ok := b.(List)
		return ok && equalSlices(*av.Elems, *bv.Elems)
	case Map:
		bv, ok := b.(Map)
		return ok && equalMaps(av, bv)
	case Struct:
		bv, ok := b.(Struct)
		return ok && equalStructs(av, bv)
	case ClassRef:
		bv, ok := b.(ClassRef)
		return ok && av.Addr == bv.Addr
	case Pointer:
		bv, ok := b.(Pointer)
		return ok && av.Scope == bv.Scope && av.Name == bv.Name
	case Null:
		_, ok := b.(Null)
		return ok
	default:
		return false
	}
}

func equalSlices(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalMaps(a, b Map) bool {
	if len(a.Keys) != len(b.Keys) {
		return false
	}
	for i, k := range a.Keys {
		j := indexOfKey(b.Keys, k)
		if j < 0 || !Equal(a.Values[i], b.Values[j]) {
			return false
		}
	}
	return true
}

func indexOfKey(keys []Value, k Value) int {
	for i, kk := range keys {
		if Equal(kk, k) {
			return i
		}
	}
	return -1
}

func equalStructs(a, b Struct) bool {
	if a.TypeName != b.TypeName || len(a.Fields) != len(b.Fields) {
		return false
	}
	for name, v := range a.Fields {
		ov, ok := b.Fields[name]
		if !ok || !Equal(v, ov) {
			return false
		}
	}
	return true
}

// InferType implements the type-inference table of spec.md §4.3.
func InferType(v Value) string {
	return v.TypeTag()
}
