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

import (
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kylelemons/godebug/pretty"
)

func line() int {
	_, _, l, _ := runtime.Caller(1)
	return l
}

// fakeHeap is a minimal value.Heap good enough for tests that only need to
// exercise Retain/Release call counts, not real storage.
type fakeHeap struct {
	retained, released int
}

func (h *fakeHeap) Retain(Address)                       { h.retained++ }
func (h *fakeHeap) Release(Address) (bool, error)         { h.released++; return false, nil }
func (h *fakeHeap) Dereference(Address) (Struct, bool)    { return Struct{}, false }
func (h *fakeHeap) Store(Address, Struct)                 {}

// TestCopyIdempotence checks that Copy is idempotent for every variant
// that carries value semantics: copying twice yields the same observable
// value as copying once, and in particular copying never mutates the
// original's reachable state.
func TestCopyIdempotence(t *testing.T) {
	for _, tt := range []struct {
		line int
		v    Value
	}{
		{line(), Int(7)},
		{line(), Str("hi")},
		{line(), Bool(true)},
		{line(), Atom{Name: "ok"}},
		{line(), Tuple{Elems: []Value{Int(1), Str("a")}}},
		{line(), NewList()},
		{line(), Map{Keys: []Value{Str("k")}, Values: []Value{Int(1)}}},
		{line(), Struct{TypeName: "P", Fields: map[string]Value{"x": Int(1)}}},
	} {
		once := tt.v.Copy()
		twice := once.Copy()
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Errorf("case at line %d: Copy not idempotent for %T: %s", tt.line, tt.v, diff)
		}
		if !Equal(tt.v, once) {
			t.Errorf("case at line %d: Copy(%v) = %v, want an equal value", tt.line, tt.v, once)
		}
	}
}

func TestListCopyIsIndependent(t *testing.T) {
	orig := NewList()
	*orig.Elems = append(*orig.Elems, Int(1), Int(2))

	cp := orig.Copy().(List)
	*cp.Elems = append(*cp.Elems, Int(3))

	if len(*orig.Elems) != 2 {
		t.Errorf("mutating the copy affected the original: %v", *orig.Elems)
	}
}

func TestStructCopyIsIndependent(t *testing.T) {
	orig := Struct{TypeName: "Box", Fields: map[string]Value{"v": Int(1)}}
	cp := orig.Copy().(Struct)
	cp.Fields["v"] = Int(99)

	if orig.Fields["v"] != Int(1) {
		t.Errorf("mutating the copy's fields affected the original: %v", orig.Fields["v"])
	}
}

func TestClassRefCopyAliasesSameAddress(t *testing.T) {
	addr := Address{1, 2, 3}
	orig := ClassRef{Addr: addr, TypeName: "Counter"}
	cp := orig.Copy().(ClassRef)

	if cp.Addr != orig.Addr {
		t.Errorf("ClassRef.Copy() changed the address: got %v, want %v", cp.Addr, orig.Addr)
	}
}

func TestEqualByValueVsByAddress(t *testing.T) {
	if !Equal(Tuple{Elems: []Value{Int(1), Int(2)}}, Tuple{Elems: []Value{Int(1), Int(2)}}) {
		t.Error("want structurally equal tuples to be Equal")
	}

	a := ClassRef{Addr: Address{1}, TypeName: "C"}
	b := ClassRef{Addr: Address{2}, TypeName: "C"}
	if Equal(a, b) {
		t.Error("want distinct addresses to not be Equal, even with the same type")
	}
	if !Equal(a, a) {
		t.Error("want a ClassRef Equal to itself")
	}
}

func TestMapGet(t *testing.T) {
	m := Map{Keys: []Value{Str("a"), Str("b")}, Values: []Value{Int(1), Int(2)}}
	if v, ok := m.Get(Str("b")); !ok || v != Int(2) {
		t.Errorf("Get(b) = %v, %v, want 2, true", v, ok)
	}
	if _, ok := m.Get(Str("missing")); ok {
		t.Error("Get(missing) found a value, want none")
	}
}

func TestRetainReleaseBalance(t *testing.T) {
	h := &fakeHeap{}
	s := Struct{TypeName: "Pair", Fields: map[string]Value{
		"a": ClassRef{Addr: Address{1}, TypeName: "A"},
		"b": ClassRef{Addr: Address{2}, TypeName: "B"},
	}}
	s.Retain(h)
	s.Release(h)
	if h.retained != h.released {
		t.Errorf("retained %d times, released %d times, want equal", h.retained, h.released)
	}
	if h.retained != 2 {
		t.Errorf("retained %d reachable ClassRefs, want 2", h.retained)
	}
}

func TestTruthiness(t *testing.T) {
	for _, tt := range []struct {
		v    Value
		want bool
	}{
		{Int(0), false},
		{Int(1), true},
		{Str(""), true},
		{Bool(false), false},
		{Bool(true), true},
		{NewList(), true},
	} {
		if got := tt.v.Truthy(); got != tt.want {
			t.Errorf("%#v.Truthy() = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestTypeTags(t *testing.T) {
	for _, tt := range []struct {
		v    Value
		want string
	}{
		{Int(1), "int"},
		{Str("s"), "string"},
		{Bool(true), "bool"},
		{Struct{TypeName: "Point"}, "Point"},
		{ClassRef{TypeName: "Counter"}, "Counter"},
		{Atom{Name: "x"}, "unknown"},
		{NewList(), "unknown"},
	} {
		if got := tt.v.TypeTag(); got != tt.want {
			t.Errorf("%#v.TypeTag() = %q, want %q\n%s", tt.v, got, tt.want, pretty.Sprint(tt.v))
		}
	}
}
