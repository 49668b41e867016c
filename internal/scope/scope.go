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

// Package scope implements the Language's lexical binding environment
// (spec.md §3 "Scope/Environment", §4.3): a parent-chained table of named
// bindings, each locked to the type of its initializer and to a fixed
// mutability, the way modules.go threads a chain of type and grouping
// tables through a *yang.Modules lookup.
package scope

import (
	"fmt"

	"github.com/mistvale/langrun/internal/value"
)

// binding is one entry in a Scope: the current value, whether it may be
// reassigned, and the type tag it was first bound with (spec.md §4.3
// "every binding is locked to the type of its initializer").
type binding struct {
	value    value.Value
	mutable  bool
	typeTag  string
}

// Scope is one lexical level of the binding environment. The zero value is
// not usable; use New or NewChild.
type Scope struct {
	parent   *Scope
	bindings map[string]*binding
}

// ScopeHandle marks *Scope as a value.ScopeHandle, letting a Pointer alias
// a binding in this Scope without internal/value importing internal/scope.
func (*Scope) ScopeHandle() {}

// New returns a fresh top-level Scope with no parent.
func New() *Scope {
	return &Scope{bindings: map[string]*binding{}}
}

// NewChild returns a Scope nested under parent, the way a block, function
// call, or lambda body opens a new binding level (spec.md §4.5.2).
func NewChild(parent *Scope) *Scope {
	return &Scope{parent: parent, bindings: map[string]*binding{}}
}

// Define introduces a binding in this Scope (not an ancestor), locked to
// v's type tag and to mutable. Redefining a name already bound in this
// same Scope silently overwrites it rather than erroring (spec.md §4.5.2
// "let": "Overwrites any prior binding in the same scope (no error on
// redefinition at a given level)"). Define never returns an error; it
// still returns one so callers that bind through it (e.g. the parameter
// binder) share a single error-checked call shape with Assign.
func (s *Scope) Define(name string, v value.Value, mutable bool) error {
	s.bindings[name] = &binding{value: v, mutable: mutable, typeTag: value.InferType(v)}
	return nil
}

// Get looks up name in this Scope and its ancestors, innermost first.
func (s *Scope) Get(name string) (value.Value, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if b, ok := cur.bindings[name]; ok {
			return b.value, true
		}
	}
	return nil, false
}

// Assign reassigns an existing binding found by walking to ancestors,
// enforcing the immutability and type-lock invariants of spec.md §4.5.2:
// a binding declared without `mutable` rejects any assignment, and every
// assignment (mutable or not) must carry the same type tag as the
// binding's initializer.
func (s *Scope) Assign(name string, v value.Value) error {
	for cur := s; cur != nil; cur = cur.parent {
		b, ok := cur.bindings[name]
		if !ok {
			continue
		}
		if !b.mutable {
			return fmt.Errorf("%q is not mutable", name)
		}
		tag := value.InferType(v)
		if tag != b.typeTag {
			return fmt.Errorf("cannot assign %s to %q, which holds %s", tag, name, b.typeTag)
		}
		b.value = v
		return nil
	}
	return fmt.Errorf("undefined name %q", name)
}

// Resolve returns the innermost Scope in which name is bound, for taking
// its address as a value.Pointer (spec.md §4.5.6 "*name").
func (s *Scope) Resolve(name string) (*Scope, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if _, ok := cur.bindings[name]; ok {
			return cur, true
		}
	}
	return nil, false
}

// GetLocal looks up name only in this exact Scope, used by Pointer reads
// and writes once Resolve has already found the owning Scope.
func (s *Scope) GetLocal(name string) (value.Value, bool) {
	b, ok := s.bindings[name]
	if !ok {
		return nil, false
	}
	return b.value, true
}

// AssignLocal writes through a Pointer directly into this exact Scope,
// bypassing the ancestor walk Assign does (the Scope is already known),
// but enforcing the same immutability and type-lock invariants Assign
// does (spec.md §4.5.6 "ptr.* = v ... respecting the binding's
// mutability ... exactly as a direct assignment would").
func (s *Scope) AssignLocal(name string, v value.Value) error {
	b, ok := s.bindings[name]
	if !ok {
		return fmt.Errorf("undefined name %q", name)
	}
	if !b.mutable {
		return fmt.Errorf("%q is not mutable", name)
	}
	tag := value.InferType(v)
	if tag != b.typeTag {
		return fmt.Errorf("cannot assign %s to %q, which holds %s", tag, name, b.typeTag)
	}
	b.value = v
	return nil
}

// Exports returns every binding defined directly in this Scope (not its
// ancestors), the way an imported module's top level is folded into a
// Struct named "Module" (spec.md §4.5.8).
func (s *Scope) Exports() map[string]value.Value {
	out := make(map[string]value.Value, len(s.bindings))
	for name, b := range s.bindings {
		out[name] = b.value
	}
	return out
}

// Clear empties this Scope's own bindings, marking it destroyed. A
// Pointer holding this Scope as its owner must never read or write
// through it again once its defining block has exited (spec.md §5
// "Pointers alias a specific scope and must never be used after that
// scope's destruction"); GetLocal/AssignLocal report name as undefined
// from this point on, the same as any other never-bound name.
func (s *Scope) Clear() {
	for name := range s.bindings {
		delete(s.bindings, name)
	}
}
