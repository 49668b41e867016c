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

// ScopeHandle is an opaque, comparable handle to the binding environment a
// Pointer aliases (spec.md §3 "Pointer"). It is declared here, rather than
// Pointer holding a *scope.Scope directly, so that internal/scope -- which
// must import internal/value to hold Values in its bindings -- does not
// also have to be imported back by value, which would be an import cycle.
// *scope.Scope implements this interface through its ScopeHandle marker
// method. The method is exported because an unexported interface method
// can only be implemented by types declared in this package.
type ScopeHandle interface {
	ScopeHandle()
}

// Pointer aliases a single named binding in a scope (spec.md §3 "Pointer",
// §4.5.6). It carries value semantics itself -- copying a Pointer copies
// the alias, not the aliased binding -- while reads and writes through it
// go to the one binding it names.
type Pointer struct {
	Scope ScopeHandle
	Name  string
}

func (Pointer) valueNode()    {}
func (p Pointer) Copy() Value { return p }
func (Pointer) Retain(Heap)   {}
func (Pointer) Release(Heap)  {}
func (Pointer) Truthy() bool  { return true }
func (Pointer) TypeTag() string { return "unknown" }

func (p Pointer) String() string { return "&" + p.Name }
