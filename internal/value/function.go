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

import "github.com/mistvale/langrun/internal/ast"

// Function is a first-class, possibly-closing-over-state callable (spec.md
// §3 "Function", §4.5.5). Captured holds every capture frozen at the
// moment the lambda expression was evaluated, keyed by name: a by-copy
// capture stores the copied Value directly, a by-address capture stores a
// Pointer aliasing the defining scope's binding, so a capture reads the
// same way regardless of how it was captured.
//
// A closure's captured values are released when the Function Value itself
// is released (mirroring every other composite variant); there is no
// separate finalizer tied to Go garbage collection of the Function struct
// beyond that. Captures that are themselves ClassRefs are retained when the
// closure is created and released alongside it, same as a Struct field.
type Function struct {
	Name     string // empty for an anonymous lambda
	Params   []string
	Body     []ast.Stmt
	Captured map[string]Value
}

func (Function) valueNode() {}

func (f Function) Copy() Value { return f }

func (f Function) Retain(h Heap) {
	for _, v := range f.Captured {
		v.Retain(h)
	}
}

func (f Function) Release(h Heap) {
	for _, v := range f.Captured {
		v.Release(h)
	}
}

func (Function) Truthy() bool    { return true }
func (Function) TypeTag() string { return "unknown" }

func (f Function) String() string {
	if f.Name != "" {
		return "<fun " + f.Name + ">"
	}
	return "<lambda>"
}
