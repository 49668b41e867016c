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

// Atom is an immutable interned symbolic name, written @name in source
// (spec.md §3 "Atom"). Copying an Atom returns the same underlying value:
// safe, since atoms are immutable, and cheap, since an Atom is just its
// name.
type Atom struct {
	Name string
}

func (Atom) valueNode()     {}
func (a Atom) Copy() Value  { return a }
func (Atom) Retain(Heap)    {}
func (Atom) Release(Heap)   {}
func (Atom) Truthy() bool   { return true }
func (Atom) TypeTag() string { return "unknown" }
func (a Atom) String() string { return "@" + a.Name }
