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

// Null is the value a function returns when it falls off the end of its
// body without an explicit `return` (spec.md §4.5.4). It is truthy, like
// every value besides Prim(false) and Prim(0).
type Null struct{}

func (Null) valueNode()      {}
func (Null) Copy() Value     { return Null{} }
func (Null) Retain(Heap)     {}
func (Null) Release(Heap)    {}
func (Null) Truthy() bool    { return true }
func (Null) TypeTag() string { return "unknown" }
func (Null) String() string  { return "null" }
