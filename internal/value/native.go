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

// Native wraps one of the host-provided builtins -- time, len, push, get,
// sleep, spawn (spec.md §4.5.10) -- as a callable Value. The evaluator
// builds the Call closure at startup, binding in whatever host
// collaborators (Heap, Clock, TaskLauncher) that builtin needs; the value
// package itself stays free of those dependencies.
type Native struct {
	Name string
	Call func(args []Value) (Value, error)
}

func (Native) valueNode() {}

func (n Native) Copy() Value { return n }

func (Native) Retain(Heap)  {}
func (Native) Release(Heap) {}
func (Native) Truthy() bool { return true }

func (Native) TypeTag() string { return "unknown" }

func (n Native) String() string { return "<native " + n.Name + ">" }
