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

import "encoding/hex"

// ClassRef is a reference-semantics handle to a class instance living on
// the Heap (spec.md §3 "ClassRef", §4.4). Copying a ClassRef produces a new
// handle to the same address; the instance itself is never copied. Retain
// and Release forward to the Heap and drive its refcount.
type ClassRef struct {
	Addr     Address
	TypeName string
}

func (ClassRef) valueNode() {}

// Copy returns a new handle aliasing the same heap address. The caller is
// responsible for calling Retain on the result once it is bound (spec.md
// §4.5.2); Copy alone does not touch the refcount.
func (c ClassRef) Copy() Value { return c }

func (c ClassRef) Retain(h Heap) { h.Retain(c.Addr) }

func (c ClassRef) Release(h Heap) { h.Release(c.Addr) }

func (ClassRef) Truthy() bool { return true }

func (c ClassRef) TypeTag() string { return c.TypeName }

func (c ClassRef) String() string { return c.TypeName + "@" + hex.EncodeToString(c.Addr[:]) }
