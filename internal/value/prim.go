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

import "strconv"

// Int is the 32-bit signed integer Prim variant.
type Int int32

func (Int) valueNode()        {}
func (v Int) Copy() Value     { return v }
func (Int) Retain(Heap)       {}
func (Int) Release(Heap)      {}
func (v Int) Truthy() bool    { return v != 0 }
func (Int) TypeTag() string   { return "int" }
func (v Int) String() string  { return strconv.FormatInt(int64(v), 10) }

// Str is the string Prim variant.
type Str string

func (Str) valueNode()        {}
func (v Str) Copy() Value     { return v }
func (Str) Retain(Heap)       {}
func (Str) Release(Heap)      {}
func (v Str) Truthy() bool    { return true }
func (Str) TypeTag() string   { return "string" }
func (v Str) String() string  { return string(v) }

// Bool is the bool Prim variant.
type Bool bool

func (Bool) valueNode()       {}
func (v Bool) Copy() Value    { return v }
func (Bool) Retain(Heap)      {}
func (Bool) Release(Heap)     {}
func (v Bool) Truthy() bool   { return bool(v) }
func (Bool) TypeTag() string  { return "bool" }
func (v Bool) String() string { return strconv.FormatBool(bool(v)) }
