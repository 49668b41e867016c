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

// Package evalerr defines the Language's runtime error taxonomy (spec.md
// §7): one concrete Go type per error category, each carrying the source
// line it was raised at, rather than a single sentinel or an opaque
// fmt.Errorf string. Evaluator code constructs these with the New*
// functions below, the way modules.go builds its errs []error slice from
// typed causes; the native functions (len, push, get, sleep, spawn) are
// the exception and report bad arguments with plain fmt.Errorf values.
package evalerr

import "fmt"

// SyntaxError reports a lexer or parser failure (spec.md §7 "Syntax
// Error"). The lexer and parser packages report these as plain strings;
// evalerr.SyntaxError exists for callers that want to carry one further,
// e.g. an import that fails to parse its source.
type SyntaxError struct {
	Line int
	Msg  string
}

func NewSyntaxError(line int, format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{Line: line, Msg: fmt.Sprintf(format, args...)}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: syntax error: %s", e.Line, e.Msg)
}

// NameError reports a reference to an undefined name (spec.md §7 "Name
// Error").
type NameError struct {
	Line int
	Name string
}

func NewNameError(line int, name string) *NameError {
	return &NameError{Line: line, Name: name}
}

func (e *NameError) Error() string {
	return fmt.Sprintf("line %d: undefined name %q", e.Line, e.Name)
}

// TypeError reports a type-tag mismatch: a reassignment whose type does
// not match the binding's locked type, a field access on a non-aggregate,
// an operator applied to an incompatible operand (spec.md §7 "Type
// Error").
type TypeError struct {
	Line int
	Msg  string
}

func NewTypeError(line int, format string, args ...interface{}) *TypeError {
	return &TypeError{Line: line, Msg: fmt.Sprintf(format, args...)}
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("line %d: type error: %s", e.Line, e.Msg)
}

// MemoryError reports a heap refcount invariant violation: an
// over-release, or a dereference of a freed or unknown address (spec.md
// §7 "Memory Error", testable property "heap dereference-iff-live").
type MemoryError struct {
	Line int
	Msg  string
}

func NewMemoryError(line int, format string, args ...interface{}) *MemoryError {
	return &MemoryError{Line: line, Msg: fmt.Sprintf(format, args...)}
}

func (e *MemoryError) Error() string {
	return fmt.Sprintf("line %d: memory error: %s", e.Line, e.Msg)
}

// ImportError reports a failure to locate, read, or evaluate an imported
// module (spec.md §7 "Import Error", §4.5.8).
type ImportError struct {
	Line   int
	Module string
	Msg    string
}

func NewImportError(line int, module, format string, args ...interface{}) *ImportError {
	return &ImportError{Line: line, Module: module, Msg: fmt.Sprintf(format, args...)}
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("line %d: cannot import %q: %s", e.Line, e.Module, e.Msg)
}

// IndexError reports an out-of-range List or Tuple access (spec.md §7
// "Index Error").
type IndexError struct {
	Line  int
	Index int
	Len   int
}

func NewIndexError(line, index, length int) *IndexError {
	return &IndexError{Line: line, Index: index, Len: length}
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("line %d: index %d out of range for length %d", e.Line, e.Index, e.Len)
}

// ImmutableError reports an assignment to a binding that was never
// declared `mutable` (spec.md §7 "Immutable Error", testable property
// "immutable-assignment rejection").
type ImmutableError struct {
	Line int
	Name string
}

func NewImmutableError(line int, name string) *ImmutableError {
	return &ImmutableError{Line: line, Name: name}
}

func (e *ImmutableError) Error() string {
	return fmt.Sprintf("line %d: %q is not mutable", e.Line, e.Name)
}
