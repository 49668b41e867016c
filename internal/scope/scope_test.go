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

package scope

import (
	"testing"

	"github.com/openconfig/gnmi/errdiff"

	"github.com/mistvale/langrun/internal/value"
)

func TestDefineAndGet(t *testing.T) {
	s := New()
	if err := s.Define("x", value.Int(10), false); err != nil {
		t.Fatalf("Define: %v", err)
	}
	got, ok := s.Get("x")
	if !ok || got != value.Int(10) {
		t.Errorf("Get(x) = %v, %v, want 10, true", got, ok)
	}
}

func TestRedefinitionOverwrites(t *testing.T) {
	s := New()
	if err := s.Define("x", value.Int(1), false); err != nil {
		t.Fatalf("Define: %v", err)
	}
	err := s.Define("x", value.Int(2), false)
	if diff := errdiff.Substring(err, ""); diff != "" {
		t.Error(diff)
	}
	if got, _ := s.Get("x"); got != value.Int(2) {
		t.Errorf("Get(x) = %v after redefinition, want 2", got)
	}
}

func TestImmutableAssignmentRejected(t *testing.T) {
	s := New()
	if err := s.Define("x", value.Int(1), false); err != nil {
		t.Fatalf("Define: %v", err)
	}
	err := s.Assign("x", value.Int(2))
	if diff := errdiff.Substring(err, "not mutable"); diff != "" {
		t.Error(diff)
	}
}

func TestMutableAssignmentSucceeds(t *testing.T) {
	s := New()
	if err := s.Define("x", value.Int(1), true); err != nil {
		t.Fatalf("Define: %v", err)
	}
	if err := s.Assign("x", value.Int(2)); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	got, _ := s.Get("x")
	if got != value.Int(2) {
		t.Errorf("Get(x) = %v, want 2", got)
	}
}

func TestTypeTagMismatchRejected(t *testing.T) {
	s := New()
	if err := s.Define("x", value.Int(1), true); err != nil {
		t.Fatalf("Define: %v", err)
	}
	err := s.Assign("x", value.Str("oops"))
	if diff := errdiff.Substring(err, "cannot assign"); diff != "" {
		t.Error(diff)
	}
}

func TestChildScopeSeesParentBindings(t *testing.T) {
	parent := New()
	if err := parent.Define("x", value.Int(5), true); err != nil {
		t.Fatalf("Define: %v", err)
	}
	child := NewChild(parent)
	got, ok := child.Get("x")
	if !ok || got != value.Int(5) {
		t.Errorf("child.Get(x) = %v, %v, want 5, true", got, ok)
	}

	if err := child.Assign("x", value.Int(9)); err != nil {
		t.Fatalf("child.Assign: %v", err)
	}
	got, _ = parent.Get("x")
	if got != value.Int(9) {
		t.Errorf("assignment through child did not reach parent: got %v, want 9", got)
	}
}

func TestAssignUndefinedNameFails(t *testing.T) {
	s := New()
	err := s.Assign("ghost", value.Int(1))
	if diff := errdiff.Substring(err, "undefined name"); diff != "" {
		t.Error(diff)
	}
}

func TestResolveFindsOwningScope(t *testing.T) {
	parent := New()
	parent.Define("x", value.Int(1), true)
	child := NewChild(parent)
	child.Define("y", value.Int(2), true)

	owner, ok := child.Resolve("x")
	if !ok || owner != parent {
		t.Errorf("Resolve(x) = %v, %v, want parent scope", owner, ok)
	}
	owner, ok = child.Resolve("y")
	if !ok || owner != child {
		t.Errorf("Resolve(y) = %v, %v, want child scope", owner, ok)
	}
	if _, ok := child.Resolve("ghost"); ok {
		t.Error("Resolve(ghost) found an owner, want none")
	}
}

func TestExportsOnlyDirectBindings(t *testing.T) {
	parent := New()
	parent.Define("outer", value.Int(1), false)
	child := NewChild(parent)
	child.Define("inner", value.Int(2), false)

	exports := child.Exports()
	if _, ok := exports["outer"]; ok {
		t.Error("Exports leaked a parent binding")
	}
	if v, ok := exports["inner"]; !ok || v != value.Int(2) {
		t.Errorf("Exports[inner] = %v, %v, want 2, true", v, ok)
	}
}
