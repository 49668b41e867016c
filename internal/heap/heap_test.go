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

package heap

import (
	"sync"
	"testing"

	"github.com/openconfig/gnmi/errdiff"

	"github.com/mistvale/langrun/internal/value"
)

func TestAllocateDereference(t *testing.T) {
	h := New()
	addr := h.Allocate(value.Struct{TypeName: "Counter", Fields: map[string]value.Value{"n": value.Int(0)}})

	got, ok := h.Dereference(addr)
	if !ok {
		t.Fatal("Dereference: not found right after Allocate")
	}
	if got.TypeName != "Counter" {
		t.Errorf("TypeName = %q, want Counter", got.TypeName)
	}
}

func TestFreeAtZero(t *testing.T) {
	h := New()
	addr := h.Allocate(value.Struct{TypeName: "T"})
	h.Retain(addr) // the owning reference; Allocate starts at zero

	freed, err := h.Release(addr)
	if err != nil {
		t.Fatalf("Release: %v", err)
	}
	if !freed {
		t.Error("Release did not report freed on the owning release")
	}
	if _, ok := h.Dereference(addr); ok {
		t.Error("Dereference succeeded after the instance was freed")
	}
}

func TestRetainKeepsAlive(t *testing.T) {
	h := New()
	addr := h.Allocate(value.Struct{TypeName: "T"})
	h.Retain(addr) // the owning reference; Allocate starts at zero
	h.Retain(addr)

	if freed, err := h.Release(addr); err != nil || freed {
		t.Fatalf("first Release: freed=%v err=%v, want freed=false", freed, err)
	}
	if _, ok := h.Dereference(addr); !ok {
		t.Fatal("instance freed too early after only one of two releases")
	}

	if freed, err := h.Release(addr); err != nil || !freed {
		t.Fatalf("second Release: freed=%v err=%v, want freed=true", freed, err)
	}
}

func TestReleaseUnderflow(t *testing.T) {
	h := New()
	addr := h.Allocate(value.Struct{TypeName: "T"})
	h.Retain(addr) // the owning reference; Allocate starts at zero
	h.Release(addr)

	_, err := h.Release(addr)
	if diff := errdiff.Substring(err, "unknown or already-freed"); diff != "" {
		t.Error(diff)
	}
}

func TestStoreOverwritesInPlace(t *testing.T) {
	h := New()
	addr := h.Allocate(value.Struct{TypeName: "Counter", Fields: map[string]value.Value{"n": value.Int(0)}})
	h.Store(addr, value.Struct{TypeName: "Counter", Fields: map[string]value.Value{"n": value.Int(1)}})

	got, _ := h.Dereference(addr)
	if got.Fields["n"] != value.Int(1) {
		t.Errorf("n = %v, want 1", got.Fields["n"])
	}
}

func TestConcurrentRetainRelease(t *testing.T) {
	h := New()
	addr := h.Allocate(value.Struct{TypeName: "T"})
	h.Retain(addr) // the owning reference; Allocate starts at zero

	const n = 50
	for i := 0; i < n; i++ {
		h.Retain(addr)
	}

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.Release(addr)
		}()
	}
	wg.Wait()

	freed, err := h.Release(addr)
	if err != nil {
		t.Fatalf("final Release: %v", err)
	}
	if !freed {
		t.Error("final Release did not free the instance")
	}
	if h.Len() != 0 {
		t.Errorf("Len() = %d after every reference released, want 0", h.Len())
	}
}
