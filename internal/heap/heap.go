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

// Package heap implements the concurrent, reference-counted store that
// backs every class instance (spec.md §3 "Heap", §4.4). It implements
// value.Heap structurally; nothing in internal/value imports this package,
// so class instances -- themselves internal/value.Struct payloads -- can
// flow in one direction only and avoid an import cycle.
package heap

import (
	"crypto/rand"
	"fmt"
	"sync"

	"github.com/mistvale/langrun/internal/value"
)

// cell is one heap slot: the stored Struct payload and its live refcount.
// A freshly allocated cell is live at a refcount of zero; a Release that
// brings the count back to zero frees it and removes it from the map, and
// Dereference on a freed address reports not-found rather than handing
// back stale data.
type cell struct {
	data  value.Struct
	count int64
	live  bool
}

// Heap is a concurrent reference-counted store of value.Struct instances,
// addressed by value.Address. All methods are safe for concurrent use by
// multiple evaluator goroutines sharing one Heap across a `spawn` (spec.md
// §4.5.10 "spawn").
type Heap struct {
	mu    sync.Mutex
	cells map[value.Address]*cell
}

// New returns an empty Heap.
func New() *Heap {
	return &Heap{cells: map[value.Address]*cell{}}
}

// Allocate stores data at a freshly generated address with a refcount of
// zero and returns that address (spec.md §4.5.3 "new"): the instance is
// unowned until whatever holds the returned ClassRef is itself stored into
// a binding, at which point the first Retain brings the count to one.
func (h *Heap) Allocate(data value.Struct) value.Address {
	addr := newAddress()
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cells[addr] = &cell{data: data, count: 0, live: true}
	return addr
}

// Retain increments the refcount at addr (spec.md §4.5.1). Retaining a
// freed or unknown address is a no-op: it can only happen if the caller
// already produced a dangling ClassRef, which is itself a bug in the
// evaluator rather than something a retain/release pair should mask
// silently in production, but crashing the whole interpreter over a
// counting slip is worse, so this stays quiet and lets Dereference surface
// the problem at the point of actual use.
func (h *Heap) Retain(addr value.Address) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.cells[addr]; ok && c.live {
		c.count++
	}
}

// Release decrements the refcount at addr and frees the slot once it
// reaches zero (spec.md §4.5.1, testable property "heap dereference-iff-
// live"). freed reports whether this call was the one that freed the
// instance. Releasing an address whose count is already zero, or that is
// unknown, returns an error: that is a genuine over-release, distinct from
// the Retain case, because it always indicates the evaluator dropped a
// reference it never should have held.
func (h *Heap) Release(addr value.Address) (freed bool, err error) {
	h.mu.Lock()
	c, ok := h.cells[addr]
	if !ok || !c.live {
		h.mu.Unlock()
		return false, fmt.Errorf("release of unknown or already-freed address")
	}
	c.count--
	if c.count < 0 {
		h.mu.Unlock()
		return false, fmt.Errorf("refcount underflow")
	}
	if c.count == 0 {
		c.live = false
		delete(h.cells, addr)
		payload := c.data
		h.mu.Unlock()
		// Free: remove the mapping, then recursively release every field of
		// the payload (spec.md §4.4) -- done with mu already released,
		// since a field's own Release may re-enter this Heap.
		payload.Release(h)
		return true, nil
	}
	h.mu.Unlock()
	return false, nil
}

// Dereference returns the Struct stored at addr and whether it is still
// live. A freed or unknown address reports ok=false rather than a zero
// Struct masquerading as real data.
func (h *Heap) Dereference(addr value.Address) (value.Struct, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.cells[addr]
	if !ok || !c.live {
		return value.Struct{}, false
	}
	return c.data, true
}

// Store overwrites the Struct at addr in place, for field writes through a
// ClassRef (spec.md §4.5.3 "a.b = v" where a is a class instance). Storing
// to a freed or unknown address is a no-op for the same reason Retain is:
// the evaluator should never produce this case from a valid ClassRef.
func (h *Heap) Store(addr value.Address, data value.Struct) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.cells[addr]; ok && c.live {
		c.data = data
	}
}

// Len reports the number of live instances currently on the heap, mostly
// useful for tests asserting that every retain/release pair balances.
func (h *Heap) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.cells)
}

func newAddress() value.Address {
	var a value.Address
	if _, err := rand.Read(a[:]); err != nil {
		panic("heap: crypto/rand unavailable: " + err.Error())
	}
	return a
}
