// Copyright 2024 The x86intr Authors.
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

// Package registry implements the per-vector handler chain described in
// spec §4.4: an ordered, append-only sequence of handler descriptors per
// interrupt vector.
//
// Storage follows the design note in spec §9: rather than a
// general-purpose-allocator-backed slice per vector, handler nodes come
// from a single arena sized at construction time, linked into per-vector
// intrusive lists (the same head/tail-pointer idiom used throughout the
// reference corpus for allocation-free kernel collections). Once the arena
// is exhausted, Register and RegisterCallback silently drop the
// registration after logging a warning, per spec §7.
package registry

import (
	"github.com/nohenry/x86intr/pkg/frame"
	"github.com/nohenry/x86intr/pkg/klog"
	"github.com/nohenry/x86intr/pkg/sched"
	"github.com/nohenry/x86intr/pkg/vector"
)

// Callback handles one interrupt delivery. It returns true if it claimed
// the event, which stops the chain walk for this dispatch.
type Callback func(f *frame.ISRFrame) bool

// Descriptor is one entry in a handler chain: a callback plus an optional
// process whose address space must be active while the callback runs.
type Descriptor struct {
	Callback Callback
	Process  sched.Process // nil if no address-space swap is needed.
}

// node is one arena-backed link in a vector's intrusive handler chain.
type node struct {
	desc Descriptor
	next *node
}

// chain is a singly-linked, append-ordered list of handler nodes for one
// vector. Insertion order is preserved: pushBack always extends the tail.
type chain struct {
	head *node
	tail *node
}

func (c *chain) pushBack(n *node) {
	n.next = nil
	if c.tail == nil {
		c.head = n
		c.tail = n
		return
	}
	c.tail.next = n
	c.tail = n
}

// snapshot copies the chain's current descriptors into a freshly allocated
// slice. Walking a snapshot, rather than the live chain, means a callback
// that registers further handlers for the same vector cannot affect the
// in-progress walk (spec §4.5 tie-break).
func (c *chain) snapshot() []Descriptor {
	var out []Descriptor
	for n := c.head; n != nil; n = n.next {
		out = append(out, n.desc)
	}
	return out
}

// DefaultArenaSize is the number of handler nodes preallocated by New when
// no explicit size is given. It comfortably covers one handler per device
// vector with room for chained handlers on a few shared vectors.
const DefaultArenaSize = 512

// Registry is the handler registry: a fixed 256-slot array of handler
// chains, backed by a single preallocated node arena.
type Registry struct {
	chains [vector.NumVectors]chain
	arena  []node
	next   int // index of the next unused arena slot.
}

// New constructs a Registry whose arena holds up to capacity handler
// registrations across all 256 vectors.
func New(capacity int) *Registry {
	if capacity <= 0 {
		capacity = DefaultArenaSize
	}
	return &Registry{arena: make([]node, capacity)}
}

// Register appends desc to vector v's handler chain. If the arena is
// exhausted, the registration is logged and dropped (spec §7); the
// registrant is not otherwise notified.
func (r *Registry) Register(v vector.Vector, desc Descriptor) {
	if r.next >= len(r.arena) {
		klog.Warnf("registry: handler arena exhausted, dropping registration for vector %s", v)
		return
	}
	n := &r.arena[r.next]
	r.next++
	n.desc = desc
	r.chains[v].pushBack(n)
}

// RegisterCallback is shorthand for Register(v, Descriptor{Callback: cb}).
func (r *Registry) RegisterCallback(v vector.Vector, cb Callback) {
	r.Register(v, Descriptor{Callback: cb})
}

// Chain returns a snapshot of vector v's handler chain in registration
// order. An absent or empty chain both return a nil slice.
func (r *Registry) Chain(v vector.Vector) []Descriptor {
	return r.chains[v].snapshot()
}

// Len reports how many handlers are currently registered for v.
func (r *Registry) Len(v vector.Vector) int {
	n := 0
	for c := r.chains[v].head; c != nil; c = c.next {
		n++
	}
	return n
}

// Remaining reports how many more handlers can be registered across all
// vectors before the arena is exhausted.
func (r *Registry) Remaining() int {
	return len(r.arena) - r.next
}
