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

//go:build amd64

package idt

import "github.com/nohenry/x86intr/pkg/vector"

// Table is the 256-entry Interrupt Descriptor Table.
type Table [vector.NumVectors]Gate64

// Descriptor is the packed {limit, base} pair loaded via LIDT.
type Descriptor struct {
	Limit uint16
	Base  uint64
}

// Descriptor computes the IDTR contents for t: limit is
// 256*sizeof(Gate64)-1, base is t's address.
func (t *Table) Descriptor(base uint64) Descriptor {
	return Descriptor{
		Limit: uint16(len(*t)*16 - 1),
		Base:  base,
	}
}

// breakpointDPL is the privilege level granted to vectors that must be
// reachable from user code via INT3/INTO (spec §9 supplement: ring-3
// breakpoints for kernel debuggers).
func breakpointDPL(v vector.Vector) int {
	if v == vector.Breakpoint || v == vector.Overflow {
		return 3
	}
	return 0
}

// InstallKernelISR writes a present interrupt gate for a non-error-code
// vector: kernel code selector, gate type 0xE, the DPL from breakpointDPL,
// and the given IST index.
func (t *Table) InstallKernelISR(v vector.Vector, entryPoint uint64, cs Selector, ist int) {
	t[v].SetInterrupt(cs, entryPoint, breakpointDPL(v), ist)
}

// InstallKernelErrorISR is equivalent to InstallKernelISR; per spec §4.1 and
// the Open Question in §9, the distinction is purely that the caller knows
// the trampoline for this vector will not synthesize an error code, and
// this kernel gives both paths the same IST (not IST=0).
func (t *Table) InstallKernelErrorISR(v vector.Vector, entryPoint uint64, cs Selector, ist int) {
	t[v].SetInterrupt(cs, entryPoint, breakpointDPL(v), ist)
}

// AllPresent reports whether every entry in t has its present bit set; used
// to check the invariant that the table is fully initialized before the
// IDTR is loaded.
func (t *Table) AllPresent() bool {
	for i := range t {
		if !t[i].Present() {
			return false
		}
	}
	return true
}
