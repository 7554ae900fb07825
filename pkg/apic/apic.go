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

// Package apic is the Local APIC collaborator from spec §6. The interrupt
// core uses exactly one operation from it: writing 0 to the EOI register
// at the end of a dispatch-to-registry call. The I/O APIC, vector routing,
// and remapping all live outside this package; the PIC is not programmed
// here at all (spec §1's stated non-goal).
package apic

import "sync/atomic"

// Controller is the capability the dispatcher needs from the Local APIC.
type Controller interface {
	// EOI signals end-of-interrupt by writing 0 to the Local APIC's EOI
	// register.
	EOI()
}

// eoiValue is the architectural value written to end an interrupt; the
// Local APIC ignores anything else written to this register.
const eoiValue = 0

// MMIOController is a Controller backed by a memory-mapped LAPIC EOI
// register, in the style of the reference corpus's I/O APIC register
// adapter (a raw pointer into the LAPIC's MMIO page, written with an
// atomic store so the write is ordered with respect to other CPUs).
type MMIOController struct {
	reg *uint32
}

// NewMMIOController wraps a pointer to the LAPIC's EOI register, typically
// the mapped LAPIC base plus offset 0xB0.
func NewMMIOController(reg *uint32) *MMIOController {
	return &MMIOController{reg: reg}
}

// EOI writes the EOI value via an atomic store.
func (m *MMIOController) EOI() {
	atomic.StoreUint32(m.reg, eoiValue)
}
