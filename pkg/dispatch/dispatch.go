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

// Package dispatch implements the high-level dispatcher invoked by the
// common entry (spec §4.5): vector classification, the fixed exception
// policy for breakpoint/GPF/page-fault, and the dispatch-to-registry path
// for everything else.
package dispatch

import (
	"github.com/nohenry/x86intr/pkg/apic"
	"github.com/nohenry/x86intr/pkg/frame"
	"github.com/nohenry/x86intr/pkg/klog"
	"github.com/nohenry/x86intr/pkg/registry"
	"github.com/nohenry/x86intr/pkg/sched"
	"github.com/nohenry/x86intr/pkg/vector"
)

// FaultAddressReader is the paging collaborator from spec §6: read access
// to the architectural fault-address register (CR2), consulted only while
// handling a page fault.
type FaultAddressReader interface {
	ReadFaultAddress() uintptr
}

// Dispatcher is the single high-level entry point invoked by both
// common-entry variants.
type Dispatcher struct {
	Registry *registry.Registry
	APIC     apic.Controller
	Sched    sched.Provider
	Faults   FaultAddressReader
}

// New constructs a Dispatcher from its collaborators.
func New(reg *registry.Registry, a apic.Controller, s sched.Provider, f FaultAddressReader) *Dispatcher {
	return &Dispatcher{Registry: reg, APIC: a, Sched: s, Faults: f}
}

// Dispatch is the dispatcher's sole entry point; it is what
// pkg/entry.dispatchTrampoline forwards to once installed. It returns a
// pointer to the frame the caller should resume from, per spec §4.3 step 3.
func (d *Dispatcher) Dispatch(f *frame.ISRFrame) *frame.ISRFrame {
	switch f.Num() {
	case vector.Breakpoint:
		klog.Panicf("Breakpoint")
	case vector.GeneralProtectionFault:
		klog.Panicf("GPF")
	case vector.PageFault:
		d.panicPageFault(f)
	}
	return d.dispatchToRegistry(f)
}

// panicPageFault reads the faulting address, decodes the error-code tags,
// and panics; it never returns.
func (d *Dispatcher) panicPageFault(f *frame.ISRFrame) {
	addr := d.Faults.ReadFaultAddress()
	tags := DecodePageFaultTags(uintptr(f.ErrorCode))
	klog.Panicf("page fault at %#x: %s", addr, joinTags(tags))
}

// pageFaultTagBit associates an error-code bit with the tag it contributes,
// in the exact order spec §4.5 requires.
type pageFaultTagBit struct {
	mask uintptr
	set  string // tag when the bit is set.
	// clear is only used for bit 1, which contributes a tag in both states.
	clear string
}

var pageFaultTagBits = []pageFaultTagBit{
	{mask: 1 << 0, set: "Page Protection"},
	{mask: 1 << 1, set: "Write", clear: "Read"},
	{mask: 1 << 2, set: "CPL=3"},
	{mask: 1 << 3, set: "Reserved Write"},
	{mask: 1 << 4, set: "Executed"},
}

// DecodePageFaultTags decodes a page-fault error code into the human
// readable tag sequence from spec §4.5: bit 0 contributes "Page
// Protection" only when set, bit 1 contributes "Write" when set or "Read"
// when clear (always exactly one tag), and bits 2-4 contribute a tag only
// when set.
func DecodePageFaultTags(errorCode uintptr) []string {
	var tags []string
	for _, b := range pageFaultTagBits {
		set := errorCode&b.mask != 0
		switch {
		case set:
			tags = append(tags, b.set)
		case b.clear != "":
			tags = append(tags, b.clear)
		}
	}
	return tags
}

func joinTags(tags []string) string {
	out := ""
	for i, t := range tags {
		if i > 0 {
			out += ", "
		}
		out += t
	}
	return out
}

// dispatchToRegistry implements spec §4.5's dispatch-to-registry path for
// every vector other than the three fixed-policy exceptions.
func (d *Dispatcher) dispatchToRegistry(f *frame.ISRFrame) *frame.ISRFrame {
	klog.Infof("interrupt: ss=%#x vector=%d rflags=%#x", f.Ss, f.Vector, f.Rflags)

	handled := false
	for _, desc := range d.Registry.Chain(f.Num()) {
		var (
			prev    sched.Process
			hadPrev bool
			swapped bool
		)
		if desc.Process != nil {
			prev, hadPrev = d.Sched.CurrentProcess()
			desc.Process.LoadAddressSpace()
			swapped = true
		}

		claimed := desc.Callback(f)

		// Unconditionally restore the snapshotted address space, even if
		// the callback returned false (spec §4.5 step 3).
		if swapped && hadPrev {
			prev.LoadAddressSpace()
		}

		if claimed {
			handled = true
			break
		}
	}

	if !handled {
		// Preserved from the reference source per spec §9's Open
		// Question: this logs ss, not vector, which is almost certainly
		// a bug, but the contract in spec §4.5 step 4 requires it.
		klog.Warnf("unhandled interrupt: ss=%#x", f.Ss)
	}

	// EOI is issued once per dispatch-to-registry call, regardless of
	// whether a handler claimed it; it is never reached for the three
	// panicking vectors above, which do not return.
	d.APIC.EOI()

	return f
}
