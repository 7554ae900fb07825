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

// Package kernel composes the five components from spec §2 into a single
// InterruptSubsystem, constructed once at boot (design note, spec §9). It
// is the only package that depends on all of idt, entry, registry,
// dispatch, apic, gdt, and sched; drivers only ever see RegisterHandler and
// RegisterHandlerCallback.
package kernel

import (
	"github.com/nohenry/x86intr/pkg/apic"
	"github.com/nohenry/x86intr/pkg/dispatch"
	"github.com/nohenry/x86intr/pkg/entry"
	"github.com/nohenry/x86intr/pkg/frame"
	"github.com/nohenry/x86intr/pkg/gdt"
	"github.com/nohenry/x86intr/pkg/idt"
	"github.com/nohenry/x86intr/pkg/registry"
	"github.com/nohenry/x86intr/pkg/sched"
	"github.com/nohenry/x86intr/pkg/vector"
)

// Opts configures a new InterruptSubsystem.
type Opts struct {
	// GDT answers the kernel code selector and IST index queries from
	// spec §6. Required.
	GDT gdt.Provider

	// APIC is where EOI is written at the end of every dispatch-to-registry
	// call. Required.
	APIC apic.Controller

	// Sched provides the current-process slot used for address-space
	// swapping. Required.
	Sched sched.Provider

	// Faults reads the architectural fault-address register during page
	// fault handling. Required.
	Faults dispatch.FaultAddressReader

	// ArenaSize bounds how many handlers can ever be registered across
	// all 256 vectors. Zero selects registry.DefaultArenaSize.
	ArenaSize int
}

// InterruptSubsystem is the kernel's interrupt dispatch core: a table, a
// registry, and a dispatcher wired together, plus the collaborators needed
// to install and load the table.
type InterruptSubsystem struct {
	table      idt.Table
	registry   *registry.Registry
	dispatcher *dispatch.Dispatcher
	gdt        gdt.Provider
}

// New constructs an InterruptSubsystem and installs dispatchTrampoline's
// target, but does not yet write any IDT entries or load the IDTR; call
// Install and then Load to finish booting the subsystem.
func New(opts Opts) *InterruptSubsystem {
	reg := registry.New(opts.ArenaSize)
	d := dispatch.New(reg, opts.APIC, opts.Sched, opts.Faults)

	k := &InterruptSubsystem{
		registry:   reg,
		dispatcher: d,
		gdt:        opts.GDT,
	}
	entry.SetDispatchFunc(func(f *frame.ISRFrame) *frame.ISRFrame {
		return d.Dispatch(f)
	})
	return k
}

// Install writes all 256 IDT entries, each pointing at its generated
// trampoline (spec §4.1). It must run before Load.
func (k *InterruptSubsystem) Install() {
	cs := idt.Selector(k.gdt.KernelCodeSelector())
	ist := int(k.gdt.InterruptISTIndex())

	for v := vector.Min; ; v++ {
		addr := uint64(entry.TrampolineAddr(uint8(v)))
		if v.HasErrorCode() {
			k.table.InstallKernelErrorISR(v, addr, cs, ist)
		} else {
			k.table.InstallKernelISR(v, addr, cs, ist)
		}
		if v == vector.Max {
			break
		}
	}
}

// Load loads this subsystem's IDT into the CPU's IDTR. base is the IDT's
// own linear address (the caller is responsible for pinning the table so
// its address does not move).
func (k *InterruptSubsystem) Load(base uint64) {
	idt.Load(k.table.Descriptor(base))
}

// AllPresent reports whether Install has run: every entry in the table has
// its present bit set (spec §8 invariant).
func (k *InterruptSubsystem) AllPresent() bool {
	return k.table.AllPresent()
}

// RegisterHandler appends desc to vector v's handler chain. This is the
// driver-facing API from spec §6.
func (k *InterruptSubsystem) RegisterHandler(v vector.Vector, desc registry.Descriptor) {
	k.registry.Register(v, desc)
}

// RegisterHandlerCallback is shorthand for
// RegisterHandler(v, registry.Descriptor{Callback: cb}).
func (k *InterruptSubsystem) RegisterHandlerCallback(v vector.Vector, cb registry.Callback) {
	k.registry.RegisterCallback(v, cb)
}

// Dispatch runs the dispatcher directly; exposed for tests that want to
// drive a synthetic interrupt without executing real assembly trampolines.
func (k *InterruptSubsystem) Dispatch(f *frame.ISRFrame) *frame.ISRFrame {
	return k.dispatcher.Dispatch(f)
}
