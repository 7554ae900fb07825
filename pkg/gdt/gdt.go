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

// Package gdt declares the two queries the interrupt core makes of the
// GDT/paging collaborator, per spec §6: the kernel code selector placed in
// every IDT entry, and the IST index used by every architectural exception
// and device vector (spec §4.1, §5).
package gdt

// Provider answers the two questions the IDT installer needs.
type Provider interface {
	// KernelCodeSelector is the 16-bit selector for the kernel's 64-bit
	// code segment, placed in every IDT gate.
	KernelCodeSelector() uint16

	// InterruptISTIndex is the 3-bit Interrupt Stack Table index used for
	// every interrupt and exception vector, so a fault taken with a
	// corrupted kernel stack still runs on a known-good one.
	InterruptISTIndex() uint8
}

// Static is a Provider with fixed values, suitable for a kernel that
// allocates a single interrupt stack at boot and never changes it.
type Static struct {
	CodeSelector uint16
	ISTIndex     uint8
}

// KernelCodeSelector implements Provider.
func (s Static) KernelCodeSelector() uint16 { return s.CodeSelector }

// InterruptISTIndex implements Provider.
func (s Static) InterruptISTIndex() uint8 { return s.ISTIndex }
