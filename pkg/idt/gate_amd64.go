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

// Package idt implements the x86_64 Interrupt Descriptor Table: the
// 256-entry array of bit-packed gate descriptors and the packed
// {limit, base} pair loaded into IDTR.
package idt

// Selector is a code segment selector, as placed in a gate descriptor.
type Selector uint16

// gateType values for a Gate64's type field.
const (
	gateTypeInterrupt = 0xE
	gateTypeTrap      = 0xF
	gatePresent       = 1 << 15
)

// Gate64 is a single 64-bit interrupt, trap, or task gate descriptor: 128
// bits laid out exactly per the x86_64 architecture manual.
//
//	bits[0]: offset[0:16] | selector[16:32]
//	bits[1]: type/attr[0:16] | offset[16:32]
//	bits[2]: offset[32:64]
//	bits[3]: reserved
type Gate64 struct {
	bits [4]uint32
}

// set writes a present gate of the given gate type, with the given code
// segment selector, IST index, and DPL, pointing at rip.
func (g *Gate64) set(cs Selector, rip uint64, dpl int, ist int, gateType uint32) {
	g.bits[0] = uint32(cs)<<16 | uint32(rip)&0xFFFF
	g.bits[1] = uint32(rip)&0xFFFF0000 |
		gatePresent |
		uint32(dpl&0x3)<<13 |
		gateType<<8 |
		uint32(ist)&0x7
	g.bits[2] = uint32(rip >> 32)
	g.bits[3] = 0
}

// SetInterrupt installs an interrupt gate (type 0xE): present, with the
// given code segment selector, DPL, and IST index, pointing at rip.
func (g *Gate64) SetInterrupt(cs Selector, rip uint64, dpl int, ist int) {
	g.set(cs, rip, dpl, ist, gateTypeInterrupt)
}

// SetTrap installs a trap gate (type 0xF); otherwise identical to
// SetInterrupt.
func (g *Gate64) SetTrap(cs Selector, rip uint64, dpl int, ist int) {
	g.set(cs, rip, dpl, ist, gateTypeTrap)
}

// Present reports whether the descriptor's present bit is set.
func (g *Gate64) Present() bool {
	return g.bits[1]&gatePresent != 0
}

// Offset reconstructs the 64-bit handler address encoded in the gate.
func (g *Gate64) Offset() uint64 {
	low := uint64(g.bits[0] & 0xFFFF)
	mid := uint64(g.bits[1]&0xFFFF0000) >> 16
	high := uint64(g.bits[2]) << 32
	return high | mid<<16 | low
}

// IST returns the 3-bit interrupt-stack-table index encoded in the gate; 0
// means "use the current stack".
func (g *Gate64) IST() int {
	return int(g.bits[1] & 0x7)
}

// DPL returns the descriptor privilege level required to invoke this gate
// from software (e.g. via INT n); hardware-delivered exceptions ignore it.
func (g *Gate64) DPL() int {
	return int((g.bits[1] >> 13) & 0x3)
}
