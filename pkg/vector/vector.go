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

// Package vector defines the x86_64 interrupt vector space: the 256
// architectural slots that index the IDT, the fixed set of vectors whose
// CPU-pushed frame carries an error code, and the named exceptions in
// 0..31.
package vector

// Vector is an interrupt vector number in [0, 255].
type Vector uint8

// Architectural exception vectors (0..31). Vectors 32..255 are device,
// IPI, or software interrupts and have no fixed meaning here.
const (
	DivideByZero Vector = iota
	Debug
	NMI
	Breakpoint
	Overflow
	BoundRangeExceeded
	InvalidOpcode
	DeviceNotAvailable
	DoubleFault
	CoprocessorSegmentOverrun
	InvalidTSS
	SegmentNotPresent
	StackSegmentFault
	GeneralProtectionFault
	PageFault
	_ // 15 is reserved.
	X87FloatingPointException
	AlignmentCheck
	MachineCheck
	SIMDFloatingPointException
	VirtualizationException
	_
	_
	_
	_
	_
	_
	_
	_
	_
	SecurityException
	_ // 31 is reserved.
)

// Min and Max are the inclusive bounds of the vector space.
const (
	Min Vector = 0
	Max Vector = 255
)

// NumVectors is the size of the IDT.
const NumVectors = int(Max) + 1

// LastException is the last vector treated as an architectural exception;
// vectors above it are dispatched to the registry unconditionally.
const LastException Vector = 31

// errorCodeVectors is the exact set from spec §3: vectors whose CPU-pushed
// frame includes an error code.
var errorCodeVectors = map[Vector]bool{
	8:  true, // DoubleFault
	10: true, // InvalidTSS
	11: true, // SegmentNotPresent
	12: true, // StackSegmentFault
	13: true, // GeneralProtectionFault
	14: true, // PageFault
	17: true, // AlignmentCheck
	21: true, // ControlProtectionException
	29: true, // VMM Communication Exception
	30: true, // SecurityException
}

// HasErrorCode reports whether the CPU pushes an error code for v. The
// trampoline for every other vector must synthesize a zero error-code slot.
func (v Vector) HasErrorCode() bool {
	return errorCodeVectors[v]
}

// IsException reports whether v is an architectural exception (0..31) as
// opposed to a device/IPI/software vector.
func (v Vector) IsException() bool {
	return v <= LastException
}

var names = map[Vector]string{
	DivideByZero:               "divide-by-zero",
	Debug:                      "debug",
	NMI:                        "nmi",
	Breakpoint:                 "breakpoint",
	Overflow:                   "overflow",
	BoundRangeExceeded:         "bound-range-exceeded",
	InvalidOpcode:              "invalid-opcode",
	DeviceNotAvailable:         "device-not-available",
	DoubleFault:                "double-fault",
	CoprocessorSegmentOverrun:  "coprocessor-segment-overrun",
	InvalidTSS:                 "invalid-tss",
	SegmentNotPresent:          "segment-not-present",
	StackSegmentFault:          "stack-segment-fault",
	GeneralProtectionFault:     "general-protection-fault",
	PageFault:                  "page-fault",
	X87FloatingPointException:  "x87-floating-point-exception",
	AlignmentCheck:             "alignment-check",
	MachineCheck:               "machine-check",
	SIMDFloatingPointException: "simd-floating-point-exception",
	VirtualizationException:    "virtualization-exception",
	SecurityException:         "security-exception",
}

// String returns a human-readable mnemonic for known exception vectors, or
// a generic "vector-N" for device/IPI/software vectors.
func (v Vector) String() string {
	if name, ok := names[v]; ok {
		return name
	}
	return "vector-" + itoa(uint8(v))
}

func itoa(n uint8) string {
	if n == 0 {
		return "0"
	}
	var buf [3]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
