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

// Package frame defines the layout of the saved interrupt frame: the
// contiguous region of the interrupt stack that the common entry builds and
// the dispatcher reads and may mutate.
package frame

import "github.com/nohenry/x86intr/pkg/vector"

// ISRFrame is the saved frame described in spec §3. Field order matches the
// stack layout exactly, low address first: the seven general-purpose
// registers pushed by the common entry, the vector and error-code slots
// pushed by the trampoline, and the five words the CPU itself pushes on
// interrupt entry.
//
// The dispatcher receives a pointer into the interrupt stack; mutating a
// field here (most commonly Rip, to redirect execution, or Rsp, to switch
// stacks) takes effect when the common entry executes IRETQ.
type ISRFrame struct {
	Rdi uint64
	Rsi uint64
	Rdx uint64
	Rcx uint64
	Rbx uint64
	Rax uint64
	Rbp uint64

	Vector    uint64
	ErrorCode uint64

	Rip    uint64
	Cs     uint64
	Rflags uint64
	Rsp    uint64
	Ss     uint64
}

// Num returns the interrupt vector that produced this frame.
func (f *ISRFrame) Num() vector.Vector {
	return vector.Vector(f.Vector)
}

// Redirect sets Rip so that, on IRETQ, execution resumes at pc instead of
// the address the CPU originally pushed.
func (f *ISRFrame) Redirect(pc uint64) {
	f.Rip = pc
}
