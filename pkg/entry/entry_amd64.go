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

// Package entry holds the amd64 trampoline bank and the two common-entry
// procedures described in spec §4.2 and §4.3. The trampolines themselves
// are generated (see pkg/entry/gen) into stubs_amd64.s rather than
// hand-written; this file only declares the Go-visible symbols that the
// generated assembly defines and calls into.
package entry

import "github.com/nohenry/x86intr/pkg/frame"

// TrampolineAddr returns the entry address of the generated trampoline for
// v, for installation into an IDT gate. It is implemented in
// stubs_amd64.s via the per-vector label table.
func TrampolineAddr(v uint8) uintptr

// dispatchFn is the installed dispatcher, invoked by dispatchTrampoline.
// It is set once, at boot, by SetDispatchFunc.
var dispatchFn func(*frame.ISRFrame) *frame.ISRFrame

// SetDispatchFunc installs the function that dispatchTrampoline forwards
// to. It must be called before interrupts are enabled.
func SetDispatchFunc(fn func(*frame.ISRFrame) *frame.ISRFrame) {
	dispatchFn = fn
}

// dispatchTrampoline is called from the generated assembly (commonEntry,
// see stubs_amd64.s) with a pointer to the saved frame built on the
// interrupt stack. Per spec §4.3 step 3, its return value is the frame the
// caller should resume from; this is ordinarily the same pointer, but the
// contract allows returning a different one to perform a context switch.
//
//go:nosplit
func dispatchTrampoline(f *frame.ISRFrame) *frame.ISRFrame {
	if dispatchFn == nil {
		return f
	}
	return dispatchFn(f)
}
