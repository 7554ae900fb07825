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

// Package sched declares the two-method capability interface the
// dispatcher needs from the scheduler: reading which process is current,
// and loading a process's address space. This keeps the interrupt core
// from depending on the scheduler's full API (spec §9 design note).
package sched

// Process identifies a scheduler node whose address space can be loaded.
type Process interface {
	// LoadAddressSpace updates the active page-table root (CR3 or
	// equivalent) to this process's address space.
	LoadAddressSpace()
}

// Provider is the scheduler collaborator: read access to the current
// process slot, which may itself be empty (e.g. during early boot, or
// while idling).
type Provider interface {
	// CurrentProcess returns the process the CPU is currently running
	// on behalf of, and false if there is none.
	CurrentProcess() (Process, bool)
}
