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

package kernel

import (
	"testing"

	"github.com/nohenry/x86intr/pkg/frame"
	"github.com/nohenry/x86intr/pkg/gdt"
	"github.com/nohenry/x86intr/pkg/sched"
)

type fakeAPIC struct{ eois int }

func (f *fakeAPIC) EOI() { f.eois++ }

type fakeFaults struct{}

func (fakeFaults) ReadFaultAddress() uintptr { return 0 }

type fakeSched struct{}

func (fakeSched) CurrentProcess() (sched.Process, bool) { return nil, false }

func newSubsystem() *InterruptSubsystem {
	return New(Opts{
		GDT:    gdt.Static{CodeSelector: 0x08, ISTIndex: 1},
		APIC:   &fakeAPIC{},
		Sched:  fakeSched{},
		Faults: fakeFaults{},
	})
}

func TestInstallMakesAllEntriesPresent(t *testing.T) {
	k := newSubsystem()
	if k.AllPresent() {
		t.Fatal("AllPresent() true before Install")
	}
	k.Install()
	if !k.AllPresent() {
		t.Error("AllPresent() false after Install")
	}
}

func TestInstallUsesGDTISTAndKernelDPL(t *testing.T) {
	k := newSubsystem()
	k.Install()

	g := &k.table[64]
	if g.DPL() != 0 {
		t.Errorf("device vector DPL = %d, want 0", g.DPL())
	}
	if g.IST() != 1 {
		t.Errorf("device vector IST = %d, want 1", g.IST())
	}
}

func TestRegisterHandlerCallbackReachesDispatch(t *testing.T) {
	k := newSubsystem()

	var claimed bool
	k.RegisterHandlerCallback(70, func(f *frame.ISRFrame) bool {
		claimed = true
		return true
	})

	k.Dispatch(&frame.ISRFrame{Vector: 70})

	if !claimed {
		t.Error("registered callback was not invoked through Dispatch")
	}
}
