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

package registry

import (
	"testing"

	"github.com/nohenry/x86intr/pkg/frame"
)

func TestChainOnAbsentVectorIsEmpty(t *testing.T) {
	r := New(8)
	if got := r.Chain(5); len(got) != 0 {
		t.Errorf("Chain() on unregistered vector = %v, want empty", got)
	}
}

func TestRegisterPreservesOrder(t *testing.T) {
	r := New(8)
	r.RegisterCallback(10, func(*frame.ISRFrame) bool { return false })
	r.RegisterCallback(10, func(*frame.ISRFrame) bool { return true })

	chain := r.Chain(10)
	if len(chain) != 2 {
		t.Fatalf("Chain() length = %d, want 2", len(chain))
	}
	if chain[0].Callback(nil) != false {
		t.Error("first handler should return false")
	}
	if chain[1].Callback(nil) != true {
		t.Error("second handler should return true")
	}
}

func TestRegisterAfterSnapshotDoesNotAffectInFlightWalk(t *testing.T) {
	r := New(8)
	r.RegisterCallback(10, func(*frame.ISRFrame) bool { return false })

	chain := r.Chain(10)
	r.RegisterCallback(10, func(*frame.ISRFrame) bool { return true })

	if len(chain) != 1 {
		t.Errorf("previously taken snapshot length = %d, want 1 (unaffected by later registration)", len(chain))
	}
	if len(r.Chain(10)) != 2 {
		t.Errorf("fresh snapshot length = %d, want 2", len(r.Chain(10)))
	}
}

func TestArenaExhaustionDropsRegistrationSilently(t *testing.T) {
	r := New(1)
	r.RegisterCallback(1, func(*frame.ISRFrame) bool { return false })
	r.RegisterCallback(2, func(*frame.ISRFrame) bool { return false })

	if got := r.Len(1); got != 1 {
		t.Errorf("Len(1) = %d, want 1", got)
	}
	if got := r.Len(2); got != 0 {
		t.Errorf("Len(2) = %d, want 0 (dropped due to arena exhaustion)", got)
	}
	if got := r.Remaining(); got != 0 {
		t.Errorf("Remaining() = %d, want 0", got)
	}
}

func TestDescriptorWithoutProcess(t *testing.T) {
	r := New(8)
	r.Register(20, Descriptor{Callback: func(*frame.ISRFrame) bool { return true }})

	chain := r.Chain(20)
	if len(chain) != 1 {
		t.Fatalf("Chain() length = %d, want 1", len(chain))
	}
	if chain[0].Process != nil {
		t.Error("Process should be nil when not supplied")
	}
}
