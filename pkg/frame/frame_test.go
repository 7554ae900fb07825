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

package frame

import (
	"testing"

	"github.com/nohenry/x86intr/pkg/vector"
)

func TestNum(t *testing.T) {
	f := &ISRFrame{Vector: uint64(vector.PageFault)}
	if got := f.Num(); got != vector.PageFault {
		t.Errorf("Num() = %v, want %v", got, vector.PageFault)
	}
}

func TestRedirect(t *testing.T) {
	f := &ISRFrame{Rip: 0x1000}
	f.Redirect(0x2000)
	if f.Rip != 0x2000 {
		t.Errorf("Rip = %#x after Redirect, want %#x", f.Rip, 0x2000)
	}
}
