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

package apic

import "testing"

func TestMMIOControllerEOIWritesZero(t *testing.T) {
	var reg uint32 = 0xFFFFFFFF
	c := NewMMIOController(&reg)

	c.EOI()

	if reg != 0 {
		t.Errorf("register = %#x after EOI, want 0", reg)
	}
}

func TestMMIOControllerImplementsController(t *testing.T) {
	var reg uint32
	var _ Controller = NewMMIOController(&reg)
}
