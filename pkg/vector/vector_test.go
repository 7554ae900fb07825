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

package vector

import "testing"

func TestHasErrorCode(t *testing.T) {
	cases := []struct {
		v    Vector
		want bool
	}{
		{DivideByZero, false},
		{Breakpoint, false},
		{DoubleFault, true},
		{InvalidTSS, true},
		{SegmentNotPresent, true},
		{StackSegmentFault, true},
		{GeneralProtectionFault, true},
		{PageFault, true},
		{AlignmentCheck, true},
		{SecurityException, true},
		{40, false},
	}
	for _, c := range cases {
		if got := c.v.HasErrorCode(); got != c.want {
			t.Errorf("Vector(%d).HasErrorCode() = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestIsException(t *testing.T) {
	if !SecurityException.IsException() {
		t.Error("SecurityException should be an exception")
	}
	if Vector(32).IsException() {
		t.Error("Vector(32) should not be an exception")
	}
}

func TestStringKnownAndUnknown(t *testing.T) {
	if got := PageFault.String(); got != "page-fault" {
		t.Errorf("PageFault.String() = %q, want %q", got, "page-fault")
	}
	if got := Vector(200).String(); got != "vector-200" {
		t.Errorf("Vector(200).String() = %q, want %q", got, "vector-200")
	}
}

func TestNumVectorsAndBounds(t *testing.T) {
	if NumVectors != 256 {
		t.Errorf("NumVectors = %d, want 256", NumVectors)
	}
	if Min != 0 || Max != 255 {
		t.Errorf("Min/Max = %d/%d, want 0/255", Min, Max)
	}
}
