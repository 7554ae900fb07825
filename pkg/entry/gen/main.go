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

// gen emits pkg/entry/stubs_amd64.s: 256 naked trampolines plus the two
// common-entry procedures described in spec §4.2 and §4.3.
//
// The source repo this kernel is modeled on hand-writes (or macro-expands)
// one near-identical function per vector; per the design note in spec §9,
// this kernel generates that file instead. Run with:
//
//	go run ./pkg/entry/gen > pkg/entry/stubs_amd64.s
package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/nohenry/x86intr/pkg/vector"
)

const header = `// Code generated by pkg/entry/gen. DO NOT EDIT.

#include "textflag.h"

// commonEntryNoError is reached by trampolines for vectors that do not
// carry a CPU-pushed error code; the trampoline has already pushed a
// synthetic zero in its place.
TEXT commonEntryNoError(SB), NOSPLIT, $0
	PUSHQ BP
	PUSHQ AX
	PUSHQ BX
	PUSHQ CX
	PUSHQ DX
	PUSHQ SI
	PUSHQ DI
	MOVQ SP, DI
	CALL ·dispatchTrampoline(SB)
	MOVQ AX, SP
	POPQ DI
	POPQ SI
	POPQ DX
	POPQ CX
	POPQ BX
	POPQ AX
	POPQ BP
	ADDQ $16, SP
	IRETQ

// commonEntryError is identical to commonEntryNoError except that it
// discards only the 8-byte vector slot on exit; the error-code slot, which
// the CPU pushed itself, is not discarded before IRETQ.
TEXT commonEntryError(SB), NOSPLIT, $0
	PUSHQ BP
	PUSHQ AX
	PUSHQ BX
	PUSHQ CX
	PUSHQ DX
	PUSHQ SI
	PUSHQ DI
	MOVQ SP, DI
	CALL ·dispatchTrampoline(SB)
	MOVQ AX, SP
	POPQ DI
	POPQ SI
	POPQ DX
	POPQ CX
	POPQ BX
	POPQ AX
	POPQ BP
	ADDQ $8, SP
	IRETQ
`

func main() {
	var buf bytes.Buffer
	buf.WriteString(header)

	for v := 0; v < vector.NumVectors; v++ {
		fmt.Fprintf(&buf, "\nTEXT trampoline%d(SB), NOSPLIT, $0\n", v)
		fmt.Fprintf(&buf, "\tCLI\n")
		if vector.Vector(v).HasErrorCode() {
			fmt.Fprintf(&buf, "\tPUSHQ $%d\n", v)
			fmt.Fprintf(&buf, "\tJMP commonEntryError(SB)\n")
		} else {
			fmt.Fprintf(&buf, "\tPUSHQ $0\n")
			fmt.Fprintf(&buf, "\tPUSHQ $%d\n", v)
			fmt.Fprintf(&buf, "\tJMP commonEntryNoError(SB)\n")
		}
	}

	buf.WriteString("\nGLOBL trampolineTable(SB), RODATA, $")
	fmt.Fprintf(&buf, "%d\n", 8*vector.NumVectors)
	for v := 0; v < vector.NumVectors; v++ {
		fmt.Fprintf(&buf, "DATA trampolineTable+%d(SB)/8, $trampoline%d(SB)\n", 8*v, v)
	}

	buf.WriteString(`
// func TrampolineAddr(v uint8) uintptr
TEXT ·TrampolineAddr(SB), NOSPLIT, $0-16
	MOVBQZX v+0(FP), AX
	LEAQ trampolineTable(SB), BX
	MOVQ (BX)(AX*8), AX
	MOVQ AX, ret+8(FP)
	RET
`)

	if _, err := os.Stdout.Write(buf.Bytes()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
