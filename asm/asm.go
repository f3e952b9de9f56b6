// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package asm

import (
	"fmt"

	"github.com/pkg/errors"
)

// Instruction is one decoded opcode. Imm holds the immediate bytes of a
// push op and is nil for every other op. A push immediate may be shorter
// than the push width when the code ends inside it.
type Instruction struct {
	Op  OpCode
	Imm []byte
}

// Size returns the encoded size of the instruction in bytes, which is
// what the program counter advances by: 1, or 1+n for PUSHn.
func (i Instruction) Size() uint64 {
	return 1 + uint64(i.Op.PushSize())
}

// String implements stringer.
func (i Instruction) String() string {
	if i.Op.IsPush() {
		return fmt.Sprintf("%v 0x%x", i.Op, i.Imm)
	}
	return i.Op.String()
}

// Disassemble decodes raw bytecode into an instruction sequence. It is
// total: bytes without a mnemonic decode as themselves and fail only when
// executed. A push immediate truncated by the end of code is kept short.
func Disassemble(code []byte) []Instruction {
	insts := make([]Instruction, 0, len(code))
	for pc := 0; pc < len(code); {
		op := OpCode(code[pc])
		if n := op.PushSize(); n > 0 {
			end := pc + 1 + n
			if end > len(code) {
				end = len(code)
			}
			imm := make([]byte, end-pc-1)
			copy(imm, code[pc+1:end])
			insts = append(insts, Instruction{Op: op, Imm: imm})
			pc += 1 + n
		} else {
			insts = append(insts, Instruction{Op: op})
			pc++
		}
	}
	return insts
}

// Assemble encodes an instruction sequence back into bytecode. A push
// immediate shorter than the push width is left-padded with zeros, which
// preserves its value; a longer one is rejected.
func Assemble(insts []Instruction) ([]byte, error) {
	var size uint64
	for _, inst := range insts {
		size += inst.Size()
	}
	code := make([]byte, 0, size)
	for _, inst := range insts {
		code = append(code, byte(inst.Op))
		if n := inst.Op.PushSize(); n > 0 {
			if len(inst.Imm) > n {
				return nil, errors.Errorf("%v: immediate of %d bytes", inst.Op, len(inst.Imm))
			}
			code = append(code, make([]byte, n-len(inst.Imm))...)
			code = append(code, inst.Imm...)
		}
	}
	return code, nil
}
