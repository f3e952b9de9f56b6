// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vm

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/vechain/purevm/asm"
	"github.com/vechain/purevm/word"
)

// Program is decoded code plus its map from program counter to instruction.
// PCs inside push immediates map to nothing and are invalid to land on.
type Program struct {
	insts []asm.Instruction
	code  []byte // encoded form, read by CODESIZE/CODECOPY
	pcIdx []int32
}

// NewProgram builds the program map for an instruction sequence.
// It fails when a push immediate exceeds its width.
func NewProgram(insts []asm.Instruction) (*Program, error) {
	code, err := asm.Assemble(insts)
	if err != nil {
		for _, inst := range insts {
			if n := inst.Op.PushSize(); n > 0 && len(inst.Imm) > n {
				return nil, &InvalidPushError{N: n, Imm: inst.Imm}
			}
		}
		return nil, err
	}
	return newProgram(insts, code), nil
}

func newProgram(insts []asm.Instruction, code []byte) *Program {
	// dense PC index; PCs are contiguous and bounded by code length
	pcIdx := make([]int32, len(code))
	for i := range pcIdx {
		pcIdx[i] = -1
	}
	var pc uint64
	for i, inst := range insts {
		if pc < uint64(len(pcIdx)) {
			pcIdx[pc] = int32(i)
		}
		pc += inst.Size()
	}
	return &Program{insts: insts, code: code, pcIdx: pcIdx}
}

// InstructionAt returns the instruction starting at pc.
func (p *Program) InstructionAt(pc uint64) (asm.Instruction, bool) {
	if pc >= uint64(len(p.pcIdx)) || p.pcIdx[pc] < 0 {
		return asm.Instruction{}, false
	}
	return p.insts[p.pcIdx[pc]], true
}

// jumpdestAt reports whether pc holds a JUMPDEST.
func (p *Program) jumpdestAt(pc uint64) bool {
	inst, ok := p.InstructionAt(pc)
	return ok && inst.Op == asm.JUMPDEST
}

// Code returns the encoded bytecode.
func (p *Program) Code() []byte {
	return p.code
}

// Decoding the same contract for every call would dominate short
// executions, so programs are cached by code hash.
var programCache, _ = lru.New(1024)

// loadProgram returns the cached program for the bytecode, decoding on miss.
func loadProgram(code []byte) *Program {
	key := word.Keccak256(code)
	if cached, ok := programCache.Get(key); ok {
		return cached.(*Program)
	}
	p := newProgram(asm.Disassemble(code), code)
	programCache.Add(key, p)
	return p
}
