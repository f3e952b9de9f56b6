// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package asm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpCodeProperties(t *testing.T) {
	assert.True(t, PUSH1.IsPush())
	assert.True(t, PUSH32.IsPush())
	assert.False(t, PUSH0.IsPush())
	assert.Equal(t, 1, PUSH1.PushSize())
	assert.Equal(t, 32, PUSH32.PushSize())
	assert.Equal(t, 0, ADD.PushSize())

	assert.Equal(t, 1, DUP1.DupN())
	assert.Equal(t, 16, DUP16.DupN())
	assert.Equal(t, 1, SWAP1.SwapN())
	assert.Equal(t, 16, SWAP16.SwapN())

	assert.Equal(t, "ADD", ADD.String())
	assert.Equal(t, "PUSH17", PUSH17.String())
	assert.Equal(t, "SWAP9", SWAP9.String())
	assert.Contains(t, OpCode(0x0c).String(), "not defined")

	assert.True(t, STATICCALL.Defined())
	assert.False(t, OpCode(0x0c).Defined())

	for _, op := range []OpCode{SLOAD, SSTORE, CALL, DELEGATECALL, CREATE2, SELFDESTRUCT, TIMESTAMP, LOG0, BLOBHASH} {
		assert.True(t, op.Impure(), "%v", op)
	}
	for _, op := range []OpCode{ADD, SHA3, CALLVALUE, STATICCALL, TLOAD, MCOPY, JUMPDEST} {
		assert.False(t, op.Impure(), "%v", op)
	}
}

func TestDisassemble(t *testing.T) {
	// PUSH1 0x2a, PUSH1 0x00, MSTORE, PUSH1 0x20, PUSH1 0x00, RETURN
	code := []byte{0x60, 0x2a, 0x60, 0x00, 0x52, 0x60, 0x20, 0x60, 0x00, 0xf3}
	insts := Disassemble(code)
	require.Len(t, insts, 6)
	assert.Equal(t, PUSH1, insts[0].Op)
	assert.Equal(t, []byte{0x2a}, insts[0].Imm)
	assert.Equal(t, MSTORE, insts[2].Op)
	assert.Equal(t, RETURN, insts[5].Op)

	var size uint64
	for _, inst := range insts {
		size += inst.Size()
	}
	assert.Equal(t, uint64(len(code)), size)
}

func TestDisassembleTruncatedPush(t *testing.T) {
	// PUSH4 with only two immediate bytes left
	insts := Disassemble([]byte{0x63, 0xaa, 0xbb})
	require.Len(t, insts, 1)
	assert.Equal(t, PUSH4, insts[0].Op)
	assert.Equal(t, []byte{0xaa, 0xbb}, insts[0].Imm)
	assert.Equal(t, uint64(5), insts[0].Size())
}

func TestDisassembleUnknownByte(t *testing.T) {
	insts := Disassemble([]byte{0x0c, 0x01})
	require.Len(t, insts, 2)
	assert.False(t, insts[0].Op.Defined())
	assert.Equal(t, ADD, insts[1].Op)
}

func TestAssembleRoundTrip(t *testing.T) {
	code := []byte{0x60, 0x2a, 0x7f}
	code = append(code, make([]byte, 32)...)
	code = append(code, 0x01, 0x00)
	out, err := Assemble(Disassemble(code))
	require.NoError(t, err)
	assert.Equal(t, code, out)
}

func TestAssemblePadsShortImmediate(t *testing.T) {
	out, err := Assemble([]Instruction{{Op: PUSH4, Imm: []byte{0x2a}}})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x63, 0x00, 0x00, 0x00, 0x2a}, out)
}

func TestAssembleRejectsWideImmediate(t *testing.T) {
	_, err := Assemble([]Instruction{{Op: PUSH1, Imm: []byte{0x01, 0x02}}})
	assert.Error(t, err)
}
