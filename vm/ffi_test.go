// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/purevm/asm"
	"github.com/vechain/purevm/word"
)

var echoAddr = word.BytesToAddress([]byte{0x01})

// staticCallProg stores a 32-byte argument at 0 and STATICCALLs the target,
// leaving the success flag on the stack. The reply is written at 32.
func staticCallProg(target word.Address, arg byte) []asm.Instruction {
	return []asm.Instruction{
		push(arg), push(0), op(asm.MSTORE),
		push(32),                              // retSize
		push(32),                              // retOff
		push(32),                              // argsSize
		push(0),                               // argsOff
		{Op: asm.PUSH20, Imm: target.Bytes()}, // addr
		push(0),                               // gas, ignored
		op(asm.STATICCALL),
	}
}

func TestStaticCallEcho(t *testing.T) {
	var got []byte
	ffis := FFITable{
		echoAddr: func(input []byte) FFIOutput {
			got = append([]byte(nil), input...)
			return Return(input)
		},
	}

	insts := append(staticCallProg(echoAddr, 0x2a),
		push(32), push(32), op(asm.RETURN)) // return the reply slot
	out, err := ExecInstructions(insts, nil, &Options{FFIs: ffis})
	require.NoError(t, err)

	require.Len(t, got, 32)
	assert.Equal(t, byte(0x2a), got[31])

	// success flag pushed, echo written back at retOff
	require.Len(t, out.Stack, 1)
	assert.Equal(t, unsigned(1), out.Stack[0])
	assert.Equal(t, got, out.ReturnData)
	assert.False(t, out.Reverted)
}

func TestStaticCallShortReplyIsRightPadded(t *testing.T) {
	ffis := FFITable{
		echoAddr: func([]byte) FFIOutput {
			return Return([]byte{0xaa, 0xbb})
		},
	}

	insts := append(staticCallProg(echoAddr, 0),
		push(32), push(32), op(asm.RETURN))
	out, err := ExecInstructions(insts, nil, &Options{FFIs: ffis})
	require.NoError(t, err)

	want := make([]byte, 32)
	want[0], want[1] = 0xaa, 0xbb
	assert.Equal(t, want, out.ReturnData)
	// the context return data holds the full handler output, unpadded
	// (RETURN overwrote it here, so check the success flag instead)
	assert.Equal(t, unsigned(1), out.Stack[0])
}

func TestStaticCallReturnData(t *testing.T) {
	ffis := FFITable{
		echoAddr: func([]byte) FFIOutput {
			return Return([]byte{0x01, 0x02, 0x03})
		},
	}

	// RETURNDATASIZE after the call sees the full, unpadded handler output
	insts := append(staticCallProg(echoAddr, 0),
		op(asm.RETURNDATASIZE), op(asm.STOP))
	out, err := ExecInstructions(insts, nil, &Options{FFIs: ffis})
	require.NoError(t, err)
	require.Len(t, out.Stack, 2)
	assert.Equal(t, unsigned(3), out.Stack[0])

	// RETURNDATACOPY round trip
	insts = append(staticCallProg(echoAddr, 0),
		push(3), push(0), push(100), op(asm.RETURNDATACOPY), // mem[100:103] = returndata
		push(3), push(100), op(asm.RETURN))
	out, err = ExecInstructions(insts, nil, &Options{FFIs: ffis})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, out.ReturnData)
}

func TestStaticCallRevertHaltsExecution(t *testing.T) {
	ffis := FFITable{
		echoAddr: func([]byte) FFIOutput {
			return Revert([]byte("nope"))
		},
	}

	// anything after the call must not run
	insts := append(staticCallProg(echoAddr, 0),
		push(0x99), op(asm.STOP))
	out, err := ExecInstructions(insts, nil, &Options{FFIs: ffis})
	require.NoError(t, err)

	assert.True(t, out.Reverted)
	assert.Equal(t, []byte("nope"), out.ReturnData)
	// the dead 0 push is still on the stack
	require.Len(t, out.Stack, 1)
	assert.Equal(t, unsigned(0), out.Stack[0])
}

func TestStaticCallUnknownAddress(t *testing.T) {
	_, err := ExecInstructions(staticCallProg(echoAddr, 0), nil, nil)
	var unknown *UnknownFFIError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, echoAddr, unknown.Addr)
}

func TestStaticCallAddressCropped(t *testing.T) {
	// high 12 bytes of the address word are discarded
	called := false
	ffis := FFITable{
		echoAddr: func([]byte) FFIOutput {
			called = true
			return Return(nil)
		},
	}

	addrWord := make([]byte, 32)
	addrWord[0] = 0xff // garbage in the high bytes
	addrWord[31] = 0x01
	insts := []asm.Instruction{
		push(0), push(0), push(0), push(0),
		{Op: asm.PUSH32, Imm: addrWord},
		push(0),
		op(asm.STATICCALL),
		op(asm.STOP),
	}
	_, err := ExecInstructions(insts, nil, &Options{FFIs: ffis})
	require.NoError(t, err)
	assert.True(t, called)
}

func TestCallerOverridesBuiltin(t *testing.T) {
	called := false
	ffis := FFITable{
		ConsoleLogAddress: func([]byte) FFIOutput {
			called = true
			return Return(nil)
		},
	}
	merged := mergeFFIs(ffis)
	merged[ConsoleLogAddress](nil)
	assert.True(t, called)
}

func TestConsoleLogBuiltin(t *testing.T) {
	// selector of log(uint256) followed by the ABI-encoded argument
	sel := word.Keccak256([]byte("log(uint256)")).Bytes()[:4]
	selWord := make([]byte, 32)
	copy(selWord, sel)

	insts := []asm.Instruction{
		{Op: asm.PUSH32, Imm: selWord}, push(0), op(asm.MSTORE), // selector at 0..4
		push(0x2a), push(4), op(asm.MSTORE), // argument at 4..36
		push(32),  // retSize
		push(100), // retOff
		push(36),  // argsSize
		push(0),   // argsOff
		{Op: asm.PUSH20, Imm: ConsoleLogAddress.Bytes()},
		push(0), // gas
		op(asm.STATICCALL),
		push(100), op(asm.MLOAD), // reply slot stays zero
		op(asm.STOP),
	}
	out, err := ExecInstructions(insts, nil, nil)
	require.NoError(t, err)

	require.Len(t, out.Stack, 2)
	assert.True(t, out.Stack[0].IsZero())     // empty reply, zero-padded
	assert.Equal(t, unsigned(1), out.Stack[1]) // success flag
	assert.Empty(t, out.ReturnData)
	assert.False(t, out.Reverted)
}

func TestConsoleLogAddressLiteral(t *testing.T) {
	assert.Equal(t, "0x000000000000000000636f6e736f6c652e6c6f67", ConsoleLogAddress.String())
	assert.Equal(t, []byte("console.log"), ConsoleLogAddress.Bytes()[9:])
}
