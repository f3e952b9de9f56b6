// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package vm executes EVM bytecode as a pure function of code and calldata.
// Opcodes that would observe or mutate chain state are rejected; the only
// window to the outside is STATICCALL, dispatched to host-registered
// handlers keyed by address.
package vm

import (
	"github.com/holiman/uint256"

	"github.com/vechain/purevm/log"
	"github.com/vechain/purevm/word"
)

var logger = log.WithContext("pkg", "vm")

// Input is the immutable per-execution input.
type Input struct {
	Calldata []byte
	Value    uint256.Int
}

// Context is the mutable state of one execution. It is owned by a single
// Exec call and never observable from outside until that call returns.
type Context struct {
	program *Program
	input   *Input
	ffis    FFITable

	pc         uint64
	stack      *Stack
	mem        *Memory
	tstore     transientStorage
	halted     bool
	reverted   bool
	returnData []byte

	steps uint64
}

func newContext(program *Program, input *Input, ffis FFITable) *Context {
	return &Context{
		program: program,
		input:   input,
		ffis:    ffis,
		stack:   newStack(),
		mem:     newMemory(),
		tstore:  make(transientStorage),
	}
}

// run drives the context to a halt: fetch the instruction at pc, apply it,
// advance pc by its encoded size. The advance is unconditional, jumps
// included; a jump parks pc on its destination and the post-step advance
// lands just past the JUMPDEST there.
func (ctx *Context) run(verbose bool) error {
	for {
		inst, ok := ctx.program.InstructionAt(ctx.pc)
		if !ok {
			return ErrPCOutOfBounds
		}
		if verbose {
			logger.Trace("step",
				"pc", ctx.pc,
				"op", inst.Op,
				"stack", ctx.stack.len(),
				"mem", ctx.mem.len(),
			)
		}
		if err := ctx.execute(inst); err != nil {
			return err
		}
		ctx.pc += inst.Size()
		ctx.steps++
		if ctx.halted {
			return nil
		}
	}
}

// result snapshots the terminal state.
func (ctx *Context) result() *ExecutionResult {
	return &ExecutionResult{
		Stack:      ctx.stack.words(),
		Reverted:   ctx.reverted,
		ReturnData: ctx.returnData,
	}
}

// ExecutionResult is the terminal state of a completed execution.
type ExecutionResult struct {
	// Stack holds the final operand stack, top of the stack first.
	Stack []word.Word
	// Reverted is set when the execution ended via REVERT or a reverting
	// STATICCALL handler.
	Reverted bool
	// ReturnData is the return or revert payload.
	ReturnData []byte
}
