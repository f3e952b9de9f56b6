// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vm

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/purevm/asm"
	"github.com/vechain/purevm/word"
)

// Options tune a single execution.
type Options struct {
	// CallValue is the unsigned integer exposed via CALLVALUE; nil means 0.
	// It must fit a word.
	CallValue *big.Int
	// FFIs are merged over the builtin table; caller entries win.
	FFIs FFITable
	// Verbose makes the driver emit a trace line per step.
	Verbose bool
}

func (opts *Options) callValue() (uint256.Int, error) {
	if opts == nil || opts.CallValue == nil {
		return uint256.Int{}, nil
	}
	w, err := word.FromBig(opts.CallValue)
	if err != nil {
		return uint256.Int{}, err
	}
	return *w.Uint256(), nil
}

// Exec runs raw bytecode against calldata and returns the terminal state,
// or the error that aborted the execution. A REVERT is not an error.
func Exec(code, calldata []byte, opts *Options) (*ExecutionResult, error) {
	return exec(loadProgram(code), calldata, opts)
}

// ExecInstructions is Exec for a pre-decoded instruction sequence.
func ExecInstructions(insts []asm.Instruction, calldata []byte, opts *Options) (*ExecutionResult, error) {
	program, err := NewProgram(insts)
	if err != nil {
		return nil, err
	}
	return exec(program, calldata, opts)
}

func exec(program *Program, calldata []byte, opts *Options) (*ExecutionResult, error) {
	value, err := opts.callValue()
	if err != nil {
		return nil, errors.Wrap(err, "callvalue")
	}

	var ffis FFITable
	if opts != nil {
		ffis = opts.FFIs
	}
	ctx := newContext(program, &Input{Calldata: calldata, Value: value}, mergeFFIs(ffis))

	err = ctx.run(opts != nil && opts.Verbose)
	recordExec(ctx, err)
	if err != nil {
		return nil, err
	}
	return ctx.result(), nil
}

// RevertError is the error ExecCall returns when the execution reverts.
// Data holds the user-visible revert bytes.
type RevertError struct {
	Data []byte
}

func (e *RevertError) Error() string {
	return fmt.Sprintf("execution reverted: 0x%x", e.Data)
}

// ExecCall is Exec collapsed to the call result: the return data on
// success, a *RevertError on revert, any other error as-is.
func ExecCall(code, calldata []byte, opts *Options) ([]byte, error) {
	out, err := Exec(code, calldata, opts)
	if err != nil {
		return nil, err
	}
	if out.Reverted {
		return nil, &RevertError{Data: out.ReturnData}
	}
	return out.ReturnData, nil
}
