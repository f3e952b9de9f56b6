// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vm

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/vechain/purevm/asm"
	"github.com/vechain/purevm/word"
)

// The error kinds that abort an execution. A REVERT is not among them: it
// is a normal terminal state reported through ExecutionResult.Reverted.
var (
	ErrPCOutOfBounds    = errors.New("program counter out of bounds")
	ErrStackUnderflow   = errors.New("stack underflow")
	ErrStackOverflow    = errors.New("stack overflow")
	ErrOutOfMemory      = errors.New("out of memory")
	ErrInvalidJumpDest  = errors.New("invalid jump destination")
	ErrInvalidOperation = errors.New("invalid operation")
)

// InvalidPushError means a push op carried an immediate longer than its width.
type InvalidPushError struct {
	N   int
	Imm []byte
}

func (e *InvalidPushError) Error() string {
	return fmt.Sprintf("invalid push: %d immediate bytes for PUSH%d", len(e.Imm), e.N)
}

// UnknownFFIError means a STATICCALL targeted an unregistered address.
type UnknownFFIError struct {
	Addr word.Address
}

func (e *UnknownFFIError) Error() string {
	return fmt.Sprintf("unknown ffi: no handler at %v", e.Addr)
}

// ImpureError means an opcode that observes or mutates chain state was
// encountered; this interpreter rejects all of them.
type ImpureError struct {
	Op asm.OpCode
}

func (e *ImpureError) Error() string {
	return fmt.Sprintf("impure operation: %v", e.Op)
}

// NotImplementedError means an opcode decodes but has no semantics here.
type NotImplementedError struct {
	Op asm.OpCode
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("operation not implemented: %v", e.Op)
}
