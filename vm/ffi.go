// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vm

import (
	"github.com/holiman/uint256"

	"github.com/vechain/purevm/conlog"
	"github.com/vechain/purevm/word"
)

// FFIOutput is what a foreign function hands back: return data or revert data.
type FFIOutput struct {
	Data     []byte
	Reverted bool
}

// Return makes a successful output.
func Return(data []byte) FFIOutput {
	return FFIOutput{Data: data}
}

// Revert makes a reverting output.
func Revert(data []byte) FFIOutput {
	return FFIOutput{Data: data, Reverted: true}
}

// FFI is a host function reachable via STATICCALL. Handlers must be
// deterministic and non-blocking; they run synchronously on the execution
// thread. Side effects are restricted to out-of-band diagnostics.
type FFI func(input []byte) FFIOutput

// FFITable maps handler addresses to handlers.
type FFITable map[word.Address]FFI

// ConsoleLogAddress hosts the builtin console-log handler. The address is
// the ASCII string "console.log" left-padded with zeros.
var ConsoleLogAddress = word.MustParseAddress("0x000000000000000000636f6e736f6c652e6c6f67")

func builtinFFIs() FFITable {
	return FFITable{
		ConsoleLogAddress: consoleLog,
	}
}

// mergeFFIs layers caller-supplied handlers over the builtins;
// the caller wins on collision.
func mergeFFIs(custom FFITable) FFITable {
	merged := builtinFFIs()
	for addr, fn := range custom {
		merged[addr] = fn
	}
	return merged
}

// consoleLog decodes its payload as a console-log call and emits a
// diagnostic line. It succeeds with empty return data no matter what.
func consoleLog(input []byte) FFIOutput {
	line, err := conlog.Decode(input)
	if err != nil {
		logger.Debug("console.log: undecodable payload", "err", err, "data", input)
	} else {
		logger.Info(line)
	}
	return Return(nil)
}

// staticCall pops (gas, addr, argsOff, argsSize, retOff, retSize) and
// dispatches to the registered handler. gas is ignored. On return, the
// first retSize bytes of the output, zero-padded on the right, are written
// to memory at retOff and 1 is pushed. On revert, the whole execution
// halts reverted with the handler's data; the pushed 0 stays on the final
// stack, but no later instruction runs to see it.
func (ctx *Context) staticCall() error {
	_, addrWord, err := ctx.stack.pop2()
	if err != nil {
		return err
	}
	argsOff, argsSize, err := ctx.stack.pop2()
	if err != nil {
		return err
	}
	retOff, retSize, err := ctx.stack.pop2()
	if err != nil {
		return err
	}

	addr := word.FromUint256(&addrWord).Address()
	fn, ok := ctx.ffis[addr]
	if !ok {
		return &UnknownFFIError{Addr: addr}
	}

	ao, as, err := asUint64x2(&argsOff, &argsSize)
	if err != nil {
		return err
	}
	args, err := ctx.mem.read(ao, as)
	if err != nil {
		return err
	}

	out := fn(args)
	ctx.returnData = out.Data
	if out.Reverted {
		ctx.halted = true
		ctx.reverted = true
		return ctx.stack.push(new(uint256.Int))
	}

	ro, rs, err := asUint64x2(&retOff, &retSize)
	if err != nil {
		return err
	}
	if err := ctx.mem.write(ro, rightPadded(out.Data, rs)); err != nil {
		return err
	}
	return ctx.stack.push(new(uint256.Int).SetOne())
}

// rightPadded returns the first size bytes of b, zero-padded on the right
// when b is shorter.
func rightPadded(b []byte, size uint64) []byte {
	out := make([]byte, size)
	copy(out, b)
	return out
}
