// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vm

import (
	"github.com/holiman/uint256"

	"github.com/vechain/purevm/asm"
	"github.com/vechain/purevm/word"
)

// GasStub is what GAS pushes. There is no gas accounting.
const GasStub = 4_000_000

var oneInt = uint256.NewInt(1)

// execute applies one instruction to the context. The program counter is
// not advanced here; the driver does that after every successful step.
func (ctx *Context) execute(inst asm.Instruction) error {
	op := inst.Op
	if op.Impure() {
		return &ImpureError{Op: op}
	}
	stack := ctx.stack

	switch {
	case op.IsPush():
		n := op.PushSize()
		if len(inst.Imm) > n {
			return &InvalidPushError{N: n, Imm: inst.Imm}
		}
		return stack.push(new(uint256.Int).SetBytes(inst.Imm))
	case op.IsDup():
		return stack.dup(op.DupN())
	case op.IsSwap():
		return stack.swap(op.SwapN())
	}

	switch op {
	case asm.STOP:
		ctx.returnData = nil
		ctx.halted = true
		return nil

	case asm.ADD:
		x, y, err := stack.popPeek()
		if err != nil {
			return err
		}
		y.Add(&x, y)
		return nil

	case asm.MUL:
		x, y, err := stack.popPeek()
		if err != nil {
			return err
		}
		y.Mul(&x, y)
		return nil

	case asm.SUB:
		x, y, err := stack.popPeek()
		if err != nil {
			return err
		}
		y.Sub(&x, y)
		return nil

	case asm.DIV:
		x, y, err := stack.popPeek()
		if err != nil {
			return err
		}
		y.Div(&x, y)
		return nil

	case asm.SDIV:
		x, y, err := stack.popPeek()
		if err != nil {
			return err
		}
		sdivFloor(&x, y)
		return nil

	case asm.MOD:
		x, y, err := stack.popPeek()
		if err != nil {
			return err
		}
		y.Mod(&x, y)
		return nil

	case asm.SMOD:
		x, y, err := stack.popPeek()
		if err != nil {
			return err
		}
		smodFloor(&x, y)
		return nil

	case asm.ADDMOD:
		x, y, z, err := stack.pop2Peek()
		if err != nil {
			return err
		}
		if z.IsZero() {
			z.Clear()
		} else {
			z.AddMod(&x, &y, z)
		}
		return nil

	case asm.MULMOD:
		x, y, z, err := stack.pop2Peek()
		if err != nil {
			return err
		}
		if z.IsZero() {
			z.Clear()
		} else {
			z.MulMod(&x, &y, z)
		}
		return nil

	case asm.EXP:
		// square-and-multiply mod 2^256; the exponent may be any word
		base, exponent, err := stack.popPeek()
		if err != nil {
			return err
		}
		exponent.Exp(&base, exponent)
		return nil

	case asm.SIGNEXTEND:
		back, num, err := stack.popPeek()
		if err != nil {
			return err
		}
		num.ExtendSign(num, &back)
		return nil

	case asm.LT:
		x, y, err := stack.popPeek()
		if err != nil {
			return err
		}
		setBool(y, x.Lt(y))
		return nil

	case asm.GT:
		x, y, err := stack.popPeek()
		if err != nil {
			return err
		}
		setBool(y, x.Gt(y))
		return nil

	case asm.SLT:
		x, y, err := stack.popPeek()
		if err != nil {
			return err
		}
		setBool(y, x.Slt(y))
		return nil

	case asm.SGT:
		x, y, err := stack.popPeek()
		if err != nil {
			return err
		}
		setBool(y, x.Sgt(y))
		return nil

	case asm.EQ:
		x, y, err := stack.popPeek()
		if err != nil {
			return err
		}
		setBool(y, x.Eq(y))
		return nil

	case asm.ISZERO:
		x, err := stack.peek(0)
		if err != nil {
			return err
		}
		setBool(x, x.IsZero())
		return nil

	case asm.AND:
		x, y, err := stack.popPeek()
		if err != nil {
			return err
		}
		y.And(&x, y)
		return nil

	case asm.OR:
		x, y, err := stack.popPeek()
		if err != nil {
			return err
		}
		y.Or(&x, y)
		return nil

	case asm.XOR:
		x, y, err := stack.popPeek()
		if err != nil {
			return err
		}
		y.Xor(&x, y)
		return nil

	case asm.NOT:
		x, err := stack.peek(0)
		if err != nil {
			return err
		}
		x.Not(x)
		return nil

	case asm.BYTE:
		i, x, err := stack.popPeek()
		if err != nil {
			return err
		}
		x.Byte(&i)
		return nil

	case asm.SHL:
		shift, value, err := stack.popPeek()
		if err != nil {
			return err
		}
		if shift.LtUint64(256) {
			value.Lsh(value, uint(shift.Uint64()))
		} else {
			value.Clear()
		}
		return nil

	case asm.SHR:
		shift, value, err := stack.popPeek()
		if err != nil {
			return err
		}
		if shift.LtUint64(256) {
			value.Rsh(value, uint(shift.Uint64()))
		} else {
			value.Clear()
		}
		return nil

	case asm.SAR:
		shift, value, err := stack.popPeek()
		if err != nil {
			return err
		}
		if shift.LtUint64(256) {
			value.SRsh(value, uint(shift.Uint64()))
		} else if value.Sign() < 0 {
			value.SetAllOne()
		} else {
			value.Clear()
		}
		return nil

	case asm.SHA3:
		off, size, err := stack.popPeek()
		if err != nil {
			return err
		}
		o, s, err := asUint64x2(&off, size)
		if err != nil {
			return err
		}
		data, err := ctx.mem.read(o, s)
		if err != nil {
			return err
		}
		h := word.Keccak256(data)
		size.SetBytes32(h[:])
		return nil

	case asm.CALLVALUE:
		return stack.push(&ctx.input.Value)

	case asm.CALLDATALOAD:
		off, err := stack.peek(0)
		if err != nil {
			return err
		}
		off.SetBytes(dataSlice(ctx.input.Calldata, off, word.Size))
		return nil

	case asm.CALLDATASIZE:
		return stack.push(new(uint256.Int).SetUint64(uint64(len(ctx.input.Calldata))))

	case asm.CALLDATACOPY:
		return ctx.copyToMem(ctx.input.Calldata)

	case asm.CODESIZE:
		return stack.push(new(uint256.Int).SetUint64(uint64(len(ctx.program.Code()))))

	case asm.CODECOPY:
		return ctx.copyToMem(ctx.program.Code())

	case asm.RETURNDATASIZE:
		return stack.push(new(uint256.Int).SetUint64(uint64(len(ctx.returnData))))

	case asm.RETURNDATACOPY:
		return ctx.copyToMem(ctx.returnData)

	case asm.POP:
		_, err := stack.pop()
		return err

	case asm.MLOAD:
		off, err := stack.peek(0)
		if err != nil {
			return err
		}
		o, err := asUint64(off)
		if err != nil {
			return err
		}
		data, err := ctx.mem.read(o, word.Size)
		if err != nil {
			return err
		}
		off.SetBytes(data)
		return nil

	case asm.MSTORE:
		off, val, err := stack.pop2()
		if err != nil {
			return err
		}
		o, err := asUint64(&off)
		if err != nil {
			return err
		}
		b := val.Bytes32()
		return ctx.mem.write(o, b[:])

	case asm.MSTORE8:
		off, val, err := stack.pop2()
		if err != nil {
			return err
		}
		o, err := asUint64(&off)
		if err != nil {
			return err
		}
		return ctx.mem.write(o, []byte{byte(val.Uint64())})

	case asm.MSIZE:
		return stack.push(new(uint256.Int).SetUint64(ctx.mem.len()))

	case asm.MCOPY:
		dst, src, size, err := stack.pop3()
		if err != nil {
			return err
		}
		s, n, err := asUint64x2(&src, &size)
		if err != nil {
			return err
		}
		d, err := asUint64(&dst)
		if err != nil {
			return err
		}
		data, err := ctx.mem.read(s, n)
		if err != nil {
			return err
		}
		return ctx.mem.write(d, data)

	case asm.JUMP:
		dest, err := stack.pop()
		if err != nil {
			return err
		}
		return ctx.jump(&dest)

	case asm.JUMPI:
		dest, cond, err := stack.pop2()
		if err != nil {
			return err
		}
		if cond.IsZero() {
			return nil
		}
		return ctx.jump(&dest)

	case asm.PC:
		return stack.push(new(uint256.Int).SetUint64(ctx.pc))

	case asm.JUMPDEST:
		return nil

	case asm.GAS:
		return stack.push(new(uint256.Int).SetUint64(GasStub))

	case asm.TLOAD:
		key, err := stack.peek(0)
		if err != nil {
			return err
		}
		v := ctx.tstore.load(word.FromUint256(key))
		key.SetBytes32(v[:])
		return nil

	case asm.TSTORE:
		key, val, err := stack.pop2()
		if err != nil {
			return err
		}
		ctx.tstore.store(word.FromUint256(&key), word.FromUint256(&val))
		return nil

	case asm.RETURN:
		off, size, err := stack.pop2()
		if err != nil {
			return err
		}
		o, s, err := asUint64x2(&off, &size)
		if err != nil {
			return err
		}
		data, err := ctx.mem.read(o, s)
		if err != nil {
			return err
		}
		ctx.returnData = data
		ctx.halted = true
		return nil

	case asm.REVERT:
		off, size, err := stack.pop2()
		if err != nil {
			return err
		}
		o, s, err := asUint64x2(&off, &size)
		if err != nil {
			return err
		}
		data, err := ctx.mem.read(o, s)
		if err != nil {
			return err
		}
		ctx.returnData = data
		ctx.halted = true
		ctx.reverted = true
		return nil

	case asm.STATICCALL:
		return ctx.staticCall()

	case asm.INVALID:
		return ErrInvalidOperation
	}

	if !op.Defined() {
		// unrecognized byte, same fate as INVALID
		return ErrInvalidOperation
	}
	return &NotImplementedError{Op: op}
}

// jump validates dest and moves the program counter there. The driver's
// post-step increment then lands just past the JUMPDEST, which is a no-op
// away from landing on it.
func (ctx *Context) jump(dest *uint256.Int) error {
	if !dest.IsUint64() || !ctx.program.jumpdestAt(dest.Uint64()) {
		return ErrInvalidJumpDest
	}
	ctx.pc = dest.Uint64()
	return nil
}

// copyToMem implements the CALLDATACOPY-family: pop (dst, src, size), copy
// size bytes of data at src, zero-extended, into memory at dst.
func (ctx *Context) copyToMem(data []byte) error {
	dst, src, size, err := ctx.stack.pop3()
	if err != nil {
		return err
	}
	d, s, err := asUint64x2(&dst, &size)
	if err != nil {
		return err
	}
	return ctx.mem.write(d, dataSlice(data, &src, s))
}

// dataSlice reads size bytes of data at off, zero-extended past the end.
// The offset may be any word; everything past the data reads zero.
func dataSlice(data []byte, off *uint256.Int, size uint64) []byte {
	out := make([]byte, size)
	if off.IsUint64() && off.Uint64() < uint64(len(data)) {
		copy(out, data[off.Uint64():])
	}
	return out
}

func setBool(v *uint256.Int, b bool) {
	if b {
		v.SetOne()
	} else {
		v.Clear()
	}
}

// sdivFloor sets y to x/y rounding toward negative infinity, 0 when y is 0.
func sdivFloor(x, y *uint256.Int) {
	var q, r uint256.Int
	q.SDiv(x, y)
	r.SMod(x, y)
	if !r.IsZero() && (x.Sign() < 0) != (y.Sign() < 0) {
		q.Sub(&q, oneInt)
	}
	y.Set(&q)
}

// smodFloor sets y to x mod y with the sign of the divisor, 0 when y is 0.
func smodFloor(x, y *uint256.Int) {
	var r uint256.Int
	r.SMod(x, y)
	if !r.IsZero() && (r.Sign() < 0) != (y.Sign() < 0) {
		r.Add(&r, y)
	}
	y.Set(&r)
}
