// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vm

import (
	"github.com/holiman/uint256"

	"github.com/vechain/purevm/word"
)

// StackLimit max depth of the operand stack.
const StackLimit = 1024

// Stack is the operand stack of 256-bit words. The top of the stack is the
// last element of data; peek/swap indexes count from the top.
type Stack struct {
	data []uint256.Int
}

func newStack() *Stack {
	return &Stack{data: make([]uint256.Int, 0, 16)}
}

func (s *Stack) len() int {
	return len(s.data)
}

func (s *Stack) push(v *uint256.Int) error {
	if len(s.data) >= StackLimit {
		return ErrStackOverflow
	}
	s.data = append(s.data, *v)
	return nil
}

func (s *Stack) pop() (uint256.Int, error) {
	if len(s.data) == 0 {
		return uint256.Int{}, ErrStackUnderflow
	}
	v := s.data[len(s.data)-1]
	s.data = s.data[:len(s.data)-1]
	return v, nil
}

func (s *Stack) pop2() (a, b uint256.Int, err error) {
	if a, err = s.pop(); err != nil {
		return
	}
	b, err = s.pop()
	return
}

func (s *Stack) pop3() (a, b, c uint256.Int, err error) {
	if a, b, err = s.pop2(); err != nil {
		return
	}
	c, err = s.pop()
	return
}

// peek returns a pointer to the n'th element from the top, 0-indexed.
// Mutating through it is how most ops write their result.
func (s *Stack) peek(n int) (*uint256.Int, error) {
	if n >= len(s.data) {
		return nil, ErrStackUnderflow
	}
	return &s.data[len(s.data)-1-n], nil
}

// popPeek pops the top and peeks the new top, the shape of every binary op.
func (s *Stack) popPeek() (uint256.Int, *uint256.Int, error) {
	x, err := s.pop()
	if err != nil {
		return uint256.Int{}, nil, err
	}
	y, err := s.peek(0)
	return x, y, err
}

// pop2Peek pops two and peeks the new top, the shape of every ternary op.
func (s *Stack) pop2Peek() (uint256.Int, uint256.Int, *uint256.Int, error) {
	x, y, err := s.pop2()
	if err != nil {
		return uint256.Int{}, uint256.Int{}, nil, err
	}
	z, err := s.peek(0)
	return x, y, z, err
}

// dup pushes a copy of the n'th element from the top, 1-indexed (DUPn).
func (s *Stack) dup(n int) error {
	v, err := s.peek(n - 1)
	if err != nil {
		return err
	}
	dup := *v
	return s.push(&dup)
}

// swap exchanges the top with the n'th element below it (SWAPn).
func (s *Stack) swap(n int) error {
	v, err := s.peek(n)
	if err != nil {
		return err
	}
	top := &s.data[len(s.data)-1]
	*v, *top = *top, *v
	return nil
}

// words returns the stack as words, top of the stack first.
func (s *Stack) words() []word.Word {
	out := make([]word.Word, len(s.data))
	for i := range s.data {
		out[len(s.data)-1-i] = word.FromUint256(&s.data[i])
	}
	return out
}
