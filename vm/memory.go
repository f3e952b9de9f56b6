// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vm

import "github.com/holiman/uint256"

// MemoryLimit caps memory at 10 MB. It is a sandbox quota, not an EVM
// protocol quantity.
const MemoryLimit = 10_000_000

// Memory is the byte-addressed execution memory. It grows with zero bytes
// to the highest touched offset and never shrinks within one execution.
type Memory struct {
	store []byte
}

func newMemory() *Memory {
	return &Memory{}
}

// len current size in bytes.
func (m *Memory) len() uint64 {
	return uint64(len(m.store))
}

// expand grows the memory with zero bytes up to size.
func (m *Memory) expand(size uint64) error {
	if size > MemoryLimit {
		return ErrOutOfMemory
	}
	if uint64(len(m.store)) < size {
		m.store = append(m.store, make([]byte, size-uint64(len(m.store)))...)
	}
	return nil
}

// read expands to off+size and returns a copy of the region. A zero-size
// read still expands to off.
func (m *Memory) read(off, size uint64) ([]byte, error) {
	if off+size < off {
		return nil, ErrOutOfMemory
	}
	if err := m.expand(off + size); err != nil {
		return nil, err
	}
	out := make([]byte, size)
	copy(out, m.store[off:off+size])
	return out, nil
}

// write expands to off+len(b) and overwrites the region.
func (m *Memory) write(off uint64, b []byte) error {
	if off+uint64(len(b)) < off {
		return ErrOutOfMemory
	}
	if err := m.expand(off + uint64(len(b))); err != nil {
		return err
	}
	copy(m.store[off:], b)
	return nil
}

// asUint64 narrows a memory offset or size operand. Anything beyond uint64
// is far past the quota already.
func asUint64(v *uint256.Int) (uint64, error) {
	if !v.IsUint64() {
		return 0, ErrOutOfMemory
	}
	return v.Uint64(), nil
}

// asUint64x2 narrows an (offset, size) operand pair, guarding their sum
// against overflow.
func asUint64x2(a, b *uint256.Int) (uint64, uint64, error) {
	x, err := asUint64(a)
	if err != nil {
		return 0, 0, err
	}
	y, err := asUint64(b)
	if err != nil {
		return 0, 0, err
	}
	if x+y < x {
		return 0, 0, ErrOutOfMemory
	}
	return x, y, nil
}
