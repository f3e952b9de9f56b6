// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package word provides the 256-bit machine word and the 20-byte address
// derived from it, with explicit conversions between words and integers.
package word

import (
	"encoding/hex"
	"errors"
	"math/big"
	"strings"

	"github.com/holiman/uint256"
)

const (
	// Size length of a word in bytes.
	Size = 32
	// AddressLength length of an address in bytes.
	AddressLength = 20
)

var (
	// ErrValueOverflow means a value does not fit into 32 bytes.
	ErrValueOverflow = errors.New("value overflow: exceeds 32 bytes")
	// ErrSignedOutOfBounds means a signed integer is outside [-2^255, 2^255).
	ErrSignedOutOfBounds = errors.New("signed integer out of bounds")
)

var twoPow256 = new(big.Int).Lsh(big.NewInt(1), 256)

// Word is a 256-bit value in big-endian byte order. It can be read as an
// unsigned integer in [0, 2^256) or as a two's-complement signed integer
// in [-2^255, 2^255); both readings are total.
type Word [Size]byte

// FromUint256 encodes v as a word.
func FromUint256(v *uint256.Int) Word {
	return v.Bytes32()
}

// Uint256 decodes the word as an unsigned 256-bit integer.
func (w Word) Uint256() *uint256.Int {
	return new(uint256.Int).SetBytes32(w[:])
}

// FromBig encodes a non-negative integer as a word.
// Values outside [0, 2^256) fail with ErrValueOverflow.
func FromBig(x *big.Int) (Word, error) {
	if x.Sign() < 0 {
		return Word{}, ErrValueOverflow
	}
	v, overflow := uint256.FromBig(x)
	if overflow {
		return Word{}, ErrValueOverflow
	}
	return v.Bytes32(), nil
}

// FromSignedBig encodes an integer as a two's-complement word.
// Values outside [-2^255, 2^255) fail with ErrSignedOutOfBounds.
func FromSignedBig(x *big.Int) (Word, error) {
	if x.Sign() >= 0 {
		// x < 2^255
		if x.BitLen() > 255 {
			return Word{}, ErrSignedOutOfBounds
		}
	} else {
		// -x <= 2^255
		abs := new(big.Int).Neg(x)
		if abs.Cmp(new(big.Int).Lsh(big.NewInt(1), 255)) > 0 {
			return Word{}, ErrSignedOutOfBounds
		}
	}
	v, _ := uint256.FromBig(new(big.Int).Mod(x, twoPow256))
	return v.Bytes32(), nil
}

// SignedBig decodes the word as a two's-complement signed integer.
func (w Word) SignedBig() *big.Int {
	v := w.Uint256()
	if v.Sign() >= 0 {
		return v.ToBig()
	}
	return new(big.Int).Neg(new(uint256.Int).Neg(v).ToBig())
}

// Pad left-pads b with zero bytes to a full word.
// Fails with ErrValueOverflow when len(b) > 32.
func Pad(b []byte) (Word, error) {
	if len(b) > Size {
		return Word{}, ErrValueOverflow
	}
	var w Word
	copy(w[Size-len(b):], b)
	return w, nil
}

// Address returns the low 20 bytes of the word; the high 12 bytes are
// discarded.
func (w Word) Address() Address {
	var a Address
	copy(a[:], w[Size-AddressLength:])
	return a
}

// Bytes returns byte slice form of the word.
func (w Word) Bytes() []byte {
	return w[:]
}

// IsZero returns if the word has all zero bytes.
func (w Word) IsZero() bool {
	return w == Word{}
}

// String implements stringer.
func (w Word) String() string {
	return "0x" + hex.EncodeToString(w[:])
}

// Address identifies a foreign function handler.
type Address [AddressLength]byte

// String implements the stringer interface.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// Bytes returns byte slice form of the address.
func (a Address) Bytes() []byte {
	return a[:]
}

// BytesToAddress converts a byte slice into an address.
// If b is larger than address length, b will be cropped (from the left).
// If b is smaller than address length, b will be extended (from the left).
func BytesToAddress(b []byte) Address {
	var a Address
	if len(b) > AddressLength {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
	return a
}

// ParseAddress converts a string presented address into Address type.
func ParseAddress(s string) (*Address, error) {
	if len(s) == AddressLength*2 {
	} else if len(s) == AddressLength*2+2 {
		if strings.ToLower(s[:2]) != "0x" {
			return nil, errors.New("invalid prefix")
		}
		s = s[2:]
	} else {
		return nil, errors.New("invalid length")
	}

	var addr Address
	if _, err := hex.Decode(addr[:], []byte(s)); err != nil {
		return nil, err
	}
	return &addr, nil
}

// MustParseAddress is like ParseAddress but panics on error.
// It is intended for address literals.
func MustParseAddress(s string) Address {
	addr, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return *addr
}
