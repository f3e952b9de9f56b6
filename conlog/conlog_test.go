// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package conlog

import (
	"math/big"
	"testing"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/purevm/word"
)

func encode(t *testing.T, sig string, types []string, values ...any) []byte {
	args := make(ethabi.Arguments, 0, len(types))
	for _, typ := range types {
		ty, err := ethabi.NewType(typ, "", nil)
		require.NoError(t, err)
		args = append(args, ethabi.Argument{Type: ty})
	}
	packed, err := args.Pack(values...)
	require.NoError(t, err)
	sel := word.Keccak256([]byte(sig)).Bytes()[:4]
	return append(sel, packed...)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		sig    string
		types  []string
		values []any
		want   string
	}{
		{"log()", nil, nil, ""},
		{"log(string)", []string{"string"}, []any{"hello world"}, "hello world"},
		{"log(uint256)", []string{"uint256"}, []any{big.NewInt(42)}, "42"},
		{"log(bool)", []string{"bool"}, []any{true}, "true"},
		{
			"log(address)", []string{"address"},
			[]any{common.HexToAddress("0x000000000000000000636f6e736f6c652e6c6f67")},
			"0x000000000000000000636f6e736f6c652e6c6f67",
		},
		{"log(bytes)", []string{"bytes"}, []any{[]byte{0xde, 0xad}}, "0xdead"},
		{
			"log(string,uint256)", []string{"string", "uint256"},
			[]any{"count:", big.NewInt(7)},
			"count: 7",
		},
		{
			"log(string,string)", []string{"string", "string"},
			[]any{"a", "b"},
			"a b",
		},
		{
			"log(string,bool)", []string{"string", "bool"},
			[]any{"flag", false},
			"flag false",
		},
		{
			"log(uint256,uint256)", []string{"uint256", "uint256"},
			[]any{big.NewInt(1), big.NewInt(2)},
			"1 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.sig, func(t *testing.T) {
			line, err := Decode(encode(t, tt.sig, tt.types, tt.values...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, line)
		})
	}
}

func TestDecodeRejects(t *testing.T) {
	_, err := Decode([]byte{0x01, 0x02})
	assert.Error(t, err)

	_, err = Decode([]byte{0x01, 0x02, 0x03, 0x04})
	assert.ErrorContains(t, err, "unknown selector")

	// right selector, garbage payload
	sel := word.Keccak256([]byte("log(string)")).Bytes()[:4]
	_, err = Decode(append(sel, 0xff))
	assert.Error(t, err)
}
