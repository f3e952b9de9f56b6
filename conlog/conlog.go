// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package conlog decodes console-log call payloads: a 4-byte selector of a
// log(...) signature followed by ABI-encoded arguments.
package conlog

import (
	"fmt"
	"strings"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/vechain/purevm/word"
)

// Selector is the first 4 bytes of the keccak256 of a log signature.
type Selector [4]byte

type method struct {
	sig  string
	args ethabi.Arguments
}

var methods = make(map[Selector]*method)

// the signatures emitted by the usual console libraries
var signatures = [][]string{
	{},
	{"string"},
	{"uint256"},
	{"int256"},
	{"bool"},
	{"address"},
	{"bytes"},
	{"bytes32"},
	{"string", "string"},
	{"string", "uint256"},
	{"string", "bool"},
	{"string", "address"},
	{"uint256", "uint256"},
	{"address", "uint256"},
	{"string", "string", "string"},
	{"string", "uint256", "uint256"},
}

func init() {
	for _, types := range signatures {
		args := make(ethabi.Arguments, 0, len(types))
		for _, t := range types {
			ty, err := ethabi.NewType(t, "", nil)
			if err != nil {
				panic(errors.Wrap(err, "conlog: bad argument type"))
			}
			args = append(args, ethabi.Argument{Type: ty})
		}
		sig := "log(" + strings.Join(types, ",") + ")"
		var sel Selector
		copy(sel[:], word.Keccak256([]byte(sig)).Bytes())
		methods[sel] = &method{sig: sig, args: args}
	}
}

// Decode renders a console-log payload as a human readable line.
func Decode(input []byte) (string, error) {
	if len(input) < 4 {
		return "", errors.New("payload shorter than a selector")
	}
	var sel Selector
	copy(sel[:], input)

	m, ok := methods[sel]
	if !ok {
		return "", errors.Errorf("unknown selector 0x%x", sel[:])
	}
	values, err := m.args.Unpack(input[4:])
	if err != nil {
		return "", errors.Wrapf(err, "decode %s", m.sig)
	}

	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, render(v))
	}
	return strings.Join(parts, " "), nil
}

func render(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	case common.Address:
		return strings.ToLower(t.Hex())
	case []byte:
		return fmt.Sprintf("0x%x", t)
	case [32]byte:
		return fmt.Sprintf("0x%x", t[:])
	default:
		// the big integer kinds have a usable stringer
		return fmt.Sprintf("%v", t)
	}
}
