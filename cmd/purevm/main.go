// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/purevm/asm"
	"github.com/vechain/purevm/vm"
)

var (
	version   string
	gitCommit string
	gitTag    string
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version: fullVersion(),
		Name:    "purevm",
		Usage:   "pure EVM bytecode interpreter",
		Flags: []cli.Flag{
			codeFileFlag,
			calldataFlag,
			valueFlag,
			verbosityFlag,
			traceFlag,
			jsonLogsFlag,
			enableMetricsFlag,
			metricsAddrFlag,
		},
		Action: runAction,
		Commands: []cli.Command{
			{
				Name:      "disasm",
				Usage:     "print a mnemonic listing of bytecode",
				ArgsUsage: "HEXCODE",
				Flags:     []cli.Flag{codeFileFlag},
				Action:    disasmAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runAction(ctx *cli.Context) error {
	initLogger(ctx)
	if ctx.Bool(enableMetricsFlag.Name) {
		startMetricsServer(ctx.String(metricsAddrFlag.Name))
	}

	code, err := readCode(ctx)
	if err != nil {
		return err
	}
	var calldata []byte
	if s := ctx.String(calldataFlag.Name); s != "" {
		if calldata, err = parseHex(s); err != nil {
			return err
		}
	}
	value, err := parseValue(ctx.String(valueFlag.Name))
	if err != nil {
		return err
	}

	out, err := vm.ExecCall(code, calldata, &vm.Options{
		CallValue: value,
		Verbose:   ctx.Bool(traceFlag.Name),
	})
	if err != nil {
		var revert *vm.RevertError
		if errors.As(err, &revert) {
			fmt.Printf("revert: 0x%x\n", revert.Data)
			return cli.NewExitError("", 1)
		}
		fatal("execution failed:", err)
	}
	fmt.Printf("0x%x\n", out)
	return nil
}

func disasmAction(ctx *cli.Context) error {
	code, err := readCode(ctx)
	if err != nil {
		return err
	}
	var pc uint64
	for _, inst := range asm.Disassemble(code) {
		fmt.Printf("%06d: %v\n", pc, inst)
		pc += inst.Size()
	}
	return nil
}
