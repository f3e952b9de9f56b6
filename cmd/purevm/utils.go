// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"net/http"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/purevm/log"
	"github.com/vechain/purevm/metrics"
)

func fatal(args ...any) {
	fmt.Fprintln(os.Stderr, args...)
	os.Exit(1)
}

func initLogger(ctx *cli.Context) {
	level := log.FromLegacyLevel(ctx.Int(verbosityFlag.Name))
	if ctx.Bool(traceFlag.Name) {
		level = log.LevelTrace
	}
	if ctx.Bool(jsonLogsFlag.Name) {
		log.SetDefault(log.NewLogger(log.JSONHandlerWithLevel(os.Stderr, level)))
		return
	}
	useColor := isatty.IsTerminal(os.Stderr.Fd())
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, level, useColor)))
}

func startMetricsServer(addr string) {
	metrics.InitializePrometheusMetrics()
	go func() {
		if err := http.ListenAndServe(addr, metrics.HTTPHandler()); err != nil {
			fatal("start metrics server:", err)
		}
	}()
}

// readCode loads bytecode from the --code-file flag or the first argument.
func readCode(ctx *cli.Context) ([]byte, error) {
	if path := ctx.String(codeFileFlag.Name); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "read code file")
		}
		return parseHex(strings.TrimSpace(string(raw)))
	}
	if ctx.NArg() < 1 {
		return nil, errors.New("no bytecode given")
	}
	return parseHex(ctx.Args().First())
}

func parseHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(err, "parse hex")
	}
	return b, nil
}

func parseValue(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, errors.Errorf("invalid value %q", s)
	}
	return v, nil
}
