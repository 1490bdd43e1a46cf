// Copyright 2022-2026 The N42 Authors
// This file is part of the N42 library.
//
// The N42 library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The N42 library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the N42 library. If not, see <http://www.gnu.org/licenses/>.

// Command bench times a single call into a bytecode-only contract, the way
// the original's revme bench subcommand times its snailtracer example: build
// a minimal state and EVM, deploy fixed code at a fixed address, run one
// call, print how long it took.
package main

import (
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/holiman/uint256"
	"github.com/urfave/cli/v2"

	"github.com/vertexchain/evmcore/common/types"
	"github.com/vertexchain/evmcore/core"
	"github.com/vertexchain/evmcore/internal/vm"
	"github.com/vertexchain/evmcore/internal/vm/evmtypes"
	"github.com/vertexchain/evmcore/internal/vm/precompiles"
	"github.com/vertexchain/evmcore/modules/state"
	"github.com/vertexchain/evmcore/params"
)

const usageText = `bench [options]

bench runs a fixed bytecode payload through the EVM a configurable number of
times and reports total wall-clock time, the last run's gas used, and the
average time per run. It does
not touch any on-disk database; state lives in an in-memory store for the
life of the process.`

var (
	benchCaller = types.HexToAddress("0x1000000000000000000000000000000000000001")
	benchTarget = types.HexToAddress("0x1000000000000000000000000000000000000002")
)

// counterLoopBytecode is a synthetic benchmark payload: it loops `iterations`
// times decrementing a counter kept on the stack, then returns empty output.
// There is no fixed
// corpus of real-world bytecode bundled with this tool, so the loop count is
// baked into the bytecode at load time rather than read from calldata.
//
//	PUSH4 <iterations>   ; loop counter
//	JUMPDEST             ; loop head, pc = 5
//	DUP1
//	ISZERO
//	PUSH1 <end>
//	JUMPI
//	PUSH1 0x01
//	SWAP1
//	SUB
//	PUSH1 0x05
//	JUMP
//	JUMPDEST              ; end
//	PUSH1 0x00
//	PUSH1 0x00
//	RETURN
func counterLoopBytecode(iterations uint32) []byte {
	code := []byte{
		0x63, byte(iterations >> 24), byte(iterations >> 16), byte(iterations >> 8), byte(iterations), // PUSH4 n
		0x5b,                   // JUMPDEST (pc=5)
		0x80,                   // DUP1
		0x15,                   // ISZERO
		0x60, 0x00,             // PUSH1 <end> (patched below)
		0x57,                   // JUMPI
		0x60, 0x01,             // PUSH1 0x01
		0x90,                   // SWAP1
		0x03,                   // SUB
		0x60, 0x05,             // PUSH1 0x05 (loop head)
		0x56,                   // JUMP
		0x5b,                   // JUMPDEST (end)
		0x60, 0x00,             // PUSH1 0x00
		0x60, 0x00,             // PUSH1 0x00
		0xf3,                   // RETURN
	}
	end := len(code) - 6 // JUMPDEST(end), two PUSH1 pairs, and RETURN follow it
	code[9] = byte(end)
	return code
}

func run(c *cli.Context) error {
	iterations := uint32(c.Uint64("iterations"))
	runs := c.Int("runs")
	gasLimit := c.Uint64("gas-limit")

	bytecode := counterLoopBytecode(iterations)

	db := state.NewMemoryStore()
	reader := state.NewPlainStateReader(db)
	writer := state.NewPlainStateWriter(db)
	ibs := state.New(reader, writer)

	ibs.CreateAccount(benchCaller, false)
	ibs.AddBalance(benchCaller, uint256.NewInt(^uint64(0)))
	ibs.CreateAccount(benchTarget, false)
	ibs.SetCode(benchTarget, bytecode)

	chainConfig := params.AllDevChainConfig
	rules := chainConfig.Rules(1, uint64(time.Now().Unix()))

	blockCtx := evmtypes.BlockContext{
		CanTransfer: func(db evmtypes.IntraBlockState, addr types.Address, amount *uint256.Int) bool {
			return db.GetBalance(addr).Cmp(amount) >= 0
		},
		Transfer: func(db evmtypes.IntraBlockState, sender, recipient types.Address, amount *uint256.Int, bailout bool) {
			db.SubBalance(sender, amount)
			db.AddBalance(recipient, amount)
		},
		GetHash: func(n uint64) types.Hash {
			return types.Hash{}
		},
		Coinbase:    types.Address{},
		GasLimit:    gasLimit,
		BlockNumber: 1,
		Time:        uint64(time.Now().Unix()),
		Difficulty:  big.NewInt(1),
		BaseFee:     uint256.NewInt(0),
	}

	fmt.Printf("running counter-loop benchmark: iterations=%d runs=%d gas-limit=%d\n", iterations, runs, gasLimit)

	registry := precompiles.NewRegistry(&rules, precompiles.WithMetrics(true))

	start := time.Now()
	var lastUsedGas uint64
	for i := 0; i < runs; i++ {
		evm := vm.NewEVMWithPrecompiles(blockCtx, evmtypes.TxContext{Origin: benchCaller, GasPrice: uint256.NewInt(1)}, ibs, chainConfig, &rules, vm.Config{}, registry)
		driver := core.NewTxDriver(evm)

		msg := &core.Message{
			From:      benchCaller,
			To:        &benchTarget,
			GasLimit:  gasLimit,
			GasFeeCap: uint256.NewInt(1),
			GasTipCap: uint256.NewInt(1),
			Value:     uint256.NewInt(0),
		}

		result, err := driver.Transact(msg)
		if err != nil {
			return fmt.Errorf("run %d: %w", i, err)
		}
		if result.VMErr != nil {
			return fmt.Errorf("run %d: vm error: %w", i, result.VMErr)
		}
		lastUsedGas = result.UsedGas
	}
	elapsed := time.Since(start)

	fmt.Printf("elapsed: %s\n", elapsed)
	fmt.Printf("last run gas used: %d\n", lastUsedGas)
	if runs > 0 {
		fmt.Printf("avg per run: %s\n", elapsed/time.Duration(runs))
	}
	registry.LogStats()
	return nil
}

func main() {
	app := &cli.App{
		Name:      "bench",
		Usage:     "time a bytecode-only contract call through the EVM",
		UsageText: usageText,
		Flags: []cli.Flag{
			&cli.Uint64Flag{
				Name:  "iterations",
				Usage: "loop iterations baked into the benchmark bytecode",
				Value: 100000,
			},
			&cli.IntFlag{
				Name:  "runs",
				Usage: "number of times to repeat the call",
				Value: 10,
			},
			&cli.Uint64Flag{
				Name:  "gas-limit",
				Usage: "gas limit given to each run",
				Value: 1_000_000_000,
			},
		},
		Action:    run,
		Copyright: "Copyright 2022-2026 The N42 Authors",
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
