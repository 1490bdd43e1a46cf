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

package vm

import (
	"fmt"
	"sync"

	"github.com/holiman/uint256"
	"github.com/vertexchain/evmcore/common/types"
	"github.com/vertexchain/evmcore/internal/vm/stack"
	"github.com/vertexchain/evmcore/params"
)

// EVMLogger captures EVM execution traces step by step. Implementations are
// free to discard any hook they don't need.
type EVMLogger interface {
	// CaptureStart is called once at the beginning of the outermost call.
	CaptureStart(from, to types.Address, create bool, input []byte, gas uint64, value *uint256.Int)
	// CaptureState is called before each opcode executes.
	CaptureState(pc uint64, op OpCode, gas, cost uint64, scope *ScopeContext, rData []byte, depth int, err error)
	// CaptureEnd is called once at the end of the outermost call.
	CaptureEnd(output []byte, gasUsed uint64, err error)
	// CaptureEnter is called at the start of a nested call (CALL/CREATE/...).
	CaptureEnter(typ OpCode, from, to types.Address, input []byte, gas uint64, value *uint256.Int)
	// CaptureExit is called at the end of a nested call.
	CaptureExit(output []byte, gasUsed uint64, err error)
}

// Config holds the options that select an interpreter's behavior beyond
// what the active fork rules already determine.
type Config struct {
	Debug        bool
	Tracer       EVMLogger
	NoRecursion  bool // disallows CALL/CALLCODE/DELEGATECALL/STATICCALL
	NoBaseFee    bool // forces a zero BASEFEE, used by some RPC call simulations
	SkipAnalysis bool // skips the jumpdest analysis and trusts the bytecode as-is
	ExtraEips    []int
}

// HasEip3860 reports whether EIP-3860 init-code-size metering is active,
// either natively (Shanghai onward) or via an explicit ExtraEips override.
func (c *Config) HasEip3860(rules *params.Rules) bool {
	if rules != nil && rules.IsShanghai {
		return true
	}
	for _, eip := range c.ExtraEips {
		if eip == 3860 {
			return true
		}
	}
	return false
}

// ScopeContext groups the operand stack, memory, and running contract a
// single call frame's opcodes operate against.
type ScopeContext struct {
	Memory      *Memory
	Stack       *stack.Stack
	Contract    *Contract
	ReturnStack *stack.ReturnStack
}

// VM carries the reentrant-safe read-only flag shared by EVMInterpreter and
// exercised standalone by its tests. setReadonly nests correctly: an inner
// STATICCALL entering an already-read-only frame gets a no-op cleanup, so
// the inner call can never accidentally clear the outer call's read-only
// mode on return.
type VM struct {
	readOnly bool
}

func (vm *VM) getReadonly() bool {
	return vm.readOnly
}

// setReadonly enables read-only mode if it isn't already active and returns
// a cleanup that restores it to off. If read-only mode is already active,
// the returned cleanup is a no-op.
func (vm *VM) setReadonly(readOnly bool) func() {
	if readOnly && !vm.readOnly {
		vm.readOnly = true
		return func() { vm.readOnly = false }
	}
	return vm.noop
}

func (vm *VM) disableReadonly() {
	vm.readOnly = false
}

func (vm *VM) noop() {}

// Interpreter is the contract execution engine EVM.call/create drive.
type Interpreter interface {
	Run(contract *Contract, input []byte, readOnly bool) ([]byte, error)
}

// memPoolForInterpreter recycles *Memory across call frames; Reset clears
// the backing slice length (not its capacity) so deep call chains don't
// keep reallocating.
var pool = sync.Pool{
	New: func() interface{} {
		return NewMemory()
	},
}

// EVMInterpreter is the Interpreter that executes a fork's active JumpTable
// against a contract's bytecode.
type EVMInterpreter struct {
	VM

	evm        *EVM
	table      *JumpTable
	returnData []byte
}

var _ Interpreter = (*EVMInterpreter)(nil)

// NewEVMInterpreter returns an interpreter bound to evm, with the jump table
// selected for evm's active chain rules.
func NewEVMInterpreter(evm *EVM) *EVMInterpreter {
	table := GetCachedJumpTable(0, evm.ChainRules())
	return &EVMInterpreter{evm: evm, table: &table}
}

// Depth returns the call stack depth of the EVM this interpreter belongs to.
func (in *EVMInterpreter) Depth() int {
	return in.evm.depth
}

// Run interprets contract's code starting at pc 0, until it halts, reverts,
// or runs out of gas. readOnly propagates STATICCALL's write-protection
// down into nested calls without requiring every frame to re-derive it.
func (in *EVMInterpreter) Run(contract *Contract, input []byte, readOnly bool) ([]byte, error) {
	if readOnly && !in.readOnly {
		defer in.setReadonly(true)()
	}

	contract.Input = input
	in.returnData = nil

	if len(contract.Code) == 0 {
		return nil, nil
	}

	cfg := in.evm.Config()
	var (
		mem   = pool.Get().(*Memory)
		stk   = stack.New()
		rstk  = stack.NewReturnStack()
		pc    uint64
		cost  uint64
		debug = cfg.Debug && cfg.Tracer != nil
	)
	mem.Reset()
	defer func() {
		mem.Reset()
		pool.Put(mem)
		stack.ReturnNormalStack(stk)
		stack.ReturnRStack(rstk)
	}()

	scope := &ScopeContext{
		Memory:      mem,
		Stack:       stk,
		Contract:    contract,
		ReturnStack: rstk,
	}

	for {
		op := contract.GetOp(pc)
		operation := in.table[op]
		if operation == nil {
			return nil, &ErrInvalidOpCode{opcode: op}
		}

		if sLen := stk.Len(); sLen < operation.numPop {
			return nil, &ErrStackUnderflow{stackLen: sLen, required: operation.numPop}
		} else if sLen-operation.numPop+operation.numPush > stack.Limit {
			return nil, &ErrStackOverflow{stackLen: sLen, limit: stack.Limit}
		}

		gasBefore := contract.Gas
		if operation.constantGas > 0 {
			if !contract.UseGas(operation.constantGas) {
				return nil, ErrOutOfGas
			}
		}

		var memorySize uint64
		if operation.memorySize != nil {
			size, overflow := operation.memorySize(stk)
			if overflow {
				return nil, ErrGasUintOverflow
			}
			if memorySize, overflow = safeMul(toWordSize(size), 32); overflow {
				return nil, ErrGasUintOverflow
			}
		}

		if operation.dynamicGas != nil {
			dCost, err := operation.dynamicGas(in.evm, contract, stk, mem, memorySize)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrOutOfGas, err)
			}
			if !contract.UseGas(dCost) {
				return nil, ErrOutOfGas
			}
		}

		if memorySize > uint64(mem.Len()) {
			mem.Resize(memorySize)
		}
		cost = gasBefore - contract.Gas

		if debug {
			cfg.Tracer.CaptureState(pc, op, gasBefore, cost, scope, in.returnData, in.evm.depth, nil)
		}

		ret, err := operation.execute(&pc, in, scope)
		if err != nil {
			if err == ErrExecutionReverted {
				return ret, err
			}
			return nil, err
		}

		if op != JUMP && op != JUMPI {
			pc++
		}

		switch op {
		case STOP:
			return nil, nil
		case RETURN:
			return ret, nil
		case SELFDESTRUCT:
			return nil, nil
		}
	}
}
