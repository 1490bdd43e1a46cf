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
	"github.com/holiman/uint256"
	"github.com/vertexchain/evmcore/common/types"
)

// callArgs extracts the common CALL-family stack layout, omitting value for
// DELEGATECALL/STATICCALL which have no endowment operand.
type callArgs struct {
	gas        uint64
	addr       types.Address
	value      *uint256.Int
	argsOffset uint64
	argsSize   uint64
	retOffset  uint64
	retSize    uint64
}

func popCallArgs(scope *ScopeContext, withValue bool) callArgs {
	stk := scope.Stack
	a := callArgs{}
	a.gas = stk.Pop().Uint64()
	a.addr = types.Address(stk.Pop().Bytes20())
	if withValue {
		a.value = stk.Pop()
	} else {
		a.value = new(uint256.Int)
	}
	a.argsOffset = stk.Pop().Uint64()
	a.argsSize = stk.Pop().Uint64()
	a.retOffset = stk.Pop().Uint64()
	a.retSize = stk.Pop().Uint64()
	return a
}

func pushCallResult(scope *ScopeContext, interpreter *EVMInterpreter, ret []byte, leftOverGas uint64, err error, a callArgs) {
	scope.Contract.Gas += leftOverGas
	interpreter.returnData = ret

	if err == nil {
		scope.Stack.Push(new(uint256.Int).SetOne())
	} else {
		scope.Stack.Push(new(uint256.Int))
	}

	if err == nil || err == ErrExecutionReverted {
		if a.retSize > 0 {
			n := uint64(len(ret))
			if n > a.retSize {
				n = a.retSize
			}
			scope.Memory.Set(a.retOffset, n, ret[:n])
		}
	}
}

// opCall implements CALL (0xf1).
func opCall(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	a := popCallArgs(scope, true)
	args := scope.Memory.GetCopy(int64(a.argsOffset), int64(a.argsSize))

	gas := a.gas
	if gas > scope.Contract.Gas {
		gas = scope.Contract.Gas
	}
	scope.Contract.Gas -= gas

	ret, leftOverGas, err := interpreter.evm.Call(scope.Contract, a.addr, args, gas, a.value, false)
	pushCallResult(scope, interpreter, ret, leftOverGas, err, a)
	return nil, nil
}

// opCallCode implements CALLCODE (0xf2).
func opCallCode(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	a := popCallArgs(scope, true)
	args := scope.Memory.GetCopy(int64(a.argsOffset), int64(a.argsSize))

	gas := a.gas
	if gas > scope.Contract.Gas {
		gas = scope.Contract.Gas
	}
	scope.Contract.Gas -= gas

	ret, leftOverGas, err := interpreter.evm.CallCode(scope.Contract, a.addr, args, gas, a.value)
	pushCallResult(scope, interpreter, ret, leftOverGas, err, a)
	return nil, nil
}

// opDelegateCall implements DELEGATECALL (0xf4).
func opDelegateCall(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	a := popCallArgs(scope, false)
	args := scope.Memory.GetCopy(int64(a.argsOffset), int64(a.argsSize))

	gas := a.gas
	if gas > scope.Contract.Gas {
		gas = scope.Contract.Gas
	}
	scope.Contract.Gas -= gas

	ret, leftOverGas, err := interpreter.evm.DelegateCall(scope.Contract, a.addr, args, gas)
	pushCallResult(scope, interpreter, ret, leftOverGas, err, a)
	return nil, nil
}

// opStaticCall implements STATICCALL (0xfa).
func opStaticCall(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	a := popCallArgs(scope, false)
	args := scope.Memory.GetCopy(int64(a.argsOffset), int64(a.argsSize))

	gas := a.gas
	if gas > scope.Contract.Gas {
		gas = scope.Contract.Gas
	}
	scope.Contract.Gas -= gas

	ret, leftOverGas, err := interpreter.evm.StaticCall(scope.Contract, a.addr, args, gas)
	pushCallResult(scope, interpreter, ret, leftOverGas, err, a)
	return nil, nil
}
