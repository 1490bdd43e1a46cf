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
)

func pushCreateResult(scope *ScopeContext, interpreter *EVMInterpreter, ret []byte, contractAddr interface{ Bytes() []byte }, leftOverGas uint64, err error) {
	scope.Contract.Gas += leftOverGas

	if err != nil {
		scope.Stack.Push(new(uint256.Int))
	} else {
		scope.Stack.Push(new(uint256.Int).SetBytes(contractAddr.Bytes()))
	}

	if err == ErrExecutionReverted {
		interpreter.returnData = ret
		return
	}
	interpreter.returnData = nil
}

// opCreate implements CREATE (0xf0).
func opCreate(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	if interpreter.readOnly {
		return nil, ErrWriteProtection
	}
	var (
		value  = scope.Stack.Pop()
		offset = scope.Stack.Pop()
		size   = scope.Stack.Pop()
	)
	input := scope.Memory.GetCopy(int64(offset.Uint64()), int64(size.Uint64()))

	gas := scope.Contract.Gas
	gas -= gas / 64
	scope.Contract.Gas -= gas

	ret, addr, leftOverGas, err := interpreter.evm.Create(scope.Contract, input, gas, value)
	pushCreateResult(scope, interpreter, ret, addr, leftOverGas, err)
	return nil, nil
}

// opCreate2 implements CREATE2 (0xf5).
func opCreate2(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	if interpreter.readOnly {
		return nil, ErrWriteProtection
	}
	var (
		value  = scope.Stack.Pop()
		offset = scope.Stack.Pop()
		size   = scope.Stack.Pop()
		salt   = scope.Stack.Pop()
	)
	input := scope.Memory.GetCopy(int64(offset.Uint64()), int64(size.Uint64()))

	gas := scope.Contract.Gas
	gas -= gas / 64
	scope.Contract.Gas -= gas

	ret, addr, leftOverGas, err := interpreter.evm.Create2(scope.Contract, input, gas, value, salt)
	pushCreateResult(scope, interpreter, ret, addr, leftOverGas, err)
	return nil, nil
}
