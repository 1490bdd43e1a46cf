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

// opSload implements SLOAD (0x54).
func opSload(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	loc := scope.Stack.Peek()
	key := types.Hash(loc.Bytes32())
	var val uint256.Int
	interpreter.evm.IntraBlockState().GetState(scope.Contract.Address(), &key, &val)
	loc.Set(&val)
	return nil, nil
}

// opSstore implements SSTORE (0x55).
func opSstore(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	if interpreter.readOnly {
		return nil, ErrWriteProtection
	}
	loc, val := scope.Stack.Pop(), scope.Stack.Pop()
	key := types.Hash(loc.Bytes32())
	interpreter.evm.IntraBlockState().SetState(scope.Contract.Address(), &key, *val)
	return nil, nil
}

// opBalance implements BALANCE (0x31).
func opBalance(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	slot := scope.Stack.Peek()
	addr := types.Address(slot.Bytes20())
	balance := interpreter.evm.IntraBlockState().GetBalance(addr)
	slot.Set(balance)
	return nil, nil
}

// opExtcodesize implements EXTCODESIZE (0x3b).
func opExtcodesize(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	slot := scope.Stack.Peek()
	addr := types.Address(slot.Bytes20())
	slot.SetUint64(uint64(interpreter.evm.IntraBlockState().GetCodeSize(addr)))
	return nil, nil
}

// opExtcodecopy implements EXTCODECOPY (0x3c).
func opExtcodecopy(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	var (
		stk        = scope.Stack
		addr       = types.Address(stk.Pop().Bytes20())
		memOffset  = stk.Pop()
		codeOffset = stk.Pop()
		length     = stk.Pop()
	)
	codeOffset64, overflow := codeOffset.Uint64WithOverflow()
	if overflow {
		codeOffset64 = 0xffffffffffffffff
	}
	code := interpreter.evm.IntraBlockState().GetCode(addr)
	data := getData(code, codeOffset64, length.Uint64())
	scope.Memory.Set(memOffset.Uint64(), length.Uint64(), data)
	return nil, nil
}
