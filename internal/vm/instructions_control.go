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

// opStop implements STOP (0x00).
func opStop(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	return nil, nil
}

// opJump implements JUMP (0x56).
func opJump(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	dest := scope.Stack.Pop()
	if !scope.Contract.validJumpdest(dest, interpreter.evm.AnalysisCache()) {
		return nil, ErrInvalidJump
	}
	*pc = dest.Uint64()
	return nil, nil
}

// opJumpi implements JUMPI (0x57).
func opJumpi(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	dest, cond := scope.Stack.Pop(), scope.Stack.Pop()
	if !cond.IsZero() {
		if !scope.Contract.validJumpdest(dest, interpreter.evm.AnalysisCache()) {
			return nil, ErrInvalidJump
		}
		*pc = dest.Uint64()
		return nil, nil
	}
	*pc++
	return nil, nil
}

// opJumpdest implements JUMPDEST (0x5b), a no-op landing pad for JUMP/JUMPI.
func opJumpdest(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	return nil, nil
}

// opPc implements PC (0x58).
func opPc(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.Push(new(uint256.Int).SetUint64(*pc))
	return nil, nil
}

// opMsize implements MSIZE (0x59).
func opMsize(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.Push(new(uint256.Int).SetUint64(uint64(scope.Memory.Len())))
	return nil, nil
}

// opGas implements GAS (0x5a), pushing the gas remaining after this
// instruction's own constant cost has already been deducted by the loop.
func opGas(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.Push(new(uint256.Int).SetUint64(scope.Contract.Gas))
	return nil, nil
}

// opReturn implements RETURN (0xf3).
func opReturn(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	offset, size := scope.Stack.Pop(), scope.Stack.Pop()
	ret := scope.Memory.GetCopy(int64(offset.Uint64()), int64(size.Uint64()))
	return ret, nil
}

// opRevert implements REVERT (0xfd). The return value doubles as the
// revert reason; ErrExecutionReverted signals the caller to keep it rather
// than discard it the way other errors do.
func opRevert(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	offset, size := scope.Stack.Pop(), scope.Stack.Pop()
	ret := scope.Memory.GetCopy(int64(offset.Uint64()), int64(size.Uint64()))
	return ret, ErrExecutionReverted
}

// opInvalid implements INVALID (0xfe) and any opcode byte with no entry in
// the active jump table.
func opInvalid(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	return nil, ErrInvalidCode
}

// opUndefined is used for opcode slots that are simply unassigned in the
// active fork, distinct from the explicit INVALID (0xfe) opcode.
func opUndefined(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	return nil, ErrInvalidCode
}

// opSelfdestruct implements SELFDESTRUCT (0xff): it always moves the
// account's balance to beneficiary, then flags the account. Whether that
// flag causes Finalise to also sweep code/storage/nonce, or only the
// balance zeroing applied here survives, is decided inside
// IntraBlockState.Selfdestruct by the EIP-6780 same-transaction-creation
// check (enable6780 in eips_cancun.go only repatches the opcode's gas
// schedule, not this dispatch).
func opSelfdestruct(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	if interpreter.readOnly {
		return nil, ErrWriteProtection
	}
	beneficiary := types.Address(scope.Stack.Pop().Bytes20())
	ibs := interpreter.evm.IntraBlockState()
	balance := ibs.GetBalance(scope.Contract.Address())
	ibs.AddBalance(beneficiary, balance)
	ibs.Selfdestruct(scope.Contract.Address())
	return nil, nil
}
