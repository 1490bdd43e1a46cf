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

// opAddress implements ADDRESS (0x30).
func opAddress(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.Push(new(uint256.Int).SetBytes(scope.Contract.Address().Bytes()))
	return nil, nil
}

// opOrigin implements ORIGIN (0x32).
func opOrigin(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.Push(new(uint256.Int).SetBytes(interpreter.evm.TxContext().Origin.Bytes()))
	return nil, nil
}

// opCaller implements CALLER (0x33).
func opCaller(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.Push(new(uint256.Int).SetBytes(scope.Contract.Caller().Bytes()))
	return nil, nil
}

// opCallValue implements CALLVALUE (0x34).
func opCallValue(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.Push(new(uint256.Int).Set(scope.Contract.Value()))
	return nil, nil
}

// opCalldataLoad implements CALLDATALOAD (0x35).
func opCalldataLoad(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	x := scope.Stack.Peek()
	if offset, overflow := x.Uint64WithOverflow(); !overflow {
		data := getData(scope.Contract.Input, offset, 32)
		x.SetBytes(data)
	} else {
		x.Clear()
	}
	return nil, nil
}

// opCalldataSize implements CALLDATASIZE (0x36).
func opCalldataSize(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.Push(new(uint256.Int).SetUint64(uint64(len(scope.Contract.Input))))
	return nil, nil
}

// opCalldataCopy implements CALLDATACOPY (0x37).
func opCalldataCopy(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	memOffset, dataOffset, length := scope.Stack.Pop(), scope.Stack.Pop(), scope.Stack.Pop()
	dataOffset64, overflow := dataOffset.Uint64WithOverflow()
	if overflow {
		dataOffset64 = 0xffffffffffffffff
	}
	data := getData(scope.Contract.Input, dataOffset64, length.Uint64())
	scope.Memory.Set(memOffset.Uint64(), length.Uint64(), data)
	return nil, nil
}

// opCodeSize implements CODESIZE (0x38).
func opCodeSize(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.Push(new(uint256.Int).SetUint64(uint64(len(scope.Contract.Code))))
	return nil, nil
}

// opCodeCopy implements CODECOPY (0x39).
func opCodeCopy(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	memOffset, codeOffset, length := scope.Stack.Pop(), scope.Stack.Pop(), scope.Stack.Pop()
	codeOffset64, overflow := codeOffset.Uint64WithOverflow()
	if overflow {
		codeOffset64 = 0xffffffffffffffff
	}
	data := getData(scope.Contract.Code, codeOffset64, length.Uint64())
	scope.Memory.Set(memOffset.Uint64(), length.Uint64(), data)
	return nil, nil
}

// opGasPrice implements GASPRICE (0x3a).
func opGasPrice(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.Push(new(uint256.Int).Set(interpreter.evm.TxContext().GasPrice))
	return nil, nil
}

// opReturndataSize implements RETURNDATASIZE (0x3d).
func opReturndataSize(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.Push(new(uint256.Int).SetUint64(uint64(len(interpreter.returnData))))
	return nil, nil
}

// opReturndataCopy implements RETURNDATACOPY (0x3e).
func opReturndataCopy(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	memOffset, dataOffset, length := scope.Stack.Pop(), scope.Stack.Pop(), scope.Stack.Pop()

	offset64, overflow := dataOffset.Uint64WithOverflow()
	if overflow {
		return nil, ErrReturnDataOutOfBounds
	}
	length64, overflow := length.Uint64WithOverflow()
	if overflow {
		return nil, ErrReturnDataOutOfBounds
	}
	end, overflow := safeAdd(offset64, length64)
	if overflow || uint64(len(interpreter.returnData)) < end {
		return nil, ErrReturnDataOutOfBounds
	}
	scope.Memory.Set(memOffset.Uint64(), length64, interpreter.returnData[offset64:end])
	return nil, nil
}

// opExtcodehash implements EXTCODEHASH (0x3f).
func opExtcodehash(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	slot := scope.Stack.Peek()
	addr := types.Address(slot.Bytes20())
	ibs := interpreter.evm.IntraBlockState()
	if ibs.Empty(addr) {
		slot.Clear()
		return nil, nil
	}
	slot.SetBytes(ibs.GetCodeHash(addr).Bytes())
	return nil, nil
}

// opBlockhash implements BLOCKHASH (0x40).
func opBlockhash(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	num := scope.Stack.Peek()
	num64, overflow := num.Uint64WithOverflow()

	ctx := interpreter.evm.Context()
	var upper, lower uint64
	upper = ctx.BlockNumber
	if upper > 256 {
		lower = upper - 256
	}
	if !overflow && num64 >= lower && num64 < upper && ctx.GetHash != nil {
		h := ctx.GetHash(num64)
		num.SetBytes(h.Bytes())
	} else {
		num.Clear()
	}
	return nil, nil
}

// opCoinbase implements COINBASE (0x41).
func opCoinbase(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.Push(new(uint256.Int).SetBytes(interpreter.evm.Context().Coinbase.Bytes()))
	return nil, nil
}

// opTimestamp implements TIMESTAMP (0x42).
func opTimestamp(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.Push(new(uint256.Int).SetUint64(interpreter.evm.Context().Time))
	return nil, nil
}

// opNumber implements NUMBER (0x43).
func opNumber(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.Push(new(uint256.Int).SetUint64(interpreter.evm.Context().BlockNumber))
	return nil, nil
}

// opDifficulty implements DIFFICULTY/PREVRANDAO (0x44). Post-Merge this
// slot reports PREVRANDAO (EIP-4399); the block context carries one or the
// other depending on fork, never both.
func opDifficulty(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	ctx := interpreter.evm.Context()
	if ctx.PrevRanDao != nil {
		scope.Stack.Push(new(uint256.Int).SetBytes(ctx.PrevRanDao.Bytes()))
		return nil, nil
	}
	v := new(uint256.Int)
	if ctx.Difficulty != nil {
		v.SetFromBig(ctx.Difficulty)
	}
	scope.Stack.Push(v)
	return nil, nil
}

// opGasLimit implements GASLIMIT (0x45).
func opGasLimit(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.Push(new(uint256.Int).SetUint64(interpreter.evm.Context().GasLimit))
	return nil, nil
}

// opChainID implements CHAINID (0x46).
func opChainID(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	v := new(uint256.Int).SetUint64(interpreter.evm.ChainConfig().ChainID.Uint64())
	scope.Stack.Push(v)
	return nil, nil
}

// opSelfBalance implements SELFBALANCE (0x47).
func opSelfBalance(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	balance := interpreter.evm.IntraBlockState().GetBalance(scope.Contract.Address())
	scope.Stack.Push(new(uint256.Int).Set(balance))
	return nil, nil
}

// opBaseFee implements BASEFEE (0x48).
func opBaseFee(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	baseFee := interpreter.evm.Context().BaseFee
	v := new(uint256.Int)
	if baseFee != nil {
		v.Set(baseFee)
	}
	scope.Stack.Push(v)
	return nil, nil
}
