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
	"github.com/vertexchain/evmcore/common/hash"
)

// opMload implements MLOAD (0x51).
func opMload(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	offset := scope.Stack.Peek()
	off := offset.Uint64()
	offset.SetBytes(scope.Memory.GetPtr(int64(off), 32))
	return nil, nil
}

// opMstore implements MSTORE (0x52).
func opMstore(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	offset, val := scope.Stack.Pop(), scope.Stack.Pop()
	scope.Memory.Set32(offset.Uint64(), val)
	return nil, nil
}

// opMstore8 implements MSTORE8 (0x53).
func opMstore8(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	offset, val := scope.Stack.Pop(), scope.Stack.Pop()
	scope.Memory.Set(offset.Uint64(), 1, []byte{byte(val.Uint64())})
	return nil, nil
}

// opKeccak256 implements KECCAK256 (0x20).
func opKeccak256(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	offset, size := scope.Stack.Pop(), scope.Stack.Peek()
	data := scope.Memory.GetPtr(int64(offset.Uint64()), int64(size.Uint64()))
	h := hash.Keccak256(data)
	size.SetBytes(h)
	return nil, nil
}
