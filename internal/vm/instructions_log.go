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
	"github.com/vertexchain/evmcore/common/block"
	"github.com/vertexchain/evmcore/common/types"
)

// makeLog returns the execution function for LOGn (0xa0-0xa4), n in [0,4].
func makeLog(n int) executionFunc {
	return func(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
		if interpreter.readOnly {
			return nil, ErrWriteProtection
		}
		stk := scope.Stack
		mStart, mSize := stk.Pop(), stk.Pop()

		topics := make([]types.Hash, n)
		for i := 0; i < n; i++ {
			topic := stk.Pop()
			topics[i] = types.Hash(topic.Bytes32())
		}

		data := scope.Memory.GetCopy(int64(mStart.Uint64()), int64(mSize.Uint64()))
		interpreter.evm.IntraBlockState().AddLog(&block.Log{
			Address: scope.Contract.Address(),
			Topics:  topics,
			Data:    data,
		})
		return nil, nil
	}
}
