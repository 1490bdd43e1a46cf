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
	"math/bits"
)

// =============================================================================
// EIP-7939: CLZ - Count Leading Zeros (Prague/Fusaka)
// This is a proposed EIP for counting leading zeros in a 256-bit value
// =============================================================================

// enable7939 applies EIP-7939 "CLZ - Count Leading Zeros"
// - Adds CLZ (0x1e) - count leading zeros
func enable7939(jt *JumpTable) {
	jt[CLZ] = &operation{
		execute:     opClz,
		constantGas: GasFastStep,
		numPop:      1,
		numPush:     1,
	}
}

// opClz implements CLZ (0x1e) - Count Leading Zeros
// Returns the number of leading zero bits in a 256-bit value
func opClz(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	x := scope.Stack.Peek()
	
	// Count leading zeros in 256-bit value
	// uint256 is stored as [4]uint64 in little-endian order
	// We need to check from most significant to least significant
	var result uint64
	
	if x.IsZero() {
		result = 256
	} else {
		// Get the bytes and count leading zeros
		bytes := x.Bytes32()
		result = 0
		for i := 0; i < 32; i++ {
			if bytes[i] == 0 {
				result += 8
			} else {
				result += uint64(bits.LeadingZeros8(bytes[i]))
				break
			}
		}
	}
	
	x.SetUint64(result)
	return nil, nil
}

func init() {
	// Register Prague EIPs
	activators[7939] = enable7939
}

