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
	"math"

	"github.com/holiman/uint256"
)

// Per-opcode gas tiers, the Yellow Paper's Gquickstep..Gextstep.
const (
	GasQuickStep   uint64 = 2
	GasFastestStep uint64 = 3
	GasFastStep    uint64 = 5
	GasMidStep     uint64 = 8
	GasSlowStep    uint64 = 10
	GasExtStep     uint64 = 20

	GasMemoryWord  uint64 = 3
	GasQuadCoeffDiv uint64 = 512
)

// safeMul multiplies a and b, reporting overflow rather than wrapping.
func safeMul(a, b uint64) (uint64, bool) {
	if a == 0 || b == 0 {
		return 0, false
	}
	result := a * b
	return result, result/b != a
}

// safeAdd adds a and b, reporting overflow rather than wrapping.
func safeAdd(a, b uint64) (uint64, bool) {
	result := a + b
	return result, result < a
}

// toWordSize rounds size up to the nearest multiple of 32, measured in
// 32-byte words. Clamps to avoid overflowing on sizes near math.MaxUint64.
func toWordSize(size uint64) uint64 {
	if size > math.MaxUint64-31 {
		return math.MaxUint64/32 + 1
	}
	return (size + 31) / 32
}

// ToWordSize is the exported form of toWordSize, used by callers outside
// this package that need the same 32-byte word rounding (e.g. intrinsic
// gas calculation for calldata).
func ToWordSize(size uint64) uint64 {
	return toWordSize(size)
}

// callGas computes the gas to pass to a CALL-family operation. Post EIP-150
// the caller may request more gas than is available; the callee only ever
// gets 63/64 of what remains. Pre EIP-150 the requested cost must fit in
// uint64 or the call fails outright.
func callGas(isEip150 bool, availableGas, base uint64, callCost *uint256.Int) (uint64, error) {
	if isEip150 {
		availableGas = availableGas - base
		gas := availableGas - availableGas/64
		if !callCost.IsUint64() || gas < callCost.Uint64() {
			return gas, nil
		}
	}
	if !callCost.IsUint64() {
		return 0, ErrGasUintOverflow
	}
	return callCost.Uint64(), nil
}

// calcMemSize64 computes the memory size in bytes needed to cover
// [off, off+l), clamped to uint64 and reporting overflow. A zero length
// never touches memory regardless of offset.
func calcMemSize64(off, l *uint256.Int) (uint64, bool) {
	if l.IsZero() {
		return 0, false
	}
	if !l.IsUint64() {
		return 0, true
	}
	return calcMemSize64WithUint(off, l.Uint64())
}

// calcMemSize64WithUint is calcMemSize64 with the length already resolved
// to a uint64.
func calcMemSize64WithUint(off *uint256.Int, length64 uint64) (uint64, bool) {
	if !off.IsUint64() {
		return 0, true
	}
	offset64 := off.Uint64()
	val, overflow := safeAdd(offset64, length64)
	if overflow {
		return 0, true
	}
	return val, false
}

// memoryGasCost charges the quadratic Yellow Paper memory-expansion cost for
// growing mem to newMemSize bytes. mem.lastGasCost remembers the total cost
// already paid, so repeated calls against the same frame only ever charge
// the incremental cost of the additional words.
func memoryGasCost(mem *Memory, newMemSize uint64) (uint64, error) {
	if newMemSize == 0 {
		return 0, nil
	}
	if newMemSize > math.MaxUint64-31 {
		return 0, ErrGasUintOverflow
	}
	newMemSizeWords := toWordSize(newMemSize)
	newMemSize = newMemSizeWords * 32

	if newMemSize > uint64(mem.Len()) {
		square := newMemSizeWords * newMemSizeWords
		linCoef := newMemSizeWords * GasMemoryWord
		quadCoef := square / GasQuadCoeffDiv
		newTotalFee := linCoef + quadCoef

		fee := newTotalFee - mem.lastGasCost
		mem.lastGasCost = newTotalFee
		return fee, nil
	}
	return 0, nil
}

// getData returns size bytes of data starting at start, zero-padded when
// the requested range runs past the end of data.
func getData(data []byte, start, size uint64) []byte {
	length := uint64(len(data))
	if start > length {
		start = length
	}
	end := start + size
	if end > length {
		end = length
	}
	result := make([]byte, size)
	copy(result, data[start:end])
	return result
}

// getDataBig is getData with a uint256 start offset, clamping to the end
// of data on overflow rather than wrapping.
func getDataBig(data []byte, start *uint256.Int, size uint64) []byte {
	if !start.IsUint64() {
		return getData(data, uint64(len(data)), size)
	}
	return getData(data, start.Uint64(), size)
}

// allZero reports whether every byte in data is zero.
func allZero(data []byte) bool {
	for _, b := range data {
		if b != 0 {
			return false
		}
	}
	return true
}
