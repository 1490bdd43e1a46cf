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
	"github.com/vertexchain/evmcore/internal/vm/stack"
	"github.com/vertexchain/evmcore/params"
)

// accessListState is the subset of StateDB that EIP-2929 cold/warm checks
// need; kept narrow so the helpers below can be unit tested against a
// fake instead of a full IntraBlockState.
type accessListState interface {
	AddressInAccessList(addr types.Address) bool
	AddAddressToAccessList(addr types.Address)
	SlotInAccessList(addr types.Address, slot types.Hash) (addressOk bool, slotOk bool)
	AddSlotToAccessList(addr types.Address, slot types.Hash)
}

// gasEIP2929AccountCheck charges ColdAccountAccessCost on first touch of addr
// this transaction, warming it for subsequent accesses. The opcode's
// constantGas already covers WarmStorageReadCost, so only the delta is
// returned here.
func gasEIP2929AccountCheck(ibs accessListState, addr types.Address) uint64 {
	if ibs.AddressInAccessList(addr) {
		return 0
	}
	ibs.AddAddressToAccessList(addr)
	return params.ColdAccountAccessCostEIP2929 - params.WarmStorageReadCostEIP2929
}

// gasEIP2929SlotCheck is gasEIP2929AccountCheck for a storage slot.
func gasEIP2929SlotCheck(ibs accessListState, addr types.Address, slot types.Hash) uint64 {
	if addrOk, slotOk := ibs.SlotInAccessList(addr, slot); addrOk && slotOk {
		return 0
	}
	ibs.AddSlotToAccessList(addr, slot)
	return params.ColdSloadCostEIP2929 - params.WarmStorageReadCostEIP2929
}

// gasSloadEIP2929 charges warm/cold gas for SLOAD (post Berlin).
func gasSloadEIP2929(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	slot := types.Hash(stk.Back(0).Bytes32())
	return gasEIP2929SlotCheck(evm.IntraBlockState(), contract.Address(), slot), nil
}

// gasBalanceEIP2929 charges warm/cold gas for BALANCE (post Berlin).
func gasBalanceEIP2929(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	addr := types.Address(stk.Back(0).Bytes20())
	return gasEIP2929AccountCheck(evm.IntraBlockState(), addr), nil
}

// gasExtcodesizeEIP2929 charges warm/cold gas for EXTCODESIZE (post Berlin).
func gasExtcodesizeEIP2929(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	addr := types.Address(stk.Back(0).Bytes20())
	return gasEIP2929AccountCheck(evm.IntraBlockState(), addr), nil
}

// gasExtcodehashEIP2929 charges warm/cold gas for EXTCODEHASH (post Berlin).
func gasExtcodehashEIP2929(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	addr := types.Address(stk.Back(0).Bytes20())
	return gasEIP2929AccountCheck(evm.IntraBlockState(), addr), nil
}

// gasExtcodecopyEIP2929 charges warm/cold gas plus per-word copy cost and
// memory expansion for EXTCODECOPY (post Berlin).
func gasExtcodecopyEIP2929(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	addr := types.Address(stk.Back(0).Bytes20())
	gas := gasEIP2929AccountCheck(evm.IntraBlockState(), addr)
	return addCopyAndMemGas(gas, stk.Back(3), mem, memorySize)
}

// addCopyAndMemGas adds CopyGas-per-word for a copy of wordCount bytes plus
// memory expansion cost onto base, reporting overflow as ErrGasUintOverflow.
func addCopyAndMemGas(base uint64, size *uint256.Int, mem *Memory, memorySize uint64) (uint64, error) {
	memExp, err := memoryGasCost(mem, memorySize)
	if err != nil {
		return 0, err
	}
	words, overflow := size.Uint64WithOverflow()
	if overflow {
		return 0, ErrGasUintOverflow
	}
	copyGas, overflow := safeMul(toWordSize(words), params.CopyGas)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	gas, overflow := safeAdd(base, memExp)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	gas, overflow = safeAdd(gas, copyGas)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	return gas, nil
}

// sstoreNetGasCost implements EIP-2200 net gas metering plus the EIP-3529
// refund cap, charging nothing pre-Berlin for the cold/warm surcharge (the
// caller adds that separately when active).
func sstoreNetGasCost(evm VMInterpreter, contract *Contract, key types.Hash, newVal *uint256.Int) uint64 {
	addr := contract.Address()
	ibs := evm.IntraBlockState()

	var current, original uint256.Int
	ibs.GetState(addr, &key, &current)
	ibs.GetCommittedState(addr, &key, &original)

	if current.Eq(newVal) {
		return params.SstoreNoopGasEIP2200
	}
	if original.Eq(&current) {
		if original.IsZero() {
			return params.SstoreInitGasEIP2200
		}
		if newVal.IsZero() {
			ibs.AddRefund(params.SstoreClearRefundEIP3529)
		}
		return params.SstoreCleanGasEIP2200
	}
	// Dirty slot: already modified earlier in this transaction.
	if !original.IsZero() {
		if current.IsZero() {
			ibs.SubRefund(params.SstoreClearRefundEIP3529)
		} else if newVal.IsZero() {
			ibs.AddRefund(params.SstoreClearRefundEIP3529)
		}
	}
	if original.Eq(newVal) {
		if original.IsZero() {
			ibs.AddRefund(params.SstoreInitRefundEIP2200)
		} else {
			ibs.AddRefund(params.SstoreCleanRefundEIP2200)
		}
	}
	return params.SstoreDirtyGasEIP2200
}

// gasSstoreEIP2929 combines EIP-2929 cold-slot surcharge with EIP-2200/3529
// net gas metering. constantGas is 0 for this opcode; all cost is computed
// here.
func gasSstoreEIP2929(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	if contract.Gas <= params.SstoreSentryGasEIP2200 {
		return 0, ErrOutOfGas
	}
	loc, val := stk.Back(0), stk.Back(1)
	key := types.Hash(loc.Bytes32())

	var coldGas uint64
	if addrOk, slotOk := evm.IntraBlockState().SlotInAccessList(contract.Address(), key); !(addrOk && slotOk) {
		evm.IntraBlockState().AddSlotToAccessList(contract.Address(), key)
		coldGas = params.ColdSloadCostEIP2929
	}
	return sstoreNetGasCost(evm, contract, key, val) + coldGas, nil
}

// --- CALL-family EIP-2929 dynamic gas ---

// callValueAndNewAccountGas adds CallValueTransferGas when value is
// non-zero, plus CallNewAccountGas when the callee does not yet exist
// (only applicable to CALL, which alone among the CALL-family can create
// an account as a side effect of the value transfer).
func callValueAndNewAccountGas(evm VMInterpreter, addr types.Address, value *uint256.Int, chargeNewAccount bool) uint64 {
	var gas uint64
	if !value.IsZero() {
		gas += params.CallValueTransferGas
		if chargeNewAccount && !evm.IntraBlockState().Exist(addr) {
			gas += params.CallNewAccountGas
		}
	}
	return gas
}

// gasCallEIP2929 charges warm/cold access, value transfer, new-account and
// memory expansion gas for CALL (post Berlin).
func gasCallEIP2929(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	addr := types.Address(stk.Back(1).Bytes20())
	gas := gasEIP2929AccountCheck(evm.IntraBlockState(), addr)
	gas += callValueAndNewAccountGas(evm, addr, stk.Back(2), true)
	return addMemGas(gas, mem, memorySize)
}

// gasCallCodeEIP2929 is gasCallEIP2929 without new-account gas: CALLCODE
// always executes in the caller's own account.
func gasCallCodeEIP2929(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	addr := types.Address(stk.Back(1).Bytes20())
	gas := gasEIP2929AccountCheck(evm.IntraBlockState(), addr)
	gas += callValueAndNewAccountGas(evm, addr, stk.Back(2), false)
	return addMemGas(gas, mem, memorySize)
}

// gasDelegateCallEIP2929 charges warm/cold access and memory expansion for
// DELEGATECALL (post Berlin); DELEGATECALL has no value operand.
func gasDelegateCallEIP2929(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	addr := types.Address(stk.Back(1).Bytes20())
	gas := gasEIP2929AccountCheck(evm.IntraBlockState(), addr)
	return addMemGas(gas, mem, memorySize)
}

// gasStaticCallEIP2929 is gasDelegateCallEIP2929 for STATICCALL.
func gasStaticCallEIP2929(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	addr := types.Address(stk.Back(1).Bytes20())
	gas := gasEIP2929AccountCheck(evm.IntraBlockState(), addr)
	return addMemGas(gas, mem, memorySize)
}

func addMemGas(base uint64, mem *Memory, memorySize uint64) (uint64, error) {
	memExp, err := memoryGasCost(mem, memorySize)
	if err != nil {
		return 0, err
	}
	gas, overflow := safeAdd(base, memExp)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	return gas, nil
}

// --- CREATE family: EIP-3860 init code word gas ---

// gasCreateEip3860 charges InitCodeWordGas per word of init code plus
// memory expansion for CREATE.
func gasCreateEip3860(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return initCodeWordGas(stk.Back(2), mem, memorySize)
}

// gasCreate2Eip3860 is gasCreateEip3860 plus the extra Keccak256WordGas
// per word CREATE2 pays for hashing the init code to derive its address.
func gasCreate2Eip3860(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	size := stk.Back(2)
	words, overflow := size.Uint64WithOverflow()
	if overflow {
		return 0, ErrGasUintOverflow
	}
	hashGas, overflow := safeMul(toWordSize(words), params.Sha3WordGas)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	gas, err := initCodeWordGas(size, mem, memorySize)
	if err != nil {
		return 0, err
	}
	gas, overflow = safeAdd(gas, hashGas)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	return gas, nil
}

func initCodeWordGas(size *uint256.Int, mem *Memory, memorySize uint64) (uint64, error) {
	words, overflow := size.Uint64WithOverflow()
	if overflow {
		return 0, ErrGasUintOverflow
	}
	initGas, overflow := safeMul(toWordSize(words), params.InitCodeWordGas)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	return addMemGas(initGas, mem, memorySize)
}

// --- LOG / KECCAK256 ---

// makeGasLog returns the dynamic gas function for LOGn: n*LogTopicGas +
// dataSize*LogDataGas + memory expansion.
func makeGasLog(n uint64) gasFunc {
	return func(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
		size, overflow := stk.Back(1).Uint64WithOverflow()
		if overflow {
			return 0, ErrGasUintOverflow
		}
		gas, overflow := safeMul(n, params.LogTopicGas)
		if overflow {
			return 0, ErrGasUintOverflow
		}
		dataGas, overflow := safeMul(size, params.LogDataGas)
		if overflow {
			return 0, ErrGasUintOverflow
		}
		gas, overflow = safeAdd(gas, dataGas)
		if overflow {
			return 0, ErrGasUintOverflow
		}
		return addMemGas(gas, mem, memorySize)
	}
}

// gasKeccak256 charges Sha3WordGas per word hashed plus memory expansion.
func gasKeccak256(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	size, overflow := stk.Back(1).Uint64WithOverflow()
	if overflow {
		return 0, ErrGasUintOverflow
	}
	words, overflow := safeMul(toWordSize(size), params.Sha3WordGas)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	return addMemGas(words, mem, memorySize)
}

// --- copy opcodes (CALLDATACOPY, CODECOPY, RETURNDATACOPY): pre-Berlin and
// Berlin-onward charge the same CopyGas-per-word, access lists don't apply
// to the executing contract's own calldata/code/returndata. ---

// gasCopyAt returns a gas function that charges CopyGas per word copied plus memory expansion, reading
// the copy length from stack position sizeIdx.
func gasCopyAt(sizeIdx int) gasFunc {
	return func(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
		return addCopyAndMemGas(0, stk.Back(sizeIdx), mem, memorySize)
	}
}
