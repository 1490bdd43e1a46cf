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

// executionFunc runs one opcode against the interpreter's current frame.
type executionFunc func(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error)

// gasFunc computes an opcode's dynamic gas component, on top of its
// constantGas. memorySize is the number of bytes memory would need to grow
// to for this instruction, already computed via the operation's memorySize
// function.
type gasFunc func(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error)

// memorySizeFunc reports the memory size in bytes an instruction touches,
// and whether computing it overflowed (in which case execution fails with
// ErrGasUintOverflow before the instruction runs).
type memorySizeFunc func(stk *stack.Stack) (uint64, bool)

// operation is one dispatch-table entry: how to execute an opcode, what it
// costs, and how many stack items it consumes/produces.
type operation struct {
	execute     executionFunc
	constantGas uint64
	dynamicGas  gasFunc
	numPop      int
	numPush     int
	memorySize  memorySizeFunc
}

// JumpTable is the 256-entry opcode dispatch table for one fork's rule set.
// Byte values a fork leaves unassigned hold an opUndefined entry, which
// fails with ErrInvalidCode; the interpreter reports a nil entry as
// ErrInvalidOpCode.
type JumpTable [256]*operation

// activators maps an EIP number to the function that patches a JumpTable to
// add/modify that EIP's behavior. Populated by each eips_*.go file's init().
var activators = map[int]func(*JumpTable){}

// enable applies the named EIPs to jt in order, skipping any not registered
// in activators.
func enable(jt *JumpTable, eips ...int) {
	for _, eip := range eips {
		if fn, ok := activators[eip]; ok {
			fn(jt)
		}
	}
}

// copyJumpTable returns a deep copy of original: each non-nil *operation is
// duplicated so that patching the copy (e.g. via enableXXX) never mutates
// the fork it was derived from.
func copyJumpTable(original *JumpTable) *JumpTable {
	copied := *original
	for i, op := range original {
		if op != nil {
			opCopy := *op
			copied[i] = &opCopy
		}
	}
	return &copied
}

// validateAndFillMaxStack is a completeness pass run after a JumpTable is
// fully assembled: every defined operation must carry an execute function,
// and numPush-numPop must never exceed the 1024 stack depth limit in one
// step (a violation indicates a wiring bug in one of the enableXXX
// patches, not a condition reachable during normal execution).
func validateAndFillMaxStack(jt *JumpTable) {
	for _, op := range jt {
		if op == nil {
			continue
		}
		if op.execute == nil {
			panic("vm: operation missing execute function")
		}
		if op.numPush-op.numPop > int(params.CallCreateDepth) {
			panic("vm: operation grows the stack beyond the depth limit in one step")
		}
	}
}

// --- per-opcode memory size functions, used by CALL/CREATE/COPY family
// instructions whose memory footprint depends on stack operands. ---

func memoryMload(stk *stack.Stack) (uint64, bool) {
	return calcMemSize64WithUint(stk.Back(0), 32)
}

func memoryMstore(stk *stack.Stack) (uint64, bool) {
	return calcMemSize64WithUint(stk.Back(0), 32)
}

func memoryMstore8(stk *stack.Stack) (uint64, bool) {
	return calcMemSize64WithUint(stk.Back(0), 1)
}

func memoryKeccak256(stk *stack.Stack) (uint64, bool) {
	return calcMemSize64(stk.Back(0), stk.Back(1))
}

func memoryCalldataCopy(stk *stack.Stack) (uint64, bool) {
	return calcMemSize64(stk.Back(0), stk.Back(2))
}

func memoryCodeCopy(stk *stack.Stack) (uint64, bool) {
	return calcMemSize64(stk.Back(0), stk.Back(2))
}

func memoryExtCodeCopy(stk *stack.Stack) (uint64, bool) {
	return calcMemSize64(stk.Back(1), stk.Back(3))
}

func memoryReturnDataCopy(stk *stack.Stack) (uint64, bool) {
	return calcMemSize64(stk.Back(0), stk.Back(2))
}

func memoryReturn(stk *stack.Stack) (uint64, bool) {
	return calcMemSize64(stk.Back(0), stk.Back(1))
}

func memoryLog(stk *stack.Stack) (uint64, bool) {
	return calcMemSize64(stk.Back(0), stk.Back(1))
}

func memoryCreate(stk *stack.Stack) (uint64, bool) {
	return calcMemSize64(stk.Back(1), stk.Back(2))
}

func memoryCreate2(stk *stack.Stack) (uint64, bool) {
	return calcMemSize64(stk.Back(1), stk.Back(2))
}

func memoryCall(stk *stack.Stack) (uint64, bool) {
	mStart, mSize := calcMemSize64(stk.Back(5), stk.Back(6))
	nStart, nSize := calcMemSize64(stk.Back(3), stk.Back(4))
	if nSize || mSize {
		return 0, true
	}
	if nStart > mStart {
		return nStart, false
	}
	return mStart, false
}

func memoryDelegateOrStaticCall(stk *stack.Stack) (uint64, bool) {
	mStart, mOverflow := calcMemSize64(stk.Back(4), stk.Back(5))
	nStart, nOverflow := calcMemSize64(stk.Back(2), stk.Back(3))
	if nOverflow || mOverflow {
		return 0, true
	}
	if nStart > mStart {
		return nStart, false
	}
	return mStart, false
}

// --- Frontier ---

func newFrontierInstructionSet() JumpTable {
	var jt JumpTable

	jt[STOP] = &operation{execute: opStop}
	jt[ADD] = &operation{execute: opAdd, constantGas: GasFastestStep, numPop: 2, numPush: 1}
	jt[MUL] = &operation{execute: opMul, constantGas: GasFastStep, numPop: 2, numPush: 1}
	jt[SUB] = &operation{execute: opSub, constantGas: GasFastestStep, numPop: 2, numPush: 1}
	jt[DIV] = &operation{execute: opDiv, constantGas: GasFastStep, numPop: 2, numPush: 1}
	jt[SDIV] = &operation{execute: opSdiv, constantGas: GasFastStep, numPop: 2, numPush: 1}
	jt[MOD] = &operation{execute: opMod, constantGas: GasFastStep, numPop: 2, numPush: 1}
	jt[SMOD] = &operation{execute: opSmod, constantGas: GasFastStep, numPop: 2, numPush: 1}
	jt[ADDMOD] = &operation{execute: opAddmod, constantGas: GasMidStep, numPop: 3, numPush: 1}
	jt[MULMOD] = &operation{execute: opMulmod, constantGas: GasMidStep, numPop: 3, numPush: 1}
	jt[EXP] = &operation{execute: opExp, constantGas: GasSlowStep, dynamicGas: gasExp, numPop: 2, numPush: 1}
	jt[SIGNEXTEND] = &operation{execute: opSignExtend, constantGas: GasFastStep, numPop: 2, numPush: 1}

	jt[LT] = &operation{execute: opLt, constantGas: GasFastestStep, numPop: 2, numPush: 1}
	jt[GT] = &operation{execute: opGt, constantGas: GasFastestStep, numPop: 2, numPush: 1}
	jt[SLT] = &operation{execute: opSlt, constantGas: GasFastestStep, numPop: 2, numPush: 1}
	jt[SGT] = &operation{execute: opSgt, constantGas: GasFastestStep, numPop: 2, numPush: 1}
	jt[EQ] = &operation{execute: opEq, constantGas: GasFastestStep, numPop: 2, numPush: 1}
	jt[ISZERO] = &operation{execute: opIszero, constantGas: GasFastestStep, numPop: 1, numPush: 1}
	jt[AND] = &operation{execute: opAnd, constantGas: GasFastestStep, numPop: 2, numPush: 1}
	jt[OR] = &operation{execute: opOr, constantGas: GasFastestStep, numPop: 2, numPush: 1}
	jt[XOR] = &operation{execute: opXor, constantGas: GasFastestStep, numPop: 2, numPush: 1}
	jt[NOT] = &operation{execute: opNot, constantGas: GasFastestStep, numPop: 1, numPush: 1}
	jt[BYTE] = &operation{execute: opByte, constantGas: GasFastestStep, numPop: 2, numPush: 1}

	jt[KECCAK256] = &operation{execute: opKeccak256, constantGas: params.Sha3Gas, dynamicGas: gasKeccak256, numPop: 2, numPush: 1, memorySize: memoryKeccak256}

	jt[ADDRESS] = &operation{execute: opAddress, constantGas: GasQuickStep, numPop: 0, numPush: 1}
	jt[BALANCE] = &operation{execute: opBalance, constantGas: 20, numPop: 1, numPush: 1}
	jt[ORIGIN] = &operation{execute: opOrigin, constantGas: GasQuickStep, numPop: 0, numPush: 1}
	jt[CALLER] = &operation{execute: opCaller, constantGas: GasQuickStep, numPop: 0, numPush: 1}
	jt[CALLVALUE] = &operation{execute: opCallValue, constantGas: GasQuickStep, numPop: 0, numPush: 1}
	jt[CALLDATALOAD] = &operation{execute: opCalldataLoad, constantGas: GasFastestStep, numPop: 1, numPush: 1}
	jt[CALLDATASIZE] = &operation{execute: opCalldataSize, constantGas: GasQuickStep, numPop: 0, numPush: 1}
	jt[CALLDATACOPY] = &operation{execute: opCalldataCopy, constantGas: GasFastestStep, dynamicGas: gasCopyAt(2), numPop: 3, numPush: 0, memorySize: memoryCalldataCopy}
	jt[CODESIZE] = &operation{execute: opCodeSize, constantGas: GasQuickStep, numPop: 0, numPush: 1}
	jt[CODECOPY] = &operation{execute: opCodeCopy, constantGas: GasFastestStep, dynamicGas: gasCopyAt(2), numPop: 3, numPush: 0, memorySize: memoryCodeCopy}
	jt[GASPRICE] = &operation{execute: opGasPrice, constantGas: GasQuickStep, numPop: 0, numPush: 1}
	jt[EXTCODESIZE] = &operation{execute: opExtcodesize, constantGas: 20, numPop: 1, numPush: 1}
	jt[EXTCODECOPY] = &operation{execute: opExtcodecopy, constantGas: 20, dynamicGas: gasCopyAt(3), numPop: 4, numPush: 0, memorySize: memoryExtCodeCopy}

	jt[BLOCKHASH] = &operation{execute: opBlockhash, constantGas: GasExtStep, numPop: 1, numPush: 1}
	jt[COINBASE] = &operation{execute: opCoinbase, constantGas: GasQuickStep, numPop: 0, numPush: 1}
	jt[TIMESTAMP] = &operation{execute: opTimestamp, constantGas: GasQuickStep, numPop: 0, numPush: 1}
	jt[NUMBER] = &operation{execute: opNumber, constantGas: GasQuickStep, numPop: 0, numPush: 1}
	jt[DIFFICULTY] = &operation{execute: opDifficulty, constantGas: GasQuickStep, numPop: 0, numPush: 1}
	jt[GASLIMIT] = &operation{execute: opGasLimit, constantGas: GasQuickStep, numPop: 0, numPush: 1}

	jt[POP] = &operation{execute: opPop, constantGas: GasQuickStep, numPop: 1, numPush: 0}
	jt[MLOAD] = &operation{execute: opMload, constantGas: GasFastestStep, dynamicGas: gasMemoryExpansion, numPop: 1, numPush: 1, memorySize: memoryMload}
	jt[MSTORE] = &operation{execute: opMstore, constantGas: GasFastestStep, dynamicGas: gasMemoryExpansion, numPop: 2, numPush: 0, memorySize: memoryMstore}
	jt[MSTORE8] = &operation{execute: opMstore8, constantGas: GasFastestStep, dynamicGas: gasMemoryExpansion, numPop: 2, numPush: 0, memorySize: memoryMstore8}
	jt[SLOAD] = &operation{execute: opSload, constantGas: 50, numPop: 1, numPush: 1}
	jt[SSTORE] = &operation{execute: opSstore, dynamicGas: gasSstoreLegacy, numPop: 2, numPush: 0}
	jt[JUMP] = &operation{execute: opJump, constantGas: GasMidStep, numPop: 1, numPush: 0}
	jt[JUMPI] = &operation{execute: opJumpi, constantGas: GasSlowStep, numPop: 2, numPush: 0}
	jt[PC] = &operation{execute: opPc, constantGas: GasQuickStep, numPop: 0, numPush: 1}
	jt[MSIZE] = &operation{execute: opMsize, constantGas: GasQuickStep, numPop: 0, numPush: 1}
	jt[GAS] = &operation{execute: opGas, constantGas: GasQuickStep, numPop: 0, numPush: 1}
	jt[JUMPDEST] = &operation{execute: opJumpdest, constantGas: params.JumpdestGas, numPop: 0, numPush: 0}

	for i := 0; i < 32; i++ {
		jt[PUSH1+OpCode(i)] = &operation{execute: makePush(uint64(i) + 1), constantGas: GasFastestStep, numPop: 0, numPush: 1}
	}
	for i := 0; i < 16; i++ {
		jt[DUP1+OpCode(i)] = &operation{execute: makeDup(i + 1), constantGas: GasFastestStep, numPop: i + 1, numPush: i + 2}
		jt[SWAP1+OpCode(i)] = &operation{execute: makeSwap(i + 1), constantGas: GasFastestStep, numPop: i + 2, numPush: i + 2}
	}
	for i := 0; i < 5; i++ {
		jt[LOG0+OpCode(i)] = &operation{execute: makeLog(i), constantGas: params.LogGas, dynamicGas: makeGasLog(uint64(i)), numPop: 2 + i, numPush: 0, memorySize: memoryLog}
	}

	jt[CREATE] = &operation{execute: opCreate, constantGas: params.CreateGas, dynamicGas: gasMemoryExpansion, numPop: 3, numPush: 1, memorySize: memoryCreate}
	jt[CALL] = &operation{execute: opCall, constantGas: params.CallGas, dynamicGas: gasCallFrontier, numPop: 7, numPush: 1, memorySize: memoryCall}
	jt[CALLCODE] = &operation{execute: opCallCode, constantGas: params.CallGas, dynamicGas: gasCallCodeFrontier, numPop: 7, numPush: 1, memorySize: memoryCall}
	jt[RETURN] = &operation{execute: opReturn, dynamicGas: gasMemoryExpansion, numPop: 2, numPush: 0, memorySize: memoryReturn}
	jt[INVALID] = &operation{execute: opInvalid}
	jt[SELFDESTRUCT] = &operation{execute: opSelfdestruct, dynamicGas: gasSelfdestructFrontier, numPop: 1, numPush: 0}

	for i, op := range jt {
		if op == nil {
			jt[i] = &operation{execute: opUndefined}
		}
	}
	return jt
}

// gasMemoryExpansion charges only the quadratic memory-expansion cost; used
// by opcodes whose sole dynamic cost is growing memory.
func gasMemoryExpansion(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return addMemGas(0, mem, memorySize)
}

// gasSstoreLegacy implements the pre-Istanbul (non-net-metered) SSTORE gas
// schedule: 20000 to set a zero slot, 5000 otherwise, with a 15000 refund
// when clearing a non-zero slot to zero.
func gasSstoreLegacy(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	key := types.Hash(typesHashFromStack(stk, 0))
	newVal := stk.Back(1)

	addr := contract.Address()
	ibs := evm.IntraBlockState()
	var current uint256.Int
	ibs.GetState(addr, &key, &current)

	if current.IsZero() && !newVal.IsZero() {
		return params.SstoreSetGas, nil
	}
	if !current.IsZero() && newVal.IsZero() {
		ibs.AddRefund(params.SstoreRefundGas)
		return params.SstoreClearGas, nil
	}
	return params.SstoreResetGas, nil
}

// gasExp charges EXP's per-exponent-byte dynamic gas (50/byte pre-Spurious
// Dragon).
func gasExp(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return expByteGas(stk, params.ExpByteGas)
}

func expByteGas(stk *stack.Stack, perByte uint64) (uint64, error) {
	exponent := stk.Back(1)
	if exponent.IsZero() {
		return 0, nil
	}
	byteLen := uint64((exponent.BitLen() + 7) / 8)
	gas, overflow := safeMul(perByte, byteLen)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	return gas, nil
}

// gasCallFrontier charges CallValueTransferGas when value is non-zero plus
// CallNewAccountGas when the callee doesn't yet exist, plus memory
// expansion.
func gasCallFrontier(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas := callValueAndNewAccountGas(evm, addressFromStack(stk, 1), stk.Back(2), true)
	return addMemGas(gas, mem, memorySize)
}

func gasCallCodeFrontier(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas := callValueAndNewAccountGas(evm, addressFromStack(stk, 1), stk.Back(2), false)
	return addMemGas(gas, mem, memorySize)
}

func gasSelfdestructFrontier(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return 0, nil
}

func addressFromStack(stk *stack.Stack, idx int) (addr [20]byte) {
	return stk.Back(idx).Bytes20()
}

// --- Homestead: EIP-2 DELEGATECALL ---

func newHomesteadInstructionSet() JumpTable {
	jt := newFrontierInstructionSet()
	jt[DELEGATECALL] = &operation{execute: opDelegateCall, constantGas: params.CallGas, dynamicGas: gasCallCodeFrontier, numPop: 6, numPush: 1, memorySize: memoryDelegateOrStaticCall}
	return jt
}

// --- Tangerine Whistle: EIP-150 repriced IO-heavy opcodes ---

func newTangerineWhistleInstructionSet() JumpTable {
	jt := newHomesteadInstructionSet()
	jt[BALANCE].constantGas = params.CallGasEIP150
	jt[EXTCODESIZE].constantGas = params.CallGasEIP150
	jt[EXTCODECOPY].constantGas = params.CallGasEIP150
	jt[SLOAD].constantGas = 200
	jt[CALL].constantGas = params.CallGasEIP150
	jt[CALLCODE].constantGas = params.CallGasEIP150
	jt[DELEGATECALL].constantGas = params.CallGasEIP150
	jt[SELFDESTRUCT].dynamicGas = gasSelfdestructEIP150
	return jt
}

func gasSelfdestructEIP150(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	addr := addressFromStack(stk, 0)
	if !evm.IntraBlockState().Exist(addr) && !evm.IntraBlockState().GetBalance(contract.Address()).IsZero() {
		return params.SelfdestructGasEIP150, nil
	}
	return 0, nil
}

// --- Spurious Dragon: EIP-158 empty-account pruning (no opcode changes) ---

func newSpuriousDragonInstructionSet() JumpTable {
	return newTangerineWhistleInstructionSet()
}

// --- Byzantium: REVERT, RETURNDATA*, STATICCALL ---

func newByzantiumInstructionSet() JumpTable {
	jt := newSpuriousDragonInstructionSet()
	jt[REVERT] = &operation{execute: opRevert, dynamicGas: gasMemoryExpansion, numPop: 2, numPush: 0, memorySize: memoryReturn}
	jt[RETURNDATASIZE] = &operation{execute: opReturndataSize, constantGas: GasQuickStep, numPop: 0, numPush: 1}
	jt[RETURNDATACOPY] = &operation{execute: opReturndataCopy, constantGas: GasFastestStep, dynamicGas: gasCopyAt(2), numPop: 3, numPush: 0, memorySize: memoryReturnDataCopy}
	jt[STATICCALL] = &operation{execute: opStaticCall, constantGas: params.CallGasEIP150, dynamicGas: gasStaticCallMemOnly, numPop: 6, numPush: 1, memorySize: memoryDelegateOrStaticCall}
	return jt
}

func gasStaticCallMemOnly(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return addMemGas(0, mem, memorySize)
}

// --- Constantinople: SHL/SHR/SAR, EXTCODEHASH, CREATE2 ---

func newConstantinopleInstructionSet() JumpTable {
	jt := newByzantiumInstructionSet()
	jt[SHL] = &operation{execute: opSHL, constantGas: GasFastestStep, numPop: 2, numPush: 1}
	jt[SHR] = &operation{execute: opSHR, constantGas: GasFastestStep, numPop: 2, numPush: 1}
	jt[SAR] = &operation{execute: opSAR, constantGas: GasFastestStep, numPop: 2, numPush: 1}
	jt[EXTCODEHASH] = &operation{execute: opExtcodehash, constantGas: params.CallGasEIP150, numPop: 1, numPush: 1}
	jt[CREATE2] = &operation{execute: opCreate2, constantGas: params.Create2Gas, dynamicGas: gasCreate2MemOnly, numPop: 4, numPush: 1, memorySize: memoryCreate2}
	return jt
}

func gasCreate2MemOnly(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	size, overflow := stk.Back(2).Uint64WithOverflow()
	if overflow {
		return 0, ErrGasUintOverflow
	}
	hashGas, overflow := safeMul(toWordSize(size), params.Sha3WordGas)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	return addMemGas(hashGas, mem, memorySize)
}

// --- Istanbul: EIP-1344 CHAINID, EIP-1884 repricing, EIP-2200 net SSTORE ---

func newIstanbulInstructionSet() JumpTable {
	jt := newConstantinopleInstructionSet()
	jt[CHAINID] = &operation{execute: opChainID, constantGas: GasQuickStep, numPop: 0, numPush: 1}
	jt[SELFBALANCE] = &operation{execute: opSelfBalance, constantGas: params.WarmStorageReadCostEIP2929, numPop: 0, numPush: 1}
	jt[BALANCE].constantGas = 700
	jt[EXTCODEHASH].constantGas = 700
	jt[SLOAD].constantGas = 800
	jt[SSTORE].dynamicGas = gasSstoreEIP2200
	return jt
}

func gasSstoreEIP2200(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	if contract.Gas <= params.SstoreSentryGasEIP2200 {
		return 0, ErrOutOfGas
	}
	key := types.Hash(typesHashFromStack(stk, 0))
	return sstoreNetGasCost(evm, contract, key, stk.Back(1)), nil
}

// --- Berlin: EIP-2929 cold/warm access lists ---

func newBerlinInstructionSet() JumpTable {
	jt := newIstanbulInstructionSet()
	jt[SLOAD] = &operation{execute: opSload, constantGas: params.WarmStorageReadCostEIP2929, dynamicGas: gasSloadEIP2929, numPop: 1, numPush: 1}
	jt[SSTORE] = &operation{execute: opSstore, dynamicGas: gasSstoreEIP2929, numPop: 2, numPush: 0}
	jt[BALANCE] = &operation{execute: opBalance, constantGas: params.WarmStorageReadCostEIP2929, dynamicGas: gasBalanceEIP2929, numPop: 1, numPush: 1}
	jt[EXTCODESIZE] = &operation{execute: opExtcodesize, constantGas: params.WarmStorageReadCostEIP2929, dynamicGas: gasExtcodesizeEIP2929, numPop: 1, numPush: 1}
	jt[EXTCODEHASH] = &operation{execute: opExtcodehash, constantGas: params.WarmStorageReadCostEIP2929, dynamicGas: gasExtcodehashEIP2929, numPop: 1, numPush: 1}
	jt[EXTCODECOPY] = &operation{execute: opExtcodecopy, constantGas: params.WarmStorageReadCostEIP2929, dynamicGas: gasExtcodecopyEIP2929, numPop: 4, numPush: 0, memorySize: memoryExtCodeCopy}
	jt[CALL] = &operation{execute: opCall, constantGas: params.WarmStorageReadCostEIP2929, dynamicGas: gasCallEIP2929, numPop: 7, numPush: 1, memorySize: memoryCall}
	jt[CALLCODE] = &operation{execute: opCallCode, constantGas: params.WarmStorageReadCostEIP2929, dynamicGas: gasCallCodeEIP2929, numPop: 7, numPush: 1, memorySize: memoryCall}
	jt[DELEGATECALL] = &operation{execute: opDelegateCall, constantGas: params.WarmStorageReadCostEIP2929, dynamicGas: gasDelegateCallEIP2929, numPop: 6, numPush: 1, memorySize: memoryDelegateOrStaticCall}
	jt[STATICCALL] = &operation{execute: opStaticCall, constantGas: params.WarmStorageReadCostEIP2929, dynamicGas: gasStaticCallEIP2929, numPop: 6, numPush: 1, memorySize: memoryDelegateOrStaticCall}
	jt[SELFDESTRUCT].dynamicGas = gasSelfdestructEIP2929
	return jt
}

// gasSelfdestructEIP2929 charges SELFDESTRUCT's whole cost, since its
// constantGas is 0: SelfdestructGasEIP150, plus the full cold account cost
// for a beneficiary not yet in the access list, plus SelfdestructNewAccountGas
// when a non-zero balance goes to an account that does not exist.
func gasSelfdestructEIP2929(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	addr := addressFromStack(stk, 0)
	ibs := evm.IntraBlockState()
	gas := params.SelfdestructGasEIP150
	if !ibs.AddressInAccessList(addr) {
		ibs.AddAddressToAccessList(addr)
		gas += params.ColdAccountAccessCostEIP2929
	}
	if !ibs.Exist(addr) && !ibs.GetBalance(contract.Address()).IsZero() {
		gas += params.SelfdestructNewAccountGas
	}
	return gas, nil
}

func typesHashFromStack(stk *stack.Stack, idx int) (h [32]byte) {
	return stk.Back(idx).Bytes32()
}

// --- London: EIP-3529 reduced refunds, EIP-3198 BASEFEE ---

func newLondonInstructionSet() JumpTable {
	jt := newBerlinInstructionSet()
	jt[BASEFEE] = &operation{execute: opBaseFee, constantGas: GasQuickStep, numPop: 0, numPush: 1}
	jt[SELFDESTRUCT].dynamicGas = gasSelfdestructEIP2929 // EIP-3529 drops the refund, gas cost unchanged
	return jt
}

// --- Shanghai: EIP-3855 PUSH0, EIP-3860 init code size ---

func newShanghaiInstructionSet() JumpTable {
	jt := newLondonInstructionSet()
	jt[PUSH0] = &operation{execute: opPush0, constantGas: GasQuickStep, numPop: 0, numPush: 1}
	jt[CREATE].dynamicGas = gasCreateEip3860
	jt[CREATE].memorySize = memoryCreate
	jt[CREATE2].dynamicGas = gasCreate2Eip3860
	jt[CREATE2].memorySize = memoryCreate2
	return jt
}

// --- Cancun: EIP-1153, EIP-5656, EIP-4844, EIP-7516, EIP-6780 ---

func newCancunInstructionSet() JumpTable {
	jt := newShanghaiInstructionSet()
	enable(&jt, 1153, 5656, 4844, 7516, 6780)
	return jt
}

// --- Prague: EIP-7939 CLZ ---

func newPragueInstructionSet() JumpTable {
	jt := newCancunInstructionSet()
	enable(&jt, 7939)
	validateAndFillMaxStack(&jt)
	return jt
}

var (
	frontierInstructionSet         = newFrontierInstructionSet()
	homesteadInstructionSet        = newHomesteadInstructionSet()
	tangerineWhistleInstructionSet = newTangerineWhistleInstructionSet()
	spuriousDragonInstructionSet   = newSpuriousDragonInstructionSet()
	byzantiumInstructionSet        = newByzantiumInstructionSet()
	constantinopleInstructionSet   = newConstantinopleInstructionSet()
	istanbulInstructionSet         = newIstanbulInstructionSet()
	berlinInstructionSet           = newBerlinInstructionSet()
	londonInstructionSet           = newLondonInstructionSet()
	shanghaiInstructionSet         = newShanghaiInstructionSet()
	cancunInstructionSet           = newCancunInstructionSet()
	pragueInstructionSet           = newPectraInstructionSet()
)
