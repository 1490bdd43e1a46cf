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
	"sync/atomic"

	"github.com/holiman/uint256"

	"github.com/vertexchain/evmcore/common/hash"
	"github.com/vertexchain/evmcore/common/rlp"
	"github.com/vertexchain/evmcore/common/types"
	"github.com/vertexchain/evmcore/internal/cache"
	"github.com/vertexchain/evmcore/internal/vm/evmtypes"
	"github.com/vertexchain/evmcore/params"
)

// jumpdestAnalysisCacheSize bounds how many distinct contract code hashes'
// jumpdest bitmaps an EVM instance keeps resident across the transactions
// it processes. Popular contracts (routers, token implementations shared
// by many callers) dominate real traffic, so a few thousand entries covers
// the working set without unbounded growth over a long-running instance.
const jumpdestAnalysisCacheSize = 4096

// EVM is the Ethereum Virtual Machine execution environment for one
// transaction. Reset rebinds TxContext and IntraBlockState as the processor
// moves between transactions; ResetBetweenBlocks also replaces Context, the
// chain rules and the interpreter's jump table as it moves between blocks.
// analysisCache, by contrast, survives Reset/ResetBetweenBlocks:
// it is the one piece of state this engine instance keeps across
// transactions, so the same EVM reused over a batch of calls never
// re-analyzes a contract's jumpdests twice.
type EVM struct {
	context   evmtypes.BlockContext
	txContext evmtypes.TxContext
	ibs       evmtypes.IntraBlockState

	chainConfig *params.ChainConfig
	chainRules  *params.Rules
	config      Config

	precompiles PrecompileRegistry

	interpreter   *EVMInterpreter
	analysisCache *cache.LRU[types.Hash, []uint64]

	depth       int
	callGasTemp uint64
	cancelled   int32
}

// NewEVM returns an EVM bound to blockCtx/txCtx, reading and writing state
// through ibs, using the default precompile set for chainRules.
func NewEVM(blockCtx evmtypes.BlockContext, txCtx evmtypes.TxContext, ibs evmtypes.IntraBlockState, chainConfig *params.ChainConfig, chainRules *params.Rules, config Config) *EVM {
	evm := &EVM{
		context:       blockCtx,
		txContext:     txCtx,
		ibs:           ibs,
		chainConfig:   chainConfig,
		chainRules:    chainRules,
		config:        config,
		analysisCache: cache.NewLRU[types.Hash, []uint64](jumpdestAnalysisCacheSize),
	}
	evm.interpreter = NewEVMInterpreter(evm)
	return evm
}

// NewEVMWithPrecompiles returns an EVM that consults registry instead of
// the default PrecompilesForRules(chainRules) map, letting callers swap in
// a per-chain or feature-flagged precompile set.
func NewEVMWithPrecompiles(blockCtx evmtypes.BlockContext, txCtx evmtypes.TxContext, ibs evmtypes.IntraBlockState, chainConfig *params.ChainConfig, chainRules *params.Rules, config Config, registry PrecompileRegistry) *EVM {
	evm := NewEVM(blockCtx, txCtx, ibs, chainConfig, chainRules, config)
	evm.precompiles = registry
	return evm
}

// ChainRules returns the fork rules active for this EVM's block.
func (evm *EVM) ChainRules() *params.Rules { return evm.chainRules }

// ChainConfig returns the chain configuration this EVM was built against.
func (evm *EVM) ChainConfig() *params.ChainConfig { return evm.chainConfig }

// IntraBlockState returns the state accessor backing this EVM.
func (evm *EVM) IntraBlockState() evmtypes.IntraBlockState { return evm.ibs }

// Context returns the block-level execution context.
func (evm *EVM) Context() evmtypes.BlockContext { return evm.context }

// TxContext returns the transaction-level execution context.
func (evm *EVM) TxContext() evmtypes.TxContext { return evm.txContext }

// Config returns the interpreter configuration.
func (evm *EVM) Config() Config { return evm.config }

// AnalysisCache returns this EVM instance's cross-transaction jumpdest
// analysis cache. It is never nil for an EVM built via NewEVM.
func (evm *EVM) AnalysisCache() *cache.LRU[types.Hash, []uint64] { return evm.analysisCache }

// SetCallGasTemp stashes the gas a CALL-family dynamicGas function computed
// for opCall to pick back up; mirrors go-ethereum's callGasTemp field.
func (evm *EVM) SetCallGasTemp(gas uint64) { evm.callGasTemp = gas }

// CallGasTemp returns the last value SetCallGasTemp stored.
func (evm *EVM) CallGasTemp() uint64 { return evm.callGasTemp }

// Cancel stops the in-flight Run loop at its next opcode boundary.
func (evm *EVM) Cancel() { atomic.StoreInt32(&evm.cancelled, 1) }

// Cancelled reports whether Cancel has been called.
func (evm *EVM) Cancelled() bool { return atomic.LoadInt32(&evm.cancelled) != 0 }

// Reset rebinds the EVM to a new transaction within the same block,
// clearing depth and the cancellation flag.
func (evm *EVM) Reset(txCtx evmtypes.TxContext, ibs evmtypes.IntraBlockState) {
	evm.txContext = txCtx
	evm.ibs = ibs
	evm.depth = 0
	atomic.StoreInt32(&evm.cancelled, 0)
}

// ResetBetweenBlocks rebinds the EVM to a new block, replacing its jump
// table for the new chain rules.
func (evm *EVM) ResetBetweenBlocks(blockCtx evmtypes.BlockContext, txCtx evmtypes.TxContext, ibs evmtypes.IntraBlockState, vmConfig Config, chainRules *params.Rules) {
	evm.context = blockCtx
	evm.txContext = txCtx
	evm.ibs = ibs
	evm.config = vmConfig
	evm.chainRules = chainRules
	evm.depth = 0
	atomic.StoreInt32(&evm.cancelled, 0)
	evm.interpreter = NewEVMInterpreter(evm)
}

func (evm *EVM) precompile(addr types.Address) (PrecompiledContract, bool) {
	if evm.precompiles != nil {
		return evm.precompiles.Lookup(addr)
	}
	p, ok := PrecompilesForRules(evm.chainRules)[addr]
	return p, ok
}

func runPrecompile(p PrecompiledContract, input []byte, gas uint64) ([]byte, uint64, error) {
	gasCost := p.RequiredGas(input)
	if gas < gasCost {
		return nil, 0, ErrOutOfGas
	}
	output, err := p.Run(input)
	return output, gas - gasCost, err
}

// PreWarmAccessList warms the sender, the recipient (if any), and every
// active precompile address per EIP-2929, before the interpreter runs a
// single opcode, matching the access-list priming a transaction's
// intrinsic-gas phase performs ahead of execution.
func (evm *EVM) PreWarmAccessList(sender types.Address, to *types.Address) {
	evm.ibs.AddAddressToAccessList(sender)
	if to != nil {
		evm.ibs.AddAddressToAccessList(*to)
	}
	for _, addr := range ActivePrecompiles(evm.chainRules) {
		evm.ibs.AddAddressToAccessList(addr)
	}
}

// Call executes a message call against addr, the common entry point for
// the CALL opcode and for transactions with a non-nil To. bailout skips
// the insufficient-balance check, used by gas estimation's top-level call.
func (evm *EVM) Call(caller ContractRef, addr types.Address, input []byte, gas uint64, value *uint256.Int, bailout bool) (ret []byte, leftOverGas uint64, err error) {
	if evm.config.NoRecursion && evm.depth > 0 {
		return nil, gas, nil
	}
	if evm.depth > int(params.CallCreateDepth) {
		return nil, gas, ErrDepth
	}

	debug := evm.config.Debug && evm.config.Tracer != nil
	if debug {
		evm.config.Tracer.CaptureEnter(CALL, caller.Address(), addr, input, gas, value)
		defer func() { evm.config.Tracer.CaptureExit(ret, gas-leftOverGas, err) }()
	}

	transfersValue := !value.IsZero()
	if transfersValue && !bailout && !evm.context.CanTransfer(evm.ibs, caller.Address(), value) {
		return nil, gas, ErrInsufficientBalance
	}

	snapshot := evm.ibs.Snapshot()
	p, isPrecompile := evm.precompile(addr)

	if !evm.ibs.Exist(addr) {
		if !isPrecompile && evm.chainRules.IsEIP158 && !transfersValue {
			return nil, gas, nil
		}
		evm.ibs.CreateAccount(addr, false)
	}
	if transfersValue {
		if evm.interpreter.getReadonly() {
			return nil, gas, ErrWriteProtection
		}
		evm.context.Transfer(evm.ibs, caller.Address(), addr, value, bailout)
	}

	if isPrecompile {
		ret, leftOverGas, err = runPrecompile(p, input, gas)
	} else {
		code := evm.ibs.GetCode(addr)
		if len(code) == 0 {
			return nil, gas, nil
		}
		contract := NewContract(caller, AccountRef(addr), value, gas, evm.config.SkipAnalysis)
		contract.SetCallCode(&addr, evm.ibs.GetCodeHash(addr), code)
		attachEOF(contract, evm.chainRules)

		evm.depth++
		ret, err = evm.interpreter.Run(contract, input, false)
		evm.depth--
		leftOverGas = contract.Gas
	}

	if err != nil {
		evm.ibs.RevertToSnapshot(snapshot)
		if err != ErrExecutionReverted {
			leftOverGas = 0
		}
	}
	return ret, leftOverGas, err
}

// CallCode runs addr's code but against the caller's own account: storage
// reads/writes and SELFBALANCE see the caller, only code is borrowed.
func (evm *EVM) CallCode(caller ContractRef, addr types.Address, input []byte, gas uint64, value *uint256.Int) (ret []byte, leftOverGas uint64, err error) {
	if evm.config.NoRecursion && evm.depth > 0 {
		return nil, gas, nil
	}
	if evm.depth > int(params.CallCreateDepth) {
		return nil, gas, ErrDepth
	}
	if !value.IsZero() && !evm.context.CanTransfer(evm.ibs, caller.Address(), value) {
		return nil, gas, ErrInsufficientBalance
	}

	snapshot := evm.ibs.Snapshot()

	if p, ok := evm.precompile(addr); ok {
		ret, leftOverGas, err = runPrecompile(p, input, gas)
	} else {
		code := evm.ibs.GetCode(addr)
		if len(code) == 0 {
			return nil, gas, nil
		}
		contract := NewContract(caller, AccountRef(caller.Address()), value, gas, evm.config.SkipAnalysis)
		contract.SetCallCode(&addr, evm.ibs.GetCodeHash(addr), code)
		attachEOF(contract, evm.chainRules)

		evm.depth++
		ret, err = evm.interpreter.Run(contract, input, false)
		evm.depth--
		leftOverGas = contract.Gas
	}

	if err != nil {
		evm.ibs.RevertToSnapshot(snapshot)
		if err != ErrExecutionReverted {
			leftOverGas = 0
		}
	}
	return ret, leftOverGas, err
}

// DelegateCall runs addr's code against the caller's account and,
// critically, preserves the grandcaller's address and call value, letting
// a library contract act as if it were the calling contract itself.
func (evm *EVM) DelegateCall(caller ContractRef, addr types.Address, input []byte, gas uint64) (ret []byte, leftOverGas uint64, err error) {
	if evm.config.NoRecursion && evm.depth > 0 {
		return nil, gas, nil
	}
	if evm.depth > int(params.CallCreateDepth) {
		return nil, gas, ErrDepth
	}

	snapshot := evm.ibs.Snapshot()

	if p, ok := evm.precompile(addr); ok {
		ret, leftOverGas, err = runPrecompile(p, input, gas)
	} else {
		code := evm.ibs.GetCode(addr)
		if len(code) == 0 {
			return nil, gas, nil
		}
		parent, _ := caller.(*Contract)
		contract := NewContract(caller, AccountRef(caller.Address()), nil, gas, evm.config.SkipAnalysis)
		if parent != nil {
			contract = contract.AsDelegate()
		}
		contract.SetCallCode(&addr, evm.ibs.GetCodeHash(addr), code)
		attachEOF(contract, evm.chainRules)

		evm.depth++
		ret, err = evm.interpreter.Run(contract, input, false)
		evm.depth--
		leftOverGas = contract.Gas
	}

	if err != nil {
		evm.ibs.RevertToSnapshot(snapshot)
		if err != ErrExecutionReverted {
			leftOverGas = 0
		}
	}
	return ret, leftOverGas, err
}

// StaticCall runs addr's code with write protection: SSTORE, LOG*, CREATE*,
// SELFDESTRUCT, and any value-transferring CALL all fail inside it.
func (evm *EVM) StaticCall(caller ContractRef, addr types.Address, input []byte, gas uint64) (ret []byte, leftOverGas uint64, err error) {
	if evm.config.NoRecursion && evm.depth > 0 {
		return nil, gas, nil
	}
	if evm.depth > int(params.CallCreateDepth) {
		return nil, gas, ErrDepth
	}

	snapshot := evm.ibs.Snapshot()

	if p, ok := evm.precompile(addr); ok {
		ret, leftOverGas, err = runPrecompile(p, input, gas)
		if err != nil {
			evm.ibs.RevertToSnapshot(snapshot)
		}
		return ret, leftOverGas, err
	}

	code := evm.ibs.GetCode(addr)
	if len(code) == 0 {
		return nil, gas, nil
	}
	contract := NewContract(caller, AccountRef(addr), new(uint256.Int), gas, evm.config.SkipAnalysis)
	contract.SetCallCode(&addr, evm.ibs.GetCodeHash(addr), code)
	attachEOF(contract, evm.chainRules)

	evm.depth++
	ret, err = evm.interpreter.Run(contract, input, true)
	evm.depth--
	leftOverGas = contract.Gas

	if err != nil {
		evm.ibs.RevertToSnapshot(snapshot)
		if err != ErrExecutionReverted {
			leftOverGas = 0
		}
	}
	return ret, leftOverGas, err
}

// createAddress derives a CREATE contract address: keccak256(rlp([sender,
// nonce]))[12:], the Yellow Paper's address-derivation rule.
func createAddress(sender types.Address, nonce uint64) types.Address {
	data, err := rlp.EncodeToBytes([]interface{}{sender.Bytes(), nonce})
	if err != nil {
		panic(err)
	}
	return types.BytesToAddress(hash.Keccak256(data)[12:])
}

// create2Address derives a CREATE2 contract address: keccak256(0xff ++
// sender ++ salt ++ keccak256(initcode))[12:].
func create2Address(sender types.Address, salt *uint256.Int, initCodeHash []byte) types.Address {
	saltBytes := salt.Bytes32()
	buf := make([]byte, 0, 1+len(sender)+len(saltBytes)+len(initCodeHash))
	buf = append(buf, 0xff)
	buf = append(buf, sender.Bytes()...)
	buf = append(buf, saltBytes[:]...)
	buf = append(buf, initCodeHash...)
	return types.BytesToAddress(hash.Keccak256(buf)[12:])
}

// Create deploys code as a new contract's init code at the CREATE address
// derived from caller and its current nonce.
func (evm *EVM) Create(caller ContractRef, code []byte, gas uint64, endowment *uint256.Int) (ret []byte, contractAddr types.Address, leftOverGas uint64, err error) {
	nonce := evm.ibs.GetNonce(caller.Address())
	if nonce+1 < nonce {
		return nil, types.Address{}, gas, ErrNonceUintOverflow
	}
	evm.ibs.SetNonce(caller.Address(), nonce+1)
	contractAddr = createAddress(caller.Address(), nonce)
	return evm.create(caller, code, gas, endowment, contractAddr)
}

// Create2 deploys code as a new contract's init code at the deterministic
// CREATE2 address derived from caller, salt, and the init code's hash.
func (evm *EVM) Create2(caller ContractRef, code []byte, gas uint64, endowment *uint256.Int, salt *uint256.Int) (ret []byte, contractAddr types.Address, leftOverGas uint64, err error) {
	contractAddr = create2Address(caller.Address(), salt, hash.Keccak256(code))
	return evm.create(caller, code, gas, endowment, contractAddr)
}

// create is the shared CREATE/CREATE2 implementation: EIP-3860 size check,
// collision check, EIP-2929 pre-warm, value transfer, the 63/64 gas
// forwarding rule, init code execution, and code-deposit accounting.
func (evm *EVM) create(caller ContractRef, code []byte, gas uint64, value *uint256.Int, contractAddr types.Address) (ret []byte, addr types.Address, leftOverGas uint64, err error) {
	if evm.depth > int(params.CallCreateDepth) {
		return nil, types.Address{}, gas, ErrDepth
	}
	if evm.interpreter.getReadonly() {
		return nil, types.Address{}, gas, ErrWriteProtection
	}
	if evm.config.HasEip3860(evm.chainRules) && uint64(len(code)) > params.MaxInitCodeSize {
		return nil, types.Address{}, gas, ErrMaxInitCodeSizeExceeded
	}
	if !value.IsZero() && !evm.context.CanTransfer(evm.ibs, caller.Address(), value) {
		return nil, types.Address{}, gas, ErrInsufficientBalance
	}

	if evm.ibs.GetNonce(contractAddr) != 0 || evm.ibs.GetCodeSize(contractAddr) != 0 {
		return nil, types.Address{}, 0, ErrContractAddressCollision
	}

	// EIP-2929: warm the new address before the snapshot, so a reverted
	// creation still leaves it warm for the rest of the transaction.
	evm.ibs.AddAddressToAccessList(contractAddr)

	snapshot := evm.ibs.Snapshot()
	if !evm.ibs.Exist(contractAddr) {
		evm.ibs.CreateAccount(contractAddr, true)
	}
	evm.ibs.SetNonce(contractAddr, 1)

	if !value.IsZero() {
		evm.context.Transfer(evm.ibs, caller.Address(), contractAddr, value, false)
	}

	contract := NewContract(caller, AccountRef(contractAddr), value, gas, evm.config.SkipAnalysis)
	contract.Code = code
	contract.IsDeployment = true
	attachEOF(contract, evm.chainRules)

	evm.depth++
	ret, err = evm.interpreter.Run(contract, nil, false)
	evm.depth--

	gas = contract.Gas

	if err != nil {
		evm.ibs.RevertToSnapshot(snapshot)
		if err != ErrExecutionReverted {
			return ret, types.Address{}, 0, err
		}
		return ret, types.Address{}, gas, err
	}

	if len(ret) > 0 {
		if uint64(len(ret)) > params.MaxCodeSize {
			evm.ibs.RevertToSnapshot(snapshot)
			return nil, types.Address{}, 0, ErrMaxCodeSizeExceeded
		}
		depositCost := uint64(len(ret)) * params.CreateDataGas
		if gas < depositCost {
			evm.ibs.RevertToSnapshot(snapshot)
			return ret, types.Address{}, 0, ErrCodeStoreOutOfGas
		}
		gas -= depositCost
		evm.ibs.SetCode(contractAddr, ret)
	}

	return ret, contractAddr, gas, nil
}

var (
	_ VMCaller      = (*EVM)(nil)
	_ VMContext     = (*EVM)(nil)
	_ VMExecutor    = (*EVM)(nil)
	_ VMResetter    = (*EVM)(nil)
	_ VMCanceller   = (*EVM)(nil)
	_ FullVM        = (*EVM)(nil)
	_ VMInterpreter = (*EVM)(nil)
)
