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

package core

import (
	"github.com/holiman/uint256"
	pkgerrors "github.com/pkg/errors"

	"github.com/vertexchain/evmcore/common/transaction"
	"github.com/vertexchain/evmcore/common/types"
	"github.com/vertexchain/evmcore/internal/vm"
	evmerrors "github.com/vertexchain/evmcore/pkg/errors"
)

// Message is the execution-ready form of a Transaction: sender already
// recovered, the effective gas price already settled against the block's
// base fee. The driver reads only this, never the wire transaction.
type Message struct {
	From       types.Address
	To         *types.Address
	Nonce      uint64
	CheckNonce bool
	GasLimit   uint64
	GasFeeCap  *uint256.Int
	GasTipCap  *uint256.Int
	Value      *uint256.Int
	Data       []byte
	AccessList transaction.AccessList
	AuthList   transaction.AuthorizationList

	BlobGasFeeCap *uint256.Int
	BlobHashes    []types.Hash
}

// NewMessage builds a Message from a signed Transaction. tx.From() must
// already hold the recovered sender; signature recovery is out of this
// package's scope.
func NewMessage(tx *transaction.Transaction) (*Message, error) {
	from := tx.From()
	if from == nil {
		return nil, evmerrors.ErrSenderNoEOA
	}
	return &Message{
		From:          *from,
		To:            tx.To(),
		Nonce:         tx.Nonce(),
		CheckNonce:    true,
		GasLimit:      tx.Gas(),
		GasFeeCap:     tx.GasFeeCap(),
		GasTipCap:     tx.GasTipCap(),
		Value:         tx.Value(),
		Data:          tx.Data(),
		AccessList:    tx.AccessList(),
		AuthList:      tx.AuthList(),
		BlobGasFeeCap: tx.BlobGasFeeCap(),
		BlobHashes:    tx.BlobHashes(),
	}, nil
}

// IsContractCreation reports whether this message deploys a new contract.
func (m *Message) IsContractCreation() bool { return m.To == nil }

// EffectiveGasPrice returns what the sender actually pays per unit of gas:
// baseFee + min(tip cap, fee cap - baseFee) once EIP-1559 is active, or the
// flat gas price pre-London (GasFeeCap and GasTipCap both equal it then).
func (m *Message) EffectiveGasPrice(baseFee *uint256.Int) *uint256.Int {
	if baseFee == nil || baseFee.IsZero() {
		return new(uint256.Int).Set(m.GasFeeCap)
	}
	tip := new(uint256.Int).Sub(m.GasFeeCap, baseFee)
	if m.GasTipCap.Lt(tip) {
		tip = m.GasTipCap
	}
	return new(uint256.Int).Add(baseFee, tip)
}

// ResultAndState is the outcome of Transact: gas accounting plus whatever
// the top-level call or contract creation returned.
type ResultAndState struct {
	UsedGas         uint64
	ReturnData      []byte
	ContractAddress *types.Address
	Failed          bool
	VMErr           error
}

// TxDriver runs a single transaction against an EVM end to end: intrinsic
// gas validation, pre-execution accounting, the call/create itself, and
// post-execution accounting. Its pipeline stages are named fields rather
// than one monolithic function (mirroring the original's pre_execution /
// post_execution handler split) so a chain profile can override one stage
// — e.g. how the beneficiary is paid — without rewriting the others.
type TxDriver struct {
	EVM *vm.EVM

	// LoadAccounts pre-warms the access list plus the accounts the active
	// fork always treats as warm (EIP-3651 coinbase, EIP-2935 history
	// storage, active precompiles).
	LoadAccounts func(d *TxDriver, msg *Message) error

	// DeductCaller subtracts gas cost (plus blob cost) from the sender's
	// balance and bumps its nonce for ordinary calls.
	DeductCaller func(d *TxDriver, msg *Message) error

	// ApplyAuthList installs EIP-7702 delegations and credits the
	// empty-account refund for authorities that already existed.
	ApplyAuthList func(d *TxDriver, msg *Message) error

	// ReimburseCaller returns unused gas, priced at the effective gas price
	// it was bought at, to the sender.
	ReimburseCaller func(d *TxDriver, msg *Message, leftOverGas uint64)

	// RewardBeneficiary pays the refund-capped priority fee to the block's
	// fee recipient. The base fee itself is burned (EIP-1559), not paid.
	RewardBeneficiary func(d *TxDriver, msg *Message, gasUsed uint64)
}

// NewTxDriver returns a TxDriver wired to the mainnet pipeline stages.
func NewTxDriver(evm *vm.EVM) *TxDriver {
	return &TxDriver{
		EVM:               evm,
		LoadAccounts:      loadAccounts,
		DeductCaller:      deductCaller,
		ApplyAuthList:     applyAuthList,
		ReimburseCaller:   reimburseCaller,
		RewardBeneficiary: rewardBeneficiary,
	}
}

// Transact runs msg to completion: validates intrinsic gas, runs the
// pre-execution stages, invokes the interpreter, then runs the
// post-execution stages. It never returns a VM-level revert as a Go error
// (that is reported in ResultAndState.Failed/VMErr) but does return an
// error for pre-checks that mean the transaction never should have been
// included in the block.
func (d *TxDriver) Transact(msg *Message) (*ResultAndState, error) {
	rules := d.EVM.ChainRules()
	ibs := d.EVM.IntraBlockState()
	ibs.SetEIP6780(rules.IsEIP6780)

	if err := validateMessage(d, msg); err != nil {
		return nil, err
	}

	intrinsicGas, err := IntrinsicGas(msg.Data, msg.AccessList, len(msg.AuthList), msg.IsContractCreation(), rules)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "intrinsic gas")
	}
	if msg.GasLimit < intrinsicGas {
		return nil, evmerrors.ErrIntrinsicGas
	}

	if err := d.LoadAccounts(d, msg); err != nil {
		return nil, pkgerrors.Wrap(err, "load accounts")
	}
	if err := d.DeductCaller(d, msg); err != nil {
		return nil, pkgerrors.Wrap(err, "deduct caller")
	}
	if err := d.ApplyAuthList(d, msg); err != nil {
		return nil, pkgerrors.Wrap(err, "apply authorization list")
	}

	gasRemaining := msg.GasLimit - intrinsicGas

	var (
		ret             []byte
		leftOverGas     uint64
		vmErr           error
		contractAddress *types.Address
	)
	caller := vm.AccountRef(msg.From)
	if msg.IsContractCreation() {
		var addr types.Address
		ret, addr, leftOverGas, vmErr = d.EVM.Create(caller, msg.Data, gasRemaining, msg.Value)
		contractAddress = &addr
	} else {
		ret, leftOverGas, vmErr = d.EVM.Call(caller, *msg.To, msg.Data, gasRemaining, msg.Value, false)
	}

	gasUsed := msg.GasLimit - leftOverGas
	refund := capRefund(gasUsed, ibs.GetRefund(), rules)
	leftOverGas += refund
	gasUsed -= refund

	d.ReimburseCaller(d, msg, leftOverGas)
	d.RewardBeneficiary(d, msg, gasUsed)

	return &ResultAndState{
		UsedGas:         gasUsed,
		ReturnData:      ret,
		ContractAddress: contractAddress,
		Failed:          vmErr != nil,
		VMErr:           vmErr,
	}, nil
}

// validateMessage runs the nonce and fee-cap sanity checks a transaction
// pool would normally have already applied before a message ever reaches a
// TxDriver. msg.CheckNonce is false for synthetic, non-pool-sourced calls
// (benchmarks, eth_call-style simulation) that have no real account nonce
// to compare against.
func validateMessage(d *TxDriver, msg *Message) error {
	if msg.GasFeeCap.Lt(msg.GasTipCap) {
		return evmerrors.ErrTipAboveFeeCap
	}
	if baseFee := d.EVM.Context().BaseFee; baseFee != nil && msg.GasFeeCap.Lt(baseFee) {
		return evmerrors.ErrFeeCapTooLow
	}
	if !msg.CheckNonce {
		return nil
	}
	stateNonce := d.EVM.IntraBlockState().GetNonce(msg.From)
	if stateNonce == ^uint64(0) {
		return evmerrors.ErrNonceMax
	}
	if stateNonce > msg.Nonce {
		return evmerrors.ErrNonceTooLow
	}
	if stateNonce < msg.Nonce {
		return evmerrors.ErrNonceTooHigh
	}
	return nil
}

// loadAccounts is the default LoadAccounts stage, grounded on
// EthPreExecution::load_accounts: it primes the access list with the
// sender/recipient/precompiles/tx access-list entries, then warms whatever
// the active fork always treats as pre-warmed.
func loadAccounts(d *TxDriver, msg *Message) error {
	rules := d.EVM.ChainRules()
	ibs := d.EVM.IntraBlockState()

	ibs.PrepareAccessList(msg.From, msg.To, vm.ActivePrecompiles(rules), msg.AccessList)

	if rules.IsShanghai { // EIP-3651: COINBASE starts warm
		ibs.AddAddressToAccessList(d.EVM.Context().Coinbase)
	}
	if rules.IsPrague { // EIP-2935: the history-storage contract starts warm
		ibs.AddAddressToAccessList(vm.HistoryStorageAddress)
	}
	return nil
}

// deductCaller is the default DeductCaller stage, grounded on
// EthPreExecution::deduct_caller: gas_limit * effective_gas_price (plus
// blob cost under EIP-4844) is debited from the sender up front, and the
// sender's nonce is bumped immediately for calls (CREATE's bump happens in
// EVM.Create, against the address-derivation nonce read).
func deductCaller(d *TxDriver, msg *Message) error {
	ibs := d.EVM.IntraBlockState()
	ctx := d.EVM.Context()

	gasPrice := msg.EffectiveGasPrice(ctx.BaseFee)
	cost := new(uint256.Int).Mul(gasPrice, new(uint256.Int).SetUint64(msg.GasLimit))

	if len(msg.BlobHashes) > 0 && ctx.BlobBaseFee != nil {
		blobGas := new(uint256.Int).SetUint64(uint64(len(msg.BlobHashes)) * transaction.BlobTxBlobGasPerBlob)
		blobCost := new(uint256.Int).Mul(ctx.BlobBaseFee, blobGas)
		cost.Add(cost, blobCost)
	}

	balance := ibs.GetBalance(msg.From)
	if balance.Lt(cost) {
		return evmerrors.ErrInsufficientFunds
	}
	ibs.SubBalance(msg.From, cost)

	if !msg.IsContractCreation() {
		ibs.SetNonce(msg.From, ibs.GetNonce(msg.From)+1)
	}
	return nil
}

// applyAuthList is the default ApplyAuthList stage, grounded on
// apply_eip7702_auth_list: each authorization installs a
// 0xef0100 ++ address delegation on the authority account and bumps its
// nonce, crediting a refund for authorities that already existed in state
// (the account was not newly created by this authorization).
func applyAuthList(d *TxDriver, msg *Message) error {
	if len(msg.AuthList) == 0 {
		return nil
	}
	rules := d.EVM.ChainRules()
	if !rules.IsEIP7702 {
		return nil
	}
	ibs := d.EVM.IntraBlockState()

	var refund uint64
	for _, auth := range msg.AuthList {
		if auth.ChainID != 0 && auth.ChainID != d.EVM.ChainConfig().ChainID.Uint64() {
			continue
		}
		authority, err := auth.RecoverSigner()
		if err != nil {
			continue
		}
		if ibs.GetNonce(authority) != auth.Nonce {
			continue
		}
		if ibs.GetCodeSize(authority) != 0 && !vm.HasDelegation(ibs.GetCode(authority)) {
			continue
		}

		if ibs.Exist(authority) {
			refund += vm.PerEmptyAccountCost - vm.PerAuthBaseCost
		}

		ibs.AddAddressToAccessList(auth.Address)
		ibs.SetCode(authority, vm.AddressToDelegation(auth.Address))
		ibs.SetNonce(authority, auth.Nonce+1)
	}
	ibs.AddRefund(refund)
	return nil
}

// reimburseCaller is the default ReimburseCaller stage: unused gas goes
// back to the sender priced at the same effective gas price it was bought
// at, never the (possibly higher) fee cap.
func reimburseCaller(d *TxDriver, msg *Message, leftOverGas uint64) {
	ibs := d.EVM.IntraBlockState()
	gasPrice := msg.EffectiveGasPrice(d.EVM.Context().BaseFee)
	remaining := new(uint256.Int).Mul(gasPrice, new(uint256.Int).SetUint64(leftOverGas))
	ibs.AddBalance(msg.From, remaining)
}

// rewardBeneficiary is the default RewardBeneficiary stage: the priority
// fee portion of gasUsed (effective price minus base fee) is paid to the
// block's coinbase; the base-fee portion is left unpaid (burned).
func rewardBeneficiary(d *TxDriver, msg *Message, gasUsed uint64) {
	ibs := d.EVM.IntraBlockState()
	ctx := d.EVM.Context()

	price := msg.EffectiveGasPrice(ctx.BaseFee)
	tip := price
	if ctx.BaseFee != nil {
		tip = new(uint256.Int).Sub(price, ctx.BaseFee)
	}
	fee := new(uint256.Int).Mul(tip, new(uint256.Int).SetUint64(gasUsed))
	ibs.AddBalance(ctx.Coinbase, fee)
}
