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

// Package transaction defines the transaction envelope types the execution
// engine consumes. Signing, broadcast encoding, and mempool admission are
// out of scope; this package models only the fields C8 (the Transaction
// Driver) reads.
package transaction

import (
	"github.com/holiman/uint256"
	"github.com/vertexchain/evmcore/common/hash"
	"github.com/vertexchain/evmcore/common/types"
)

// Transaction type identifiers (EIP-2718 envelope byte).
const (
	LegacyTxType     = 0x00
	AccessListTxType = 0x01
	DynamicFeeTxType = 0x02
)

// TxData is the inner, type-specific representation of a transaction. Every
// concrete transaction type (LegacyTx, AccessListTx, DynamicFeeTx, BlobTx,
// SetCodeTx) implements it.
type TxData interface {
	txType() byte
	copy() TxData

	chainID() *uint256.Int
	data() []byte
	gas() uint64
	gasPrice() *uint256.Int
	gasTipCap() *uint256.Int
	gasFeeCap() *uint256.Int
	value() *uint256.Int
	nonce() uint64
	to() *types.Address
	from() *types.Address
	sign() []byte
	accessList() AccessList

	rawSignatureValues() (v, r, s *uint256.Int)
	setSignatureValues(chainID, v, r, s *uint256.Int)

	hash() types.Hash
}

// AccessTuple is one entry of an EIP-2930 access list: an address and the
// storage slots within it to warm up before execution.
type AccessTuple struct {
	Address     types.Address `json:"address"`
	StorageKeys []types.Hash  `json:"storageKeys"`
}

// AccessList is an EIP-2930 access list.
type AccessList []AccessTuple

// StorageKeys returns the total number of storage keys across the list.
func (al AccessList) StorageKeys() int {
	n := 0
	for _, tuple := range al {
		n += len(tuple.StorageKeys)
	}
	return n
}

// copyAddressPtr returns a deep copy of an *types.Address, or nil.
func copyAddressPtr(a *types.Address) *types.Address {
	if a == nil {
		return nil
	}
	cpy := *a
	return &cpy
}

// =============================================================================
// LegacyTx
// =============================================================================

// LegacyTx is a pre-EIP-2718 transaction.
type LegacyTx struct {
	Nonce    uint64
	GasPrice *uint256.Int
	Gas      uint64
	To       *types.Address
	Value    *uint256.Int
	Data     []byte

	From *types.Address // not part of the wire format; set after signature recovery

	V, R, S *uint256.Int

	txHash *types.Hash
}

func (tx *LegacyTx) txType() byte { return LegacyTxType }

func (tx *LegacyTx) copy() TxData {
	cpy := &LegacyTx{
		Nonce: tx.Nonce,
		Gas:   tx.Gas,
		To:    copyAddressPtr(tx.To),
		From:  copyAddressPtr(tx.From),
		Data:  append([]byte(nil), tx.Data...),
	}
	if tx.GasPrice != nil {
		cpy.GasPrice = new(uint256.Int).Set(tx.GasPrice)
	}
	if tx.Value != nil {
		cpy.Value = new(uint256.Int).Set(tx.Value)
	}
	if tx.V != nil {
		cpy.V = new(uint256.Int).Set(tx.V)
	}
	if tx.R != nil {
		cpy.R = new(uint256.Int).Set(tx.R)
	}
	if tx.S != nil {
		cpy.S = new(uint256.Int).Set(tx.S)
	}
	return cpy
}

func (tx *LegacyTx) chainID() *uint256.Int   { return nil }
func (tx *LegacyTx) data() []byte            { return tx.Data }
func (tx *LegacyTx) gas() uint64             { return tx.Gas }
func (tx *LegacyTx) gasPrice() *uint256.Int  { return tx.GasPrice }
func (tx *LegacyTx) gasTipCap() *uint256.Int { return tx.GasPrice }
func (tx *LegacyTx) gasFeeCap() *uint256.Int { return tx.GasPrice }
func (tx *LegacyTx) value() *uint256.Int     { return tx.Value }
func (tx *LegacyTx) nonce() uint64           { return tx.Nonce }
func (tx *LegacyTx) to() *types.Address      { return tx.To }
func (tx *LegacyTx) from() *types.Address    { return tx.From }
func (tx *LegacyTx) sign() []byte            { return nil }
func (tx *LegacyTx) accessList() AccessList  { return nil }

func (tx *LegacyTx) rawSignatureValues() (v, r, s *uint256.Int) { return tx.V, tx.R, tx.S }

func (tx *LegacyTx) setSignatureValues(chainID, v, r, s *uint256.Int) {
	tx.V, tx.R, tx.S = v, r, s
}

func (tx *LegacyTx) hash() types.Hash {
	if tx.txHash != nil {
		return *tx.txHash
	}
	h := hash.RlpHash([]interface{}{
		tx.Nonce, tx.GasPrice, tx.Gas, tx.To, tx.Value, tx.Data, tx.V, tx.R, tx.S,
	})
	tx.txHash = &h
	return h
}

// =============================================================================
// AccessListTx (EIP-2930)
// =============================================================================

// AccessListTx is an EIP-2930 transaction: a legacy transaction plus an
// access list of addresses/slots to warm up before execution.
type AccessListTx struct {
	ChainID    *uint256.Int
	Nonce      uint64
	GasPrice   *uint256.Int
	Gas        uint64
	To         *types.Address
	From       *types.Address
	Value      *uint256.Int
	Data       []byte
	AccessList AccessList

	V, R, S *uint256.Int
}

func (tx *AccessListTx) txType() byte { return AccessListTxType }

func (tx *AccessListTx) copy() TxData {
	cpy := &AccessListTx{
		Nonce:      tx.Nonce,
		Gas:        tx.Gas,
		To:         copyAddressPtr(tx.To),
		From:       copyAddressPtr(tx.From),
		Data:       append([]byte(nil), tx.Data...),
		AccessList: copyAccessList(tx.AccessList),
	}
	if tx.ChainID != nil {
		cpy.ChainID = new(uint256.Int).Set(tx.ChainID)
	}
	if tx.GasPrice != nil {
		cpy.GasPrice = new(uint256.Int).Set(tx.GasPrice)
	}
	if tx.Value != nil {
		cpy.Value = new(uint256.Int).Set(tx.Value)
	}
	if tx.V != nil {
		cpy.V = new(uint256.Int).Set(tx.V)
	}
	if tx.R != nil {
		cpy.R = new(uint256.Int).Set(tx.R)
	}
	if tx.S != nil {
		cpy.S = new(uint256.Int).Set(tx.S)
	}
	return cpy
}

func (tx *AccessListTx) chainID() *uint256.Int   { return tx.ChainID }
func (tx *AccessListTx) data() []byte            { return tx.Data }
func (tx *AccessListTx) gas() uint64             { return tx.Gas }
func (tx *AccessListTx) gasPrice() *uint256.Int  { return tx.GasPrice }
func (tx *AccessListTx) gasTipCap() *uint256.Int { return tx.GasPrice }
func (tx *AccessListTx) gasFeeCap() *uint256.Int { return tx.GasPrice }
func (tx *AccessListTx) value() *uint256.Int     { return tx.Value }
func (tx *AccessListTx) nonce() uint64           { return tx.Nonce }
func (tx *AccessListTx) to() *types.Address      { return tx.To }
func (tx *AccessListTx) from() *types.Address    { return tx.From }
func (tx *AccessListTx) sign() []byte            { return nil }
func (tx *AccessListTx) accessList() AccessList  { return tx.AccessList }

func (tx *AccessListTx) rawSignatureValues() (v, r, s *uint256.Int) { return tx.V, tx.R, tx.S }

func (tx *AccessListTx) setSignatureValues(chainID, v, r, s *uint256.Int) {
	tx.ChainID, tx.V, tx.R, tx.S = chainID, v, r, s
}

func (tx *AccessListTx) hash() types.Hash {
	return hash.PrefixedRlpHash(AccessListTxType, []interface{}{
		tx.ChainID, tx.Nonce, tx.GasPrice, tx.Gas, tx.To, tx.Value, tx.Data,
		tx.AccessList, tx.V, tx.R, tx.S,
	})
}

// =============================================================================
// DynamicFeeTx (EIP-1559)
// =============================================================================

// DynamicFeeTx is an EIP-1559 transaction with a priority-fee/fee-cap pair
// instead of a single gas price.
type DynamicFeeTx struct {
	ChainID    *uint256.Int
	Nonce      uint64
	GasTipCap  *uint256.Int
	GasFeeCap  *uint256.Int
	Gas        uint64
	To         *types.Address
	From       *types.Address
	Value      *uint256.Int
	Data       []byte
	AccessList AccessList

	V, R, S *uint256.Int
}

func (tx *DynamicFeeTx) txType() byte { return DynamicFeeTxType }

func (tx *DynamicFeeTx) copy() TxData {
	cpy := &DynamicFeeTx{
		Nonce:      tx.Nonce,
		Gas:        tx.Gas,
		To:         copyAddressPtr(tx.To),
		From:       copyAddressPtr(tx.From),
		Data:       append([]byte(nil), tx.Data...),
		AccessList: copyAccessList(tx.AccessList),
	}
	if tx.ChainID != nil {
		cpy.ChainID = new(uint256.Int).Set(tx.ChainID)
	}
	if tx.GasTipCap != nil {
		cpy.GasTipCap = new(uint256.Int).Set(tx.GasTipCap)
	}
	if tx.GasFeeCap != nil {
		cpy.GasFeeCap = new(uint256.Int).Set(tx.GasFeeCap)
	}
	if tx.Value != nil {
		cpy.Value = new(uint256.Int).Set(tx.Value)
	}
	if tx.V != nil {
		cpy.V = new(uint256.Int).Set(tx.V)
	}
	if tx.R != nil {
		cpy.R = new(uint256.Int).Set(tx.R)
	}
	if tx.S != nil {
		cpy.S = new(uint256.Int).Set(tx.S)
	}
	return cpy
}

func (tx *DynamicFeeTx) chainID() *uint256.Int   { return tx.ChainID }
func (tx *DynamicFeeTx) data() []byte            { return tx.Data }
func (tx *DynamicFeeTx) gas() uint64             { return tx.Gas }
func (tx *DynamicFeeTx) gasPrice() *uint256.Int  { return tx.GasFeeCap }
func (tx *DynamicFeeTx) gasTipCap() *uint256.Int { return tx.GasTipCap }
func (tx *DynamicFeeTx) gasFeeCap() *uint256.Int { return tx.GasFeeCap }
func (tx *DynamicFeeTx) value() *uint256.Int     { return tx.Value }
func (tx *DynamicFeeTx) nonce() uint64           { return tx.Nonce }
func (tx *DynamicFeeTx) to() *types.Address      { return tx.To }
func (tx *DynamicFeeTx) from() *types.Address    { return tx.From }
func (tx *DynamicFeeTx) sign() []byte            { return nil }
func (tx *DynamicFeeTx) accessList() AccessList  { return tx.AccessList }

func (tx *DynamicFeeTx) rawSignatureValues() (v, r, s *uint256.Int) { return tx.V, tx.R, tx.S }

func (tx *DynamicFeeTx) setSignatureValues(chainID, v, r, s *uint256.Int) {
	tx.ChainID, tx.V, tx.R, tx.S = chainID, v, r, s
}

func (tx *DynamicFeeTx) hash() types.Hash {
	return hash.PrefixedRlpHash(DynamicFeeTxType, []interface{}{
		tx.ChainID, tx.Nonce, tx.GasTipCap, tx.GasFeeCap, tx.Gas, tx.To, tx.Value,
		tx.Data, tx.AccessList, tx.V, tx.R, tx.S,
	})
}

// =============================================================================
// Transaction — the type-erased envelope C8 operates on
// =============================================================================

// Transaction wraps a concrete TxData and exposes the fields the
// Transaction Driver (C8) needs, independent of the envelope type.
type Transaction struct {
	inner TxData
}

// NewTx wraps inner in a Transaction envelope.
func NewTx(inner TxData) *Transaction { return &Transaction{inner: inner.copy()} }

func (tx *Transaction) Type() byte                { return tx.inner.txType() }
func (tx *Transaction) ChainID() *uint256.Int      { return tx.inner.chainID() }
func (tx *Transaction) Data() []byte               { return tx.inner.data() }
func (tx *Transaction) Gas() uint64                { return tx.inner.gas() }
func (tx *Transaction) GasPrice() *uint256.Int      { return tx.inner.gasPrice() }
func (tx *Transaction) GasTipCap() *uint256.Int     { return tx.inner.gasTipCap() }
func (tx *Transaction) GasFeeCap() *uint256.Int     { return tx.inner.gasFeeCap() }
func (tx *Transaction) Value() *uint256.Int         { return tx.inner.value() }
func (tx *Transaction) Nonce() uint64               { return tx.inner.nonce() }
func (tx *Transaction) To() *types.Address          { return tx.inner.to() }
func (tx *Transaction) From() *types.Address        { return tx.inner.from() }
func (tx *Transaction) AccessList() AccessList      { return tx.inner.accessList() }
func (tx *Transaction) Hash() types.Hash            { return tx.inner.hash() }
func (tx *Transaction) RawSignatureValues() (v, r, s *uint256.Int) {
	return tx.inner.rawSignatureValues()
}

// AuthList returns the EIP-7702 authorization list if the inner transaction
// is a SetCodeTx, or nil otherwise.
func (tx *Transaction) AuthList() AuthorizationList {
	if sc, ok := tx.inner.(*SetCodeTx); ok {
		return sc.AuthList
	}
	return nil
}

// BlobHashes returns the EIP-4844 versioned blob hashes if the inner
// transaction is a BlobTx, or nil otherwise.
func (tx *Transaction) BlobHashes() []types.Hash {
	if b, ok := tx.inner.(*BlobTx); ok {
		return b.BlobHashes
	}
	return nil
}

// BlobGasFeeCap returns the EIP-4844 blob fee cap if the inner transaction
// is a BlobTx, or nil otherwise.
func (tx *Transaction) BlobGasFeeCap() *uint256.Int {
	if b, ok := tx.inner.(*BlobTx); ok {
		return b.BlobFeeCap
	}
	return nil
}

// IsContractCreation reports whether this transaction has no recipient.
func (tx *Transaction) IsContractCreation() bool { return tx.To() == nil }
