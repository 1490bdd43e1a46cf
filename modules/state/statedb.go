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

package state

import (
	"github.com/holiman/uint256"
	"github.com/vertexchain/evmcore/common"
	"github.com/vertexchain/evmcore/common/account"
	"github.com/vertexchain/evmcore/common/block"
	"github.com/vertexchain/evmcore/common/crypto"
	"github.com/vertexchain/evmcore/common/transaction"
	"github.com/vertexchain/evmcore/common/types"
	"github.com/vertexchain/evmcore/log"
)

// IntraBlockState satisfies common.StateDB, the interface the interpreter
// is written against.
var _ common.StateDB = (*IntraBlockState)(nil)

// IntraBlockState is the journaled world-state view the interpreter mutates
// during a single transaction's execution: every balance/nonce/code/storage
// write is recorded in a journal entry first, so a failing call frame can
// unwind exactly the mutations it made via RevertToSnapshot, without
// touching sibling frames' changes. It implements common.StateDB.
type IntraBlockState struct {
	reader StateReader
	writer WriterWithChangeSets

	stateObjects map[types.Address]*stateObject

	journal *journal

	accessList       *accessList
	transientStorage transientStorage

	refund uint64

	logs    map[types.Hash][]*block.Log
	logSize uint

	thash   types.Hash
	txIndex int

	// createdThisTx tracks addresses created earlier in the current
	// transaction, the predicate EIP-6780 gates a true selfdestruct sweep
	// of storage/code on (only accounts created and destroyed in the same
	// transaction are swept immediately; otherwise selfdestruct merely
	// zeroes the balance until the next state commit prunes empty accounts).
	createdThisTx map[types.Address]struct{}

	// eip6780 gates Selfdestruct's same-transaction-creation check. Set once
	// per block via SetEIP6780 from the active params.Rules.IsEIP6780 (Cancun+).
	eip6780 bool

	nextRevisionID int
	validRevisions []revision
}

type revision struct {
	id           int
	journalIndex int
}

// New returns a fresh IntraBlockState reading through reader and
// accumulating writes for writer.
func New(reader StateReader, writer WriterWithChangeSets) *IntraBlockState {
	return &IntraBlockState{
		reader:           reader,
		writer:           writer,
		stateObjects:     make(map[types.Address]*stateObject),
		journal:          newJournal(),
		accessList:       newAccessList(),
		transientStorage: newTransientStorage(),
		logs:             make(map[types.Hash][]*block.Log),
		createdThisTx:    make(map[types.Address]struct{}),
	}
}

func (s *IntraBlockState) getStateObject(addr types.Address) *stateObject {
	if obj, ok := s.stateObjects[addr]; ok {
		return obj
	}
	data, err := s.reader.ReadAccountData(addr)
	if err != nil {
		log.Error("read account data", "address", addr, "err", err)
		return nil
	}
	if data == nil {
		return nil
	}
	obj := newStateObject(addr, data)
	s.stateObjects[addr] = obj
	return obj
}

func (s *IntraBlockState) getOrNewStateObject(addr types.Address) *stateObject {
	obj := s.getStateObject(addr)
	if obj == nil {
		obj = s.createObject(addr)
	}
	return obj
}

func (s *IntraBlockState) createObject(addr types.Address) *stateObject {
	obj := newStateObject(addr, account.NewAccount())
	s.stateObjects[addr] = obj
	s.createdThisTx[addr] = struct{}{}
	s.journal.append(createObjectChange{account: &addr})
	return obj
}

// CreateAccount creates a fresh, empty account at addr, discarding any
// existing storage cache (but not the backing store's balance, which a
// caller that intends a true reset first zeroes explicitly via SubBalance).
func (s *IntraBlockState) CreateAccount(addr types.Address, contractCreation bool) {
	existing := s.getStateObject(addr)

	newObj := s.createObject(addr)
	if existing != nil {
		newObj.setBalance(&existing.data.Balance)
	}
	if contractCreation {
		newObj.data.Nonce = 0
	}
}

func (s *IntraBlockState) Exist(addr types.Address) bool {
	return s.getStateObject(addr) != nil
}

func (s *IntraBlockState) Empty(addr types.Address) bool {
	obj := s.getStateObject(addr)
	return obj == nil || obj.empty()
}

func (s *IntraBlockState) SubBalance(addr types.Address, amount *uint256.Int) {
	obj := s.getOrNewStateObject(addr)
	if obj == nil || amount.IsZero() {
		return
	}
	s.journal.append(balanceChange{account: &addr, prev: obj.data.Balance})
	var next uint256.Int
	next.Sub(&obj.data.Balance, amount)
	obj.setBalance(&next)
}

func (s *IntraBlockState) AddBalance(addr types.Address, amount *uint256.Int) {
	obj := s.getOrNewStateObject(addr)
	if obj == nil {
		return
	}
	if amount.IsZero() {
		// Touching an account with a zero-value transfer still marks it
		// dirty for EIP-161 emptiness accounting.
		s.journal.dirty(addr)
		return
	}
	s.journal.append(balanceChange{account: &addr, prev: obj.data.Balance})
	var next uint256.Int
	next.Add(&obj.data.Balance, amount)
	obj.setBalance(&next)
}

func (s *IntraBlockState) GetBalance(addr types.Address) *uint256.Int {
	obj := s.getStateObject(addr)
	if obj == nil {
		return new(uint256.Int)
	}
	return new(uint256.Int).Set(&obj.data.Balance)
}

func (s *IntraBlockState) GetNonce(addr types.Address) uint64 {
	obj := s.getStateObject(addr)
	if obj == nil {
		return 0
	}
	return obj.data.Nonce
}

func (s *IntraBlockState) SetNonce(addr types.Address, nonce uint64) {
	obj := s.getOrNewStateObject(addr)
	if obj == nil {
		return
	}
	s.journal.append(nonceChange{account: &addr, prev: obj.data.Nonce})
	obj.setNonce(nonce)
}

func (s *IntraBlockState) GetCodeHash(addr types.Address) types.Hash {
	obj := s.getStateObject(addr)
	if obj == nil {
		return types.Hash{}
	}
	return obj.data.CodeHash
}

func (s *IntraBlockState) GetCode(addr types.Address) []byte {
	obj := s.getStateObject(addr)
	if obj == nil {
		return nil
	}
	if obj.code != nil {
		return obj.code
	}
	if obj.data.CodeHash == account.EmptyCodeHash {
		return nil
	}
	code, err := s.reader.ReadAccountCode(addr, obj.data.Incarnation, obj.data.CodeHash)
	if err != nil {
		log.Error("read account code", "address", addr, "err", err)
		return nil
	}
	obj.code = code
	return code
}

func (s *IntraBlockState) SetCode(addr types.Address, code []byte) {
	obj := s.getOrNewStateObject(addr)
	if obj == nil {
		return
	}
	codeHash := account.EmptyCodeHash
	if len(code) > 0 {
		codeHash = types.BytesToHash(crypto.Keccak256(code))
	}
	s.journal.append(codeChange{account: &addr, prevcode: obj.code, prevhash: obj.data.CodeHash})
	obj.setCode(codeHash, code)
}

func (s *IntraBlockState) GetCodeSize(addr types.Address) int {
	return len(s.GetCode(addr))
}

func (s *IntraBlockState) AddRefund(gas uint64) {
	s.journal.append(refundChange{prev: s.refund})
	s.refund += gas
}

func (s *IntraBlockState) SubRefund(gas uint64) {
	s.journal.append(refundChange{prev: s.refund})
	if gas > s.refund {
		panic("refund counter below zero")
	}
	s.refund -= gas
}

func (s *IntraBlockState) GetRefund() uint64 {
	return s.refund
}

func (s *IntraBlockState) GetCommittedState(addr types.Address, key *types.Hash, outValue *uint256.Int) {
	obj := s.getStateObject(addr)
	if obj == nil {
		outValue.Clear()
		return
	}
	v := obj.getCommittedState(s.reader, obj.data.Incarnation, *key)
	outValue.Set(&v)
}

func (s *IntraBlockState) GetState(addr types.Address, key *types.Hash, outValue *uint256.Int) {
	obj := s.getStateObject(addr)
	if obj == nil {
		outValue.Clear()
		return
	}
	v := obj.getState(s.reader, obj.data.Incarnation, *key)
	outValue.Set(&v)
}

func (s *IntraBlockState) SetState(addr types.Address, key *types.Hash, value uint256.Int) {
	obj := s.getOrNewStateObject(addr)
	if obj == nil {
		return
	}
	prev := obj.getState(s.reader, obj.data.Incarnation, *key)
	if prev == value {
		return
	}
	s.journal.append(storageChange{account: &addr, key: *key, prevvalue: prev})
	obj.setState(*key, value)
}

// SetEIP6780 enables or disables the EIP-6780 same-transaction-creation
// gate Selfdestruct consults. The Transaction Driver calls this once per
// block from the active fork rules before executing any transaction.
func (s *IntraBlockState) SetEIP6780(enabled bool) {
	s.eip6780 = enabled
}

// Selfdestruct marks addr for destruction. Pre-Cancun (or with eip6780
// disabled) this always sweeps code, storage, and nonce at Finalise via the
// selfdestructed flag. Under EIP-6780, a contract not created earlier in
// the current transaction only has its balance zeroed here (the caller has
// already moved that balance to the beneficiary); its code, storage, and
// nonce survive past this transaction since obj.selfdestructed is left
// false.
func (s *IntraBlockState) Selfdestruct(addr types.Address) bool {
	obj := s.getStateObject(addr)
	if obj == nil {
		return false
	}
	_, createdThisTx := s.createdThisTx[addr]
	if s.eip6780 && !createdThisTx {
		if obj.data.Balance.IsZero() {
			return false
		}
		s.journal.append(selfdestructChange{
			account:     &addr,
			prev:        obj.selfdestructed,
			prevbalance: obj.data.Balance,
		})
		obj.setBalance(new(uint256.Int))
		return true
	}
	s.journal.append(selfdestructChange{
		account:     &addr,
		prev:        obj.selfdestructed,
		prevbalance: obj.data.Balance,
	})
	obj.selfdestructed = true
	obj.setBalance(new(uint256.Int))
	return true
}

func (s *IntraBlockState) HasSelfdestructed(addr types.Address) bool {
	obj := s.getStateObject(addr)
	return obj != nil && obj.selfdestructed
}

// CreatedInCurrentTx reports whether addr was created by CreateAccount
// earlier in the current transaction, the EIP-6780 predicate gating whether
// a Selfdestruct also sweeps storage immediately.
func (s *IntraBlockState) CreatedInCurrentTx(addr types.Address) bool {
	_, ok := s.createdThisTx[addr]
	return ok
}

func (s *IntraBlockState) PrepareAccessList(sender types.Address, dest *types.Address, precompiles []types.Address, txAccesses transaction.AccessList) {
	s.accessList = newAccessList()
	s.AddAddressToAccessList(sender)
	if dest != nil {
		s.AddAddressToAccessList(*dest)
	}
	for _, addr := range precompiles {
		s.AddAddressToAccessList(addr)
	}
	for _, tuple := range txAccesses {
		s.AddAddressToAccessList(tuple.Address)
		for _, key := range tuple.StorageKeys {
			s.AddSlotToAccessList(tuple.Address, key)
		}
	}
}

func (s *IntraBlockState) AddressInAccessList(addr types.Address) bool {
	return s.accessList.ContainsAddress(addr)
}

func (s *IntraBlockState) SlotInAccessList(addr types.Address, slot types.Hash) (bool, bool) {
	return s.accessList.Contains(addr, slot)
}

func (s *IntraBlockState) AddAddressToAccessList(addr types.Address) {
	if s.accessList.AddAddress(addr) {
		s.journal.append(accessListAddAccountChange{address: &addr})
	}
}

func (s *IntraBlockState) AddSlotToAccessList(addr types.Address, slot types.Hash) {
	addrChange, slotChange := s.accessList.AddSlot(addr, slot)
	if addrChange {
		s.journal.append(accessListAddAccountChange{address: &addr})
	}
	if slotChange {
		s.journal.append(accessListAddSlotChange{address: &addr, slot: &slot})
	}
}

func (s *IntraBlockState) Snapshot() int {
	id := s.nextRevisionID
	s.nextRevisionID++
	s.validRevisions = append(s.validRevisions, revision{id: id, journalIndex: s.journal.length()})
	return id
}

func (s *IntraBlockState) RevertToSnapshot(revisionID int) {
	idx := -1
	for i, r := range s.validRevisions {
		if r.id == revisionID {
			idx = i
			break
		}
	}
	if idx == -1 {
		panic("revision id not found")
	}
	snapshot := s.validRevisions[idx].journalIndex
	s.journal.revert(s, snapshot)
	s.validRevisions = s.validRevisions[:idx]
}

func (s *IntraBlockState) AddLog(l *block.Log) {
	s.journal.append(addLogChange{txhash: s.thash})
	l.TxHash = s.thash
	l.TxIndex = uint(s.txIndex)
	l.Index = s.logSize
	s.logs[s.thash] = append(s.logs[s.thash], l)
	s.logSize++
}

// GetLogs returns the logs recorded for the given transaction hash.
func (s *IntraBlockState) GetLogs(thash types.Hash) []*block.Log {
	return s.logs[thash]
}

// SetTxContext sets the transaction hash and index used by AddLog for the
// entries recorded while executing that transaction.
func (s *IntraBlockState) SetTxContext(thash types.Hash, txIndex int) {
	s.thash = thash
	s.txIndex = txIndex
}

func (s *IntraBlockState) GetTransientState(addr types.Address, key types.Hash) uint256.Int {
	return s.transientStorage.Get(addr, key)
}

func (s *IntraBlockState) SetTransientState(addr types.Address, key types.Hash, value uint256.Int) {
	s.transientStorage.Set(addr, key, value)
}

// Finalise applies all pending journal-tracked mutations to the backing
// writer: self-destructed and EIP-161-empty accounts are deleted, everyone
// else's dirty balance/nonce/code/storage is flushed. deleteEmptyObjects
// should be true from SpuriousDragon onward (params.Rules.IsEIP158).
func (s *IntraBlockState) Finalise(deleteEmptyObjects bool) error {
	for addr, obj := range s.stateObjects {
		if obj.selfdestructed || (deleteEmptyObjects && obj.empty()) {
			if err := s.writer.DeleteAccount(addr, obj.data); err != nil {
				return err
			}
			continue
		}
		if obj.dirtyCode {
			if err := s.writer.UpdateAccountCode(addr, obj.data.Incarnation, obj.data.CodeHash, obj.code); err != nil {
				return err
			}
		}
		for key, value := range obj.dirtyStorage {
			original := obj.originStorage[key]
			if err := s.writer.WriteAccountStorage(addr, obj.data.Incarnation, &key, &original, &value); err != nil {
				return err
			}
			obj.originStorage[key] = value
		}
		obj.dirtyStorage = make(Storage)
		if err := s.writer.UpdateAccountData(addr, nil, obj.data); err != nil {
			return err
		}
	}
	s.createdThisTx = make(map[types.Address]struct{})
	s.transientStorage = newTransientStorage()
	return s.writer.WriteChangeSets()
}
