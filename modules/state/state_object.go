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
	"github.com/vertexchain/evmcore/common/account"
	"github.com/vertexchain/evmcore/common/types"
)

// Storage maps a 32-byte storage key to its 256-bit value. It backs both the
// per-account dirty/original storage caches kept by stateObject and the
// per-address maps inside transientStorage.
type Storage map[types.Hash]uint256.Int

// Copy returns a shallow copy of the storage map.
func (s Storage) Copy() Storage {
	cpy := make(Storage, len(s))
	for key, value := range s {
		cpy[key] = value
	}
	return cpy
}

// stateObject wraps a single account's persistent fields together with the
// in-memory caches IntraBlockState needs to serve reads without round
// tripping to the backing store on every SLOAD, and to know which storage
// slots and code must be flushed when the block commits.
type stateObject struct {
	address types.Address
	data    *account.StateAccount

	// code holds the contract's runtime bytecode once loaded; nil until the
	// first GetCode call or SetCode.
	code []byte

	// originStorage holds slot values as read from the backing store, used
	// to compute the "original" value the journal needs for SSTORE refund
	// accounting (EIP-2200).
	originStorage Storage
	// dirtyStorage holds slots written during the current transaction,
	// flushed into originStorage (and the backing store) at commit.
	dirtyStorage Storage

	// selfdestructed marks the object destroyed in the current
	// transaction; it still reads/writes normally until the journal
	// commits, since a later revert can undo the destruction.
	selfdestructed bool
	// createdThisTx marks the object created in the current transaction,
	// the predicate EIP-6780 gates a true selfdestruct sweep on.
	createdThisTx bool

	// dirtyCode marks that code was set in the current transaction and
	// needs writing to the backing store at commit.
	dirtyCode bool
	// deleted marks the object removed from the backing store entirely
	// (an EIP-161 empty-account sweep or a completed selfdestruct).
	deleted bool
}

// newStateObject returns a stateObject wrapping data, with empty caches.
func newStateObject(address types.Address, data *account.StateAccount) *stateObject {
	if data == nil {
		data = account.NewAccount()
	}
	return &stateObject{
		address:       address,
		data:          data,
		originStorage: make(Storage),
		dirtyStorage:  make(Storage),
	}
}

// empty reports whether the wrapped account is EIP-161 empty.
func (s *stateObject) empty() bool {
	return s.data.IsEmpty()
}

func (s *stateObject) setBalance(amount *uint256.Int) {
	s.data.Balance.Set(amount)
}

func (s *stateObject) setNonce(nonce uint64) {
	s.data.Nonce = nonce
}

func (s *stateObject) setCode(codeHash types.Hash, code []byte) {
	s.code = code
	s.data.CodeHash = codeHash
	s.dirtyCode = true
}

// getCommittedState returns the slot's value as last known to the backing
// store, ignoring any dirty write made in the current transaction. It is
// the "original" value SSTORE's refund accounting compares against.
func (s *stateObject) getCommittedState(reader StateReader, incarnation uint16, key types.Hash) uint256.Int {
	if value, cached := s.originStorage[key]; cached {
		return value
	}
	enc, err := reader.ReadAccountStorage(s.address, incarnation, &key)
	var value uint256.Int
	if err == nil && len(enc) > 0 {
		value.SetBytes(enc)
	}
	s.originStorage[key] = value
	return value
}

// getState returns the slot's current value: the dirty write if one exists
// in this transaction, otherwise the committed value.
func (s *stateObject) getState(reader StateReader, incarnation uint16, key types.Hash) uint256.Int {
	if value, dirty := s.dirtyStorage[key]; dirty {
		return value
	}
	return s.getCommittedState(reader, incarnation, key)
}

func (s *stateObject) setState(key types.Hash, value uint256.Int) {
	s.dirtyStorage[key] = value
}

// deepCopy returns a copy of the object suitable for a state snapshot; the
// journal, not this method, is responsible for reverting mutations, so this
// is used only when duplicating a whole IntraBlockState (e.g. for tracing).
func (s *stateObject) deepCopy() *stateObject {
	cpy := &stateObject{
		address:        s.address,
		data:           s.data.SelfCopy(),
		code:           append([]byte(nil), s.code...),
		originStorage:  s.originStorage.Copy(),
		dirtyStorage:   s.dirtyStorage.Copy(),
		selfdestructed: s.selfdestructed,
		createdThisTx:  s.createdThisTx,
		dirtyCode:      s.dirtyCode,
		deleted:        s.deleted,
	}
	return cpy
}
