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
	"sync"

	"github.com/holiman/uint256"
	"github.com/vertexchain/evmcore/common/account"
	"github.com/vertexchain/evmcore/common/types"
)

// MemoryStore is an in-memory backing store: the pluggable-database side of
// the StateReader/StateWriter split, keyed directly on address/slot rather
// than a hashed trie layout.
type MemoryStore struct {
	mu           sync.RWMutex
	accounts     map[types.Address]*account.StateAccount
	storage      map[types.Address]map[types.Hash][]byte
	code         map[types.Hash][]byte
	incarnations map[types.Address]uint16
}

// NewMemoryStore returns an empty backing store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts:     make(map[types.Address]*account.StateAccount),
		storage:      make(map[types.Address]map[types.Hash][]byte),
		code:         make(map[types.Hash][]byte),
		incarnations: make(map[types.Address]uint16),
	}
}

// PlainStateReader reads current (non-historical) state from a MemoryStore.
type PlainStateReader struct {
	db *MemoryStore
}

// NewPlainStateReader wraps db for StateReader access.
func NewPlainStateReader(db *MemoryStore) *PlainStateReader {
	return &PlainStateReader{db: db}
}

func (r *PlainStateReader) ReadAccountData(address types.Address) (*account.StateAccount, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	a, ok := r.db.accounts[address]
	if !ok {
		return nil, nil
	}
	return a.SelfCopy(), nil
}

func (r *PlainStateReader) ReadAccountStorage(address types.Address, incarnation uint16, key *types.Hash) ([]byte, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	slots, ok := r.db.storage[address]
	if !ok {
		return nil, nil
	}
	return slots[*key], nil
}

func (r *PlainStateReader) ReadAccountCode(address types.Address, incarnation uint16, codeHash types.Hash) ([]byte, error) {
	if codeHash == account.EmptyCodeHash {
		return nil, nil
	}
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return r.db.code[codeHash], nil
}

func (r *PlainStateReader) ReadAccountCodeSize(address types.Address, incarnation uint16, codeHash types.Hash) (int, error) {
	code, err := r.ReadAccountCode(address, incarnation, codeHash)
	if err != nil {
		return 0, err
	}
	return len(code), nil
}

func (r *PlainStateReader) ReadAccountIncarnation(address types.Address) (uint16, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return r.db.incarnations[address], nil
}

// PlainStateWriter writes to plain state and accumulates a change set for
// the duration of its lifetime (one block), for WriteChangeSets/WriteHistory
// to persist in a single batch.
type PlainStateWriter struct {
	db      *MemoryStore
	changes []accountChange
}

type accountChange struct {
	address types.Address
	deleted bool
}

// NewPlainStateWriter wraps db for StateWriter access.
func NewPlainStateWriter(db *MemoryStore) *PlainStateWriter {
	return &PlainStateWriter{db: db}
}

func (w *PlainStateWriter) UpdateAccountData(address types.Address, original, acc *account.StateAccount) error {
	w.db.mu.Lock()
	defer w.db.mu.Unlock()
	w.db.accounts[address] = acc.SelfCopy()
	w.changes = append(w.changes, accountChange{address: address})
	return nil
}

func (w *PlainStateWriter) UpdateAccountCode(address types.Address, incarnation uint16, codeHash types.Hash, code []byte) error {
	w.db.mu.Lock()
	defer w.db.mu.Unlock()
	w.db.code[codeHash] = append([]byte(nil), code...)
	return nil
}

func (w *PlainStateWriter) DeleteAccount(address types.Address, original *account.StateAccount) error {
	w.db.mu.Lock()
	defer w.db.mu.Unlock()
	delete(w.db.accounts, address)
	delete(w.db.storage, address)
	w.db.incarnations[address]++
	w.changes = append(w.changes, accountChange{address: address, deleted: true})
	return nil
}

func (w *PlainStateWriter) WriteAccountStorage(address types.Address, incarnation uint16, key *types.Hash, original, value *uint256.Int) error {
	w.db.mu.Lock()
	defer w.db.mu.Unlock()
	slots, ok := w.db.storage[address]
	if !ok {
		slots = make(map[types.Hash][]byte)
		w.db.storage[address] = slots
	}
	if value == nil || value.IsZero() {
		delete(slots, *key)
		return nil
	}
	slots[*key] = value.Bytes()
	return nil
}

func (w *PlainStateWriter) CreateContract(address types.Address) error {
	w.db.mu.Lock()
	defer w.db.mu.Unlock()
	w.db.incarnations[address]++
	return nil
}

// WriteChangeSets is a no-op: this store holds only current state, so there
// is no separate changeset log to flush.
func (w *PlainStateWriter) WriteChangeSets() error {
	w.changes = nil
	return nil
}

// WriteHistory is a no-op for the same reason: historical-state storage
// layout is out of scope for this engine.
func (w *PlainStateWriter) WriteHistory() error {
	return nil
}

// HistoryStateReader reads state as of a specific historical block number.
// Since on-disk historical storage layout is out of this engine's scope, it
// reads through to current state; embedders that need genuine point-in-time
// queries supply their own StateReader.
type HistoryStateReader struct {
	db          *MemoryStore
	blockNumber uint64
}

// NewHistoryStateReader wraps db as a StateReader pinned to blockNumber.
func NewHistoryStateReader(db *MemoryStore, blockNumber uint64) *HistoryStateReader {
	return &HistoryStateReader{db: db, blockNumber: blockNumber}
}

func (r *HistoryStateReader) ReadAccountData(address types.Address) (*account.StateAccount, error) {
	return (&PlainStateReader{db: r.db}).ReadAccountData(address)
}

func (r *HistoryStateReader) ReadAccountStorage(address types.Address, incarnation uint16, key *types.Hash) ([]byte, error) {
	return (&PlainStateReader{db: r.db}).ReadAccountStorage(address, incarnation, key)
}

func (r *HistoryStateReader) ReadAccountCode(address types.Address, incarnation uint16, codeHash types.Hash) ([]byte, error) {
	return (&PlainStateReader{db: r.db}).ReadAccountCode(address, incarnation, codeHash)
}

func (r *HistoryStateReader) ReadAccountCodeSize(address types.Address, incarnation uint16, codeHash types.Hash) (int, error) {
	return (&PlainStateReader{db: r.db}).ReadAccountCodeSize(address, incarnation, codeHash)
}

func (r *HistoryStateReader) ReadAccountIncarnation(address types.Address) (uint16, error) {
	return (&PlainStateReader{db: r.db}).ReadAccountIncarnation(address)
}
