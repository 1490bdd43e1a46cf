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
	"github.com/vertexchain/evmcore/common/types"
)

// journalEntry is a single reversible state mutation. revert undoes it
// against db; dirtied names the address whose stateObject the mutation
// touched, if any (used by IntraBlockState to clean up empty objects once
// a transaction finalizes).
type journalEntry interface {
	revert(db *IntraBlockState)
	dirtied() *types.Address
}

// journal is the reversible mutation log backing Snapshot/RevertToSnapshot:
// every state-changing method on IntraBlockState appends one entry here
// before applying the mutation, so RevertToSnapshot can walk the log
// backwards and undo everything recorded since a given snapshot id.
//
// Transient storage (EIP-1153) is deliberately not journaled: it is only
// ever cleared in bulk at transaction end, so there is nothing a revert
// within a transaction needs to restore.
type journal struct {
	entries []journalEntry
	dirties map[types.Address]int // address -> number of dirtying entries
}

// newJournal returns an empty journal.
func newJournal() *journal {
	return &journal{
		dirties: make(map[types.Address]int),
	}
}

// length returns the number of entries recorded, usable as a Snapshot id.
func (j *journal) length() int {
	return len(j.entries)
}

// append records entry and bumps its dirtied address's dirty count.
func (j *journal) append(entry journalEntry) {
	j.entries = append(j.entries, entry)
	if addr := entry.dirtied(); addr != nil {
		j.dirties[*addr]++
	}
}

// revert undoes every entry recorded after snapshot, in reverse order.
func (j *journal) revert(db *IntraBlockState, snapshot int) {
	for i := len(j.entries) - 1; i >= snapshot; i-- {
		entry := j.entries[i]
		entry.revert(db)
		if addr := entry.dirtied(); addr != nil {
			if j.dirties[*addr]--; j.dirties[*addr] == 0 {
				delete(j.dirties, *addr)
			}
		}
	}
	j.entries = j.entries[:snapshot]
}

// dirty marks addr as touched outside of a dedicated journal entry (used by
// operations, like CreateAccount, that don't themselves need a revert but
// whose target must still be swept for emptiness at transaction end).
func (j *journal) dirty(addr types.Address) {
	j.dirties[addr]++
}

type (
	createObjectChange struct {
		account *types.Address
	}
	selfdestructChange struct {
		account     *types.Address
		prev        bool // whether account had already self-destructed
		prevbalance uint256.Int
	}
	balanceChange struct {
		account *types.Address
		prev    uint256.Int
	}
	nonceChange struct {
		account *types.Address
		prev    uint64
	}
	codeChange struct {
		account  *types.Address
		prevcode []byte
		prevhash types.Hash
	}
	storageChange struct {
		account   *types.Address
		key       types.Hash
		prevvalue uint256.Int
	}
	refundChange struct {
		prev uint64
	}
	addLogChange struct {
		txhash types.Hash
	}
	accessListAddAccountChange struct {
		address *types.Address
	}
	accessListAddSlotChange struct {
		address *types.Address
		slot    *types.Hash
	}
)

func (ch createObjectChange) revert(db *IntraBlockState) {
	delete(db.stateObjects, *ch.account)
}
func (ch createObjectChange) dirtied() *types.Address { return ch.account }

func (ch selfdestructChange) revert(db *IntraBlockState) {
	obj := db.getStateObject(*ch.account)
	if obj != nil {
		obj.selfdestructed = ch.prev
		obj.setBalance(&ch.prevbalance)
	}
}
func (ch selfdestructChange) dirtied() *types.Address { return ch.account }

func (ch balanceChange) revert(db *IntraBlockState) {
	db.getStateObject(*ch.account).setBalance(&ch.prev)
}
func (ch balanceChange) dirtied() *types.Address { return ch.account }

func (ch nonceChange) revert(db *IntraBlockState) {
	db.getStateObject(*ch.account).setNonce(ch.prev)
}
func (ch nonceChange) dirtied() *types.Address { return ch.account }

func (ch codeChange) revert(db *IntraBlockState) {
	obj := db.getStateObject(*ch.account)
	obj.code = ch.prevcode
	obj.data.CodeHash = ch.prevhash
}
func (ch codeChange) dirtied() *types.Address { return ch.account }

func (ch storageChange) revert(db *IntraBlockState) {
	db.getStateObject(*ch.account).setState(ch.key, ch.prevvalue)
}
func (ch storageChange) dirtied() *types.Address { return ch.account }

func (ch refundChange) revert(db *IntraBlockState) {
	db.refund = ch.prev
}
func (ch refundChange) dirtied() *types.Address { return nil }

func (ch addLogChange) revert(db *IntraBlockState) {
	logs := db.logs[ch.txhash]
	db.logs[ch.txhash] = logs[:len(logs)-1]
	if len(db.logs[ch.txhash]) == 0 {
		delete(db.logs, ch.txhash)
	}
}
func (ch addLogChange) dirtied() *types.Address { return nil }

func (ch accessListAddAccountChange) revert(db *IntraBlockState) {
	db.accessList.DeleteAddress(*ch.address)
}
func (ch accessListAddAccountChange) dirtied() *types.Address { return nil }

func (ch accessListAddSlotChange) revert(db *IntraBlockState) {
	db.accessList.DeleteSlot(*ch.address, *ch.slot)
}
func (ch accessListAddSlotChange) dirtied() *types.Address { return nil }
