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

import "github.com/vertexchain/evmcore/common/types"

// accessList is the EIP-2929/2930 warm/cold bookkeeping: which addresses and
// which (address, slot) pairs have already been touched in the current
// transaction, and therefore qualify for the warm (cheap) access price on
// subsequent touches.
type accessList struct {
	addresses map[types.Address]int
	slots     []map[types.Hash]struct{}
}

// newAccessList returns an empty access list.
func newAccessList() *accessList {
	return &accessList{
		addresses: make(map[types.Address]int),
	}
}

// ContainsAddress reports whether address is on the list.
func (al *accessList) ContainsAddress(address types.Address) bool {
	_, ok := al.addresses[address]
	return ok
}

// Contains reports whether (address, slot) is on the list. addressOk is true
// whenever the address itself is present, independent of slotOk.
func (al *accessList) Contains(address types.Address, slot types.Hash) (addressOk bool, slotOk bool) {
	idx, ok := al.addresses[address]
	if !ok {
		return false, false
	}
	if idx == -1 {
		return true, false
	}
	_, slotPresent := al.slots[idx][slot]
	return true, slotPresent
}

// AddAddress adds address to the list. Returns whether it was newly added.
func (al *accessList) AddAddress(address types.Address) bool {
	if al.ContainsAddress(address) {
		return false
	}
	al.addresses[address] = -1
	return true
}

// AddSlot adds (address, slot) to the list, adding the address too if it
// isn't already present. Returns whether the address and the slot were
// newly added, respectively.
func (al *accessList) AddSlot(address types.Address, slot types.Hash) (addrChange bool, slotChange bool) {
	idx, addrPresent := al.addresses[address]
	if !addrPresent || idx == -1 {
		al.slots = append(al.slots, map[types.Hash]struct{}{slot: {}})
		al.addresses[address] = len(al.slots) - 1
		return !addrPresent, true
	}
	if _, slotPresent := al.slots[idx][slot]; slotPresent {
		return false, false
	}
	al.slots[idx][slot] = struct{}{}
	return false, true
}

// DeleteSlot removes (address, slot) from the list. The address's entry (and
// the fact that it has been touched) is left in place, only the slot is
// forgotten; callers undoing an AddSlot journal entry must call DeleteSlot
// before DeleteAddress when both were newly added by the same operation.
func (al *accessList) DeleteSlot(address types.Address, slot types.Hash) {
	idx, ok := al.addresses[address]
	if !ok {
		return
	}
	delete(al.slots[idx], slot)
}

// DeleteAddress removes address (and any slots recorded for it) from the
// list, used to undo an AddAddress/AddSlot journal entry on revert.
func (al *accessList) DeleteAddress(address types.Address) {
	delete(al.addresses, address)
}

// Copy returns an independent deep copy of the access list.
func (al *accessList) Copy() *accessList {
	cpy := &accessList{
		addresses: make(map[types.Address]int, len(al.addresses)),
		slots:     make([]map[types.Hash]struct{}, len(al.slots)),
	}
	for addr, idx := range al.addresses {
		cpy.addresses[addr] = idx
	}
	for i, slotMap := range al.slots {
		cpySlotMap := make(map[types.Hash]struct{}, len(slotMap))
		for slot := range slotMap {
			cpySlotMap[slot] = struct{}{}
		}
		cpy.slots[i] = cpySlotMap
	}
	return cpy
}
