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

// Package account holds the Account data model (spec §3): the persistent
// fields of a world-state account, independent of the journal overlay that
// tracks their in-transaction mutation.
package account

import (
	"github.com/holiman/uint256"
	"github.com/vertexchain/evmcore/common/types"
)

// EmptyCodeHash is the Keccak256 hash of the empty byte string, the
// CodeHash of every account with no code.
var EmptyCodeHash = types.Hash{
	0xc5, 0xd2, 0x46, 0x01, 0x86, 0xf7, 0x23, 0x3c, 0x92, 0x7e, 0x7d, 0xb2, 0xdc, 0xc7, 0x03, 0xc0,
	0xe5, 0x00, 0xb6, 0x53, 0xca, 0x82, 0x27, 0x3b, 0x7b, 0xfa, 0xd8, 0x04, 0x5d, 0x85, 0xa4, 0x70,
}

// StateAccount is the persistent representation of an account: nonce,
// balance, and a reference to its code. Storage is modeled separately (by
// the journaled state, keyed on address), not embedded here.
type StateAccount struct {
	Nonce    uint64
	Balance  uint256.Int
	CodeHash types.Hash
	Root     types.Hash // storage trie root; unused by this engine, kept for Database-trait parity

	// Incarnation counts how many times this address has been
	// created/destroyed; it disambiguates storage slots written by a prior
	// contract at the same address from the current one's.
	Incarnation uint16
}

// NewAccount returns a freshly created, empty account (nonce 0, balance 0,
// no code).
func NewAccount() *StateAccount {
	return &StateAccount{
		CodeHash: EmptyCodeHash,
	}
}

// SelfCopy returns a deep copy of the account.
func (a *StateAccount) SelfCopy() *StateAccount {
	cpy := &StateAccount{
		Nonce:       a.Nonce,
		CodeHash:    a.CodeHash,
		Root:        a.Root,
		Incarnation: a.Incarnation,
	}
	cpy.Balance.Set(&a.Balance)
	return cpy
}

// IsEmpty reports whether the account is empty per EIP-161: nonce == 0,
// balance == 0, and no code.
func (a *StateAccount) IsEmpty() bool {
	return a.Nonce == 0 && a.Balance.IsZero() && a.CodeHash == EmptyCodeHash
}

// Compact storage encoding: a one-byte field-set bitmap followed by each
// present field's bytes, big-endian with leading zeros stripped. Absent
// (zero-valued) fields cost nothing beyond their bitmap bit.
const (
	fieldNonce = 1 << iota
	fieldBalance
	fieldCodeHash
	fieldIncarnation
)

func minimalUint64Bytes(v uint64) []byte {
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * (7 - i)))
	}
	i := 0
	for i < len(b) && b[i] == 0 {
		i++
	}
	return b[i:]
}

// EncodingLengthForStorage returns the number of bytes EncodeForStorage
// will write for the account's current field values.
func (a *StateAccount) EncodingLengthForStorage() int {
	n := 1
	if a.Nonce != 0 {
		n += 1 + len(minimalUint64Bytes(a.Nonce))
	}
	if !a.Balance.IsZero() {
		n += 1 + len(a.Balance.Bytes())
	}
	if a.CodeHash != (types.Hash{}) && a.CodeHash != EmptyCodeHash {
		n += types.HashLength
	}
	if a.Incarnation != 0 {
		n += 1 + len(minimalUint64Bytes(uint64(a.Incarnation)))
	}
	return n
}

// EncodeForStorage writes the account's compact encoding into buffer, which
// must be at least EncodingLengthForStorage() bytes long.
func (a *StateAccount) EncodeForStorage(buffer []byte) {
	var fieldSet byte
	pos := 1

	if a.Nonce != 0 {
		fieldSet |= fieldNonce
		nb := minimalUint64Bytes(a.Nonce)
		buffer[pos] = byte(len(nb))
		pos++
		pos += copy(buffer[pos:], nb)
	}
	if !a.Balance.IsZero() {
		fieldSet |= fieldBalance
		bb := a.Balance.Bytes()
		buffer[pos] = byte(len(bb))
		pos++
		pos += copy(buffer[pos:], bb)
	}
	if a.CodeHash != (types.Hash{}) && a.CodeHash != EmptyCodeHash {
		fieldSet |= fieldCodeHash
		pos += copy(buffer[pos:], a.CodeHash.Bytes())
	}
	if a.Incarnation != 0 {
		fieldSet |= fieldIncarnation
		ib := minimalUint64Bytes(uint64(a.Incarnation))
		buffer[pos] = byte(len(ib))
		pos++
		pos += copy(buffer[pos:], ib)
	}
	buffer[0] = fieldSet
}

// DecodeForStorage populates the account from its compact encoding.
func (a *StateAccount) DecodeForStorage(enc []byte) error {
	*a = StateAccount{}
	if len(enc) == 0 {
		return nil
	}
	fieldSet := enc[0]
	pos := 1

	if fieldSet&fieldNonce != 0 {
		l := int(enc[pos])
		pos++
		a.Nonce = bytesToUint64(enc[pos : pos+l])
		pos += l
	}
	if fieldSet&fieldBalance != 0 {
		l := int(enc[pos])
		pos++
		a.Balance.SetBytes(enc[pos : pos+l])
		pos += l
	}
	if fieldSet&fieldCodeHash != 0 {
		a.CodeHash = types.BytesToHash(enc[pos : pos+types.HashLength])
		pos += types.HashLength
	} else {
		a.CodeHash = types.Hash{}
	}
	if fieldSet&fieldIncarnation != 0 {
		l := int(enc[pos])
		pos++
		a.Incarnation = uint16(bytesToUint64(enc[pos : pos+l]))
		pos += l
	}
	return nil
}

func bytesToUint64(b []byte) uint64 {
	var v uint64
	for _, x := range b {
		v = v<<8 | uint64(x)
	}
	return v
}
