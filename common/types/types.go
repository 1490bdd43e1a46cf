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

// Package types holds the fixed-width identifiers shared by every layer of
// the execution engine: Address and Hash.
package types

import (
	"encoding/hex"
	"fmt"

	"github.com/holiman/uint256"
)

const (
	AddressLength = 20
	HashLength    = 32
)

// Address is a 20-byte account identifier, the low 20 bytes of a Word when
// a stack value crosses into an address-typed operand.
type Address [AddressLength]byte

// BytesToAddress returns Address with value b.
// If b is larger than len(h), b will be cropped from the left.
func BytesToAddress(b []byte) Address {
	var a Address
	if len(b) > AddressLength {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
	return a
}

// BigToAddress returns Address with byte values of b. If b is larger than
// len(h), b will be cropped from the left.
func BigToAddress(u *uint256.Int) Address {
	return BytesToAddress(u.Bytes())
}

// HexToAddress returns Address with byte values of s, accepting an optional
// "0x"/"0X" prefix.
func HexToAddress(s string) Address {
	return BytesToAddress(fromHex(s))
}

func (a Address) Bytes() []byte { return a[:] }

func (a Address) Hex() string { return "0x" + hex.EncodeToString(a[:]) }

func (a Address) String() string { return a.Hex() }

// IsZero reports whether the address is the zero address.
func (a Address) IsZero() bool { return a == Address{} }

// Cmp compares two addresses lexicographically.
func (a Address) Cmp(other Address) int {
	for i := range a {
		if a[i] != other[i] {
			if a[i] < other[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Hash is a 32-byte value, as produced by Keccak256 or stored in a Word.
type Hash [HashLength]byte

// BytesToHash returns Hash with value b. If b is larger than len(h), b will
// be cropped from the left.
func BytesToHash(b []byte) Hash {
	var h Hash
	if len(b) > HashLength {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
	return h
}

func BigToHash(u *uint256.Int) Hash {
	return BytesToHash(u.Bytes())
}

// HexToHash returns Hash with byte values of s, accepting an optional
// "0x"/"0X" prefix.
func HexToHash(s string) Hash {
	return BytesToHash(fromHex(s))
}

// fromHex decodes a hex string, stripping an optional "0x"/"0X" prefix and
// left-padding with a zero nibble if the digit count is odd. Malformed input
// decodes to nil, matching the zero-value behavior of BytesToAddress/Hash.
func fromHex(s string) []byte {
	if len(s) >= 2 && (s[0:2] == "0x" || s[0:2] == "0X") {
		s = s[2:]
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil
	}
	return b
}

func (h Hash) Bytes() []byte { return h[:] }

func (h Hash) Hex() string { return "0x" + hex.EncodeToString(h[:]) }

func (h Hash) String() string { return h.Hex() }

func (h Hash) IsZero() bool { return h == Hash{} }

// Big returns the hash as a uint256.Int.
func (h Hash) Big() *uint256.Int {
	return new(uint256.Int).SetBytes(h[:])
}

// AddressToHash left-pads an address into a 32-byte hash (the convention for
// placing an address onto the EVM stack / into storage keys).
func AddressToHash(a Address) Hash {
	var h Hash
	copy(h[HashLength-AddressLength:], a[:])
	return h
}

// HashToAddress returns the low 20 bytes of a hash, the convention used when
// a Word crosses the stack boundary into an Address (CALLER, ORIGIN, ...).
func HashToAddress(h Hash) Address {
	var a Address
	copy(a[:], h[HashLength-AddressLength:])
	return a
}

// Word is the EVM's native 256-bit unsigned integer, with wrapping
// arithmetic. It is a plain alias for uint256.Int so every component that
// imports this package shares a single concrete word type.
type Word = uint256.Int

// BlockNumber identifies a block by height.
type BlockNumber uint64

func (n BlockNumber) String() string { return fmt.Sprintf("%d", uint64(n)) }
