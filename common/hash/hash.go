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

// Package hash provides the Keccak256 primitives used throughout the engine
// for address derivation and transaction signing hashes.
package hash

import (
	"hash"
	"sync"

	rlppkg "github.com/vertexchain/evmcore/common/rlp"
	"github.com/vertexchain/evmcore/common/types"
	"golang.org/x/crypto/sha3"
)

var hasherPool = sync.Pool{
	New: func() interface{} { return sha3.NewLegacyKeccak256() },
}

// Keccak256 returns the Keccak256 digest of the concatenated inputs.
func Keccak256(data ...[]byte) []byte {
	h := hasherPool.Get().(hash.Hash)
	defer hasherPool.Put(h)
	h.Reset()
	for _, b := range data {
		h.Write(b)
	}
	return h.Sum(nil)
}

// Keccak256Hash returns the Keccak256 digest of the concatenated inputs as a
// types.Hash.
func Keccak256Hash(data ...[]byte) types.Hash {
	return types.BytesToHash(Keccak256(data...))
}

// Hash is a convenience alias for Keccak256Hash taking a single byte slice,
// used by callers that only need one input digested.
func Hash(data []byte) types.Hash {
	return Keccak256Hash(data)
}

// PrefixedRlpHash RLP-encodes the given values prefixed by a single marker
// byte (used for typed-transaction / EIP-7702 authorization signing hashes,
// where the first byte of the preimage identifies the payload type) and
// returns the Keccak256 digest.
func PrefixedRlpHash(prefix byte, values interface{}) types.Hash {
	enc, err := rlppkg.EncodeToBytes(values)
	if err != nil {
		// Encoding failure here means a caller passed an un-RLP-able value,
		// a programming error rather than a runtime condition.
		panic(err)
	}
	buf := make([]byte, 0, len(enc)+1)
	buf = append(buf, prefix)
	buf = append(buf, enc...)
	return Keccak256Hash(buf)
}

// RlpHash RLP-encodes the given value and returns its Keccak256 digest.
func RlpHash(value interface{}) types.Hash {
	enc, err := rlppkg.EncodeToBytes(value)
	if err != nil {
		panic(err)
	}
	return Keccak256Hash(enc)
}
